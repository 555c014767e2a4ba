package gohotel_test

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
)

func TestModuleDependencies_JWTPresent(t *testing.T) {
	testModulePresence(t, "github.com/golang-jwt/jwt/v5")
}

func TestModuleDependencies_XCryptoPresent(t *testing.T) {
	testModulePresence(t, "golang.org/x/crypto")
}

func TestModuleDependencies_PrometheusPresent(t *testing.T) {
	testModulePresence(t, "github.com/prometheus/client_golang")
}

func TestModuleDependencies_GodotenvPresent(t *testing.T) {
	testModulePresence(t, "github.com/joho/godotenv")
}

func TestSourceTree_NoStdlibLogImport(t *testing.T) {
	t.Run("happy_internal_tree_uses_slog", func(t *testing.T) {
		matches, err := findStdlibLogImports("internal")
		if err != nil {
			t.Fatalf("scan repository: %v", err)
		}
		if len(matches) != 0 {
			t.Fatalf("expected no \"log\" imports under internal/, found in: %v", matches)
		}
	})

	t.Run("error_fixture_with_log_import_is_detected", func(t *testing.T) {
		fixture := "package pkg\n\nimport (\n\t\"fmt\"\n\t\"log\"\n)\n"
		if !importsStdlibLog(fixture) {
			t.Fatal("expected log import to be detected in fixture")
		}
	})

	t.Run("slog_import_is_not_flagged", func(t *testing.T) {
		fixture := "package pkg\n\nimport \"log/slog\"\n"
		if importsStdlibLog(fixture) {
			t.Fatal("log/slog must not be flagged")
		}
	})
}

func testModulePresence(t *testing.T, module string) {
	t.Helper()

	t.Run("happy_present_in_real_go_mod", func(t *testing.T) {
		goMod, err := os.ReadFile("go.mod")
		if err != nil {
			t.Fatalf("read go.mod: %v", err)
		}
		if !moduleRequired(string(goMod), module) {
			t.Fatalf("expected module %q to be present in go.mod", module)
		}
	})

	t.Run("error_missing_module_in_fixture", func(t *testing.T) {
		fixture := `module example.com/demo

go 1.25.0

require (
	github.com/gin-gonic/gin v1.11.0
)`
		if moduleRequired(fixture, module) {
			t.Fatalf("expected fixture to not contain module %q", module)
		}
	})
}

func moduleRequired(goModContent, module string) bool {
	re := regexp.MustCompile(`(?m)^\s*` + regexp.QuoteMeta(module) + `\s+v\S+`)
	return re.MatchString(goModContent)
}

func findStdlibLogImports(root string) ([]string, error) {
	matches := make([]string, 0)
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == "vendor" {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".go" || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		b, readErr := os.ReadFile(path)
		if readErr != nil {
			return readErr
		}
		if importsStdlibLog(string(b)) {
			matches = append(matches, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return matches, nil
}

var stdlibLogImport = regexp.MustCompile(`(?m)^\s*(import\s+)?"log"\s*$`)

func importsStdlibLog(content string) bool {
	return stdlibLogImport.MatchString(content)
}
