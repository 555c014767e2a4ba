package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/simp-lee/gohotel/internal/middleware"
	"github.com/simp-lee/gohotel/internal/pkg"
	"github.com/simp-lee/gohotel/web"
)

const (
	apiPrefix          = "/api/v1"
	staticCacheControl = "public, max-age=86400"
	healthPingTimeout  = time.Second
)

// RouteDeps is everything RegisterRoutes mounts.
type RouteDeps struct {
	// Modules own the hotel entities. Their API routes sit behind APIGuard
	// when it is set.
	Modules []Module
	// PublicModules are never guarded, e.g. login.
	PublicModules []Module
	APIGuard      gin.HandlerFunc
	DB            *gorm.DB
	Mode          string
	CSRFSecret    string
	// An empty MetricsPath disables the exposition endpoint.
	MetricsPath     string
	MetricsGatherer prometheus.Gatherer
}

func (d *RouteDeps) validate() error {
	switch {
	case d == nil:
		return errors.New("route dependencies are nil")
	case len(d.Modules) == 0:
		return errors.New("at least one module is required")
	case strings.TrimSpace(d.CSRFSecret) == "":
		return errors.New("csrf secret is required")
	case d.MetricsPath != "" && d.MetricsGatherer == nil:
		return errors.New("metrics gatherer is required when a metrics path is set")
	}
	for i, m := range d.PublicModules {
		if m == nil {
			return fmt.Errorf("public module at index %d is nil", i)
		}
	}
	for i, m := range d.Modules {
		if m == nil {
			return fmt.Errorf("module at index %d is nil", i)
		}
	}
	return nil
}

// RegisterRoutes mounts static assets, probes, the home page and every module.
// JSON lives under /api/v1 without CSRF; pages live at the root with CSRF.
func RegisterRoutes(r *gin.Engine, deps *RouteDeps) error {
	if r == nil {
		return errors.New("router is nil")
	}
	if err := deps.validate(); err != nil {
		return err
	}
	if err := mountStatic(r, deps.Mode); err != nil {
		return fmt.Errorf("register static routes: %w", err)
	}

	r.GET("/health", healthHandler(deps.DB))
	if deps.MetricsPath != "" {
		r.GET(deps.MetricsPath, gin.WrapH(promhttp.HandlerFor(deps.MetricsGatherer, promhttp.HandlerOpts{})))
	}

	csrf := middleware.CSRF(deps.CSRFSecret)
	r.GET("/", csrf, func(c *gin.Context) {
		c.HTML(http.StatusOK, "home.html", gin.H{"CSRFToken": middleware.GetCSRFToken(c)})
	})

	api := r.Group(apiPrefix)
	entities := api.Group("")
	if deps.APIGuard != nil {
		entities.Use(deps.APIGuard)
	}
	pages := r.Group("/", csrf)

	for _, m := range deps.PublicModules {
		m.RegisterRoutes(api, pages)
	}
	for _, m := range deps.Modules {
		m.RegisterRoutes(entities, pages)
	}

	r.NoRoute(notFoundHandler)
	return nil
}

type healthReport struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components"`
}

// healthHandler reports 503 "degraded" when the store does not answer a ping
// within healthPingTimeout.
func healthHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		report := healthReport{Status: "ok", Components: map[string]string{"database": "ok"}}
		code := http.StatusOK
		if err := pingDB(c.Request.Context(), db); err != nil {
			_ = c.Error(err)
			report.Status, report.Components["database"] = "degraded", "error"
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, report)
	}
}

func pingDB(ctx context.Context, db *gorm.DB) error {
	if db == nil {
		return errors.New("database is nil")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, healthPingTimeout)
	defer cancel()
	return sqlDB.PingContext(ctx)
}

// notFoundHandler answers JSON under /api/ and otherwise negotiates between
// the 404 page and JSON.
func notFoundHandler(c *gin.Context) {
	if strings.HasPrefix(c.Request.URL.Path, "/api/") {
		c.JSON(http.StatusNotFound, pkg.Response{Code: http.StatusNotFound, Message: "not found"})
		return
	}
	renderError(c, http.StatusNotFound, "page introuvable")
}

// mountStatic serves web/static. Debug mode reads the files from disk and
// skips caching; otherwise the embedded copy is served with a one-day cache.
func mountStatic(r *gin.Engine, mode string) error {
	var (
		root         fs.FS = web.EmbeddedFS
		cacheControl       = staticCacheControl
	)
	if mode == gin.DebugMode {
		disk, err := resolveDebugWebFS()
		if err != nil {
			return fmt.Errorf("resolve debug static filesystem: %w", err)
		}
		root, cacheControl = disk, ""
	}

	assets, err := fs.Sub(root, "static")
	if err != nil {
		return fmt.Errorf("open static assets: %w", err)
	}
	r.GET("/static/*filepath", staticHandler(assets, cacheControl))
	return nil
}

func staticHandler(assets fs.FS, cacheControl string) gin.HandlerFunc {
	files := http.StripPrefix("/static", http.FileServer(http.FS(assets)))
	return func(c *gin.Context) {
		if cacheControl != "" {
			c.Header("Cache-Control", cacheControl)
		}
		files.ServeHTTP(c.Writer, c.Request)
	}
}
