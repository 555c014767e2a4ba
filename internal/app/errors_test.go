package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/simp-lee/gohotel/internal/pkg"
	"github.com/simp-lee/gohotel/web"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestAcceptsHTML(t *testing.T) {
	tests := []struct {
		name   string
		accept string
		want   bool
	}{
		{"text/html", "text/html", true},
		{"text/html with charset", "text/html; charset=utf-8", true},
		{"mixed with html", "application/json, text/html", true},
		{"application/json only", "application/json", false},
		{"empty accept", "", true},
		{"wildcard accept", "*/*", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := acceptsHTML(tt.accept); got != tt.want {
				t.Fatalf("acceptsHTML(%q) = %v, want %v", tt.accept, got, tt.want)
			}
		})
	}
}

func TestRenderError_JSON(t *testing.T) {
	tests := []struct {
		name    string
		accept  string
		code    int
		message string
	}{
		{"500 internal", "application/json", 500, "internal error"},
		{"400 bad request", "application/json", 400, "bad request"},
		{"404 not found", "application/json", 404, "not found"},
		{"409 conflict", "application/json", 409, "in use"},
		{"json with wildcard", "application/json, */*", 500, "internal error"},
		{"unknown accept", "application/xml", 404, "not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/clients", nil)
			c.Request.Header.Set("Accept", tt.accept)

			renderError(c, tt.code, tt.message)

			if w.Code != tt.code {
				t.Fatalf("status = %d, want %d", w.Code, tt.code)
			}
			var resp pkg.Response
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("json decode error: %v", err)
			}
			if resp.Code != tt.code || resp.Message != tt.message {
				t.Fatalf("resp = %+v, want code %d message %q", resp, tt.code, tt.message)
			}
			if resp.Data != nil {
				t.Fatalf("resp.Data = %v, want nil", resp.Data)
			}
		})
	}
}

func TestRenderError_HTML_FallsBackToPlainText(t *testing.T) {
	// Without an HTML renderer c.HTML panics; renderError must recover.
	tests := []struct {
		code     int
		wantBody string
	}{
		{500, "500 Erreur interne"},
		{400, "400 Requête invalide"},
		{404, "404 Page introuvable"},
		{409, "409 Conflit"},
	}

	for _, tt := range tests {
		t.Run(tt.wantBody, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			c.Request.Header.Set("Accept", "text/html")

			renderError(c, tt.code, "ignored")

			if w.Code != tt.code {
				t.Fatalf("status = %d, want %d", w.Code, tt.code)
			}
			if body := w.Body.String(); body != tt.wantBody {
				t.Fatalf("body = %q, want %q", body, tt.wantBody)
			}
			if ct := w.Header().Get("Content-Type"); ct != "text/plain; charset=utf-8" {
				t.Fatalf("Content-Type = %q", ct)
			}
		})
	}
}

func TestRenderError_HTML_EmbeddedPages(t *testing.T) {
	renderer, err := NewTemplateRenderer(web.EmbeddedFS, false)
	if err != nil {
		t.Fatalf("NewTemplateRenderer() error = %v", err)
	}

	tests := []struct {
		code     int
		wantText string
	}{
		{http.StatusBadRequest, "400 · Requête invalide"},
		{http.StatusNotFound, "404 · Page introuvable"},
		{http.StatusInternalServerError, "500 · Erreur interne"},
		// Unmapped codes use the 500 page with their own status.
		{http.StatusConflict, "500 · Erreur interne"},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.code), func(t *testing.T) {
			w := httptest.NewRecorder()
			c, engine := gin.CreateTestContext(w)
			engine.HTMLRender = renderer
			c.Request = httptest.NewRequest(http.MethodGet, "/chambres/9", nil)
			c.Request.Header.Set("Accept", "text/html")

			renderError(c, tt.code, "chambre 9 absente")

			if w.Code != tt.code {
				t.Fatalf("status = %d, want %d", w.Code, tt.code)
			}
			body := w.Body.String()
			if !strings.Contains(body, tt.wantText) {
				t.Fatalf("body missing %q:\n%s", tt.wantText, body)
			}
			if !strings.Contains(body, "chambre 9 absente") {
				t.Fatalf("body missing message:\n%s", body)
			}
		})
	}
}

func TestDefaultStatusText(t *testing.T) {
	tests := []struct {
		code int
		want string
	}{
		{400, "Requête invalide"},
		{404, "Page introuvable"},
		{409, "Conflit"},
		{500, "Erreur interne"},
		{503, "Erreur"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := defaultStatusText(tt.code); got != tt.want {
				t.Fatalf("defaultStatusText(%d) = %q, want %q", tt.code, got, tt.want)
			}
		})
	}
}
