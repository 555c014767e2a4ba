package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func recoveryRouter(logger *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(Recovery(logger))
	r.GET("/reservations", func(c *gin.Context) {
		c.String(http.StatusOK, "liste")
	})
	r.POST("/reservations", func(c *gin.Context) {
		panic("reservation store exploded")
	})
	r.PUT("/reservations/1", func(c *gin.Context) {
		c.String(http.StatusAccepted, "partial")
		panic("late failure")
	})
	return r
}

func TestRecovery(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		path       string
		accept     string
		wantStatus int
		wantBody   string
		wantLog    string
	}{
		{"no panic", http.MethodGet, "/reservations", "", http.StatusOK, "liste", ""},
		{"json client", http.MethodPost, "/reservations", "application/json", http.StatusInternalServerError, `"message":"internal error"`, "reservation store exploded"},
		{"browser without renderer", http.MethodPost, "/reservations", "text/html,application/xhtml+xml", http.StatusInternalServerError, plainInternalError, "panic recovered"},
		{"response already started", http.MethodPut, "/reservations/1", "application/json", http.StatusAccepted, "partial", "late failure"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs bytes.Buffer
			r := recoveryRouter(newTestLogger(&logs))

			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.accept != "" {
				req.Header.Set("Accept", tt.accept)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d; want %d", w.Code, tt.wantStatus)
			}
			if !strings.Contains(w.Body.String(), tt.wantBody) {
				t.Errorf("body = %q; want it to contain %q", w.Body.String(), tt.wantBody)
			}
			if strings.Contains(w.Body.String(), "exploded") {
				t.Error("panic value leaked into the response")
			}
			if tt.wantLog != "" && !strings.Contains(logs.String(), tt.wantLog) {
				t.Errorf("log missing %q:\n%s", tt.wantLog, logs.String())
			}
		})
	}
}

func TestRecovery_JSONEnvelopeCode(t *testing.T) {
	r := recoveryRouter(nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/reservations", nil))

	var body struct {
		Code int `json:"code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.Code != http.StatusInternalServerError {
		t.Errorf("code = %d; want 500", body.Code)
	}
}
