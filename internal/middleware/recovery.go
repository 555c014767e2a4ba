package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/simp-lee/gohotel/internal/domain"
	"github.com/simp-lee/gohotel/internal/pkg"
)

const plainInternalError = "500 Internal Server Error"

// Recovery answers a panicking handler with 500 and logs the panic value and
// stack. Nothing is written when the handler already started its response.
func Recovery(logger *slog.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(c.Request.Context(), "panic recovered",
					slog.Any("panic", rec),
					slog.String("method", c.Request.Method),
					slog.String("path", c.Request.URL.Path),
					slog.String("stack", string(debug.Stack())),
				)
				respondAfterPanic(c)
			}
		}()
		c.Next()
	}
}

func respondAfterPanic(c *gin.Context) {
	c.Abort()
	switch {
	case c.Writer.Written():
	case strings.Contains(strings.ToLower(c.GetHeader("Accept")), "text/html"):
		renderPanicPage(c)
	default:
		pkg.Error(c, domain.ErrInternal)
	}
}

// renderPanicPage writes plain text when the engine has no HTML renderer.
func renderPanicPage(c *gin.Context) {
	defer func() {
		if recover() != nil {
			c.Data(http.StatusInternalServerError, "text/plain; charset=utf-8", []byte(plainInternalError))
		}
	}()
	c.HTML(http.StatusInternalServerError, "errors/500.html", gin.H{"Title": "Erreur interne"})
}
