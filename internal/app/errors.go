package app

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/simp-lee/gohotel/internal/pkg"
)

// errorTemplates maps HTTP status codes to their error page.
var errorTemplates = map[int]string{
	http.StatusBadRequest:          "errors/400.html",
	http.StatusNotFound:            "errors/404.html",
	http.StatusInternalServerError: "errors/500.html",
}

// renderError answers browsers with an error page and everything else with
// the JSON envelope. An explicit JSON Accept header always wins.
func renderError(c *gin.Context, code int, message string) {
	accept := strings.ToLower(c.GetHeader("Accept"))
	if strings.Contains(accept, "application/json") && !strings.Contains(accept, "text/html") {
		c.JSON(code, pkg.Response{Code: code, Message: message})
		return
	}
	if acceptsHTML(accept) {
		renderHTMLErrorPage(c, code, message)
		return
	}
	c.JSON(code, pkg.Response{Code: code, Message: message})
}

// renderHTMLErrorPage renders the page for code, or errors/500.html when
// none exists. A template failure degrades to plain text.
func renderHTMLErrorPage(c *gin.Context, code int, message string) {
	defer func() {
		if r := recover(); r != nil {
			c.Data(code, "text/plain; charset=utf-8",
				[]byte(fmt.Sprintf("%d %s", code, defaultStatusText(code))))
		}
	}()

	tmpl, ok := errorTemplates[code]
	if !ok {
		tmpl = errorTemplates[http.StatusInternalServerError]
	}
	c.HTML(code, tmpl, gin.H{"Message": message})
}

// acceptsHTML matches text/html, */* and an empty Accept header.
func acceptsHTML(accept string) bool {
	return strings.Contains(accept, "text/html") ||
		strings.Contains(accept, "*/*") ||
		strings.TrimSpace(accept) == ""
}

func defaultStatusText(code int) string {
	switch code {
	case http.StatusBadRequest:
		return "Requête invalide"
	case http.StatusNotFound:
		return "Page introuvable"
	case http.StatusConflict:
		return "Conflit"
	case http.StatusInternalServerError:
		return "Erreur interne"
	default:
		return "Erreur"
	}
}
