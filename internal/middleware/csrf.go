package middleware

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/simp-lee/gohotel/internal/domain"
	"github.com/simp-lee/gohotel/internal/pkg"
)

const (
	csrfCookieName = "_csrf_token"
	csrfFormField  = "_csrf_token"
	csrfHeaderName = "X-CSRF-Token"
	csrfContextKey = "CSRFToken"
	csrfNonceBytes = 32
)

var errCSRF = domain.NewAppError(domain.CodeForbidden, "CSRF token missing or invalid", nil)

// csrfGuard implements a signed double-submit cookie. A token is
// hex(nonce) "." base64url(HMAC-SHA256(secret, nonce)).
type csrfGuard struct {
	key    []byte
	secure bool
}

// CSRF protects the HTML form routes. Safe methods make sure the client
// holds a token signed with secret and expose it through GetCSRFToken.
// Other methods must echo the cookie in the "_csrf_token" form field or the
// X-CSRF-Token header, which htmx sends; otherwise they get 403.
func CSRF(secret string) gin.HandlerFunc {
	secret = strings.TrimSpace(secret)
	g := &csrfGuard{key: []byte(secret), secure: gin.Mode() == gin.ReleaseMode}

	return func(c *gin.Context) {
		var (
			token string
			err   error
		)
		switch {
		case secret == "":
			err = domain.NewAppError(domain.CodeInternal, "csrf secret is not configured", nil)
		case isSafeMethod(c.Request.Method):
			token, err = g.issue(c)
		default:
			token, err = g.verify(c)
		}
		if err != nil {
			pkg.Error(c, err)
			c.Abort()
			return
		}
		c.Set(csrfContextKey, token)
		c.Next()
	}
}

// GetCSRFToken returns the token CSRF stored for the request, or "".
func GetCSRFToken(c *gin.Context) string {
	return c.GetString(csrfContextKey)
}

func isSafeMethod(method string) bool {
	return method == http.MethodGet || method == http.MethodHead || method == http.MethodOptions
}

// issue keeps a valid cookie and replaces a missing or foreign one.
func (g *csrfGuard) issue(c *gin.Context) (string, error) {
	if token, err := c.Cookie(csrfCookieName); err == nil && g.valid(token) {
		return token, nil
	}

	nonce := make([]byte, csrfNonceBytes)
	if _, err := rand.Read(nonce); err != nil {
		return "", domain.NewAppError(domain.CodeInternal, "failed to issue CSRF token", err)
	}
	n := hex.EncodeToString(nonce)
	token := n + "." + g.sign(n)

	http.SetCookie(c.Writer, &http.Cookie{
		Name:     csrfCookieName,
		Value:    token,
		Path:     "/",
		Secure:   g.secure,
		SameSite: http.SameSiteStrictMode,
	})
	return token, nil
}

func (g *csrfGuard) verify(c *gin.Context) (string, error) {
	cookie, err := c.Cookie(csrfCookieName)
	if err != nil || !g.valid(cookie) {
		return "", errCSRF
	}
	echoed := c.PostForm(csrfFormField)
	if echoed == "" {
		echoed = c.GetHeader(csrfHeaderName)
	}
	if subtle.ConstantTimeCompare([]byte(cookie), []byte(echoed)) != 1 {
		return "", errCSRF
	}
	return cookie, nil
}

func (g *csrfGuard) sign(nonce string) string {
	mac := hmac.New(sha256.New, g.key)
	mac.Write([]byte(nonce))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func (g *csrfGuard) valid(token string) bool {
	nonce, sig, ok := strings.Cut(token, ".")
	if !ok || nonce == "" || sig == "" {
		return false
	}
	return hmac.Equal([]byte(sig), []byte(g.sign(nonce)))
}
