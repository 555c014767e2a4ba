package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/simp-lee/gohotel/internal/domain"
	"github.com/simp-lee/gohotel/internal/pkg"
)

const identityContextKey = "identity"

// TokenVerifier checks a bearer token and returns the identity it carries.
type TokenVerifier interface {
	Verify(token string) (*domain.Identity, error)
}

// BearerAuth guards a route with an "Authorization: Bearer <token>" header.
// A missing or empty token is answered with 401; a token the verifier
// rejects is answered with 403. On success the identity is available
// through GetIdentity.
func BearerAuth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			pkg.Error(c, domain.NewAppError(domain.CodeUnauthorized,
				domain.ErrInvalidCredential.Error(), domain.ErrInvalidCredential))
			c.Abort()
			return
		}

		identity, err := verifier.Verify(token)
		if err != nil {
			_ = c.Error(err)
			pkg.Error(c, domain.NewAppError(domain.CodeForbidden,
				domain.ErrExpiredOrTamperedCredential.Error(), err))
			c.Abort()
			return
		}

		c.Set(identityContextKey, identity)
		c.Next()
	}
}

// MutationsOnly runs guard for POST, PUT, PATCH and DELETE requests and lets
// every other method through.
func MutationsOnly(guard gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
			guard(c)
		default:
			c.Next()
		}
	}
}

// GetIdentity returns the identity stored by BearerAuth, or nil.
func GetIdentity(c *gin.Context) *domain.Identity {
	v, ok := c.Get(identityContextKey)
	if !ok {
		return nil
	}
	id, _ := v.(*domain.Identity)
	return id
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
