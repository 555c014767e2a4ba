package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/simp-lee/gohotel/internal/middleware"
)

// AuthModule exposes the token endpoints. It is registered outside the
// mutation guard so that login stays reachable without a token.
type AuthModule struct {
	handler *AuthHandler
}

// NewModule panics if h is nil.
func NewModule(h *AuthHandler) *AuthModule {
	if h == nil {
		panic("auth.NewModule: handler must not be nil")
	}
	return &AuthModule{handler: h}
}

// RegisterRoutes mounts login and session lookup. The auth module has no pages.
func (m *AuthModule) RegisterRoutes(api *gin.RouterGroup, _ *gin.RouterGroup) {
	group := api.Group("/auth")
	group.POST("/login", m.handler.Login)
	group.GET("/me", middleware.BearerAuth(m.handler.svc), m.handler.Session)
}
