package auth

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/simp-lee/gohotel/internal/domain"
	"github.com/simp-lee/gohotel/internal/middleware"
	"github.com/simp-lee/gohotel/internal/pkg"
)

// AuthHandler serves the token endpoints.
type AuthHandler struct {
	svc Service
}

// NewHandler creates an AuthHandler backed by svc.
func NewHandler(svc Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Login handles POST /api/v1/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	ctx := c.Request.Context()
	tok, err := h.svc.Login(ctx, req.Username, req.Password)
	if err != nil {
		slog.WarnContext(ctx, "login rejected", slog.String("username", req.Username))
		pkg.Error(c, err)
		return
	}
	slog.InfoContext(ctx, "token issued", slog.String("username", req.Username), slog.Int64("expires_at", tok.ExpiresAt))

	c.Header("Cache-Control", "no-store")
	pkg.Success(c, tok)
}

// Session handles GET /api/v1/auth/me. It runs behind BearerAuth.
func (h *AuthHandler) Session(c *gin.Context) {
	id := middleware.GetIdentity(c)
	if id == nil {
		pkg.Error(c, domain.ErrUnauthorized)
		return
	}
	pkg.Success(c, sessionOf(id))
}
