package auth

import "github.com/simp-lee/gohotel/internal/domain"

// LoginRequest carries the administrator credentials.
type LoginRequest struct {
	Username string `json:"username" form:"username" binding:"required,max=100"`
	Password string `json:"password" form:"password" binding:"required,max=72"`
}

// TokenResponse describes an issued bearer token. ExpiresAt is a Unix time.
type TokenResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
	ExpiresAt int64  `json:"expires_at"`
}

// SessionResponse echoes the identity a bearer token was issued for.
type SessionResponse struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

func sessionOf(id *domain.Identity) SessionResponse {
	return SessionResponse{Username: id.Username, Role: id.Role}
}
