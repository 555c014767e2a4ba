package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/simp-lee/gohotel/internal/domain"
)

// RoleAdmin is the role carried by administrator tokens.
const RoleAdmin = "admin"

// Service defines the authentication operations.
type Service interface {
	Login(ctx context.Context, username, password string) (*TokenResponse, error)
	Verify(token string) (*domain.Identity, error)
}

// Options configures the credential service.
type Options struct {
	Secret            []byte
	TokenTTL          time.Duration
	AdminUsername     string
	AdminPasswordHash string
	// Now defaults to time.Now.
	Now func() time.Time
}

// authService implements Service with a single configured administrator and
// HS256-signed tokens.
type authService struct {
	opts Options
}

// NewService creates a new auth Service.
func NewService(opts Options) Service {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &authService{opts: opts}
}

var errBadCredentials = domain.NewAppError(domain.CodeUnauthorized, "invalid username or password", nil)

// Login checks the administrator credentials and issues a token.
func (s *authService) Login(_ context.Context, username, password string) (*TokenResponse, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.opts.AdminUsername)) == 1
	// Always run bcrypt so an unknown username costs the same as a bad password.
	passErr := bcrypt.CompareHashAndPassword([]byte(s.opts.AdminPasswordHash), []byte(password))
	if !userOK || passErr != nil {
		return nil, errBadCredentials
	}

	now := s.opts.Now()
	expiresAt := now.Add(s.opts.TokenTTL)
	claims := jwt.MapClaims{
		"sub":      s.opts.AdminUsername,
		"username": s.opts.AdminUsername,
		"role":     RoleAdmin,
		"iat":      now.Unix(),
		"exp":      expiresAt.Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.opts.Secret)
	if err != nil {
		return nil, domain.NewAppError(domain.CodeInternal, "failed to sign token", err)
	}

	return &TokenResponse{Token: token, TokenType: "Bearer", ExpiresAt: expiresAt.Unix()}, nil
}

// Verify checks the signature and expiry of token and returns its identity.
func (s *authService) Verify(token string) (*domain.Identity, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.opts.Secret, nil
	}, jwt.WithExpirationRequired(), jwt.WithTimeFunc(s.opts.Now))
	if err != nil {
		return nil, tampered(err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, tampered(nil)
	}
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return nil, tampered(err)
	}

	username, _ := claims["username"].(string)
	role, _ := claims["role"].(string)
	return &domain.Identity{Subject: sub, Username: username, Role: role}, nil
}

func tampered(err error) error {
	if err == nil {
		err = domain.ErrExpiredOrTamperedCredential
	}
	return domain.NewAppError(domain.CodeForbidden, domain.ErrExpiredOrTamperedCredential.Error(), err)
}
