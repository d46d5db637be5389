package auth

import (
	"context"

	"github.com/gestia/gestia/internal/config"
	"github.com/gestia/gestia/internal/domain/auth"
	"github.com/gestia/gestia/internal/types"
)

// Provider abstracts the identity backend
type Provider interface {
	GetProvider() types.AuthProvider

	// SignUp registers credentials with the backend and returns the
	// provider-assigned user id and a session token
	SignUp(ctx context.Context, req AuthRequest) (*AuthResponse, error)
	Login(ctx context.Context, req AuthRequest) (*AuthResponse, error)

	// ValidateToken verifies the token signature and returns the
	// identity it carries
	ValidateToken(ctx context.Context, token string) (*auth.Claims, error)
}

type AuthRequest struct {
	Email    string
	Password string
	TenantID string

	// UserID is set by the caller on login when the provider signs
	// tokens locally and cannot resolve the account itself
	UserID string
}

type AuthResponse struct {
	UserID   string
	TenantID string
	Token    string
}

// NewProvider returns the provider selected by configuration
func NewProvider(cfg *config.Configuration) Provider {
	switch cfg.Auth.Provider {
	case types.AuthProviderSupabase:
		return NewSupabaseProvider(cfg)
	default:
		return NewFlagProvider(cfg)
	}
}
