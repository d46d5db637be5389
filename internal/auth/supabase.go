package auth

import (
	"context"

	"github.com/gestia/gestia/internal/config"
	"github.com/gestia/gestia/internal/domain/auth"
	ierr "github.com/gestia/gestia/internal/errors"
	"github.com/gestia/gestia/internal/types"
	"github.com/golang-jwt/jwt/v4"
	"github.com/nedpals/supabase-go"
)

type supabaseProvider struct {
	client *supabase.Client
	cfg    *config.Configuration
}

func NewSupabaseProvider(cfg *config.Configuration) Provider {
	client := supabase.CreateClient(cfg.Auth.Supabase.BaseURL, cfg.Auth.Supabase.ServiceKey)
	return &supabaseProvider{client: client, cfg: cfg}
}

func (p *supabaseProvider) GetProvider() types.AuthProvider {
	return types.AuthProviderSupabase
}

func (p *supabaseProvider) SignUp(ctx context.Context, req AuthRequest) (*AuthResponse, error) {
	user, err := p.client.Auth.SignUp(ctx, supabase.UserCredentials{
		Email:    req.Email,
		Password: req.Password,
		Data: map[string]interface{}{
			"tenant_id": req.TenantID,
		},
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Sign up failed").
			Mark(ierr.ErrPermissionDenied)
	}

	// Supabase does not return a session on sign up when email
	// confirmation is enabled; log the user in to get one
	session, err := p.client.Auth.SignIn(ctx, supabase.UserCredentials{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Account created but login failed").
			Mark(ierr.ErrPermissionDenied)
	}

	return &AuthResponse{
		UserID:   user.ID,
		TenantID: req.TenantID,
		Token:    session.AccessToken,
	}, nil
}

func (p *supabaseProvider) Login(ctx context.Context, req AuthRequest) (*AuthResponse, error) {
	session, err := p.client.Auth.SignIn(ctx, supabase.UserCredentials{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Invalid email or password").
			Mark(ierr.ErrPermissionDenied)
	}

	claims, err := p.ValidateToken(ctx, session.AccessToken)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		UserID:   claims.UserID,
		TenantID: claims.TenantID,
		Token:    session.AccessToken,
	}, nil
}

func (p *supabaseProvider) ValidateToken(ctx context.Context, token string) (*auth.Claims, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ierr.NewErrorf("unexpected signing method %v", t.Header["alg"]).
				Mark(ierr.ErrPermissionDenied)
		}
		return []byte(p.cfg.Auth.Secret), nil
	})
	if err != nil || !parsed.Valid {
		return nil, ierr.WithError(err).
			WithHint("Invalid or expired token").
			Mark(ierr.ErrPermissionDenied)
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ierr.NewError("invalid token claims").
			Mark(ierr.ErrPermissionDenied)
	}

	userID, _ := mapClaims["sub"].(string)
	email, _ := mapClaims["email"].(string)
	if userID == "" {
		return nil, ierr.NewError("token missing subject").
			Mark(ierr.ErrPermissionDenied)
	}

	tenantID := tenantFromClaims(mapClaims)
	if tenantID == "" {
		return nil, ierr.NewError("token missing tenant").
			WithHint("The account is not attached to a tenant").
			Mark(ierr.ErrPermissionDenied)
	}

	return &auth.Claims{
		UserID:   userID,
		TenantID: tenantID,
		Email:    email,
	}, nil
}

// tenantFromClaims reads the tenant id Supabase stores under
// user_metadata at sign up
func tenantFromClaims(claims jwt.MapClaims) string {
	if v, ok := claims["tenant_id"].(string); ok && v != "" {
		return v
	}
	meta, ok := claims["user_metadata"].(map[string]interface{})
	if !ok {
		return ""
	}
	v, _ := meta["tenant_id"].(string)
	return v
}
