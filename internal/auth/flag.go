package auth

import (
	"context"
	"time"

	"github.com/gestia/gestia/internal/config"
	"github.com/gestia/gestia/internal/domain/auth"
	ierr "github.com/gestia/gestia/internal/errors"
	"github.com/gestia/gestia/internal/types"
	"github.com/golang-jwt/jwt/v4"
)

// flagProvider signs and verifies tokens locally with the configured
// secret. It never talks to an external service and accepts any
// password, so it must only run in local mode.
type flagProvider struct {
	cfg *config.Configuration
}

func NewFlagProvider(cfg *config.Configuration) Provider {
	return &flagProvider{cfg: cfg}
}

func (p *flagProvider) GetProvider() types.AuthProvider {
	return types.AuthProviderFlag
}

func (p *flagProvider) SignUp(ctx context.Context, req AuthRequest) (*AuthResponse, error) {
	userID := types.GenerateUUIDWithPrefix(types.UUID_PREFIX_USER)
	token, err := p.sign(userID, req.TenantID, req.Email)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{UserID: userID, TenantID: req.TenantID, Token: token}, nil
}

func (p *flagProvider) Login(ctx context.Context, req AuthRequest) (*AuthResponse, error) {
	// No credential store here; the service resolves the account by
	// email and passes the user id in
	token, err := p.sign(req.UserID, req.TenantID, req.Email)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{UserID: req.UserID, TenantID: req.TenantID, Token: token}, nil
}

func (p *flagProvider) ValidateToken(ctx context.Context, token string) (*auth.Claims, error) {
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
	tenantID, _ := mapClaims["tenant_id"].(string)
	email, _ := mapClaims["email"].(string)

	return &auth.Claims{UserID: userID, TenantID: tenantID, Email: email}, nil
}

func (p *flagProvider) sign(userID, tenantID, email string) (string, error) {
	claims := jwt.MapClaims{
		"sub":       userID,
		"tenant_id": tenantID,
		"email":     email,
		"iat":       time.Now().Unix(),
		"exp":       time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(p.cfg.Auth.Secret))
	if err != nil {
		return "", ierr.WithError(err).
			WithHint("Could not sign token").
			Mark(ierr.ErrSystem)
	}
	return signed, nil
}
