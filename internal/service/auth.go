package service

import (
	"context"

	"github.com/gestia/gestia/internal/api/dto"
	"github.com/gestia/gestia/internal/auth"
	"github.com/gestia/gestia/internal/domain/user"
	ierr "github.com/gestia/gestia/internal/errors"
	"github.com/gestia/gestia/internal/logger"
	"github.com/gestia/gestia/internal/types"
)

type AuthService interface {
	// SignUp provisions a fresh tenant: it registers the credentials
	// with the auth provider and creates the first user of the tenant
	SignUp(ctx context.Context, req dto.SignUpRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error)
}

type authService struct {
	provider auth.Provider
	userRepo user.Repository
	logger   *logger.Logger
}

func NewAuthService(provider auth.Provider, userRepo user.Repository, logger *logger.Logger) AuthService {
	return &authService{provider: provider, userRepo: userRepo, logger: logger}
}

func (s *authService) SignUp(ctx context.Context, req dto.SignUpRequest) (*dto.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.GetByEmail(ctx, req.Email); err == nil {
		return nil, ierr.NewError("email already registered").
			WithHintf("An account with email %s already exists", req.Email).
			Mark(ierr.ErrAlreadyExists)
	} else if !ierr.IsNotFound(err) {
		return nil, err
	}

	tenantID := types.GenerateUUIDWithPrefix(types.UUID_PREFIX_TENANT)

	resp, err := s.provider.SignUp(ctx, auth.AuthRequest{
		Email:    req.Email,
		Password: req.Password,
		TenantID: tenantID,
	})
	if err != nil {
		return nil, err
	}

	ctx = context.WithValue(ctx, types.CtxTenantID, tenantID)
	ctx = context.WithValue(ctx, types.CtxUserID, resp.UserID)

	u := &user.User{
		ID:        resp.UserID,
		Email:     req.Email,
		Name:      req.Name,
		Role:      "owner",
		BaseModel: types.GetDefaultBaseModel(ctx),
	}
	if err := s.userRepo.Create(ctx, u); err != nil {
		return nil, err
	}

	s.logger.Infow("tenant provisioned", "tenant_id", tenantID, "user_id", u.ID)

	return &dto.AuthResponse{
		UserID: u.ID,
		Email:  u.Email,
		Token:  resp.Token,
	}, nil
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if ierr.IsNotFound(err) {
			return nil, ierr.NewError("invalid credentials").
				WithHint("Invalid email or password").
				Mark(ierr.ErrPermissionDenied)
		}
		return nil, err
	}

	resp, err := s.provider.Login(ctx, auth.AuthRequest{
		Email:    req.Email,
		Password: req.Password,
		TenantID: u.TenantID,
		UserID:   u.ID,
	})
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		UserID: u.ID,
		Email:  u.Email,
		Token:  resp.Token,
	}, nil
}
