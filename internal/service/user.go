package service

import (
	"context"

	"github.com/gestia/gestia/internal/api/dto"
	"github.com/gestia/gestia/internal/domain/user"
	ierr "github.com/gestia/gestia/internal/errors"
	"github.com/gestia/gestia/internal/logger"
	"github.com/gestia/gestia/internal/types"
)

type UserService interface {
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error)
	GetUser(ctx context.Context, id string) (*dto.UserResponse, error)
	GetCurrentUser(ctx context.Context) (*dto.UserResponse, error)
	ListUsers(ctx context.Context, filter types.Filter) (*dto.ListUsersResponse, error)
	UpdateUser(ctx context.Context, id string, req dto.UpdateUserRequest) (*dto.UserResponse, error)
	DeleteUser(ctx context.Context, id string) error
}

type userService struct {
	repo   user.Repository
	logger *logger.Logger
}

func NewUserService(repo user.Repository, logger *logger.Logger) UserService {
	return &userService{repo: repo, logger: logger}
}

func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u := req.ToUser(ctx)
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	return dto.NewUserResponse(u), nil
}

func (s *userService) GetUser(ctx context.Context, id string) (*dto.UserResponse, error) {
	u, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewUserResponse(u), nil
}

func (s *userService) GetCurrentUser(ctx context.Context) (*dto.UserResponse, error) {
	userID := types.GetUserID(ctx)
	if userID == "" {
		return nil, ierr.NewError("no authenticated user").
			WithHint("The request carries no user identity").
			Mark(ierr.ErrPermissionDenied)
	}
	return s.GetUser(ctx, userID)
}

func (s *userService) ListUsers(ctx context.Context, filter types.Filter) (*dto.ListUsersResponse, error) {
	if filter.Limit == 0 {
		filter = types.GetDefaultFilter()
	}

	users, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	response := &dto.ListUsersResponse{
		Users:  make([]*dto.UserResponse, len(users)),
		Total:  len(users),
		Offset: filter.Offset,
		Limit:  filter.Limit,
	}
	for i, u := range users {
		response.Users[i] = dto.NewUserResponse(u)
	}

	return response, nil
}

func (s *userService) UpdateUser(ctx context.Context, id string, req dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil {
		u.Email = *req.Email
	}
	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Role != nil {
		u.Role = *req.Role
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}

	return dto.NewUserResponse(u), nil
}

func (s *userService) DeleteUser(ctx context.Context, id string) error {
	if id == types.GetUserID(ctx) {
		return ierr.NewError("cannot delete own account").
			WithHint("Another user must remove this account").
			Mark(ierr.ErrInvalidOperation)
	}
	return s.repo.Delete(ctx, id)
}
