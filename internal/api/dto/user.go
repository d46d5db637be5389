package dto

import (
	"context"

	"github.com/gestia/gestia/internal/domain/user"
	"github.com/gestia/gestia/internal/types"
	"github.com/gestia/gestia/internal/validator"
)

type CreateUserRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"required"`
	Role  string `json:"role"`
}

type UpdateUserRequest struct {
	Email *string `json:"email,omitempty" validate:"omitempty,email"`
	Name  *string `json:"name,omitempty"`
	Role  *string `json:"role,omitempty"`
}

type UserResponse struct {
	*user.User
}

type ListUsersResponse struct {
	Users  []*UserResponse `json:"users"`
	Total  int             `json:"total"`
	Offset int             `json:"offset"`
	Limit  int             `json:"limit"`
}

func (r *CreateUserRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *CreateUserRequest) ToUser(ctx context.Context) *user.User {
	return &user.User{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_USER),
		Email:     r.Email,
		Name:      r.Name,
		Role:      r.Role,
		BaseModel: types.GetDefaultBaseModel(ctx),
	}
}

func (r *UpdateUserRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func NewUserResponse(u *user.User) *UserResponse {
	return &UserResponse{User: u}
}
