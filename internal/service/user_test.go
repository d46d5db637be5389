package service

import (
	"context"
	"testing"

	"github.com/gestia/gestia/internal/api/dto"
	"github.com/gestia/gestia/internal/domain/user"
	ierr "github.com/gestia/gestia/internal/errors"
	"github.com/gestia/gestia/internal/testutil"
	"github.com/gestia/gestia/internal/types"
	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"
)

type UserServiceSuite struct {
	testutil.BaseServiceTestSuite
	service UserService
	repo    *testutil.InMemoryUserStore
}

func TestUserService(t *testing.T) {
	suite.Run(t, new(UserServiceSuite))
}

func (s *UserServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.repo = s.GetStores().UserRepo.(*testutil.InMemoryUserStore)
	s.service = NewUserService(s.repo, s.GetLogger())
}

func (s *UserServiceSuite) createUser(email string) *dto.UserResponse {
	resp, err := s.service.CreateUser(s.GetContext(), dto.CreateUserRequest{
		Email: email,
		Name:  "Some User",
		Role:  "member",
	})
	s.NoError(err)
	return resp
}

func (s *UserServiceSuite) TestCreateUser() {
	resp := s.createUser("user@example.com")
	s.Equal("user@example.com", resp.Email)
	s.Equal("member", resp.Role)

	got, err := s.service.GetUser(s.GetContext(), resp.ID)
	s.NoError(err)
	s.Equal(resp.ID, got.ID)
}

func (s *UserServiceSuite) TestCreateUserInvalidEmail() {
	_, err := s.service.CreateUser(s.GetContext(), dto.CreateUserRequest{
		Email: "not-an-email",
		Name:  "Bad",
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *UserServiceSuite) TestGetCurrentUser() {
	s.NoError(s.repo.Create(s.GetContext(), &user.User{
		ID:        types.DefaultUserID,
		Email:     "me@example.com",
		Name:      "Me",
		BaseModel: types.GetDefaultBaseModel(s.GetContext()),
	}))

	resp, err := s.service.GetCurrentUser(s.GetContext())
	s.NoError(err)
	s.Equal(types.DefaultUserID, resp.ID)
}

func (s *UserServiceSuite) TestGetCurrentUserNoIdentity() {
	_, err := s.service.GetCurrentUser(context.Background())
	s.Error(err)
	s.True(ierr.IsPermissionDenied(err))
}

func (s *UserServiceSuite) TestUpdateUser() {
	created := s.createUser("user@example.com")

	updated, err := s.service.UpdateUser(s.GetContext(), created.ID, dto.UpdateUserRequest{
		Role: lo.ToPtr("admin"),
	})
	s.NoError(err)
	s.Equal("admin", updated.Role)
}

func (s *UserServiceSuite) TestDeleteUser() {
	created := s.createUser("user@example.com")

	s.NoError(s.service.DeleteUser(s.GetContext(), created.ID))

	_, err := s.service.GetUser(s.GetContext(), created.ID)
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *UserServiceSuite) TestDeleteOwnAccount() {
	err := s.service.DeleteUser(s.GetContext(), types.DefaultUserID)
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}
