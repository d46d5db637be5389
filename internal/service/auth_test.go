package service

import (
	"testing"

	"github.com/gestia/gestia/internal/api/dto"
	"github.com/gestia/gestia/internal/auth"
	"github.com/gestia/gestia/internal/config"
	ierr "github.com/gestia/gestia/internal/errors"
	"github.com/gestia/gestia/internal/testutil"
	"github.com/gestia/gestia/internal/types"
	"github.com/stretchr/testify/suite"
)

type AuthServiceSuite struct {
	testutil.BaseServiceTestSuite
	service  AuthService
	provider auth.Provider
	userRepo *testutil.InMemoryUserStore
}

func TestAuthService(t *testing.T) {
	suite.Run(t, new(AuthServiceSuite))
}

func (s *AuthServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.GetConfig().Auth = config.AuthConfig{
		Provider: types.AuthProviderFlag,
		Secret:   "test-secret",
	}
	s.userRepo = s.GetStores().UserRepo.(*testutil.InMemoryUserStore)
	s.provider = auth.NewFlagProvider(s.GetConfig())
	s.service = NewAuthService(s.provider, s.userRepo, s.GetLogger())
}

func (s *AuthServiceSuite) signUpRequest() dto.SignUpRequest {
	return dto.SignUpRequest{
		Email:    "owner@example.com",
		Password: "correct-horse",
		Name:     "Owner",
	}
}

func (s *AuthServiceSuite) TestSignUp() {
	resp, err := s.service.SignUp(s.GetContext(), s.signUpRequest())
	s.NoError(err)
	s.NotEmpty(resp.UserID)
	s.NotEmpty(resp.Token)
	s.Equal("owner@example.com", resp.Email)

	u, err := s.userRepo.GetByEmail(s.GetContext(), "owner@example.com")
	s.NoError(err)
	s.Equal(resp.UserID, u.ID)
	s.Equal("owner", u.Role)
	s.NotEmpty(u.TenantID)

	// The token carries the freshly provisioned tenant
	claims, err := s.provider.ValidateToken(s.GetContext(), resp.Token)
	s.NoError(err)
	s.Equal(u.TenantID, claims.TenantID)
	s.Equal(resp.UserID, claims.UserID)
}

func (s *AuthServiceSuite) TestSignUpDuplicateEmail() {
	_, err := s.service.SignUp(s.GetContext(), s.signUpRequest())
	s.NoError(err)

	_, err = s.service.SignUp(s.GetContext(), s.signUpRequest())
	s.Error(err)
	s.True(ierr.IsAlreadyExists(err))
}

func (s *AuthServiceSuite) TestSignUpShortPassword() {
	req := s.signUpRequest()
	req.Password = "short"

	_, err := s.service.SignUp(s.GetContext(), req)
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *AuthServiceSuite) TestSignUpProvisionsDistinctTenants() {
	first, err := s.service.SignUp(s.GetContext(), s.signUpRequest())
	s.NoError(err)

	req := s.signUpRequest()
	req.Email = "other@example.com"
	second, err := s.service.SignUp(s.GetContext(), req)
	s.NoError(err)

	a, err := s.userRepo.GetByEmail(s.GetContext(), "owner@example.com")
	s.NoError(err)
	b, err := s.userRepo.GetByEmail(s.GetContext(), "other@example.com")
	s.NoError(err)
	s.Equal(first.UserID, a.ID)
	s.Equal(second.UserID, b.ID)
	s.NotEqual(a.TenantID, b.TenantID)
}

func (s *AuthServiceSuite) TestLogin() {
	signedUp, err := s.service.SignUp(s.GetContext(), s.signUpRequest())
	s.NoError(err)

	resp, err := s.service.Login(s.GetContext(), dto.LoginRequest{
		Email:    "owner@example.com",
		Password: "correct-horse",
	})
	s.NoError(err)
	s.Equal(signedUp.UserID, resp.UserID)
	s.NotEmpty(resp.Token)
}

func (s *AuthServiceSuite) TestLoginUnknownEmail() {
	_, err := s.service.Login(s.GetContext(), dto.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	s.Error(err)
	s.True(ierr.IsPermissionDenied(err))
}

func (s *AuthServiceSuite) TestValidateTokenRejectsGarbage() {
	_, err := s.provider.ValidateToken(s.GetContext(), "not-a-token")
	s.Error(err)
	s.True(ierr.IsPermissionDenied(err))
}
