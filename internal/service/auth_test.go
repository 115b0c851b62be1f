package service

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/emeraldmart/storefront/internal/api/dto"
	"github.com/emeraldmart/storefront/internal/cache"
	ierr "github.com/emeraldmart/storefront/internal/errors"
	"github.com/emeraldmart/storefront/internal/testutil"
	"github.com/stretchr/testify/suite"
)

type AuthServiceSuite struct {
	suite.Suite
	ctx         context.Context
	authService AuthService
	cache       cache.Cache
	userRepo    *testutil.InMemoryUserStore
	sessionRepo *testutil.InMemorySessionStore
}

func TestAuthService(t *testing.T) {
	suite.Run(t, new(AuthServiceSuite))
}

func (s *AuthServiceSuite) SetupTest() {
	s.ctx = testutil.SetupContext()
	s.userRepo = testutil.NewInMemoryUserStore()
	s.sessionRepo = testutil.NewInMemorySessionStore()

	params := newTestParams(s.T(), testutil.NewInMemoryCartStore())
	params.UserRepo = s.userRepo
	params.SessionRepo = s.sessionRepo
	s.cache = params.Cache

	s.authService = NewAuthService(params)
}

func registerRequest() dto.RegisterRequest {
	return dto.RegisterRequest{
		FullName:    "Jane Doe",
		DateOfBirth: "1990-04-01",
		Email:       "jane@example.com",
		Username:    "jane",
		Password:    "hunter22",
	}
}

func (s *AuthServiceSuite) TestRegisterSuccess() {
	resp, err := s.authService.Register(s.ctx, registerRequest())
	s.NoError(err)
	s.Equal("jane", resp.Username)
	s.Equal("Jane Doe", resp.FullName)
	s.False(resp.CreatedAt.IsZero())

	stored, err := s.userRepo.Get(s.ctx, "jane")
	s.NoError(err)
	s.NotEqual("hunter22", stored.PasswordHash, "password stored hashed")
}

func (s *AuthServiceSuite) TestRegisterValidationRunsInFormOrder() {
	testCases := []struct {
		name   string
		mutate func(*dto.RegisterRequest)
		hint   string
	}{
		{
			name:   "missing_name",
			mutate: func(r *dto.RegisterRequest) { r.FullName = "" },
			hint:   "Full name is required",
		},
		{
			name:   "name_with_digits",
			mutate: func(r *dto.RegisterRequest) { r.FullName = "Jane 2" },
			hint:   "Name must contain letters only",
		},
		{
			name:   "missing_dob",
			mutate: func(r *dto.RegisterRequest) { r.DateOfBirth = "" },
			hint:   "Date of birth is required",
		},
		{
			name:   "missing_email",
			mutate: func(r *dto.RegisterRequest) { r.Email = "" },
			hint:   "Email is required",
		},
		{
			name:   "malformed_email",
			mutate: func(r *dto.RegisterRequest) { r.Email = "not-an-email" },
			hint:   "Invalid email format",
		},
		{
			name:   "missing_username",
			mutate: func(r *dto.RegisterRequest) { r.Username = "" },
			hint:   "Username is required",
		},
		{
			name:   "missing_password",
			mutate: func(r *dto.RegisterRequest) { r.Password = "" },
			hint:   "Password is required",
		},
		{
			name:   "short_password",
			mutate: func(r *dto.RegisterRequest) { r.Password = "abc" },
			hint:   "Password must be 6+ characters",
		},
		{
			name: "name_checked_before_email",
			mutate: func(r *dto.RegisterRequest) {
				r.FullName = ""
				r.Email = "broken"
			},
			hint: "Full name is required",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			req := registerRequest()
			tc.mutate(&req)

			_, err := s.authService.Register(s.ctx, req)
			s.Error(err)
			s.True(ierr.IsValidation(err))
			s.Contains(errors.GetAllHints(err), tc.hint)
		})
	}
}

func (s *AuthServiceSuite) TestRegisterDuplicateUsername() {
	_, err := s.authService.Register(s.ctx, registerRequest())
	s.Require().NoError(err)

	_, err = s.authService.Register(s.ctx, registerRequest())
	s.Error(err)
	s.True(ierr.IsAlreadyExists(err))
}

func (s *AuthServiceSuite) TestLoginSuccess() {
	_, err := s.authService.Register(s.ctx, registerRequest())
	s.Require().NoError(err)

	resp, err := s.authService.Login(s.ctx, dto.LoginRequest{Username: "jane", Password: "hunter22"})
	s.NoError(err)
	s.Equal("jane", resp.Username)
	s.NotEmpty(resp.Token)
	s.False(resp.ExpiresAt.IsZero())

	session, err := s.authService.CurrentUser(s.ctx)
	s.NoError(err)
	s.True(session.LoggedIn)
	s.Equal("jane", session.Username)
}

func (s *AuthServiceSuite) TestLoginWrongPassword() {
	_, err := s.authService.Register(s.ctx, registerRequest())
	s.Require().NoError(err)

	_, err = s.authService.Login(s.ctx, dto.LoginRequest{Username: "jane", Password: "wrong-pass"})
	s.Error(err)
	s.True(ierr.IsPermissionDenied(err))
}

func (s *AuthServiceSuite) TestLoginUnknownUserLooksLikeWrongPassword() {
	_, err := s.authService.Login(s.ctx, dto.LoginRequest{Username: "nobody", Password: "hunter22"})
	s.Error(err)
	s.True(ierr.IsPermissionDenied(err), "unknown user and bad password are indistinguishable")
}

func (s *AuthServiceSuite) TestLoginValidation() {
	_, err := s.authService.Login(s.ctx, dto.LoginRequest{Username: "", Password: "hunter22"})
	s.Error(err)
	s.True(ierr.IsValidation(err))

	_, err = s.authService.Login(s.ctx, dto.LoginRequest{Username: "jane", Password: "abc"})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *AuthServiceSuite) TestLogoutClearsSession() {
	_, err := s.authService.Register(s.ctx, registerRequest())
	s.Require().NoError(err)
	_, err = s.authService.Login(s.ctx, dto.LoginRequest{Username: "jane", Password: "hunter22"})
	s.Require().NoError(err)

	s.NoError(s.authService.Logout(s.ctx))

	session, err := s.authService.CurrentUser(s.ctx)
	s.NoError(err)
	s.False(session.LoggedIn)
	s.Empty(session.Username)
}

func (s *AuthServiceSuite) TestValidateToken() {
	_, err := s.authService.Register(s.ctx, registerRequest())
	s.Require().NoError(err)
	resp, err := s.authService.Login(s.ctx, dto.LoginRequest{Username: "jane", Password: "hunter22"})
	s.Require().NoError(err)

	username, err := s.authService.ValidateToken(s.ctx, resp.Token)
	s.NoError(err)
	s.Equal("jane", username)

	_, err = s.authService.ValidateToken(s.ctx, "not-a-token")
	s.Error(err)
	s.True(ierr.IsPermissionDenied(err))
}

func (s *AuthServiceSuite) TestValidateTokenAfterCacheEviction() {
	_, err := s.authService.Register(s.ctx, registerRequest())
	s.Require().NoError(err)
	resp, err := s.authService.Login(s.ctx, dto.LoginRequest{Username: "jane", Password: "hunter22"})
	s.Require().NoError(err)

	// Drop the cache entry; the token must still verify by signature
	s.cache.DeleteByPrefix(s.ctx, cache.PrefixSession)

	username, err := s.authService.ValidateToken(s.ctx, resp.Token)
	s.NoError(err)
	s.Equal("jane", username)
}
