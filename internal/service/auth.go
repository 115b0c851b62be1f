package service

import (
	"context"
	"time"

	"github.com/emeraldmart/storefront/internal/api/dto"
	"github.com/emeraldmart/storefront/internal/cache"
	"github.com/emeraldmart/storefront/internal/domain/user"
	ierr "github.com/emeraldmart/storefront/internal/errors"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles registration, login and the single logged-in session
type AuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*dto.SessionResponse, error)
	ValidateToken(ctx context.Context, token string) (string, error)
}

type authService struct {
	ServiceParams
}

// NewAuthService creates a new auth service
func NewAuthService(params ServiceParams) AuthService {
	return &authService{ServiceParams: params}
}

func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to process password").
			Mark(ierr.ErrSystem)
	}

	u := &user.User{
		Username:     req.Username,
		FullName:     req.FullName,
		DateOfBirth:  req.DateOfBirth,
		Email:        req.Email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.UserRepo.Create(ctx, u); err != nil {
		return nil, err
	}

	s.Logger.Infow("user registered", "username", u.Username)

	return &dto.UserResponse{
		Username:  u.Username,
		FullName:  u.FullName,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}, nil
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := s.UserRepo.Get(ctx, req.Username)
	if err != nil {
		if ierr.IsNotFound(err) {
			return nil, invalidCredentials()
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, invalidCredentials()
	}

	expiresAt := time.Now().UTC().Add(s.Config.Auth.TokenTTL)
	token, err := s.issueToken(u.Username, expiresAt)
	if err != nil {
		return nil, err
	}

	if err := s.SessionRepo.SetLoggedIn(ctx, u.Username); err != nil {
		// Session persistence failure is recoverable; the token still works
		s.Logger.Errorw("failed to persist login session", "error", err)
	}

	s.Cache.Set(ctx, cache.GenerateKey(cache.PrefixSession, token), u.Username, s.Config.Auth.TokenTTL)

	return &dto.LoginResponse{
		Username:  u.Username,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

func (s *authService) Logout(ctx context.Context) error {
	if err := s.SessionRepo.ClearLoggedIn(ctx); err != nil {
		return err
	}
	s.Cache.DeleteByPrefix(ctx, cache.PrefixSession)
	return nil
}

func (s *authService) CurrentUser(ctx context.Context) (*dto.SessionResponse, error) {
	username, err := s.SessionRepo.GetLoggedIn(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.SessionResponse{
		LoggedIn: username != "",
		Username: username,
	}, nil
}

// ValidateToken resolves a session token to its username
func (s *authService) ValidateToken(ctx context.Context, token string) (string, error) {
	if cached, ok := s.Cache.Get(ctx, cache.GenerateKey(cache.PrefixSession, token)); ok {
		if username, ok := cached.(string); ok {
			return username, nil
		}
	}

	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ierr.NewError("unexpected signing method").Mark(ierr.ErrPermissionDenied)
		}
		return []byte(s.Config.Auth.Secret), nil
	})
	if err != nil || !parsed.Valid {
		return "", ierr.NewError("invalid session token").
			WithHint("Please log in again").
			Mark(ierr.ErrPermissionDenied)
	}

	return claims.Subject, nil
}

func (s *authService) issueToken(username string, expiresAt time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(time.Now().UTC()),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(s.Config.Auth.Secret))
	if err != nil {
		return "", ierr.WithError(err).
			WithHint("Failed to issue session token").
			Mark(ierr.ErrSystem)
	}
	return token, nil
}

func invalidCredentials() error {
	return ierr.NewError("invalid credentials").
		WithHint("Invalid username or password").
		Mark(ierr.ErrPermissionDenied)
}
