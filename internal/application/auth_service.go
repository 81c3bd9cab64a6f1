package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mirak2305/hilfe-entreprise-backend/internal/domain/entity"
	"github.com/mirak2305/hilfe-entreprise-backend/internal/domain/repository"
	"github.com/mirak2305/hilfe-entreprise-backend/pkg/helpers"
)

// Login failure taxonomy. Handlers map these to HTTP statuses; anything else
// coming out of the service is an opaque store failure and becomes a 500.
var (
	ErrMissingFields      = errors.New("email and password required")
	ErrUserNotFound       = errors.New("user not found")
	ErrAccountInactive    = errors.New("account inactive")
	ErrNoPasswordSet      = errors.New("password not configured")
	ErrInvalidCredentials = errors.New("incorrect password")
)

// AuthService orchestrates login and password changes over the credential
// store, the password hasher and the token issuer.
type AuthService struct {
	Repo   repository.UserRepository
	JWT    *helpers.JWTManager
	Logger *logrus.Logger
}

func NewAuthService(repo repository.UserRepository, jwt *helpers.JWTManager, logger *logrus.Logger) *AuthService {
	return &AuthService{Repo: repo, JWT: jwt, Logger: logger}
}

// LoginResult carries the issued token and the authenticated user.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *entity.User
}

// Login runs the full attempt: field check, identity lookup, status check,
// credential check, token issuance. The last-login stamp is best-effort and
// never fails a successful login.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if email == "" || password == "" {
		return nil, ErrMissingFields
	}

	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if u.Status != entity.StatusActive {
		return nil, ErrAccountInactive
	}

	if u.PasswordHash == "" {
		return nil, ErrNoPasswordSet
	}
	if !helpers.CompareHashAndPassword(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	token, exp, err := s.JWT.Generate(u.ID, u.Email, string(u.Role), u.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	if err := s.Repo.UpdateLastLogin(ctx, u.ID); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("last login stamp failed")
	}

	return &LoginResult{Token: token, ExpiresAt: exp, User: u}, nil
}

// ChangePassword verifies the current password and stores a new hash.
// The caller's existing token stays valid until its own expiry.
func (s *AuthService) ChangePassword(ctx context.Context, u *entity.User, currentPassword, newPassword string) error {
	if currentPassword == "" || newPassword == "" {
		return ErrMissingFields
	}
	if u.PasswordHash == "" {
		return ErrNoPasswordSet
	}
	if !helpers.CompareHashAndPassword(u.PasswordHash, currentPassword) {
		return ErrInvalidCredentials
	}
	hash, err := helpers.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.Repo.UpdatePasswordHash(ctx, u.ID, hash); err != nil {
		return fmt.Errorf("store password: %w", err)
	}
	return nil
}
