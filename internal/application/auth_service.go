package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/castwave/castwave/internal/domain/entity"
	repo "github.com/castwave/castwave/internal/domain/repository"
	"github.com/castwave/castwave/pkg/helpers"
	"github.com/castwave/castwave/pkg/mailer"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

// AuthService owns signup, login, token verification and the idempotent
// admin bootstrap.
type AuthService struct {
	Users  repo.UserRepository
	JWT    *helpers.JWTManager
	Logger *logrus.Logger
	Pub    *mailer.Publisher

	AdminEmail    string
	AdminUsername string
	AdminPassword string
}

func NewAuthService(users repo.UserRepository, jwt *helpers.JWTManager, logger *logrus.Logger, pub *mailer.Publisher, adminEmail, adminUsername, adminPassword string) *AuthService {
	return &AuthService{
		Users:         users,
		JWT:           jwt,
		Logger:        logger,
		Pub:           pub,
		AdminEmail:    adminEmail,
		AdminUsername: adminUsername,
		AdminPassword: adminPassword,
	}
}

// Register stores a new user with a bcrypt hash and issues a session token.
// Duplicate emails surface as repository.ErrEmailTaken.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*entity.User, string, error) {
	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, "", err
	}
	u := &entity.User{
		Username: username,
		Email:    email,
		Password: hash,
		Role:     entity.RoleUser,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		return nil, "", err
	}

	token, _, err := s.JWT.GenerateToken(u)
	if err != nil {
		return nil, "", err
	}

	if s.Pub != nil {
		if err := s.Pub.PublishWelcome(ctx, u.Email, u.Username); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("email", u.Email).Warn("welcome email enqueue failed")
		}
	}
	return u, token, nil
}

// Authenticate checks email and password and issues a fresh token.
// No lockout policy and no login counter; failures only yield
// ErrInvalidCredentials.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*entity.User, string, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil || u == nil {
		return nil, "", ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, "", ErrInvalidCredentials
	}
	token, _, err := s.JWT.GenerateToken(u)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// VerifyToken validates signature and expiry, returning the embedded claims.
func (s *AuthService) VerifyToken(token string) (*helpers.Claims, error) {
	return s.JWT.ParseToken(token)
}

// SetupAdmin ensures the designated admin account exists. If the account
// already exists its role is forced to admin; otherwise it is created with
// the configured password. Either way a usable token is returned. The bool
// result reports whether the account was created by this call.
func (s *AuthService) SetupAdmin(ctx context.Context) (*entity.User, string, bool, error) {
	u, err := s.Users.GetByEmail(ctx, s.AdminEmail)
	if err == nil && u != nil {
		if u.Role != entity.RoleAdmin {
			if err := s.Users.UpdateRole(ctx, u.ID, entity.RoleAdmin); err != nil {
				return nil, "", false, err
			}
			u.Role = entity.RoleAdmin
		}
		token, _, err := s.JWT.GenerateToken(u)
		if err != nil {
			return nil, "", false, err
		}
		return u, token, false, nil
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return nil, "", false, err
	}

	hash, err := helpers.HashPassword(s.AdminPassword)
	if err != nil {
		return nil, "", false, err
	}
	u = &entity.User{
		Username: s.AdminUsername,
		Email:    s.AdminEmail,
		Password: hash,
		Role:     entity.RoleAdmin,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		return nil, "", false, err
	}
	token, _, err := s.JWT.GenerateToken(u)
	if err != nil {
		return nil, "", false, err
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"email": u.Email, "at": time.Now().UTC()}).Info("admin account created")
	}
	return u, token, true, nil
}
