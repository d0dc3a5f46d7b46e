package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/iliyamo/docutrack/internal/config"
	"github.com/iliyamo/docutrack/internal/logger"
	"github.com/iliyamo/docutrack/internal/model"
	"github.com/iliyamo/docutrack/internal/repository"
	"github.com/iliyamo/docutrack/internal/utils"
	"github.com/iliyamo/docutrack/internal/validate"
)

// UserStore is the subset of the user repository the auth service needs.
type UserStore interface {
	Create(ctx context.Context, u model.User) (uint64, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
}

// RegisterInput is the client payload for account creation.
type RegisterInput struct {
	Email     string `json:"email" validate:"required,email,max=255"`
	Password  string `json:"password" validate:"required,max=72"`
	FirstName string `json:"firstName" validate:"max=100"`
	LastName  string `json:"lastName" validate:"max=100"`
}

// AuthResult is returned by Register and Login.
type AuthResult struct {
	Token     string
	ExpiresAt time.Time
	User      model.User
}

type AuthService struct {
	users  UserStore
	secret string
	ttl    time.Duration
	cost   int
	log    *logger.Logger
}

func NewAuthService(users UserStore, cfg config.Config, log *logger.Logger) *AuthService {
	return &AuthService{users: users, secret: cfg.JWT.Secret, ttl: cfg.JWT.TTL, cost: cfg.BcryptCost, log: log}
}

// Register creates a user-role account and signs a session token for it.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (AuthResult, error) {
	in.Email = repository.NormalizeEmail(in.Email)
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	if in.Email == "" || in.Password == "" {
		return AuthResult{}, invalid("email and password are required")
	}
	if err := validate.Struct(in); err != nil {
		return AuthResult{}, asValidation(err)
	}

	hash, err := utils.HashPassword(in.Password, s.cost)
	if err != nil {
		return AuthResult{}, fmt.Errorf("hash password: %w", err)
	}
	u := model.User{
		Email:        in.Email,
		PasswordHash: hash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Role:         model.RoleUser,
	}
	u.ID, err = s.users.Create(ctx, u)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return AuthResult{}, invalid("user already exists")
		}
		return AuthResult{}, fmt.Errorf("create user: %w", err)
	}
	s.log.Info("user registered", "user_id", u.ID)
	return s.issue(u)
}

// Login verifies credentials and signs a session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (AuthResult, error) {
	email = repository.NormalizeEmail(email)
	if email == "" || password == "" {
		return AuthResult{}, invalid("email and password are required")
	}
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return AuthResult{}, ErrInvalidCredentials
		}
		return AuthResult{}, fmt.Errorf("lookup user: %w", err)
	}
	if !utils.VerifyPassword(u.PasswordHash, password) {
		return AuthResult{}, ErrInvalidCredentials
	}
	return s.issue(u)
}

// SeedAdmin inserts the configured administrator unless the email is
// already registered. Running it repeatedly, or concurrently from several
// instances, is safe.
func (s *AuthService) SeedAdmin(ctx context.Context, cfg config.AdminConfig) error {
	email := repository.NormalizeEmail(cfg.Email)
	if email == "" || cfg.Password == "" {
		return errors.New("admin email and password must be set")
	}
	_, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		s.log.Debug("admin account present", "email", email)
		return nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("lookup admin: %w", err)
	}

	hash, err := utils.HashPassword(cfg.Password, s.cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	id, err := s.users.Create(ctx, model.User{
		Email:        email,
		PasswordHash: hash,
		FirstName:    cfg.FirstName,
		LastName:     cfg.LastName,
		Role:         model.RoleAdmin,
	})
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return nil
		}
		return fmt.Errorf("create admin: %w", err)
	}
	s.log.Info("admin account created", "user_id", id, "email", email)
	return nil
}

func (s *AuthService) issue(u model.User) (AuthResult, error) {
	tok, err := utils.NewAccessToken(s.secret, u, s.ttl)
	if err != nil {
		return AuthResult{}, fmt.Errorf("sign token: %w", err)
	}
	return AuthResult{Token: tok.Token, ExpiresAt: tok.Exp, User: u}, nil
}
