package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"vitalchat/internal/config"
	"vitalchat/internal/domain"
	"vitalchat/internal/domain/models"
	"vitalchat/internal/domain/repositories"
)

// Service handles registration and login. Passwords are compared as plain
// text; hardening is an explicit non-goal of this backend.
type Service struct {
	userRepo repositories.UserRepository
	tokens   *TokenIssuer
	logger   *slog.Logger
}

// NewService creates a new auth service.
func NewService(userRepo repositories.UserRepository, tokens *TokenIssuer, logger *slog.Logger) *Service {
	return &Service{
		userRepo: userRepo,
		tokens:   tokens,
		logger:   logger,
	}
}

// Credentials is the register/login request body.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (c *Credentials) validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Username, validation.Required, validation.Length(1, config.MaxUsernameLength)),
		validation.Field(&c.Password, validation.Required),
	)
}

// Register creates a new user with a generated user id. A taken username
// returns domain.ErrConflict.
func (s *Service) Register(ctx context.Context, creds *Credentials) (*models.User, error) {
	if err := creds.validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	user := &models.User{
		UserID:   uuid.NewString(),
		Username: creds.Username,
		Password: creds.Password,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered", "user_id", user.UserID, "username", user.Username)
	return user, nil
}

// LoginResult is returned on a successful login.
type LoginResult struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Token    string `json:"token"`
}

// Login checks the credentials against the stored row. Unknown usernames
// and wrong passwords both surface as domain.ErrUnauthorized so callers
// cannot distinguish them.
func (s *Service) Login(ctx context.Context, creds *Credentials) (*LoginResult, error) {
	if err := creds.validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	user, err := s.userRepo.GetByUsername(ctx, creds.Username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: usuário ou senha incorretos", domain.ErrUnauthorized)
		}
		return nil, err
	}

	if user.Password != creds.Password {
		s.logger.Info("login rejected", "username", creds.Username)
		return nil, fmt.Errorf("%w: usuário ou senha incorretos", domain.ErrUnauthorized)
	}

	token, err := s.tokens.Issue(user.UserID, user.Username)
	if err != nil {
		return nil, err
	}

	s.logger.Info("login ok", "user_id", user.UserID, "username", user.Username)

	return &LoginResult{
		UserID:   user.UserID,
		Username: user.Username,
		Token:    token,
	}, nil
}
