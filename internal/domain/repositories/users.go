package repositories

import (
	"context"

	"vitalchat/internal/domain/models"
)

// UserRepository persists account rows.
type UserRepository interface {
	// Create inserts a new user. Returns domain.ErrConflict when the
	// username is already taken.
	Create(ctx context.Context, user *models.User) error

	// GetByUsername returns domain.ErrNotFound when the username is unknown.
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}
