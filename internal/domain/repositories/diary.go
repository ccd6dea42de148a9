package repositories

import (
	"context"

	"vitalchat/internal/domain/models"
)

// DiaryRepository persists free-text notes keyed by user.
type DiaryRepository interface {
	Save(ctx context.Context, userID, content string) error

	// ListByUser returns notes newest first.
	ListByUser(ctx context.Context, userID string) ([]models.DiaryNote, error)

	// Delete removes one note by id. Returns domain.ErrNotFound when no row matches.
	Delete(ctx context.Context, noteID int64) error
}
