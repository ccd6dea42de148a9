package repositories

import (
	"context"

	"vitalchat/internal/domain/models"
)

// HistoryRepository persists durable chat turns keyed by (userID, chatType).
type HistoryRepository interface {
	// Append inserts one immutable turn row.
	Append(ctx context.Context, userID string, chatType models.ChatType, message, response string) error

	// RecentTurns returns up to limit rows, newest first. Callers that feed
	// prompt composition must reverse to chronological order themselves.
	// An empty history yields an empty slice, not an error.
	RecentTurns(ctx context.Context, userID string, chatType models.ChatType, limit int) ([]models.ChatTurn, error)

	// ListTurns returns every persisted turn oldest first.
	ListTurns(ctx context.Context, userID string, chatType models.ChatType) ([]models.ChatTurn, error)
}
