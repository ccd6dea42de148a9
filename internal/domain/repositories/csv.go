package repositories

import (
	"context"
	"encoding/json"

	"vitalchat/internal/domain/models"
)

// CSVRepository persists processed CSV payloads as JSON blobs per user and file type.
type CSVRepository interface {
	Save(ctx context.Context, userID, fileType string, jsonData json.RawMessage) error

	// ListByType returns records newest first.
	ListByType(ctx context.Context, userID, fileType string) ([]models.CSVRecord, error)
}
