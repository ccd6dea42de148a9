package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"vitalchat/internal/domain/models"
	"vitalchat/internal/domain/repositories"
)

// PostgresCSVRepository implements the CSVRepository interface
type PostgresCSVRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewCSVRepository creates a new PostgresCSVRepository
func NewCSVRepository(config *RepositoryConfig) repositories.CSVRepository {
	return &PostgresCSVRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Save persists one processed CSV payload
func (r *PostgresCSVRepository) Save(ctx context.Context, userID, fileType string, jsonData json.RawMessage) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (user_id, file_type, json_content)
		VALUES ($1, $2, $3)
	`, r.tables.CSVData)

	if _, err := r.pool.Exec(ctx, query, userID, fileType, string(jsonData)); err != nil {
		return fmt.Errorf("save csv data: %w", err)
	}

	return nil
}

// ListByType returns records newest first
func (r *PostgresCSVRepository) ListByType(ctx context.Context, userID, fileType string) ([]models.CSVRecord, error) {
	query := fmt.Sprintf(`
		SELECT id, user_id, file_type, json_content, uploaded_at
		FROM %s
		WHERE user_id = $1 AND file_type = $2
		ORDER BY uploaded_at DESC
	`, r.tables.CSVData)

	rows, err := r.pool.Query(ctx, query, userID, fileType)
	if err != nil {
		return nil, fmt.Errorf("query csv data: %w", err)
	}
	defer rows.Close()

	records := []models.CSVRecord{}
	for rows.Next() {
		var rec models.CSVRecord
		var content string
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.FileType, &content, &rec.UploadedAt); err != nil {
			return nil, fmt.Errorf("scan csv record: %w", err)
		}
		rec.JSONData = json.RawMessage(content)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate csv records: %w", err)
	}

	return records, nil
}
