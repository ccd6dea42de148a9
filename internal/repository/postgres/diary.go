package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"vitalchat/internal/domain"
	"vitalchat/internal/domain/models"
	"vitalchat/internal/domain/repositories"
)

// PostgresDiaryRepository implements the DiaryRepository interface
type PostgresDiaryRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewDiaryRepository creates a new PostgresDiaryRepository
func NewDiaryRepository(config *RepositoryConfig) repositories.DiaryRepository {
	return &PostgresDiaryRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Save persists one diary note
func (r *PostgresDiaryRepository) Save(ctx context.Context, userID, content string) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (user_id, content)
		VALUES ($1, $2)
	`, r.tables.Diary)

	if _, err := r.pool.Exec(ctx, query, userID, content); err != nil {
		return fmt.Errorf("save diary note: %w", err)
	}

	return nil
}

// ListByUser returns notes newest first
func (r *PostgresDiaryRepository) ListByUser(ctx context.Context, userID string) ([]models.DiaryNote, error) {
	query := fmt.Sprintf(`
		SELECT id, user_id, content, created_at
		FROM %s
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, r.tables.Diary)

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query diary notes: %w", err)
	}
	defer rows.Close()

	notes := []models.DiaryNote{}
	for rows.Next() {
		var n models.DiaryNote
		if err := rows.Scan(&n.ID, &n.UserID, &n.Content, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan diary note: %w", err)
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate diary notes: %w", err)
	}

	return notes, nil
}

// Delete removes one note by id
func (r *PostgresDiaryRepository) Delete(ctx context.Context, noteID int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Diary)

	tag, err := r.pool.Exec(ctx, query, noteID)
	if err != nil {
		return fmt.Errorf("delete diary note: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("diary note %d: %w", noteID, domain.ErrNotFound)
	}

	return nil
}
