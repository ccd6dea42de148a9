package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"vitalchat/internal/domain/models"
	"vitalchat/internal/domain/repositories"
)

// PostgresHistoryRepository implements the HistoryRepository interface
type PostgresHistoryRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewHistoryRepository creates a new PostgresHistoryRepository
func NewHistoryRepository(config *RepositoryConfig) repositories.HistoryRepository {
	return &PostgresHistoryRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Append inserts one immutable chat turn row
func (r *PostgresHistoryRepository) Append(ctx context.Context, userID string, chatType models.ChatType, message, response string) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (user_id, chat_type, message, response)
		VALUES ($1, $2, $3, $4)
	`, r.tables.ChatHistory)

	if _, err := r.pool.Exec(ctx, query, userID, chatType, message, response); err != nil {
		return fmt.Errorf("append chat turn: %w", err)
	}

	return nil
}

// RecentTurns returns up to limit turns, newest first
func (r *PostgresHistoryRepository) RecentTurns(ctx context.Context, userID string, chatType models.ChatType, limit int) ([]models.ChatTurn, error) {
	query := fmt.Sprintf(`
		SELECT id, user_id, chat_type, message, response, created_at
		FROM %s
		WHERE user_id = $1 AND chat_type = $2
		ORDER BY id DESC
		LIMIT $3
	`, r.tables.ChatHistory)

	rows, err := r.pool.Query(ctx, query, userID, chatType, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent turns: %w", err)
	}
	defer rows.Close()

	return scanTurns(rows)
}

// ListTurns returns every persisted turn oldest first
func (r *PostgresHistoryRepository) ListTurns(ctx context.Context, userID string, chatType models.ChatType) ([]models.ChatTurn, error) {
	query := fmt.Sprintf(`
		SELECT id, user_id, chat_type, message, response, created_at
		FROM %s
		WHERE user_id = $1 AND chat_type = $2
		ORDER BY created_at ASC
	`, r.tables.ChatHistory)

	rows, err := r.pool.Query(ctx, query, userID, chatType)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	return scanTurns(rows)
}

func scanTurns(rows pgx.Rows) ([]models.ChatTurn, error) {
	turns := []models.ChatTurn{}
	for rows.Next() {
		var t models.ChatTurn
		if err := rows.Scan(&t.ID, &t.UserID, &t.ChatType, &t.Message, &t.Response, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan chat turn: %w", err)
		}
		turns = append(turns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate chat turns: %w", err)
	}
	return turns, nil
}
