package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"os"

	"vitalchat/internal/config"
	"vitalchat/internal/domain"
	"vitalchat/internal/domain/models"
	"vitalchat/internal/repository/postgres"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	dropTables := flag.Bool("drop-tables", false, "Drop all tables before creating the schema (fresh start)")
	schemaOnly := flag.Bool("schema-only", false, "Only set up schema, don't seed the demo user")
	flag.Parse()

	_ = godotenv.Load()

	cfg := config.Load()

	// Prevent destructive operations in production
	if cfg.Environment == "prod" && *dropTables {
		log.Fatalf("BLOCKED: cannot run --drop-tables in production environment")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	tables := postgres.NewTableNames(cfg.TablePrefix)

	if *dropTables {
		log.Println("Dropping all tables...")
		if err := dropAllTables(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
	}

	log.Println("Ensuring database schema is up to date...")
	if err := runSchema(ctx, pool, tables); err != nil {
		log.Fatalf("Failed to run schema: %v", err)
	}
	log.Println("Schema ready")

	if *schemaOnly {
		return
	}

	if err := seedDemoUser(ctx, pool, tables, logger); err != nil {
		log.Fatalf("Failed to seed demo user: %v", err)
	}
	log.Println("Seeding complete")
}

// runSchema creates the four application tables if they do not exist.
func runSchema(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS ` + tables.Users + ` (
			user_id UUID PRIMARY KEY,
			username VARCHAR(255) NOT NULL UNIQUE,
			password TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.ChatHistory + ` (
			id BIGSERIAL PRIMARY KEY,
			user_id TEXT NOT NULL,
			chat_type TEXT NOT NULL DEFAULT 'general',
			message TEXT NOT NULL,
			response TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS ` + tables.ChatHistory + `_user_type_idx
			ON ` + tables.ChatHistory + ` (user_id, chat_type, id DESC)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.CSVData + ` (
			id BIGSERIAL PRIMARY KEY,
			user_id TEXT NOT NULL,
			file_type TEXT NOT NULL,
			json_content JSONB NOT NULL,
			uploaded_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.Diary + ` (
			id BIGSERIAL PRIMARY KEY,
			user_id TEXT NOT NULL,
			content TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS ` + tables.Diary + `_user_idx
			ON ` + tables.Diary + ` (user_id, created_at DESC)`,
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func dropAllTables(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) error {
	for _, table := range []string{tables.ChatHistory, tables.CSVData, tables.Diary, tables.Users} {
		if _, err := pool.Exec(ctx, `DROP TABLE IF EXISTS `+table+` CASCADE`); err != nil {
			return err
		}
	}
	return nil
}

// seedDemoUser creates a demo account for manual testing on fresh environments.
func seedDemoUser(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames, logger *slog.Logger) error {
	repoConfig := &postgres.RepositoryConfig{Pool: pool, Tables: tables, Logger: logger}
	userRepo := postgres.NewUserRepository(repoConfig)

	user := &models.User{
		UserID:   uuid.NewString(),
		Username: "demo",
		Password: "demo",
	}
	if err := userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			logger.Info("demo user already present", "username", user.Username)
			return nil
		}
		return err
	}

	logger.Info("demo user created", "user_id", user.UserID, "username", user.Username)
	return nil
}
