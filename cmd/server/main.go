package main

import (
	"context"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"vitalchat/internal/config"
	"vitalchat/internal/handler"
	"vitalchat/internal/middleware"
	"vitalchat/internal/repository/postgres"
	"vitalchat/internal/service/auth"
	"vitalchat/internal/service/chat"
	"vitalchat/internal/service/csvchart"
	"vitalchat/internal/service/diary"
	"vitalchat/internal/service/llm"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	var logOut io.Writer = os.Stdout
	if cfg.LogDir != "" {
		f, err := config.SetupLogFile(cfg.LogDir, 10)
		if err != nil {
			log.Fatalf("Failed to set up log file: %v", err)
		}
		defer f.Close()
		logOut = io.MultiWriter(os.Stdout, f)
	}

	logger := slog.New(slog.NewJSONHandler(logOut, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Absent provider credential is fatal at startup, not per-request
	if cfg.GeminiAPIKey == "" {
		log.Fatal("GEMINI_API_KEY is not set")
	}

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
		"primary_model", cfg.Models.Primary,
		"fallbacks", cfg.Models.Fallbacks,
	)

	// Create pgx connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected")

	// Create repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: postgres.NewTableNames(cfg.TablePrefix),
		Logger: logger,
	}
	historyRepo := postgres.NewHistoryRepository(repoConfig)
	csvRepo := postgres.NewCSVRepository(repoConfig)
	diaryRepo := postgres.NewDiaryRepository(repoConfig)
	userRepo := postgres.NewUserRepository(repoConfig)

	// Gemini client + fallback orchestrator over the configured candidates
	gemini := llm.NewGeminiClient(cfg.GeminiAPIKey)
	orchestrator := llm.NewOrchestrator(
		gemini,
		cfg.Models.Candidates(),
		time.Duration(cfg.AttemptTimeoutSeconds)*time.Second,
		logger,
	)

	// Create services
	ephemeral := chat.NewEphemeralStore()
	chatService := chat.NewService(historyRepo, ephemeral, orchestrator, logger)
	chartService := csvchart.NewService(orchestrator, logger)
	tokens := auth.NewTokenIssuer(cfg.TokenSecret, 30*24*time.Hour)
	authService := auth.NewService(userRepo, tokens, logger)
	diaryService := diary.NewService(diaryRepo, logger)

	// Create handlers
	chatHandler := handler.NewChatHandler(chatService, logger)
	csvHandler := handler.NewCSVHandler(chartService, csvRepo, logger)
	authHandler := handler.NewAuthHandler(authService, logger)
	diaryHandler := handler.NewDiaryHandler(diaryService, logger)
	healthHandler := handler.NewHealthHandler(cfg.Models)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", healthHandler.Health)

	// Conversation routes
	mux.HandleFunc("POST /chat", chatHandler.Chat)
	mux.HandleFunc("POST /chat-temp", chatHandler.ChatTemp)
	mux.HandleFunc("POST /save-message", chatHandler.SaveMessage)
	mux.HandleFunc("GET /get-history/{userId}/{chatType}", chatHandler.GetHistory)

	// CSV routes
	mux.HandleFunc("POST /upload-csv", csvHandler.UploadCSV)
	mux.HandleFunc("POST /save-csv", csvHandler.SaveCSV)
	mux.HandleFunc("GET /get-csv/{userId}/{fileType}", csvHandler.GetCSV)

	// Account routes
	mux.HandleFunc("POST /register", authHandler.Register)
	mux.HandleFunc("POST /login", authHandler.Login)

	// Diary routes
	mux.HandleFunc("POST /save-diary", diaryHandler.SaveDiary)
	mux.HandleFunc("GET /get-diary/{userId}", diaryHandler.GetDiary)
	mux.HandleFunc("DELETE /delete-diary/{noteId}", diaryHandler.DeleteDiary)

	// Build middleware chain: CORS → Recovery → Routes
	var root http.Handler = mux
	root = middleware.Recovery(logger)(root)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	root = corsHandler.Handler(root)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 5 * time.Minute, // the fallback walk can take several model attempts
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
