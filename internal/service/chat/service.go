package chat

import (
	"context"
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"vitalchat/internal/config"
	"vitalchat/internal/domain"
	"vitalchat/internal/domain/models"
	"vitalchat/internal/domain/repositories"
	"vitalchat/internal/service/llm"
)

// Service composes history lookup, prompt composition and the fallback
// orchestrator into one conversation turn.
//
// For durable chats, generating a reply and persisting the turn are separate
// operations: the client calls SaveTurn after showing the reply, so a reply
// can be shown and never saved. Ephemeral chats append synchronously inside
// GenerateTemp and can never miss a turn that way.
type Service struct {
	historyRepo  repositories.HistoryRepository
	ephemeral    *EphemeralStore
	orchestrator *llm.Orchestrator
	logger       *slog.Logger
}

// NewService creates a new conversation service.
func NewService(
	historyRepo repositories.HistoryRepository,
	ephemeral *EphemeralStore,
	orchestrator *llm.Orchestrator,
	logger *slog.Logger,
) *Service {
	return &Service{
		historyRepo:  historyRepo,
		ephemeral:    ephemeral,
		orchestrator: orchestrator,
		logger:       logger,
	}
}

// GenerateRequest is one durable chat turn. Only Message is required;
// an unknown UserID simply has no history yet.
type GenerateRequest struct {
	UserID   string          `json:"userId"`
	Message  string          `json:"message"`
	ChatType models.ChatType `json:"chatType"`
}

func (r *GenerateRequest) validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Message, validation.Required, validation.Length(1, config.MaxMessageLength)),
	)
}

// Generate produces a reply for one durable chat turn: bounded recent
// history, oldest first, then the fallback walk. The turn is NOT persisted
// here; see SaveTurn.
func (s *Service) Generate(ctx context.Context, req *GenerateRequest) (*llm.Result, error) {
	if err := req.validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	recent, err := s.historyRepo.RecentTurns(ctx, req.UserID, req.ChatType, config.HistoryWindow)
	if err != nil {
		return nil, err
	}

	// Storage returns newest first; the prompt wants chronological order.
	history := reverseTurns(recent)

	prompt := llm.ComposePrompt(llm.StyleInstruction(req.ChatType), history, req.Message)

	s.logger.Info("chat turn",
		"user_id", req.UserID,
		"chat_type", req.ChatType,
		"prompt_chars", len(prompt),
		"history_turns", len(history),
	)

	return s.orchestrator.Generate(ctx, prompt)
}

// TempRequest is one ephemeral (session-scoped) chat turn. All fields are
// required.
type TempRequest struct {
	SessionID string          `json:"sessionId"`
	Message   string          `json:"message"`
	ChatType  models.ChatType `json:"chatType"`
}

func (r *TempRequest) validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.SessionID, validation.Required),
		validation.Field(&r.Message, validation.Required, validation.Length(1, config.MaxMessageLength)),
		validation.Field(&r.ChatType, validation.Required),
	)
}

// GenerateTemp produces a reply against the session's ephemeral history and
// appends the new turn in the same request. Failed generations append
// nothing: a turn exists only when a non-empty reply was produced.
func (s *Service) GenerateTemp(ctx context.Context, req *TempRequest) (*llm.Result, error) {
	if err := req.validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	history := s.ephemeral.Turns(req.SessionID)

	prompt := llm.ComposeTempPrompt(llm.TempStyleInstruction(req.ChatType), history, req.Message)

	s.logger.Info("temp chat turn",
		"session_id", req.SessionID,
		"chat_type", req.ChatType,
		"prompt_chars", len(prompt),
		"history_turns", len(history),
	)

	result, err := s.orchestrator.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	s.ephemeral.Append(req.SessionID, req.ChatType, req.Message, result.Reply)

	return result, nil
}

// SaveTurnRequest persists one completed durable turn.
type SaveTurnRequest struct {
	UserID   string          `json:"userId"`
	Message  string          `json:"message"`
	Response string          `json:"response"`
	ChatType models.ChatType `json:"chatType"`
}

func (r *SaveTurnRequest) validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.UserID, validation.Required),
		validation.Field(&r.Message, validation.Required),
		validation.Field(&r.Response, validation.Required),
	)
}

// SaveTurn inserts one immutable turn row. The response is required, so a
// turn without a reply can never be created.
func (s *Service) SaveTurn(ctx context.Context, req *SaveTurnRequest) error {
	if err := req.validate(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if err := s.historyRepo.Append(ctx, req.UserID, req.ChatType, req.Message, req.Response); err != nil {
		return err
	}

	s.logger.Info("turn saved", "user_id", req.UserID, "chat_type", req.ChatType)
	return nil
}

// History returns every persisted turn for the user and chat type, oldest
// first.
func (s *Service) History(ctx context.Context, userID string, chatType models.ChatType) ([]models.ChatTurn, error) {
	return s.historyRepo.ListTurns(ctx, userID, chatType)
}

func reverseTurns(turns []models.ChatTurn) []models.ChatTurn {
	out := make([]models.ChatTurn, len(turns))
	for i, t := range turns {
		out[len(turns)-1-i] = t
	}
	return out
}
