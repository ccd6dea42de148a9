package diary

import (
	"context"
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"vitalchat/internal/config"
	"vitalchat/internal/domain"
	"vitalchat/internal/domain/models"
	"vitalchat/internal/domain/repositories"
)

// Service manages free-text diary notes.
type Service struct {
	diaryRepo repositories.DiaryRepository
	logger    *slog.Logger
}

// NewService creates a new diary service.
func NewService(diaryRepo repositories.DiaryRepository, logger *slog.Logger) *Service {
	return &Service{
		diaryRepo: diaryRepo,
		logger:    logger,
	}
}

// SaveRequest persists one note.
type SaveRequest struct {
	UserID  string `json:"userId"`
	Content string `json:"content"`
}

func (r *SaveRequest) validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.UserID, validation.Required),
		validation.Field(&r.Content, validation.Required, validation.Length(1, config.MaxDiaryContentLength)),
	)
}

// Save persists one diary note.
func (s *Service) Save(ctx context.Context, req *SaveRequest) error {
	if err := req.validate(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if err := s.diaryRepo.Save(ctx, req.UserID, req.Content); err != nil {
		return err
	}

	s.logger.Info("diary note saved", "user_id", req.UserID)
	return nil
}

// List returns the user's notes, newest first.
func (s *Service) List(ctx context.Context, userID string) ([]models.DiaryNote, error) {
	return s.diaryRepo.ListByUser(ctx, userID)
}

// Delete removes one note by id.
func (s *Service) Delete(ctx context.Context, noteID int64) error {
	if err := s.diaryRepo.Delete(ctx, noteID); err != nil {
		return err
	}

	s.logger.Info("diary note deleted", "note_id", noteID)
	return nil
}
