package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"vitalchat/internal/httputil"
	"vitalchat/internal/service/diary"
)

// DiaryHandler handles diary note HTTP requests
type DiaryHandler struct {
	diaryService *diary.Service
	logger       *slog.Logger
}

// NewDiaryHandler creates a new diary handler
func NewDiaryHandler(diaryService *diary.Service, logger *slog.Logger) *DiaryHandler {
	return &DiaryHandler{
		diaryService: diaryService,
		logger:       logger,
	}
}

// SaveDiary persists one note
// POST /save-diary
func (h *DiaryHandler) SaveDiary(w http.ResponseWriter, r *http.Request) {
	var req diary.SaveRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.diaryService.Save(r.Context(), &req); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Anotação salva com sucesso!",
	})
}

// GetDiary returns the user's notes newest first
// GET /get-diary/{userId}
func (h *DiaryHandler) GetDiary(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")

	notes, err := h.diaryService.List(r.Context(), userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, notes)
}

// DeleteDiary removes one note
// DELETE /delete-diary/{noteId}
func (h *DiaryHandler) DeleteDiary(w http.ResponseWriter, r *http.Request) {
	noteID, err := strconv.ParseInt(r.PathValue("noteId"), 10, 64)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "noteId must be an integer")
		return
	}

	if err := h.diaryService.Delete(r.Context(), noteID); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Anotação excluída com sucesso!",
	})
}
