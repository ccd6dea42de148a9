package handler

import (
	"log/slog"
	"net/http"

	"vitalchat/internal/domain/models"
	"vitalchat/internal/httputil"
	"vitalchat/internal/service/chat"
)

// ChatHandler handles conversation HTTP requests
type ChatHandler struct {
	chatService *chat.Service
	logger      *slog.Logger
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatService *chat.Service, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		logger:      logger,
	}
}

// ChatResponse is the reply payload for a generated turn.
type ChatResponse struct {
	Reply      string `json:"reply"`
	Model      string `json:"model"`
	DurationMs int64  `json:"durationMs,omitempty"`
}

// Chat generates a reply for one durable chat turn
// POST /chat
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req chat.GenerateRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.chatService.Generate(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, ChatResponse{
		Reply:      result.Reply,
		Model:      result.Model,
		DurationMs: result.Elapsed.Milliseconds(),
	})
}

// ChatTemp generates a reply against session-scoped ephemeral history
// POST /chat-temp
func (h *ChatHandler) ChatTemp(w http.ResponseWriter, r *http.Request) {
	var req chat.TempRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.chatService.GenerateTemp(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, ChatResponse{
		Reply: result.Reply,
		Model: result.Model,
	})
}

// SaveMessage persists one completed turn
// POST /save-message
func (h *ChatHandler) SaveMessage(w http.ResponseWriter, r *http.Request) {
	var req chat.SaveTurnRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.chatService.SaveTurn(r.Context(), &req); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// GetHistory returns all persisted turns oldest first
// GET /get-history/{userId}/{chatType}
func (h *ChatHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")
	chatType := models.ChatType(r.PathValue("chatType"))

	turns, err := h.chatService.History(r.Context(), userID, chatType)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, turns)
}
