package handler

import (
	"errors"
	"net/http"

	"vitalchat/internal/domain"
	"vitalchat/internal/httputil"
	"vitalchat/internal/service/llm"
)

// handleError converts domain errors to HTTP responses
func handleError(w http.ResponseWriter, err error) {
	var exhausted *llm.ExhaustedError

	switch {
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		httputil.RespondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrConflict):
		httputil.RespondError(w, http.StatusConflict, err.Error())
	case errors.As(err, &exhausted):
		httputil.RespondErrorWithExtras(w, http.StatusBadGateway, "Falha ao gerar resposta", map[string]interface{}{
			"message": "Nenhum modelo retornou conteúdo.",
			"details": exhausted.Attempts,
		})
	default:
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}
