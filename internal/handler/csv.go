package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"vitalchat/internal/config"
	"vitalchat/internal/domain/repositories"
	"vitalchat/internal/httputil"
	"vitalchat/internal/service/csvchart"
)

// CSVHandler handles CSV upload/analysis and stored CSV payloads
type CSVHandler struct {
	chartService *csvchart.Service
	csvRepo      repositories.CSVRepository
	logger       *slog.Logger
}

// NewCSVHandler creates a new CSV handler
func NewCSVHandler(chartService *csvchart.Service, csvRepo repositories.CSVRepository, logger *slog.Logger) *CSVHandler {
	return &CSVHandler{
		chartService: chartService,
		csvRepo:      csvRepo,
		logger:       logger,
	}
}

// UploadCSV parses a multipart CSV upload and returns a chart description
// POST /upload-csv
func (h *CSVHandler) UploadCSV(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, config.MaxCSVUploadBytes)

	file, _, err := r.FormFile("file")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "multipart field 'file' is required")
		return
	}
	defer file.Close()

	chart, err := h.chartService.Analyze(r.Context(), file)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, chart)
}

// SaveCSVRequest persists one processed CSV payload.
type SaveCSVRequest struct {
	UserID   string          `json:"userId"`
	FileType string          `json:"fileType"`
	JSONData json.RawMessage `json:"jsonData"`
}

// SaveCSV stores an arbitrary JSON blob tagged by file type
// POST /save-csv
func (h *CSVHandler) SaveCSV(w http.ResponseWriter, r *http.Request) {
	var req SaveCSVRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.UserID == "" || req.FileType == "" || len(req.JSONData) == 0 {
		httputil.RespondError(w, http.StatusBadRequest, "Campos obrigatórios ausentes (userId, fileType, jsonData).")
		return
	}

	if err := h.csvRepo.Save(r.Context(), req.UserID, req.FileType, req.JSONData); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]string{"message": "CSV salvo com sucesso!"})
}

// GetCSV returns stored payloads for one user and file type, newest first
// GET /get-csv/{userId}/{fileType}
func (h *CSVHandler) GetCSV(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")
	fileType := r.PathValue("fileType")

	records, err := h.csvRepo.ListByType(r.Context(), userID, fileType)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, records)
}
