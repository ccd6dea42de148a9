package models

import (
	"encoding/json"
	"time"
)

// CSVRecord is an arbitrary JSON blob tagged by file type, persisted per user.
type CSVRecord struct {
	ID         int64           `json:"id" db:"id"`
	UserID     string          `json:"user_id" db:"user_id"`
	FileType   string          `json:"file_type" db:"file_type"`
	JSONData   json.RawMessage `json:"json_content" db:"json_content"`
	UploadedAt time.Time       `json:"uploaded_at" db:"uploaded_at"`
}

// ChartData is the strict JSON shape requested from the AI provider
// for an uploaded CSV. When the provider reply cannot be parsed, Labels
// and Data are empty and Explanation carries the raw text.
type ChartData struct {
	Labels      []string  `json:"labels"`
	Data        []float64 `json:"data"`
	Explanation string    `json:"explanation"`
}
