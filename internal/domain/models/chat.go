package models

import "time"

// ChatType tags which conversation style a turn belongs to.
type ChatType string

const (
	ChatTypeGeneral ChatType = "general"
	ChatTypeCSV     ChatType = "csv"
	ChatTypeSleep   ChatType = "sleep"
)

// ChatTurn is one user message + assistant response pair.
// Immutable once written.
type ChatTurn struct {
	ID        int64     `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	ChatType  ChatType  `json:"chat_type" db:"chat_type"`
	Message   string    `json:"message" db:"message"`
	Response  string    `json:"response" db:"response"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
