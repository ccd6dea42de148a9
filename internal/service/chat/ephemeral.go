package chat

import (
	"sync"
	"time"

	"vitalchat/internal/domain/models"
)

// EphemeralStore holds session-scoped conversation memory for the lifetime
// of the process. It is an explicit handle passed into request handling, not
// a package global. A single mutex serializes appends so a concurrent append
// to the same session never loses a turn; entries are never evicted, so
// long-lived processes grow without bound (accepted risk).
type EphemeralStore struct {
	mu       sync.Mutex
	sessions map[string][]models.ChatTurn
}

// NewEphemeralStore creates an empty session store.
func NewEphemeralStore() *EphemeralStore {
	return &EphemeralStore{
		sessions: make(map[string][]models.ChatTurn),
	}
}

// Append pushes one turn to the end of the session's sequence.
func (s *EphemeralStore) Append(sessionID string, chatType models.ChatType, message, response string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[sessionID] = append(s.sessions[sessionID], models.ChatTurn{
		UserID:    sessionID,
		ChatType:  chatType,
		Message:   message,
		Response:  response,
		CreatedAt: time.Now(),
	})
}

// Turns returns the session's full sequence in insertion order. The result
// is a copy; callers may not mutate stored history through it.
func (s *EphemeralStore) Turns(sessionID string) []models.ChatTurn {
	s.mu.Lock()
	defer s.mu.Unlock()

	turns := s.sessions[sessionID]
	out := make([]models.ChatTurn, len(turns))
	copy(out, turns)
	return out
}

// Len reports how many turns a session holds.
func (s *EphemeralStore) Len(sessionID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions[sessionID])
}
