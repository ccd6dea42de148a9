package llm

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Generator wraps a single named generation call against an AI provider.
// Implementations return the raw reply text or a transport error; blank
// replies are the orchestrator's concern, not the generator's.
type Generator interface {
	Generate(ctx context.Context, model, prompt string) (string, error)
}

// Attempt outcome classification.
const (
	OutcomeSuccess        = "success"
	OutcomeEmptyResponse  = "empty-response"
	OutcomeTransportError = "transport-error"
)

// AttemptRecord describes one candidate attempt. Produced per request and
// returned to the caller for diagnostics, never persisted.
type AttemptRecord struct {
	Model      string        `json:"model"`
	Outcome    string        `json:"outcome"`
	Elapsed    time.Duration `json:"-"`
	DurationMs int64         `json:"durationMs"`
	Reason     string        `json:"reason,omitempty"`
}

// Result is a successful generation: the winning candidate's reply plus
// the records of every candidate tried before it.
type Result struct {
	Reply      string
	Model      string
	Elapsed    time.Duration
	PriorTried []AttemptRecord
}

// ExhaustedError is returned when every candidate failed or answered blank.
// Attempts holds exactly one record per candidate, in input order.
type ExhaustedError struct {
	Attempts []AttemptRecord
}

func (e *ExhaustedError) Error() string {
	names := make([]string, len(e.Attempts))
	for i, a := range e.Attempts {
		names[i] = a.Model
	}
	return fmt.Sprintf("all models failed: %s", strings.Join(names, ", "))
}
