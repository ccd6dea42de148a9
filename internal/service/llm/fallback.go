package llm

import (
	"context"
	"log/slog"
	"strings"
	"time"
)

// Orchestrator walks an ordered candidate list and returns the first
// non-blank reply. It keeps no state across invocations: every request
// starts the list from the top, and candidates after the winner are
// never invoked.
type Orchestrator struct {
	generator      Generator
	candidates     []string
	attemptTimeout time.Duration
	logger         *slog.Logger
}

// NewOrchestrator creates a fallback orchestrator over the given ordered
// candidate list. attemptTimeout bounds each individual provider call so a
// hung connection cannot stall the walk.
func NewOrchestrator(generator Generator, candidates []string, attemptTimeout time.Duration, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{
		generator:      generator,
		candidates:     candidates,
		attemptTimeout: attemptTimeout,
		logger:         logger,
	}
}

// Candidates returns the configured candidate list in attempt order.
func (o *Orchestrator) Candidates() []string {
	out := make([]string, len(o.candidates))
	copy(out, o.candidates)
	return out
}

// Generate attempts each candidate in order, one bounded call per candidate,
// no per-candidate retry. A reply is usable when it is non-blank after
// trimming. Exhaustion returns *ExhaustedError with one AttemptRecord per
// candidate in input order.
func (o *Orchestrator) Generate(ctx context.Context, prompt string) (*Result, error) {
	tried := make([]AttemptRecord, 0, len(o.candidates))

	for _, model := range o.candidates {
		start := time.Now()
		reply, err := o.invoke(ctx, model, prompt)
		elapsed := time.Since(start)

		if err != nil {
			o.logger.Warn("model attempt failed",
				"model", model,
				"duration_ms", elapsed.Milliseconds(),
				"error", err,
			)
			tried = append(tried, AttemptRecord{
				Model:      model,
				Outcome:    OutcomeTransportError,
				Elapsed:    elapsed,
				DurationMs: elapsed.Milliseconds(),
				Reason:     err.Error(),
			})
			continue
		}

		if strings.TrimSpace(reply) == "" {
			o.logger.Warn("model returned empty response",
				"model", model,
				"duration_ms", elapsed.Milliseconds(),
			)
			tried = append(tried, AttemptRecord{
				Model:      model,
				Outcome:    OutcomeEmptyResponse,
				Elapsed:    elapsed,
				DurationMs: elapsed.Milliseconds(),
				Reason:     "empty response",
			})
			continue
		}

		o.logger.Info("generation succeeded",
			"model", model,
			"duration_ms", elapsed.Milliseconds(),
			"attempts_before", len(tried),
		)

		return &Result{
			Reply:      reply,
			Model:      model,
			Elapsed:    elapsed,
			PriorTried: tried,
		}, nil
	}

	o.logger.Error("all model candidates exhausted", "attempts", len(tried))

	return nil, &ExhaustedError{Attempts: tried}
}

// invoke runs a single bounded call against one candidate.
func (o *Orchestrator) invoke(ctx context.Context, model, prompt string) (string, error) {
	if o.attemptTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.attemptTimeout)
		defer cancel()
	}
	return o.generator.Generate(ctx, model, prompt)
}
