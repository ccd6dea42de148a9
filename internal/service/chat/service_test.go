package chat

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"vitalchat/internal/domain"
	"vitalchat/internal/domain/models"
	"vitalchat/internal/service/llm"
)

// fakeHistoryRepo is an in-memory HistoryRepository.
type fakeHistoryRepo struct {
	turns     map[string][]models.ChatTurn // key: userID|chatType
	appendErr error
}

func newFakeHistoryRepo() *fakeHistoryRepo {
	return &fakeHistoryRepo{turns: make(map[string][]models.ChatTurn)}
}

func key(userID string, chatType models.ChatType) string {
	return userID + "|" + string(chatType)
}

func (f *fakeHistoryRepo) Append(ctx context.Context, userID string, chatType models.ChatType, message, response string) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	k := key(userID, chatType)
	f.turns[k] = append(f.turns[k], models.ChatTurn{
		ID: int64(len(f.turns[k]) + 1), UserID: userID, ChatType: chatType,
		Message: message, Response: response, CreatedAt: time.Now(),
	})
	return nil
}

func (f *fakeHistoryRepo) RecentTurns(ctx context.Context, userID string, chatType models.ChatType, limit int) ([]models.ChatTurn, error) {
	all := f.turns[key(userID, chatType)]
	// Newest first, at most limit, like the SQL layer.
	out := []models.ChatTurn{}
	for i := len(all) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, all[i])
	}
	return out, nil
}

func (f *fakeHistoryRepo) ListTurns(ctx context.Context, userID string, chatType models.ChatType) ([]models.ChatTurn, error) {
	return f.turns[key(userID, chatType)], nil
}

// recordingGenerator captures the prompt it was asked to generate from.
type recordingGenerator struct {
	reply   string
	err     error
	prompts []string
}

func (g *recordingGenerator) Generate(ctx context.Context, model, prompt string) (string, error) {
	g.prompts = append(g.prompts, prompt)
	if g.err != nil {
		return "", g.err
	}
	return g.reply, nil
}

func newTestService(repo *fakeHistoryRepo, gen llm.Generator) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	orch := llm.NewOrchestrator(gen, []string{"model-a"}, time.Second, logger)
	return NewService(repo, NewEphemeralStore(), orch, logger)
}

func TestGenerateRequiresMessage(t *testing.T) {
	svc := newTestService(newFakeHistoryRepo(), &recordingGenerator{reply: "ok"})

	_, err := svc.Generate(context.Background(), &GenerateRequest{UserID: "u1"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}
}

func TestGenerateBoundedChronologicalHistory(t *testing.T) {
	repo := newFakeHistoryRepo()
	for i := 1; i <= 8; i++ {
		msg := []string{"", "um", "dois", "três", "quatro", "cinco", "seis", "sete", "oito"}[i]
		repo.Append(context.Background(), "u1", models.ChatTypeGeneral, msg, "resp "+msg)
	}

	gen := &recordingGenerator{reply: "olá"}
	svc := newTestService(repo, gen)

	result, err := svc.Generate(context.Background(), &GenerateRequest{
		UserID: "u1", Message: "nova", ChatType: models.ChatTypeGeneral,
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if result.Reply != "olá" {
		t.Errorf("Reply = %q", result.Reply)
	}

	prompt := gen.prompts[0]
	// Window is 5: turns 4..8 present, 1..3 absent.
	if strings.Contains(prompt, "Usuário: três\n") {
		t.Error("prompt contains turns outside the recent window")
	}
	for _, msg := range []string{"quatro", "cinco", "seis", "sete", "oito"} {
		if !strings.Contains(prompt, "Usuário: "+msg) {
			t.Errorf("prompt missing recent turn %q", msg)
		}
	}
	// Chronological order: oldest of the window first.
	if strings.Index(prompt, "Usuário: quatro") > strings.Index(prompt, "Usuário: oito") {
		t.Error("window not reordered oldest first")
	}
}

func TestGenerateFreshUserHasPlaceholder(t *testing.T) {
	gen := &recordingGenerator{reply: "oi"}
	svc := newTestService(newFakeHistoryRepo(), gen)

	if _, err := svc.Generate(context.Background(), &GenerateRequest{
		UserID: "new-user", Message: "olá", ChatType: models.ChatTypeGeneral,
	}); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if !strings.Contains(gen.prompts[0], "(Sem histórico anterior)") {
		t.Error("prompt for fresh user missing empty-history placeholder")
	}
}

func TestGenerateTempAppendsOnSuccessOnly(t *testing.T) {
	gen := &recordingGenerator{reply: "resposta"}
	svc := newTestService(newFakeHistoryRepo(), gen)

	req := &TempRequest{SessionID: "s1", Message: "oi", ChatType: models.ChatTypeGeneral}
	if _, err := svc.GenerateTemp(context.Background(), req); err != nil {
		t.Fatalf("GenerateTemp() error = %v", err)
	}

	turns := svc.ephemeral.Turns("s1")
	if len(turns) != 1 || turns[0].Response != "resposta" {
		t.Fatalf("ephemeral turns = %+v, want one appended turn", turns)
	}

	// A failing generation must not create a turn.
	gen.err = errors.New("provider down")
	if _, err := svc.GenerateTemp(context.Background(), req); err == nil {
		t.Fatal("GenerateTemp() error = nil, want exhaustion")
	}
	if got := svc.ephemeral.Len("s1"); got != 1 {
		t.Errorf("ephemeral length = %d after failed generation, want 1", got)
	}
}

func TestGenerateTempRequiresAllFields(t *testing.T) {
	svc := newTestService(newFakeHistoryRepo(), &recordingGenerator{reply: "ok"})

	tests := []struct {
		name string
		req  TempRequest
	}{
		{"missing sessionId", TempRequest{Message: "oi", ChatType: models.ChatTypeGeneral}},
		{"missing message", TempRequest{SessionID: "s1", ChatType: models.ChatTypeGeneral}},
		{"missing chatType", TempRequest{SessionID: "s1", Message: "oi"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.GenerateTemp(context.Background(), &tt.req); !errors.Is(err, domain.ErrValidation) {
				t.Errorf("error = %v, want ErrValidation", err)
			}
		})
	}
}

func TestSaveTurnValidation(t *testing.T) {
	repo := newFakeHistoryRepo()
	svc := newTestService(repo, &recordingGenerator{})

	err := svc.SaveTurn(context.Background(), &SaveTurnRequest{
		UserID: "u1", Message: "oi", ChatType: models.ChatTypeGeneral,
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("missing response: error = %v, want ErrValidation", err)
	}

	err = svc.SaveTurn(context.Background(), &SaveTurnRequest{
		UserID: "u1", Message: "oi", Response: "olá", ChatType: models.ChatTypeGeneral,
	})
	if err != nil {
		t.Fatalf("SaveTurn() error = %v", err)
	}
	if len(repo.turns[key("u1", models.ChatTypeGeneral)]) != 1 {
		t.Error("turn not persisted")
	}
}

func TestSaveTurnPropagatesStorageError(t *testing.T) {
	repo := newFakeHistoryRepo()
	repo.appendErr = errors.New("connection reset")
	svc := newTestService(repo, &recordingGenerator{})

	err := svc.SaveTurn(context.Background(), &SaveTurnRequest{
		UserID: "u1", Message: "oi", Response: "olá", ChatType: models.ChatTypeGeneral,
	})
	if err == nil || errors.Is(err, domain.ErrValidation) {
		t.Errorf("error = %v, want the storage error", err)
	}
}
