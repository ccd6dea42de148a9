package csvchart

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"vitalchat/internal/service/llm"
)

type cannedGenerator struct {
	reply  string
	prompt string
}

func (g *cannedGenerator) Generate(ctx context.Context, model, prompt string) (string, error) {
	g.prompt = prompt
	return g.reply, nil
}

func newTestService(gen llm.Generator) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	orch := llm.NewOrchestrator(gen, []string{"model-a"}, time.Second, logger)
	return NewService(orch, logger)
}

const sampleCSV = `start_time,day_time,source,deviceuuid,pkg_name,count
2024-01-01 00:00,2024-01-01,watch,abc,com.shealth,4231
2024-01-02 00:00,2024-01-02,watch,abc,com.shealth,6120
`

func TestAnalyzeParsesFencedJSON(t *testing.T) {
	gen := &cannedGenerator{reply: "```json\n{\"labels\": [\"2024-01-01\", \"2024-01-02\"], \"data\": [4231, 6120], \"explanation\": \"Você andou mais no segundo dia.\"}\n```"}
	svc := newTestService(gen)

	chart, err := svc.Analyze(context.Background(), strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if len(chart.Labels) != 2 || chart.Labels[0] != "2024-01-01" {
		t.Errorf("Labels = %v", chart.Labels)
	}
	if len(chart.Data) != 2 || chart.Data[1] != 6120 {
		t.Errorf("Data = %v", chart.Data)
	}
	if chart.Explanation == "" {
		t.Error("Explanation empty")
	}

	// Preview rows must reach the provider.
	if !strings.Contains(gen.prompt, "4231") {
		t.Error("prompt missing previewed row data")
	}
	if !strings.Contains(gen.prompt, "Samsung Health") {
		t.Error("prompt missing analysis instruction")
	}
}

func TestAnalyzeFallsBackOnUnparseableReply(t *testing.T) {
	gen := &cannedGenerator{reply: "Desculpe, não consegui montar o gráfico."}
	svc := newTestService(gen)

	chart, err := svc.Analyze(context.Background(), strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if len(chart.Labels) != 0 || len(chart.Data) != 0 {
		t.Errorf("fallback payload = %+v, want empty labels/data", chart)
	}
	if chart.Explanation != gen.reply {
		t.Errorf("Explanation = %q, want the raw reply", chart.Explanation)
	}
}

func TestAnalyzeRejectsEmptyFile(t *testing.T) {
	svc := newTestService(&cannedGenerator{reply: "{}"})

	if _, err := svc.Analyze(context.Background(), strings.NewReader("")); err == nil {
		t.Error("Analyze() on empty file: error = nil, want parse error")
	}
}

func TestParseCSVPreviewBound(t *testing.T) {
	var b strings.Builder
	b.WriteString("a,b\n")
	for i := 0; i < 30; i++ {
		b.WriteString("1,2\n")
	}

	records, err := parseCSV(strings.NewReader(b.String()), 10)
	if err != nil {
		t.Fatalf("parseCSV() error = %v", err)
	}
	if len(records) != 10 {
		t.Errorf("preview rows = %d, want 10", len(records))
	}
}

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"uppercase fence", "```JSON\n{\"a\":1}\n```", `{"a":1}`},
		{"no fence", `{"a":1}`, `{"a":1}`},
		{"triple quotes", "'''{\"a\":1}'''", `{"a":1}`},
		{"trailing fence only", "{\"a\":1}\n```", `{"a":1}`},
		{"surrounding whitespace", "  \n```json\n{\"a\":1}\n```\n ", `{"a":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripCodeFences(tt.in); got != tt.want {
				t.Errorf("StripCodeFences(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
