package csvchart

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"vitalchat/internal/config"
	"vitalchat/internal/domain/models"
	"vitalchat/internal/service/llm"
)

// Service turns an uploaded CSV into a chart description by sending a row
// preview to the AI provider and parsing its JSON reply.
type Service struct {
	orchestrator *llm.Orchestrator
	logger       *slog.Logger
}

// NewService creates a new CSV chart service.
func NewService(orchestrator *llm.Orchestrator, logger *slog.Logger) *Service {
	return &Service{
		orchestrator: orchestrator,
		logger:       logger,
	}
}

// Analyze parses the CSV (first row is the header), previews the first
// rows and asks the provider for a strict JSON chart description. A reply
// that cannot be parsed as JSON degrades to an explanation-only payload
// rather than failing the request.
func (s *Service) Analyze(ctx context.Context, file io.Reader) (*models.ChartData, error) {
	records, err := parseCSV(file, config.CSVPreviewRows)
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	preview, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("encode preview: %w", err)
	}

	prompt := chartPrompt(string(preview))

	result, err := s.orchestrator.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	cleaned := StripCodeFences(result.Reply)

	var chart models.ChartData
	if err := json.Unmarshal([]byte(cleaned), &chart); err != nil {
		s.logger.Warn("chart reply is not valid JSON, returning raw text",
			"model", result.Model,
			"error", err,
		)
		return &models.ChartData{
			Labels:      []string{},
			Data:        []float64{},
			Explanation: result.Reply,
		}, nil
	}

	s.logger.Info("csv analyzed",
		"model", result.Model,
		"preview_rows", len(records),
		"duration_ms", result.Elapsed.Milliseconds(),
	)

	return &chart, nil
}

// parseCSV reads header-keyed records, at most maxRows of them.
func parseCSV(file io.Reader, maxRows int) ([]map[string]string, error) {
	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	records := []map[string]string{}
	for len(records) < maxRows {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}

		record := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(row) {
				record[col] = row[i]
			}
		}
		records = append(records, record)
	}

	return records, nil
}

// chartPrompt asks for step-count chart data from a Samsung Health export.
func chartPrompt(preview string) string {
	return fmt.Sprintf(`Você é um assistente que analisa dados do Samsung Health.
Aqui estão os primeiros registros de um CSV: %s

1. Escolha a segunda coluna (day_time) e a sexta coluna (count).
2. O gráfico será a quantidade de passos dados por dia (dia no eixo X e passos no eixo Y).
3. Retorne **apenas um JSON válido** neste formato:
{
  "labels": ["day_time", "count"],
  "data": [valor1, valor2],
  "explanation": "Texto explicando sobre a saúde da pessoa a partir dos dados. Lembrando que a pessoa pode ser leiga no assunto e em computação."
}`, preview)
}

var (
	fenceOpenRe  = regexp.MustCompile("(?i)^```json\\s*")
	fenceCloseRe = regexp.MustCompile("```\\s*$")
	tripleQuotes = regexp.MustCompile("^'''|'''$")
)

// StripCodeFences removes markdown code-fence wrapping (and stray triple
// quotes) that models like to put around JSON replies.
func StripCodeFences(text string) string {
	cleaned := strings.TrimSpace(text)
	cleaned = fenceOpenRe.ReplaceAllString(cleaned, "")
	cleaned = tripleQuotes.ReplaceAllString(cleaned, "")
	cleaned = fenceCloseRe.ReplaceAllString(cleaned, "")
	return strings.TrimSpace(cleaned)
}
