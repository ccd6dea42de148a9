package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestGeminiGenerate(t *testing.T) {
	var gotPath, gotKey string
	var gotBody geminiRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		json.NewDecoder(r.Body).Decode(&gotBody)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"Olá, "},{"text":"tudo bem?"}]}}]}`))
	}))
	defer server.Close()

	client := NewGeminiClientWithBaseURL("test-key", server.URL)

	text, err := client.Generate(context.Background(), "gemini-2.5-flash", "oi")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	// Multi-part candidates are concatenated.
	if text != "Olá, tudo bem?" {
		t.Errorf("text = %q", text)
	}
	if gotPath != "/models/gemini-2.5-flash:generateContent" {
		t.Errorf("path = %q", gotPath)
	}
	if gotKey != "test-key" {
		t.Errorf("key = %q", gotKey)
	}
	if len(gotBody.Contents) != 1 || gotBody.Contents[0].Parts[0].Text != "oi" {
		t.Errorf("request body = %+v", gotBody)
	}
}

func TestGeminiGenerateAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"code":429,"message":"Resource has been exhausted","status":"RESOURCE_EXHAUSTED"}}`))
	}))
	defer server.Close()

	client := NewGeminiClientWithBaseURL("k", server.URL)

	_, err := client.Generate(context.Background(), "gemini-2.5-flash", "oi")
	if err == nil {
		t.Fatal("Generate() error = nil, want provider error")
	}
	if !strings.Contains(err.Error(), "Resource has been exhausted") {
		t.Errorf("error = %v, want the provider message", err)
	}
}

func TestGeminiGenerateEmptyCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer server.Close()

	client := NewGeminiClientWithBaseURL("k", server.URL)

	text, err := client.Generate(context.Background(), "gemini-2.5-flash", "oi")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	// Blank text is not an error here; the orchestrator classifies it.
	if text != "" {
		t.Errorf("text = %q, want empty", text)
	}
}

func TestGeminiGenerateHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewGeminiClientWithBaseURL("k", "http://127.0.0.1:0")

	if _, err := client.Generate(ctx, "gemini-2.5-flash", "oi"); err == nil {
		t.Error("Generate() with canceled context: error = nil")
	}
}
