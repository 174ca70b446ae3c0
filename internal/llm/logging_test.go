package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestLoggingProvider_Success(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	mock := NewMockProvider(MockResponse{
		Content: json.RawMessage(`{"response":"ok"}`),
		Usage:   Usage{InputTokens: 12, OutputTokens: 4, TotalTokens: 16},
	})
	p := WithLogging(mock, logger)

	ctx := WithRequestID(WithPurpose(context.Background(), "generateCommunicationFeedbackFlow"), "req-1")
	_, err := p.Generate(ctx, Request{Schema: &Schema{Name: "communication-feedback"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected one JSON log line, got %q: %v", buf.String(), err)
	}
	want := map[string]any{
		"msg":        "LLM request completed",
		"purpose":    "generateCommunicationFeedbackFlow",
		"request_id": "req-1",
		"schema":     "communication-feedback",
		"success":    true,
		"served_by":  "mock",
	}
	for k, v := range want {
		if entry[k] != v {
			t.Errorf("log field %s = %v, want %v", k, entry[k], v)
		}
	}
	if _, ok := entry["cost_usd"]; ok {
		t.Error("mock model has no pricing, cost_usd should be absent")
	}
}

func TestLoggingProvider_Failure(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	mock := NewMockProvider(MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("boom")}})
	p := WithLogging(mock, logger)

	_, err := p.Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected error to pass through, got %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "level=WARN") || !strings.Contains(out, "LLM request failed") {
		t.Fatalf("expected warn log, got %q", out)
	}
	if !strings.Contains(out, "purpose=unknown") {
		t.Fatalf("expected default purpose, got %q", out)
	}
	if strings.Contains(out, "request_id") {
		t.Fatalf("request_id should be omitted when unset, got %q", out)
	}
}

func TestLoggingProvider_NilLogger(t *testing.T) {
	p := WithLogging(NewMockProvider(), nil)
	if p.ModelID() != "mock" {
		t.Fatalf("expected mock model id, got %q", p.ModelID())
	}
}
