package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

type completionRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
	Temperature      float64 `json:"temperature"`
	TopP             float64 `json:"top_p"`
	MaxTokens        int64   `json:"max_tokens"`
	FrequencyPenalty float64 `json:"frequency_penalty"`
	PresencePenalty  float64 `json:"presence_penalty"`
}

func completion(content string) string {
	body, _ := json.Marshal(map[string]any{
		"id":      "cmpl-1",
		"object":  "chat.completion",
		"created": 1,
		"model":   "test-model",
		"choices": []map[string]any{{
			"index":         0,
			"finish_reason": "stop",
			"message":       map[string]any{"role": "assistant", "content": content},
		}},
	})
	return string(body)
}

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := NewClient(Config{
		BaseURL: srv.URL,
		APIKey:  "test-key",
		Model:   "test-model",
		Referer: "http://localhost",
		Title:   "Aether",
		Timeout: 5 * time.Second,
	}, DefaultPersonality())
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

func TestGenerateSendsPersonality(t *testing.T) {
	var got completionRequest
	var headers http.Header
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			http.NotFound(w, r)
			return
		}
		headers = r.Header.Clone()
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(completion("  Stillness is the space between two thoughts.\n")))
	})

	reply, err := c.Generate(context.Background(), "What is stillness?")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if reply != "Stillness is the space between two thoughts." {
		t.Errorf("reply not trimmed: %q", reply)
	}

	if headers.Get("Authorization") != "Bearer test-key" {
		t.Errorf("Authorization = %q", headers.Get("Authorization"))
	}
	if headers.Get("X-Title") != "Aether" || headers.Get("HTTP-Referer") != "http://localhost" {
		t.Errorf("attribution headers %q %q", headers.Get("X-Title"), headers.Get("HTTP-Referer"))
	}

	p := DefaultPersonality()
	if got.Model != "test-model" {
		t.Errorf("model = %q", got.Model)
	}
	if len(got.Messages) != 2 || got.Messages[0].Role != "system" || got.Messages[1].Content != "What is stillness?" {
		t.Fatalf("messages = %+v", got.Messages)
	}
	if got.Messages[0].Content != p.SystemPrompt {
		t.Error("system prompt not sent")
	}
	if got.Temperature != p.Temperature || got.TopP != p.TopP || got.MaxTokens != p.MaxTokens {
		t.Errorf("sampling = %v %v %v", got.Temperature, got.TopP, got.MaxTokens)
	}
	if got.FrequencyPenalty != p.FrequencyPenalty || got.PresencePenalty != p.PresencePenalty {
		t.Errorf("penalties = %v %v", got.FrequencyPenalty, got.PresencePenalty)
	}
}

func TestGenerateEmptyReply(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(completion("   ")))
	})
	if _, err := c.Generate(context.Background(), "hello"); !errors.Is(err, ErrEmptyReply) {
		t.Errorf("Expected ErrEmptyReply, got %v", err)
	}
}

func TestGenerateServerError(t *testing.T) {
	var calls int
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, `{"error":{"message":"boom"}}`, http.StatusInternalServerError)
	})
	if _, err := c.Generate(context.Background(), "hello"); err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Errorf("Expected a single attempt, got %d", calls)
	}
}

func TestGenerateHonorsContext(t *testing.T) {
	release := make(chan struct{})
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if _, err := c.Generate(ctx, "hello"); err == nil {
		t.Fatal("expected timeout error")
	}
}

func TestNewClientRequiresKey(t *testing.T) {
	if _, err := NewClient(Config{Model: "m"}, DefaultPersonality()); err == nil {
		t.Error("expected error without api key")
	}
	if _, err := NewClient(Config{APIKey: "k"}, DefaultPersonality()); err == nil {
		t.Error("expected error without model")
	}
}

func TestGeneratorFunc(t *testing.T) {
	var g Generator = GeneratorFunc(func(_ context.Context, s string) (string, error) {
		return strings.ToUpper(s), nil
	})
	if out, _ := g.Generate(context.Background(), "quiet"); out != "QUIET" {
		t.Errorf("got %q", out)
	}
}

func TestPersonalityValidate(t *testing.T) {
	if err := DefaultPersonality().Validate(); err != nil {
		t.Fatalf("default personality invalid: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Personality)
	}{
		{"empty prompt", func(p *Personality) { p.SystemPrompt = "  " }},
		{"temperature", func(p *Personality) { p.Temperature = 2.5 }},
		{"top_p zero", func(p *Personality) { p.TopP = 0 }},
		{"max tokens", func(p *Personality) { p.MaxTokens = 0 }},
		{"penalty", func(p *Personality) { p.PresencePenalty = -3 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultPersonality()
			tt.mutate(&p)
			if err := p.Validate(); err == nil {
				t.Error("expected error")
			}
		})
	}
}
