package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// DefaultBaseURL is the OpenRouter OpenAI-compatible endpoint
const DefaultBaseURL = "https://openrouter.ai/api/v1"

// ErrEmptyReply is returned when the completion carries no usable text
var ErrEmptyReply = errors.New("empty reply")

// Generator turns a user utterance into one reply
type Generator interface {
	Generate(ctx context.Context, userText string) (string, error)
}

// GeneratorFunc adapts a function to Generator
type GeneratorFunc func(ctx context.Context, userText string) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, userText string) (string, error) {
	return f(ctx, userText)
}

// Config selects the endpoint and model
type Config struct {
	BaseURL string        `toml:"base_url"`
	APIKey  string        `toml:"api_key"`
	Model   string        `toml:"model"`
	Referer string        `toml:"referer"`
	Title   string        `toml:"title"`
	Timeout time.Duration `toml:"timeout"`
}

// Client generates replies through a chat-completions endpoint
type Client struct {
	client      openai.Client
	model       string
	personality Personality
	timeout     time.Duration
}

// NewClient creates a client; requests are single-shot, failures surface to the caller
func NewClient(cfg Config, p Personality) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("llm: api key required")
	}
	if cfg.Model == "" {
		return nil, errors.New("llm: model required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(cfg.BaseURL),
		option.WithMaxRetries(0),
	}
	if cfg.Referer != "" {
		opts = append(opts, option.WithHeader("HTTP-Referer", cfg.Referer))
	}
	if cfg.Title != "" {
		opts = append(opts, option.WithHeader("X-Title", cfg.Title))
	}

	return &Client{
		client:      openai.NewClient(opts...),
		model:       cfg.Model,
		personality: p,
		timeout:     cfg.Timeout,
	}, nil
}

// Generate requests one completion for userText and returns the trimmed reply
func (c *Client) Generate(ctx context.Context, userText string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	p := c.personality
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(p.SystemPrompt),
			openai.UserMessage(userText),
		},
		Temperature:      openai.Float(p.Temperature),
		TopP:             openai.Float(p.TopP),
		MaxTokens:        openai.Int(p.MaxTokens),
		FrequencyPenalty: openai.Float(p.FrequencyPenalty),
		PresencePenalty:  openai.Float(p.PresencePenalty),
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyReply
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", ErrEmptyReply
	}
	return text, nil
}
