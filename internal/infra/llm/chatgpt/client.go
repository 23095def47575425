package chatgpt

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/yanqian/wellness-hub/internal/domain/companion"
	apperrors "github.com/yanqian/wellness-hub/pkg/errors"
	"github.com/yanqian/wellness-hub/pkg/metrics"
)

// Config holds the chat completion settings. Any OpenAI compatible endpoint
// works, including Groq.
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	TopP        float64
	MaxTokens   int64
	Timeout     time.Duration
	MaxRetries  int
}

const (
	defaultModel      = "llama-3.3-70b-versatile"
	defaultMaxTokens  = 1024
	defaultTimeout    = 30 * time.Second
	defaultMaxRetries = 3
)

// Client adapts the OpenAI chat completions API to companion.LLM.
type Client struct {
	api    *openai.Client
	cfg    Config
	waits  []time.Duration
	logger *slog.Logger
}

// NewClient constructs a chat client.
func NewClient(cfg Config, logger *slog.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("llm api key cannot be empty")
	}
	if strings.TrimSpace(cfg.Model) == "" {
		cfg.Model = defaultModel
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = defaultMaxTokens
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = defaultMaxRetries
	}
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
		option.WithRequestTimeout(cfg.Timeout),
	}
	if base := strings.TrimSpace(cfg.BaseURL); base != "" {
		opts = append(opts, option.WithBaseURL(strings.TrimRight(base, "/")+"/"))
	}
	api := openai.NewClient(opts...)
	return &Client{
		api:    &api,
		cfg:    cfg,
		waits:  []time.Duration{time.Second, 2 * time.Second, 4 * time.Second},
		logger: logger.With("component", "llm.chatgpt"),
	}, nil
}

// Chat sends the conversation and returns the first choice.
func (c *Client) Chat(ctx context.Context, messages []companion.Message) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model:     openai.ChatModel(c.cfg.Model),
		Messages:  toParams(messages),
		MaxTokens: openai.Int(c.cfg.MaxTokens),
	}
	if c.cfg.Temperature > 0 {
		params.Temperature = openai.Float(c.cfg.Temperature)
	}
	if c.cfg.TopP > 0 {
		params.TopP = openai.Float(c.cfg.TopP)
	}

	resp, err := c.completeWithRetry(ctx, params)
	if err != nil {
		return "", err
	}
	usage := metrics.TokenUsage{
		PromptTokens:     int(resp.Usage.PromptTokens),
		CompletionTokens: int(resp.Usage.CompletionTokens),
		TotalTokens:      int(resp.Usage.TotalTokens),
	}
	if !usage.IsZero() {
		c.logger.Debug("chat completion usage", "model", c.cfg.Model, "usage", usage)
	}
	if len(resp.Choices) == 0 {
		return "", apperrors.Wrap("llm_error", "chat completion returned no choices", nil)
	}
	return resp.Choices[0].Message.Content, nil
}

func (c *Client) completeWithRetry(ctx context.Context, params openai.ChatCompletionNewParams) (*openai.ChatCompletion, error) {
	var lastErr error
	for attempt := 0; attempt < c.cfg.MaxRetries; attempt++ {
		resp, err := c.api.Chat.Completions.New(ctx, params)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		if !retryable(err) || attempt == c.cfg.MaxRetries-1 {
			break
		}
		wait := c.waits[min(attempt, len(c.waits)-1)]
		c.logger.Warn("chat completion failed, retrying", "attempt", attempt+1, "wait", wait, "error", err)
		select {
		case <-ctx.Done():
			return nil, apperrors.Wrap("llm_error", "chat completion cancelled", ctx.Err())
		case <-time.After(wait):
		}
	}
	return nil, apperrors.Wrap("llm_error", fmt.Sprintf("chat completion failed after %d attempts", c.cfg.MaxRetries), lastErr)
}

func toParams(messages []companion.Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case companion.RoleSystem:
			out = append(out, openai.SystemMessage(m.Content))
		case companion.RoleAssistant:
			out = append(out, openai.AssistantMessage(m.Content))
		default:
			out = append(out, openai.UserMessage(m.Content))
		}
	}
	return out
}

// retryable reports rate limits and upstream 5xx failures.
func retryable(err error) bool {
	if err == nil {
		return false
	}
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusTooManyRequests || apiErr.StatusCode >= http.StatusInternalServerError
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "rate limit") ||
		strings.Contains(msg, "too many requests") ||
		strings.Contains(msg, "500") ||
		strings.Contains(msg, "502") ||
		strings.Contains(msg, "503")
}

var _ companion.LLM = (*Client)(nil)

// Unavailable is used when no API key is configured. Every call fails so the
// companion serves its fallback reply.
type Unavailable struct{}

// Chat implements companion.LLM.
func (Unavailable) Chat(context.Context, []companion.Message) (string, error) {
	return "", apperrors.Wrap("llm_error", "llm is not configured", nil)
}

var _ companion.LLM = Unavailable{}
