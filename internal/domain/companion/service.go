package companion

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	apperrors "github.com/yanqian/wellness-hub/pkg/errors"
)

// Service answers companion chat messages.
type Service interface {
	// Reply always returns a displayable response. When the model fails the
	// response carries FallbackReply with Success=false alongside an llm_error.
	Reply(ctx context.Context, userID int64, req ChatRequest) (ChatResponse, error)
}

type service struct {
	cfg     Config
	llm     LLM
	counter TokenCounter
	logger  *slog.Logger
}

const (
	defaultHistoryTokenBudget = 3000
	defaultMaxHistoryMessages = 20
	maxMessageRunes           = 4000
)

// NewService constructs a Service instance. A nil counter falls back to a
// rune-based estimate.
func NewService(cfg Config, llm LLM, counter TokenCounter, logger *slog.Logger) Service {
	if strings.TrimSpace(cfg.SystemPrompt) == "" {
		cfg.SystemPrompt = DefaultSystemPrompt
	}
	if cfg.HistoryTokenBudget <= 0 {
		cfg.HistoryTokenBudget = defaultHistoryTokenBudget
	}
	if cfg.MaxHistoryMessages <= 0 {
		cfg.MaxHistoryMessages = defaultMaxHistoryMessages
	}
	if counter == nil {
		counter = RuneEstimate{}
	}
	return &service{
		cfg:     cfg,
		llm:     llm,
		counter: counter,
		logger:  logger.With("component", "companion.service"),
	}
}

func (s *service) Reply(ctx context.Context, userID int64, req ChatRequest) (ChatResponse, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return ChatResponse{}, apperrors.Wrap("invalid_input", "message cannot be empty", nil)
	}
	if utf8.RuneCountInString(message) > maxMessageRunes {
		return ChatResponse{}, apperrors.Wrap("invalid_input", "message is too long", nil)
	}

	history := s.trimHistory(sanitize(req.History))
	messages := make([]Message, 0, len(history)+2)
	messages = append(messages, Message{Role: RoleSystem, Content: s.cfg.SystemPrompt})
	messages = append(messages, history...)
	messages = append(messages, Message{Role: RoleUser, Content: message})

	reply, err := s.llm.Chat(ctx, messages)
	if err == nil && strings.TrimSpace(reply) == "" {
		err = apperrors.Wrap("llm_error", "model returned an empty reply", nil)
	}
	if err != nil {
		s.logger.Error("companion reply failed", "userId", userID, "historyTurns", len(history), "error", err)
		return ChatResponse{Response: FallbackReply, Success: false}, apperrors.Wrap("llm_error", "companion is unavailable", err)
	}
	s.logger.Debug("companion replied", "userId", userID, "historyTurns", len(history))
	return ChatResponse{Response: strings.TrimSpace(reply), Success: true}, nil
}

// trimHistory keeps the newest turns that fit both the message cap and the
// token budget, preserving their order.
func (s *service) trimHistory(history []Message) []Message {
	if len(history) > s.cfg.MaxHistoryMessages {
		history = history[len(history)-s.cfg.MaxHistoryMessages:]
	}
	used := 0
	start := len(history)
	for i := len(history) - 1; i >= 0; i-- {
		cost := s.counter.Count(history[i].Content)
		if used+cost > s.cfg.HistoryTokenBudget {
			break
		}
		used += cost
		start = i
	}
	return history[start:]
}

// sanitize drops empty turns and anything that is not a user or assistant turn.
func sanitize(history []Message) []Message {
	out := make([]Message, 0, len(history))
	for _, m := range history {
		role := strings.ToLower(strings.TrimSpace(m.Role))
		content := strings.TrimSpace(m.Content)
		if content == "" || (role != RoleUser && role != RoleAssistant) {
			continue
		}
		out = append(out, Message{Role: role, Content: content})
	}
	return out
}

// RuneEstimate approximates four characters per token.
type RuneEstimate struct{}

// Count implements TokenCounter.
func (RuneEstimate) Count(text string) int {
	n := utf8.RuneCountInString(text)
	if n == 0 {
		return 0
	}
	return (n + 3) / 4
}
