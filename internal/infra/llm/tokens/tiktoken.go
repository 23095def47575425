package tokens

import (
	"log/slog"

	"github.com/pkoukk/tiktoken-go"

	"github.com/yanqian/wellness-hub/internal/domain/companion"
)

const defaultEncoding = "cl100k_base"

// Counter counts tokens with a tiktoken encoding. When the encoding cannot be
// loaded it falls back to a rune estimate.
type Counter struct {
	enc      *tiktoken.Tiktoken
	fallback companion.RuneEstimate
}

// NewCounter loads the named encoding, defaulting to cl100k_base.
func NewCounter(encoding string, logger *slog.Logger) *Counter {
	if encoding == "" {
		encoding = defaultEncoding
	}
	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		logger.Warn("tiktoken encoding unavailable, using rune estimate", "encoding", encoding, "error", err)
		return &Counter{}
	}
	return &Counter{enc: enc}
}

// Count implements companion.TokenCounter.
func (c *Counter) Count(text string) int {
	if text == "" {
		return 0
	}
	if c.enc == nil {
		return c.fallback.Count(text)
	}
	return len(c.enc.Encode(text, nil, nil))
}

var _ companion.TokenCounter = (*Counter)(nil)
