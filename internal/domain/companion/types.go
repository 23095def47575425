package companion

import "context"

// Config holds runtime knobs for the companion service.
type Config struct {
	SystemPrompt       string
	HistoryTokenBudget int
	MaxHistoryMessages int
}

// Message roles accepted from clients.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// FallbackReply is returned whenever the model cannot answer.
const FallbackReply = "I'm here to support you. Could you tell me more about what you're experiencing?"

// Message is one chat turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest carries the new message and the client-held history.
type ChatRequest struct {
	Message string    `json:"message"`
	History []Message `json:"history"`
}

// ChatResponse mirrors the chat endpoint payload.
type ChatResponse struct {
	Response string `json:"response"`
	Success  bool   `json:"success"`
}

// LLM produces an assistant reply for an ordered message list.
type LLM interface {
	Chat(ctx context.Context, messages []Message) (string, error)
}

// TokenCounter estimates how many model tokens a text occupies.
type TokenCounter interface {
	Count(text string) int
}
