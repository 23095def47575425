package feedback

import (
	"context"
	"time"
)

// Config holds runtime knobs for the feedback service.
type Config struct {
	AdminEmails []string
}

// Categories lists the accepted feedback categories.
var Categories = []string{
	"App Experience",
	"Wellness Resources",
	"Support Services",
	"Feature Request",
	"Bug Report",
	"Other",
}

const (
	MinRating        = 1
	MaxRating        = 5
	maxMessageLength = 5000
)

// Entry is a stored piece of feedback.
type Entry struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId,omitempty"`
	Category  string    `json:"category"`
	Rating    int       `json:"rating"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"date"`
}

// SubmitRequest captures the feedback form.
type SubmitRequest struct {
	Category string `json:"category"`
	Rating   int    `json:"rating"`
	Message  string `json:"message"`
}

// Repository persists feedback. Lists are newest first.
type Repository interface {
	Insert(ctx context.Context, entry Entry) (Entry, error)
	ListByUser(ctx context.Context, userID int64) ([]Entry, error)
	ListAll(ctx context.Context) ([]Entry, error)
}
