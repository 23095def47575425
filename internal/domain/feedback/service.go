package feedback

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	apperrors "github.com/yanqian/wellness-hub/pkg/errors"
)

// Service exposes feedback workflows.
type Service interface {
	Submit(ctx context.Context, userID int64, req SubmitRequest) (Entry, error)
	ListMine(ctx context.Context, userID int64) ([]Entry, error)
	// ListAll is restricted to the configured admin emails.
	ListAll(ctx context.Context, callerEmail string) ([]Entry, error)
}

type service struct {
	repo   Repository
	admins map[string]struct{}
	now    func() time.Time
	logger *slog.Logger
}

// NewService constructs a Service instance.
func NewService(cfg Config, repo Repository, logger *slog.Logger) Service {
	admins := make(map[string]struct{}, len(cfg.AdminEmails))
	for _, email := range cfg.AdminEmails {
		if normalized := strings.ToLower(strings.TrimSpace(email)); normalized != "" {
			admins[normalized] = struct{}{}
		}
	}
	return &service{
		repo:   repo,
		admins: admins,
		now:    func() time.Time { return time.Now().UTC() },
		logger: logger.With("component", "feedback.service"),
	}
}

func (s *service) Submit(ctx context.Context, userID int64, req SubmitRequest) (Entry, error) {
	category, ok := matchCategory(req.Category)
	if !ok {
		return Entry{}, apperrors.Wrap("invalid_input", "unknown feedback category", nil)
	}
	if req.Rating < MinRating || req.Rating > MaxRating {
		return Entry{}, apperrors.Wrap("invalid_input", fmt.Sprintf("rating must be between %d and %d", MinRating, MaxRating), nil)
	}
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return Entry{}, apperrors.Wrap("invalid_input", "message cannot be empty", nil)
	}
	if len([]rune(message)) > maxMessageLength {
		return Entry{}, apperrors.Wrap("invalid_input", "message is too long", nil)
	}
	entry, err := s.repo.Insert(ctx, Entry{
		UserID:    userID,
		Category:  category,
		Rating:    req.Rating,
		Message:   message,
		CreatedAt: s.now(),
	})
	if err != nil {
		return Entry{}, apperrors.Wrap("storage_error", "failed to save feedback", err)
	}
	s.logger.Info("feedback submitted", "userId", userID, "category", category, "rating", req.Rating)
	return entry, nil
}

func (s *service) ListMine(ctx context.Context, userID int64) ([]Entry, error) {
	entries, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Wrap("storage_error", "failed to load feedback", err)
	}
	return entries, nil
}

func (s *service) ListAll(ctx context.Context, callerEmail string) ([]Entry, error) {
	if _, ok := s.admins[strings.ToLower(strings.TrimSpace(callerEmail))]; !ok {
		return nil, apperrors.Wrap("forbidden", "admin access required", nil)
	}
	entries, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, apperrors.Wrap("storage_error", "failed to load feedback", err)
	}
	return entries, nil
}

func matchCategory(raw string) (string, bool) {
	value := strings.TrimSpace(raw)
	for _, c := range Categories {
		if strings.EqualFold(c, value) {
			return c, true
		}
	}
	return "", false
}
