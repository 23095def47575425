package feedbackrepo

import (
	"context"
	"sort"
	"sync"

	"github.com/yanqian/wellness-hub/internal/domain/feedback"
)

// MemoryRepository stores feedback in process memory for tests/dev.
type MemoryRepository struct {
	mu      sync.RWMutex
	entries []feedback.Entry
	seq     int64
}

// NewMemoryRepository constructs an empty repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Insert(_ context.Context, entry feedback.Entry) (feedback.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	entry.ID = r.seq
	r.entries = append(r.entries, entry)
	return entry, nil
}

func (r *MemoryRepository) ListByUser(_ context.Context, userID int64) ([]feedback.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]feedback.Entry, 0)
	for _, e := range r.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	newestFirst(out)
	return out, nil
}

func (r *MemoryRepository) ListAll(_ context.Context) ([]feedback.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]feedback.Entry, len(r.entries))
	copy(out, r.entries)
	newestFirst(out)
	return out, nil
}

func newestFirst(entries []feedback.Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].CreatedAt.Equal(entries[j].CreatedAt) {
			return entries[i].ID > entries[j].ID
		}
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
}

var _ feedback.Repository = (*MemoryRepository)(nil)
