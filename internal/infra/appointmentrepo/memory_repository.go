package appointmentrepo

import (
	"context"
	"sync"

	"github.com/yanqian/wellness-hub/internal/domain/appointment"
)

// MemoryRepository keeps appointments in process memory.
type MemoryRepository struct {
	mu    sync.RWMutex
	items []appointment.Appointment
}

// NewMemoryRepository constructs an empty repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Insert(_ context.Context, appt appointment.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.items {
		if existing.CounselorID == appt.CounselorID && existing.Date == appt.Date && existing.Slot == appt.Slot {
			return appointment.ErrSlotTaken
		}
	}
	r.items = append(r.items, appt)
	return nil
}

func (r *MemoryRepository) ListByUser(_ context.Context, userID int64) ([]appointment.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]appointment.Appointment, 0)
	for _, a := range r.items {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *MemoryRepository) BookedSlots(_ context.Context, counselorID int, date string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []string
	for _, a := range r.items {
		if a.CounselorID == counselorID && a.Date == date {
			out = append(out, a.Slot)
		}
	}
	return out, nil
}

func (r *MemoryRepository) Delete(_ context.Context, userID int64, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, a := range r.items {
		if a.ID == id && a.UserID == userID {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

var _ appointment.Repository = (*MemoryRepository)(nil)
