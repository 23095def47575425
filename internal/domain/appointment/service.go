package appointment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"slices"
	"sort"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"

	apperrors "github.com/yanqian/wellness-hub/pkg/errors"
	"github.com/yanqian/wellness-hub/pkg/util"
)

// Service exposes counselor booking workflows.
type Service interface {
	Counselors(ctx context.Context) []Counselor
	// OpenSlots lists the slots still free for a counselor on a date.
	OpenSlots(ctx context.Context, counselorID int, date string) ([]string, error)
	Book(ctx context.Context, userID int64, req BookRequest) (Appointment, error)
	ListMine(ctx context.Context, userID int64) ([]Appointment, error)
	Cancel(ctx context.Context, userID int64, id string) error
}

type service struct {
	cfg    Config
	repo   Repository
	now    func() time.Time
	logger *slog.Logger
}

const (
	defaultWindowDays = 14
	maxNotesLength    = 1000
	maxNameLength     = 100
	minPhoneDigits    = 7
	maxPhoneDigits    = 15
)

// NewService constructs a Service instance.
func NewService(cfg Config, repo Repository, logger *slog.Logger) Service {
	return newService(cfg, repo, time.Now, logger)
}

func newService(cfg Config, repo Repository, now func() time.Time, logger *slog.Logger) *service {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.WindowDays <= 0 {
		cfg.WindowDays = defaultWindowDays
	}
	return &service{
		cfg:    cfg,
		repo:   repo,
		now:    now,
		logger: logger.With("component", "appointment.service"),
	}
}

func (s *service) Counselors(context.Context) []Counselor {
	out := make([]Counselor, len(Counselors))
	copy(out, Counselors)
	return out
}

func (s *service) OpenSlots(ctx context.Context, counselorID int, date string) ([]string, error) {
	counselor, err := findCounselor(counselorID)
	if err != nil {
		return nil, err
	}
	day, err := s.validateDate(date, counselor)
	if err != nil {
		return nil, err
	}
	booked, err := s.repo.BookedSlots(ctx, counselor.ID, day)
	if err != nil {
		return nil, apperrors.Wrap("storage_error", "failed to load bookings", err)
	}
	open := make([]string, 0, len(Slots))
	for _, slot := range Slots {
		if !slices.Contains(booked, slot) {
			open = append(open, slot)
		}
	}
	return open, nil
}

func (s *service) Book(ctx context.Context, userID int64, req BookRequest) (Appointment, error) {
	counselor, err := findCounselor(req.CounselorID)
	if err != nil {
		return Appointment{}, err
	}
	day, err := s.validateDate(req.Date, counselor)
	if err != nil {
		return Appointment{}, err
	}
	slot := strings.TrimSpace(req.Slot)
	if !slices.Contains(Slots, slot) {
		return Appointment{}, apperrors.Wrap("invalid_input", "unknown time slot", nil)
	}
	reason := strings.TrimSpace(req.Reason)
	if !slices.Contains(Reasons, reason) {
		return Appointment{}, apperrors.Wrap("invalid_input", "unknown booking reason", nil)
	}
	name := strings.Join(strings.Fields(req.Name), " ")
	if name == "" || utf8.RuneCountInString(name) > maxNameLength {
		return Appointment{}, apperrors.Wrap("invalid_input", "name is required", nil)
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := mail.ParseAddress(email); err != nil || email == "" {
		return Appointment{}, apperrors.Wrap("invalid_input", "invalid email address", err)
	}
	phone, err := normalizePhone(req.Phone)
	if err != nil {
		return Appointment{}, apperrors.Wrap("invalid_input", err.Error(), nil)
	}
	notes := strings.TrimSpace(req.Notes)
	if utf8.RuneCountInString(notes) > maxNotesLength {
		return Appointment{}, apperrors.Wrap("invalid_input", "notes are too long", nil)
	}

	appt := Appointment{
		ID:            uuid.NewString(),
		UserID:        userID,
		CounselorID:   counselor.ID,
		CounselorName: counselor.Name,
		Date:          day,
		Slot:          slot,
		Reason:        reason,
		Name:          name,
		Email:         email,
		Phone:         phone,
		Notes:         notes,
		Status:        StatusScheduled,
		CreatedAt:     s.now().UTC(),
	}
	if err := s.repo.Insert(ctx, appt); err != nil {
		if errors.Is(err, ErrSlotTaken) {
			return Appointment{}, apperrors.Wrap("slot_taken", "this slot is already booked", err)
		}
		return Appointment{}, apperrors.Wrap("storage_error", "failed to save appointment", err)
	}
	s.logger.Info("appointment booked", "userId", userID, "appointmentId", appt.ID, "counselorId", counselor.ID, "date", day, "slot", slot)
	return appt, nil
}

func (s *service) ListMine(ctx context.Context, userID int64) ([]Appointment, error) {
	appts, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Wrap("storage_error", "failed to load appointments", err)
	}
	sort.SliceStable(appts, func(i, j int) bool {
		if appts[i].Date != appts[j].Date {
			return appts[i].Date < appts[j].Date
		}
		return slotIndex(appts[i].Slot) < slotIndex(appts[j].Slot)
	})
	return appts, nil
}

func (s *service) Cancel(ctx context.Context, userID int64, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperrors.Wrap("not_found", "appointment not found", nil)
	}
	deleted, err := s.repo.Delete(ctx, userID, id)
	if err != nil {
		return apperrors.Wrap("storage_error", "failed to cancel appointment", err)
	}
	if !deleted {
		return apperrors.Wrap("not_found", "appointment not found", nil)
	}
	s.logger.Info("appointment cancelled", "userId", userID, "appointmentId", id)
	return nil
}

// validateDate accepts dates from tomorrow through the booking window on a
// weekday the counselor works, and returns the canonical day key.
func (s *service) validateDate(raw string, counselor Counselor) (string, error) {
	day, err := time.ParseInLocation(util.DayLayout, strings.TrimSpace(raw), s.cfg.Location)
	if err != nil {
		return "", apperrors.Wrap("invalid_input", "date must be YYYY-MM-DD", err)
	}
	ahead := util.DaysBetween(s.now(), day)
	if ahead < 1 || ahead > s.cfg.WindowDays {
		return "", apperrors.Wrap("invalid_input", fmt.Sprintf("date must be between tomorrow and %d days ahead", s.cfg.WindowDays), nil)
	}
	if !counselor.AvailableOn(day.Weekday()) {
		return "", apperrors.Wrap("invalid_input", fmt.Sprintf("%s is not available on %s", counselor.Name, day.Weekday()), nil)
	}
	return day.Format(util.DayLayout), nil
}

func findCounselor(id int) (Counselor, error) {
	for _, c := range Counselors {
		if c.ID == id {
			return c, nil
		}
	}
	return Counselor{}, apperrors.Wrap("invalid_input", "unknown counselor", nil)
}

func normalizePhone(raw string) (string, error) {
	phone := strings.TrimSpace(raw)
	if phone == "" {
		return "", errors.New("phone is required")
	}
	digits := 0
	for i, r := range phone {
		switch {
		case unicode.IsDigit(r):
			digits++
		case r == '+' && i == 0:
		case r == ' ' || r == '-' || r == '(' || r == ')':
		default:
			return "", errors.New("invalid phone number")
		}
	}
	if digits < minPhoneDigits || digits > maxPhoneDigits {
		return "", errors.New("invalid phone number")
	}
	return phone, nil
}

func slotIndex(slot string) int {
	return slices.Index(Slots, slot)
}
