package appointment

import (
	"context"
	"errors"
	"time"
)

// Config holds runtime knobs for booking.
type Config struct {
	Location *time.Location
	// WindowDays is how far ahead a session can be booked, counted from today.
	WindowDays int
}

// StatusScheduled is the only status a stored booking carries; cancelled
// bookings are removed.
const StatusScheduled = "scheduled"

// ErrSlotTaken is returned by repositories when the counselor already has a
// booking for the date and slot.
var ErrSlotTaken = errors.New("slot already booked")

// Counselor describes a bookable counselor.
type Counselor struct {
	ID              int      `json:"id"`
	Name            string   `json:"name"`
	Qualification   string   `json:"qualification"`
	Specializations []string `json:"specializations"`
	Availability    string   `json:"availability"`
	Fee             int      `json:"fee"`
	FeeLabel        string   `json:"feeLabel"`

	weekdays []time.Weekday
}

// AvailableOn reports whether the counselor works on the given weekday.
func (c Counselor) AvailableOn(day time.Weekday) bool {
	for _, d := range c.weekdays {
		if d == day {
			return true
		}
	}
	return false
}

var (
	weekdaysMonFri = []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday}
	weekdaysTueSat = []time.Weekday{time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday}
	weekdaysMonSat = []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday}
	weekdaysWedSun = []time.Weekday{time.Wednesday, time.Thursday, time.Friday, time.Saturday, time.Sunday}
)

// Counselors is the fixed directory.
var Counselors = []Counselor{
	{
		ID:              1,
		Name:            "Dr. Priya Sharma",
		Qualification:   "PhD Clinical Psychology",
		Specializations: []string{"Anxiety", "Depression", "Stress Management"},
		Availability:    "Mon-Fri",
		Fee:             1500,
		FeeLabel:        "₹1,500",
		weekdays:        weekdaysMonFri,
	},
	{
		ID:              2,
		Name:            "Dr. Rajesh Kumar",
		Qualification:   "MD Psychiatry",
		Specializations: []string{"Work Stress", "Burnout", "Career Counseling"},
		Availability:    "Tue-Sat",
		Fee:             2000,
		FeeLabel:        "₹2,000",
		weekdays:        weekdaysTueSat,
	},
	{
		ID:              3,
		Name:            "Dr. Ananya Iyer",
		Qualification:   "M.Phil Clinical Psychology",
		Specializations: []string{"Relationship Issues", "Family Therapy"},
		Availability:    "Mon-Sat",
		Fee:             1200,
		FeeLabel:        "₹1,200",
		weekdays:        weekdaysMonSat,
	},
	{
		ID:              4,
		Name:            "Dr. Amit Verma",
		Qualification:   "PhD Psychology, RCI Licensed",
		Specializations: []string{"Trauma", "PTSD", "Mindfulness Therapy"},
		Availability:    "Wed-Sun",
		Fee:             1800,
		FeeLabel:        "₹1,800",
		weekdays:        weekdaysWedSun,
	},
}

// Slots are the bookable session start times.
var Slots = []string{
	"09:00 AM", "10:00 AM", "11:00 AM", "12:00 PM",
	"02:00 PM", "03:00 PM", "04:00 PM", "05:00 PM", "06:00 PM", "07:00 PM",
}

// Reasons are the accepted booking reasons.
var Reasons = []string{
	"Initial Consultation",
	"Follow-up Session",
	"Stress Management",
	"Anxiety/Depression",
	"Relationship Issues",
	"Work-related Stress",
	"Other",
}

// Appointment is one booked session.
type Appointment struct {
	ID            string    `json:"id"`
	UserID        int64     `json:"-"`
	CounselorID   int       `json:"counselorId"`
	CounselorName string    `json:"counselorName"`
	Date          string    `json:"date"`
	Slot          string    `json:"slot"`
	Reason        string    `json:"reason"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	Notes         string    `json:"notes,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
}

// BookRequest is the booking form.
type BookRequest struct {
	CounselorID int    `json:"counselorId"`
	Date        string `json:"date"`
	Slot        string `json:"slot"`
	Reason      string `json:"reason"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Notes       string `json:"notes"`
}

// Repository persists appointments.
type Repository interface {
	// Insert returns ErrSlotTaken when counselor, date and slot collide.
	Insert(ctx context.Context, appt Appointment) error
	ListByUser(ctx context.Context, userID int64) ([]Appointment, error)
	BookedSlots(ctx context.Context, counselorID int, date string) ([]string, error)
	Delete(ctx context.Context, userID int64, id string) (bool, error)
}
