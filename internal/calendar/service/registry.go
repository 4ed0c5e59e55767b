// Package service implements the in-memory meeting registry.
package service

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/concierge-ai/concierge/internal/calendar/domain"
	apperrors "github.com/concierge-ai/concierge/internal/platform/errors"
	"github.com/concierge-ai/concierge/internal/platform/id"
)

// ErrNotFound is returned when a meeting id is unknown.
var ErrNotFound = apperrors.New(apperrors.CodeMeetingNotFound, "meeting not found")

// ScheduleRequest carries the parameters for scheduling a meeting.
type ScheduleRequest struct {
	Title           string
	Date            string // YYYY-MM-DD
	Time            string // HH:MM
	DurationMinutes int
	Attendees       []string
	Location        string
	Description     string
}

// Availability is the outcome of a non-mutating slot check.
type Availability struct {
	Available            bool
	ConflictingMeetingID string
}

// Registry owns the id-keyed meeting store for the lifetime of the process.
// A single mutex serializes mutators so concurrent schedule attempts for
// overlapping slots resolve by lock acquisition order: the first wins, the
// second observes the stored meeting and fails with a conflict error.
type Registry struct {
	mu       sync.Mutex
	meetings map[string]*domain.Meeting
	order    []string // insertion order, stable tie-break for List
	clock    func() time.Time
	newID    func() (string, error)
}

// NewRegistry creates an empty meeting registry.
func NewRegistry() *Registry {
	return &Registry{
		meetings: make(map[string]*domain.Meeting),
		clock:    time.Now,
		newID:    id.NewID,
	}
}

// Schedule validates the request, rejects slots that overlap a scheduled
// meeting on the same date, and stores the meeting on success.
func (r *Registry) Schedule(req ScheduleRequest) (domain.Meeting, error) {
	if err := domain.Validate(req.Title, req.Date, req.Time, req.DurationMinutes); err != nil {
		return domain.Meeting{}, err
	}
	start, end, err := domain.Slot(req.Date, req.Time, req.DurationMinutes)
	if err != nil {
		return domain.Meeting{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if conflict := r.findConflict(req.Date, start, end); conflict != nil {
		return domain.Meeting{}, conflictError(conflict)
	}

	meetingID, err := r.newID()
	if err != nil {
		return domain.Meeting{}, fmt.Errorf("generate meeting id: %w", err)
	}

	meeting := &domain.Meeting{
		ID:              meetingID,
		Title:           req.Title,
		Date:            req.Date,
		Start:           req.Time,
		DurationMinutes: req.DurationMinutes,
		Attendees:       append([]string(nil), req.Attendees...),
		Location:        req.Location,
		Description:     req.Description,
		Status:          domain.StatusScheduled,
		CreatedAt:       r.clock().UTC(),
	}
	r.meetings[meetingID] = meeting
	r.order = append(r.order, meetingID)
	return *meeting, nil
}

// List returns meetings sorted by (date, start time). An empty date returns
// every meeting. Cancelled meetings are included; callers distinguish them
// via Status.
func (r *Registry) List(date string) ([]domain.Meeting, error) {
	if date != "" {
		if _, err := time.Parse(domain.DateLayout, date); err != nil {
			return nil, domain.ErrInvalidDate
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.Meeting, 0, len(r.order))
	for _, meetingID := range r.order {
		m := r.meetings[meetingID]
		if date != "" && m.Date != date {
			continue
		}
		out = append(out, *m)
	}
	// Zero-padded layouts sort lexicographically in chronological order.
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Start < out[j].Start
	})
	return out, nil
}

// Cancel transitions a meeting to cancelled. Cancelling an already-cancelled
// meeting is a no-op success returning the same record, so repeated calls
// never produce spurious errors.
func (r *Registry) Cancel(meetingID string) (domain.Meeting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.meetings[meetingID]
	if !ok {
		return domain.Meeting{}, ErrNotFound
	}
	m.Status = domain.StatusCancelled
	return *m, nil
}

// Get returns a meeting by id.
func (r *Registry) Get(meetingID string) (domain.Meeting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.meetings[meetingID]
	if !ok {
		return domain.Meeting{}, ErrNotFound
	}
	return *m, nil
}

// CheckAvailability runs the same overlap test as Schedule without
// persisting anything.
func (r *Registry) CheckAvailability(date, timeOfDay string, durationMinutes int) (Availability, error) {
	start, end, err := domain.Slot(date, timeOfDay, durationMinutes)
	if err != nil {
		return Availability{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if conflict := r.findConflict(date, start, end); conflict != nil {
		return Availability{Available: false, ConflictingMeetingID: conflict.ID}, nil
	}
	return Availability{Available: true}, nil
}

// findConflict scans scheduled meetings on the given date for an interval
// intersection. Linear scan is deliberate at personal-assistant volume.
// Caller must hold r.mu.
func (r *Registry) findConflict(date string, start, end time.Time) *domain.Meeting {
	for _, meetingID := range r.order {
		m := r.meetings[meetingID]
		if m.Status != domain.StatusScheduled || m.Date != date {
			continue
		}
		otherStart, otherEnd, err := m.Interval()
		if err != nil {
			// Stored meetings passed validation; an unparsable one is a bug.
			continue
		}
		if domain.Overlaps(start, end, otherStart, otherEnd) {
			return m
		}
	}
	return nil
}

func conflictError(m *domain.Meeting) error {
	return apperrors.WithMetadata(
		apperrors.CodeMeetingConflict,
		fmt.Sprintf("slot conflicts with meeting %q at %s %s", m.Title, m.Date, m.Start),
		map[string]string{"conflicting_meeting_id": m.ID},
	)
}
