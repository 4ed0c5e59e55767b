// Package domain defines the meeting entity and its validation rules.
package domain

import (
	"time"

	apperrors "github.com/concierge-ai/concierge/internal/platform/errors"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// TimeLayout is the wire format for times of day.
const TimeLayout = "15:04"

// Status describes the lifecycle state of a meeting.
type Status string

const (
	// StatusScheduled marks a meeting that occupies its slot.
	StatusScheduled Status = "scheduled"
	// StatusCancelled marks a soft-deleted meeting. The record is retained
	// but no longer participates in conflict detection.
	StatusCancelled Status = "cancelled"
)

var (
	// ErrEmptyTitle rejects meetings without a title.
	ErrEmptyTitle = apperrors.New(apperrors.CodeMeetingEmptyTitle, "meeting title is required")
	// ErrInvalidDate rejects dates that do not parse as YYYY-MM-DD.
	ErrInvalidDate = apperrors.New(apperrors.CodeMeetingInvalidDate, "meeting date must use YYYY-MM-DD format")
	// ErrInvalidTime rejects times that do not parse as HH:MM.
	ErrInvalidTime = apperrors.New(apperrors.CodeMeetingInvalidTime, "meeting time must use HH:MM format")
	// ErrInvalidDuration rejects non-positive durations.
	ErrInvalidDuration = apperrors.New(apperrors.CodeMeetingInvalidDuration, "meeting duration must be greater than zero")
)

// Meeting is a time-boxed calendar entry. Meetings are never physically
// removed; cancellation is a status transition.
type Meeting struct {
	ID              string
	Title           string
	Date            string // YYYY-MM-DD
	Start           string // HH:MM
	DurationMinutes int
	Attendees       []string
	Location        string
	Description     string
	Status          Status
	CreatedAt       time.Time
}

// Interval returns the half-open [start, end) interval the meeting occupies.
// It assumes the meeting passed Validate.
func (m Meeting) Interval() (start, end time.Time, err error) {
	return Slot(m.Date, m.Start, m.DurationMinutes)
}

// Slot parses a date, time of day, and duration into a half-open interval.
func Slot(date, timeOfDay string, durationMinutes int) (start, end time.Time, err error) {
	day, err := time.Parse(DateLayout, date)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDate
	}
	clock, err := time.Parse(TimeLayout, timeOfDay)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidTime
	}
	if durationMinutes <= 0 {
		return time.Time{}, time.Time{}, ErrInvalidDuration
	}
	start = day.Add(time.Duration(clock.Hour())*time.Hour + time.Duration(clock.Minute())*time.Minute)
	end = start.Add(time.Duration(durationMinutes) * time.Minute)
	return start, end, nil
}

// Overlaps reports whether two half-open intervals intersect. Touching
// endpoints do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// Validate checks the fields required to schedule a meeting.
func Validate(title, date, timeOfDay string, durationMinutes int) error {
	if title == "" {
		return ErrEmptyTitle
	}
	_, _, err := Slot(date, timeOfDay, durationMinutes)
	return err
}
