package service

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/concierge-ai/concierge/internal/calendar/domain"
	apperrors "github.com/concierge-ai/concierge/internal/platform/errors"
)

func scheduleReq(title, date, start string, duration int) ScheduleRequest {
	return ScheduleRequest{
		Title:           title,
		Date:            date,
		Time:            start,
		DurationMinutes: duration,
	}
}

func TestScheduleConflictScenario(t *testing.T) {
	registry := NewRegistry()

	a, err := registry.Schedule(scheduleReq("A", "2024-01-10", "14:00", 60))
	if err != nil {
		t.Fatalf("schedule A: %v", err)
	}

	_, err = registry.Schedule(scheduleReq("B", "2024-01-10", "14:30", 30))
	if err == nil {
		t.Fatal("expected conflict for B")
	}
	var derr *apperrors.Error
	if !errors.As(err, &derr) {
		t.Fatalf("expected domain error, got %T", err)
	}
	if derr.Code != apperrors.CodeMeetingConflict {
		t.Fatalf("expected conflict code, got %s", derr.Code)
	}
	if derr.Metadata["conflicting_meeting_id"] != a.ID {
		t.Fatalf("expected conflict metadata to name %q, got %q", a.ID, derr.Metadata["conflicting_meeting_id"])
	}

	// Touches A's end but does not overlap.
	if _, err := registry.Schedule(scheduleReq("C", "2024-01-10", "15:00", 30)); err != nil {
		t.Fatalf("schedule C: %v", err)
	}
}

func TestScheduleValidation(t *testing.T) {
	registry := NewRegistry()

	cases := []struct {
		name string
		req  ScheduleRequest
		want error
	}{
		{"empty title", scheduleReq("", "2024-01-10", "14:00", 60), domain.ErrEmptyTitle},
		{"bad date", scheduleReq("X", "Jan 10", "14:00", 60), domain.ErrInvalidDate},
		{"bad time", scheduleReq("X", "2024-01-10", "noon", 60), domain.ErrInvalidTime},
		{"zero duration", scheduleReq("X", "2024-01-10", "14:00", 0), domain.ErrInvalidDuration},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := registry.Schedule(tc.req); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestScheduleAllowsSameSlotOnDifferentDates(t *testing.T) {
	registry := NewRegistry()

	if _, err := registry.Schedule(scheduleReq("A", "2024-01-10", "14:00", 60)); err != nil {
		t.Fatalf("schedule A: %v", err)
	}
	if _, err := registry.Schedule(scheduleReq("B", "2024-01-11", "14:00", 60)); err != nil {
		t.Fatalf("schedule B: %v", err)
	}
}

func TestCancelFreesSlotAndIsIdempotent(t *testing.T) {
	registry := NewRegistry()

	a, err := registry.Schedule(scheduleReq("A", "2024-01-10", "14:00", 60))
	if err != nil {
		t.Fatalf("schedule A: %v", err)
	}

	first, err := registry.Cancel(a.ID)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if first.Status != domain.StatusCancelled {
		t.Fatalf("expected cancelled status, got %s", first.Status)
	}

	second, err := registry.Cancel(a.ID)
	if err != nil {
		t.Fatalf("second cancel should succeed: %v", err)
	}
	if second.Status != domain.StatusCancelled {
		t.Fatalf("expected cancelled status on repeat, got %s", second.Status)
	}

	// Cancelled meetings no longer occupy the slot.
	if _, err := registry.Schedule(scheduleReq("B", "2024-01-10", "14:00", 60)); err != nil {
		t.Fatalf("expected slot to be free after cancel: %v", err)
	}
}

func TestCancelUnknownID(t *testing.T) {
	registry := NewRegistry()
	if _, err := registry.Cancel("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListOrderingAndFiltering(t *testing.T) {
	registry := NewRegistry()

	for _, m := range []struct{ title, date, start string }{
		{"late", "2024-01-11", "09:00"},
		{"early", "2024-01-10", "08:00"},
		{"midday", "2024-01-10", "12:00"},
	} {
		if _, err := registry.Schedule(scheduleReq(m.title, m.date, m.start, 30)); err != nil {
			t.Fatalf("schedule %s: %v", m.title, err)
		}
	}

	all, err := registry.List("")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	titles := make([]string, 0, len(all))
	for _, m := range all {
		titles = append(titles, m.Title)
	}
	want := []string{"early", "midday", "late"}
	for i := range want {
		if titles[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, titles)
		}
	}

	day, err := registry.List("2024-01-10")
	if err != nil {
		t.Fatalf("list day: %v", err)
	}
	if len(day) != 2 {
		t.Fatalf("expected 2 meetings on 2024-01-10, got %d", len(day))
	}

	if _, err := registry.List("not-a-date"); !errors.Is(err, domain.ErrInvalidDate) {
		t.Fatalf("expected invalid date, got %v", err)
	}
}

func TestListIncludesCancelled(t *testing.T) {
	registry := NewRegistry()

	a, err := registry.Schedule(scheduleReq("A", "2024-01-10", "14:00", 60))
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if _, err := registry.Cancel(a.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	all, err := registry.List("")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected cancelled meeting in listing, got %d entries", len(all))
	}
	if all[0].Status != domain.StatusCancelled {
		t.Fatalf("expected cancelled status, got %s", all[0].Status)
	}
}

func TestCheckAvailability(t *testing.T) {
	registry := NewRegistry()

	a, err := registry.Schedule(scheduleReq("A", "2024-01-10", "14:00", 60))
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}

	busy, err := registry.CheckAvailability("2024-01-10", "14:30", 30)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if busy.Available {
		t.Fatal("expected slot to be unavailable")
	}
	if busy.ConflictingMeetingID != a.ID {
		t.Fatalf("expected conflicting id %q, got %q", a.ID, busy.ConflictingMeetingID)
	}

	free, err := registry.CheckAvailability("2024-01-10", "15:00", 30)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !free.Available {
		t.Fatal("expected touching slot to be available")
	}

	// Checking must not persist anything.
	all, err := registry.List("")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected 1 meeting after checks, got %d", len(all))
	}
}

func TestConcurrentScheduleSingleWinner(t *testing.T) {
	registry := NewRegistry()

	const attempts = 16
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = registry.Schedule(scheduleReq(fmt.Sprintf("m%d", i), "2024-01-10", "14:00", 60))
		}()
	}
	wg.Wait()

	var wins int
	for _, err := range errs {
		if err == nil {
			wins++
		} else if !errors.Is(err, apperrors.New(apperrors.CodeMeetingConflict, "")) {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if wins != 1 {
		t.Fatalf("expected exactly one winner, got %d", wins)
	}
}
