package domain

import (
	"errors"
	"testing"
)

func TestSlot(t *testing.T) {
	t.Run("valid slot", func(t *testing.T) {
		start, end, err := Slot("2024-01-10", "14:00", 60)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := end.Sub(start).Minutes(); got != 60 {
			t.Fatalf("expected 60 minute interval, got %v", got)
		}
		if start.Hour() != 14 || start.Minute() != 0 {
			t.Fatalf("unexpected start %v", start)
		}
	})

	t.Run("bad date", func(t *testing.T) {
		_, _, err := Slot("01/10/2024", "14:00", 60)
		if !errors.Is(err, ErrInvalidDate) {
			t.Fatalf("expected invalid date error, got %v", err)
		}
	})

	t.Run("bad time", func(t *testing.T) {
		_, _, err := Slot("2024-01-10", "2pm", 60)
		if !errors.Is(err, ErrInvalidTime) {
			t.Fatalf("expected invalid time error, got %v", err)
		}
	})

	t.Run("zero duration", func(t *testing.T) {
		_, _, err := Slot("2024-01-10", "14:00", 0)
		if !errors.Is(err, ErrInvalidDuration) {
			t.Fatalf("expected invalid duration error, got %v", err)
		}
	})

	t.Run("negative duration", func(t *testing.T) {
		_, _, err := Slot("2024-01-10", "14:00", -30)
		if !errors.Is(err, ErrInvalidDuration) {
			t.Fatalf("expected invalid duration error, got %v", err)
		}
	})
}

func TestOverlaps(t *testing.T) {
	aStart, aEnd, err := Slot("2024-01-10", "14:00", 60)
	if err != nil {
		t.Fatalf("slot: %v", err)
	}

	t.Run("contained interval overlaps", func(t *testing.T) {
		bStart, bEnd, err := Slot("2024-01-10", "14:30", 30)
		if err != nil {
			t.Fatalf("slot: %v", err)
		}
		if !Overlaps(aStart, aEnd, bStart, bEnd) {
			t.Fatal("expected overlap")
		}
	})

	t.Run("touching end does not overlap", func(t *testing.T) {
		bStart, bEnd, err := Slot("2024-01-10", "15:00", 30)
		if err != nil {
			t.Fatalf("slot: %v", err)
		}
		if Overlaps(aStart, aEnd, bStart, bEnd) {
			t.Fatal("expected no overlap at touching boundary")
		}
	})

	t.Run("disjoint does not overlap", func(t *testing.T) {
		bStart, bEnd, err := Slot("2024-01-10", "16:00", 30)
		if err != nil {
			t.Fatalf("slot: %v", err)
		}
		if Overlaps(aStart, aEnd, bStart, bEnd) {
			t.Fatal("expected no overlap")
		}
	})
}

func TestValidate(t *testing.T) {
	if err := Validate("Standup", "2024-01-10", "09:00", 15); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := Validate("", "2024-01-10", "09:00", 15); !errors.Is(err, ErrEmptyTitle) {
		t.Fatalf("expected empty title error, got %v", err)
	}
}
