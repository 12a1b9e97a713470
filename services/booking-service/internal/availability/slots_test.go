package availability

import (
	"testing"
	"time"
)

func TestFreeHours_SkipsBusy(t *testing.T) {
	day := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	busy := []time.Time{
		day.Add(10 * time.Hour),
		day.Add(14 * time.Hour),
	}

	free := FreeHours(day, 9, 17, busy, day)
	if len(free) != 6 {
		t.Fatalf("expected 6 free hours, got %d", len(free))
	}
	for _, f := range free {
		if f.Hour() == 10 || f.Hour() == 14 {
			t.Fatalf("busy hour %d returned as free", f.Hour())
		}
		if f.Hour() < 9 || f.Hour() >= 17 {
			t.Fatalf("hour %d outside business hours", f.Hour())
		}
	}
}

func TestFreeHours_SkipsPast(t *testing.T) {
	day := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	now := day.Add(11*time.Hour + 30*time.Minute)

	free := FreeHours(day, 9, 17, nil, now)
	// 09:00 through 11:00 have passed; 12:00 through 16:00 remain.
	if len(free) != 5 {
		t.Fatalf("expected 5 free hours, got %d", len(free))
	}
	if free[0].Hour() != 12 {
		t.Fatalf("expected first free hour 12, got %d", free[0].Hour())
	}
}

func TestFreeHours_EmptyWindow(t *testing.T) {
	day := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	if free := FreeHours(day, 17, 9, nil, day); free != nil {
		t.Fatalf("expected nil for inverted window, got %v", free)
	}
}
