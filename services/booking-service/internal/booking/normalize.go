package booking

import "time"

// Business hours: sessions may start at 09:00 through 16:00 facility-local,
// so the last one-hour slot ends at 17:00.
const (
	openingHour = 9
	closingHour = 17
)

// Normalizer converts a raw timestamp to the facility's local time, validates
// it against the booking rules and returns the canonical slot start. It is
// pure given a fixed clock.
type Normalizer struct {
	loc *time.Location
	now func() time.Time
}

func NewNormalizer(loc *time.Location, now func() time.Time) *Normalizer {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return &Normalizer{loc: loc, now: now}
}

// Location returns the facility time zone.
func (n *Normalizer) Location() *time.Location {
	return n.loc
}

// Normalize validates raw against the booking rules, in order: future date,
// not today, inside business hours, exactly on the hour. On success it returns
// the slot start truncated to the hour in the facility time zone.
func (n *Normalizer) Normalize(raw time.Time) (time.Time, error) {
	local := raw.In(n.loc)
	now := n.now().In(n.loc)

	if !local.After(now) {
		return time.Time{}, newError(KindPastDate, msgPastDate)
	}
	if sameCalendarDay(local, now) {
		return time.Time{}, newError(KindSameDay, msgSameDay)
	}
	if local.Hour() < openingHour || local.Hour() >= closingHour {
		return time.Time{}, newError(KindOutsideBusinessHours, msgOutsideHours)
	}
	if local.Minute() != 0 || local.Second() != 0 || local.Nanosecond() != 0 {
		return time.Time{}, newError(KindNotOnTheHour, msgNotOnTheHour)
	}

	return time.Date(local.Year(), local.Month(), local.Day(), local.Hour(), 0, 0, 0, n.loc), nil
}

// DayOf returns the facility-local calendar date of t at midnight. This is the
// value persisted as slot_day and used by the member/day uniqueness index.
func (n *Normalizer) DayOf(t time.Time) time.Time {
	local := t.In(n.loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, n.loc)
}

func sameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
