package availability

import "time"

// FreeHours returns the on-the-hour start times on day (a facility-local
// midnight) that fall inside [openingHour, closingHour), are not in busy, and
// have not already passed relative to now.
//
// day and now are expected to be in the facility time zone.
func FreeHours(day time.Time, openingHour, closingHour int, busy []time.Time, now time.Time) []time.Time {
	if closingHour <= openingHour {
		return nil
	}

	var free []time.Time
	for h := openingHour; h < closingHour; h++ {
		start := time.Date(day.Year(), day.Month(), day.Day(), h, 0, 0, 0, day.Location())
		if !start.After(now) {
			continue
		}
		if containsInstant(busy, start) {
			continue
		}
		free = append(free, start)
	}
	return free
}

func containsInstant(set []time.Time, t time.Time) bool {
	for _, s := range set {
		if s.Equal(t) {
			return true
		}
	}
	return false
}
