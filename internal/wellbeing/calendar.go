package wellbeing

import "time"

const (
	decayPerWeekdayHour = 5
	// Bounds the hour walk on very stale snapshots (~13 months). Hours past
	// the cap are simply not counted; a snapshot idle longer than this stops
	// accruing decay rather than being charged a closed-form total.
	maxDecayWalkHours = 10000
	// Bounds the backward day walk for very long histories.
	maxStreakWalkDays = 365
)

// ComputeDecay returns the happiness penalty for the idle span between
// lastSeen and now: 5 points per weekday hour, by local calendar day. An hour
// counts as soon as it starts, so any nonzero weekday span costs at least 5.
// Weekend hours are free.
func ComputeDecay(lastSeen, now time.Time) int {
	return countWeekdayHours(lastSeen, now) * decayPerWeekdayHour
}

func countWeekdayHours(start, end time.Time) int {
	if !end.After(start) {
		return 0
	}

	hours := 0
	for cur := start; cur.Before(end); cur = cur.Add(time.Hour) {
		if !isWeekend(cur.Local().Weekday()) {
			hours++
		}
		if hours > maxDecayWalkHours {
			break
		}
	}
	return hours
}

func isWeekend(d time.Weekday) bool {
	return d == time.Saturday || d == time.Sunday
}

// ComputeStreak counts consecutive activity days walking backward from today.
// A weekday with no activity breaks the streak; a weekend day with no
// activity is skipped for free, so Friday..Monday stays continuous whether or
// not the weekend was used. If today is a weekday without activity yet, the
// walk starts from yesterday: today has not earned its day, but has not lost
// it either. Multiple activities on one local calendar day count once.
//
// The streak must be recomputed from the full history whenever it changes;
// a missed weekday retroactively invalidates everything before it, so
// incremental maintenance cannot survive restarts or clock changes.
func ComputeStreak(history []ActivityRecord, today time.Time) int {
	if len(history) == 0 {
		return 0
	}

	days := make(map[string]struct{}, len(history))
	for _, rec := range history {
		days[dayKey(rec.Timestamp)] = struct{}{}
	}

	cur := today
	if _, ok := days[dayKey(cur)]; !ok && !isWeekend(cur.Local().Weekday()) {
		cur = cur.AddDate(0, 0, -1)
	}

	streak := 0
	for i := 0; i < maxStreakWalkDays; i++ {
		if _, ok := days[dayKey(cur)]; ok {
			streak++
		} else if !isWeekend(cur.Local().Weekday()) {
			break
		}
		cur = cur.AddDate(0, 0, -1)
	}
	return streak
}

// dayKey collapses a timestamp to its local calendar date.
func dayKey(t time.Time) string {
	return t.Local().Format("2006-01-02")
}
