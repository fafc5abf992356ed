package wellbeing

import (
	"fmt"
	"testing"
	"time"
)

// 2024-01-01 was a Monday, which makes weekday math easy to read.
func day(d, hour int) time.Time {
	return time.Date(2024, time.January, d, hour, 0, 0, 0, time.Local)
}

func TestComputeDecay(t *testing.T) {
	tests := []struct {
		name     string
		lastSeen time.Time
		now      time.Time
		want     int
	}{
		{"no elapsed time", day(8, 9), day(8, 9), 0},
		{"now before lastSeen", day(8, 9), day(8, 8), 0},
		{"one weekday hour", day(8, 9), day(8, 10), 5},
		{"eight weekday hours", day(8, 9), day(8, 17), 40},
		{"ten weekday hours", day(8, 9), day(8, 19), 50},
		{"saturday is free", day(6, 9), day(6, 19), 0},
		{"full weekend is free", day(6, 0), day(8, 0), 0},
		{"friday night to monday morning", day(5, 23), day(8, 1), 10},
		{"started hour counts in full", day(8, 9), day(8, 9).Add(59 * time.Minute), 5},
		{"second hour counts once started", day(8, 9), day(8, 10).Add(time.Minute), 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComputeDecay(tt.lastSeen, tt.now); got != tt.want {
				t.Errorf("ComputeDecay() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestComputeDecayWalkIsBounded(t *testing.T) {
	now := day(8, 9)
	twoYears := ComputeDecay(now.AddDate(-2, 0, 0), now)
	threeYears := ComputeDecay(now.AddDate(-3, 0, 0), now)

	if twoYears == 0 {
		t.Fatal("expected a nonzero penalty for a two-year absence")
	}
	if twoYears != threeYears {
		t.Errorf("penalty kept growing past the walk bound: %d vs %d", twoYears, threeYears)
	}
}

func recordsOn(days ...time.Time) []ActivityRecord {
	recs := make([]ActivityRecord, len(days))
	for i, d := range days {
		recs[i] = ActivityRecord{
			Timestamp:  d,
			ActivityID: fmt.Sprintf("commit-%d", i),
		}
	}
	return recs
}

func TestComputeStreak(t *testing.T) {
	tests := []struct {
		name    string
		history []ActivityRecord
		today   time.Time
		want    int
	}{
		{"empty history", nil, day(10, 12), 0},
		{"single activity today", recordsOn(day(10, 9)), day(10, 12), 1},
		{"friday saturday monday", recordsOn(day(5, 9), day(6, 9), day(8, 9)), day(8, 12), 3},
		{"weekend untouched stays continuous", recordsOn(day(5, 9), day(8, 9)), day(8, 12), 2},
		{"weekday gap breaks", recordsOn(day(8, 9)), day(10, 12), 0},
		{"quiet weekday today starts yesterday", recordsOn(day(8, 9), day(9, 9)), day(10, 12), 2},
		{"quiet saturday today skips to friday", recordsOn(day(5, 9)), day(6, 12), 1},
		{"several commits one day count once", recordsOn(day(10, 9), day(10, 10), day(10, 11)), day(10, 12), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComputeStreak(tt.history, tt.today); got != tt.want {
				t.Errorf("ComputeStreak() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestComputeStreakWalkIsBounded(t *testing.T) {
	today := day(10, 12)
	var history []ActivityRecord
	for i := 0; i < 500; i++ {
		history = append(history, ActivityRecord{
			Timestamp:  today.AddDate(0, 0, -i),
			ActivityID: fmt.Sprintf("commit-%d", i),
		})
	}

	got := ComputeStreak(history, today)
	if got != 365 {
		t.Errorf("ComputeStreak() = %d, want the 365-day bound", got)
	}
}
