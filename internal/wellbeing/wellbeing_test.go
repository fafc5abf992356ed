package wellbeing

import (
	"testing"
	"time"
)

func fixTime(t *testing.T, now time.Time) {
	t.Helper()
	orig := TimeNow
	TimeNow = func() time.Time { return now }
	t.Cleanup(func() { TimeNow = orig })
}

func TestBoostAndDecayClamp(t *testing.T) {
	fixTime(t, day(10, 12))

	s := NewState()
	s.Boost(1000)
	if s.Happiness() != MaxHappiness {
		t.Errorf("Happiness after huge boost = %d, want %d", s.Happiness(), MaxHappiness)
	}

	s.Decay(1000)
	if s.Happiness() != MinHappiness {
		t.Errorf("Happiness after huge decay = %d, want %d", s.Happiness(), MinHappiness)
	}
}

func TestRecordActivityDeduplicates(t *testing.T) {
	fixTime(t, day(10, 12))

	s := NewState()
	rec := ActivityRecord{Timestamp: day(10, 9), ActivityID: "abc123", SourceName: "kanitomo"}

	if !s.RecordActivity(rec) {
		t.Fatal("first record rejected")
	}
	if s.RecordActivity(rec) {
		t.Error("duplicate record accepted")
	}
	if s.RecordActivity(ActivityRecord{Timestamp: day(10, 9)}) {
		t.Error("record without an id accepted")
	}
	if len(s.History()) != 1 {
		t.Errorf("history length = %d, want 1", len(s.History()))
	}
	if s.Streak() != 1 {
		t.Errorf("streak = %d, want 1", s.Streak())
	}
}

func TestApplyLoadDecay(t *testing.T) {
	fixTime(t, day(8, 9))

	s := NewState()
	s.Boost(30) // 80

	now := day(8, 13)
	if penalty := s.ApplyLoadDecay(now); penalty != 20 {
		t.Errorf("penalty = %d, want 20", penalty)
	}
	if s.Happiness() != 60 {
		t.Errorf("happiness = %d, want 60", s.Happiness())
	}
	if !s.LastSeen().Equal(now) {
		t.Errorf("lastSeen = %v, want %v", s.LastSeen(), now)
	}

	// Charging the same span twice would double-bill the absence.
	if penalty := s.ApplyLoadDecay(now); penalty != 0 {
		t.Errorf("second penalty = %d, want 0", penalty)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	fixTime(t, day(10, 12))

	s := NewState()
	s.Boost(25)
	s.RecordActivity(ActivityRecord{Timestamp: day(9, 9), ActivityID: "one", SourceName: "repo"})
	s.RecordActivity(ActivityRecord{Timestamp: day(10, 9), ActivityID: "two", SourceName: "repo"})

	restored := FromSnapshot(s.Snapshot())
	if restored.Happiness() != s.Happiness() {
		t.Errorf("happiness = %d, want %d", restored.Happiness(), s.Happiness())
	}
	if restored.Streak() != s.Streak() {
		t.Errorf("streak = %d, want %d", restored.Streak(), s.Streak())
	}
	if len(restored.History()) != 2 {
		t.Errorf("history length = %d, want 2", len(restored.History()))
	}
	if restored.RecordActivity(ActivityRecord{Timestamp: day(10, 9), ActivityID: "two"}) {
		t.Error("restored state lost its dedup index")
	}
}

func TestFromSnapshotSanitizes(t *testing.T) {
	fixTime(t, day(10, 12))

	s := FromSnapshot(Snapshot{Happiness: 4000, Streak: -3, BestStreak: 1})
	if s.Happiness() != MaxHappiness {
		t.Errorf("happiness = %d, want clamped to %d", s.Happiness(), MaxHappiness)
	}
	if s.Streak() != 0 {
		t.Errorf("streak = %d, want 0", s.Streak())
	}
	if s.LastSeen().IsZero() {
		t.Error("zero lastSeen not defaulted")
	}
}

func TestBestStreakRatchets(t *testing.T) {
	fixTime(t, day(10, 12))

	s := NewState()
	s.RecordActivity(ActivityRecord{Timestamp: day(9, 9), ActivityID: "one"})
	s.RecordActivity(ActivityRecord{Timestamp: day(10, 9), ActivityID: "two"})
	if s.BestStreak() != 2 {
		t.Fatalf("bestStreak = %d, want 2", s.BestStreak())
	}

	// A later recompute on a broken streak must not lower the best.
	s.RecomputeStreak(day(17, 12))
	if s.Streak() != 0 {
		t.Errorf("streak = %d, want 0 after the gap", s.Streak())
	}
	if s.BestStreak() != 2 {
		t.Errorf("bestStreak = %d, want 2", s.BestStreak())
	}
}

func TestActivityTodayAndLastActivity(t *testing.T) {
	fixTime(t, day(10, 12))

	s := NewState()
	if _, ok := s.LastActivity(); ok {
		t.Error("LastActivity reported an event on empty history")
	}

	s.RecordActivity(ActivityRecord{Timestamp: day(9, 9), ActivityID: "one"})
	s.RecordActivity(ActivityRecord{Timestamp: day(10, 9), ActivityID: "two"})
	s.RecordActivity(ActivityRecord{Timestamp: day(10, 11), ActivityID: "three"})

	if got := s.ActivityToday(day(10, 12)); got != 2 {
		t.Errorf("ActivityToday = %d, want 2", got)
	}
	last, ok := s.LastActivity()
	if !ok || !last.Equal(day(10, 11)) {
		t.Errorf("LastActivity = %v, %v; want %v, true", last, ok, day(10, 11))
	}
}
