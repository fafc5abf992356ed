// Package wellbeing owns the crab's happiness, activity history, and streak
// bookkeeping. Happiness is only ever mutated through Boost and Decay so
// clamping stays in one place.
package wellbeing

import (
	"log"
	"time"
)

// TimeNow is swappable for tests.
var TimeNow = func() time.Time { return time.Now() }

const (
	MaxHappiness     = 100
	MinHappiness     = 0
	DefaultHappiness = 50
)

// ActivityRecord is one detected activity event. Records are immutable and
// the history is append-only; ActivityID is the dedup key.
type ActivityRecord struct {
	Timestamp  time.Time `json:"timestamp"`
	ActivityID string    `json:"activity_id"`
	SourceID   string    `json:"source_id"`
	SourceName string    `json:"source_name"`
}

// Snapshot is the serializable form of the state; it round-trips losslessly
// through the store.
type Snapshot struct {
	Happiness  int              `json:"happiness"`
	Streak     int              `json:"streak"`
	BestStreak int              `json:"best_streak"`
	LastSeen   time.Time        `json:"last_seen"`
	History    []ActivityRecord `json:"history,omitempty"`
}

// State is the wellbeing score and its supporting history.
type State struct {
	happiness  int
	streak     int
	bestStreak int
	lastSeen   time.Time
	history    []ActivityRecord
	seen       map[string]struct{}
}

// NewState builds a default state for a first run.
func NewState() *State {
	return &State{
		happiness: DefaultHappiness,
		lastSeen:  TimeNow(),
		seen:      make(map[string]struct{}),
	}
}

// FromSnapshot restores state from a loaded snapshot. A corrupted happiness
// value is clamped into range rather than rejected; the pet's only job is to
// keep running.
func FromSnapshot(snap Snapshot) *State {
	s := &State{
		happiness:  clamp(snap.Happiness),
		streak:     snap.Streak,
		bestStreak: snap.BestStreak,
		lastSeen:   snap.LastSeen,
		history:    append([]ActivityRecord(nil), snap.History...),
		seen:       make(map[string]struct{}, len(snap.History)),
	}
	if s.streak < 0 {
		s.streak = 0
	}
	if s.bestStreak < s.streak {
		s.bestStreak = s.streak
	}
	if s.lastSeen.IsZero() {
		s.lastSeen = TimeNow()
	}
	for _, rec := range s.history {
		s.seen[rec.ActivityID] = struct{}{}
	}
	return s
}

// Snapshot returns a copy suitable for persisting.
func (s *State) Snapshot() Snapshot {
	return Snapshot{
		Happiness:  s.happiness,
		Streak:     s.streak,
		BestStreak: s.bestStreak,
		LastSeen:   s.lastSeen,
		History:    append([]ActivityRecord(nil), s.history...),
	}
}

func (s *State) Happiness() int            { return s.happiness }
func (s *State) Streak() int               { return s.streak }
func (s *State) BestStreak() int           { return s.bestStreak }
func (s *State) LastSeen() time.Time       { return s.lastSeen }
func (s *State) History() []ActivityRecord { return s.history }

// Boost raises happiness, clamped at 100.
func (s *State) Boost(amount int) {
	s.happiness = clamp(s.happiness + amount)
}

// Decay lowers happiness, clamped at 0.
func (s *State) Decay(amount int) {
	s.happiness = clamp(s.happiness - amount)
}

// ApplyLoadDecay charges the idle span since lastSeen once and moves lastSeen
// forward. Returns the penalty applied.
func (s *State) ApplyLoadDecay(now time.Time) int {
	penalty := ComputeDecay(s.lastSeen, now)
	if penalty > 0 {
		s.Decay(penalty)
		log.Printf("Applied %d idle decay, happiness now %d", penalty, s.happiness)
	}
	s.lastSeen = now
	return penalty
}

// RecordActivity appends a new activity event, rejecting duplicates by id so
// delivery is idempotent. The streak is recomputed from the full history.
// Reports whether the record was new.
func (s *State) RecordActivity(rec ActivityRecord) bool {
	if rec.ActivityID == "" {
		return false
	}
	if _, dup := s.seen[rec.ActivityID]; dup {
		return false
	}
	s.seen[rec.ActivityID] = struct{}{}
	s.history = append(s.history, rec)
	s.RecomputeStreak(TimeNow())
	return true
}

// RecomputeStreak replaces the streak from the history and ratchets
// bestStreak.
func (s *State) RecomputeStreak(today time.Time) {
	s.streak = ComputeStreak(s.history, today)
	if s.streak > s.bestStreak {
		s.bestStreak = s.streak
	}
}

// Touch moves lastSeen forward without applying decay, for periodic
// checkpoints while the process is alive.
func (s *State) Touch(now time.Time) {
	s.lastSeen = now
}

// ActivityToday counts events on today's local calendar date.
func (s *State) ActivityToday(now time.Time) int {
	today := dayKey(now)
	n := 0
	for _, rec := range s.history {
		if dayKey(rec.Timestamp) == today {
			n++
		}
	}
	return n
}

// LastActivity returns the newest event timestamp, if any.
func (s *State) LastActivity() (time.Time, bool) {
	var latest time.Time
	for _, rec := range s.history {
		if rec.Timestamp.After(latest) {
			latest = rec.Timestamp
		}
	}
	return latest, !latest.IsZero()
}

func clamp(h int) int {
	if h > MaxHappiness {
		return MaxHappiness
	}
	if h < MinHappiness {
		return MinHappiness
	}
	return h
}
