package crab

import "testing"

func TestMoodFor(t *testing.T) {
	tests := []struct {
		happiness int
		want      Mood
	}{
		{100, MoodEcstatic},
		{90, MoodEcstatic},
		{89, MoodHappy},
		{70, MoodHappy},
		{69, MoodNeutral},
		{40, MoodNeutral},
		{39, MoodSad},
		{20, MoodSad},
		{19, MoodHungry},
		{0, MoodHungry},
		{-5, MoodHungry},
		{250, MoodEcstatic},
	}

	for _, tt := range tests {
		if got := MoodFor(tt.happiness); got != tt.want {
			t.Errorf("MoodFor(%d) = %v, want %v", tt.happiness, got, tt.want)
		}
	}
}

// Every happiness value in range must land in exactly one tier, and the tier
// must never improve as happiness drops.
func TestMoodForPartitionsRange(t *testing.T) {
	prevRank := MoodFor(100).Rank()
	for h := 99; h >= 0; h-- {
		rank := MoodFor(h).Rank()
		if rank > prevRank {
			t.Fatalf("mood rank rose from %d to %d as happiness fell to %d", prevRank, rank, h)
		}
		prevRank = rank
	}
}

func TestMoodRankOrder(t *testing.T) {
	order := []Mood{MoodHungry, MoodSad, MoodNeutral, MoodHappy, MoodEcstatic}
	for i, m := range order {
		if m.Rank() != i {
			t.Errorf("%v.Rank() = %d, want %d", m, m.Rank(), i)
		}
	}
}

func TestAnimationSpeedFollowsMood(t *testing.T) {
	order := []Mood{MoodHungry, MoodSad, MoodNeutral, MoodHappy, MoodEcstatic}
	prev := 0.0
	for _, m := range order {
		speed := m.AnimationSpeed()
		if speed <= prev {
			t.Errorf("%v animation speed %.2f not above previous %.2f", m, speed, prev)
		}
		prev = speed
	}
}

func TestMoodDisplayName(t *testing.T) {
	names := map[Mood]string{
		MoodEcstatic: "Ecstatic",
		MoodHappy:    "Happy",
		MoodNeutral:  "Neutral",
		MoodSad:      "Sad",
		MoodHungry:   "Hungry",
	}
	for m, want := range names {
		if got := m.DisplayName(); got != want {
			t.Errorf("DisplayName() = %q, want %q", got, want)
		}
	}
}
