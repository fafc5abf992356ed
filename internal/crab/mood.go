package crab

// Mood is the crab's emotional tier, derived from happiness and never stored
// on its own.
type Mood int

const (
	MoodEcstatic Mood = iota
	MoodHappy
	MoodNeutral
	MoodSad
	MoodHungry
)

// MoodFor maps a happiness level to a mood. Out-of-range values are treated
// as if clamped to [0,100].
func MoodFor(happiness int) Mood {
	switch {
	case happiness >= 90:
		return MoodEcstatic
	case happiness >= 70:
		return MoodHappy
	case happiness >= 40:
		return MoodNeutral
	case happiness >= 20:
		return MoodSad
	default:
		return MoodHungry
	}
}

// DisplayName returns the label shown in the stats panel.
func (m Mood) DisplayName() string {
	switch m {
	case MoodEcstatic:
		return "Ecstatic"
	case MoodHappy:
		return "Happy"
	case MoodNeutral:
		return "Neutral"
	case MoodSad:
		return "Sad"
	case MoodHungry:
		return "Hungry"
	default:
		return "Unknown"
	}
}

// Rank orders moods from worst (0, Hungry) to best (4, Ecstatic). Comparisons
// between moods must go through Rank rather than the enum values, whose
// declaration order is a display choice.
func (m Mood) Rank() int {
	switch m {
	case MoodHungry:
		return 0
	case MoodSad:
		return 1
	case MoodNeutral:
		return 2
	case MoodHappy:
		return 3
	case MoodEcstatic:
		return 4
	default:
		return -1
	}
}

// AnimationSpeed returns the animation tempo multiplier for the mood.
func (m Mood) AnimationSpeed() float64 {
	switch m {
	case MoodEcstatic:
		return 2.0
	case MoodHappy:
		return 1.0
	case MoodNeutral:
		return 0.6
	case MoodSad:
		return 0.3
	case MoodHungry:
		return 0.2
	default:
		return 1.0
	}
}

// AccentColor returns the hex color used for mood labels in the UI.
func (m Mood) AccentColor() string {
	switch m {
	case MoodEcstatic:
		return "#C678DD"
	case MoodHappy:
		return "#98C379"
	case MoodNeutral:
		return "#E5C07B"
	case MoodSad:
		return "#61AFEF"
	case MoodHungry:
		return "#E06C75"
	default:
		return "#FFFFFF"
	}
}

func (m Mood) String() string {
	return m.DisplayName()
}
