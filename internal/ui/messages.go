package ui

import (
	"math/rand"

	"kanitomo/internal/crab"
)

// What Kani says while idling, keyed by mood.
var moodMessages = map[crab.Mood][]string{
	crab.MoodEcstatic: {
		"You're on fire today!",
		"We're unstoppable!",
		"This is amazing!",
		"Best day ever!",
		"I'm so happy right now!",
		"You're crushing it!",
		"Let's keep this momentum!",
	},
	crab.MoodHappy: {
		"Let's build something great!",
		"Good vibes today!",
		"Keep up the good work!",
		"I love coding with you!",
		"We make a great team!",
		"Feeling good about this!",
		"Ready for more!",
	},
	crab.MoodNeutral: {
		"Ready when you are!",
		"What shall we build?",
		"I'm here for you!",
		"Take your time.",
		"Let me know when you're ready.",
		"Standing by!",
	},
	crab.MoodSad: {
		"I miss your commits...",
		"It's been a while...",
		"Are you still there?",
		"I'm getting lonely...",
		"Come back soon?",
		"I'll wait for you.",
	},
	crab.MoodHungry: {
		"Feed me some code?",
		"I'm so hungry...",
		"Please, just one commit?",
		"I need commits to survive...",
		"Don't forget about me...",
		"A little code would help...",
	},
}

var commitMessages = []string{
	"Yum, thanks for the meal!",
	"Delicious commit!",
	"That hit the spot!",
	"Nom nom nom!",
	"Thanks, I needed that!",
	"You're the best!",
	"Keep 'em coming!",
	"That was great!",
}

func moodMessage(rng *rand.Rand, mood crab.Mood) string {
	msgs := moodMessages[mood]
	if len(msgs) == 0 {
		return "..."
	}
	return msgs[rng.Intn(len(msgs))]
}

func commitMessage(rng *rand.Rand) string {
	return commitMessages[rng.Intn(len(commitMessages))]
}
