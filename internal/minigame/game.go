package minigame

import (
	"math"
	"math/rand"
	"time"
)

const (
	maxPlayfieldWidth = 32
	crabSpriteWidth   = 7
	gameDuration      = 20 * time.Second

	// Seconds before the crab sprite returns to neutral, and how long the
	// happy face shows after a catch.
	idleThreshold   = 0.5
	catchShowTime   = 0.5
	minSpawnSeconds = 0.45
	maxSpawnSeconds = 0.9
	minFallSpeed    = 3.0
	maxFallSpeed    = 7.0
)

var foodGlyphs = []rune{'o', '*', '+', '@'}

// Facing is the crab's pose in the catch game.
type Facing int

const (
	FacingNeutral Facing = iota
	FacingLeft
	FacingRight
)

// Food is a single falling morsel.
type Food struct {
	X     float64
	Y     float64
	Speed float64
	Glyph rune
}

// Game holds the crab-catch playfield. Time advances only through Update,
// so the whole game can be driven deterministically.
type Game struct {
	Score  int
	Misses int
	Foods  []Food
	CrabX  int

	width    int
	height   int
	moveStep int
	elapsed  float64
	facing   Facing

	spawnTimer float64
	idleTimer  float64
	catchTimer float64
	rng        *rand.Rand
}

// New sets up a game sized to the given terminal bounds.
func New(width, height int, rng *rand.Rand) *Game {
	g := &Game{rng: rng}
	g.Resize(width, height)
	g.CrabX = (g.width - crabSpriteWidth) / 2
	g.resetSpawnTimer()
	return g
}

// Sprite returns the crab's current ASCII face.
func (g *Game) Sprite() string {
	happy := g.catchTimer > 0
	switch {
	case g.facing == FacingNeutral && !happy:
		return ">('_')<"
	case g.facing == FacingNeutral:
		return ">(^_^)<"
	case g.facing == FacingRight && !happy:
		return "(<'_')<"
	case g.facing == FacingRight:
		return "(<^_^)<"
	case !happy:
		return ">('_'>)"
	default:
		return ">(^_^>)"
	}
}

// Resize adapts the playfield to a new terminal size, keeping the crab in
// bounds.
func (g *Game) Resize(width, height int) {
	g.width = playfieldWidth(width)
	g.height = height
	g.moveStep = moveStep(g.width)
	g.CrabX = clampInt(g.CrabX, 0, g.width-crabSpriteWidth)
}

// Width returns the current playfield width.
func (g *Game) Width() int { return g.width }

// Remaining returns how much play time is left.
func (g *Game) Remaining() time.Duration {
	left := gameDuration - time.Duration(g.elapsed*float64(time.Second))
	if left < 0 {
		return 0
	}
	return left
}

// Finished reports whether the round is over.
func (g *Game) Finished() bool {
	return g.elapsed >= gameDuration.Seconds()
}

// Move shifts the crab one step; direction is -1 for left, +1 for right.
func (g *Game) Move(direction int) {
	maxX := g.width - crabSpriteWidth
	g.CrabX = clampInt(g.CrabX+direction*g.moveStep, 0, maxX)
	if direction > 0 {
		g.facing = FacingRight
	} else {
		g.facing = FacingLeft
	}
	g.idleTimer = 0
}

// Update advances food, spawning, catches and timers by dt seconds.
func (g *Game) Update(dt float64) {
	if g.width == 0 || g.height == 0 {
		return
	}
	g.elapsed += dt

	g.idleTimer += dt
	if g.idleTimer >= idleThreshold && g.facing != FacingNeutral {
		g.facing = FacingNeutral
	}
	if g.catchTimer > 0 {
		g.catchTimer = math.Max(g.catchTimer-dt, 0)
	}

	g.spawnTimer -= dt
	if g.spawnTimer <= 0 {
		g.spawnFood()
		g.resetSpawnTimer()
	}

	catchY := float64(g.height - 2)
	crabMin := g.CrabX
	crabMax := g.CrabX + crabSpriteWidth - 1

	kept := g.Foods[:0]
	for _, f := range g.Foods {
		f.Y += f.Speed * dt
		if f.Y < catchY {
			kept = append(kept, f)
			continue
		}
		foodX := int(math.Round(f.X))
		if foodX >= crabMin && foodX <= crabMax {
			g.Score++
			g.catchTimer = catchShowTime
		} else {
			g.Misses++
		}
	}
	g.Foods = kept
}

func (g *Game) spawnFood() {
	maxX := math.Max(float64(g.width)-1, 0)
	g.Foods = append(g.Foods, Food{
		X:     g.rng.Float64() * maxX,
		Y:     0,
		Speed: minFallSpeed + g.rng.Float64()*(maxFallSpeed-minFallSpeed),
		Glyph: foodGlyphs[g.rng.Intn(len(foodGlyphs))],
	})
}

func (g *Game) resetSpawnTimer() {
	g.spawnTimer = minSpawnSeconds + g.rng.Float64()*(maxSpawnSeconds-minSpawnSeconds)
}

func playfieldWidth(termWidth int) int {
	available := termWidth - 2
	if available < 8 {
		available = 8
	}
	if available > maxPlayfieldWidth {
		available = maxPlayfieldWidth
	}
	return available
}

// moveStep sizes the keyboard step so the crab crosses the playfield in
// about seven presses.
func moveStep(width int) int {
	travel := width - crabSpriteWidth
	if travel < 1 {
		travel = 1
	}
	step := int(math.Ceil(float64(travel) / 7.0))
	if step < 1 {
		step = 1
	}
	return step
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
