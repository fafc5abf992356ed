package crab

import (
	"math"
	"math/rand"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Facing is the crab's horizontal orientation.
type Facing int

const (
	FacingLeft Facing = iota
	FacingRight
)

// Bounds is the world the crab moves in, in terminal cells.
type Bounds struct {
	Width  float64
	Height float64
}

// Physics and animation tuning.
const (
	frameInterval     = 0.3  // seconds of mood-time per animation frame
	excitedAnimSpeed  = 2.5  // tempo while celebrating or airborne
	celebrationTime   = 3.0  // seconds a celebration lasts
	gravity           = 0.1  // per-tick at the 60Hz reference rate
	groundFriction    = 0.92
	airFriction       = 0.98
	jumpCooldownTime  = 0.3
	minJumpStrength   = 0.7
	celebrationJump   = 2.2
	movingThreshold   = 0.05
	facingThreshold   = 0.1
	celebrationColor  = "#FF87FF"
)

func walkChance(m Mood) float64 {
	switch m {
	case MoodEcstatic:
		return 0.05
	case MoodHappy:
		return 0.03
	case MoodNeutral:
		return 0.02
	case MoodSad:
		return 0.01
	default:
		return 0.005
	}
}

func walkSpeed(m Mood) float64 {
	switch m {
	case MoodEcstatic:
		return 1.5
	case MoodHappy:
		return 1.0
	case MoodNeutral:
		return 0.5
	case MoodSad:
		return 0.3
	default:
		return 0.1
	}
}

func idleJumpChance(m Mood) float64 {
	switch m {
	case MoodEcstatic:
		return 0.015
	case MoodHappy:
		return 0.004
	case MoodNeutral:
		return 0.001
	default:
		return 0 // sad and hungry crabs don't jump
	}
}

func idleJumpStrength(m Mood) float64 {
	switch m {
	case MoodEcstatic:
		return 1.8
	case MoodHappy:
		return 1.5
	default:
		return 1.2
	}
}

func bodyColor(m Mood) string {
	switch m {
	case MoodEcstatic:
		return "#FF6464"
	case MoodHappy:
		return "#FF7850"
	case MoodNeutral:
		return "#DC6450"
	case MoodSad:
		return "#B45050"
	default:
		return "#963C3C"
	}
}

// Pose is the renderable output of one tick. X and Y are the top-left cell of
// the frame.
type Pose struct {
	Template TemplateID
	Eyes     string
	Mouth    string
	Color    string
	X        int
	Y        int
}

// Art renders the pose's template with its glyphs.
func (p Pose) Art() string {
	return Art(p.Template, p.Eyes, p.Mouth)
}

// Crab owns the 2D physics and animation state. It is mutated only by Update
// and the external triggers Celebrate, SetMovementFrozen, and the mood passed
// into each tick; it is never persisted.
type Crab struct {
	X, Y   float64
	VX, VY float64
	Facing Facing

	Grounded       bool
	Celebrating    bool
	MovementFrozen bool

	mood              Mood
	frameIndex        int
	animTimer         float64
	celebrationTimer  float64
	celebrationJumped bool
	jumpCooldown      float64

	rng *rand.Rand
}

// New creates a crab at the given position. The RNG is owned by the crab so
// callers can seed it for deterministic behavior.
func New(x, y float64, rng *rand.Rand) *Crab {
	c := &Crab{
		X:      x,
		Y:      y,
		Facing: FacingRight,
		rng:    rng,
	}
	if rng.Float64() < 0.5 {
		c.Facing = FacingLeft
	}
	return c
}

// Celebrate starts a timed celebration: ecstatic poses, faster animation, and
// a one-shot jump on the next grounded tick.
func (c *Crab) Celebrate() {
	c.Celebrating = true
	c.celebrationTimer = celebrationTime
	c.celebrationJumped = false
}

// SetMovementFrozen suspends locomotion without stopping the animation.
func (c *Crab) SetMovementFrozen(frozen bool) {
	c.MovementFrozen = frozen
}

// Update advances the state machine by one fixed time step. The mood is
// re-derived by the caller from current happiness so it is always fresh.
func (c *Crab) Update(dt float64, bounds Bounds, mood Mood) {
	c.mood = mood

	groundY := bounds.Height - FrameHeight - 1
	if groundY < 0 {
		groundY = 0
	}
	// A terminal resize moves the ground; keep grounded crabs on it.
	if c.Grounded && c.Y != groundY {
		c.Y = groundY
	}

	if c.Celebrating {
		c.celebrationTimer -= dt
		if c.celebrationTimer <= 0 {
			c.Celebrating = false
			c.celebrationJumped = false
		}
	}

	speed := mood.AnimationSpeed()
	if c.Celebrating || !c.Grounded {
		speed = excitedAnimSpeed
	}
	c.animTimer += dt * speed
	if c.animTimer >= frameInterval {
		c.animTimer = 0
		c.frameIndex = (c.frameIndex + 1) % 4
	}

	// The cooldown must keep ticking while frozen or it can get stuck.
	if c.jumpCooldown > 0 {
		c.jumpCooldown -= dt
	}

	if c.MovementFrozen {
		return
	}

	if c.Celebrating && !c.celebrationJumped && c.jump(celebrationJump) {
		c.celebrationJumped = true
	}

	if c.Grounded && !c.Celebrating {
		if chance := idleJumpChance(mood); chance > 0 && c.rng.Float64() < chance {
			c.jump(idleJumpStrength(mood))
		}
	}

	if c.Grounded && c.rng.Float64() < walkChance(mood) {
		base := walkSpeed(mood)
		c.VX = c.rng.Float64()*2*base - base
	}
	if c.VX > facingThreshold {
		c.Facing = FacingRight
	} else if c.VX < -facingThreshold {
		c.Facing = FacingLeft
	}

	if !c.Grounded {
		c.VY += gravity * dt * 60
	}
	if c.Grounded {
		c.VX *= groundFriction
	} else {
		c.VX *= airFriction
	}
	c.X += c.VX
	c.Y += c.VY

	// Collisions: ground, then ceiling, then walls.
	if c.Y >= groundY {
		c.Y = groundY
		c.VY = 0
		c.Grounded = true
	}
	if c.Y < 0 {
		c.Y = 0
		c.VY = 0
	}

	maxX := bounds.Width - FrameWidth
	if maxX < 0 {
		maxX = 0
	}
	if c.X < 0 {
		c.X = 0
		c.VX = math.Abs(c.VX)
		c.Facing = FacingRight
	} else if c.X > maxX {
		c.X = maxX
		c.VX = -math.Abs(c.VX)
		c.Facing = FacingLeft
	}
}

// jump is the single gate for all jump triggers: grounded, cooldown elapsed.
// Strength is randomized around the base and floored so even a weak roll
// visibly leaves the ground. Reports whether the jump fired.
func (c *Crab) jump(base float64) bool {
	if !c.Grounded || c.jumpCooldown > 0 {
		return false
	}
	strength := base * (0.6 + c.rng.Float64()*0.35)
	if strength < minJumpStrength {
		strength = minJumpStrength
	}
	c.VY = -strength
	c.Grounded = false
	c.jumpCooldown = jumpCooldownTime
	return true
}

// poseKey addresses one cell of the frame-selection table. Phase is
// frameIndex modulo 4; moods whose cadence repeats every 1 or 2 frames simply
// repeat cells.
type poseKey struct {
	mood   Mood
	moving bool
	phase  int
}

// poseEntry holds both facing variants of a pose plus its face glyphs.
type poseEntry struct {
	right, left TemplateID
	eyes        string
	mouth       string
}

var (
	standOpen = poseEntry{TplStandRight, TplStandLeft, EyesOpen, MouthFlat}
	walkOpen  = poseEntry{TplWalkRight, TplWalkLeft, EyesOpen, MouthFlat}
	standSad  = poseEntry{TplStandRight, TplStandLeft, EyesSad, MouthFrown}
	clap      = poseEntry{TplClapRight, TplClapLeft, EyesClap, MouthSmile}
	beg       = poseEntry{TplBegRight, TplBegLeft, EyesBeg, MouthWavy}
)

// poseTable enumerates every grounded, non-dancing pose. Dancing (airborne,
// celebrating, or ecstatic) is handled before the lookup. The walk cycle
// alternates stand and walk shells on even/odd phases; Happy claps once every
// four frames while idle; Hungry begs every other frame; Sad never moves its
// shell at all.
var poseTable = map[poseKey]poseEntry{
	{MoodHappy, true, 0}: standOpen,
	{MoodHappy, true, 1}: walkOpen,
	{MoodHappy, true, 2}: standOpen,
	{MoodHappy, true, 3}: walkOpen,

	{MoodHappy, false, 0}: clap,
	{MoodHappy, false, 1}: standOpen,
	{MoodHappy, false, 2}: standOpen,
	{MoodHappy, false, 3}: standOpen,

	{MoodNeutral, true, 0}: standOpen,
	{MoodNeutral, true, 1}: walkOpen,
	{MoodNeutral, true, 2}: standOpen,
	{MoodNeutral, true, 3}: walkOpen,

	{MoodNeutral, false, 0}: standOpen,
	{MoodNeutral, false, 1}: standOpen,
	{MoodNeutral, false, 2}: standOpen,
	{MoodNeutral, false, 3}: standOpen,

	{MoodSad, true, 0}: standSad,
	{MoodSad, true, 1}: standSad,
	{MoodSad, true, 2}: standSad,
	{MoodSad, true, 3}: standSad,

	{MoodSad, false, 0}: standSad,
	{MoodSad, false, 1}: standSad,
	{MoodSad, false, 2}: standSad,
	{MoodSad, false, 3}: standSad,

	{MoodHungry, true, 0}: beg,
	{MoodHungry, true, 1}: standSad,
	{MoodHungry, true, 2}: beg,
	{MoodHungry, true, 3}: standSad,

	{MoodHungry, false, 0}: beg,
	{MoodHungry, false, 1}: standSad,
	{MoodHungry, false, 2}: beg,
	{MoodHungry, false, 3}: standSad,
}

// Pose selects the current renderable pose. Pure: no state is mutated, so the
// renderer may call it any number of times per tick.
func (c *Crab) Pose() Pose {
	p := Pose{
		Color: c.color(),
		X:     int(c.X),
		Y:     int(c.Y),
	}

	// Airborne, celebrating, and ecstatic crabs always dance.
	if !c.Grounded || c.Celebrating || c.mood == MoodEcstatic {
		p.Template = TplDanceA
		if c.frameIndex%2 == 1 {
			p.Template = TplDanceB
		}
		p.Eyes, p.Mouth = EyesDance, MouthGrin
		return p
	}

	key := poseKey{
		mood:   c.mood,
		moving: math.Abs(c.VX) > movingThreshold,
		phase:  c.frameIndex % 4,
	}
	entry, ok := poseTable[key]
	if !ok {
		entry = standOpen
	}

	p.Template = entry.right
	if c.Facing == FacingLeft {
		p.Template = entry.left
	}
	p.Eyes, p.Mouth = entry.eyes, entry.mouth
	return p
}

// color fades the body tint toward the celebration magenta while a
// celebration runs, instead of the hard switch a plain table would give.
func (c *Crab) color() string {
	base := bodyColor(c.mood)
	if !c.Celebrating {
		return base
	}
	from, err := colorful.Hex(base)
	if err != nil {
		return celebrationColor
	}
	to, err := colorful.Hex(celebrationColor)
	if err != nil {
		return base
	}
	t := c.celebrationTimer / celebrationTime
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return from.BlendRgb(to, t).Hex()
}

// FrameIndex exposes the animation phase for display-only consumers.
func (c *Crab) FrameIndex() int {
	return c.frameIndex
}
