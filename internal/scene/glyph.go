package scene

import (
	"math"
	"time"
)

// Attrs are a circle's visual attributes in plot coordinates.
type Attrs struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	R float64 `json:"r"`
}

// OffCanvas is where a coordinate with no finite position is drawn: far
// outside the plot on the low side of its axis.
const OffCanvas = -10000

// Finite replaces non-finite coordinates with OffCanvas and a non-finite or
// negative radius with zero. Log scales map zero or negative wealth to -Inf
// or NaN. ok is false when anything was replaced.
func Finite(a Attrs) (Attrs, bool) {
	ok := true
	if math.IsNaN(a.X) || math.IsInf(a.X, 0) {
		a.X, ok = OffCanvas, false
	}
	if math.IsNaN(a.Y) || math.IsInf(a.Y, 0) {
		a.Y, ok = OffCanvas, false
	}
	if math.IsNaN(a.R) || math.IsInf(a.R, 0) || a.R < 0 {
		a.R, ok = 0, false
	}
	return a, ok
}

// Lerp interpolates linearly between a and b.
func Lerp(a, b Attrs, t float64) Attrs {
	return Attrs{
		X: a.X + (b.X-a.X)*t,
		Y: a.Y + (b.Y-a.Y)*t,
		R: a.R + (b.R-a.R)*t,
	}
}

// Ease maps linear progress in [0, 1] to eased progress.
type Ease func(t float64) float64

// EaseLinear is the identity easing.
func EaseLinear(t float64) float64 { return t }

// EaseCubicInOut accelerates then decelerates.
func EaseCubicInOut(t float64) float64 {
	t *= 2
	if t <= 1 {
		return t * t * t / 2
	}
	t -= 2
	return (t*t*t + 2) / 2
}

// Glyph is the circle bound to one identity for as long as the identity
// stays in the scene.
type Glyph struct {
	ID       string
	Category string
	Fill     string

	from     Attrs
	to       Attrs
	elapsed  time.Duration
	duration time.Duration
	ease     Ease
}

// Current returns the attributes as rendered now.
func (g *Glyph) Current() Attrs {
	if g.Settled() {
		return g.to
	}
	t := float64(g.elapsed) / float64(g.duration)
	return Lerp(g.from, g.to, g.ease(t))
}

// Target returns the attributes the glyph is moving towards.
func (g *Glyph) Target() Attrs { return g.to }

// Settled reports whether the glyph has reached its target.
func (g *Glyph) Settled() bool {
	return g.duration <= 0 || g.elapsed >= g.duration
}

// retarget starts a new transition from the current rendered value.
func (g *Glyph) retarget(to Attrs, d time.Duration, ease Ease) {
	g.from = g.Current()
	g.to = to
	g.elapsed = 0
	g.duration = d
	g.ease = ease
}

func (g *Glyph) advance(dt time.Duration) {
	if g.Settled() {
		return
	}
	g.elapsed += dt
	if g.elapsed > g.duration {
		g.elapsed = g.duration
	}
}
