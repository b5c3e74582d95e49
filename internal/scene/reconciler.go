package scene

import (
	"sort"
	"time"

	"github.com/san-kum/gapsim/internal/dataset"
	"github.com/san-kum/gapsim/internal/scale"
	"go.uber.org/zap"
)

// DefaultTransition matches the default playback period so consecutive
// transitions neither overlap nor stall.
const DefaultTransition = 100 * time.Millisecond

// Change describes one glyph in a plan.
type Change struct {
	ID   string `json:"id"`
	Fill string `json:"fill"`
	From Attrs  `json:"from"`
	To   Attrs  `json:"to"`
}

// Plan is the outcome of one reconciliation pass, in the order it was
// applied: removals, then creations, then updates.
type Plan struct {
	Remove []string `json:"remove"`
	Create []Change `json:"create"`
	Update []Change `json:"update"`

	Transition time.Duration `json:"-"`
}

// Snapshot is a glyph as rendered at one instant.
type Snapshot struct {
	ID       string
	Category string
	Fill     string
	Attrs
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithTransition sets how long updates take to reach their target.
func WithTransition(d time.Duration) Option {
	return func(r *Reconciler) { r.transition = d }
}

// WithEase sets the easing applied to every transition.
func WithEase(e Ease) Option {
	return func(r *Reconciler) {
		if e != nil {
			r.ease = e
		}
	}
}

// WithEnterFromOrigin makes new glyphs grow from the plot origin with zero
// radius instead of appearing at their target.
func WithEnterFromOrigin(on bool) Option {
	return func(r *Reconciler) { r.enterFromOrigin = on }
}

// WithLogger attaches a logger.
func WithLogger(l *zap.Logger) Option {
	return func(r *Reconciler) {
		if l != nil {
			r.logger = l
		}
	}
}

// Reconciler owns the live glyph set: the single source of truth for what
// is on screen.
type Reconciler struct {
	scales          *scale.Registry
	live            map[string]*Glyph
	transition      time.Duration
	ease            Ease
	enterFromOrigin bool
	logger          *zap.Logger
}

func NewReconciler(scales *scale.Registry, opts ...Option) *Reconciler {
	r := &Reconciler{
		scales:     scales,
		live:       make(map[string]*Glyph),
		transition: DefaultTransition,
		ease:       EaseLinear,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Reconcile brings the live set in line with slice and returns what changed.
func (r *Reconciler) Reconcile(slice dataset.Slice) Plan {
	part := Diff(r.live, slice.Records)
	if len(part.Duplicates) > 0 {
		r.logger.Debug("duplicate identities in slice",
			zap.Int("year", slice.Year),
			zap.Strings("ids", part.Duplicates))
	}

	if part.Empty() {
		r.logger.Debug("slice changes nothing", zap.Int("year", slice.Year))
	}

	plan := Plan{
		Remove:     part.Remove,
		Create:     make([]Change, 0, len(part.Create)),
		Update:     make([]Change, 0, len(part.Update)),
		Transition: r.transition,
	}

	for _, id := range part.Remove {
		delete(r.live, id)
	}

	for _, rec := range part.Create {
		g := &Glyph{
			ID:       rec.ID,
			Category: rec.Category,
			Fill:     r.scales.Color.Color(rec.Category),
		}
		target := r.project(rec)
		if r.enterFromOrigin {
			g.to = Attrs{X: 0, Y: 0, R: 0}
			g.retarget(target, r.transition, r.ease)
		} else {
			g.from, g.to = target, target
		}
		r.live[rec.ID] = g
		plan.Create = append(plan.Create, Change{ID: g.ID, Fill: g.Fill, From: g.from, To: g.to})
	}

	for _, rec := range part.Update {
		g := r.live[rec.ID]
		g.retarget(r.project(rec), r.transition, r.ease)
		plan.Update = append(plan.Update, Change{ID: g.ID, Fill: g.Fill, From: g.from, To: g.to})
	}

	return plan
}

// Advance moves every in-flight transition forward by dt.
func (r *Reconciler) Advance(dt time.Duration) {
	for _, g := range r.live {
		g.advance(dt)
	}
}

// Settled reports whether no transition is in flight.
func (r *Reconciler) Settled() bool {
	for _, g := range r.live {
		if !g.Settled() {
			return false
		}
	}
	return true
}

// Glyph returns the live glyph for id.
func (r *Reconciler) Glyph(id string) (*Glyph, bool) {
	g, ok := r.live[id]
	return g, ok
}

func (r *Reconciler) Len() int { return len(r.live) }

// Glyphs returns the rendered attributes of every live glyph, sorted by id.
func (r *Reconciler) Glyphs() []Snapshot {
	out := make([]Snapshot, 0, len(r.live))
	for _, g := range r.live {
		out = append(out, Snapshot{ID: g.ID, Category: g.Category, Fill: g.Fill, Attrs: g.Current()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Scales returns the registry glyphs are projected with.
func (r *Reconciler) Scales() *scale.Registry { return r.scales }

func (r *Reconciler) project(rec dataset.Record) Attrs {
	x, y, radius := r.scales.Project(rec.Wealth, rec.Longevity, rec.Population)
	a, ok := Finite(Attrs{X: x, Y: y, R: radius})
	if !ok {
		r.logger.Debug("glyph moved off canvas",
			zap.String("id", rec.ID),
			zap.Float64("wealth", rec.Wealth),
			zap.Float64("population", rec.Population))
	}
	return a
}
