package playback

import (
	"context"
	"time"

	"github.com/san-kum/gapsim/internal/dataset"
	"github.com/san-kum/gapsim/internal/gaperr"
	"github.com/san-kum/gapsim/internal/scene"
	"go.uber.org/zap"
)

const (
	DefaultInterval  = 100 * time.Millisecond
	DefaultStartYear = 1800
)

type Phase int

const (
	Idle Phase = iota
	Running
)

func (p Phase) String() string {
	if p == Running {
		return "running"
	}
	return "idle"
}

// State is the playback position. Frame is always in [0, Total).
type State struct {
	Frame int
	Total int
}

// Frame is what one step dispatched.
type Frame struct {
	Index int
	Year  int
	Slice dataset.Slice
	Plan  scene.Plan
}

// Observer is notified after every dispatched frame.
type Observer interface {
	OnFrame(f Frame)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(f Frame)

func (fn ObserverFunc) OnFrame(f Frame) { fn(f) }

type Option func(*Scheduler)

// WithStartYear sets the year label of frame zero.
func WithStartYear(year int) Option {
	return func(s *Scheduler) { s.startYear = year }
}

// WithMaxFrames caps the number of frames played. Zero plays every slice.
func WithMaxFrames(n int) Option {
	return func(s *Scheduler) { s.maxFrames = n }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Scheduler) {
		if l != nil {
			s.logger = l
		}
	}
}

type Scheduler struct {
	slices    []dataset.Slice
	rec       *scene.Reconciler
	state     State
	phase     Phase
	startYear int
	maxFrames int
	observers []Observer
	logger    *zap.Logger
}

func New(slices []dataset.Slice, rec *scene.Reconciler, opts ...Option) *Scheduler {
	s := &Scheduler{
		slices:    slices,
		rec:       rec,
		startYear: DefaultStartYear,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	total := len(slices)
	if s.maxFrames > 0 && s.maxFrames < total {
		total = s.maxFrames
	}
	s.state = State{Frame: 0, Total: total}
	return s
}

func (s *Scheduler) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Scheduler) State() State { return s.state }
func (s *Scheduler) Phase() Phase { return s.phase }

// Year is the label of the current frame.
func (s *Scheduler) Year() int { return s.startYear + s.state.Frame }

// Reconciler returns the scene the scheduler feeds.
func (s *Scheduler) Reconciler() *scene.Reconciler { return s.rec }

// Start moves from Idle to Running and renders frame zero. Calling Start on
// a running scheduler does nothing.
func (s *Scheduler) Start() (Frame, error) {
	if s.phase == Running {
		return Frame{}, nil
	}
	if s.state.Total == 0 {
		return Frame{}, gaperr.ErrNoData
	}
	s.phase = Running
	s.state.Frame = 0
	s.logger.Info("playback started",
		zap.Int("frames", s.state.Total),
		zap.Int("start_year", s.startYear))
	return s.dispatch(), nil
}

// Step advances one frame, wrapping to zero after the last valid index, and
// dispatches the new slice.
func (s *Scheduler) Step() (Frame, error) {
	if s.phase != Running {
		return Frame{}, gaperr.ErrNotRunning
	}
	if s.state.Frame < s.state.Total-1 {
		s.state.Frame++
	} else {
		s.state.Frame = 0
		s.logger.Debug("playback wrapped", zap.Int("frames", s.state.Total))
	}
	return s.dispatch(), nil
}

func (s *Scheduler) dispatch() Frame {
	slice := s.slices[s.state.Frame]
	f := Frame{
		Index: s.state.Frame,
		Year:  s.Year(),
		Slice: slice,
		Plan:  s.rec.Reconcile(slice),
	}
	for _, o := range s.observers {
		o.OnFrame(f)
	}
	return f
}

// Run starts playback if needed and steps once per received tick until ctx
// is done. Ticks are handled one at a time.
func (s *Scheduler) Run(ctx context.Context, ticks <-chan time.Time) error {
	if _, err := s.Start(); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("playback stopped", zap.Int("frame", s.state.Frame))
			return ctx.Err()
		case _, ok := <-ticks:
			if !ok {
				return nil
			}
			if _, err := s.Step(); err != nil {
				return &gaperr.FrameError{Frame: s.state.Frame, Year: s.Year(), Wrapped: err}
			}
		}
	}
}
