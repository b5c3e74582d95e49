package render

import (
	"image"
	"image/gif"
	"io"
	"os"
	"time"

	"github.com/san-kum/gapsim/internal/playback"
	"github.com/san-kum/gapsim/internal/scene"
	"go.uber.org/zap"
)

// Recorder accumulates rasterized frames for an animated GIF.
type Recorder struct {
	raster *Raster
	frames []*image.Paletted
	delays []int
}

func NewRecorder(r *Raster) *Recorder {
	return &Recorder{raster: r}
}

// Capture rasterizes one instant shown for delay.
func (rec *Recorder) Capture(year int, glyphs []scene.Snapshot, delay time.Duration) {
	rec.frames = append(rec.frames, rec.raster.Frame(year, glyphs))
	cs := int(delay / (10 * time.Millisecond))
	if cs < 1 {
		cs = 1
	}
	rec.delays = append(rec.delays, cs)
}

func (rec *Recorder) Len() int { return len(rec.frames) }

// Encode writes a looping animation.
func (rec *Recorder) Encode(w io.Writer) error {
	anim := gif.GIF{LoopCount: 0}
	for i, frame := range rec.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, rec.delays[i])
	}
	return gif.EncodeAll(w, &anim)
}

// Save encodes the animation to path.
func (rec *Recorder) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return rec.Encode(f)
}

// RecordOptions control how playback is sampled into frames.
type RecordOptions struct {
	// Interval is the wall time between two playback steps.
	Interval time.Duration
	// Samples is the number of captured images per step; values below one
	// mean one.
	Samples int
	Logger  *zap.Logger
}

// Record plays every frame of s once on a synthetic clock and captures
// Samples images per step, advancing interpolation between captures.
func Record(s *playback.Scheduler, rec *Recorder, opts RecordOptions) error {
	if opts.Samples < 1 {
		opts.Samples = 1
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	delay := opts.Interval / time.Duration(opts.Samples)

	f, err := s.Start()
	if err != nil {
		return err
	}
	scn := s.Reconciler()
	total := s.State().Total
	for i := 0; i < total; i++ {
		if i > 0 {
			if f, err = s.Step(); err != nil {
				return err
			}
		}
		for k := 0; k < opts.Samples; k++ {
			scn.Advance(delay)
			rec.Capture(f.Year, scn.Glyphs(), delay)
		}
	}

	opts.Logger.Debug("recorded animation",
		zap.Int("steps", total),
		zap.Int("images", rec.Len()))
	return nil
}
