package main

import (
	"fmt"

	"github.com/san-kum/gapsim/internal/annotation"
	"github.com/san-kum/gapsim/internal/config"
	"github.com/san-kum/gapsim/internal/dataset"
	"github.com/san-kum/gapsim/internal/playback"
	"github.com/san-kum/gapsim/internal/render"
	"github.com/san-kum/gapsim/internal/scale"
	"github.com/san-kum/gapsim/internal/scene"
	"go.uber.org/zap"
)

// session is everything a command needs to play the dataset.
type session struct {
	cfg    *config.Config
	slices []dataset.Slice
	report dataset.Report
	scales *scale.Registry
	scene  *scene.Reconciler
	sched  *playback.Scheduler
}

// loadSlices reads and normalizes the configured dataset.
func loadSlices(cfg *config.Config) ([]dataset.Slice, dataset.Report, error) {
	raw, err := dataset.Load(cfg.Data.Path)
	if err != nil {
		logger.Error("failed to load dataset", zap.String("path", cfg.Data.Path), zap.Error(err))
		return nil, dataset.Report{}, err
	}

	slices, report := dataset.NewNormalizer(cfg.Data.Fields).Normalize(raw)
	logger.Info("dataset loaded",
		zap.String("path", cfg.Data.Path),
		zap.Int("years", len(slices)),
		zap.Int("kept", report.Kept()),
		zap.Int("dropped", report.Dropped()),
		zap.Any("drop_reasons", report.Reasons()))
	if empty := report.EmptyYears(); len(empty) > 0 {
		logger.Warn("years without complete records", zap.Ints("indices", empty))
	}
	return slices, report, nil
}

func newSession(cfg *config.Config) (*session, error) {
	slices, report, err := loadSlices(cfg)
	if err != nil {
		return nil, err
	}

	easeFn, ok := config.Eases[cfg.Playback.Ease]
	if !ok {
		return nil, fmt.Errorf("unknown ease %q", cfg.Playback.Ease)
	}

	scales := scale.NewRegistry(cfg.ScaleParams(annotation.Categories))
	if cats := categories(slices); scales.Color.Wraps(cats...) {
		logger.Warn("more categories than palette colors; some will share a color",
			zap.Int("palette", scales.Color.Capacity()),
			zap.Strings("categories", cats))
	}
	rec := scene.NewReconciler(scales,
		scene.WithTransition(cfg.Playback.Transition),
		scene.WithEase(easeFn),
		scene.WithEnterFromOrigin(cfg.Playback.EnterFromOrigin),
		scene.WithLogger(logger.Named("scene")))
	sched := playback.New(slices, rec,
		playback.WithStartYear(cfg.Playback.StartYear),
		playback.WithMaxFrames(cfg.Playback.Frames),
		playback.WithLogger(logger.Named("playback")))

	return &session{
		cfg:    cfg,
		slices: slices,
		report: report,
		scales: scales,
		scene:  rec,
		sched:  sched,
	}, nil
}

// categories lists the distinct category names in first-seen order.
func categories(slices []dataset.Slice) []string {
	seen := make(map[string]bool)
	var out []string
	for _, sl := range slices {
		for _, r := range sl.Records {
			if !seen[r.Category] {
				seen[r.Category] = true
				out = append(out, r.Category)
			}
		}
	}
	return out
}

func (s *session) layout() render.Layout {
	c := s.cfg.Chart
	return render.Layout{
		PlotWidth:  c.PlotWidth,
		PlotHeight: c.PlotHeight,
		Margin: render.Margin{
			Top:    c.Margin.Top,
			Right:  c.Margin.Right,
			Bottom: c.Margin.Bottom,
			Left:   c.Margin.Left,
		},
	}
}

func (s *session) chart() *render.Chart {
	return render.NewChart(s.layout(), s.scales)
}

func (s *session) legend() []annotation.LegendEntry {
	return annotation.Legend(s.scales.Color.Palette())
}
