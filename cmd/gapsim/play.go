package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/gapsim/internal/annotation"
	"github.com/san-kum/gapsim/internal/config"
	"github.com/san-kum/gapsim/internal/dataset"
	"github.com/san-kum/gapsim/internal/gaperr"
	"github.com/san-kum/gapsim/internal/metrics"
	"github.com/san-kum/gapsim/internal/render"
	"github.com/san-kum/gapsim/internal/server"
	"github.com/san-kum/gapsim/internal/storage"
	"github.com/san-kum/gapsim/internal/viz"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const historyCapacity = 600

func runPlay(cmd *cobra.Command, args []string) error {
	if pick {
		name, err := pickPreset()
		if err != nil {
			return err
		}
		if name == "" {
			return nil
		}
		preset = name
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// the terminal belongs to the TUI; only errors reach stderr
	base := logger
	logger = logger.WithOptions(zap.IncreaseLevel(zapcore.ErrorLevel))
	defer func() { logger = base }()

	sess, err := newSession(cfg)
	if err != nil {
		return err
	}

	col := metrics.NewCollector(historyCapacity, metrics.Defaults()...)
	sess.sched.AddObserver(col)

	m, err := viz.NewModel(sess.sched, viz.Options{
		Interval:  cfg.Playback.Interval,
		Theme:     theme,
		Collector: col,
		Logger:    logger.Named("viz"),
	})
	if err != nil {
		return err
	}

	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}
	if vm, ok := final.(viz.Model); ok && vm.Err() != nil {
		return vm.Err()
	}
	return nil
}

func pickPreset() (string, error) {
	items := make([]viz.PickerItem, 0, len(config.Presets))
	for _, name := range config.ListPresets() {
		p := config.Presets[name]
		info := fmt.Sprintf("step %s · %s easing", p.Interval, p.Ease)
		if p.EnterFromOrigin {
			info += " · grow in"
		}
		items = append(items, viz.PickerItem{Name: name, Info: info})
	}

	final, err := tea.NewProgram(viz.NewPicker("GAPSIM PRESETS", items)).Run()
	if err != nil {
		return "", err
	}
	return final.(viz.Picker).Choice(), nil
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return renderGIF(cfg, gifJob{out: gifPath, samples: samples, zoom: zoom, save: !noSave})
}

type gifJob struct {
	out     string
	samples int
	zoom    float64
	save    bool
}

// renderGIF plays the whole dataset into a gif and, when asked, stores the
// per-frame statistics as a run record.
func renderGIF(cfg *config.Config, job gifJob) error {
	sess, err := newSession(cfg)
	if err != nil {
		return err
	}

	col := metrics.NewCollector(0, metrics.Defaults()...)
	sess.sched.AddObserver(col)

	out := job.out
	if out == "" {
		out = cfg.Output.GIF
	}
	if job.zoom <= 0 {
		job.zoom = 1
	}

	start := time.Now()
	rec := render.NewRecorder(render.NewRaster(sess.layout(), sess.scales, job.zoom))
	if err := render.Record(sess.sched, rec, render.RecordOptions{
		Interval: cfg.Playback.Interval,
		Samples:  job.samples,
		Logger:   logger.Named("render"),
	}); err != nil {
		return err
	}
	if dir := filepath.Dir(out); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	if err := rec.Save(out); err != nil {
		return fmt.Errorf("failed to write gif: %w", err)
	}
	logger.Info("gif written",
		zap.String("path", out),
		zap.Int("images", rec.Len()),
		zap.Duration("elapsed", time.Since(start)))

	if !job.save {
		fmt.Printf("wrote %s (%d images)\n", out, rec.Len())
		return nil
	}

	st := storage.New(cfg.Output.DataDir)
	if err := st.Init(); err != nil {
		return err
	}
	id, err := st.Save(storage.RunMetadata{
		Kind:       "render",
		DataPath:   cfg.Data.Path,
		Output:     out,
		Frames:     sess.sched.State().Total,
		StartYear:  cfg.Playback.StartYear,
		Interval:   cfg.Playback.Interval.String(),
		Transition: cfg.Playback.Transition.String(),
		Metrics:    col.Latest(),
	}, col)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	fmt.Printf("wrote %s (%d images), run %s\n", out, rec.Len(), id)
	return nil
}

func runFrame(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return exportFrames(cfg, frameJob{year: year, all: allYears, svg: svgOut, html: htmlOut})
}

type frameJob struct {
	year int
	all  bool
	svg  string
	html string
}

// exportFrames plays up to the requested year and writes its settled state
// as svg. With all set every year is written into the svg directory.
func exportFrames(cfg *config.Config, job frameJob) error {
	sess, err := newSession(cfg)
	if err != nil {
		return err
	}

	target := -1
	if !job.all {
		target, err = dataset.IndexOfYear(sess.slices, job.year)
		if err != nil {
			return err
		}
		if total := sess.sched.State().Total; target >= total {
			return fmt.Errorf("%w: year %d is frame %d of %d", gaperr.ErrFrameOutOfRange, job.year, target, total)
		}
	} else if err := os.MkdirAll(cfg.Output.SVGDir, 0755); err != nil {
		return err
	}

	chart := sess.chart()
	f, err := sess.sched.Start()
	if err != nil {
		return err
	}
	for {
		sess.scene.Advance(cfg.Playback.Transition)
		if job.all || f.Index == target {
			path := job.svg
			if job.all || path == "" {
				path = filepath.Join(cfg.Output.SVGDir, fmt.Sprintf("%d.svg", f.Year))
			}
			if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
				return err
			}
			svg := chart.Frame(f.Year, sess.scene.Glyphs())
			if err := os.WriteFile(path, []byte(svg), 0644); err != nil {
				return err
			}
			logger.Debug("frame written", zap.String("path", path), zap.Int("year", f.Year))

			if job.html != "" && !job.all {
				page := render.Page(render.PageOptions{
					Title:     fmt.Sprintf("Gapminder %d", f.Year),
					Chart:     svg,
					Legend:    render.Legend(sess.legend()),
					Narrative: render.Narrative(annotation.Narrative),
				})
				if err := os.WriteFile(job.html, []byte(page), 0644); err != nil {
					return err
				}
			}
			if !job.all {
				fmt.Println(path)
				return nil
			}
		}
		if f.Index == sess.sched.State().Total-1 {
			break
		}
		if f, err = sess.sched.Step(); err != nil {
			return err
		}
	}
	fmt.Printf("wrote %d frames to %s\n", sess.sched.State().Total, cfg.Output.SVGDir)
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("addr") {
		cfg.Output.Addr = addr
	}
	sess, err := newSession(cfg)
	if err != nil {
		return err
	}

	hub := server.NewHub(logger.Named("hub"), server.WithEase(cfg.Playback.Ease))
	sess.sched.AddObserver(hub)
	page := server.Page(sess.chart(), sess.scales.Color.Palette(), cfg.Playback.StartYear)
	srv := server.New(hub, page, logger.Named("server"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("serving on http://%s\n", cfg.Output.Addr)
	err = srv.ListenAndServe(ctx, cfg.Output.Addr, sess.sched, cfg.Playback.Interval)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func runNormalize(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	slices, report, err := loadSlices(cfg)
	if err != nil {
		return err
	}
	return storage.ExportJSON(outPath, cfg.Data.Path, slices, report)
}
