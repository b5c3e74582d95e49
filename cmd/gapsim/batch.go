package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/san-kum/gapsim/internal/automation"
	"github.com/san-kum/gapsim/internal/config"
	"github.com/san-kum/gapsim/internal/storage"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func runBatch(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	base, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	n, err := automation.RunScenario(ctx, scenario, batchExecutor(base), logger.Named("batch"))
	if err != nil {
		return err
	}
	logger.Info("scenario complete", zap.String("name", scenario.Name), zap.Int("steps", n))
	return nil
}

// batchExecutor runs each step against a copy of base with the step's
// preset playback applied.
func batchExecutor(base *config.Config) automation.Executor {
	return automation.ExecutorFunc(func(ctx context.Context, step automation.Step) error {
		cfg, err := stepConfig(base, step)
		if err != nil {
			return err
		}

		switch step.Kind {
		case automation.KindFrame:
			return exportFrames(cfg, frameJob{year: step.Year, all: step.All, svg: step.Output, html: step.HTML})
		case automation.KindRender:
			return renderGIF(cfg, gifJob{out: step.Output, samples: step.Samples, zoom: step.Zoom, save: true})
		case automation.KindNormalize:
			slices, report, err := loadSlices(cfg)
			if err != nil {
				return err
			}
			out := step.Output
			if out == "" {
				out = "-"
			}
			return storage.ExportJSON(out, cfg.Data.Path, slices, report)
		}
		return fmt.Errorf("unknown step kind %q", step.Kind)
	})
}

func stepConfig(base *config.Config, step automation.Step) (*config.Config, error) {
	cfg := *base
	if step.Preset != "" {
		p := config.GetPreset(step.Preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", step.Preset, config.ListPresets())
		}
		cfg.Playback = p.Playback
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
