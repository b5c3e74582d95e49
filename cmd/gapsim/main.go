package main

import (
	"fmt"
	"os"
	"time"

	"github.com/san-kum/gapsim/internal/config"
	"github.com/san-kum/gapsim/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configFile string
	dataPath   string
	dataDir    string
	preset     string
	logLevel   string
	logJSON    bool

	interval   time.Duration
	transition time.Duration
	frames     int
	startYear  int
	ease       string
	grow       bool

	theme    string
	pick     bool
	gifPath  string
	samples  int
	zoom     float64
	noSave   bool
	year     int
	svgOut   string
	htmlOut  string
	allYears bool
	addr     string
	outPath  string
	metric   string
	pngOut   string
)

var logger = zap.NewNop()

// main registers the gapsim commands and exits with status 1 when the
// selected command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:           "gapsim",
		Short:         "animated wealth and health of nations",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, asJSON := logSettings(cmd)
			l, err := logging.New(level, asJSON)
			if err != nil {
				return err
			}
			logger = l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&dataPath, "data", config.DefaultDataPath, "dataset path (json)")
	pf.StringVar(&dataDir, "data-dir", config.DefaultDataDir, "run record directory")
	pf.StringVar(&preset, "preset", "", "playback preset")
	pf.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	pf.BoolVar(&logJSON, "log-json", false, "log as json")

	playCmd := &cobra.Command{
		Use:   "play",
		Short: "play the chart in the terminal",
		RunE:  runPlay,
	}
	playbackFlags(playCmd)
	playCmd.Flags().StringVar(&theme, "theme", "paper", "color theme")
	playCmd.Flags().BoolVar(&pick, "pick", false, "choose a preset before playing")

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "render the animation to a gif",
		RunE:  runRender,
	}
	playbackFlags(renderCmd)
	renderCmd.Flags().StringVarP(&gifPath, "out", "o", "", "gif output path")
	renderCmd.Flags().IntVar(&samples, "samples", 1, "images per playback step")
	renderCmd.Flags().Float64Var(&zoom, "zoom", 1, "canvas scale factor")
	renderCmd.Flags().BoolVar(&noSave, "no-save", false, "do not save a run record")

	frameCmd := &cobra.Command{
		Use:   "frame",
		Short: "export one year as svg",
		RunE:  runFrame,
	}
	playbackFlags(frameCmd)
	frameCmd.Flags().IntVar(&year, "year", config.DefaultStartYear, "year to export")
	frameCmd.Flags().StringVarP(&svgOut, "out", "o", "", "svg output path (default <svg_dir>/<year>.svg)")
	frameCmd.Flags().StringVar(&htmlOut, "html", "", "also write a standalone html page")
	frameCmd.Flags().BoolVar(&allYears, "all", false, "export every year into the svg directory")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "stream the chart to browsers",
		RunE:  runServe,
	}
	playbackFlags(serveCmd)
	serveCmd.Flags().StringVar(&addr, "addr", "", "listen address")

	normalizeCmd := &cobra.Command{
		Use:   "normalize",
		Short: "write the normalized dataset as json",
		RunE:  runNormalize,
	}
	normalizeCmd.Flags().StringVarP(&outPath, "out", "o", "-", "output path, - for stdout")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "plot a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}
	showCmd.Flags().StringVar(&metric, "metric", "", "only plot this column")
	showCmd.Flags().StringVar(&pngOut, "png", "", "write the plot as png")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list playback presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				p := config.Presets[name]
				fmt.Printf("  %-8s interval=%s transition=%s ease=%s grow=%t\n",
					name, p.Interval, p.Transition, p.Ease, p.EnterFromOrigin)
			}
			return nil
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "print the effective configuration",
		RunE:  showConfig,
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the default configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(args[0]); err == nil {
				return fmt.Errorf("%s already exists", args[0])
			}
			return config.Save(args[0], config.DefaultConfig())
		},
	}
	configCmd.AddCommand(configInitCmd)

	batchCmd := &cobra.Command{
		Use:   "batch [scenario.yaml]",
		Short: "run a scripted list of exports",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}

	rootCmd.AddCommand(playCmd, renderCmd, frameCmd, serveCmd, normalizeCmd, listCmd, showCmd, presetsCmd, configCmd, batchCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func playbackFlags(cmd *cobra.Command) {
	cmd.Flags().DurationVar(&interval, "interval", config.DefaultInterval, "time between steps")
	cmd.Flags().DurationVar(&transition, "transition", config.DefaultTransition, "glyph transition duration")
	cmd.Flags().IntVar(&frames, "frames", config.DefaultFrames, "frames before wrapping, 0 for every year")
	cmd.Flags().IntVar(&startYear, "start-year", config.DefaultStartYear, "label of the first frame")
	cmd.Flags().StringVar(&ease, "ease", "linear", "transition easing (linear, cubic)")
	cmd.Flags().BoolVar(&grow, "grow", false, "new glyphs grow from the origin")
}

// logSettings resolves the log level and format before the full config is
// loaded: flags win over the environment, which wins over the config file.
func logSettings(cmd *cobra.Command) (string, bool) {
	level, asJSON := logLevel, logJSON
	if configFile != "" {
		if cfg, err := config.Load(configFile); err == nil {
			level, asJSON = cfg.Log.Level, cfg.Log.JSON
		}
	}
	if v := os.Getenv("GAPSIM_LOG_LEVEL"); v != "" {
		level = v
	}
	if v := os.Getenv("GAPSIM_LOG_JSON"); v != "" {
		asJSON = v == "true" || v == "1"
	}
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		level = logLevel
	}
	if flags.Changed("log-json") {
		asJSON = logJSON
	}
	return level, asJSON
}

// loadConfig layers defaults, config file, environment and flags, in that
// order, and validates the result. A --preset replaces the playback section
// on top of the config file; environment and flags still override it.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		fileCfg, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		if preset != "" {
			fileCfg.Playback = cfg.Playback
		}
		cfg = fileCfg
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("data") {
		cfg.Data.Path = dataPath
	}
	if flags.Changed("data-dir") {
		cfg.Output.DataDir = dataDir
	}
	if flags.Changed("interval") {
		cfg.Playback.Interval = interval
	}
	if flags.Changed("transition") {
		cfg.Playback.Transition = transition
	}
	if flags.Changed("frames") {
		cfg.Playback.Frames = frames
	}
	if flags.Changed("start-year") {
		cfg.Playback.StartYear = startYear
	}
	if flags.Changed("ease") {
		cfg.Playback.Ease = ease
	}
	if flags.Changed("grow") {
		cfg.Playback.EnterFromOrigin = grow
	}
	if flags.Changed("log-json") {
		cfg.Log.JSON = logJSON
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
