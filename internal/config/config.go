package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/san-kum/gapsim/internal/dataset"
	"github.com/san-kum/gapsim/internal/gaperr"
	"github.com/san-kum/gapsim/internal/scale"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPlotWidth  = 690.0
	DefaultPlotHeight = 390.0
	DefaultInterval   = 100 * time.Millisecond
	DefaultTransition = 100 * time.Millisecond
	DefaultStartYear  = 1800
	DefaultFrames     = 215
	DefaultDataPath   = "data/data.json"
	DefaultDataDir    = ".gapsim"
)

type Config struct {
	Data     DataConfig     `yaml:"data"`
	Chart    ChartConfig    `yaml:"chart"`
	Scales   ScalesConfig   `yaml:"scales"`
	Playback PlaybackConfig `yaml:"playback"`
	Output   OutputConfig   `yaml:"output"`
	Log      LogConfig      `yaml:"log"`
}

type DataConfig struct {
	Path   string         `yaml:"path" env:"GAPSIM_DATA"`
	Fields dataset.Fields `yaml:"fields"`
}

type Margin struct {
	Left   float64 `yaml:"left"`
	Right  float64 `yaml:"right"`
	Top    float64 `yaml:"top"`
	Bottom float64 `yaml:"bottom"`
}

type ChartConfig struct {
	PlotWidth  float64 `yaml:"plot_width"`
	PlotHeight float64 `yaml:"plot_height"`
	Margin     Margin  `yaml:"margin"`
}

// Width is the full canvas width including margins.
func (c ChartConfig) Width() float64 { return c.PlotWidth + c.Margin.Left + c.Margin.Right }

// Height is the full canvas height including margins.
func (c ChartConfig) Height() float64 { return c.PlotHeight + c.Margin.Top + c.Margin.Bottom }

type ScalesConfig struct {
	Wealth     scale.Bounds `yaml:"wealth"`
	Longevity  scale.Bounds `yaml:"longevity"`
	Population scale.Bounds `yaml:"population"`
	Area       scale.Bounds `yaml:"area"`
	Palette    []string     `yaml:"palette"`
}

type PlaybackConfig struct {
	Interval        time.Duration `yaml:"interval" env:"GAPSIM_INTERVAL"`
	Transition      time.Duration `yaml:"transition" env:"GAPSIM_TRANSITION"`
	StartYear       int           `yaml:"start_year" env:"GAPSIM_START_YEAR"`
	Frames          int           `yaml:"frames" env:"GAPSIM_FRAMES"`
	EnterFromOrigin bool          `yaml:"enter_from_origin"`
	Ease            string        `yaml:"ease"`
}

type OutputConfig struct {
	DataDir string `yaml:"data_dir" env:"GAPSIM_DATA_DIR"`
	GIF     string `yaml:"gif"`
	SVGDir  string `yaml:"svg_dir"`
	Addr    string `yaml:"addr" env:"GAPSIM_ADDR"`
}

type LogConfig struct {
	Level string `yaml:"level" env:"GAPSIM_LOG_LEVEL"`
	JSON  bool   `yaml:"json" env:"GAPSIM_LOG_JSON"`
}

func DefaultConfig() *Config {
	p := scale.DefaultParams()
	return &Config{
		Data: DataConfig{
			Path:   DefaultDataPath,
			Fields: dataset.DefaultFields(),
		},
		Chart: ChartConfig{
			PlotWidth:  DefaultPlotWidth,
			PlotHeight: DefaultPlotHeight,
			Margin:     Margin{Left: 100, Right: 10, Top: 10, Bottom: 100},
		},
		Scales: ScalesConfig{
			Wealth:     p.Wealth,
			Longevity:  p.Longevity,
			Population: p.Population,
			Area:       p.Area,
			Palette:    append([]string(nil), p.Palette...),
		},
		Playback: PlaybackConfig{
			Interval:   DefaultInterval,
			Transition: DefaultTransition,
			StartYear:  DefaultStartYear,
			Frames:     DefaultFrames,
			Ease:       "linear",
		},
		Output: OutputConfig{
			DataDir: DefaultDataDir,
			GIF:     "gapminder.gif",
			SVGDir:  "frames",
			Addr:    "127.0.0.1:8080",
		},
		Log: LogConfig{Level: "info"},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ApplyEnv overrides fields tagged with env from the process environment.
func (c *Config) ApplyEnv() error {
	return env.Parse(c)
}

func (c *Config) Validate() error {
	switch {
	case c.Chart.PlotWidth <= 0 || c.Chart.PlotHeight <= 0:
		return fmt.Errorf("%w: plot size %.0fx%.0f", gaperr.ErrInvalidConfig, c.Chart.PlotWidth, c.Chart.PlotHeight)
	case c.Playback.Interval <= 0:
		return fmt.Errorf("%w: interval must be positive, got %s", gaperr.ErrInvalidConfig, c.Playback.Interval)
	case c.Playback.Transition < 0:
		return fmt.Errorf("%w: transition must not be negative, got %s", gaperr.ErrInvalidConfig, c.Playback.Transition)
	case c.Playback.Frames < 0:
		return fmt.Errorf("%w: frames must not be negative, got %d", gaperr.ErrInvalidConfig, c.Playback.Frames)
	case c.Scales.Wealth.Min <= 0 || c.Scales.Wealth.Max <= 0:
		return fmt.Errorf("%w: wealth domain must be positive for a log scale", gaperr.ErrInvalidConfig)
	case c.Scales.Wealth.Span() == 0 || c.Scales.Longevity.Span() == 0 || c.Scales.Population.Span() == 0:
		return fmt.Errorf("%w: empty scale domain", gaperr.ErrInvalidConfig)
	case len(c.Scales.Palette) == 0:
		return fmt.Errorf("%w: empty palette", gaperr.ErrInvalidConfig)
	}
	if _, ok := Eases[c.Playback.Ease]; !ok {
		return fmt.Errorf("%w: unknown ease %q", gaperr.ErrInvalidConfig, c.Playback.Ease)
	}
	return nil
}

// ScaleParams calibrates the scale registry from the chart and scale sections.
func (c *Config) ScaleParams(categories []string) scale.Params {
	return scale.Params{
		PlotWidth:  c.Chart.PlotWidth,
		PlotHeight: c.Chart.PlotHeight,
		Wealth:     c.Scales.Wealth,
		Longevity:  c.Scales.Longevity,
		Population: c.Scales.Population,
		Area:       c.Scales.Area,
		Palette:    c.Scales.Palette,
		Categories: categories,
	}
}
