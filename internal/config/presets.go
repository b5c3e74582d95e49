package config

import (
	"sort"
	"time"

	"github.com/san-kum/gapsim/internal/scene"
)

// Eases maps configuration names to easing functions.
var Eases = map[string]scene.Ease{
	"linear": scene.EaseLinear,
	"cubic":  scene.EaseCubicInOut,
}

var Presets = map[string]PlaybackConfig{
	"classic": {
		Interval: 100 * time.Millisecond, Transition: 100 * time.Millisecond,
		StartYear: DefaultStartYear, Frames: DefaultFrames, Ease: "linear",
	},
	"slow": {
		Interval: 400 * time.Millisecond, Transition: 400 * time.Millisecond,
		StartYear: DefaultStartYear, Frames: DefaultFrames, Ease: "linear",
	},
	"fast": {
		Interval: 50 * time.Millisecond, Transition: 50 * time.Millisecond,
		StartYear: DefaultStartYear, Frames: DefaultFrames, Ease: "linear",
	},
	"grow": {
		Interval: 100 * time.Millisecond, Transition: 100 * time.Millisecond,
		StartYear: DefaultStartYear, Frames: DefaultFrames, Ease: "cubic", EnterFromOrigin: true,
	},
}

// GetPreset returns the default config with the named playback preset, or
// nil when no such preset exists.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Playback = p
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
