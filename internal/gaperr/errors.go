// Package gaperr holds the domain errors shared by the playback core.
package gaperr

import (
	"errors"
	"fmt"
)

var (
	// ErrNoData indicates playback was requested without any normalized slices.
	ErrNoData = errors.New("gapsim: no data loaded")

	// ErrFrameOutOfRange indicates a frame index outside [0, total).
	ErrFrameOutOfRange = errors.New("gapsim: frame index out of range")

	// ErrInvalidConfig indicates a configuration value that cannot drive a chart.
	ErrInvalidConfig = errors.New("gapsim: invalid configuration")

	// ErrDecode indicates the input document could not be parsed.
	ErrDecode = errors.New("gapsim: cannot decode dataset")

	// ErrNotRunning indicates a step was requested before playback started.
	ErrNotRunning = errors.New("gapsim: playback not started")

	// ErrUnknownYear indicates a requested year has no slice.
	ErrUnknownYear = errors.New("gapsim: year not in dataset")
)

// FrameError wraps an error with the frame it occurred on.
type FrameError struct {
	Frame   int
	Year    int
	Wrapped error
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("frame %d (year %d): %v", e.Frame, e.Year, e.Wrapped)
}

func (e *FrameError) Unwrap() error {
	return e.Wrapped
}
