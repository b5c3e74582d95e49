package metrics

import (
	"github.com/san-kum/gapsim/internal/playback"
)

// Metric summarizes one frame into a number.
type Metric interface {
	Name() string
	Observe(f playback.Frame)
	Value() float64
	Reset()
}

// Collector is a playback observer that records every metric per frame.
type Collector struct {
	metrics  []Metric
	years    []int
	series   map[string][]float64
	capacity int
}

// NewCollector keeps at most capacity frames of history; zero keeps all.
func NewCollector(capacity int, metrics ...Metric) *Collector {
	return &Collector{
		metrics:  metrics,
		series:   make(map[string][]float64, len(metrics)),
		capacity: capacity,
	}
}

// Defaults returns the metrics recorded for every run.
func Defaults() []Metric {
	return []Metric{
		NewGlyphs(),
		NewChurn(),
		NewMeanLongevity(),
		NewMedianWealth(),
		NewPopulation(),
	}
}

func (c *Collector) OnFrame(f playback.Frame) {
	c.years = append(c.years, f.Year)
	if c.capacity > 0 && len(c.years) > c.capacity {
		c.years = c.years[1:]
	}
	for _, m := range c.metrics {
		m.Reset()
		m.Observe(f)
		s := append(c.series[m.Name()], m.Value())
		if c.capacity > 0 && len(s) > c.capacity {
			s = s[1:]
		}
		c.series[m.Name()] = s
	}
}

// Names returns metric names in registration order.
func (c *Collector) Names() []string {
	names := make([]string, len(c.metrics))
	for i, m := range c.metrics {
		names[i] = m.Name()
	}
	return names
}

// Series returns the recorded history of one metric.
func (c *Collector) Series(name string) []float64 { return c.series[name] }

// Years returns the year label of every recorded frame.
func (c *Collector) Years() []int { return c.years }

// Latest returns the most recent value of every metric.
func (c *Collector) Latest() map[string]float64 {
	out := make(map[string]float64, len(c.metrics))
	for _, m := range c.metrics {
		if s := c.series[m.Name()]; len(s) > 0 {
			out[m.Name()] = s[len(s)-1]
		}
	}
	return out
}

// Rows returns one row per recorded frame, columns in Names order.
func (c *Collector) Rows() [][]float64 {
	rows := make([][]float64, len(c.years))
	for i := range rows {
		row := make([]float64, len(c.metrics))
		for j, m := range c.metrics {
			if s := c.series[m.Name()]; i < len(s) {
				row[j] = s[i]
			}
		}
		rows[i] = row
	}
	return rows
}
