package metrics

import (
	"sort"

	"github.com/san-kum/gapsim/internal/playback"
)

// Glyphs counts the glyphs on screen after a frame: one per distinct
// identity in the slice.
type Glyphs struct {
	count int
}

func NewGlyphs() *Glyphs { return &Glyphs{} }

func (g *Glyphs) Name() string { return "glyphs" }

func (g *Glyphs) Observe(f playback.Frame) {
	ids := make(map[string]struct{}, len(f.Slice.Records))
	for _, r := range f.Slice.Records {
		ids[r.ID] = struct{}{}
	}
	g.count = len(ids)
}

func (g *Glyphs) Value() float64 { return float64(g.count) }
func (g *Glyphs) Reset() { g.count = 0 }

// Churn counts glyphs created plus glyphs removed in a frame.
type Churn struct {
	n int
}

func NewChurn() *Churn { return &Churn{} }

func (c *Churn) Name() string { return "churn" }
func (c *Churn) Observe(f playback.Frame) {
	c.n = len(f.Plan.Create) + len(f.Plan.Remove)
}
func (c *Churn) Value() float64 { return float64(c.n) }
func (c *Churn) Reset() { c.n = 0 }

// MeanLongevity is the population-weighted mean longevity of a frame.
// Records without population count with weight one.
type MeanLongevity struct {
	sum    float64
	weight float64
}

func NewMeanLongevity() *MeanLongevity { return &MeanLongevity{} }

func (m *MeanLongevity) Name() string { return "mean_longevity" }

func (m *MeanLongevity) Observe(f playback.Frame) {
	for _, r := range f.Slice.Records {
		w := r.Population
		if w <= 0 {
			w = 1
		}
		m.sum += r.Longevity * w
		m.weight += w
	}
}

func (m *MeanLongevity) Value() float64 {
	if m.weight == 0 {
		return 0
	}
	return m.sum / m.weight
}

func (m *MeanLongevity) Reset() {
	m.sum = 0
	m.weight = 0
}

// MedianWealth is the median wealth across a frame's records.
type MedianWealth struct {
	values []float64
}

func NewMedianWealth() *MedianWealth { return &MedianWealth{} }

func (m *MedianWealth) Name() string { return "median_wealth" }

func (m *MedianWealth) Observe(f playback.Frame) {
	for _, r := range f.Slice.Records {
		m.values = append(m.values, r.Wealth)
	}
}

func (m *MedianWealth) Value() float64 {
	n := len(m.values)
	if n == 0 {
		return 0
	}
	sorted := append([]float64(nil), m.values...)
	sort.Float64s(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

func (m *MedianWealth) Reset() { m.values = m.values[:0] }

// Population sums the population of a frame's records.
type Population struct {
	total float64
}

func NewPopulation() *Population { return &Population{} }

func (p *Population) Name() string { return "population" }
func (p *Population) Observe(f playback.Frame) {
	for _, r := range f.Slice.Records {
		p.total += r.Population
	}
}
func (p *Population) Value() float64 { return p.total }
func (p *Population) Reset() { p.total = 0 }
