package scale

import "math"

// Scale maps a domain value to a range value.
type Scale interface {
	Map(v float64) float64
}

// Bounds is a closed interval given as [Min, Max]. Max may be smaller than
// Min for inverted ranges.
type Bounds struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Span returns Max - Min.
func (b Bounds) Span() float64 { return b.Max - b.Min }

// Linear is an affine mapping from Domain to Range.
type Linear struct {
	Domain Bounds
	Range  Bounds
}

func NewLinear(domain, rng Bounds) Linear {
	return Linear{Domain: domain, Range: rng}
}

func (s Linear) Map(v float64) float64 {
	return interpolate(s.Range, normalize(s.Domain, v))
}

// Invert maps a range value back into the domain.
func (s Linear) Invert(v float64) float64 {
	return interpolate(s.Domain, normalize(s.Range, v))
}

// Ticks returns roughly count evenly spaced round values covering the domain,
// using steps of 1, 2 or 5 times a power of ten.
func (s Linear) Ticks(count int) []float64 {
	start, stop := s.Domain.Min, s.Domain.Max
	if count <= 0 || start == stop {
		return []float64{start}
	}
	reverse := stop < start
	if reverse {
		start, stop = stop, start
	}

	inc := tickIncrement(start, stop, count)
	if inc == 0 || math.IsInf(inc, 0) || math.IsNaN(inc) {
		return nil
	}

	var ticks []float64
	if inc > 0 {
		lo, hi := math.Ceil(start/inc), math.Floor(stop/inc)
		for i := lo; i <= hi; i++ {
			ticks = append(ticks, i*inc)
		}
	} else {
		lo, hi := math.Ceil(start*-inc), math.Floor(stop*-inc)
		for i := lo; i <= hi; i++ {
			ticks = append(ticks, i/-inc)
		}
	}

	if reverse {
		for i, j := 0, len(ticks)-1; i < j; i, j = i+1, j-1 {
			ticks[i], ticks[j] = ticks[j], ticks[i]
		}
	}
	return ticks
}

// tickIncrement returns a positive step, or a negative reciprocal step when
// the step is below one so that tick values stay exact.
func tickIncrement(start, stop float64, count int) float64 {
	step := (stop - start) / float64(count)
	power := math.Floor(math.Log10(step))
	e := step / math.Pow(10, power)

	factor := 1.0
	switch {
	case e >= math.Sqrt(50):
		factor = 10
	case e >= math.Sqrt(10):
		factor = 5
	case e >= math.Sqrt(2):
		factor = 2
	}

	if power >= 0 {
		return factor * math.Pow(10, power)
	}
	return -math.Pow(10, -power) / factor
}

// Log is a base-10 logarithmic mapping from Domain to Range. Domain values
// must be strictly positive; zero maps to -Inf and negatives to NaN.
type Log struct {
	Domain Bounds
	Range  Bounds
}

func NewLog(domain, rng Bounds) Log {
	return Log{Domain: domain, Range: rng}
}

func (s Log) Map(v float64) float64 {
	d := Bounds{Min: math.Log10(s.Domain.Min), Max: math.Log10(s.Domain.Max)}
	return interpolate(s.Range, normalize(d, math.Log10(v)))
}

func (s Log) Invert(v float64) float64 {
	d := Bounds{Min: math.Log10(s.Domain.Min), Max: math.Log10(s.Domain.Max)}
	return math.Pow(10, interpolate(d, normalize(s.Range, v)))
}

// AreaRadius wraps a linear scale whose range is an area. Radius is derived
// so that circle area, not radius, is linear in the input.
type AreaRadius struct {
	Area Linear
}

func NewAreaRadius(domain, areaRange Bounds) AreaRadius {
	return AreaRadius{Area: NewLinear(domain, areaRange)}
}

// Map returns the area for v.
func (s AreaRadius) Map(v float64) float64 { return s.Area.Map(v) }

// Radius returns sqrt(area/π) for v.
func (s AreaRadius) Radius(v float64) float64 {
	return math.Sqrt(s.Area.Map(v) / math.Pi)
}

func normalize(b Bounds, v float64) float64 {
	span := b.Span()
	if span == 0 {
		return 0.5
	}
	return (v - b.Min) / span
}

func interpolate(b Bounds, t float64) float64 {
	return b.Min + t*b.Span()
}
