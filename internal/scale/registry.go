package scale

import "math"

// Params calibrates a Registry. Domains are fixed for the session.
type Params struct {
	PlotWidth  float64
	PlotHeight float64
	Wealth     Bounds
	Longevity  Bounds
	Population Bounds
	Area       Bounds
	Palette    []string
	Categories []string
}

func DefaultParams() Params {
	return Params{
		PlotWidth:  690,
		PlotHeight: 390,
		Wealth:     Bounds{Min: 142, Max: 150000},
		Longevity:  Bounds{Min: 0, Max: 90},
		Population: Bounds{Min: 2000, Max: 1400000000},
		Area:       Bounds{Min: 25 * math.Pi, Max: 1500 * math.Pi},
		Palette:    Pastel1,
		Categories: []string{"Africa", "Americas", "Asia", "Europe", "Oceania"},
	}
}

// Registry holds the chart's scales.
type Registry struct {
	X     Log
	Y     Linear
	Area  AreaRadius
	Color *Ordinal
}

func NewRegistry(p Params) *Registry {
	return &Registry{
		X:     NewLog(p.Wealth, Bounds{Min: 0, Max: p.PlotWidth}),
		Y:     NewLinear(p.Longevity, Bounds{Min: p.PlotHeight, Max: 0}),
		Area:  NewAreaRadius(p.Population, p.Area),
		Color: NewOrdinal(p.Palette, p.Categories...),
	}
}

// Project maps one entity's attributes to plot coordinates and radius.
func (r *Registry) Project(wealth, longevity, population float64) (x, y, radius float64) {
	return r.X.Map(wealth), r.Y.Map(longevity), r.Area.Radius(population)
}
