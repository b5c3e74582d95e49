// Package annotation holds the chart's static text and legend: everything
// drawn once at startup and never touched by playback.
package annotation

import "github.com/san-kum/gapsim/internal/scale"

const (
	XLabel = "GDP Per Capita ($)"
	YLabel = "Life Expectancy (Years)"
)

// Categories are the legend's entries, in legend order.
var Categories = []string{"Africa", "Americas", "Asia", "Europe", "Oceania"}

// Narrative is the summary list shown beside the chart.
var Narrative = []string{
	"In 1810, all countries were poor and had low life expectancy.",
	"During the Industrial Revolution, Western countries improved in wealth and health.",
	"Colonial era and epidemics affected global health negatively.",
	"World War I and the Spanish Flu caused a sharp drop in life expectancy worldwide.",
	"The interwar period saw recovery in Western countries, despite the Great Depression.",
	"World War II significantly impacted global life expectancy and wealth.",
	"Post-war reconstruction led to economic booms in the West.",
	"Decolonization in the 1950s-70s resulted in gradual improvements in newly independent countries.",
	"The 1980s-2000s saw significant economic growth in East Asia.",
	"Overall, the modern era shows global improvement in life expectancy and income.",
}

// LegendEntry is one swatch of the legend.
type LegendEntry struct {
	Name  string
	Color string
}

// Legend pairs each category with its palette color.
func Legend(palette []string) []LegendEntry {
	if len(palette) == 0 {
		palette = scale.Pastel1
	}
	out := make([]LegendEntry, len(Categories))
	for i, name := range Categories {
		out[i] = LegendEntry{Name: name, Color: palette[i%len(palette)]}
	}
	return out
}
