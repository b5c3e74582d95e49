package render

// Margin is the space around the plot area.
type Margin struct {
	Top, Right, Bottom, Left float64
}

// Layout is the canvas geometry.
type Layout struct {
	PlotWidth  float64
	PlotHeight float64
	Margin     Margin
}

func DefaultLayout() Layout {
	return Layout{
		PlotWidth:  690,
		PlotHeight: 390,
		Margin:     Margin{Top: 10, Right: 10, Bottom: 100, Left: 100},
	}
}

func (l Layout) Width() float64  { return l.PlotWidth + l.Margin.Left + l.Margin.Right }
func (l Layout) Height() float64 { return l.PlotHeight + l.Margin.Top + l.Margin.Bottom }

// Canvas converts plot coordinates to canvas coordinates.
func (l Layout) Canvas(x, y float64) (float64, float64) {
	return x + l.Margin.Left, y + l.Margin.Top
}
