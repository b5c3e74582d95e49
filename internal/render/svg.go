package render

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/san-kum/gapsim/internal/annotation"
	"github.com/san-kum/gapsim/internal/scale"
	"github.com/san-kum/gapsim/internal/scene"
)

const (
	axisColor   = "#333333"
	tickLength  = 6
	labelSize   = 20
	yearSize    = 40
	yTickCount  = 10
	swatchSize  = 18
	swatchSpace = 20
	legendW     = 200
	legendH     = 150
)

// Chart draws frames with fixed axes and labels.
type Chart struct {
	layout Layout
	scales *scale.Registry
}

func NewChart(layout Layout, scales *scale.Registry) *Chart {
	return &Chart{layout: layout, scales: scales}
}

func (c *Chart) Layout() Layout { return c.layout }

// Frame renders a complete SVG document for one instant of playback.
func (c *Chart) Frame(year int, glyphs []scene.Snapshot) string {
	var sb strings.Builder
	c.open(&sb)
	sb.WriteString(c.Axes())
	sb.WriteString(YearLabel(c.layout, year))
	sb.WriteString(`<g class="glyphs">` + "\n")
	for _, g := range glyphs {
		sb.WriteString(Circle(g))
	}
	sb.WriteString("</g>\n</g>\n</svg>\n")
	return sb.String()
}

// Skeleton renders the document with axes and labels but no glyphs. The
// glyph group carries id "glyphs" and the year label id "year".
func (c *Chart) Skeleton(year int) string {
	var sb strings.Builder
	c.open(&sb)
	sb.WriteString(c.Axes())
	sb.WriteString(YearLabel(c.layout, year))
	sb.WriteString(`<g id="glyphs" class="glyphs"></g>` + "\n</g>\n</svg>\n")
	return sb.String()
}

func (c *Chart) open(sb *strings.Builder) {
	w, h := c.layout.Width(), c.layout.Height()
	sb.WriteString(fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s">`+"\n",
		num(w), num(h), num(w), num(h)))
	sb.WriteString(fmt.Sprintf(`<g transform="translate(%s, %s)">`+"\n",
		num(c.layout.Margin.Left), num(c.layout.Margin.Top)))
}

// Axes renders the axis groups and both axis titles in plot coordinates.
func (c *Chart) Axes() string {
	w, h := c.layout.PlotWidth, c.layout.PlotHeight
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<g class="x axis" transform="translate(0, %s)" font-size="10" text-anchor="middle">`+"\n", num(h)))
	sb.WriteString(fmt.Sprintf(`<line x1="0" y1="0" x2="%s" y2="0" stroke="%s"/>`+"\n", num(w), axisColor))
	for _, v := range scale.XTickValues {
		x := c.scales.X.Map(v)
		sb.WriteString(fmt.Sprintf(`<line x1="%s" y1="0" x2="%s" y2="%d" stroke="%s"/>`+"\n", num(x), num(x), tickLength, axisColor))
		sb.WriteString(fmt.Sprintf(`<text x="%s" y="%d" dy="0.71em">%s</text>`+"\n", num(x), tickLength+3, html.EscapeString(scale.FormatCurrency(v))))
	}
	sb.WriteString("</g>\n")

	sb.WriteString(`<g class="y axis" font-size="10" text-anchor="end">` + "\n")
	sb.WriteString(fmt.Sprintf(`<line x1="0" y1="0" x2="0" y2="%s" stroke="%s"/>`+"\n", num(h), axisColor))
	for _, v := range c.scales.Y.Ticks(yTickCount) {
		y := c.scales.Y.Map(v)
		sb.WriteString(fmt.Sprintf(`<line x1="-%d" y1="%s" x2="0" y2="%s" stroke="%s"/>`+"\n", tickLength, num(y), num(y), axisColor))
		sb.WriteString(fmt.Sprintf(`<text x="-%d" y="%s" dy="0.32em">%s</text>`+"\n", tickLength+3, num(y), scale.FormatNumber(v)))
	}
	sb.WriteString("</g>\n")

	sb.WriteString(fmt.Sprintf(`<text class="x label" x="%s" y="%s" font-size="%dpx" text-anchor="middle">%s</text>`+"\n",
		num(w/2), num(h+50), labelSize, html.EscapeString(annotation.XLabel)))
	sb.WriteString(fmt.Sprintf(`<text class="y label" transform="rotate(-90)" x="%s" y="-40" font-size="%dpx" text-anchor="middle">%s</text>`+"\n",
		num(-h/2+25), labelSize, html.EscapeString(annotation.YLabel)))
	return sb.String()
}

// YearLabel renders the large translucent year in the plot's bottom right.
func YearLabel(l Layout, year int) string {
	return fmt.Sprintf(`<text id="year" class="year" x="%s" y="%s" font-size="%dpx" opacity="0.4" text-anchor="middle">%d</text>`+"\n",
		num(l.PlotWidth-40), num(l.PlotHeight-10), yearSize, year)
}

// Circle renders one glyph.
func Circle(g scene.Snapshot) string {
	return fmt.Sprintf(`<circle data-id="%s" cx="%s" cy="%s" r="%s" fill="%s"/>`+"\n",
		html.EscapeString(g.ID), num(g.X), num(g.Y), num(g.R), g.Fill)
}

// Legend renders the category legend as its own SVG document.
func Legend(entries []annotation.LegendEntry) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d">`+"\n", legendW, legendH))
	for i, e := range entries {
		sb.WriteString(fmt.Sprintf(`<g transform="translate(0, %d)">`, i*swatchSpace))
		sb.WriteString(fmt.Sprintf(`<rect width="%d" height="%d" style="fill: %s"/>`, swatchSize, swatchSize, e.Color))
		sb.WriteString(fmt.Sprintf(`<text x="24" y="9" dy=".35em">%s</text>`, html.EscapeString(e.Name)))
		sb.WriteString("</g>\n")
	}
	sb.WriteString("</svg>\n")
	return sb.String()
}

// Narrative renders the summary points as an HTML list.
func Narrative(lines []string) string {
	var sb strings.Builder
	sb.WriteString(`<ul id="summary-list">` + "\n")
	for _, l := range lines {
		sb.WriteString("<li>" + html.EscapeString(l) + "</li>\n")
	}
	sb.WriteString("</ul>\n")
	return sb.String()
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
