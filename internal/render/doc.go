// Package render draws the chart as SVG documents and animated GIFs.
//
// Chart coordinates follow the usual SVG convention: the plot area is
// translated by the left and top margins, y grows downwards, and glyph
// attributes from the scene are used unchanged. Nothing is clamped, so
// entities outside the scale domains render outside the plot area.
package render
