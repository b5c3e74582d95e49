// Package scale maps data-space values to chart-space values.
//
// The package provides the fixed scales used by the chart:
//
//   - [Linear]: affine mapping between a domain and a range
//   - [Log]: base-10 logarithmic mapping
//   - [AreaRadius]: linear area scale read back as a circle radius
//   - [Ordinal]: category to palette color assignment
//   - [Registry]: the four scales the chart is built from
//
// Domains are calibrated once at startup and never adapt to data seen at
// runtime, so glyph positions stay comparable from one frame to the next.
// Values outside the domain are extrapolated, not clamped.
//
// # Example
//
//	reg := scale.NewRegistry(scale.DefaultParams())
//	x, y, r := reg.Project(4000, 62.5, 1_200_000)
package scale
