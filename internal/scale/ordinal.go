package scale

import "strings"

// Pastel1 is the nine-color pastel categorical palette.
var Pastel1 = []string{
	"#fbb4ae", "#b3cde3", "#ccebc5", "#decbe4", "#fed9a6",
	"#ffffcc", "#e5d8bd", "#fddaec", "#f2f2f2",
}

// Ordinal assigns palette colors to category names in first-seen order.
// Once assigned, a category keeps its color for the life of the scale.
// Names compare case-insensitively, so "Africa" and "africa" share a color.
// Past the palette's capacity, assignments wrap around and reuse colors.
type Ordinal struct {
	palette []string
	index   map[string]int
	order   []string
}

func NewOrdinal(palette []string, seed ...string) *Ordinal {
	o := &Ordinal{
		palette: append([]string(nil), palette...),
		index:   make(map[string]int),
	}
	for _, name := range seed {
		o.Color(name)
	}
	return o
}

// Color returns the color for name, assigning the next slot on first use.
func (o *Ordinal) Color(name string) string {
	if len(o.palette) == 0 {
		return ""
	}
	key := strings.ToLower(strings.TrimSpace(name))
	i, ok := o.index[key]
	if !ok {
		i = len(o.order)
		o.index[key] = i
		o.order = append(o.order, name)
	}
	return o.palette[i%len(o.palette)]
}

// Domain returns the categories seen so far in assignment order.
func (o *Ordinal) Domain() []string {
	return append([]string(nil), o.order...)
}

// Capacity is the number of distinct colors before assignments wrap.
func (o *Ordinal) Capacity() int { return len(o.palette) }

// Wraps reports whether assigning names on top of the categories already
// seen would exceed the palette. It assigns nothing.
func (o *Ordinal) Wraps(names ...string) bool {
	seen := len(o.order)
	fresh := make(map[string]bool)
	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if _, ok := o.index[key]; ok || fresh[key] {
			continue
		}
		fresh[key] = true
		seen++
	}
	return seen > o.Capacity()
}

// Saturated reports whether more categories have been seen than colors exist.
func (o *Ordinal) Saturated() bool { return len(o.order) > len(o.palette) }

// Palette returns a copy of the color range.
func (o *Ordinal) Palette() []string {
	return append([]string(nil), o.palette...)
}
