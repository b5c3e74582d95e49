package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"strconv"
	"strings"

	"github.com/san-kum/gapsim/internal/annotation"
	"github.com/san-kum/gapsim/internal/scale"
	"github.com/san-kum/gapsim/internal/scene"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	idxBackground uint8 = iota
	idxAxis
	idxYear
	idxFirstFill
)

// Raster draws frames into paletted images for GIF encoding.
type Raster struct {
	layout  Layout
	scales  *scale.Registry
	zoom    float64
	palette color.Palette
	fills   map[string]uint8
	base    *image.Paletted
}

// NewRaster prepares the static background once. zoom scales the canvas;
// values <= 0 mean 1.
func NewRaster(layout Layout, scales *scale.Registry, zoom float64) *Raster {
	if zoom <= 0 {
		zoom = 1
	}
	r := &Raster{
		layout: layout,
		scales: scales,
		zoom:   zoom,
		palette: color.Palette{
			color.RGBA{0xff, 0xff, 0xff, 0xff},
			color.RGBA{0x33, 0x33, 0x33, 0xff},
			color.RGBA{0xb3, 0xb3, 0xb3, 0xff},
		},
		fills: make(map[string]uint8),
	}
	for _, hex := range scales.Color.Palette() {
		c, err := ParseHex(hex)
		if err != nil {
			continue
		}
		r.fills[strings.ToLower(hex)] = uint8(len(r.palette))
		r.palette = append(r.palette, c)
	}
	r.base = r.background()
	return r
}

// Bounds is the size of every produced frame.
func (r *Raster) Bounds() image.Rectangle {
	return image.Rect(0, 0, r.px(r.layout.Width()), r.px(r.layout.Height()))
}

// Frame draws one instant of playback.
func (r *Raster) Frame(year int, glyphs []scene.Snapshot) *image.Paletted {
	img := image.NewPaletted(r.Bounds(), r.palette)
	copy(img.Pix, r.base.Pix)

	r.text(img, strconv.Itoa(year), r.layout.PlotWidth-40, r.layout.PlotHeight-10, 3, idxYear, true)
	for _, g := range glyphs {
		idx, ok := r.fills[strings.ToLower(g.Fill)]
		if !ok {
			idx = idxAxis
		}
		cx, cy := r.layout.Canvas(g.X, g.Y)
		fillCircle(img, cx*r.zoom, cy*r.zoom, g.R*r.zoom, idx)
	}
	return img
}

func (r *Raster) background() *image.Paletted {
	img := image.NewPaletted(r.Bounds(), r.palette)
	draw.Draw(img, img.Bounds(), &image.Uniform{r.palette[idxBackground]}, image.Point{}, draw.Src)

	w, h := r.layout.PlotWidth, r.layout.PlotHeight
	r.line(img, 0, h, w, h)
	r.line(img, 0, 0, 0, h)

	for _, v := range scale.XTickValues {
		x := r.scales.X.Map(v)
		r.line(img, x, h, x, h+tickLength)
		r.text(img, scale.FormatCurrency(v), x, h+tickLength+14, 1, idxAxis, true)
	}
	for _, v := range r.scales.Y.Ticks(yTickCount) {
		y := r.scales.Y.Map(v)
		r.line(img, -tickLength, y, 0, y)
		r.text(img, scale.FormatNumber(v), -tickLength-16, y+4, 1, idxAxis, true)
	}

	r.text(img, annotation.XLabel, w/2, h+50, 2, idxAxis, true)
	return img
}

// line draws an axis-aligned or diagonal line in plot coordinates.
func (r *Raster) line(img *image.Paletted, x0, y0, x1, y1 float64) {
	ax, ay := r.layout.Canvas(x0, y0)
	bx, by := r.layout.Canvas(x1, y1)
	steps := int(math.Max(math.Abs(bx-ax), math.Abs(by-ay))*r.zoom) + 1
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x := (ax + (bx-ax)*t) * r.zoom
		y := (ay + (by-ay)*t) * r.zoom
		img.SetColorIndex(int(x), int(y), idxAxis)
	}
}

// text draws s with its baseline at plot coordinates (x, y), magnified by
// size. Centered text is anchored at its middle.
func (r *Raster) text(img *image.Paletted, s string, x, y float64, size int, idx uint8, centered bool) {
	face := basicfont.Face7x13
	width := font.MeasureString(face, s).Ceil()
	glyphs := image.NewAlpha(image.Rect(0, 0, width, face.Height))
	d := &font.Drawer{
		Dst:  glyphs,
		Src:  image.Opaque,
		Face: face,
		Dot:  fixed.P(0, face.Ascent),
	}
	d.DrawString(s)

	cx, cy := r.layout.Canvas(x, y)
	mag := float64(size) * r.zoom
	ox := cx * r.zoom
	if centered {
		ox -= float64(width) * mag / 2
	}
	oy := cy*r.zoom - float64(face.Ascent)*mag

	b := glyphs.Bounds()
	for py := b.Min.Y; py < b.Max.Y; py++ {
		for px := b.Min.X; px < b.Max.X; px++ {
			if glyphs.AlphaAt(px, py).A < 0x80 {
				continue
			}
			x0 := int(ox + float64(px)*mag)
			y0 := int(oy + float64(py)*mag)
			x1 := int(ox + float64(px+1)*mag)
			y1 := int(oy + float64(py+1)*mag)
			for yy := y0; yy < y1; yy++ {
				for xx := x0; xx < x1; xx++ {
					img.SetColorIndex(xx, yy, idx)
				}
			}
		}
	}
}

func fillCircle(img *image.Paletted, cx, cy, radius float64, idx uint8) {
	if radius <= 0 {
		return
	}
	r2 := radius * radius
	for y := int(math.Floor(cy - radius)); y <= int(math.Ceil(cy+radius)); y++ {
		dy := float64(y) + 0.5 - cy
		if dy*dy > r2 {
			continue
		}
		half := math.Sqrt(r2 - dy*dy)
		for x := int(math.Floor(cx - half)); x <= int(math.Ceil(cx+half)); x++ {
			dx := float64(x) + 0.5 - cx
			if dx*dx+dy*dy <= r2 {
				img.SetColorIndex(x, y, idx)
			}
		}
	}
}

func (r *Raster) px(v float64) int { return int(math.Ceil(v * r.zoom)) }

// ParseHex parses a #rrggbb color.
func ParseHex(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.RGBA{uint8(v >> 16), uint8(v >> 8), uint8(v), 0xff}, nil
}
