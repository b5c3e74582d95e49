package scale

import (
	"math"
	"testing"
)

const eps = 1e-9

func TestAreaRadius_DomainMin(t *testing.T) {
	reg := NewRegistry(DefaultParams())

	if r := reg.Area.Radius(2000); math.Abs(r-5) > eps {
		t.Errorf("Radius(2000) = %v, want 5", r)
	}
	if r := reg.Area.Radius(1400000000); math.Abs(r-math.Sqrt(1500)) > eps {
		t.Errorf("Radius(max) = %v, want %v", r, math.Sqrt(1500))
	}
}

func TestAreaRadius_AreaIsLinear(t *testing.T) {
	s := NewAreaRadius(Bounds{Min: 0, Max: 100}, Bounds{Min: 0, Max: 100 * math.Pi})

	r1, r4 := s.Radius(25), s.Radius(100)
	if a1, a4 := r1*r1, r4*r4; math.Abs(a4/a1-4) > eps {
		t.Errorf("area ratio = %v, want 4", a4/a1)
	}
}

func TestLog_DecadesEquallySpaced(t *testing.T) {
	x := NewLog(Bounds{Min: 142, Max: 150000}, Bounds{Min: 0, Max: 690})

	values := []float64{142, 1420, 14200, 142000}
	px := make([]float64, len(values))
	for i, v := range values {
		px[i] = x.Map(v)
	}

	if px[0] != 0 {
		t.Errorf("X(142) = %v, want 0", px[0])
	}
	if px[1] <= px[0] {
		t.Errorf("X(1420) = %v not greater than X(142) = %v", px[1], px[0])
	}

	decade := px[1] - px[0]
	for i := 2; i < len(px); i++ {
		if d := px[i] - px[i-1]; math.Abs(d-decade) > 1e-6 {
			t.Errorf("decade %d spans %v px, want %v", i, d, decade)
		}
	}

	if got := x.Map(150000); math.Abs(got-690) > 1e-6 {
		t.Errorf("X(150000) = %v, want 690", got)
	}
}

func TestLog_NoClamping(t *testing.T) {
	x := NewLog(Bounds{Min: 142, Max: 150000}, Bounds{Min: 0, Max: 690})

	if got := x.Map(100); got >= 0 {
		t.Errorf("X(100) = %v, want negative (off canvas)", got)
	}
	if got := x.Map(300000); got <= 690 {
		t.Errorf("X(300000) = %v, want > 690", got)
	}
}

func TestLinear_InvertedRange(t *testing.T) {
	y := NewLinear(Bounds{Min: 0, Max: 90}, Bounds{Min: 390, Max: 0})

	tests := []struct {
		in, want float64
	}{
		{0, 390},
		{90, 0},
		{45, 195},
		{100, -390.0 / 9},
	}

	for _, tt := range tests {
		if got := y.Map(tt.in); math.Abs(got-tt.want) > eps {
			t.Errorf("Y(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if got := y.Invert(195); math.Abs(got-45) > eps {
		t.Errorf("Invert(195) = %v, want 45", got)
	}
}

func TestLinear_DegenerateDomain(t *testing.T) {
	s := NewLinear(Bounds{Min: 5, Max: 5}, Bounds{Min: 0, Max: 10})
	if got := s.Map(123); got != 5 {
		t.Errorf("Map on empty domain = %v, want midpoint 5", got)
	}
}

func TestLinear_Ticks(t *testing.T) {
	tests := []struct {
		name   string
		domain Bounds
		count  int
		want   []float64
	}{
		{"longevity", Bounds{Min: 0, Max: 90}, 10, []float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90}},
		{"fractional", Bounds{Min: 0, Max: 1}, 5, []float64{0, 0.2, 0.4, 0.6, 0.8, 1}},
		{"reversed", Bounds{Min: 10, Max: 0}, 2, []float64{10, 5, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewLinear(tt.domain, Bounds{Min: 0, Max: 1}).Ticks(tt.count)
			if len(got) != len(tt.want) {
				t.Fatalf("Ticks() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if math.Abs(got[i]-tt.want[i]) > eps {
					t.Errorf("Ticks()[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestOrdinal_SeededOrder(t *testing.T) {
	reg := NewRegistry(DefaultParams())

	if got := reg.Color.Color("Africa"); got != Pastel1[0] {
		t.Errorf("Africa = %s, want %s", got, Pastel1[0])
	}
	if got := reg.Color.Color("Oceania"); got != Pastel1[4] {
		t.Errorf("Oceania = %s, want %s", got, Pastel1[4])
	}
	if got := reg.Color.Color("europe"); got != Pastel1[3] {
		t.Errorf("lowercase europe = %s, want %s", got, Pastel1[3])
	}
	if got := reg.Color.Color("Antarctica"); got != Pastel1[5] {
		t.Errorf("first unknown category = %s, want %s", got, Pastel1[5])
	}
	if got := reg.Color.Color("Antarctica"); got != Pastel1[5] {
		t.Errorf("color not stable on second lookup: %s", got)
	}
}

func TestOrdinal_WrapsPastCapacity(t *testing.T) {
	o := NewOrdinal([]string{"#a", "#b"})

	o.Color("one")
	o.Color("two")
	if o.Saturated() {
		t.Error("scale saturated at capacity")
	}
	if got := o.Color("three"); got != "#a" {
		t.Errorf("third category = %s, want wrap to #a", got)
	}
	if !o.Saturated() {
		t.Error("expected scale to report saturation")
	}
	if d := o.Domain(); len(d) != 3 || d[2] != "three" {
		t.Errorf("Domain() = %v", d)
	}
}

func TestOrdinal_Wraps(t *testing.T) {
	o := NewOrdinal([]string{"#a", "#b", "#c"}, "Africa", "Asia")

	if o.Wraps("africa", "ASIA", "Europe", "europe") {
		t.Error("one new category fits the third color")
	}
	if !o.Wraps("Europe", "Oceania") {
		t.Error("two new categories exceed capacity 3")
	}
	if d := o.Domain(); len(d) != 2 {
		t.Errorf("Wraps assigned colors: Domain() = %v", d)
	}
	if o.Capacity() != 3 {
		t.Errorf("Capacity() = %d, want 3", o.Capacity())
	}
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{400, "$400"},
		{4000, "$4,000"},
		{40000, "$40,000"},
	}
	for _, tt := range tests {
		if got := FormatCurrency(tt.in); got != tt.want {
			t.Errorf("FormatCurrency(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
