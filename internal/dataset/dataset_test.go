package dataset

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/san-kum/gapsim/internal/gaperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_DropsIncompleteRecords(t *testing.T) {
	raw := []RawYear{{
		Year: "1900",
		Records: []RawRecord{
			{"country": "A", "income": 100.0, "life_exp": 40.0, "population": 10.0, "continent": "asia"},
			{"country": "B", "income": 200.0, "population": 20.0, "continent": "asia"},
			{"country": "C", "income": 300.0, "life_exp": 50.0, "population": 30.0, "continent": "europe"},
		},
	}}

	slices := Normalize(raw)
	require.Len(t, slices, 1)
	assert.Equal(t, 1900, slices[0].Year)
	assert.Len(t, slices[0].Records, 2)

	ids := []string{slices[0].Records[0].ID, slices[0].Records[1].ID}
	assert.Equal(t, []string{"A", "C"}, ids)
}

func TestNormalize_ZeroIsPresent(t *testing.T) {
	raw := []RawYear{{Records: []RawRecord{
		{"country": "Zero", "income": 0.0, "life_exp": "0"},
	}}}

	slices := Normalize(raw)
	require.Len(t, slices[0].Records, 1)
	assert.Equal(t, Record{ID: "Zero"}, slices[0].Records[0])
}

func TestNormalize_Coercion(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want float64
		ok   bool
	}{
		{"nil", nil, 0, false},
		{"numeric string", " 715.5 ", 715.5, true},
		{"empty string", "", 0, false},
		{"garbage", "n/a", 0, false},
		{"float", 12.0, 12, true},
		{"int", 7, 7, true},
		{"NaN string", "NaN", 0, false},
		{"bool", true, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := number(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalize_DoesNotMutateInput(t *testing.T) {
	raw := []RawYear{{Records: []RawRecord{
		{"country": "A", "income": "100", "life_exp": "40"},
	}}}

	Normalize(raw)
	assert.Equal(t, "100", raw[0].Records[0]["income"])
	assert.Equal(t, "40", raw[0].Records[0]["life_exp"])
}

func TestNormalize_EmptyYearIsValid(t *testing.T) {
	raw := []RawYear{
		{Year: "1800", Records: []RawRecord{{"country": "A"}}},
		{Year: "1801"},
	}

	slices, report := NewNormalizer(DefaultFields()).Normalize(raw)
	require.Len(t, slices, 2)
	assert.Equal(t, 0, slices[0].Len())
	assert.Equal(t, 0, slices[1].Len())
	assert.Equal(t, []int{0, 1}, report.EmptyYears())
	assert.Equal(t, 1, report.Dropped())
}

func TestNormalize_DropReasons(t *testing.T) {
	raw := []RawYear{{Year: 1800, Records: []RawRecord{
		{"income": 1, "life_exp": 1},
		{"country": "", "income": 1, "life_exp": 1},
		{"country": "B", "life_exp": 1},
		{"country": "C", "income": "lots", "life_exp": 1},
		{"country": "D", "income": 1, "life_exp": nil},
		{"country": "E", "income": 1, "life_exp": "old"},
		{"country": "F", "income": 0, "life_exp": 0},
	}}}

	_, report := NewNormalizer(DefaultFields()).Normalize(raw)
	want := map[DropReason]int{
		MissingID:        2,
		MissingWealth:    1,
		InvalidWealth:    1,
		MissingLongevity: 1,
		InvalidLongevity: 1,
	}
	if diff := cmp.Diff(want, report.Years[0].Reasons); diff != "" {
		t.Errorf("reasons mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, want, report.Reasons())
	assert.Equal(t, 1, report.Kept())
	assert.Equal(t, 6, report.Dropped())
}

func TestLoad_Sample(t *testing.T) {
	raw, err := Load("testdata/sample.json")
	require.NoError(t, err)
	require.Len(t, raw, 3)

	slices, report := NewNormalizer(DefaultFields()).Normalize(raw)

	want := []YearReport{
		{Year: 1800, Kept: 2, Dropped: 2, Reasons: map[DropReason]int{MissingLongevity: 1, MissingWealth: 1}},
		{Year: 1801, Kept: 4, Dropped: 0},
		{Year: 1802, Kept: 0, Dropped: 1, Reasons: map[DropReason]int{InvalidWealth: 1}},
	}
	if diff := cmp.Diff(want, report.Years); diff != "" {
		t.Errorf("report mismatch (-want +got):\n%s", diff)
	}

	algeria := slices[0].Records[1]
	assert.Equal(t, Record{ID: "Algeria", Wealth: 715, Longevity: 28.82, Population: 2503218, Category: "africa"}, algeria)

	idx, err := IndexOfYear(slices, 1801)
	require.NoError(t, err)
	assert.Equal(t, 1, idx)

	_, err = IndexOfYear(slices, 1900)
	assert.True(t, errors.Is(err, gaperr.ErrUnknownYear))
}

func TestDecode_Malformed(t *testing.T) {
	_, err := Decode(strings.NewReader(`{"not": "an array"}`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, gaperr.ErrDecode))
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load("testdata/does-not-exist.json")
	assert.Error(t, err)
}
