package dataset

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Fields names the raw keys holding each attribute.
type Fields struct {
	ID         string `yaml:"id"`
	Wealth     string `yaml:"wealth"`
	Longevity  string `yaml:"longevity"`
	Population string `yaml:"population"`
	Category   string `yaml:"category"`
}

func DefaultFields() Fields {
	return Fields{
		ID:         "country",
		Wealth:     "income",
		Longevity:  "life_exp",
		Population: "population",
		Category:   "continent",
	}
}

// DropReason says why a record was left out of its slice.
type DropReason string

const (
	MissingID        DropReason = "missing_id"
	MissingWealth    DropReason = "missing_wealth"
	InvalidWealth    DropReason = "invalid_wealth"
	MissingLongevity DropReason = "missing_longevity"
	InvalidLongevity DropReason = "invalid_longevity"
)

// YearReport counts what normalization kept and dropped for one year.
// Reasons is nil when nothing was dropped.
type YearReport struct {
	Year    int                `json:"year"`
	Kept    int                `json:"kept"`
	Dropped int                `json:"dropped"`
	Reasons map[DropReason]int `json:"reasons,omitempty"`
}

// Report summarizes a normalization pass.
type Report struct {
	Years []YearReport
}

func (r Report) Kept() int {
	n := 0
	for _, y := range r.Years {
		n += y.Kept
	}
	return n
}

func (r Report) Dropped() int {
	n := 0
	for _, y := range r.Years {
		n += y.Dropped
	}
	return n
}

// Reasons totals the drop reasons over every year.
func (r Report) Reasons() map[DropReason]int {
	out := make(map[DropReason]int)
	for _, y := range r.Years {
		for reason, n := range y.Reasons {
			out[reason] += n
		}
	}
	return out
}

// EmptyYears returns the indices of years that kept no records.
func (r Report) EmptyYears() []int {
	var idx []int
	for i, y := range r.Years {
		if y.Kept == 0 {
			idx = append(idx, i)
		}
	}
	return idx
}

// Normalizer converts raw yearly groups into slices.
type Normalizer struct {
	Fields Fields
}

func NewNormalizer(fields Fields) *Normalizer {
	return &Normalizer{Fields: fields}
}

// Normalize applies the default field names.
func Normalize(raw []RawYear) []Slice {
	slices, _ := NewNormalizer(DefaultFields()).Normalize(raw)
	return slices
}

// Normalize keeps, for every year, the records whose wealth and longevity are
// present and numeric. Zero counts as present. Category and population pass
// through; a missing population reads as zero. The input is not modified.
func (n *Normalizer) Normalize(raw []RawYear) ([]Slice, Report) {
	slices := make([]Slice, len(raw))
	report := Report{Years: make([]YearReport, len(raw))}

	for i, year := range raw {
		y, _ := YearOf(year)
		records := make([]Record, 0, len(year.Records))
		yr := YearReport{Year: y}
		for _, rr := range year.Records {
			rec, reason := n.record(rr)
			if reason != "" {
				if yr.Reasons == nil {
					yr.Reasons = make(map[DropReason]int)
				}
				yr.Reasons[reason]++
				continue
			}
			records = append(records, rec)
		}
		yr.Kept = len(records)
		yr.Dropped = len(year.Records) - len(records)
		slices[i] = Slice{Year: y, Records: records}
		report.Years[i] = yr
	}

	return slices, report
}

// record builds a Record, or reports why rr cannot be one.
func (n *Normalizer) record(rr RawRecord) (Record, DropReason) {
	id := text(rr[n.Fields.ID])
	if id == "" {
		return Record{}, MissingID
	}
	wealth, reason := field(rr[n.Fields.Wealth], MissingWealth, InvalidWealth)
	if reason != "" {
		return Record{}, reason
	}
	longevity, reason := field(rr[n.Fields.Longevity], MissingLongevity, InvalidLongevity)
	if reason != "" {
		return Record{}, reason
	}
	population, _ := number(rr[n.Fields.Population])

	return Record{
		ID:         id,
		Wealth:     wealth,
		Longevity:  longevity,
		Population: population,
		Category:   text(rr[n.Fields.Category]),
	}, ""
}

// field coerces a required numeric attribute. Absent and null values are
// missing; anything else that is not a finite number is invalid.
func field(v any, missing, invalid DropReason) (float64, DropReason) {
	if v == nil {
		return 0, missing
	}
	f, ok := number(v)
	if !ok {
		return 0, invalid
	}
	return f, ""
}

// number coerces a raw value to a finite float.
func number(v any) (float64, bool) {
	var f float64
	switch x := v.(type) {
	case nil:
		return 0, false
	case json.Number:
		parsed, err := x.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case float64:
		f = x
	case int:
		f = float64(x)
	case int64:
		f = float64(x)
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func text(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case json.Number:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}
