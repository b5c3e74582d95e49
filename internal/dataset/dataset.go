// Package dataset loads the yearly entity document and normalizes it into
// per-year slices of complete records.
package dataset

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/san-kum/gapsim/internal/gaperr"
)

// Record is one entity's attributes for one year.
type Record struct {
	ID         string  `json:"id"`
	Wealth     float64 `json:"wealth"`
	Longevity  float64 `json:"longevity"`
	Population float64 `json:"population"`
	Category   string  `json:"category"`
}

// Slice is the set of complete records for one year. Record order carries no
// meaning.
type Slice struct {
	Year    int      `json:"year"`
	Records []Record `json:"records"`
}

func (s Slice) Len() int { return len(s.Records) }

// RawRecord is an entity entry as it appears in the input document. Numeric
// fields may be JSON numbers, numeric strings, null, or absent.
type RawRecord map[string]any

// RawYear is one yearly group of the input document.
type RawYear struct {
	Year    any         `json:"year"`
	Records []RawRecord `json:"countries"`
}

// Load reads and decodes the document at path.
func Load(path string) ([]RawYear, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	raw, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return raw, nil
}

// Decode parses an ordered array of yearly groups.
func Decode(r io.Reader) ([]RawYear, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var raw []RawYear
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", gaperr.ErrDecode, err)
	}
	return raw, nil
}

// YearOf parses a group's year label, returning false when it is absent or
// not an integer.
func YearOf(raw RawYear) (int, bool) {
	switch v := raw.Year.(type) {
	case json.Number:
		n, err := v.Int64()
		return int(n), err == nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		return n, err == nil
	case float64:
		return int(v), true
	}
	return 0, false
}

// IndexOfYear returns the position of the slice labelled year.
func IndexOfYear(slices []Slice, year int) (int, error) {
	for i, s := range slices {
		if s.Year == year {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %d", gaperr.ErrUnknownYear, year)
}
