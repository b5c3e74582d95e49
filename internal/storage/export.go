package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/gapsim/internal/dataset"
)

// ExportData is the normalized dataset as written by ExportJSON.
type ExportData struct {
	Source  string                     `json:"source"`
	Years   int                        `json:"years"`
	Kept    int                        `json:"kept"`
	Drop    int                        `json:"dropped"`
	Reasons map[dataset.DropReason]int `json:"drop_reasons"`
	Report  []dataset.YearReport       `json:"report"`
	Slices  []dataset.Slice            `json:"slices"`
}

// ExportJSON writes the normalized slices to path, or to stdout when path
// is "-".
func ExportJSON(path, source string, slices []dataset.Slice, report dataset.Report) error {
	data := ExportData{
		Source:  source,
		Years:   len(slices),
		Kept:    report.Kept(),
		Drop:    report.Dropped(),
		Reasons: report.Reasons(),
		Report:  report.Years,
		Slices:  slices,
	}

	if path == "-" {
		return encode(os.Stdout, data)
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return encode(file, data)
}

func encode(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
