package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"
)

// Store keeps one directory per exported run under baseDir.
type Store struct {
	baseDir string
	now     func() time.Time
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, now: time.Now}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// Table is a per-frame metric history.
type Table interface {
	Names() []string
	Years() []int
	Rows() [][]float64
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Kind       string             `json:"kind"`
	Timestamp  time.Time          `json:"timestamp"`
	DataPath   string             `json:"data_path"`
	Output     string             `json:"output"`
	Frames     int                `json:"frames"`
	StartYear  int                `json:"start_year"`
	Interval   string             `json:"interval"`
	Transition string             `json:"transition"`
	Metrics    map[string]float64 `json:"metrics"`
}

// Series is a stored metric history.
type Series struct {
	Columns []string
	Years   []int
	Rows    [][]float64
}

// Column returns the values of one named column.
func (s *Series) Column(name string) ([]float64, error) {
	for j, c := range s.Columns {
		if c != name {
			continue
		}
		out := make([]float64, len(s.Rows))
		for i, row := range s.Rows {
			if j < len(row) {
				out[i] = row[j]
			}
		}
		return out, nil
	}
	return nil, fmt.Errorf("no column %q", name)
}

// Save writes metadata.json and frames.csv for a run and returns its id.
// An empty meta.ID is filled in from the kind and the current time.
func (s *Store) Save(meta RunMetadata, table Table) (string, error) {
	if meta.Timestamp.IsZero() {
		meta.Timestamp = s.now()
	}
	if meta.ID == "" {
		meta.ID = fmt.Sprintf("%s_%d", meta.Kind, meta.Timestamp.Unix())
	}
	runDir := filepath.Join(s.baseDir, meta.ID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "frames.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)

	header := append([]string{"year"}, table.Names()...)
	if err := w.Write(header); err != nil {
		return "", err
	}

	years := table.Years()
	for i, values := range table.Rows() {
		row := make([]string, 0, len(values)+1)
		if i < len(years) {
			row = append(row, strconv.Itoa(years[i]))
		} else {
			row = append(row, "")
		}
		for _, v := range values {
			row = append(row, strconv.FormatFloat(v, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return meta.ID, nil
}

// List returns every readable run, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return &meta, nil
}

// LoadSeries reads frames.csv back. Rows with an unparsable year are skipped.
func (s *Store) LoadSeries(runID string) (*Series, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "frames.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errors.New("frames.csv has no header")
	}

	series := &Series{Columns: records[0][1:]}
	for _, record := range records[1:] {
		if len(record) == 0 {
			continue
		}
		year, err := strconv.Atoi(record[0])
		if err != nil {
			continue
		}

		row := make([]float64, len(series.Columns))
		for j := 1; j < len(record) && j-1 < len(row); j++ {
			if v, err := strconv.ParseFloat(record[j], 64); err == nil {
				row[j-1] = v
			}
		}
		series.Years = append(series.Years, year)
		series.Rows = append(series.Rows, row)
	}
	return series, nil
}
