package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/san-kum/gapsim/internal/dataset"
)

type table struct {
	names []string
	years []int
	rows  [][]float64
}

func (t table) Names() []string   { return t.names }
func (t table) Years() []int      { return t.years }
func (t table) Rows() [][]float64 { return t.rows }

func TestStoreSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	tbl := table{
		names: []string{"glyphs", "mean_longevity"},
		years: []int{1800, 1801},
		rows:  [][]float64{{180, 28.5}, {181, 28.7}},
	}

	runID, err := st.Save(RunMetadata{
		Kind:    "render",
		Frames:  2,
		Metrics: map[string]float64{"glyphs": 181},
	}, tbl)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if runID == "" {
		t.Error("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if meta.Kind != "render" {
		t.Errorf("expected kind 'render', got '%s'", meta.Kind)
	}

	if meta.Metrics["glyphs"] != 181 {
		t.Errorf("expected glyphs 181, got %f", meta.Metrics["glyphs"])
	}

	series, err := st.LoadSeries(runID)
	if err != nil {
		t.Fatalf("load series failed: %v", err)
	}

	if len(series.Years) != 2 || series.Years[1] != 1801 {
		t.Errorf("unexpected years %v", series.Years)
	}

	col, err := series.Column("mean_longevity")
	if err != nil {
		t.Fatalf("column: %v", err)
	}
	if col[1] != 28.7 {
		t.Errorf("expected 28.7, got %f", col[1])
	}

	if _, err := series.Column("nope"); err == nil {
		t.Error("expected error for unknown column")
	}
}

func TestStoreListNewestFirst(t *testing.T) {
	st := New(t.TempDir())
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, id := range []string{"old", "new"} {
		_, err := st.Save(RunMetadata{
			ID:        id,
			Kind:      "render",
			Timestamp: base.Add(time.Duration(i) * time.Hour),
		}, table{})
		if err != nil {
			t.Fatalf("save %s: %v", id, err)
		}
	}

	if err := os.WriteFile(filepath.Join(st.baseDir, "stray.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != "new" {
		t.Errorf("expected newest run first, got %s", runs[0].ID)
	}
}

func TestStoreListMissingDir(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "missing"))

	runs, err := st.List()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

func TestExportJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	slices := []dataset.Slice{{Year: 1800, Records: []dataset.Record{{ID: "a", Wealth: 400, Longevity: 30}}}}
	report := dataset.Report{Years: []dataset.YearReport{{
		Year: 1800, Kept: 1, Dropped: 2,
		Reasons: map[dataset.DropReason]int{dataset.MissingWealth: 1, dataset.InvalidLongevity: 1},
	}}}

	if err := ExportJSON(path, "data.json", slices, report); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var got ExportData
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Years != 1 || got.Kept != 1 || got.Drop != 2 {
		t.Errorf("unexpected summary %+v", got)
	}
	if got.Reasons[dataset.MissingWealth] != 1 || got.Reasons[dataset.InvalidLongevity] != 1 {
		t.Errorf("unexpected drop reasons %v", got.Reasons)
	}
	if len(got.Report) != 1 || got.Report[0].Reasons[dataset.MissingWealth] != 1 {
		t.Errorf("unexpected per-year report %+v", got.Report)
	}
	if got.Slices[0].Records[0].ID != "a" {
		t.Errorf("unexpected records %+v", got.Slices[0].Records)
	}
}
