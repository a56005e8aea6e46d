package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleCSV = `animal_id,time,x,y,direction,average_speed,average_acceleration,c-0,c-1,m-a,m-b,m-c,heading_change
a,1,0,0,90,1.0,0.1,2,0,,2,9,0.5
b,1,10,0,180,2.0,0.2,2,1,2,,4,0.7
c,1,0,10,270,3.0,0.3,-1,1,9,4,,
a,2,1,1,90,4.0,0.4,2,0,,3,8,0.1
b,2,11,1,180,5.0,0.5,2,1,3,,5,0.2
`

func loadSample(t *testing.T) *Dataset {
	t.Helper()
	records, err := ParseCSV(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("ParseCSV failed: %v", err)
	}
	d, err := New(records)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return d
}

func TestParseCSV(t *testing.T) {
	records, err := ParseCSV(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("ParseCSV failed: %v", err)
	}
	if len(records) != 5 {
		t.Fatalf("expected 5 records, got %d", len(records))
	}

	a := records[0]
	if a.AnimalID != "a" || a.Time != 1 || a.Direction != 90 {
		t.Errorf("unexpected record %+v", a)
	}
	if _, ok := a.Weight("a"); ok {
		t.Error("expected empty weight cell to be absent")
	}
	if w, ok := a.Weight("c"); !ok || w != 9 {
		t.Errorf("expected weight 9 towards c, got %v (%v)", w, ok)
	}
	if label, ok := a.Label(0); !ok || label != 2 {
		t.Errorf("expected label 2, got %v (%v)", label, ok)
	}
	if v, ok := a.Feature("heading_change"); !ok || v != 0.5 {
		t.Errorf("expected extra feature 0.5, got %v (%v)", v, ok)
	}
	if _, ok := records[2].Feature("heading_change"); ok {
		t.Error("expected empty feature cell to be absent")
	}
}

func TestParseCSVMissingColumn(t *testing.T) {
	_, err := ParseCSV(strings.NewReader("animal_id,time,x\na,1,0\n"))
	if err == nil {
		t.Fatal("expected error for missing y column")
	}
}

func TestParseCSVSkipsMalformedRows(t *testing.T) {
	records, err := ParseCSV(strings.NewReader("animal_id,time,x,y\na,1,0,0\nb,oops,1,1\n,1,2,2\n"))
	if err != nil {
		t.Fatalf("ParseCSV failed: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("expected 1 record, got %d", len(records))
	}
}

func TestParseCSVEmpty(t *testing.T) {
	if _, err := ParseCSV(strings.NewReader("")); !errors.Is(err, ErrEmpty) {
		t.Errorf("expected ErrEmpty, got %v", err)
	}
}

func TestLoadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fish.csv")
	if err := os.WriteFile(path, []byte(sampleCSV), 0o644); err != nil {
		t.Fatal(err)
	}
	records, err := LoadCSV(path)
	if err != nil {
		t.Fatalf("LoadCSV failed: %v", err)
	}
	if len(records) != 5 {
		t.Errorf("expected 5 records, got %d", len(records))
	}

	if _, err := LoadCSV(filepath.Join(t.TempDir(), "missing.csv")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestDatasetExtents(t *testing.T) {
	d := loadSample(t)

	if lo, hi := d.TimeRange(); lo != 1 || hi != 2 {
		t.Errorf("expected time range [1,2], got [%d,%d]", lo, hi)
	}
	if w := d.WeightExtent(); w.Lo != 2 || w.Hi != 9 {
		t.Errorf("expected weight extent [2,9], got %v", w)
	}
	if d.WeightMax() != 9 {
		t.Errorf("expected weight max 9, got %v", d.WeightMax())
	}
	env := d.EnvironmentExtent()
	if env.X.Lo != 0 || env.X.Hi != 11 || env.Y.Lo != 0 || env.Y.Hi != 10 {
		t.Errorf("unexpected environment extent %v", env)
	}
	if d.NumClusters() != 2 {
		t.Errorf("expected 2 clusters, got %d", d.NumClusters())
	}
	if d.NumClusterings() != 1 {
		t.Errorf("expected clustering index 1, got %d", d.NumClusterings())
	}
	if d.Population() != 3 {
		t.Errorf("expected population 3, got %d", d.Population())
	}
}

func TestDatasetNextWraps(t *testing.T) {
	d := loadSample(t)
	if got := d.Next(1); got != 2 {
		t.Errorf("expected 2, got %d", got)
	}
	if got := d.Next(2); got != 1 {
		t.Errorf("expected wrap to 1, got %d", got)
	}
}

func TestFeatureExtentIsCached(t *testing.T) {
	d := loadSample(t)

	ext, ok := d.FeatureExtent("average_speed")
	if !ok || ext.Lo != 1 || ext.Hi != 5 {
		t.Fatalf("expected [1,5], got %v (%v)", ext, ok)
	}

	// mutate the backing records; the cached extent must not change
	d.records[0].AverageSpeed = 100
	ext, _ = d.FeatureExtent("average_speed")
	if ext.Hi != 5 {
		t.Errorf("expected cached extent, got %v", ext)
	}

	if _, ok := d.FeatureExtent("unknown"); ok {
		t.Error("expected unknown feature to have no extent")
	}
}

func TestNewEmpty(t *testing.T) {
	if _, err := New(nil); !errors.Is(err, ErrEmpty) {
		t.Errorf("expected ErrEmpty, got %v", err)
	}
}

func TestSnapshot(t *testing.T) {
	d := loadSample(t)

	s := d.Snapshot(1)
	if len(s.IDs) != 3 || s.IDs[0] != "a" || s.IDs[2] != "c" {
		t.Errorf("unexpected ids %v", s.IDs)
	}
	if p := s.Positions["b"]; p.X != 10 || p.Y != 0 {
		t.Errorf("unexpected position of b: %v", p)
	}

	empty := d.Snapshot(42)
	if len(empty.Frame) != 0 || len(empty.Positions) != 0 {
		t.Error("expected empty snapshot for unknown time")
	}
}
