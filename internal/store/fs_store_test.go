package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/evannini/bbcal/internal/calib"
)

func testResult() *calib.Result {
	return &calib.Result{
		Names:       []string{"theta_offset", "kf"},
		Values:      []float64{-0.1077, 16.35},
		Objective:   0.042,
		Success:     true,
		Status:      "FunctionConvergence",
		Evaluations: 312,
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	fs, err := NewFSStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	want := testResult()
	if err := fs.Save("run-1", want); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	got, err := fs.Load("run-1")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got.Objective != want.Objective || got.Success != want.Success || got.Status != want.Status {
		t.Errorf("Loaded result differs: %+v", got)
	}
	if len(got.Names) != 2 || got.Names[0] != "theta_offset" {
		t.Errorf("Names not preserved: %v", got.Names)
	}
	if got.Values[1] != 16.35 {
		t.Errorf("Values not preserved: %v", got.Values)
	}
}

func TestLoadMissing(t *testing.T) {
	fs, err := NewFSStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	_, err = fs.Load("nope")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestSaveOverwrites(t *testing.T) {
	fs, err := NewFSStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	first := testResult()
	if err := fs.Save("run-1", first); err != nil {
		t.Fatal(err)
	}
	second := testResult()
	second.Objective = 0.001
	if err := fs.Save("run-1", second); err != nil {
		t.Fatal(err)
	}
	got, err := fs.Load("run-1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Objective != 0.001 {
		t.Errorf("Overwrite not visible: %f", got.Objective)
	}
}

func TestSaveValidation(t *testing.T) {
	fs, err := NewFSStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := fs.Save("", testResult()); err == nil {
		t.Error("Expected error for empty runID")
	}
	if err := fs.Save("run-1", nil); err == nil {
		t.Error("Expected error for nil result")
	}
}

func TestSaveLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	fs, err := NewFSStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := fs.Save("run-1", testResult()); err != nil {
		t.Fatal(err)
	}
	entries, err := os.ReadDir(filepath.Join(dir, "runs", "run-1"))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "result.json" {
		t.Errorf("Unexpected run directory contents: %v", entries)
	}
}
