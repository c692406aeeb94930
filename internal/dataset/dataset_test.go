package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	content := "LabVIEW Measurement\ttest\nX_Value\tUntitled\tUntitled 1\n" +
		"0\t20.0\t10.0\n" +
		"1\t20.0\t10.5\n" +
		"2\t20.0\t11.2\n"
	table, err := Load(writeFile(t, "test_1_20_out.txt", content))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if table.Len() != 3 {
		t.Fatalf("Expected 3 rows, got %d", table.Len())
	}
	if table.Theta[0] != 20.0 {
		t.Errorf("Expected theta 20.0, got %f", table.Theta[0])
	}
	if table.Pos[1] != 10.5 {
		t.Errorf("Expected pos 10.5, got %f", table.Pos[1])
	}
}

func TestLoadExtraColumnsIgnored(t *testing.T) {
	content := "h1\nh2\n0\t-40.0\t-12.3\t0.001\t99\n1\t-40.0\t-12.0\t0.002\t99\n"
	table, err := Load(writeFile(t, "extra.txt", content))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if table.Len() != 2 {
		t.Fatalf("Expected 2 rows, got %d", table.Len())
	}
	if table.Theta[0] != -40.0 || table.Pos[0] != -12.3 {
		t.Errorf("Unexpected first row: %f %f", table.Theta[0], table.Pos[0])
	}
}

func TestLoadTooFewColumns(t *testing.T) {
	content := "h1\nh2\n0\t20.0\n"
	table, err := Load(writeFile(t, "narrow.txt", content))
	if err == nil {
		t.Fatal("Expected error for 2-column file")
	}
	if !errors.Is(err, &FormatError{}) {
		t.Errorf("Expected FormatError, got %T: %v", err, err)
	}
	if table != nil {
		t.Error("Expected no partial table on format error")
	}
}

func TestLoadNonNumericCell(t *testing.T) {
	content := "h1\nh2\n0\ttwenty\t10.0\n"
	_, err := Load(writeFile(t, "bad.txt", content))
	if !errors.Is(err, &FormatError{}) {
		t.Errorf("Expected FormatError, got %v", err)
	}
}

func TestLoadTimestepGap(t *testing.T) {
	content := "h1\nh2\n0\t1.0\t1.0\n2\t1.0\t1.0\n"
	_, err := Load(writeFile(t, "gap.txt", content))
	if !errors.Is(err, &FormatError{}) {
		t.Errorf("Expected FormatError for timestep gap, got %v", err)
	}
}

func TestLoadEmptyAfterHeader(t *testing.T) {
	_, err := Load(writeFile(t, "empty.txt", "h1\nh2\n"))
	if !errors.Is(err, &FormatError{}) {
		t.Errorf("Expected FormatError for empty file, got %v", err)
	}
}

func TestNormalizeDecimalSep(t *testing.T) {
	path := writeFile(t, "comma.txt", "h1\nh2\n0\t20,0\t10,5\n")
	if err := NormalizeDecimalSep(path); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "h1\nh2\n0\t20.0\t10.5\n"
	if string(data) != want {
		t.Errorf("Normalized content %q, want %q", data, want)
	}

	// Second pass is a no-op.
	if err := NormalizeDecimalSep(path); err != nil {
		t.Fatal(err)
	}
	data2, _ := os.ReadFile(path)
	if string(data2) != want {
		t.Errorf("Normalization not idempotent: %q", data2)
	}
}

func TestNormalizeDecimalSepDir(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.txt", "b.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("1,5\n"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := NormalizeDecimalSepDir(dir); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"a.txt", "b.txt"} {
		data, _ := os.ReadFile(filepath.Join(dir, name))
		if string(data) != "1.5\n" {
			t.Errorf("%s: got %q", name, data)
		}
	}
}
