package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// NormalizeDecimalSep rewrites a LabVIEW output file in place, replacing
// every "," with ".". The file is assumed to contain commas only as decimal
// separators.
func NormalizeDecimalSep(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	fixed := strings.ReplaceAll(string(data), ",", ".")
	if fixed == string(data) {
		return nil
	}
	if err := os.WriteFile(path, []byte(fixed), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// NormalizeDecimalSepDir applies NormalizeDecimalSep to every regular file
// in dir. Non-data files in the directory get rewritten too, so the
// directory should contain only LabVIEW output files.
func NormalizeDecimalSepDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if err := NormalizeDecimalSep(filepath.Join(dir, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}
