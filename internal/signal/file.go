package signal

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Write saves a commanded-angle vector (degrees) in the format the rig's
// acquisition program reads: one %.7e value per line with comma decimal
// separators. Overwrites any existing file at path.
func Write(path string, theta []float64) error {
	var b strings.Builder
	for _, v := range theta {
		fmt.Fprintf(&b, "%.7e\n", v)
	}
	out := strings.ReplaceAll(b.String(), ".", ",")
	if err := os.WriteFile(path, []byte(out), 0644); err != nil {
		return fmt.Errorf("failed to write test file: %w", err)
	}
	return nil
}

// Read parses a test file written by Write back into an angle vector.
func Read(path string) ([]float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read test file: %w", err)
	}
	var theta []float64
	for _, field := range strings.Fields(string(data)) {
		v, err := strconv.ParseFloat(strings.ReplaceAll(field, ",", "."), 64)
		if err != nil {
			return nil, fmt.Errorf("bad value %q in %s: %w", field, path, err)
		}
		theta = append(theta, v)
	}
	return theta, nil
}
