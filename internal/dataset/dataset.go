package dataset

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// headerLines is the number of leading lines LabVIEW writes before the data rows.
const headerLines = 2

// Table holds one recorded experiment: commanded servo angle and measured
// ball position, one row per timestep. Rows are implicitly spaced by the
// simulator's sample period. Immutable after Load.
type Table struct {
	Path  string
	Theta []float64 // commanded angle [deg]
	Pos   []float64 // measured position [cm]
}

// Len returns the number of samples in the table.
func (t *Table) Len() int { return len(t.Pos) }

// FormatError reports a dataset file that violates the expected layout
// (tab-separated, two header lines, at least three numeric columns,
// timestep index equal to the row ordinal).
type FormatError struct {
	Path string
	Line int
	Msg  string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("dataset %s: line %d: %s", e.Path, e.Line, e.Msg)
}

func (e *FormatError) Is(target error) bool {
	_, ok := target.(*FormatError)
	return ok
}

// Load parses a locale-normalized LabVIEW output file into a Table.
// The file must use decimal points; run NormalizeDecimalSep first if it
// still carries comma separators. Malformed input is a hard error: no
// partial table is returned.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	t := &Table{Path: path}
	scanner := bufio.NewScanner(f)
	line := 0
	row := 0
	for scanner.Scan() {
		line++
		if line <= headerLines {
			continue
		}
		text := strings.TrimRight(scanner.Text(), "\r\n")
		if strings.TrimSpace(text) == "" {
			continue
		}
		fields := strings.Split(text, "\t")
		if len(fields) < 3 {
			return nil, &FormatError{Path: path, Line: line, Msg: fmt.Sprintf("expected at least 3 columns, got %d", len(fields))}
		}
		step, err := strconv.Atoi(strings.TrimSpace(fields[0]))
		if err != nil {
			return nil, &FormatError{Path: path, Line: line, Msg: fmt.Sprintf("bad timestep %q", fields[0])}
		}
		if step != row {
			return nil, &FormatError{Path: path, Line: line, Msg: fmt.Sprintf("timestep %d does not match row ordinal %d", step, row)}
		}
		theta, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
		if err != nil {
			return nil, &FormatError{Path: path, Line: line, Msg: fmt.Sprintf("bad commanded angle %q", fields[1])}
		}
		pos, err := strconv.ParseFloat(strings.TrimSpace(fields[2]), 64)
		if err != nil {
			return nil, &FormatError{Path: path, Line: line, Msg: fmt.Sprintf("bad measured position %q", fields[2])}
		}
		t.Theta = append(t.Theta, theta)
		t.Pos = append(t.Pos, pos)
		row++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}
	if t.Len() == 0 {
		return nil, &FormatError{Path: path, Line: line, Msg: "no data rows after header"}
	}
	return t, nil
}

// LoadAll loads every path in order. The first failure aborts the whole load.
func LoadAll(paths []string) ([]*Table, error) {
	tables := make([]*Table, 0, len(paths))
	for _, p := range paths {
		t, err := Load(p)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return tables, nil
}
