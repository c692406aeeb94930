// Package store persists calibration results on behalf of the CLI. The
// engine itself defines no persistence; this is strictly a caller concern.
package store

import "github.com/evannini/bbcal/internal/calib"

// Store saves and retrieves one calibration result per run ID.
//
// Error handling conventions:
//   - Return nil error on success
//   - Return ErrNotFound if a result doesn't exist (for Load)
//   - Wrap underlying errors with context using fmt.Errorf("context: %w", err)
type Store interface {
	// Save atomically writes the result for the given run, overwriting any
	// previous result under the same ID.
	Save(runID string, result *calib.Result) error

	// Load retrieves the result for the given run.
	// Returns ErrNotFound if no result exists for this runID.
	Load(runID string) (*calib.Result, error)
}

// ErrNotFound is returned when a requested result does not exist.
// Use errors.Is(err, ErrNotFound) to check for this error.
var ErrNotFound = &NotFoundError{}

// NotFoundError represents a missing result error.
type NotFoundError struct {
	RunID string
}

func (e *NotFoundError) Error() string {
	if e.RunID != "" {
		return "result not found: " + e.RunID
	}
	return "result not found"
}

func (e *NotFoundError) Is(target error) bool {
	_, ok := target.(*NotFoundError)
	return ok
}
