// Package opt wraps numeric minimization behind a small interface so the
// calibration driver stays independent of the concrete algorithm.
package opt

import "errors"

// ErrBoundsUnsupported is returned by Run when bounds are passed to a
// method that cannot honor them. This is a configuration error: the caller
// picked an incompatible method/bounds combination.
var ErrBoundsUnsupported = errors.New("optimizer method does not support bounds")

// Outcome holds the result of a minimization run.
type Outcome struct {
	X           []float64 // best parameter vector found
	F           float64   // objective value at X
	Converged   bool      // true if the method terminated at a minimum
	Status      string    // method-specific termination status
	Evaluations int       // number of objective evaluations
}

// Optimizer defines a local minimization algorithm.
type Optimizer interface {
	// Run minimizes eval starting from x0. bounds may be nil (fully
	// unbounded); otherwise its length must match x0 and every candidate
	// passed to eval lies inside the box. Run fails with
	// ErrBoundsUnsupported if finite bounds are given to a method that
	// cannot honor them.
	Run(eval func([]float64) float64, x0 []float64, bounds *Bounds) (*Outcome, error)
}
