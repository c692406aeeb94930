package opt

import (
	"fmt"

	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/optimize"
)

// Method names accepted by NewGonum. Only Nelder-Mead honors bounds; the
// gradient methods reject them with ErrBoundsUnsupported at Run time.
const (
	MethodNelderMead = "neldermead"
	MethodBFGS       = "bfgs"
	MethodCG         = "cg"
)

// Gonum adapts the gonum optimize package to the Optimizer interface.
// Gradient methods use central finite differences, so the objective only
// ever has to provide function values.
type Gonum struct {
	method string
}

// NewGonum creates a gonum-backed local minimizer for the named method.
func NewGonum(method string) (*Gonum, error) {
	switch method {
	case MethodNelderMead, MethodBFGS, MethodCG:
		return &Gonum{method: method}, nil
	default:
		return nil, fmt.Errorf("unknown optimization method %q", method)
	}
}

// Run minimizes eval from x0. With finite bounds and Nelder-Mead the search
// runs in a transformed unconstrained space so every candidate handed to
// eval stays inside the box.
func (g *Gonum) Run(eval func([]float64) float64, x0 []float64, bounds *Bounds) (*Outcome, error) {
	if bounds != nil && bounds.Len() != len(x0) {
		return nil, fmt.Errorf("bounds dimension %d does not match parameter dimension %d", bounds.Len(), len(x0))
	}

	objective := eval
	start := append([]float64(nil), x0...)
	var tr *transform
	if bounds.Constrained() {
		if g.method != MethodNelderMead {
			return nil, fmt.Errorf("method %s: %w", g.method, ErrBoundsUnsupported)
		}
		t := transform{bounds: bounds}
		tr = &t
		objective = func(u []float64) float64 {
			return eval(t.Forward(u))
		}
		start = t.Inverse(start)
	}

	problem := optimize.Problem{Func: objective}
	var method optimize.Method
	switch g.method {
	case MethodNelderMead:
		method = &optimize.NelderMead{}
	case MethodBFGS:
		problem.Grad = func(grad, x []float64) {
			fd.Gradient(grad, objective, x, &fd.Settings{Formula: fd.Central})
		}
		method = &optimize.BFGS{}
	case MethodCG:
		problem.Grad = func(grad, x []float64) {
			fd.Gradient(grad, objective, x, &fd.Settings{Formula: fd.Central})
		}
		method = &optimize.CG{}
	}

	result, err := optimize.Minimize(problem, start, nil, method)
	if result == nil {
		return nil, fmt.Errorf("minimization failed: %w", err)
	}

	best := result.Location.X
	if tr != nil {
		best = tr.Forward(best)
	}
	outcome := &Outcome{
		X:           best,
		F:           result.Location.F,
		Converged:   err == nil && result.Status != optimize.Failure,
		Status:      result.Status.String(),
		Evaluations: result.Stats.FuncEvaluations,
	}
	if err != nil {
		outcome.Status = fmt.Sprintf("%s: %v", outcome.Status, err)
	}
	return outcome, nil
}
