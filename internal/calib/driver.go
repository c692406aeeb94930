package calib

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/evannini/bbcal/internal/dataset"
	"github.com/evannini/bbcal/internal/opt"
	"github.com/evannini/bbcal/internal/sim"
)

// Result is the outcome of one calibration run, covering only the optimized
// parameter subset. The simulator is left holding the minimizer's last-tried
// values, which need not equal Values; applying Values is the caller's call.
type Result struct {
	Names       []string  `json:"names"`
	Values      []float64 `json:"values"`
	Objective   float64   `json:"objective"`
	Success     bool      `json:"success"`
	Status      string    `json:"status"`
	Evaluations int       `json:"evaluations"`
}

// Fit searches the named subset of simulator parameters for the values that
// minimize the aggregate squared error over the datasets. The search starts
// from the simulator's current values. bounds may be nil; when given, its
// length must match names, and method/bounds compatibility is the
// optimizer's to enforce, not checked here.
func Fit(simulator sim.Simulator, datasets []*dataset.Table, names []string, optimizer opt.Optimizer,
	bounds *opt.Bounds, cmdNoise, outNoise sim.NoiseFunc) (*Result, error) {
	if len(datasets) == 0 {
		return nil, fmt.Errorf("no datasets to fit against")
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no parameters to optimize")
	}
	if bounds != nil && bounds.Len() != len(names) {
		return nil, fmt.Errorf("bounds length %d does not match %d parameter names", bounds.Len(), len(names))
	}

	x0 := make([]float64, len(names))
	for i, name := range names {
		v, ok := simulator.Param(name)
		if !ok {
			return nil, fmt.Errorf("simulator has no parameter %q", name)
		}
		x0[i] = v
	}

	ev := &Evaluator{
		Sim:      simulator,
		Datasets: datasets,
		Names:    names,
		CmdNoise: cmdNoise,
		OutNoise: outNoise,
	}

	// The optimizer interface takes a plain objective; a simulation failure
	// is recorded here and re-raised after the run, with an infinite cost
	// steering the search away in the meantime.
	var evalErr error
	eval := func(values []float64) float64 {
		f, err := ev.Evaluate(values)
		if err != nil {
			if evalErr == nil {
				evalErr = err
			}
			return math.Inf(1)
		}
		return f
	}

	slog.Info("starting calibration", "params", names, "datasets", len(datasets), "start", x0)

	outcome, err := optimizer.Run(eval, x0, bounds)
	if evalErr != nil {
		return nil, fmt.Errorf("objective evaluation failed: %w", evalErr)
	}
	if err != nil {
		return nil, fmt.Errorf("minimization failed: %w", err)
	}

	slog.Info("calibration finished",
		"objective", outcome.F,
		"converged", outcome.Converged,
		"status", outcome.Status,
		"evaluations", outcome.Evaluations)

	return &Result{
		Names:       names,
		Values:      outcome.X,
		Objective:   outcome.F,
		Success:     outcome.Converged,
		Status:      outcome.Status,
		Evaluations: outcome.Evaluations,
	}, nil
}

// Apply writes the result's values back into the simulator's parameter
// mapping. Useful when the caller accepts the fit.
func (r *Result) Apply(simulator sim.Simulator) {
	for i, name := range r.Names {
		simulator.SetParam(name, r.Values[i])
	}
}
