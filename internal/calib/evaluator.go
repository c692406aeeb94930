// Package calib scores candidate simulator parameters against recorded
// experiments and drives the search for the best-fitting values.
package calib

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/evannini/bbcal/internal/dataset"
	"github.com/evannini/bbcal/internal/sim"
)

const degToRad = math.Pi / 180

// Evaluator computes the aggregate squared prediction error of a candidate
// parameter vector: it writes the candidate into the simulator's parameter
// mapping and replays every dataset from its own initial condition. The
// simulator's parameters are mutated in place on every call; there is no
// undo.
type Evaluator struct {
	Sim      sim.Simulator
	Datasets []*dataset.Table
	Names    []string // optimized parameter subset, aligned with Evaluate's input
	CmdNoise sim.NoiseFunc
	OutNoise sim.NoiseFunc
}

// InitialState derives a dataset's starting condition: position from the
// first measured sample, velocity from the finite difference of the first
// two, both converted from centimeters to meters.
func InitialState(t *dataset.Table, dt float64) sim.State {
	s := sim.State{Pos: t.Pos[0] / 100}
	if t.Len() > 1 {
		s.Vel = (t.Pos[1] - t.Pos[0]) / 100 / dt
	}
	return s
}

// Evaluate returns the sum over all datasets of the per-step squared error
// between simulated and measured position, in meters. Datasets with more
// samples weigh proportionally more; callers wanting per-dataset
// normalization must pre-normalize themselves. A simulation failure on any
// dataset aborts the whole evaluation.
func (e *Evaluator) Evaluate(values []float64) (float64, error) {
	if len(values) != len(e.Names) {
		return 0, fmt.Errorf("got %d values for %d parameter names", len(values), len(e.Names))
	}
	for i, name := range e.Names {
		e.Sim.SetParam(name, values[i])
	}

	var total float64
	for _, table := range e.Datasets {
		theta := table.Theta
		cmd := func(step int) float64 { return theta[step] * degToRad }

		trace, err := e.Sim.Simulate(cmd, e.CmdNoise, e.OutNoise, table.Len(), InitialState(table, e.Sim.Dt()))
		if err != nil {
			return 0, fmt.Errorf("dataset %s: %w", table.Path, err)
		}

		var sse float64
		for t := 0; t < table.Len(); t++ {
			d := trace.Y[t] - table.Pos[t]/100
			sse += d * d
		}
		total += sse
	}

	// Diagnostic side channel only; nothing depends on this output.
	slog.Debug("objective evaluated",
		"params", values,
		"mean_error_per_dataset", total/float64(len(e.Datasets)))

	return total, nil
}
