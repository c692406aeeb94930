package calib

import (
	"errors"
	"math"
	"testing"

	"github.com/evannini/bbcal/internal/dataset"
	"github.com/evannini/bbcal/internal/sim"
)

// stubSim is a minimal simulator whose output is the constant value of its
// "bias" parameter, regardless of command or initial state.
type stubSim struct {
	params map[string]float64
	dt     float64
	fail   error
	// every candidate bias value seen by Simulate, in call order
	seen []float64
}

func newStubSim() *stubSim {
	return &stubSim{
		params: map[string]float64{"bias": 0, "other": 1.5},
		dt:     0.05,
	}
}

func (s *stubSim) Param(name string) (float64, bool) {
	v, ok := s.params[name]
	return v, ok
}

func (s *stubSim) SetParam(name string, value float64) { s.params[name] = value }

func (s *stubSim) Dt() float64 { return s.dt }

func (s *stubSim) Simulate(cmd sim.CommandFunc, cmdNoise, outNoise sim.NoiseFunc, nSteps int, init sim.State) (*sim.Trace, error) {
	if s.fail != nil {
		return nil, s.fail
	}
	s.seen = append(s.seen, s.params["bias"])
	trace := &sim.Trace{
		T: make([]float64, nSteps),
		U: make([]float64, nSteps),
		Y: make([]float64, nSteps),
	}
	for i := 0; i < nSteps; i++ {
		trace.T[i] = float64(i) * s.dt
		trace.U[i] = cmd(i)
		trace.Y[i] = s.params["bias"]
	}
	return trace, nil
}

// replaySim echoes back a fixed position trace, converted to meters.
type replaySim struct {
	stubSim
	posCm []float64
}

func (s *replaySim) Simulate(cmd sim.CommandFunc, cmdNoise, outNoise sim.NoiseFunc, nSteps int, init sim.State) (*sim.Trace, error) {
	trace := &sim.Trace{
		T: make([]float64, nSteps),
		U: make([]float64, nSteps),
		Y: make([]float64, nSteps),
	}
	for i := 0; i < nSteps; i++ {
		trace.Y[i] = s.posCm[i] / 100
	}
	return trace, nil
}

func constTable(path string, posCm float64, n int) *dataset.Table {
	t := &dataset.Table{Path: path}
	for i := 0; i < n; i++ {
		t.Theta = append(t.Theta, 0)
		t.Pos = append(t.Pos, posCm)
	}
	return t
}

func TestInitialState(t *testing.T) {
	table := &dataset.Table{Theta: []float64{0, 0}, Pos: []float64{10.0, 10.5}}
	state := InitialState(table, 0.05)
	if math.Abs(state.Pos-0.10) > 1e-12 {
		t.Errorf("Initial position = %f, want 0.10", state.Pos)
	}
	if math.Abs(state.Vel-0.10) > 1e-12 {
		t.Errorf("Initial velocity = %f, want 0.10", state.Vel)
	}
}

func TestEvaluatePerfectSimulatorIsZero(t *testing.T) {
	table := &dataset.Table{
		Theta: []float64{0, 5, 10, 5},
		Pos:   []float64{10.0, 10.5, 11.2, 11.8},
	}
	s := &replaySim{stubSim: *newStubSim(), posCm: table.Pos}
	ev := &Evaluator{Sim: s, Datasets: []*dataset.Table{table}, Names: nil}
	got, err := ev.Evaluate(nil)
	if err != nil {
		t.Fatal(err)
	}
	if got != 0 {
		t.Errorf("Perfect simulator objective = %g, want exactly 0", got)
	}
}

func TestEvaluateSquaredErrorSum(t *testing.T) {
	// bias 0.02 m vs measured 5 cm: per-step error 0.03 m, squared 9e-4.
	s := newStubSim()
	s.params["bias"] = 0.02
	table := constTable("a", 5.0, 4)
	ev := &Evaluator{Sim: s, Datasets: []*dataset.Table{table}, Names: nil}
	got, err := ev.Evaluate(nil)
	if err != nil {
		t.Fatal(err)
	}
	want := 4 * 0.03 * 0.03
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("Objective = %g, want %g", got, want)
	}
}

func TestEvaluateSumNotMean(t *testing.T) {
	s := newStubSim()
	s.params["bias"] = 0.02

	short := constTable("short", 5.0, 10)
	long := constTable("long", 5.0, 20)

	evalWith := func(tables ...*dataset.Table) float64 {
		ev := &Evaluator{Sim: s, Datasets: tables, Names: nil}
		got, err := ev.Evaluate(nil)
		if err != nil {
			t.Fatal(err)
		}
		return got
	}

	fShort := evalWith(short)
	fLong := evalWith(long)
	if math.Abs(fLong-2*fShort) > 1e-12 {
		t.Errorf("Doubling sample count should double the contribution: %g vs 2*%g", fLong, fShort)
	}

	fBoth := evalWith(short, long)
	if math.Abs(fBoth-(fShort+fLong)) > 1e-12 {
		t.Errorf("Multi-dataset objective must be the sum: %g vs %g", fBoth, fShort+fLong)
	}
}

func TestEvaluateWritesOnlyNamedParams(t *testing.T) {
	s := newStubSim()
	ev := &Evaluator{Sim: s, Datasets: []*dataset.Table{constTable("a", 0, 3)}, Names: []string{"bias"}}
	if _, err := ev.Evaluate([]float64{0.07}); err != nil {
		t.Fatal(err)
	}
	if got := s.params["bias"]; got != 0.07 {
		t.Errorf("bias = %f, want 0.07", got)
	}
	if got := s.params["other"]; got != 1.5 {
		t.Errorf("Unnamed parameter was touched: other = %f", got)
	}
}

func TestEvaluateDeterministic(t *testing.T) {
	s := newStubSim()
	ev := &Evaluator{Sim: s, Datasets: []*dataset.Table{constTable("a", 3.0, 8)}, Names: []string{"bias"}}
	a, err := ev.Evaluate([]float64{0.01})
	if err != nil {
		t.Fatal(err)
	}
	b, err := ev.Evaluate([]float64{0.01})
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Errorf("Same inputs gave different objectives: %g vs %g", a, b)
	}
}

func TestEvaluateValueCountMismatch(t *testing.T) {
	ev := &Evaluator{Sim: newStubSim(), Datasets: []*dataset.Table{constTable("a", 0, 2)}, Names: []string{"bias"}}
	if _, err := ev.Evaluate([]float64{1, 2}); err == nil {
		t.Fatal("Expected error for value/name count mismatch")
	}
}

func TestEvaluateSimulationFailurePropagates(t *testing.T) {
	s := newStubSim()
	simErr := errors.New("numerical blow-up")
	s.fail = simErr
	ev := &Evaluator{Sim: s, Datasets: []*dataset.Table{constTable("a", 0, 2)}, Names: nil}
	_, err := ev.Evaluate(nil)
	if !errors.Is(err, simErr) {
		t.Errorf("Expected wrapped simulation error, got %v", err)
	}
}
