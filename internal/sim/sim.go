// Package sim defines the simulator contract consumed by the calibration
// engine and provides a reference ball-and-beam implementation.
package sim

// CommandFunc returns the commanded servo angle at a timestep, in radians.
type CommandFunc func(step int) float64

// History is a read-only view of the trace accumulated so far during a
// simulation, passed to noise functions. At step n the slices hold the
// first n completed steps.
type History struct {
	T []float64 // time [s]
	U []float64 // effective command [rad]
	Y []float64 // output position [m]
}

// NoiseFunc returns an additive perturbation for one step. Command noise is
// added to the commanded angle before stepping, output noise to the
// computed position after stepping.
type NoiseFunc func(step int, params map[string]float64, hist History, dt float64) float64

// Trace holds the aligned buffers produced by a simulation run. Each slice
// has one entry per executed step.
type Trace struct {
	T []float64 // time [s]
	U []float64 // effective command [rad]
	Y []float64 // output position [m]
}

// State is the simulator's initial condition.
type State struct {
	Pos float64 // [m]
	Vel float64 // [m/s]
}

// Simulator is the external contract the calibration engine relies on:
// a named scalar parameter mapping and a fixed-step replay operation.
// Parameter values are not validated; out-of-range values are the
// caller's responsibility.
type Simulator interface {
	// Param reads a named parameter. The second return is false if the
	// name is unknown.
	Param(name string) (float64, bool)
	// SetParam writes a named parameter in place. There is no undo.
	SetParam(name string, value float64)
	// Dt returns the fixed sample period, in seconds.
	Dt() float64
	// Simulate runs exactly nSteps discrete steps from init. At each step
	// the effective command is cmd(step) + cmdNoise(...), and outNoise(...)
	// is added to the computed output. Any internal failure aborts the run
	// with an error; the returned trace is nil in that case.
	Simulate(cmd CommandFunc, cmdNoise, outNoise NoiseFunc, nSteps int, init State) (*Trace, error)
}
