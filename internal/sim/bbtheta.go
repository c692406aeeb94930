package sim

import (
	"fmt"
	"math"
)

// DefaultDt is the sample period of the lab rig, in seconds.
const DefaultDt = 0.05

// BBTheta simulates a servo-driven ball-and-beam: the commanded angle tilts
// the beam (after a constant mounting offset and servo saturation) and the
// ball rolls along it under gravity against a velocity-power friction term.
// State is integrated with explicit Euler at a fixed sample period.
//
// Parameters (all reachable through the parameter mapping):
//
//	theta_offset  constant angle offset of the servo mount [rad]
//	theta_max     servo saturation angle [rad]
//	kf            friction coefficient
//	ff_pow        friction velocity exponent
//	m             ball mass [kg]
//	jb            ball moment of inertia [kg m^2]
//	r             ball radius [m]
//	l             beam length [m]
//	g             gravity [m/s^2]
type BBTheta struct {
	dt     float64
	params map[string]float64
}

// NewBBTheta creates a ball-and-beam simulator with nominal parameters and
// the given sample period (use DefaultDt for the lab rig).
func NewBBTheta(dt float64) *BBTheta {
	return &BBTheta{
		dt: dt,
		params: map[string]float64{
			"theta_offset": 0.0,
			"theta_max":    50 * math.Pi / 180,
			"kf":           16.4,
			"ff_pow":       2.23,
			"m":            0.14,
			"jb":           8.3e-4,
			"r":            0.015,
			"l":            0.775,
			"g":            9.81,
		},
	}
}

// Param reads a named parameter.
func (s *BBTheta) Param(name string) (float64, bool) {
	v, ok := s.params[name]
	return v, ok
}

// SetParam writes a named parameter. Values are not validated.
func (s *BBTheta) SetParam(name string, value float64) {
	s.params[name] = value
}

// Dt returns the sample period in seconds.
func (s *BBTheta) Dt() float64 {
	return s.dt
}

// Simulate runs nSteps fixed steps from init. Trace entry i records the
// state at the start of step i, so Y[0] equals init.Pos.
func (s *BBTheta) Simulate(cmd CommandFunc, cmdNoise, outNoise NoiseFunc, nSteps int, init State) (*Trace, error) {
	if cmdNoise == nil {
		cmdNoise = NoNoise()
	}
	if outNoise == nil {
		outNoise = NoNoise()
	}

	offset := s.params["theta_offset"]
	thetaMax := s.params["theta_max"]
	kf := s.params["kf"]
	ffPow := s.params["ff_pow"]
	m := s.params["m"]
	jb := s.params["jb"]
	r := s.params["r"]
	l := s.params["l"]
	g := s.params["g"]

	// Effective inertia of a rolling ball along the beam.
	ieff := m + jb/(r*r)

	trace := &Trace{
		T: make([]float64, nSteps),
		U: make([]float64, nSteps),
		Y: make([]float64, nSteps),
	}

	pos := init.Pos
	vel := init.Vel
	for i := 0; i < nSteps; i++ {
		hist := History{T: trace.T[:i], U: trace.U[:i], Y: trace.Y[:i]}
		theta := cmd(i) + cmdNoise(i, s.params, hist, s.dt)
		theta = clamp(theta+offset, -thetaMax, thetaMax)

		trace.T[i] = float64(i) * s.dt
		trace.U[i] = theta
		trace.Y[i] = pos + outNoise(i, s.params, hist, s.dt)

		friction := kf * math.Copysign(math.Pow(math.Abs(vel), ffPow), vel)
		accel := (m*g*math.Sin(theta) - friction) / ieff

		vel += accel * s.dt
		pos += vel * s.dt

		// The ball stops dead at the beam ends.
		if pos <= -l/2 {
			pos = -l / 2
			if vel < 0 {
				vel = 0
			}
		} else if pos >= l/2 {
			pos = l / 2
			if vel > 0 {
				vel = 0
			}
		}

		if math.IsNaN(pos) || math.IsInf(pos, 0) || math.IsNaN(vel) || math.IsInf(vel, 0) {
			return nil, fmt.Errorf("simulation diverged at step %d (pos=%g, vel=%g)", i, pos, vel)
		}
	}

	return trace, nil
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
