// Package signal generates synthetic commanded-angle sequences for lab
// tests and reads/writes them in the rig's comma-decimal file format.
package signal

import "math"

// steps returns the number of samples for a test of duration tMax at
// sample period dt.
func steps(dt, tMax float64) int {
	return int(tMax / dt)
}

// Constant returns a test holding the angle fixed, in degrees.
// offset compensates a constant imperfection of the real rig.
func Constant(angleDeg, dt, tMax, offset float64) []float64 {
	n := steps(dt, tMax)
	theta := make([]float64, n)
	for i := range theta {
		theta[i] = angleDeg + offset
	}
	return theta
}

// Ramp returns a test sweeping linearly from a1 to a2 degrees over tMax.
func Ramp(a1, a2, dt, tMax, offset float64) []float64 {
	n := steps(dt, tMax)
	theta := make([]float64, n)
	if n == 1 {
		theta[0] = a1 + offset
		return theta
	}
	for i := range theta {
		theta[i] = a1 + (a2-a1)*float64(i)/float64(n-1) + offset
	}
	return theta
}

// Sine returns a sinusoidal test with amplitude amp [deg] and period p [s].
func Sine(amp, p, dt, tMax, offset float64) []float64 {
	n := steps(dt, tMax)
	theta := make([]float64, n)
	for i := range theta {
		t := float64(i) * dt
		theta[i] = amp*math.Sin(2*math.Pi/p*t) + offset
	}
	return theta
}

// Steps returns a three-stage test: angle a1 for t1 seconds, a2 for t2
// seconds, then zero for the remaining time. The stages push the ball to
// one side, give it speed, and let it roll free.
func Steps(a1, a2, t1, t2, dt, tMax, offset float64) []float64 {
	n := steps(dt, tMax)
	theta := make([]float64, n)
	n1 := steps(dt, t1)
	n2 := steps(dt, t2)
	for i := range theta {
		switch {
		case i < n1:
			theta[i] = a1
		case i < n1+n2:
			theta[i] = a2
		default:
			theta[i] = 0
		}
		theta[i] += offset
	}
	return theta
}

// SinExp returns a sine of period p [s] with an exponentially growing
// envelope exp(t/7).
func SinExp(p, dt, tMax, offset float64) []float64 {
	n := steps(dt, tMax)
	theta := make([]float64, n)
	for i := range theta {
		t := float64(i) * dt
		theta[i] = math.Sin(t*2*math.Pi/p)*math.Exp(t/7) + offset
	}
	return theta
}
