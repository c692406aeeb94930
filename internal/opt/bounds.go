package opt

import "math"

// Bounds is a box constraint aligned 1:1 with the optimized parameter
// vector. Use ±Inf for an unbounded side.
type Bounds struct {
	Lower []float64
	Upper []float64
}

// NewBounds creates fully unbounded bounds of dimension n.
func NewBounds(n int) *Bounds {
	b := &Bounds{
		Lower: make([]float64, n),
		Upper: make([]float64, n),
	}
	for i := 0; i < n; i++ {
		b.Lower[i] = math.Inf(-1)
		b.Upper[i] = math.Inf(1)
	}
	return b
}

// Len returns the bound dimension.
func (b *Bounds) Len() int { return len(b.Lower) }

// Constrained reports whether any side of any component is finite.
func (b *Bounds) Constrained() bool {
	if b == nil {
		return false
	}
	for i := range b.Lower {
		if !math.IsInf(b.Lower[i], -1) || !math.IsInf(b.Upper[i], 1) {
			return true
		}
	}
	return false
}

// Clamp projects x into the box, component-wise.
func (b *Bounds) Clamp(x []float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = math.Max(b.Lower[i], math.Min(b.Upper[i], v))
	}
	return out
}

// Contains reports whether x lies inside the box (within tol).
func (b *Bounds) Contains(x []float64, tol float64) bool {
	for i, v := range x {
		if v < b.Lower[i]-tol || v > b.Upper[i]+tol {
			return false
		}
	}
	return true
}

// transform maps an unconstrained search variable u to a candidate x inside
// the box and back, per component:
//
//	both sides finite:  x = lo + (hi-lo)*(sin(u)+1)/2
//	lower only:         x = lo + u^2
//	upper only:         x = hi - u^2
//	unbounded:          x = u
//
// Candidates produced through Forward always satisfy the bounds, so an
// unconstrained method minimizing eval∘Forward searches only feasible
// points.
type transform struct {
	bounds *Bounds
}

// Forward maps u (search space) to x (candidate space).
func (tr transform) Forward(u []float64) []float64 {
	x := make([]float64, len(u))
	for i, ui := range u {
		lo, hi := tr.bounds.Lower[i], tr.bounds.Upper[i]
		switch {
		case !math.IsInf(lo, -1) && !math.IsInf(hi, 1):
			x[i] = lo + (hi-lo)*(math.Sin(ui)+1)/2
		case !math.IsInf(lo, -1):
			x[i] = lo + ui*ui
		case !math.IsInf(hi, 1):
			x[i] = hi - ui*ui
		default:
			x[i] = ui
		}
	}
	return x
}

// Inverse maps a feasible x back to a search-space u. x is clamped into the
// box first so any starting point yields a valid u.
func (tr transform) Inverse(x []float64) []float64 {
	x = tr.bounds.Clamp(x)
	u := make([]float64, len(x))
	for i, xi := range x {
		lo, hi := tr.bounds.Lower[i], tr.bounds.Upper[i]
		switch {
		case !math.IsInf(lo, -1) && !math.IsInf(hi, 1):
			if hi == lo {
				u[i] = 0
				continue
			}
			u[i] = math.Asin(2*(xi-lo)/(hi-lo) - 1)
		case !math.IsInf(lo, -1):
			u[i] = math.Sqrt(xi - lo)
		case !math.IsInf(hi, 1):
			u[i] = math.Sqrt(hi - xi)
		default:
			u[i] = xi
		}
	}
	return u
}
