package keyreduce

import "math"

// segment is the span between two adjacent keyframes.
//
// A Hermite span with tangents m0 and m1 over a duration dt is the same curve
// as a cubic Bézier whose inner control values sit a third of the way along
// the tangents. Because time advances linearly over the span, only the value
// coordinate needs to be stored, as a function of the normalized parameter
// s ∈ [0, 1].
type segment struct {
	t0, dt         float64
	p0, p1, p2, p3 float64
}

func newSegment(a, b Keyframe) segment {
	dt := b.Time - a.Time
	if math.IsInf(a.OutTangent, 0) || math.IsInf(b.InTangent, 0) {
		// Stepped: hold a's value.
		return segment{t0: a.Time, dt: dt, p0: a.Value, p1: a.Value, p2: a.Value, p3: a.Value}
	}
	return segment{
		t0: a.Time,
		dt: dt,
		p0: a.Value,
		p1: a.Value + a.OutTangent*dt/3,
		p2: b.Value - b.InTangent*dt/3,
		p3: b.Value,
	}
}

func (seg segment) param(t float64) float64 {
	return (t - seg.t0) / seg.dt
}

func (seg segment) eval(s float64) float64 {
	if seg.p0 == seg.p1 && seg.p1 == seg.p2 && seg.p2 == seg.p3 {
		return seg.p0
	}
	mt := 1.0 - s
	a := seg.p0 * (mt * mt * mt)
	b := seg.p1 * (mt * mt * 3.0)
	c := seg.p2 * (mt * 3.0)
	d := seg.p3
	return a + (b+(c+d*s)*s)*s
}

// extrema returns the parameters, in increasing order, at which the segment's
// value has a local minimum or maximum strictly inside the segment.
func (seg segment) extrema() ([2]float64, int) {
	var out [2]float64
	var n int
	d0 := seg.p1 - seg.p0
	d1 := seg.p2 - seg.p1
	d2 := seg.p3 - seg.p2
	roots, rn := solveQuadratic(d0, 2*(d1-d0), d0-2*d1+d2)
	for _, s := range roots[:rn] {
		if s > 0 && s < 1 {
			out[n] = s
			n++
		}
	}
	return out, n
}

// solveQuadratic finds real roots of c0 + c1 x + c2 x² = 0, in increasing
// order.
//
// If the equation is nearly linear, it returns the root ignoring the
// quadratic term. When all coefficients are zero, a single 0 is returned.
func solveQuadratic(c0, c1, c2 float64) ([2]float64, int) {
	sc0 := c0 / c2
	sc1 := c1 / c2
	if math.IsInf(sc0, 0) || math.IsInf(sc1, 0) || math.IsNaN(sc0) || math.IsNaN(sc1) {
		// c2 is zero or very small, treat as linear eqn
		root := -c0 / c1
		switch {
		case !math.IsInf(root, 0) && !math.IsNaN(root):
			return [2]float64{root}, 1
		case c0 == 0 && c1 == 0:
			return [2]float64{0}, 1
		default:
			return [2]float64{}, 0
		}
	}
	arg := sc1*sc1 - 4.0*sc0
	var root1 float64
	if math.IsInf(arg, 0) {
		// sc1 * sc1 overflowed. Find one root using sc1 x + x² = 0, the
		// other as sc0 / root1.
		root1 = -sc1
	} else {
		if arg < 0 {
			return [2]float64{}, 0
		} else if arg == 0 {
			return [2]float64{-0.5 * sc1}, 1
		}
		// See https://math.stackexchange.com/questions/866331
		root1 = -0.5 * (sc1 + math.Copysign(math.Sqrt(arg), sc1))
	}
	root2 := sc0 / root1
	if math.IsInf(root2, 0) || math.IsNaN(root2) {
		return [2]float64{root1}, 1
	}
	if root2 > root1 {
		return [2]float64{root1, root2}, 2
	}
	return [2]float64{root2, root1}, 2
}
