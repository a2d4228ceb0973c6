package keyreduce

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
)

var identity = quat.Number{Real: 1}

func quatDot(a, b quat.Number) float64 {
	return a.Real*b.Real + a.Imag*b.Imag + a.Jmag*b.Jmag + a.Kmag*b.Kmag
}

// normalize returns q scaled to unit length. The zero quaternion normalizes
// to the identity.
func normalize(q quat.Number) quat.Number {
	n := quat.Abs(q)
	if n == 0 || math.IsNaN(n) {
		return identity
	}
	return quat.Scale(1/n, q)
}

// rotationAngle returns the shortest-arc angle, in degrees, between the
// orientations a and b.
func rotationAngle(a, b quat.Number) float64 {
	d := math.Abs(quatDot(normalize(a), normalize(b)))
	return 2 * math.Acos(min(d, 1)) * 180 / math.Pi
}

// accumulateRotation adds q, weighted by w, to the running sum cum. q is
// flipped into the hemisphere of ref first, so that q and -q, which describe
// the same orientation, contribute identically.
func accumulateRotation(cum, q, ref quat.Number, w float64) quat.Number {
	if quatDot(q, ref) < 0 {
		q = quat.Scale(-1, q)
	}
	return quat.Add(cum, quat.Scale(w, q))
}
