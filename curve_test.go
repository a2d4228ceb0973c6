package keyreduce

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestNewCurveSortsAndDeduplicates(t *testing.T) {
	c := NewCurve(Key(2, 20), Key(0, 0), Key(1, 10), Key(1, 11))
	diff(t, []float64{0, 1, 2}, times(&c))
	diff(t, []float64{0, 11, 20}, values(&c))
}

func TestCurveSet(t *testing.T) {
	c := NewCurve(Key(0, 0), Key(1, 1))
	if i := c.Set(Key(0.5, 3)); i != 1 {
		t.Errorf("got index %d, want 1", i)
	}
	if i := c.Set(Key(0.5, 4)); i != 1 {
		t.Errorf("got index %d, want 1", i)
	}
	if c.Len() != 3 {
		t.Fatalf("got %d keyframes, want 3", c.Len())
	}
	if v := c.Key(1).Value; v != 4 {
		t.Errorf("got value %g, want 4", v)
	}

	c.RemoveAt(1)
	diff(t, []float64{0, 1}, times(&c))
}

func TestCurveReplace(t *testing.T) {
	c := NewCurve(Key(0, 0), Key(1, 1), Key(2, 2))
	if i := c.Replace(1, Key(1, 5)); i != 1 {
		t.Errorf("got index %d, want 1", i)
	}
	if i := c.Replace(0, Key(3, 3)); i != 2 {
		t.Errorf("got index %d, want 2", i)
	}
	diff(t, []float64{1, 2, 3}, times(&c))
}

func TestCurveSearchNearest(t *testing.T) {
	c := NewCurve(Key(0, 0), Key(1, 0), Key(2, 0))
	if i, ok := c.Search(1); !ok || i != 1 {
		t.Errorf("Search(1) = %d, %t", i, ok)
	}
	if i, ok := c.Search(1.5); ok || i != 2 {
		t.Errorf("Search(1.5) = %d, %t", i, ok)
	}

	tests := []struct {
		t    float64
		want int
	}{
		{-1, 0},
		{0.4, 0},
		{0.5, 0},
		{0.6, 1},
		{1.9, 2},
		{5, 2},
	}
	for _, tt := range tests {
		if got := c.Nearest(tt.t); got != tt.want {
			t.Errorf("Nearest(%g) = %d, want %d", tt.t, got, tt.want)
		}
	}

	var empty Curve
	if got := empty.Nearest(0); got != -1 {
		t.Errorf("Nearest on empty curve = %d, want -1", got)
	}
}

func TestCurveEval(t *testing.T) {
	c := NewCurve(Key(0, 0), Key(1, 10))
	c.LinearTangents(0)
	c.LinearTangents(1)

	tests := []struct {
		t, want float64
	}{
		{-1, 0},
		{0, 0},
		{0.25, 2.5},
		{0.5, 5},
		{1, 10},
		{2, 10},
	}
	for _, tt := range tests {
		if got := c.Eval(tt.t); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Eval(%g) = %g, want %g", tt.t, got, tt.want)
		}
	}

	var empty Curve
	if got := empty.Eval(1); got != 0 {
		t.Errorf("empty curve evaluated to %g", got)
	}
}

func TestCurveEvalFlat(t *testing.T) {
	// Flat tangents produce the smoothstep polynomial 3s² - 2s³.
	c := NewCurve(Key(0, 0), Key(1, 1))
	if got, want := c.Eval(0.25), 3.0/16-2.0/64; math.Abs(got-want) > 1e-12 {
		t.Errorf("got %g, want %g", got, want)
	}
}

func TestCurveEvalStepped(t *testing.T) {
	c := NewCurve(Keyframe{Time: 0, Value: 1, OutTangent: math.Inf(1)}, Key(1, 2))
	if got := c.Eval(0.99); got != 1 {
		t.Errorf("got %g, want 1", got)
	}
}

func TestSmoothTangents(t *testing.T) {
	// Collinear keyframes keep the slope of their line.
	ramp := sampled(4, 1, func(t float64) float64 { return 3 * t })
	for i, k := range ramp.Keys() {
		if math.Abs(k.InTangent-3) > 1e-12 || math.Abs(k.OutTangent-3) > 1e-12 {
			t.Errorf("keyframe %d has tangents %g, %g, want 3", i, k.InTangent, k.OutTangent)
		}
	}

	// Extrema are flat.
	peak := NewCurve(Key(0, 0), Key(1, 1), Key(2, 0))
	peak.SmoothAll()
	got := []float64{peak.Key(0).OutTangent, peak.Key(1).InTangent, peak.Key(2).InTangent}
	diff(t, []float64{1, 0, -1}, got)

	// Interior keyframes between a flat stretch and a slope do not overshoot.
	step := NewCurve(Key(0, 0), Key(1, 0), Key(2, 1), Key(3, 1))
	step.SmoothAll()
	lo, hi := step.Bounds()
	diff(t, [2]float64{0, 1}, [2]float64{lo, hi}, cmpopts.EquateApprox(0, 1e-12))
}

func TestSmoothNeighbors(t *testing.T) {
	c := NewCurve(Key(0, 0), Key(2, 0))
	c.SmoothAll()
	i := c.Set(Key(1, 1))
	c.SmoothNeighbors(i)
	got := []float64{c.Key(0).OutTangent, c.Key(1).OutTangent, c.Key(2).InTangent}
	diff(t, []float64{1, 0, -1}, got)
}

func TestCurveBounds(t *testing.T) {
	c := NewCurve(
		Keyframe{Time: 0, Value: 0, OutTangent: 3},
		Keyframe{Time: 1, Value: 0, InTangent: -3},
	)
	lo, hi := c.Bounds()
	diff(t, [2]float64{0, 0.75}, [2]float64{lo, hi}, cmpopts.EquateApprox(0, 1e-12))
}

func TestSolveQuadratic(t *testing.T) {
	// (x - 1)(x - 3) = x² - 4x + 3
	roots, n := solveQuadratic(3, -4, 1)
	diff(t, []float64{1, 3}, roots[:n], cmpopts.EquateApprox(0, 1e-12))

	// 2x + 1 = 0
	roots, n = solveQuadratic(1, 2, 0)
	diff(t, []float64{-0.5}, roots[:n])

	if _, n := solveQuadratic(1, 0, 1); n != 0 {
		t.Errorf("got %d roots for x² + 1, want 0", n)
	}
	if roots, n := solveQuadratic(0, 0, 0); n != 1 || roots[0] != 0 {
		t.Errorf("got %v for the zero polynomial", roots[:n])
	}
}
