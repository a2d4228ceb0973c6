package keyreduce

import (
	"iter"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gonum.org/v1/gonum/num/quat"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

// sampled returns a curve with n+1 evenly spaced keyframes over [0, dur].
func sampled(n int, dur float64, f func(t float64) float64) Curve {
	keys := make([]Keyframe, n+1)
	for i := range keys {
		t := float64(i) * dur / float64(n)
		keys[i] = Key(t, f(t))
	}
	c := NewCurve(keys...)
	c.SmoothAll()
	return c
}

func constant(v float64) func(float64) float64 {
	return func(float64) float64 { return v }
}

func times(c *Curve) []float64 {
	var out []float64
	for _, k := range c.Keys() {
		out = append(out, k.Time)
	}
	return out
}

func values(c *Curve) []float64 {
	var out []float64
	for _, k := range c.Keys() {
		out = append(out, k.Value)
	}
	return out
}

func collect(seq iter.Seq[Step]) []Step {
	var out []Step
	for s := range seq {
		out = append(out, s)
	}
	return out
}

// posePath returns pose channels with n+1 evenly spaced keyframes over
// [0, dur], moving along X while turning 45 degrees per second around Y.
func posePath(n int, dur float64) *PoseChannels {
	ch := &PoseChannels{}
	rot := func(t float64) quat.Number { return aroundY(45 * t) }
	ch.X = sampled(n, dur, func(t float64) float64 { return t })
	ch.Y = sampled(n, dur, constant(0))
	ch.Z = sampled(n, dur, func(t float64) float64 { return 0.5 * t * t })
	ch.RotX = sampled(n, dur, func(t float64) float64 { return rot(t).Imag })
	ch.RotY = sampled(n, dur, func(t float64) float64 { return rot(t).Jmag })
	ch.RotZ = sampled(n, dur, func(t float64) float64 { return rot(t).Kmag })
	ch.RotW = sampled(n, dur, func(t float64) float64 { return rot(t).Real })
	return ch
}
