package keyreduce

import (
	"cmp"
	"fmt"
	"iter"
	"math"
	"slices"
)

// Keyframe is a single sample of a scalar channel.
//
// InTangent and OutTangent are the slopes, in value units per second, with
// which the curve arrives at and leaves the keyframe. An infinite tangent
// holds the previous value until the next keyframe (a stepped segment).
type Keyframe struct {
	Time       float64
	Value      float64
	InTangent  float64
	OutTangent float64
}

// Key returns a keyframe at time t with value v and flat tangents.
func Key(t, v float64) Keyframe {
	return Keyframe{Time: t, Value: v}
}

func (k Keyframe) String() string {
	return fmt.Sprintf("(%g, %g)", k.Time, k.Value)
}

// Curve is an animation channel: a sequence of keyframes sorted by strictly
// increasing time.
//
// Curve values share their backing storage when copied. Use [Curve.Clone] to
// obtain an independent copy.
type Curve struct {
	keys []Keyframe
}

// NewCurve returns a curve holding copies of keys. The keys are sorted by
// time; when several keys share a time, the last one wins.
func NewCurve(keys ...Keyframe) Curve {
	ks := slices.Clone(keys)
	slices.SortStableFunc(ks, func(a, b Keyframe) int {
		return cmp.Compare(a.Time, b.Time)
	})
	out := ks[:0]
	for _, k := range ks {
		if n := len(out); n > 0 && out[n-1].Time == k.Time {
			out[n-1] = k
			continue
		}
		out = append(out, k)
	}
	return Curve{keys: out}
}

func (c *Curve) Len() int {
	return len(c.keys)
}

// Key returns the i'th keyframe.
func (c *Curve) Key(i int) Keyframe {
	return c.keys[i]
}

// Keys returns an iterator over the curve's keyframes and their indices.
func (c *Curve) Keys() iter.Seq2[int, Keyframe] {
	return func(yield func(int, Keyframe) bool) {
		for i, k := range c.keys {
			if !yield(i, k) {
				return
			}
		}
	}
}

// First returns the earliest keyframe. It panics if the curve is empty.
func (c *Curve) First() Keyframe {
	return c.keys[0]
}

// Last returns the latest keyframe. It panics if the curve is empty.
func (c *Curve) Last() Keyframe {
	return c.keys[len(c.keys)-1]
}

// Duration returns the time between the first and last keyframes.
func (c *Curve) Duration() float64 {
	if len(c.keys) < 2 {
		return 0
	}
	return c.Last().Time - c.First().Time
}

// Clone returns a deep copy of the curve.
func (c *Curve) Clone() Curve {
	return Curve{keys: slices.Clone(c.keys)}
}

// Search looks for a keyframe at exactly time t. It returns the keyframe's
// index and true if there is one, or the index at which such a keyframe would
// be inserted and false.
func (c *Curve) Search(t float64) (int, bool) {
	return slices.BinarySearchFunc(c.keys, t, func(k Keyframe, t float64) int {
		return cmp.Compare(k.Time, t)
	})
}

// Nearest returns the index of the keyframe closest in time to t, or -1 if
// the curve is empty. Ties go to the earlier keyframe.
func (c *Curve) Nearest(t float64) int {
	if len(c.keys) == 0 {
		return -1
	}
	i, found := c.Search(t)
	switch {
	case found:
		return i
	case i == 0:
		return 0
	case i == len(c.keys):
		return i - 1
	}
	if t-c.keys[i-1].Time <= c.keys[i].Time-t {
		return i - 1
	}
	return i
}

// Set inserts k, replacing any keyframe at the same time, and returns its
// index.
func (c *Curve) Set(k Keyframe) int {
	i, found := c.Search(k.Time)
	if found {
		c.keys[i] = k
	} else {
		c.keys = slices.Insert(c.keys, i, k)
	}
	return i
}

// Replace replaces the i'th keyframe with k and returns k's new index, which
// differs from i if k's time moves it past a neighbor.
func (c *Curve) Replace(i int, k Keyframe) int {
	if k.Time == c.keys[i].Time {
		c.keys[i] = k
		return i
	}
	c.RemoveAt(i)
	return c.Set(k)
}

// RemoveAt removes the i'th keyframe.
func (c *Curve) RemoveAt(i int) {
	c.keys = slices.Delete(c.keys, i, i+1)
}

// Eval evaluates the curve at time t. Times before the first or after the
// last keyframe evaluate to that keyframe's value. An empty curve evaluates
// to zero.
func (c *Curve) Eval(t float64) float64 {
	n := len(c.keys)
	switch {
	case n == 0:
		return 0
	case t <= c.keys[0].Time:
		return c.keys[0].Value
	case t >= c.keys[n-1].Time:
		return c.keys[n-1].Value
	}
	i, found := c.Search(t)
	if found {
		return c.keys[i].Value
	}
	seg := newSegment(c.keys[i-1], c.keys[i])
	return seg.eval(seg.param(t))
}

// Bounds returns the smallest and largest values the curve takes, including
// any overshoot between keyframes. An empty curve has bounds (0, 0).
func (c *Curve) Bounds() (lo, hi float64) {
	if len(c.keys) == 0 {
		return 0, 0
	}
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, k := range c.keys {
		lo = min(lo, k.Value)
		hi = max(hi, k.Value)
	}
	for i := 1; i < len(c.keys); i++ {
		seg := newSegment(c.keys[i-1], c.keys[i])
		ex, n := seg.extrema()
		for _, s := range ex[:n] {
			v := seg.eval(s)
			lo = min(lo, v)
			hi = max(hi, v)
		}
	}
	return lo, hi
}

// secant returns the slope of the straight line between keyframes i and j.
func (c *Curve) secant(i, j int) float64 {
	a, b := c.keys[i], c.keys[j]
	return (b.Value - a.Value) / (b.Time - a.Time)
}
