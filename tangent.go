package keyreduce

// SmoothTangents gives the i'th keyframe a smooth tangent.
//
// Interior keyframes take the slope of the line through their two neighbors,
// except at local extrema and at the edge of flat stretches, where the slope
// is zero so that the curve does not overshoot the keyframe values. The first
// and last keyframes take the slope towards their only neighbor.
func (c *Curve) SmoothTangents(i int) {
	k := c.keys[i]
	m := c.smoothSlope(i)
	k.InTangent, k.OutTangent = m, m
	c.keys[i] = k
}

func (c *Curve) smoothSlope(i int) float64 {
	n := len(c.keys)
	switch {
	case n < 2:
		return 0
	case i == 0:
		return c.secant(0, 1)
	case i == n-1:
		return c.secant(n-2, n-1)
	}
	if c.secant(i-1, i)*c.secant(i, i+1) <= 0 {
		return 0
	}
	return c.secant(i-1, i+1)
}

// SmoothNeighbors applies [Curve.SmoothTangents] to the i'th keyframe and its
// immediate neighbors, whose smooth tangents depend on it.
func (c *Curve) SmoothNeighbors(i int) {
	for j := max(i-1, 0); j <= min(i+1, len(c.keys)-1); j++ {
		c.SmoothTangents(j)
	}
}

// LinearTangents points the i'th keyframe's tangents straight at its
// neighbors.
func (c *Curve) LinearTangents(i int) {
	n := len(c.keys)
	k := c.keys[i]
	k.InTangent, k.OutTangent = 0, 0
	if i > 0 {
		k.InTangent = c.secant(i-1, i)
	}
	if i < n-1 {
		k.OutTangent = c.secant(i, i+1)
	}
	if i == 0 && n > 1 {
		k.InTangent = k.OutTangent
	}
	if i == n-1 && n > 1 {
		k.OutTangent = k.InTangent
	}
	c.keys[i] = k
}

// FlatTangents zeroes the i'th keyframe's tangents.
func (c *Curve) FlatTangents(i int) {
	c.keys[i].InTangent = 0
	c.keys[i].OutTangent = 0
}

// SmoothAll applies [Curve.SmoothTangents] to every keyframe.
func (c *Curve) SmoothAll() {
	for i := range c.keys {
		c.SmoothTangents(i)
	}
}
