package keyreduce

import (
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// TargetKind identifies the kind of channel set a target animates.
type TargetKind int

const (
	// PoseKind targets animate a position and an orientation.
	PoseKind TargetKind = iota + 1
	// ScalarKind targets animate a single value.
	ScalarKind
)

func (k TargetKind) String() string {
	switch k {
	case PoseKind:
		return "pose"
	case ScalarKind:
		return "scalar"
	default:
		return "unknown"
	}
}

// Channels is the set of curves animating one target. It is implemented by
// [*PoseChannels] and [*ScalarChannels] only.
type Channels interface {
	Kind() TargetKind
	// Lead returns the curve whose keyframe times are the canonical sample
	// points of the set.
	Lead() *Curve
	// Curves returns every curve of the set, lead first.
	Curves() []*Curve
	// Clone returns a deep copy of the set.
	Clone() Channels

	channels()
}

// PoseChannels animates a position (X, Y, Z) and an orientation quaternion
// (RotX, RotY, RotZ, RotW). X is the lead curve; the other channels are
// expected to have keyframes at the same times.
type PoseChannels struct {
	X, Y, Z                Curve
	RotX, RotY, RotZ, RotW Curve
}

var _ Channels = (*PoseChannels)(nil)

func (*PoseChannels) Kind() TargetKind { return PoseKind }
func (p *PoseChannels) Lead() *Curve { return &p.X }
func (*PoseChannels) channels() {}

func (p *PoseChannels) Curves() []*Curve {
	return []*Curve{&p.X, &p.Y, &p.Z, &p.RotX, &p.RotY, &p.RotZ, &p.RotW}
}

func (p *PoseChannels) Clone() Channels {
	return p.clone()
}

func (p *PoseChannels) clone() *PoseChannels {
	return &PoseChannels{
		X:    p.X.Clone(),
		Y:    p.Y.Clone(),
		Z:    p.Z.Clone(),
		RotX: p.RotX.Clone(),
		RotY: p.RotY.Clone(),
		RotZ: p.RotZ.Clone(),
		RotW: p.RotW.Clone(),
	}
}

// branchSeed returns a copy of the set reduced to the first and last keyframe
// of every channel, with smooth tangents.
func (p *PoseChannels) branchSeed() *PoseChannels {
	out := &PoseChannels{}
	seedCurves(out.Curves(), p.Curves())
	return out
}

// EvalPosition evaluates the position channels at time t.
func (p *PoseChannels) EvalPosition(t float64) r3.Vec {
	return r3.Vec{X: p.X.Eval(t), Y: p.Y.Eval(t), Z: p.Z.Eval(t)}
}

// EvalRotation evaluates the orientation channels at time t. The result is
// not normalized.
func (p *PoseChannels) EvalRotation(t float64) quat.Number {
	return quat.Number{
		Real: p.RotW.Eval(t),
		Imag: p.RotX.Eval(t),
		Jmag: p.RotY.Eval(t),
		Kmag: p.RotZ.Eval(t),
	}
}

// Position returns the position at the time of the i'th lead keyframe.
func (p *PoseChannels) Position(i int) r3.Vec {
	return p.EvalPosition(p.X.Key(i).Time)
}

// Rotation returns the orientation at the time of the i'th lead keyframe.
func (p *PoseChannels) Rotation(i int) quat.Number {
	return p.EvalRotation(p.X.Key(i).Time)
}

// SetPose writes a keyframe at time t into all seven channels, smoothing the
// tangents around it, and returns its index in the lead curve.
func (p *PoseChannels) SetPose(t float64, pos r3.Vec, rot quat.Number) int {
	values := [...]float64{pos.X, pos.Y, pos.Z, rot.Imag, rot.Jmag, rot.Kmag, rot.Real}
	lead := -1
	for i, c := range p.Curves() {
		j := c.Set(Key(t, values[i]))
		c.SmoothNeighbors(j)
		if i == 0 {
			lead = j
		}
	}
	return lead
}

// ScalarChannels animates a single value. Min and Max describe the range
// the value is meant to span; the reduction uses it to normalize errors.
type ScalarChannels struct {
	Value    Curve
	Min, Max float64
}

var _ Channels = (*ScalarChannels)(nil)

func (*ScalarChannels) Kind() TargetKind { return ScalarKind }
func (s *ScalarChannels) Lead() *Curve { return &s.Value }
func (s *ScalarChannels) Curves() []*Curve {
	return []*Curve{&s.Value}
}
func (*ScalarChannels) channels() {}

func (s *ScalarChannels) Clone() Channels {
	return s.clone()
}

func (s *ScalarChannels) clone() *ScalarChannels {
	return &ScalarChannels{Value: s.Value.Clone(), Min: s.Min, Max: s.Max}
}

func (s *ScalarChannels) branchSeed() *ScalarChannels {
	out := &ScalarChannels{Min: s.Min, Max: s.Max}
	seedCurves(out.Curves(), s.Curves())
	return out
}

// Span returns the width of the value range used for error normalization.
// An empty or inverted range falls back to the curve's own bounds, and a
// constant curve to 1.
func (s *ScalarChannels) Span() float64 {
	if span := s.Max - s.Min; span > 0 {
		return span
	}
	lo, hi := s.Value.Bounds()
	if span := hi - lo; span > 0 {
		return span
	}
	return 1
}

func seedCurves(dst, src []*Curve) {
	for i, c := range src {
		if c.Len() == 0 {
			continue
		}
		dst[i].Set(c.First())
		dst[i].Set(c.Last())
		dst[i].SmoothAll()
	}
}
