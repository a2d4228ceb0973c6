package keyreduce

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestResamplePoseDensity(t *testing.T) {
	ch := posePath(200, 2)
	p, err := newProcessor(NewTrack("hand", ch), DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if n := resample(p, 10); n != 19 {
		t.Errorf("wrote %d keyframes, want 19", n)
	}
	ref := p.reference().(*PoseChannels)
	for i, c := range ref.Curves() {
		if c.Len() != 21 {
			t.Errorf("curve %d: got %d keyframes, want 21", i, c.Len())
		}
	}
	want := make([]float64, 21)
	for i := range want {
		want[i] = float64(i) / 10
	}
	diff(t, want, times(&ref.X), cmpopts.EquateApprox(0, 1e-9))

	// The live channels are left alone.
	if ch.X.Len() != 201 {
		t.Errorf("resampling modified the target: %d keyframes", ch.X.Len())
	}
	if ref.X.First().Value != ch.X.First().Value || ref.RotW.Last().Value != ch.RotW.Last().Value {
		t.Error("endpoints were not copied")
	}
}

func TestResampleRotationStaysNormalized(t *testing.T) {
	ch := posePath(200, 2)
	p, err := newProcessor(NewTrack("hand", ch), DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	resample(p, 10)
	ref := p.reference().(*PoseChannels)
	for i := range ref.X.Len() {
		q := ref.Rotation(i)
		if n := math.Sqrt(quatDot(q, q)); math.Abs(n-1) > 1e-9 {
			t.Errorf("keyframe %d: rotation has norm %g", i, n)
		}
	}
}

func TestResampleWeightedAverage(t *testing.T) {
	ch := &ScalarChannels{
		Value: NewCurve(Key(0, 0), Key(0.5, 4), Key(0.52, 8), Key(1, 0)),
		Max:   10,
	}
	p, err := newProcessor(NewTrack("weight", ch), DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	// Only the window around 0.5 holds any keyframes.
	if n := resample(p, 10); n != 1 {
		t.Errorf("wrote %d keyframes, want 1", n)
	}
	ref := p.reference().(*ScalarChannels)
	approx := cmpopts.EquateApprox(0, 1e-9)
	diff(t, []float64{0, 0.5, 1}, times(&ref.Value), approx)
	diff(t, []float64{0, 7.84, 0}, values(&ref.Value), approx)
}

func TestResampleShortCurve(t *testing.T) {
	ch := &ScalarChannels{Value: NewCurve(Key(0, 1), Key(0.08, 2))}
	p, err := newProcessor(NewTrack("weight", ch), DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if n := resample(p, 10); n != 0 {
		t.Errorf("wrote %d keyframes, want 0", n)
	}
	diff(t, []float64{0, 0.08}, times(&p.reference().(*ScalarChannels).Value))
}

func TestResampleCoversTail(t *testing.T) {
	// 1.04s is not a multiple of the window width; the keyframes after the
	// last full window must still be averaged.
	ch := &ScalarChannels{
		Value: sampled(104, 1.04, func(t float64) float64 {
			if math.Abs(t-0.99) < 1e-9 {
				return 100
			}
			return 0
		}),
		Max: 100,
	}
	p, err := newProcessor(NewTrack("weight", ch), DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if n := resample(p, 10); n != 10 {
		t.Errorf("wrote %d keyframes, want 10", n)
	}
	ref := p.reference().Lead()
	want := []float64{0, 0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1, 1.04}
	diff(t, want, times(ref), cmpopts.EquateApprox(0, 1e-9))
	if ref.Len() != len(want) {
		t.FailNow()
	}
	if v := ref.Key(10).Value; v < 9 || v > 12.5 {
		t.Errorf("got %g at 1.0, want about 11", v)
	}
	if k := ref.Last(); k.Time != ch.Value.Last().Time || k.Value != 0 {
		t.Errorf("got last keyframe %v", k)
	}
}
