package keyreduce

import "fmt"

// A Bucket is an inclusive range [From, To] of reference keyframe indices
// that is still being searched for reconstruction error, together with the
// worst keyframe found in it. Worst is -1 if no keyframe in the range has any
// error.
type Bucket struct {
	From, To   int
	Worst      int
	WorstDelta float64
}

// Len returns the number of candidate keyframes in the bucket.
func (b Bucket) Len() int {
	return max(b.To-b.From+1, 0)
}

// processor adapts the reduction algorithms to one kind of channel set.
//
// A processor holds a reference channel set, which starts out as the
// target's live channels, and at most one branch: a scratch copy that the
// algorithms edit. Commit makes the branch the new reference; publish hands
// the reference back to the target.
type processor interface {
	target() Target
	reference() Channels

	// Branch starts a new branch holding the reference's first and last
	// keyframes.
	Branch()
	// Commit replaces the reference with the branch and drops the branch.
	Commit()
	// CreateBucket scans the reference keyframes from through to for the one
	// the branch reconstructs worst.
	CreateBucket(from, to int) Bucket
	// CopyToBranch copies the i'th reference keyframe into the branch.
	CopyToBranch(i int)
	// AverageToBranch writes into the branch, at time t, the average of the
	// reference keyframes in [from, to), weighted by the time to the
	// following keyframe.
	AverageToBranch(t float64, from, to int)

	publish()
}

type channelSet[C any] interface {
	Channels
	branchSeed() C
}

// branchState implements the bookkeeping shared by all processors.
type branchState[C channelSet[C]] struct {
	tgt    Target
	ref    C
	branch C
}

func (s *branchState[C]) target() Target      { return s.tgt }
func (s *branchState[C]) reference() Channels { return s.ref }

func (s *branchState[C]) Branch() {
	s.branch = s.ref.branchSeed()
}

func (s *branchState[C]) Commit() {
	var zero C
	s.ref = s.branch
	s.branch = zero
}

func (s *branchState[C]) publish() {
	s.tgt.Restore(s.ref)
}

// newProcessor returns the processor for t's kind of channels.
func newProcessor(t Target, cfg Config) (processor, error) {
	switch ch := t.Channels().(type) {
	case *PoseChannels:
		if ch == nil || ch.X.Len() < 2 {
			return nil, ErrTooFewKeyframes
		}
		return &poseProcessor{
			branchState:  branchState[*PoseChannels]{tgt: t, ref: ch},
			positionUnit: cfg.PositionUnit,
			rotationUnit: cfg.RotationUnit,
		}, nil
	case *ScalarChannels:
		if ch == nil || ch.Value.Len() < 2 {
			return nil, ErrTooFewKeyframes
		}
		return &scalarProcessor{
			branchState: branchState[*ScalarChannels]{tgt: t, ref: ch},
			span:        ch.Span(),
			valueUnit:   cfg.ValueUnit,
		}, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrKindMismatch, ch)
	}
}
