package keyreduce

import "slices"

// refiner greedily copies reference keyframes back into a branch that starts
// out with only the first and last keyframes, always picking the keyframe the
// branch currently reconstructs worst.
//
// The search is organized in buckets. Initially a single bucket covers every
// interior keyframe. Each step picks the bucket with the largest error,
// copies its worst keyframe into the branch and replaces the bucket with the
// two ranges on either side of that keyframe, rescanned against the updated
// branch.
type refiner struct {
	p             processor
	threshold     float64
	minBucket     int
	maxIterations int

	buckets    []Bucket
	iterations int
	capped     bool
}

type refineStep struct {
	iteration int
	index     int
	delta     float64
}

// newRefiner starts a branch on p and scans it.
func newRefiner(p processor, cfg Config) *refiner {
	lead := p.reference().Lead()
	r := &refiner{
		p:             p,
		threshold:     cfg.Threshold,
		minBucket:     cfg.MinBucketSize,
		maxIterations: cfg.maxIterations(lead.Duration()),
	}
	p.Branch()
	if n := lead.Len(); n > 2 {
		r.buckets = []Bucket{p.CreateBucket(1, n-2)}
	}
	return r
}

// split inserts, at position at of bs, a freshly scanned bucket for
// [from, to] if it holds at least minBucket candidates.
func (r *refiner) split(bs []Bucket, at, from, to int) []Bucket {
	if to-from+1 < r.minBucket || to < from {
		return bs
	}
	return slices.Insert(bs, at, r.p.CreateBucket(from, to))
}

// worst returns the index of the bucket with the largest error, or -1 if no
// bucket has any.
func (r *refiner) worst() int {
	idx := -1
	var largest float64
	for i, b := range r.buckets {
		if b.Worst != -1 && b.WorstDelta > largest {
			largest = b.WorstDelta
			idx = i
		}
	}
	return idx
}

// step performs one iteration. It returns false once every bucket is within
// the threshold or the iteration cap has been reached; r.capped tells the
// two apart.
func (r *refiner) step() (refineStep, bool) {
	bi := r.worst()
	if bi == -1 || r.buckets[bi].WorstDelta < r.threshold {
		return refineStep{}, false
	}
	if r.iterations >= r.maxIterations {
		r.capped = true
		return refineStep{}, false
	}

	b := r.buckets[bi]
	r.p.CopyToBranch(b.Worst)
	r.buckets = slices.Delete(r.buckets, bi, bi+1)
	r.buckets = r.split(r.buckets, bi, b.Worst+1, b.To)
	r.buckets = r.split(r.buckets, bi, b.From, b.Worst-1)
	r.iterations++
	return refineStep{iteration: r.iterations, index: b.Worst, delta: b.WorstDelta}, true
}

// pending returns the buckets still under consideration.
func (r *refiner) pending() []Bucket {
	return r.buckets
}
