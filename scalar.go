package keyreduce

import "math"

type scalarProcessor struct {
	branchState[*ScalarChannels]
	span      float64
	valueUnit float64
}

func (p *scalarProcessor) CreateBucket(from, to int) Bucket {
	b := Bucket{From: from, To: to, Worst: -1}
	for i := from; i <= to; i++ {
		t := p.ref.Value.Key(i).Time
		delta := math.Abs(p.branch.Value.Eval(t)-p.ref.Value.Eval(t)) / p.span / p.valueUnit
		if delta > b.WorstDelta {
			b.WorstDelta = delta
			b.Worst = i
		}
	}
	return b
}

func (p *scalarProcessor) CopyToBranch(i int) {
	k := p.branch.Value.Set(Key(p.ref.Value.Key(i).Time, p.ref.Value.Key(i).Value))
	p.branch.Value.SmoothNeighbors(k)
}

func (p *scalarProcessor) AverageToBranch(t float64, from, to int) {
	var sum, total float64
	for k := from; k < to; k++ {
		a, b := p.ref.Value.Key(k), p.ref.Value.Key(k+1)
		d := b.Time - a.Time
		sum += a.Value * d
		total += d
	}
	k := p.branch.Value.Set(Key(t, sum/total))
	p.branch.Value.SmoothNeighbors(k)
}
