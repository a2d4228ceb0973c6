package keyreduce

import (
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

type poseProcessor struct {
	branchState[*PoseChannels]
	positionUnit float64
	rotationUnit float64
}

// delta returns the normalized error of the branch at time t: the distance
// between positions in position units plus the angle between orientations
// in rotation units.
func (p *poseProcessor) delta(t float64) float64 {
	d := r3.Norm(r3.Sub(p.branch.EvalPosition(t), p.ref.EvalPosition(t)))
	a := rotationAngle(p.branch.EvalRotation(t), p.ref.EvalRotation(t))
	return d/p.positionUnit + a/p.rotationUnit
}

func (p *poseProcessor) CreateBucket(from, to int) Bucket {
	b := Bucket{From: from, To: to, Worst: -1}
	for i := from; i <= to; i++ {
		if delta := p.delta(p.ref.X.Key(i).Time); delta > b.WorstDelta {
			b.WorstDelta = delta
			b.Worst = i
		}
	}
	return b
}

func (p *poseProcessor) CopyToBranch(i int) {
	t := p.ref.X.Key(i).Time
	dst := p.branch.Curves()
	for j, c := range p.ref.Curves() {
		k := dst[j].Set(Key(t, c.Eval(t)))
		dst[j].SmoothNeighbors(k)
	}
}

func (p *poseProcessor) AverageToBranch(t float64, from, to int) {
	lead := &p.ref.X
	span := lead.Key(to).Time - lead.Key(from).Time
	first := p.ref.Rotation(from)
	var pos r3.Vec
	var rot quat.Number
	for k := from; k < to; k++ {
		w := (lead.Key(k+1).Time - lead.Key(k).Time) / span
		pos = r3.Add(pos, r3.Scale(w, p.ref.Position(k)))
		rot = accumulateRotation(rot, p.ref.Rotation(k), first, w)
	}
	p.branch.SetPose(t, pos, normalize(rot))
}
