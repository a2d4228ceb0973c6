package keyreduce

// resample replaces p's reference with one averaged keyframe per window of
// width 1/rate, keeping the first and last keyframes as they are. It returns
// the number of averaged keyframes written.
//
// Windows are centered on t0 + i/rate for i ≥ 1, where t0 is the time of the
// first keyframe, up to the last keyframe, and cover [t-Δ/2, t+Δ/2). The last
// keyframe is never averaged into a window, and windows without any keyframe
// in them produce nothing.
func resample(p processor, rate float64) int {
	lead := p.reference().Lead()
	n := lead.Len()
	step := 1 / rate
	half := step / 2
	t0, end := lead.First().Time, lead.Last().Time

	p.Branch()
	written := 0
	from := 0
	for i := 1; ; i++ {
		t := t0 + float64(i)*step
		if !(t < end) {
			break
		}
		for from < n-1 && lead.Key(from).Time < t-half {
			from++
		}
		to := from
		for to < n-1 && lead.Key(to).Time < t+half {
			to++
		}
		if to > from {
			p.AverageToBranch(t, from, to)
			written++
		}
	}
	p.Commit()
	return written
}
