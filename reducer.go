package keyreduce

import (
	"context"
	"fmt"
	"iter"
	"time"
)

// Logger receives the reducer's log lines. [*log.Logger] implements it.
type Logger interface {
	Printf(format string, v ...any)
}

type discardLogger struct{}

func (discardLogger) Printf(string, ...any) {}

// Progress describes how far a batch has come. It is reported after every
// target.
type Progress struct {
	Done, Total int
	Elapsed     time.Duration
	// Remaining extrapolates the time spent so far over the targets not yet
	// processed.
	Remaining time.Duration
}

// Result describes the reduction of a single target.
type Result struct {
	Target Target
	// Before and After are the lead curve's keyframe counts.
	Before, After int
	// Resampled is the number of averaged keyframes produced by the
	// resampling pass.
	Resampled int
	// Iterations is the number of keyframes the refinement pass copied back.
	Iterations int
	// Capped reports that refinement stopped at the iteration cap while
	// some keyframe was still outside the error threshold.
	Capped  bool
	Elapsed time.Duration
	// Err is set if the target was skipped. Skipped targets are not
	// modified.
	Err error
}

// StepKind tells the steps of a reduction apart.
type StepKind int

const (
	// StepResampled follows the resampling pass of a target.
	StepResampled StepKind = iota + 1
	// StepRefined follows every keyframe the refinement pass copies back.
	StepRefined
	// StepTarget follows the completion of a target, after its curves have
	// been replaced.
	StepTarget
	// StepSkipped follows a target that could not be reduced.
	StepSkipped
)

func (k StepKind) String() string {
	switch k {
	case StepResampled:
		return "resampled"
	case StepRefined:
		return "refined"
	case StepTarget:
		return "target"
	case StepSkipped:
		return "skipped"
	default:
		return fmt.Sprintf("StepKind(%d)", int(k))
	}
}

// Step is a unit of work yielded by [Reducer.Steps].
type Step struct {
	Kind   StepKind
	Target Target

	// Iteration, Index and Delta describe a StepRefined step: the iteration
	// number, starting at 1, the index of the keyframe that was copied back
	// and its error before the copy.
	Iteration int
	Index     int
	Delta     float64

	// Result is set for StepTarget and StepSkipped.
	Result *Result
}

// Reducer reduces the number of keyframes of targets.
type Reducer struct {
	cfg        Config
	log        Logger
	onProgress func(Progress)
	onComplete func([]Result)
	now        func() time.Time
}

// An Option configures a [Reducer].
type Option func(*Reducer)

// WithLogger sets the logger. By default, nothing is logged.
func WithLogger(l Logger) Option {
	return func(r *Reducer) { r.log = l }
}

// WithProgress sets a function to call after every target.
func WithProgress(fn func(Progress)) Option {
	return func(r *Reducer) { r.onProgress = fn }
}

// WithCompletion sets a function to call once a batch has been fully
// processed. It is not called for batches the caller stops early.
func WithCompletion(fn func([]Result)) Option {
	return func(r *Reducer) { r.onComplete = fn }
}

// WithClock sets the source of the current time, which defaults to
// [time.Now].
func WithClock(now func() time.Time) Option {
	return func(r *Reducer) { r.now = now }
}

// NewReducer returns a reducer using cfg.
func NewReducer(cfg Config, opts ...Option) (*Reducer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	r := &Reducer{
		cfg: cfg,
		log: discardLogger{},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Steps returns an iterator that reduces targets, in order, one step at a
// time.
//
// The iterator suspends after the resampling pass of each target, after
// every keyframe the refinement pass copies back, and after each target. A
// target's curves are replaced in one go when its last step completes, so a
// caller that stops iterating early leaves the current target, and all the
// ones after it, untouched.
func (r *Reducer) Steps(targets []Target) iter.Seq[Step] {
	return func(yield func(Step) bool) {
		start := r.now()
		results := make([]Result, 0, len(targets))
		if len(targets) == 0 {
			r.log.Printf("warning: %v", ErrNoTargets)
			r.complete(results)
			return
		}
		r.log.Printf("reducing %d targets", len(targets))
		for i, t := range targets {
			res, ok := r.reduce(t, yield)
			if !ok {
				return
			}
			results = append(results, res)
			r.progress(start, i+1, len(targets))

			kind := StepTarget
			if res.Err != nil {
				kind = StepSkipped
			}
			if !yield(Step{Kind: kind, Target: t, Result: &res}) {
				return
			}
		}
		r.complete(results)
	}
}

// Run reduces targets, draining [Reducer.Steps]. It stops between two steps
// if ctx is done, returning the results gathered so far and ctx's error.
// Once the last target has been reduced, the batch runs to completion.
//
// Targets that cannot be reduced are reported in their Result and do not
// cause Run to fail. An empty batch returns [ErrNoTargets].
func (r *Reducer) Run(ctx context.Context, targets []Target) ([]Result, error) {
	var results []Result
	for s := range r.Steps(targets) {
		if s.Result != nil {
			results = append(results, *s.Result)
		}
		if len(results) == len(targets) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return results, err
		}
	}
	if len(targets) == 0 {
		return nil, ErrNoTargets
	}
	return results, nil
}

// reduce processes a single target. It returns false if yield asked to stop.
func (r *Reducer) reduce(t Target, yield func(Step) bool) (Result, bool) {
	started := r.now()
	res := Result{Target: t}
	p, err := newProcessor(t, r.cfg)
	if err != nil {
		res.Err = fmt.Errorf("reduce %s: %w", t.Name(), err)
		res.Elapsed = r.now().Sub(started)
		r.log.Printf("warning: %v", res.Err)
		return res, true
	}
	res.Before = p.reference().Lead().Len()

	t.BeginBulkUpdate()
	defer t.EndBulkUpdate()

	if r.cfg.resamples() {
		res.Resampled = resample(p, r.cfg.SampleRate)
		if !yield(Step{Kind: StepResampled, Target: t}) {
			return res, false
		}
	}

	ref := newRefiner(p, r.cfg)
	for {
		s, more := ref.step()
		if !more {
			break
		}
		step := Step{
			Kind:      StepRefined,
			Target:    t,
			Iteration: s.iteration,
			Index:     s.index,
			Delta:     s.delta,
		}
		if !yield(step) {
			return res, false
		}
	}
	p.Commit()
	p.publish()
	t.MarkDirty()

	res.After = p.reference().Lead().Len()
	res.Iterations = ref.iterations
	res.Capped = ref.capped
	res.Elapsed = r.now().Sub(started)
	if res.Capped {
		r.log.Printf("warning: %s: stopped after %d iterations", t.Name(), res.Iterations)
	}
	r.log.Printf("reduced %s from %d to %d keyframes in %s", t.Name(), res.Before, res.After, res.Elapsed)
	return res, true
}

func (r *Reducer) progress(start time.Time, done, total int) {
	if r.onProgress == nil {
		return
	}
	elapsed := r.now().Sub(start)
	r.onProgress(Progress{
		Done:      done,
		Total:     total,
		Elapsed:   elapsed,
		Remaining: remaining(elapsed, done, total),
	})
}

func remaining(elapsed time.Duration, done, total int) time.Duration {
	if done == 0 {
		return 0
	}
	return time.Duration(float64(elapsed) / float64(done) * float64(total-done))
}

func (r *Reducer) complete(results []Result) {
	if r.onComplete != nil {
		r.onComplete(results)
	}
}
