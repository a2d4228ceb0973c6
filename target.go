package keyreduce

import "fmt"

// Target is an animated quantity owned by the caller, such as a controller
// or a parameter of a clip. The reduction reads a target's channels, and
// replaces them exactly once per reduction through Restore.
type Target interface {
	Name() string
	// Channels returns the live channel set. The reduction never modifies it
	// in place.
	Channels() Channels
	// Restore replaces the live channel set with c, which has the same kind.
	Restore(c Channels)
	// BeginBulkUpdate and EndBulkUpdate bracket a series of edits. Targets
	// may defer change notifications until the outermost EndBulkUpdate.
	BeginBulkUpdate()
	EndBulkUpdate()
	// MarkDirty records that the target's curves have changed.
	MarkDirty()
}

// Track is an in-memory [Target].
type Track struct {
	// OnChange, if set, is called whenever the track is marked dirty outside
	// of a bulk update, and once at the end of a bulk update during which it
	// was marked dirty.
	OnChange func(*Track)

	name     string
	channels Channels
	bulk     int
	dirty    bool
	pending  bool
	revision int
}

var _ Target = (*Track)(nil)

// NewTrack returns a track animated by ch.
func NewTrack(name string, ch Channels) *Track {
	return &Track{name: name, channels: ch}
}

func (t *Track) Name() string { return t.name }
func (t *Track) Channels() Channels { return t.channels }
func (t *Track) Kind() TargetKind { return t.channels.Kind() }

// Restore implements [Target]. It panics if c is of a different kind than
// the track's channels.
func (t *Track) Restore(c Channels) {
	if c.Kind() != t.channels.Kind() {
		panic(fmt.Sprintf("%v: cannot restore %s channels onto %s track %q", ErrKindMismatch, c.Kind(), t.channels.Kind(), t.name))
	}
	t.channels = c
}

func (t *Track) BeginBulkUpdate() {
	t.bulk++
}

// EndBulkUpdate implements [Target]. It panics if there is no bulk update in
// progress.
func (t *Track) EndBulkUpdate() {
	if t.bulk == 0 {
		panic("EndBulkUpdate called without matching BeginBulkUpdate")
	}
	t.bulk--
	if t.bulk == 0 && t.pending {
		t.pending = false
		t.notify()
	}
}

func (t *Track) MarkDirty() {
	t.dirty = true
	if t.bulk > 0 {
		t.pending = true
		return
	}
	t.notify()
}

// Dirty reports whether the track has been marked dirty since the last call
// to ClearDirty.
func (t *Track) Dirty() bool { return t.dirty }

func (t *Track) ClearDirty() { t.dirty = false }

// Revision counts change notifications.
func (t *Track) Revision() int { return t.revision }

func (t *Track) notify() {
	t.revision++
	if t.OnChange != nil {
		t.OnChange(t)
	}
}
