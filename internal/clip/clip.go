// Package clip reads and writes animation clips as JSON documents,
// optionally compressed with zstd.
package clip

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"

	"honnef.co/go/keyreduce"
)

// ErrUnknownKind is returned for targets whose kind is neither "pose" nor
// "scalar".
var ErrUnknownKind = errors.New("unknown target kind")

// Document is the on-disk form of a clip.
type Document struct {
	Name    string   `json:"name"`
	Targets []Target `json:"targets"`
}

// Target is the on-disk form of a target. Channels maps channel names to
// keyframes; pose targets use x, y, z, rot_x, rot_y, rot_z and rot_w, scalar
// targets use value.
type Target struct {
	Name     string                `json:"name"`
	Kind     string                `json:"kind"`
	Min      float64               `json:"min,omitempty"`
	Max      float64               `json:"max,omitempty"`
	Tangents string                `json:"tangents,omitempty"`
	Channels map[string][]Keyframe `json:"channels"`
}

// Keyframe is encoded as [time, value, in tangent, out tangent]. The
// tangents may be omitted.
type Keyframe [4]float64

func (k Keyframe) MarshalJSON() ([]byte, error) {
	if k[2] == 0 && k[3] == 0 {
		return json.Marshal(k[:2])
	}
	return json.Marshal(k[:])
}

func (k *Keyframe) UnmarshalJSON(b []byte) error {
	var fs []float64
	if err := json.Unmarshal(b, &fs); err != nil {
		return err
	}
	if len(fs) != 2 && len(fs) != 4 {
		return fmt.Errorf("keyframe has %d fields, want 2 or 4", len(fs))
	}
	*k = Keyframe{}
	copy(k[:], fs)
	return nil
}

var poseChannels = [...]string{"x", "y", "z", "rot_x", "rot_y", "rot_z", "rot_w"}

const scalarChannel = "value"

// Load reads the document at path. Paths ending in .zst are decompressed.
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open clip: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".zst") {
		dec, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("create zstd decoder: %w", err)
		}
		defer dec.Close()
		r = dec
	}
	doc, err := Read(r)
	if err != nil {
		return nil, fmt.Errorf("read clip %s: %w", path, err)
	}
	return doc, nil
}

// Read decodes a document from r.
func Read(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Save writes doc to path. Paths ending in .zst are compressed.
func Save(path string, doc *Document) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create clip: %w", err)
	}
	defer f.Close()

	if !strings.HasSuffix(path, ".zst") {
		if err := Write(f, doc); err != nil {
			return fmt.Errorf("write clip: %w", err)
		}
		return f.Close()
	}

	enc, err := zstd.NewWriter(f)
	if err != nil {
		return fmt.Errorf("create zstd encoder: %w", err)
	}
	if err := Write(enc, doc); err != nil {
		enc.Close()
		return fmt.Errorf("compress: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalize compression: %w", err)
	}
	return f.Close()
}

// Write encodes doc to w.
func Write(w io.Writer, doc *Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// Tracks converts the document's targets to tracks.
func (d *Document) Tracks() ([]*keyreduce.Track, error) {
	out := make([]*keyreduce.Track, 0, len(d.Targets))
	for _, t := range d.Targets {
		ch, err := t.channels()
		if err != nil {
			return nil, fmt.Errorf("target %q: %w", t.Name, err)
		}
		for _, c := range ch.Curves() {
			if err := applyTangents(c, t.Tangents); err != nil {
				return nil, fmt.Errorf("target %q: %w", t.Name, err)
			}
		}
		out = append(out, keyreduce.NewTrack(t.Name, ch))
	}
	return out, nil
}

func (t Target) channels() (keyreduce.Channels, error) {
	switch t.Kind {
	case keyreduce.PoseKind.String():
		var ch keyreduce.PoseChannels
		for i, c := range ch.Curves() {
			*c = curve(t.Channels[poseChannels[i]])
		}
		return &ch, nil
	case keyreduce.ScalarKind.String():
		return &keyreduce.ScalarChannels{
			Value: curve(t.Channels[scalarChannel]),
			Min:   t.Min,
			Max:   t.Max,
		}, nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownKind, t.Kind)
	}
}

func applyTangents(c *keyreduce.Curve, mode string) error {
	var fn func(int)
	switch mode {
	case "":
		return nil
	case "smooth":
		fn = c.SmoothTangents
	case "linear":
		fn = c.LinearTangents
	case "flat":
		fn = c.FlatTangents
	default:
		return fmt.Errorf("unknown tangent mode %q", mode)
	}
	for i := range c.Len() {
		fn(i)
	}
	return nil
}

func curve(keys []Keyframe) keyreduce.Curve {
	ks := make([]keyreduce.Keyframe, len(keys))
	for i, k := range keys {
		ks[i] = keyreduce.Keyframe{Time: k[0], Value: k[1], InTangent: k[2], OutTangent: k[3]}
	}
	return keyreduce.NewCurve(ks...)
}

// FromTracks builds a document from tracks.
func FromTracks(name string, tracks []*keyreduce.Track) *Document {
	doc := &Document{Name: name}
	for _, tr := range tracks {
		t := Target{
			Name:     tr.Name(),
			Kind:     tr.Kind().String(),
			Channels: map[string][]Keyframe{},
		}
		switch ch := tr.Channels().(type) {
		case *keyreduce.PoseChannels:
			for i, c := range ch.Curves() {
				t.Channels[poseChannels[i]] = keyframes(c)
			}
		case *keyreduce.ScalarChannels:
			t.Min, t.Max = ch.Min, ch.Max
			t.Channels[scalarChannel] = keyframes(&ch.Value)
		}
		doc.Targets = append(doc.Targets, t)
	}
	return doc
}

func keyframes(c *keyreduce.Curve) []Keyframe {
	out := make([]Keyframe, 0, c.Len())
	for _, k := range c.Keys() {
		out = append(out, Keyframe{k.Time, k.Value, k.InTangent, k.OutTangent})
	}
	return out
}
