// Package preview resolves the best-available visual representation of an
// image clip: thumbnail first, then the original media file, then a
// placeholder glyph. The fallback chain is strictly forward; once a step
// fails it is never retried for the same clip identity.
package preview

import (
	"fmt"
	"os"
)

// Step identifies the current position in the fallback chain.
type Step int

const (
	PreferThumbnail Step = iota
	PreferOriginal
	Placeholder
)

// String returns a short label for logs and tests.
func (s Step) String() string {
	switch s {
	case PreferThumbnail:
		return "thumbnail"
	case PreferOriginal:
		return "original"
	case Placeholder:
		return "placeholder"
	default:
		return fmt.Sprintf("step(%d)", int(s))
	}
}

// Resolver is per-row ephemeral state keyed to a clip identity. Binding a
// different clip resets the chain; list reordering or replacement must
// never leave a row showing a stale image for another clip.
type Resolver struct {
	// Probe attempts to load the media at path. Nil uses os.Stat, which
	// is enough for a terminal row that only needs the file to exist.
	Probe func(path string) error

	id    int64
	bound bool
	step  Step
	thumb string
	media string
}

// Bind associates the resolver with a clip identity. When the identity
// changes the chain resets to its initial step: thumbnail if one exists,
// else original, else placeholder. Re-binding the same id is a no-op so
// a render pass never loses failure progress.
func (r *Resolver) Bind(id int64, thumbPath, mediaPath string) {
	if r.bound && r.id == id {
		return
	}
	r.id = id
	r.bound = true
	r.thumb = thumbPath
	r.media = mediaPath
	switch {
	case thumbPath != "":
		r.step = PreferThumbnail
	case mediaPath != "":
		r.step = PreferOriginal
	default:
		r.step = Placeholder
	}
}

// Step returns the current chain position.
func (r *Resolver) Step() Step {
	return r.step
}

// Path returns the media path to attempt for the current step. The second
// return is false at Placeholder, where there is nothing left to load.
func (r *Resolver) Path() (string, bool) {
	switch r.step {
	case PreferThumbnail:
		return r.thumb, true
	case PreferOriginal:
		return r.media, true
	default:
		return "", false
	}
}

// NoteFailure advances the chain after a load failure. The thumbnail step
// falls back to the original only when an original path exists; otherwise
// the chain jumps straight to Placeholder, which is terminal.
func (r *Resolver) NoteFailure() {
	switch r.step {
	case PreferThumbnail:
		if r.media != "" {
			r.step = PreferOriginal
		} else {
			r.step = Placeholder
		}
	case PreferOriginal:
		r.step = Placeholder
	}
}

// Resolve probes the current path and walks the chain forward until a
// step loads or Placeholder is reached. It returns the resolved path,
// with ok=false meaning the caller should render the placeholder glyph.
func (r *Resolver) Resolve() (path string, ok bool) {
	for {
		p, more := r.Path()
		if !more {
			return "", false
		}
		if err := r.probe(p); err == nil {
			return p, true
		}
		r.NoteFailure()
	}
}

func (r *Resolver) probe(path string) error {
	if r.Probe != nil {
		return r.Probe(path)
	}
	_, err := os.Stat(path)
	return err
}
