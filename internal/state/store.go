package state

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/klippy/klipview/internal/klippy"
)

const defaultPageSize = 200

// Gateway is the subset of the backend API the store consumes.
// Implemented by *klippy.Client; tests substitute fakes.
type Gateway interface {
	List(ctx context.Context, query string, limit, offset int) (klippy.ClipPage, error)
	Copy(ctx context.Context, id int64) error
	SetPinned(ctx context.Context, id int64, pinned bool) error
	Delete(ctx context.Context, id int64) error
	ClearAll(ctx context.Context) (int, error)
	GetSettings(ctx context.Context) (klippy.Settings, error)
	SetTrackingPaused(ctx context.Context, paused bool) error
	Stop(ctx context.Context) error
}

// Ensure Client implements Gateway at compile time.
var _ Gateway = (*klippy.Client)(nil)

// Key names understood by HandleKey. They match tea.KeyMsg.String() values
// so the UI can forward key messages without translation.
const (
	KeyUp    = "up"
	KeyDown  = "down"
	KeyEnter = "enter"
)

// KeyEvent describes one keyboard event as seen by the store.
type KeyEvent struct {
	Key            string
	AlreadyHandled bool // consumed upstream (e.g. by the search input)
	Composing      bool // IME composition in progress
}

// Snapshot is the render-ready view of the store for the UI. Slices are
// cloned; mutating a snapshot never affects the store.
type Snapshot struct {
	Items       []klippy.Clip
	Total       int
	NextOffset  *int
	LastUpdated time.Time
	LastError   error
	Loading     bool
	Query       string
	Paused      bool
	Selected    int // NoSelection when the list is empty
}

// SelectedClip returns the clip under the selection, if any.
func (s Snapshot) SelectedClip() (klippy.Clip, bool) {
	if s.Selected < 0 || s.Selected >= len(s.Items) {
		return klippy.Clip{}, false
	}
	return s.Items[s.Selected], true
}

// Options configure a Store.
type Options struct {
	Gateway        Gateway
	PageSize       int           // zero uses the default of 200
	DebounceWindow time.Duration // zero uses the default of 90ms
	CopyOnEnter    bool          // whether Enter copies the selected clip
}

// Store owns the canonical list snapshot, the query and pause state, and
// the selection. It is the single writer for all of them; every mutation
// round-trips through the Gateway and lands as an atomic full replace.
type Store struct {
	mu       sync.RWMutex
	gw       Gateway
	debounce *Debouncer

	pageSize    int
	copyOnEnter bool

	items       []klippy.Clip
	total       int
	nextOffset  *int
	lastUpdated time.Time
	lastError   error

	query    string
	paused   bool
	selected int
	inFlight int

	// Reload tickets. A settled reload applies its page only when no
	// reload with a higher ticket has applied already, so a slow stale
	// response can never overwrite a newer one.
	nextSeq    uint64
	appliedSeq uint64
}

// New builds a Store around the given gateway.
func New(opts Options) *Store {
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return &Store{
		gw:          opts.Gateway,
		debounce:    NewDebouncer(opts.DebounceWindow),
		pageSize:    pageSize,
		copyOnEnter: opts.CopyOnEnter,
		selected:    NoSelection,
	}
}

// Initialize seeds the pause flag from backend settings and performs the
// initial list fetch. Call once per session before query-dependent work.
func (s *Store) Initialize(ctx context.Context) error {
	settings, err := s.gw.GetSettings(ctx)
	if err != nil {
		return fmt.Errorf("fetch settings: %w", err)
	}
	s.mu.Lock()
	s.paused = settings.TrackingPaused
	s.mu.Unlock()
	return s.Reload(ctx)
}

// Reload re-fetches the first page for the current effective query and
// replaces the snapshot wholesale. The loading flag is cleared on every
// exit path; on failure the previous snapshot is kept and the error is
// both recorded and returned.
func (s *Store) Reload(ctx context.Context) error {
	s.mu.Lock()
	s.inFlight++
	s.nextSeq++
	seq := s.nextSeq
	query := effectiveQuery(s.query)
	limit := s.pageSize
	s.mu.Unlock()

	page, err := s.gw.List(ctx, query, limit, 0)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight--

	if err != nil {
		s.lastError = err
		s.lastUpdated = time.Now()
		return err
	}
	if seq < s.appliedSeq {
		// A newer reload settled first; this page is stale.
		return nil
	}
	s.appliedSeq = seq

	wasEmpty := len(s.items) == 0
	s.items = cloneClips(page.Items)
	s.total = page.Total
	s.nextOffset = cloneOffset(page.NextOffset)
	s.lastError = nil
	s.lastUpdated = time.Now()

	switch {
	case len(s.items) == 0:
		s.selected = NoSelection
	case wasEmpty || s.selected == NoSelection:
		s.selected = 0
	default:
		s.selected = ClampIndex(s.selected, len(s.items))
	}
	return nil
}

// SetQuery records the raw query text immediately and schedules a
// debounced reload. Safe to call once per keystroke.
func (s *Store) SetQuery(ctx context.Context, text string) {
	s.mu.Lock()
	s.query = text
	s.mu.Unlock()
	s.debounce.Schedule(func() error {
		return s.Reload(ctx)
	})
}

// Query returns the raw query text as typed.
func (s *Store) Query() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.query
}

// SetSelectedIndex sets the selection directly (pointer hover), clamped
// to the current list bounds.
func (s *Store) SetSelectedIndex(i int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = ClampIndex(i, len(s.items))
}

// SelectedIndex returns the current selection and whether one exists.
func (s *Store) SelectedIndex() (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selected, s.selected != NoSelection
}

// HandleKey applies one keyboard event. The return value reports whether
// the key was consumed (the caller should then suppress its default
// behavior, such as page scrolling). Events already handled upstream or
// originating from IME composition are ignored, as is everything when the
// list is empty.
func (s *Store) HandleKey(ctx context.Context, ev KeyEvent) bool {
	if ev.AlreadyHandled || ev.Composing {
		return false
	}

	s.mu.Lock()
	n := len(s.items)
	if n == 0 {
		s.mu.Unlock()
		return false
	}
	switch ev.Key {
	case KeyDown:
		s.selected = ClampIndex(s.selected+1, n)
		s.mu.Unlock()
		return true
	case KeyUp:
		s.selected = ClampIndex(s.selected-1, n)
		s.mu.Unlock()
		return true
	case KeyEnter:
		if !s.copyOnEnter {
			s.mu.Unlock()
			return false
		}
		id := s.items[ClampIndex(s.selected, n)].ID
		s.mu.Unlock()
		if err := s.Copy(ctx, id); err != nil {
			slog.Warn("copy selected clip failed", "id", id, "error", err)
		}
		return true
	}
	s.mu.Unlock()
	return false
}

// Copy places a clip's content on the system clipboard. The list is not
// reloaded: copying does not change history contents.
func (s *Store) Copy(ctx context.Context, id int64) error {
	return s.gw.Copy(ctx, id)
}

// Pin updates a clip's pinned flag and reloads on success.
func (s *Store) Pin(ctx context.Context, id int64, pinned bool) error {
	if err := s.gw.SetPinned(ctx, id, pinned); err != nil {
		return err
	}
	return s.Reload(ctx)
}

// Remove deletes a clip and reloads on success. A clip the backend has
// already dropped counts as removed.
func (s *Store) Remove(ctx context.Context, id int64) error {
	if err := s.gw.Delete(ctx, id); err != nil && !errors.Is(err, klippy.ErrNotFound) {
		return err
	}
	return s.Reload(ctx)
}

// ClearAll wipes the history, reloads, and returns the deleted count.
func (s *Store) ClearAll(ctx context.Context) (int, error) {
	deleted, err := s.gw.ClearAll(ctx)
	if err != nil {
		return 0, err
	}
	return deleted, s.Reload(ctx)
}

// TogglePause flips clipboard tracking. The local flag changes only after
// the backend accepted the new state; there is no optimistic flip.
func (s *Store) TogglePause(ctx context.Context) error {
	s.mu.RLock()
	next := !s.paused
	s.mu.RUnlock()

	if err := s.gw.SetTrackingPaused(ctx, next); err != nil {
		return err
	}
	s.mu.Lock()
	s.paused = next
	s.mu.Unlock()
	return nil
}

// SetTrackingPaused mirrors a backend-announced tracking state. Used by
// the event bridge, where the backend is the origin of truth and no
// round trip is needed.
func (s *Store) SetTrackingPaused(paused bool) {
	s.mu.Lock()
	s.paused = paused
	s.mu.Unlock()
}

// Paused reports the mirrored tracking-pause flag.
func (s *Store) Paused() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.paused
}

// Stop asks the backend process to terminate.
func (s *Store) Stop(ctx context.Context) error {
	return s.gw.Stop(ctx)
}

// Close cancels any pending debounce timer.
func (s *Store) Close() {
	s.debounce.Stop()
}

// Snapshot returns a copy of the current render state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		Items:       cloneClips(s.items),
		Total:       s.total,
		NextOffset:  cloneOffset(s.nextOffset),
		LastUpdated: s.lastUpdated,
		Loading:     s.inFlight > 0,
		Query:       s.query,
		Paused:      s.paused,
		Selected:    s.selected,
	}
	if s.lastError != nil {
		snap.LastError = fmt.Errorf("%w", s.lastError)
	}
	return snap
}

// effectiveQuery normalizes raw input: trimmed, with empty meaning
// "no filter" rather than an empty-string filter.
func effectiveQuery(raw string) string {
	return strings.TrimSpace(raw)
}

func cloneClips(items []klippy.Clip) []klippy.Clip {
	if len(items) == 0 {
		return nil
	}
	dup := make([]klippy.Clip, len(items))
	copy(dup, items)
	return dup
}

func cloneOffset(v *int) *int {
	if v == nil {
		return nil
	}
	dup := *v
	return &dup
}
