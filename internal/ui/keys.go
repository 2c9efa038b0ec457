package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/klippy/klipview/internal/state"
)

// handleKey routes keyboard input. Navigation and action keys are handled
// here; everything else feeds the search input, which re-queries through
// the store's debouncer.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "q":
		// Quit only when not typing a query; otherwise "q" is input.
		if m.search.Value() == "" {
			return m, tea.Quit
		}

	case "esc":
		if m.search.Value() != "" {
			m.search.SetValue("")
			m.store.SetQuery(m.ctx, "")
			return m, fetchSnapshotCmd(m.store)
		}
		return m, nil

	case "up", "down", "enter":
		ev := state.KeyEvent{Key: msg.String()}
		store := m.store
		ctx := m.ctx
		return m, func() tea.Msg {
			store.HandleKey(ctx, ev)
			return snapshotMsg(store.Snapshot())
		}

	case "ctrl+p":
		if clip, ok := m.snapshot.SelectedClip(); ok {
			id, pinned := clip.ID, clip.Pinned
			notice := "pinned"
			if pinned {
				notice = "unpinned"
			}
			return m, actionCmd(notice, func() error {
				return m.store.Pin(m.ctx, id, !pinned)
			})
		}
		return m, nil

	case "ctrl+x":
		if clip, ok := m.snapshot.SelectedClip(); ok {
			id := clip.ID
			return m, actionCmd("deleted", func() error {
				return m.store.Remove(m.ctx, id)
			})
		}
		return m, nil

	case "ctrl+l":
		return m, actionCmd("history cleared", func() error {
			_, err := m.store.ClearAll(m.ctx)
			return err
		})

	case "ctrl+t":
		return m, actionCmd("tracking toggled", func() error {
			return m.store.TogglePause(m.ctx)
		})

	case "ctrl+r":
		return m, actionCmd("", func() error {
			return m.store.Reload(m.ctx)
		})

	case "ctrl+q":
		// Stop the backend process, then quit the viewer.
		store := m.store
		ctx := m.ctx
		return m, tea.Sequence(func() tea.Msg {
			if err := store.Stop(ctx); err != nil {
				return actionDoneMsg{err: err}
			}
			return actionDoneMsg{notice: "backend stopped"}
		}, tea.Quit)
	}

	// Everything else belongs to the search input.
	var cmd tea.Cmd
	before := m.search.Value()
	m.search, cmd = m.search.Update(msg)
	if after := m.search.Value(); after != before {
		m.store.SetQuery(m.ctx, after)
	}
	return m, cmd
}
