package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/klippy/klipview/internal/state"
)

type tickMsg time.Time

// snapshotMsg delivers a fresh store snapshot to the model.
type snapshotMsg state.Snapshot

// actionDoneMsg reports the outcome of a store mutation run off the UI loop.
type actionDoneMsg struct {
	notice string
	err    error
}

func tickCmd(every time.Duration) tea.Cmd {
	return tea.Tick(every, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

// actionCmd runs a store mutation in a command goroutine so gateway round
// trips never block rendering.
func actionCmd(notice string, fn func() error) tea.Cmd {
	return func() tea.Msg {
		if err := fn(); err != nil {
			return actionDoneMsg{err: err}
		}
		return actionDoneMsg{notice: notice}
	}
}
