// Package ui renders the clipboard history list with Bubble Tea.
package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/klippy/klipview/internal/preview"
	"github.com/klippy/klipview/internal/state"
)

const defaultUITick = 500 * time.Millisecond

// Options configures the UI.
type Options struct {
	Context   context.Context
	Store     *state.Store
	ThemeName string
	PrefsPath string
	UITick    time.Duration
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx       context.Context
	store     *state.Store
	prefsPath string
	uiTick    time.Duration

	theme  Theme
	styles Styles
	width  int
	height int
	ready  bool

	search    textinput.Model
	spin      spinner.Model
	snapshot  state.Snapshot
	resolvers map[int64]*preview.Resolver
	notice    string // transient action feedback, cleared on next snapshot
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	uiTick := opts.UITick
	if uiTick <= 0 {
		uiTick = defaultUITick
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Dracula"
	}
	theme := GetTheme(themeName)

	search := textinput.New()
	search.Placeholder = "type to search"
	search.Prompt = "/ "
	search.CharLimit = 256
	search.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.MiniDot

	return Model{
		ctx:       ctx,
		store:     opts.Store,
		prefsPath: opts.PrefsPath,
		uiTick:    uiTick,
		theme:     theme,
		styles:    theme.Styles(),
		search:    search,
		spin:      spin,
		resolvers: make(map[int64]*preview.Resolver),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		textinput.Blink,
		tickCmd(m.uiTick),
		fetchSnapshotCmd(m.store),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.search.Width = max(20, msg.Width-8)
		m.ready = true
		return m, nil

	case tickMsg:
		cmds := []tea.Cmd{fetchSnapshotCmd(m.store), tickCmd(m.uiTick)}
		if m.snapshot.Loading {
			cmds = append(cmds, m.spin.Tick)
		}
		return m, tea.Batch(cmds...)

	case snapshotMsg:
		m.snapshot = state.Snapshot(msg)
		m.pruneResolvers()
		return m, nil

	case actionDoneMsg:
		if msg.err != nil {
			m.notice = msg.err.Error()
		} else {
			m.notice = msg.notice
		}
		return m, fetchSnapshotCmd(m.store)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	return m.renderMain()
}

// pruneResolvers drops preview state for clips no longer in the snapshot,
// so the map does not grow across reloads.
func (m *Model) pruneResolvers() {
	if len(m.resolvers) == 0 {
		return
	}
	live := make(map[int64]bool, len(m.snapshot.Items))
	for _, clip := range m.snapshot.Items {
		live[clip.ID] = true
	}
	for id := range m.resolvers {
		if !live[id] {
			delete(m.resolvers, id)
		}
	}
}
