package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/klippy/klipview/internal/config"
	"github.com/klippy/klipview/internal/events"
	"github.com/klippy/klipview/internal/klippy"
	"github.com/klippy/klipview/internal/prefs"
	"github.com/klippy/klipview/internal/state"
	"github.com/klippy/klipview/internal/ui"
)

const initializeTimeout = 5 * time.Second

// Options configure the klipview application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/klipview/prefs.toml
	APIBind    string // overrides the configured backend address
	DebounceMS int    // overrides the preferred search debounce window
}

// Run boots the klipview TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.APIBind != "" {
		cfg.APIBind = opts.APIBind
	}

	userPrefs, _ := prefs.Load(opts.PrefsPath)

	client, err := klippy.NewClient(cfg.APIBind)
	if err != nil {
		return fmt.Errorf("init backend client: %w", err)
	}

	debounceMS := userPrefs.DebounceMS
	if opts.DebounceMS > 0 {
		debounceMS = opts.DebounceMS
	}

	store := state.New(state.Options{
		Gateway:        client,
		DebounceWindow: time.Duration(debounceMS) * time.Millisecond,
		CopyOnEnter:    userPrefs.CopyOnEnter(),
	})
	defer store.Close()

	// Populate settings and the first page before the UI starts; a backend
	// that is not running is a startup failure, not a degraded mode.
	initCtx, cancel := context.WithTimeout(ctx, initializeTimeout)
	err = store.Initialize(initCtx)
	cancel()
	if err != nil {
		return fmt.Errorf("connect to klippy backend at %s: %w", cfg.APIBind, err)
	}

	// Push-driven invalidation: each change notification triggers a full
	// reload, and tracking state mirrors the backend announcement.
	bridge, err := events.Dial(ctx, client.EventsURL(cfg.EventsPath), events.Handlers{
		ListChanged: func() {
			if err := store.Reload(ctx); err != nil {
				slog.Warn("push-triggered reload failed", "error", err)
			}
		},
		TrackingChanged: store.SetTrackingPaused,
	})
	if err != nil {
		// Without push events the list still refreshes on user actions
		// and manual reload; degrade rather than refuse to start.
		slog.Warn("event subscription unavailable", "error", err)
	} else {
		defer bridge.Close()
	}

	model := ui.New(ui.Options{
		Context:   ctx,
		Store:     store,
		ThemeName: userPrefs.Theme,
		PrefsPath: opts.PrefsPath,
	})
	program := tea.NewProgram(model, tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
