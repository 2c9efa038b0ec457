// klipview: terminal viewer for the klippy clipboard history backend.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/klippy/klipview/internal/app"
	"github.com/klippy/klipview/internal/logging"
)

// Version is set at build time via -ldflags "-X main.Version=x.y.z".
var Version = "dev"

func main() {
	var (
		configPath string
		prefsPath  string
		apiBind    string
		debounceMS int
		logLevel   string
		logFormat  string
	)

	root := &cobra.Command{
		Use:   "klipview",
		Short: "Clipboard history viewer",
		Long: `klipview is a terminal viewer for the klippy clipboard history
backend. It shows the live history list, searches it as you type, and
lets you copy, pin, and delete clips. The backend pushes change events
over a websocket so the list stays current without polling.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logging.Setup(logging.ParseFormat(logFormat), logging.ParseLevel(logLevel))

			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			return app.Run(ctx, app.Options{
				ConfigPath: configPath,
				PrefsPath:  prefsPath,
				APIBind:    apiBind,
				DebounceMS: debounceMS,
			})
		},
	}

	root.Flags().StringVar(&configPath, "config", "", "override config path (optional)")
	root.Flags().StringVar(&prefsPath, "prefs", "", "override preferences path (optional)")
	root.Flags().StringVar(&apiBind, "api", "", "backend address host:port (optional)")
	root.Flags().IntVar(&debounceMS, "debounce-ms", 0, "search debounce window in milliseconds (optional)")
	root.Flags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	root.Flags().StringVar(&logFormat, "log-format", "auto", "log format (auto, text, json)")

	root.AddCommand(newVersionCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "klipview: %v\n", err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("klipview %s\n", Version)
		},
	}
}
