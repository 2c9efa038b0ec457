// Package app provides the composition root for the klipview application.
//
// # Overview
//
// This package wires configuration, the backend gateway client, the clip
// store, the push event bridge, and the UI into the complete viewer.
// Business logic lives in the domain packages; app only connects them.
//
// # Data Flow
//
//	Run()
//	 ├─> config.Load()      backend address and events path
//	 ├─> prefs.Load()       theme, Enter policy, debounce window
//	 ├─> klippy.NewClient() typed HTTP gateway
//	 ├─> state.New()        snapshot store around the gateway
//	 ├─> store.Initialize() settings + first page, with startup timeout
//	 ├─> events.Dial()      push channels -> store.Reload / pause mirror
//	 └─> ui (Bubble Tea)    reads store snapshots, blocks until quit
//
// # Error Handling
//
// Fatal at startup: unreadable config, invalid backend address, and a
// failed Initialize (the backend is not running). Recoverable: a missing
// events endpoint (the viewer degrades to action-driven refresh) and any
// reload failure after startup, which keeps the last-known-good snapshot.
package app
