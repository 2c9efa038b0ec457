// Package state implements the client-side synchronization core for the
// clipboard-history viewer.
//
// # Overview
//
// The Store keeps an in-memory, render-ready snapshot of clip records
// consistent with the backend, which mutates both locally (copy, pin,
// delete, clear) and remotely (the clipboard watcher pushing new clips).
// Three independent timelines meet here: user-initiated mutation, the
// debounced search re-query, and push-driven change notifications from
// the event bridge. All three funnel into Reload, which fetches the whole
// current page and replaces the snapshot atomically.
//
// # Consistency model
//
// Every reload is a full-state replace, never a delta merge, so redundant
// reloads are wasteful but never incorrect. Out-of-order completion is
// handled with reload tickets: a response only applies when no reload
// with a higher ticket has applied already, so a slow stale response can
// never overwrite a newer snapshot. The selection index is re-clamped
// after every replacement and is NoSelection exactly when the list is
// empty. The loading flag is a counter cleared on every exit path; a
// failed reload keeps the last-known-good snapshot and records the error
// for visibility.
//
// # Components
//
//   - store.go: the Store, its Gateway contract, and HandleKey
//   - debounce.go: single-slot quiescence timer for search input
//   - selection.go: the pure index clamp
package state
