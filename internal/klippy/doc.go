// Package klippy provides an HTTP client for the klippy backend API.
//
// # Overview
//
// This package defines the remote gateway for the clipboard-history viewer:
// a typed request/response facade over the backend boundary. It handles HTTP
// communication, JSON serialization, and type-safe representation of clips,
// pages, and settings. It contains no synchronization logic; the state
// package builds on top of it.
//
// # API Endpoints
//
//   - GET    /api/clips                 list one page (query/limit/offset)
//   - POST   /api/clips/{id}/copy       copy a clip to the system clipboard
//   - PUT    /api/clips/{id}/pinned     set the pinned flag
//   - DELETE /api/clips/{id}            delete one clip
//   - DELETE /api/clips                 clear the history
//   - GET    /api/settings              read settings
//   - PATCH  /api/settings              partial settings update
//   - PUT    /api/settings/tracking     pause/resume clipboard tracking
//   - POST   /api/stop                  terminate the backend process
//
// The query parameter of GET /api/clips is omitted entirely when the
// effective search string is empty: the backend treats an absent query as
// match-all, which is not the same thing as filtering on "".
//
// # Request Handling
//
// All requests use context for cancellation, set Accept and User-Agent
// headers, and run under a 5-second client timeout. Errors are wrapped
// with the failing path; a 404 on an id-addressed operation is surfaced
// as the ErrNotFound sentinel so callers can treat it as already-gone.
package klippy
