// Package events subscribes to the backend's push notification channels
// and forwards each delivery to a store callback. The backend is the
// origin of truth; the bridge carries no state of its own beyond the
// connection.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Channel names pushed by the backend.
const (
	ChannelCreated         = "clips://created"
	ChannelUpdated         = "clips://updated"
	ChannelDeleted         = "clips://deleted"
	ChannelTrackingChanged = "tracking://changed"
)

// Handlers receive decoded push notifications. Both are invoked from the
// bridge's read goroutine; implementations must be safe for that.
type Handlers struct {
	// ListChanged fires for created/updated/deleted deliveries. The
	// payload is ignored: the list may have changed, re-fetch it.
	ListChanged func()
	// TrackingChanged fires with the backend-announced pause state.
	TrackingChanged func(paused bool)
}

// envelope is the wire form of one push notification.
type envelope struct {
	Channel string          `json:"channel"`
	Payload json.RawMessage `json:"payload"`
}

type trackingPayload struct {
	Paused bool `json:"paused"`
}

// Bridge is a live subscription to the backend's event endpoint.
type Bridge struct {
	conn      *websocket.Conn
	handlers  Handlers
	done      chan struct{}
	closeOnce sync.Once
}

const dialTimeout = 5 * time.Second

// Dial connects to the websocket event endpoint and starts the read loop.
// The subscription is established once; tear it down with Close.
func Dial(ctx context.Context, url string, handlers Handlers) (*Bridge, error) {
	dialer := websocket.Dialer{HandshakeTimeout: dialTimeout}
	conn, _, err := dialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial events endpoint: %w", err)
	}

	b := &Bridge{
		conn:     conn,
		handlers: handlers,
		done:     make(chan struct{}),
	}
	go b.readLoop()
	return b, nil
}

// Done is closed when the read loop has exited, whether from Close or a
// connection failure.
func (b *Bridge) Done() <-chan struct{} {
	return b.done
}

// Close tears the subscription down. Idempotent; safe to call after the
// connection already failed.
func (b *Bridge) Close() {
	b.closeOnce.Do(func() {
		deadline := time.Now().Add(time.Second)
		_ = b.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
		_ = b.conn.Close()
	})
}

func (b *Bridge) readLoop() {
	defer close(b.done)
	for {
		_, data, err := b.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				slog.Debug("event bridge closed", "reason", err)
			} else {
				slog.Warn("event bridge read failed", "error", err)
			}
			return
		}
		b.dispatch(data)
	}
}

// dispatch maps one delivery to exactly one handler invocation. Malformed
// input is dropped; a bad payload must never crash the bridge.
func (b *Bridge) dispatch(data []byte) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		slog.Warn("dropping malformed push event", "error", err)
		return
	}

	switch env.Channel {
	case ChannelCreated, ChannelUpdated, ChannelDeleted:
		if b.handlers.ListChanged != nil {
			b.handlers.ListChanged()
		}
	case ChannelTrackingChanged:
		var payload trackingPayload
		if err := json.Unmarshal(env.Payload, &payload); err != nil {
			slog.Warn("dropping malformed tracking payload", "error", err)
			return
		}
		if b.handlers.TrackingChanged != nil {
			b.handlers.TrackingChanged(payload.Paused)
		}
	default:
		slog.Debug("ignoring unknown push channel", "channel", env.Channel)
	}
}
