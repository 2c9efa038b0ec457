package klippy

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ErrNotFound reports that an id-addressed operation hit a clip the backend
// no longer has. Callers generally treat this as success-equivalent: a
// subsequent list simply won't show the clip.
var ErrNotFound = errors.New("clip not found")

// Client talks to the klippy HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultAPIBind   = "127.0.0.1:7643"
	defaultUserAgent = "klipview/0.1"
	requestTimeout   = 5 * time.Second
)

// NewClient builds a Client using the provided apiBind host:port value.
func NewClient(apiBind string) (*Client, error) {
	base, err := parseBaseURL(apiBind)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// EventsURL returns the websocket URL for the push notification endpoint.
func (c *Client) EventsURL(path string) string {
	u := *c.baseURL
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	if path == "" {
		path = "/api/events"
	}
	u.Path = path
	return u.String()
}

// List retrieves one page of clips. An empty query means no filter; the
// query parameter is omitted from the request entirely so the backend
// matches all clips rather than filtering on an empty string.
func (c *Client) List(ctx context.Context, query string, limit, offset int) (ClipPage, error) {
	if c == nil {
		return ClipPage{}, fmt.Errorf("client is nil")
	}
	values := url.Values{}
	if q := strings.TrimSpace(query); q != "" {
		values.Set("query", q)
	}
	if limit > 0 {
		values.Set("limit", strconv.Itoa(limit))
	}
	values.Set("offset", strconv.Itoa(offset))
	rel := &url.URL{Path: "/api/clips", RawQuery: values.Encode()}
	var payload ClipPage
	if err := c.doURL(ctx, http.MethodGet, rel, nil, &payload); err != nil {
		return ClipPage{}, err
	}
	return payload, nil
}

// Copy asks the backend to place the clip's content on the system clipboard.
func (c *Client) Copy(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodPost, clipPath(id, "copy"), nil, nil)
}

// SetPinned updates the pinned flag of a clip.
func (c *Client) SetPinned(ctx context.Context, id int64, pinned bool) error {
	body := struct {
		Pinned bool `json:"pinned"`
	}{Pinned: pinned}
	return c.do(ctx, http.MethodPut, clipPath(id, "pinned"), body, nil)
}

// Delete removes a clip from the history.
func (c *Client) Delete(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, clipPath(id, ""), nil, nil)
}

// ClearAll deletes the entire history and returns how many clips were removed.
func (c *Client) ClearAll(ctx context.Context) (int, error) {
	var payload ClearResult
	if err := c.do(ctx, http.MethodDelete, "/api/clips", nil, &payload); err != nil {
		return 0, err
	}
	return payload.Deleted, nil
}

// GetSettings retrieves the backend settings record.
func (c *Client) GetSettings(ctx context.Context) (Settings, error) {
	var payload Settings
	if err := c.do(ctx, http.MethodGet, "/api/settings", nil, &payload); err != nil {
		return Settings{}, err
	}
	return payload, nil
}

// UpdateSettings applies a partial settings update and returns the result.
func (c *Client) UpdateSettings(ctx context.Context, patch SettingsPatch) (Settings, error) {
	var payload Settings
	if err := c.do(ctx, http.MethodPatch, "/api/settings", patch, &payload); err != nil {
		return Settings{}, err
	}
	return payload, nil
}

// SetTrackingPaused toggles clipboard tracking on the backend.
func (c *Client) SetTrackingPaused(ctx context.Context, paused bool) error {
	body := struct {
		Paused bool `json:"paused"`
	}{Paused: paused}
	return c.do(ctx, http.MethodPut, "/api/settings/tracking", body, nil)
}

// Stop asks the backend process to terminate.
func (c *Client) Stop(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/stop", nil, nil)
}

func clipPath(id int64, action string) string {
	p := "/api/clips/" + strconv.FormatInt(id, 10)
	if action != "" {
		p += "/" + action
	}
	return p
}

func (c *Client) do(ctx context.Context, method, path string, body, dest any) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	rel := &url.URL{Path: path}
	return c.doURL(ctx, method, rel, body, dest)
}

func (c *Client) doURL(ctx context.Context, method string, rel *url.URL, body, dest any) error {
	reqURL := c.baseURL.ResolveReference(rel)

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("api %s: %w", rel.Path, ErrNotFound)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("api %s returned status %d", rel.String(), resp.StatusCode)
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(apiBind string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiBind)
	if trimmed == "" {
		trimmed = defaultAPIBind
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_bind %q: %w", apiBind, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
