package klippy

import "time"

// Content kinds assigned by the backend. The viewer never infers a kind;
// it only renders what the backend reported.
const (
	KindText  = "text"
	KindURL   = "url"
	KindCode  = "code"
	KindImage = "image"
)

// Clip mirrors one clipboard history entry as returned by the API.
// Clips are immutable once received; any change arrives as a fresh page.
type Clip struct {
	ID          int64  `json:"id"`
	Content     string `json:"content"`
	ContentType string `json:"contentType"`
	Pinned      bool   `json:"pinned"`
	CreatedAt   string `json:"createdAt"`
	MediaPath   string `json:"mediaPath,omitempty"`
	ThumbPath   string `json:"thumbPath,omitempty"`
	MimeType    string `json:"mimeType,omitempty"`
	ByteSize    int64  `json:"byteSize"`
	PixelWidth  int64  `json:"pixelWidth,omitempty"`
	PixelHeight int64  `json:"pixelHeight,omitempty"`
}

// IsImage reports whether the clip carries image media.
func (c Clip) IsImage() bool {
	return c.ContentType == KindImage
}

// ParsedCreatedAt returns the parsed creation timestamp.
func (c Clip) ParsedCreatedAt() time.Time {
	return parseTime(c.CreatedAt)
}

// ClipPage mirrors the payload returned by GET /api/clips.
type ClipPage struct {
	Items      []Clip `json:"items"`
	Total      int    `json:"total"`
	NextOffset *int   `json:"nextOffset"`
}

// Settings mirrors the backend settings record.
type Settings struct {
	HistoryLimit               int64    `json:"historyLimit"`
	TrackingPaused             bool     `json:"trackingPaused"`
	MaxClipBytes               int64    `json:"maxClipBytes"`
	RestoreClipboardAfterPaste bool     `json:"restoreClipboardAfterPaste"`
	DenylistBundleIDs          []string `json:"denylistBundleIds"`
}

// SettingsPatch carries a partial settings update; nil fields are unchanged.
type SettingsPatch struct {
	HistoryLimit               *int64    `json:"historyLimit,omitempty"`
	TrackingPaused             *bool     `json:"trackingPaused,omitempty"`
	MaxClipBytes               *int64    `json:"maxClipBytes,omitempty"`
	RestoreClipboardAfterPaste *bool     `json:"restoreClipboardAfterPaste,omitempty"`
	DenylistBundleIDs          *[]string `json:"denylistBundleIds,omitempty"`
}

// ClearResult mirrors the response of DELETE /api/clips.
type ClearResult struct {
	Deleted int `json:"deleted"`
}

const klippyTimestampLayout = "2006-01-02 15:04:05"

func parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	if t, err := time.ParseInLocation(klippyTimestampLayout, value, time.UTC); err == nil {
		return t
	}
	return time.Time{}
}
