package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/klippy/klipview/internal/klippy"
	"github.com/klippy/klipview/internal/preview"
)

const maxVisibleRows = 50

func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.search.View())
	b.WriteString("\n\n")

	if len(m.snapshot.Items) == 0 {
		b.WriteString(m.styles.Faint.Render(m.emptyMessage()))
		b.WriteString("\n")
	} else {
		for i, clip := range m.snapshot.Items {
			if i >= maxVisibleRows {
				remaining := len(m.snapshot.Items) - maxVisibleRows
				b.WriteString(m.styles.Faint.Render(fmt.Sprintf("  … %d more", remaining)))
				b.WriteString("\n")
				break
			}
			b.WriteString(m.renderRow(i, clip))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	return b.String()
}

func (m Model) renderHeader() string {
	title := m.styles.Title.Render("klipview")
	total := m.styles.Muted.Render(fmt.Sprintf("%d clips", m.snapshot.Total))

	parts := []string{title, total}
	if m.snapshot.Paused {
		parts = append(parts, m.styles.Warning.Render("⏸ tracking paused"))
	}
	if m.snapshot.Loading {
		parts = append(parts, m.styles.Accent.Render(m.spin.View()))
	}
	return strings.Join(parts, "  ")
}

func (m Model) renderRow(i int, clip klippy.Clip) string {
	cursor := "  "
	if i == m.snapshot.Selected {
		cursor = "› "
	}

	pin := "  "
	if clip.Pinned {
		pin = m.styles.Accent.Render("● ")
	}

	kind := m.styles.Faint.Render(fmt.Sprintf("[%s]", kindLabel(clip.ContentType)))
	summary := summarize(clip.Content, m.rowWidth())
	age := m.styles.Faint.Render(relativeAge(clip.ParsedCreatedAt(), time.Now()))

	if clip.IsImage() {
		summary = m.describeImage(clip)
	}

	line := fmt.Sprintf("%s%s%s %s  %s", cursor, pin, kind, summary, age)
	if i == m.snapshot.Selected {
		return m.styles.Selected.Render(line)
	}
	return m.styles.Text.Render(line)
}

// describeImage resolves the clip's preview through its per-identity
// fallback chain and renders a compact description of what is available.
func (m Model) describeImage(clip klippy.Clip) string {
	r, ok := m.resolvers[clip.ID]
	if !ok {
		r = &preview.Resolver{}
		m.resolvers[clip.ID] = r
	}
	r.Bind(clip.ID, clip.ThumbPath, clip.MediaPath)

	dims := ""
	if clip.PixelWidth > 0 && clip.PixelHeight > 0 {
		dims = fmt.Sprintf(" %dx%d", clip.PixelWidth, clip.PixelHeight)
	}

	if _, ok := r.Resolve(); !ok {
		return m.styles.Faint.Render("▨ image" + dims + " (no preview)")
	}
	label := "▨ image" + dims
	if r.Step() == preview.PreferOriginal {
		label += " (full size)"
	}
	return m.styles.Accent.Render(label)
}

func (m Model) renderStatusBar() string {
	if err := m.snapshot.LastError; err != nil {
		return m.styles.Danger.Render("✗ " + err.Error())
	}
	if m.notice != "" {
		return m.styles.Accent.Render(m.notice)
	}
	help := "↑/↓ select · enter copy · ctrl+p pin · ctrl+x delete · ctrl+t pause · ctrl+l clear · q quit"
	return m.styles.Faint.Render(help)
}

func (m Model) emptyMessage() string {
	if strings.TrimSpace(m.snapshot.Query) != "" {
		return "no clips match your search"
	}
	return "clipboard history is empty"
}

func (m Model) rowWidth() int {
	if m.width <= 0 {
		return 60
	}
	// Leave room for cursor, pin marker, kind tag, and timestamp.
	w := m.width - 28
	if w < 20 {
		w = 20
	}
	return w
}

func kindLabel(contentType string) string {
	switch contentType {
	case klippy.KindText:
		return "txt"
	case klippy.KindURL:
		return "url"
	case klippy.KindCode:
		return "code"
	case klippy.KindImage:
		return "img"
	default:
		return "?"
	}
}

// summarize flattens a clip's content to a single display line.
func summarize(content string, width int) string {
	flat := strings.Join(strings.Fields(content), " ")
	return truncate(flat, width)
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 1 {
		return "…"
	}
	return string(runes[:width-1]) + "…"
}

// relativeAge renders a coarse "how long ago" label for a row.
func relativeAge(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "now"
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	}
}
