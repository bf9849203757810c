package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/logtail/internal/state"
)

// renderHeader renders the title bar: name, path and follow state.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	sep := styles.FaintText.Render(" │ ")

	mode := styles.SuccessText.Render("FOLLOW")
	if !m.follow {
		mode = styles.WarningText.Render("PAUSED")
	}
	hint := styles.FaintText.Render("? help")

	fixed := lipgloss.Width("logtail") + lipgloss.Width(mode) + lipgloss.Width(hint) + 3*lipgloss.Width(" │ ") + 2
	path := styles.Text.Render(truncateMiddle(m.path, m.width-fixed))

	line := strings.Join([]string{styles.Logo.Render("logtail"), path, mode, hint}, sep)
	return styles.Header.Width(m.width).Render(line)
}

// renderStatus renders the session counters below the viewport.
func (m Model) renderStatus() string {
	styles := m.theme.Styles()
	text := truncate(statusText(m.snapshot, len(m.buffer), m.streamDone), m.width-2)

	style := styles.MutedText
	switch {
	case m.snapshot.IsStalled():
		style = styles.DangerText
	case m.snapshot.LastError != nil, m.snapshot.Ended != "":
		style = styles.WarningText
	}
	return styles.Footer.Width(m.width).Render(style.Render(text))
}

// statusText summarizes a snapshot in one line.
func statusText(snap state.Snapshot, buffered int, done bool) string {
	parts := []string{
		fmt.Sprintf("%s read", formatBytes(snap.Session.Offset)),
		fmt.Sprintf("%d shown / %d read", snap.LinesShown, snap.Session.LinesRead),
		fmt.Sprintf("%d buffered", buffered),
	}
	if snap.Session.Resets > 0 {
		parts = append(parts, fmt.Sprintf("%d resets", snap.Session.Resets))
	}
	switch {
	case snap.LastError != nil:
		parts = append(parts, fmt.Sprintf("error (%dx): %v", snap.ConsecutiveFailures, snap.LastError))
	case snap.Ended != "":
		parts = append(parts, "ended: "+snap.Ended)
	case done:
		parts = append(parts, "stream closed")
	}
	return strings.Join(parts, " · ")
}

func formatBytes(bytes int64) string {
	const (
		kib = 1024
		mib = 1024 * 1024
		gib = 1024 * 1024 * 1024
	)
	switch {
	case bytes >= gib:
		return fmt.Sprintf("%.2f GiB", float64(bytes)/gib)
	case bytes >= mib:
		return fmt.Sprintf("%.2f MiB", float64(bytes)/mib)
	case bytes >= kib:
		return fmt.Sprintf("%.2f KiB", float64(bytes)/kib)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

// truncate truncates a string to max length with ellipsis.
func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}

// truncateMiddle truncates a string in the middle, preserving start and end.
func truncateMiddle(s string, max int) string {
	s = strings.TrimSpace(s)
	if max <= 0 {
		return ""
	}
	if len(s) <= max {
		return s
	}
	if max <= 5 {
		return s[:max]
	}
	// Keep more of the end (file name) than the start
	endLen := (max - 3) * 2 / 3
	startLen := max - 3 - endLen
	return s[:startLen] + "..." + s[len(s)-endLen:]
}
