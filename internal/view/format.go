// Package view projects domain-store snapshots into view models. Every
// projection is a pure function: no I/O, no clock reads, and structurally
// equal snapshots produce identical views, so redundant re-renders are
// harmless. The presentation layer consumes the models without touching
// the stores.
package view

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// sanitize removes control characters from user-supplied text so a crafted
// nickname or market question cannot corrupt the terminal output. Markup
// escaping for the concrete widget toolkit happens at widget insertion.
func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}

// truncateText shortens text to maxLen runes with an ellipsis.
func truncateText(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "..."
}

// truncateAddress shortens a wallet address for display.
func truncateAddress(addr string) string {
	if addr == "" {
		return "unknown"
	}
	if len(addr) <= 12 {
		return addr
	}
	return addr[:6] + "..." + addr[len(addr)-4:]
}

// formatTimeRemaining renders a countdown, clamped at zero.
func formatTimeRemaining(seconds int) string {
	if seconds <= 0 {
		return "ended"
	}
	mins := seconds / 60
	secs := seconds % 60
	if mins > 0 {
		return fmt.Sprintf("%dm %ds", mins, secs)
	}
	return fmt.Sprintf("%ds", secs)
}

// formatClock renders the time-of-day of an instant.
func formatClock(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("15:04:05")
}

// formatDateTime renders a full timestamp.
func formatDateTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02 15:04:05")
}
