package utils

import (
	"fmt"
	"strings"
)

// FormatClock renders seconds as HH:MM:SS for the main timer display.
func FormatClock(totalSeconds int64) string {
	if totalSeconds < 0 {
		totalSeconds = 0
	}
	h := totalSeconds / 3600
	m := (totalSeconds % 3600) / 60
	s := totalSeconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// FormatShort renders "1h 5m", "5m" or "42s"; seconds only show under a minute.
func FormatShort(totalSeconds int64) string {
	if totalSeconds < 0 {
		totalSeconds = 0
	}
	h := totalSeconds / 3600
	m := (totalSeconds % 3600) / 60
	var parts []string
	if h > 0 {
		parts = append(parts, fmt.Sprintf("%dh", h))
	}
	if m > 0 {
		parts = append(parts, fmt.Sprintf("%dm", m))
	}
	if h == 0 && m == 0 {
		parts = append(parts, fmt.Sprintf("%ds", totalSeconds%60))
	}
	return strings.Join(parts, " ")
}

// FormatHoursMinutes renders accumulated totals as "Xh Ym".
func FormatHoursMinutes(totalSeconds int64) string {
	if totalSeconds < 0 {
		totalSeconds = 0
	}
	return fmt.Sprintf("%dh %dm", totalSeconds/3600, (totalSeconds%3600)/60)
}
