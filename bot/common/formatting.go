package common

import (
	"fmt"
	"strings"
	"time"
)

// FormatGold formats a gold amount with thousand separators
func FormatGold(gold int64) string {
	str := fmt.Sprintf("%d", gold)

	n := len(str)
	if n <= 3 {
		return str
	}

	var result strings.Builder
	for i, digit := range str {
		if i > 0 && (n-i)%3 == 0 {
			result.WriteRune(',')
		}
		result.WriteRune(digit)
	}

	return result.String()
}

// FormatMinutes renders a minute count as "1h05" or "45 min"
func FormatMinutes(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%d min", minutes)
	}
	return fmt.Sprintf("%dh%02d", minutes/60, minutes%60)
}

// FormatCountdown renders a remaining duration as "3h12m" or "45m"
func FormatCountdown(d time.Duration) string {
	d = d.Round(time.Minute)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	if h == 0 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%dh%02dm", h, m)
}

// ProgressBar renders a filled/empty bar of the given width for a 0..1 ratio
func ProgressBar(ratio float64, width int) string {
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	filled := int(ratio * float64(width))

	var bar strings.Builder
	for i := 0; i < width; i++ {
		if i < filled {
			bar.WriteRune('█')
		} else {
			bar.WriteRune('░')
		}
	}
	return bar.String()
}

// FormatDiscordTimestamp formats a time as a Discord timestamp that displays in user's local timezone
// Format types: "t" = short time, "T" = long time, "d" = short date, "D" = long date,
// "f" = short date/time, "F" = long date/time, "R" = relative time
func FormatDiscordTimestamp(t time.Time, format string) string {
	return fmt.Sprintf("<t:%d:%s>", t.Unix(), format)
}

// RarityEmoji returns the marker shown next to an item of the given rarity
func RarityEmoji(rarity string) string {
	switch rarity {
	case "common":
		return "⚪"
	case "rare":
		return "🔵"
	case "epic":
		return "🟣"
	case "legendary":
		return "🟠"
	case "unique":
		return "🔴"
	default:
		return "⚫"
	}
}
