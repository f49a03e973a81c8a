package presenter

import (
	"fmt"
	"time"
)

// FormatTimeSince formats the time elapsed since t as a human-readable "X ago" string.
// Returns formats like "just now", "5 minutes ago", "2.5 hours ago", or "3 days ago".
func FormatTimeSince(t time.Time) string {
	return formatDuration(time.Since(t), false)
}

// FormatTimeSinceCompact is FormatTimeSince for table displays: "5m ago", "2.5h ago", "3d ago".
func FormatTimeSinceCompact(t time.Time) string {
	return formatDuration(time.Since(t), true)
}

func formatDuration(d time.Duration, compact bool) string {
	switch {
	case d < time.Minute:
		if compact {
			return "now"
		}
		return "just now"
	case d < time.Hour:
		if compact {
			return fmt.Sprintf("%.0fm ago", d.Minutes())
		}
		return fmt.Sprintf("%.0f minutes ago", d.Minutes())
	case d < 24*time.Hour:
		if compact {
			return fmt.Sprintf("%.1fh ago", d.Hours())
		}
		return fmt.Sprintf("%.1f hours ago", d.Hours())
	default:
		if compact {
			return fmt.Sprintf("%.0fd ago", d.Hours()/24)
		}
		return fmt.Sprintf("%.0f days ago", d.Hours()/24)
	}
}
