package eve

import (
	"fmt"
	"time"
)

const (
	JustNow         = "a few seconds ago"
	UnknownRelative = "unknown"
)

// RelativeTime describes how long ago raw happened, relative to now.
// RelativeTime 描述 raw 距 now 已过去多久。
func RelativeTime(raw string, now time.Time) string {
	t, err := ParseInstant(raw)
	if err != nil {
		return UnknownRelative
	}
	return Since(t, now)
}

// Since buckets the elapsed time between t and now.
func Since(t, now time.Time) string {
	seconds := now.UTC().Sub(t.UTC()).Seconds()
	switch {
	case seconds < 60:
		return JustNow
	case seconds < 3600:
		return fmt.Sprintf("%d min ago", int64(seconds/60))
	case seconds < 86400:
		return fmt.Sprintf("%d h ago", int64(seconds/3600))
	default:
		return fmt.Sprintf("%d d ago", int64(seconds/86400))
	}
}
