package eve

import (
	"fmt"
	"strings"
	"time"
)

// TimestampKind tags the branch ParseTimestamp took.
type TimestampKind uint8

const (
	TimestampParsed TimestampKind = iota
	TimestampFallback
)

// Timestamp is the tagged result of ParseTimestamp.
// Parsed: Instant, Formatted and Date are derived from the raw text.
// Fallback: Formatted is the raw text verbatim and Date is UnknownDate.
// Timestamp 是 ParseTimestamp 的带标签结果。
type Timestamp struct {
	Kind      TimestampKind
	Raw       string
	Instant   time.Time
	Formatted string
	Date      string
}

// IsParsed reports whether the raw text was understood.
func (t Timestamp) IsParsed() bool {
	return t.Kind == TimestampParsed
}

// isoLayouts is the accepted ISO-8601 family. Go's fractional-second
// element (.999999999) is optional, so each layout also matches whole seconds.
var isoLayouts = []string{
	"2006-01-02T15:04:05.999999999Z07:00",
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999Z0700",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
	DateLayout,
}

// ParseInstant parses an ISO-8601 timestamp. A trailing "Z" means UTC and
// timestamps without an offset are taken as UTC.
// ParseInstant 解析 ISO-8601 时间戳。末尾的 "Z" 表示 UTC，无偏移的时间戳按 UTC 处理。
func ParseInstant(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", raw)
}

// ParseTimestamp is total: it always returns either the Parsed or the Fallback branch.
// ParseTimestamp 是全函数：总是返回 Parsed 或 Fallback 分支之一。
func ParseTimestamp(raw string) Timestamp {
	t, err := ParseInstant(raw)
	if err != nil {
		return Timestamp{
			Kind:      TimestampFallback,
			Raw:       raw,
			Formatted: raw,
			Date:      UnknownDate,
		}
	}
	return Timestamp{
		Kind:      TimestampParsed,
		Raw:       raw,
		Instant:   t,
		Formatted: t.Format(DisplayLayout),
		Date:      t.Format(DateLayout),
	}
}
