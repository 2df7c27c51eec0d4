package eve

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseTimestamp_Parsed tests the accepted ISO-8601 forms
// TestParseTimestamp_Parsed 测试可接受的 ISO-8601 格式
func TestParseTimestamp_Parsed(t *testing.T) {
	tests := []struct {
		raw       string
		formatted string
		date      string
	}{
		{"2024-01-01T10:00:00Z", "01 January 2024, 10:00:00", "2024-01-01"},
		{"2024-01-01T10:00:00.123456Z", "01 January 2024, 10:00:00", "2024-01-01"},
		{"2024-03-05T23:59:59+00:00", "05 March 2024, 23:59:59", "2024-03-05"},
		{"2024-03-05T23:59:59.000123+0200", "05 March 2024, 23:59:59", "2024-03-05"},
		{"2024-07-14T08:30:00", "14 July 2024, 08:30:00", "2024-07-14"},
		{"2024-07-14 08:30:00.5", "14 July 2024, 08:30:00", "2024-07-14"},
		{"2024-07-14", "14 July 2024, 00:00:00", "2024-07-14"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			ts := ParseTimestamp(tt.raw)
			require.True(t, ts.IsParsed())
			assert.Equal(t, TimestampParsed, ts.Kind)
			assert.Equal(t, tt.raw, ts.Raw)
			assert.Equal(t, tt.formatted, ts.Formatted)
			assert.Equal(t, tt.date, ts.Date)
		})
	}
}

// TestParseTimestamp_Fallback tests that bad input never yields a partial date
// TestParseTimestamp_Fallback 测试错误输入永远不会产生部分日期
func TestParseTimestamp_Fallback(t *testing.T) {
	for _, raw := range []string{"", "  ", "garbage", "2024-02-30T00:00:00Z", "2024-01-01T10:00:00 UTC"} {
		ts := ParseTimestamp(raw)
		assert.Equal(t, TimestampFallback, ts.Kind, raw)
		assert.False(t, ts.IsParsed())
		assert.Equal(t, raw, ts.Formatted)
		assert.Equal(t, UnknownDate, ts.Date)
		assert.True(t, ts.Instant.IsZero())
	}
}

// TestParseInstant_Offset tests that offsets are honoured
func TestParseInstant_Offset(t *testing.T) {
	a, err := ParseInstant("2024-01-01T12:00:00+0200")
	require.NoError(t, err)
	b, err := ParseInstant("2024-01-01T10:00:00Z")
	require.NoError(t, err)
	assert.True(t, a.Equal(b))

	naive, err := ParseInstant("2024-01-01T10:00:00")
	require.NoError(t, err)
	assert.True(t, naive.Equal(b))
}

// TestRelativeTime tests elapsed time buckets
// TestRelativeTime 测试经过时间分桶
func TestRelativeTime(t *testing.T) {
	now := time.Date(2024, 1, 2, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		raw  string
		want string
	}{
		{"2024-01-02T11:59:30Z", JustNow},
		{"2024-01-02T12:00:30Z", JustNow},
		{"2024-01-02T11:59:00Z", "1 min ago"},
		{"2024-01-02T11:00:01Z", "59 min ago"},
		{"2024-01-02T11:00:00Z", "1 h ago"},
		{"2024-01-01T12:00:01Z", "23 h ago"},
		{"2024-01-01T12:00:00Z", "1 d ago"},
		{"2023-12-22T12:00:00Z", "11 d ago"},
		{"2024-01-02T13:59:00+0200", "1 min ago"},
		{"not a time", UnknownRelative},
		{"", UnknownRelative},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, RelativeTime(tt.raw, now))
		})
	}
}
