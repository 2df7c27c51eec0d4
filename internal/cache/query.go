package cache

import (
	"sort"
	"time"

	"github.com/livp123/suriwatch/internal/eve"
)

// Group is one signature's alerts in the preview view.
// Group 是预览视图中某个签名的告警。
type Group struct {
	Signature string      `json:"signature"`
	Total     int         `json:"total"`
	Alerts    []eve.Alert `json:"alerts"`
}

// ListGrouped filters by date (empty means all), groups by signature,
// sorts each group newest first and truncates it to limit entries
// (limit <= 0 uses the configured default). Groups are ordered by signature.
// ListGrouped 按日期过滤（空表示全部），按签名分组，每组按时间倒序排列并截断到 limit 条
// （limit <= 0 时使用配置的默认值）。分组按签名升序排列。
func (c *Cache) ListGrouped(date string, limit int, now time.Time) []Group {
	return c.group(c.current.Load(), date, limit, now)
}

// View is the preview page: the date list, the groups and the build time of
// one snapshot.
// View 是预览页面：来自同一个快照的日期列表、分组和构建时间。
type View struct {
	Dates   []string
	Groups  []Group
	BuiltAt time.Time
}

// View reads the cache once and derives the whole preview from that state,
// so a concurrent reload never mixes dates of one snapshot with alerts of another.
// View 只读取一次缓存并从该状态生成整个预览，并发重新加载不会混合不同快照的日期和告警。
func (c *Cache) View(date string, limit int, now time.Time) View {
	s := c.current.Load()
	return View{
		Dates:   copyDates(s.dates),
		Groups:  c.group(s, date, limit, now),
		BuiltAt: s.builtAt,
	}
}

func (c *Cache) group(s *state, date string, limit int, now time.Time) []Group {
	if limit <= 0 {
		limit = c.limit
	}

	bySig := make(map[string][]eve.Alert)
	for _, a := range s.alerts {
		if date != "" && a.DateOnly != date {
			continue
		}
		bySig[a.Signature] = append(bySig[a.Signature], a)
	}

	groups := make([]Group, 0, len(bySig))
	for sig, alerts := range bySig {
		sortNewestFirst(alerts)
		total := len(alerts)
		if len(alerts) > limit {
			alerts = alerts[:limit]
		}
		annotate(alerts, now)
		groups = append(groups, Group{Signature: sig, Total: total, Alerts: alerts})
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Signature < groups[j].Signature
	})
	return groups
}

// ListFull returns every alert of one signature, filtered by date and sorted newest first.
// ListFull 返回某个签名的所有告警，按日期过滤并按时间倒序排列。
func (c *Cache) ListFull(signature, date string, now time.Time) []eve.Alert {
	s := c.current.Load()

	out := make([]eve.Alert, 0)
	for _, a := range s.alerts {
		if a.Signature != signature {
			continue
		}
		if date != "" && a.DateOnly != date {
			continue
		}
		out = append(out, a)
	}
	sortNewestFirst(out)
	annotate(out, now)
	return out
}

// annotate sets RelativeTime on copies owned by the caller.
func annotate(alerts []eve.Alert, now time.Time) {
	for i := range alerts {
		alerts[i].RelativeTime = eve.RelativeTime(alerts[i].RawTimestamp, now)
	}
}

// sortNewestFirst orders by parsed instant, newest first. Unparseable
// timestamps go last; ties fall back to the raw text, descending.
// sortNewestFirst 按解析后的时间倒序排列。无法解析的时间戳排在最后；相同时按原始文本倒序。
func sortNewestFirst(alerts []eve.Alert) {
	type key struct {
		t  time.Time
		ok bool
	}
	keys := make(map[string]key, len(alerts))
	keyOf := func(raw string) key {
		k, seen := keys[raw]
		if !seen {
			t, err := eve.ParseInstant(raw)
			k = key{t: t, ok: err == nil}
			keys[raw] = k
		}
		return k
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		ki, kj := keyOf(alerts[i].RawTimestamp), keyOf(alerts[j].RawTimestamp)
		switch {
		case ki.ok && !kj.ok:
			return true
		case !ki.ok && kj.ok:
			return false
		case ki.ok && kj.ok && !ki.t.Equal(kj.t):
			return ki.t.After(kj.t)
		default:
			return alerts[i].RawTimestamp > alerts[j].RawTimestamp
		}
	})
}
