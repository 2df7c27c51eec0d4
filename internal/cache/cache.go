// Package cache serves grouped, filtered views of the persisted alert index.
// Package cache 提供持久化告警索引的分组、过滤视图。
package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/livp123/suriwatch/internal/eve"
	"github.com/livp123/suriwatch/internal/metrics"
	"github.com/livp123/suriwatch/internal/utils/logger"
	"github.com/livp123/suriwatch/pkg/storage"
	"go.uber.org/zap"
)

const (
	DefaultRefreshInterval = 30 * time.Second
	DefaultLimitPerGroup   = 20
)

// Options configures a Cache.
// Options 配置 Cache。
type Options struct {
	Store           storage.SnapshotStore
	RefreshInterval time.Duration
	LimitPerGroup   int
	Logger          *zap.SugaredLogger
}

// state is replaced as a whole; alerts and dates always belong to the same snapshot.
// state 整体替换；alerts 与 dates 始终属于同一个快照。
type state struct {
	alerts      []eve.Alert
	dates       []string
	builtAt     time.Time
	lastRefresh time.Time
	loaded      bool
}

// Cache holds the most recently loaded snapshot.
// Reloads are serialized; queries read an immutable state and run in parallel.
// Cache 保存最近加载的快照。重新加载是串行的；查询读取不可变状态，可并行执行。
type Cache struct {
	store    storage.SnapshotStore
	interval time.Duration
	limit    int
	log      *zap.SugaredLogger

	refreshMu sync.Mutex
	current   atomic.Pointer[state]
}

// New creates an empty Cache; the first RefreshIfStale loads the snapshot.
// New 创建空 Cache；第一次 RefreshIfStale 时加载快照。
func New(opts Options) *Cache {
	if opts.RefreshInterval < 0 {
		opts.RefreshInterval = DefaultRefreshInterval
	}
	if opts.LimitPerGroup <= 0 {
		opts.LimitPerGroup = DefaultLimitPerGroup
	}
	if opts.Logger == nil {
		opts.Logger = logger.Get(nil)
	}
	c := &Cache{
		store:    opts.Store,
		interval: opts.RefreshInterval,
		limit:    opts.LimitPerGroup,
		log:      opts.Logger,
	}
	c.current.Store(&state{alerts: []eve.Alert{}, dates: []string{}})
	return c
}

func (c *Cache) stale(s *state, now time.Time) bool {
	return !s.loaded || now.Sub(s.lastRefresh) > c.interval
}

// RefreshIfStale reloads the persisted snapshot when the last refresh is older
// than the refresh interval. On failure the previous alerts and dates keep
// being served and the next attempt waits a full interval.
// RefreshIfStale 在上次刷新早于刷新间隔时重新加载持久化快照。
// 失败时继续提供之前的告警和日期，下一次尝试将等待完整的间隔。
func (c *Cache) RefreshIfStale(ctx context.Context, now time.Time) error {
	if !c.stale(c.current.Load(), now) {
		return nil
	}

	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	// Another caller may have refreshed while we waited
	// 等待期间其他调用方可能已经刷新
	prev := c.current.Load()
	if !c.stale(prev, now) {
		return nil
	}

	snap, err := c.store.Load(ctx)
	if err != nil {
		metrics.CacheRefreshesTotal.WithLabelValues(metrics.ResultError).Inc()
		c.log.Warnf("⚠️  Cache reload failed, serving last good state: %v", err)
		next := *prev
		next.lastRefresh = now
		next.loaded = true
		c.current.Store(&next)
		return err
	}

	alerts := snap.Alerts
	if alerts == nil {
		alerts = []eve.Alert{}
	}
	c.current.Store(&state{
		alerts:      alerts,
		dates:       eve.DistinctDates(alerts),
		builtAt:     snap.BuiltAt,
		lastRefresh: now,
		loaded:      true,
	})
	metrics.CacheRefreshesTotal.WithLabelValues(metrics.ResultOK).Inc()
	metrics.CacheAlerts.Set(float64(len(alerts)))
	c.log.Debugf("Cache reloaded (%d alerts)", len(alerts))
	return nil
}

// Stats describes the cached snapshot; every field comes from the same state.
// Stats 描述缓存的快照；所有字段来自同一个状态。
type Stats struct {
	Alerts      int
	Dates       []string
	BuiltAt     time.Time
	LastRefresh time.Time
}

// Stats returns the size, dates, build time and last reload attempt of the cache.
// Stats 返回缓存的大小、日期、构建时间和上次重新加载时间。
func (c *Cache) Stats() Stats {
	s := c.current.Load()
	return Stats{
		Alerts:      len(s.alerts),
		Dates:       copyDates(s.dates),
		BuiltAt:     s.builtAt,
		LastRefresh: s.lastRefresh,
	}
}

func copyDates(dates []string) []string {
	out := make([]string, len(dates))
	copy(out, dates)
	return out
}

// LimitPerGroup returns the default preview size.
func (c *Cache) LimitPerGroup() int {
	return c.limit
}
