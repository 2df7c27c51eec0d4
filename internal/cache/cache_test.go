package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/livp123/suriwatch/internal/eve"
	"github.com/livp123/suriwatch/internal/utils/logger"
	xerrors "github.com/livp123/suriwatch/pkg/errors"
	"github.com/livp123/suriwatch/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 1, 2, 12, 0, 0, 0, time.UTC)

// fakeStore serves a settable snapshot and counts loads
// fakeStore 提供可设置的快照并统计加载次数
type fakeStore struct {
	mu       sync.Mutex
	snap     *storage.Snapshot
	err      error
	loads    int32
	inflight int32
	maxSeen  int32
	delay    time.Duration
}

func (f *fakeStore) set(snap *storage.Snapshot, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.snap, f.err = snap, err
}

func (f *fakeStore) Save(ctx context.Context, snap *storage.Snapshot) error {
	f.set(snap, nil)
	return nil
}

func (f *fakeStore) Load(ctx context.Context) (*storage.Snapshot, error) {
	n := atomic.AddInt32(&f.inflight, 1)
	defer atomic.AddInt32(&f.inflight, -1)
	for {
		m := atomic.LoadInt32(&f.maxSeen)
		if n <= m || atomic.CompareAndSwapInt32(&f.maxSeen, m, n) {
			break
		}
	}
	atomic.AddInt32(&f.loads, 1)
	if f.delay > 0 {
		time.Sleep(f.delay)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.snap, nil
}

func alert(sig, ts string) eve.Alert {
	parsed := eve.ParseTimestamp(ts)
	return eve.Alert{
		Signature:          sig,
		RawTimestamp:       ts,
		FormattedTimestamp: parsed.Formatted,
		DateOnly:           parsed.Date,
	}
}

func newCache(store storage.SnapshotStore, interval time.Duration, limit int) *Cache {
	return New(Options{
		Store:           store,
		RefreshInterval: interval,
		LimitPerGroup:   limit,
		Logger:          logger.New(logger.LoggingConfig{Level: "error"}),
	})
}

// TestRefreshIfStale_Interval tests the staleness gate
// TestRefreshIfStale_Interval 测试过期判断
func TestRefreshIfStale_Interval(t *testing.T) {
	store := &fakeStore{}
	store.set(&storage.Snapshot{Alerts: []eve.Alert{alert("A", "2024-01-01T10:00:00Z")}}, nil)
	c := newCache(store, 30*time.Second, 20)

	assert.Equal(t, 0, c.Stats().Alerts)
	require.NoError(t, c.RefreshIfStale(context.Background(), t0))
	assert.Equal(t, 1, c.Stats().Alerts)
	assert.Equal(t, []string{"2024-01-01"}, c.Stats().Dates)
	assert.Equal(t, int32(1), atomic.LoadInt32(&store.loads))

	// Within the interval nothing is reloaded
	// 间隔内不重新加载
	store.set(&storage.Snapshot{Alerts: []eve.Alert{alert("A", "2024-01-01T10:00:00Z"), alert("B", "2024-01-02T10:00:00Z")}}, nil)
	require.NoError(t, c.RefreshIfStale(context.Background(), t0.Add(30*time.Second)))
	assert.Equal(t, 1, c.Stats().Alerts)
	assert.Equal(t, int32(1), atomic.LoadInt32(&store.loads))

	// Strictly older than the interval reloads
	// 严格超过间隔时重新加载
	require.NoError(t, c.RefreshIfStale(context.Background(), t0.Add(31*time.Second)))
	assert.Equal(t, 2, c.Stats().Alerts)
	assert.Equal(t, []string{"2024-01-01", "2024-01-02"}, c.Stats().Dates)
	assert.Equal(t, t0.Add(31*time.Second), c.Stats().LastRefresh)
}

// TestRefreshIfStale_KeepsLastGood tests that a failed reload keeps serving old data
// TestRefreshIfStale_KeepsLastGood 测试重新加载失败时继续提供旧数据
func TestRefreshIfStale_KeepsLastGood(t *testing.T) {
	store := &fakeStore{}
	built := t0.Add(-time.Hour)
	store.set(&storage.Snapshot{BuiltAt: built, Alerts: []eve.Alert{alert("A", "2024-01-01T10:00:00Z")}}, nil)
	c := newCache(store, time.Second, 20)
	require.NoError(t, c.RefreshIfStale(context.Background(), t0))

	store.set(nil, xerrors.NewPersistenceError("decode", "/x", errors.New("bad json")))
	err := c.RefreshIfStale(context.Background(), t0.Add(5*time.Second))
	require.Error(t, err)
	assert.True(t, errors.Is(err, xerrors.ErrPersistence))
	assert.Equal(t, 1, c.Stats().Alerts)
	assert.Equal(t, []string{"2024-01-01"}, c.Stats().Dates)
	assert.True(t, built.Equal(c.Stats().BuiltAt))

	// The failed attempt counts as a refresh for pacing
	// 失败的尝试也计入刷新节奏
	loads := atomic.LoadInt32(&store.loads)
	require.NoError(t, c.RefreshIfStale(context.Background(), t0.Add(5500*time.Millisecond)))
	assert.Equal(t, loads, atomic.LoadInt32(&store.loads))
}

// TestRefreshIfStale_FirstLoadFails tests an initial failure leaves an empty cache
func TestRefreshIfStale_FirstLoadFails(t *testing.T) {
	store := &fakeStore{}
	store.set(nil, errors.New("io"))
	c := newCache(store, time.Second, 20)

	assert.Error(t, c.RefreshIfStale(context.Background(), t0))
	assert.Equal(t, 0, c.Stats().Alerts)
	assert.Empty(t, c.ListGrouped("", 0, t0))
	assert.Equal(t, []string{}, c.Stats().Dates)
}

// TestRefreshIfStale_Serialized tests that concurrent callers trigger one reload
// TestRefreshIfStale_Serialized 测试并发调用只触发一次重新加载
func TestRefreshIfStale_Serialized(t *testing.T) {
	store := &fakeStore{delay: 20 * time.Millisecond}
	store.set(&storage.Snapshot{Alerts: []eve.Alert{alert("A", "2024-01-01T10:00:00Z")}}, nil)
	c := newCache(store, time.Minute, 20)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = c.RefreshIfStale(context.Background(), t0)
			_ = c.ListGrouped("", 0, t0)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&store.loads))
	assert.Equal(t, int32(1), atomic.LoadInt32(&store.maxSeen))
}

// TestRefreshIfStale_PairConsistency tests that readers never see alerts and dates from different snapshots
// TestRefreshIfStale_PairConsistency 测试读取方不会看到来自不同快照的告警和日期
func TestRefreshIfStale_PairConsistency(t *testing.T) {
	store := &fakeStore{}
	c := newCache(store, 0, 20)
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for v := 1; ctx.Err() == nil; v++ {
			day := v%28 + 1
			ts := fmt.Sprintf("2024-02-%02dT10:00:00Z", day)
			store.set(&storage.Snapshot{Alerts: []eve.Alert{alert(fmt.Sprintf("v%d", day), ts)}}, nil)
			_ = c.RefreshIfStale(context.Background(), t0.Add(time.Duration(v)*time.Second))
		}
	}()

	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for ctx.Err() == nil {
				v := c.View("", 0, t0)
				if len(v.Groups) == 0 {
					continue
				}
				if !assert.Equal(t, []string{v.Groups[0].Alerts[0].DateOnly}, v.Dates) {
					return
				}
			}
		}()
	}
	wg.Wait()
}

// TestView tests that View carries the dates, groups and build time of one snapshot
// TestView 测试 View 携带同一快照的日期、分组和构建时间
func TestView(t *testing.T) {
	built := t0.Add(-time.Hour)
	store := &fakeStore{}
	store.set(&storage.Snapshot{BuiltAt: built, Alerts: []eve.Alert{
		alert("B", "2024-01-02T10:00:00Z"),
		alert("A", "2024-01-01T10:00:00Z"),
		alert("B", "2024-01-02T11:00:00Z"),
	}}, nil)
	c := newCache(store, time.Minute, 1)
	require.NoError(t, c.RefreshIfStale(context.Background(), t0))

	v := c.View("2024-01-02", 0, t0)
	assert.Equal(t, []string{"2024-01-01", "2024-01-02"}, v.Dates)
	assert.True(t, built.Equal(v.BuiltAt))
	require.Len(t, v.Groups, 1)
	assert.Equal(t, "B", v.Groups[0].Signature)
	assert.Equal(t, 2, v.Groups[0].Total)
	require.Len(t, v.Groups[0].Alerts, 1)
	assert.Equal(t, "2024-01-02T11:00:00Z", v.Groups[0].Alerts[0].RawTimestamp)

	v.Dates[0] = "mutated"
	assert.Equal(t, "2024-01-01", c.Stats().Dates[0])
}

// TestNew_Defaults tests option defaults
func TestNew_Defaults(t *testing.T) {
	c := New(Options{Store: &fakeStore{}, RefreshInterval: -1})
	assert.Equal(t, DefaultRefreshInterval, c.interval)
	assert.Equal(t, DefaultLimitPerGroup, c.LimitPerGroup())
}
