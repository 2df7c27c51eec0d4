// Package minilog builds the compact alert index from the tail of the sensor log.
// Package minilog 从传感器日志末尾构建精简告警索引。
package minilog

import (
	"context"
	"time"

	"github.com/livp123/suriwatch/internal/eve"
	"github.com/livp123/suriwatch/internal/metrics"
	"github.com/livp123/suriwatch/internal/tailfile"
	"github.com/livp123/suriwatch/internal/utils/logger"
	xerrors "github.com/livp123/suriwatch/pkg/errors"
	"github.com/livp123/suriwatch/pkg/storage"
	"go.uber.org/zap"
)

const component = "builder"

// Options configures a Builder.
// Options 配置 Builder。
type Options struct {
	SourcePath string
	TailLines  int
	Store      storage.SnapshotStore
	Logger     *zap.SugaredLogger
	Now        func() time.Time
}

// Builder produces and persists IndexSnapshots. It only reads the source log.
// Builder 生成并持久化索引快照，仅读取源日志。
type Builder struct {
	source    string
	tailLines int
	store     storage.SnapshotStore
	log       *zap.SugaredLogger
	now       func() time.Time
}

// New creates a Builder.
func New(opts Options) *Builder {
	if opts.Logger == nil {
		opts.Logger = logger.Get(nil)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.TailLines < 0 {
		opts.TailLines = 0
	}
	return &Builder{
		source:    opts.SourcePath,
		tailLines: opts.TailLines,
		store:     opts.Store,
		log:       opts.Logger,
		now:       opts.Now,
	}
}

// Collect reads and normalizes the tail of the source log without persisting.
// A missing source yields an empty snapshot.
// Collect 读取并规范化源日志末尾，不做持久化。源文件缺失时返回空快照。
func (b *Builder) Collect(ctx context.Context) (*storage.Snapshot, error) {
	lines, err := tailfile.Tail(b.source, b.tailLines)
	if err != nil {
		return nil, xerrors.NewSourceError(b.source, err)
	}
	if lines == nil {
		b.log.Warnf("⚠️  Source log %s not found or empty, no data yet", b.source)
	}

	alerts := make([]eve.Alert, 0, len(lines))
	var malformed, skipped int
	for i, line := range lines {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		a, reason, ok := eve.NormalizeString(line)
		metrics.LinesTotal.WithLabelValues(component, reason.String()).Inc()
		if !ok {
			if reason == eve.ReasonMalformed {
				malformed++
			} else {
				skipped++
			}
			continue
		}
		alerts = append(alerts, a)
	}
	b.log.Debugf("Read %d lines from %s (%d alerts, %d malformed, %d other events)",
		len(lines), b.source, len(alerts), malformed, skipped)

	return &storage.Snapshot{
		BuiltAt: b.now(),
		Source:  b.source,
		Alerts:  alerts,
	}, nil
}

// Build collects the snapshot and replaces the persisted one.
// Build 收集快照并替换已持久化的快照。
func (b *Builder) Build(ctx context.Context) (*storage.Snapshot, error) {
	snap, err := b.Collect(ctx)
	if err != nil {
		metrics.IndexBuildsTotal.WithLabelValues(metrics.ResultError).Inc()
		return nil, err
	}
	if err := b.store.Save(ctx, snap); err != nil {
		metrics.IndexBuildsTotal.WithLabelValues(metrics.ResultError).Inc()
		b.log.Errorf("❌ Failed to persist index snapshot: %v", err)
		return nil, err
	}

	metrics.IndexBuildsTotal.WithLabelValues(metrics.ResultOK).Inc()
	metrics.IndexAlerts.Set(float64(len(snap.Alerts)))
	b.log.Infof("✅ Index built from %s (%d alerts, %d dates)", b.source, len(snap.Alerts), len(snap.Dates()))
	return snap, nil
}

// Run builds once immediately and then every interval until ctx is done.
// Build failures are logged and retried on the next tick.
// Run 立即构建一次，之后每隔 interval 构建，直到 ctx 结束。构建失败会记录日志并在下一次重试。
func (b *Builder) Run(ctx context.Context, interval time.Duration) {
	if _, err := b.Build(ctx); err != nil {
		b.log.Warnf("⚠️  Index build failed: %v", err)
	}
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := b.Build(ctx); err != nil {
				b.log.Warnf("⚠️  Index build failed: %v", err)
			}
		}
	}
}
