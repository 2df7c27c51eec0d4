// Package monitor follows the sensor log and raises desktop notifications
// for new alerts, rate limited per signature.
// Package monitor 跟踪传感器日志，为新告警发送桌面通知，并按签名限流。
package monitor

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/livp123/suriwatch/internal/eve"
	"github.com/livp123/suriwatch/internal/filter"
	"github.com/livp123/suriwatch/internal/metrics"
	"github.com/livp123/suriwatch/internal/notify"
	"github.com/livp123/suriwatch/internal/utils/logger"
	xerrors "github.com/livp123/suriwatch/pkg/errors"
	"github.com/nxadm/tail"
	"github.com/nxadm/tail/watch"
	"go.uber.org/zap"
)

const (
	DefaultCooldown      = 30 * time.Second
	DefaultPollInterval  = time.Second
	DefaultMaxReadErrors = 5

	// NotificationTitle is the title of every alert notification.
	// NotificationTitle 是所有告警通知的标题。
	NotificationTitle = "🚨 Suricata Alert"

	unknownAddress = "unknown"
)

// Decision is the outcome of handling one line.
// Decision 是处理一行日志的结果。
type Decision uint8

const (
	DecisionSkipped Decision = iota
	DecisionFiltered
	DecisionSuppressed
	DecisionNotified
	DecisionFailed
)

func (d Decision) String() string {
	switch d {
	case DecisionSkipped:
		return "skipped"
	case DecisionFiltered:
		return "filtered"
	case DecisionSuppressed:
		return "suppressed"
	case DecisionNotified:
		return "notified"
	case DecisionFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Options configures a Monitor.
// Options 配置 Monitor。
type Options struct {
	Path          string
	Cooldown      time.Duration
	PollInterval  time.Duration
	MaxReadErrors int
	Filter        *filter.Filter
	Notifier      notify.Notifier
	Logger        *zap.SugaredLogger
	Now           func() time.Time
}

// Monitor owns its cooldown table; nothing is shared with other monitors.
// Monitor 拥有自己的冷却表，不与其他 Monitor 共享。
type Monitor struct {
	path          string
	poll          time.Duration
	maxReadErrors int
	filter        *filter.Filter
	notifier      notify.Notifier
	log           *zap.SugaredLogger
	now           func() time.Time
	cooldown      *Cooldown
}

// New creates a Monitor, applying defaults for unset options.
// New 创建 Monitor，未设置的选项使用默认值。
func New(opts Options) *Monitor {
	if opts.Cooldown < 0 {
		opts.Cooldown = DefaultCooldown
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}
	if opts.MaxReadErrors <= 0 {
		opts.MaxReadErrors = DefaultMaxReadErrors
	}
	if opts.Logger == nil {
		opts.Logger = logger.Get(nil)
	}
	if opts.Notifier == nil {
		opts.Notifier = &notify.LogNotifier{Logger: opts.Logger}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Monitor{
		path:          opts.Path,
		poll:          opts.PollInterval,
		maxReadErrors: opts.MaxReadErrors,
		filter:        opts.Filter,
		notifier:      opts.Notifier,
		log:           opts.Logger,
		now:           opts.Now,
		cooldown:      NewCooldown(opts.Cooldown),
	}
}

var pollOnce sync.Once

// ConfigurePolling sets how often the follow reader checks the file for changes
// and returns the interval in effect. The interval is process-global: only the
// first call applies, and it must happen before any monitor runs.
// ConfigurePolling 设置跟踪读取器检查文件变化的间隔并返回生效的间隔。
// 该间隔为进程全局：只有第一次调用生效，且必须在任何监控器运行之前调用。
func ConfigurePolling(d time.Duration) time.Duration {
	pollOnce.Do(func() {
		if d > 0 {
			watch.POLL_DURATION = d
		}
	})
	return watch.POLL_DURATION
}

// Cooldown exposes the monitor's cooldown table.
func (m *Monitor) Cooldown() *Cooldown {
	return m.cooldown
}

// Run follows the log from its current end until ctx is cancelled.
// A missing file at start is fatal; a file that stays missing for
// MaxReadErrors consecutive checks ends the run.
// Run 从日志当前末尾开始跟踪，直到 ctx 被取消。
// 启动时文件不存在为致命错误；文件连续 MaxReadErrors 次检查都不存在时结束运行。
func (m *Monitor) Run(ctx context.Context) error {
	if _, err := os.Stat(m.path); err != nil {
		return xerrors.NewSourceError(m.path, err)
	}

	tailer, err := tail.TailFile(m.path, tail.Config{
		Location:  &tail.SeekInfo{Offset: 0, Whence: io.SeekEnd},
		Follow:    true,
		ReOpen:    true, // Handle log rotation
		MustExist: true,
		Poll:      true,
		Logger:    tail.DiscardingLogger,
	})
	if err != nil {
		return xerrors.NewSourceError(m.path, err)
	}
	defer tailer.Cleanup()
	defer func() { _ = tailer.Stop() }()

	m.log.Infof("👀 Monitoring %s (cooldown: %s, poll: %s, filter: %q)",
		m.path, m.cooldown.Window(), m.poll, m.filter.String())

	ticker := time.NewTicker(m.poll)
	defer ticker.Stop()

	misses := 0
	for {
		select {
		case <-ctx.Done():
			m.log.Infof("🛑 Monitor stopped")
			return nil

		case line, ok := <-tailer.Lines:
			if !ok {
				return xerrors.NewSourceError(m.path, fmt.Errorf("tail stopped: %v", tailer.Err()))
			}
			if line.Err != nil {
				metrics.MonitorReadErrorsTotal.Inc()
				m.log.Warnf("[WARN]  Error reading %s: %v", m.path, line.Err)
				continue
			}
			m.Handle(ctx, line.Text)

		case <-ticker.C:
			if _, err := os.Stat(m.path); err != nil {
				misses++
				metrics.MonitorReadErrorsTotal.Inc()
				m.log.Warnf("[WARN]  %s unavailable (%d/%d): %v", m.path, misses, m.maxReadErrors, err)
				if misses >= m.maxReadErrors {
					return xerrors.NewSourceError(m.path, err)
				}
				continue
			}
			misses = 0
		}
	}
}

// Handle processes one log line and returns what happened to it.
// Handle 处理一行日志并返回处理结果。
func (m *Monitor) Handle(ctx context.Context, line string) Decision {
	a, reason, ok := eve.NormalizeString(line)
	metrics.LinesTotal.WithLabelValues("monitor", reason.String()).Inc()
	if !ok {
		return DecisionSkipped
	}

	matched, err := m.filter.Match(a)
	if err != nil {
		m.log.Debugf("Filter error for %q: %v", a.Signature, err)
	}
	if !matched {
		metrics.NotificationsTotal.WithLabelValues(metrics.ResultFiltered).Inc()
		return DecisionFiltered
	}

	if !m.cooldown.Allow(a.Signature, m.now()) {
		metrics.NotificationsTotal.WithLabelValues(metrics.ResultSuppressed).Inc()
		m.log.Debugf("Suppressed %q (cooldown)", a.Signature)
		return DecisionSuppressed
	}

	if err := m.notifier.Notify(ctx, NotificationTitle, Body(a)); err != nil {
		metrics.NotificationsTotal.WithLabelValues(metrics.ResultFailed).Inc()
		m.log.Warnf("[WARN]  Notification failed for %q: %v", a.Signature, err)
		return DecisionFailed
	}
	metrics.NotificationsTotal.WithLabelValues(metrics.ResultSent).Inc()
	m.log.Infof("🚨 %s (%s -> %s)", a.Signature, a.SourceAddress, a.DestinationAddress)
	return DecisionNotified
}

// Body renders the notification text for an alert.
// Body 生成告警的通知正文。
func Body(a eve.Alert) string {
	return fmt.Sprintf("%s\nFrom: %s -> %s", a.Signature, orUnknown(a.SourceAddress), orUnknown(a.DestinationAddress))
}

func orUnknown(s string) string {
	if s == "" {
		return unknownAddress
	}
	return s
}
