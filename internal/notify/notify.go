// Package notify delivers fire-and-forget alert notifications.
// Package notify 负责发送一次性的告警通知。
package notify

import (
	"context"
	"errors"
	"os/exec"
	"time"

	"github.com/livp123/suriwatch/internal/utils/logger"
	"go.uber.org/zap"
)

const (
	// DefaultCommand is the desktop notification helper.
	// DefaultCommand 是桌面通知工具。
	DefaultCommand = "notify-send"

	// DefaultTimeout bounds a single desktop notification call.
	DefaultTimeout = 5 * time.Second
)

// Notifier delivers one notification.
// Notifier 发送一条通知。
type Notifier interface {
	Notify(ctx context.Context, title, body string) error
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, title, body string) error

func (f NotifierFunc) Notify(ctx context.Context, title, body string) error {
	return f(ctx, title, body)
}

// DesktopNotifier runs notify-send (or a compatible command) with title and body.
// DesktopNotifier 使用标题和正文运行 notify-send（或兼容命令）。
type DesktopNotifier struct {
	Command string
	Timeout time.Duration
}

// NewDesktopNotifier returns a DesktopNotifier using notify-send.
func NewDesktopNotifier() *DesktopNotifier {
	return &DesktopNotifier{Command: DefaultCommand, Timeout: DefaultTimeout}
}

// Available reports whether the notification command is on PATH.
// Available 检查通知命令是否在 PATH 中。
func (d *DesktopNotifier) Available() bool {
	_, err := exec.LookPath(d.command())
	return err == nil
}

func (d *DesktopNotifier) command() string {
	if d.Command == "" {
		return DefaultCommand
	}
	return d.Command
}

func (d *DesktopNotifier) Notify(ctx context.Context, title, body string) error {
	timeout := d.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	return exec.CommandContext(ctx, d.command(), title, body).Run()
}

// LogNotifier writes notifications to a logger.
// LogNotifier 将通知写入日志。
type LogNotifier struct {
	Logger *zap.SugaredLogger
}

func (l *LogNotifier) Notify(ctx context.Context, title, body string) error {
	log := l.Logger
	if log == nil {
		log = logger.Get(ctx)
	}
	log.Infow("🔔 "+title, "body", body)
	return nil
}

// Multi fans a notification out to every notifier and joins their errors.
// Multi 将通知分发给所有 Notifier 并合并错误。
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, title, body string) error {
	var errs []error
	for _, n := range m {
		if n == nil {
			continue
		}
		if err := n.Notify(ctx, title, body); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
