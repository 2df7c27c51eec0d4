package commands

import (
	"context"
	"time"

	"github.com/livp123/suriwatch/internal/config"
	"github.com/livp123/suriwatch/internal/filter"
	"github.com/livp123/suriwatch/internal/monitor"
	"github.com/livp123/suriwatch/internal/notify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	monitorSource    string
	monitorCooldown  time.Duration
	monitorFilter    string
	monitorNoDesktop bool
)

// MonitorCmd 实现 'monitor' 命令
// MonitorCmd implements the 'monitor' command
var MonitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Follow the EVE log and notify on new alerts",
	// Short: 跟踪 EVE 日志并在出现新告警时通知
	Long: `Follow the EVE log from its current end and raise a desktop notification
for each new alert. A signature notifies at most once per cooldown window.
从 EVE 日志当前末尾开始跟踪，为每条新告警发送桌面通知。
同一签名在每个冷却窗口内最多通知一次。`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		executor := NewCommandExecutor(cmd)
		return executor.ExecuteWithConfig(func(ctx context.Context, cfg *config.GlobalConfig) error {
			if cmd.Flags().Changed("source") {
				cfg.Source.EvePath = monitorSource
			}
			if cmd.Flags().Changed("filter") {
				cfg.Monitor.Filter = monitorFilter
			}
			if cmd.Flags().Changed("no-desktop") {
				cfg.Monitor.NotifySend = !monitorNoDesktop
			}

			cooldown, _ := cfg.Cooldown()
			if cmd.Flags().Changed("cooldown") {
				cooldown = monitorCooldown
			}
			poll, _ := cfg.PollInterval()

			f, err := filter.Compile(cfg.Monitor.Filter)
			if err != nil {
				return err
			}

			log := executor.Logger()
			if effective := monitor.ConfigurePolling(poll); effective != poll {
				log.Warnf("⚠️  File polling already set to %s, ignoring %s", effective, poll)
			}
			m := monitor.New(monitor.Options{
				Path:          cfg.Source.EvePath,
				Cooldown:      cooldown,
				PollInterval:  poll,
				MaxReadErrors: cfg.Monitor.MaxReadErrors,
				Filter:        f,
				Notifier:      newNotifier(cfg, log),
				Logger:        log,
			})
			return m.Run(ctx)
		})
	},
}

func init() {
	MonitorCmd.Flags().StringVarP(&monitorSource, "source", "s", "", "EVE log to follow (overrides source.eve_path)")
	MonitorCmd.Flags().DurationVar(&monitorCooldown, "cooldown", monitor.DefaultCooldown, "Per-signature notification cooldown (overrides monitor.cooldown)")
	MonitorCmd.Flags().StringVarP(&monitorFilter, "filter", "f", "", `Notification filter expression, e.g. 'Severity <= 2' (overrides monitor.filter)`)
	MonitorCmd.Flags().BoolVar(&monitorNoDesktop, "no-desktop", false, "Log notifications instead of calling notify-send")
	RootCmd.AddCommand(MonitorCmd)
}

// newNotifier always logs, and also calls notify-send when enabled and installed.
// newNotifier 始终记录日志；启用且已安装时同时调用 notify-send。
func newNotifier(cfg *config.GlobalConfig, log *zap.SugaredLogger) notify.Notifier {
	logNotifier := &notify.LogNotifier{Logger: log}
	if !cfg.Monitor.NotifySend {
		return logNotifier
	}
	desktop := notify.NewDesktopNotifier()
	if !desktop.Available() {
		log.Warnf("[WARN]  %s not found, notifications will only be logged", notify.DefaultCommand)
		return logNotifier
	}
	return notify.Multi{desktop, logNotifier}
}
