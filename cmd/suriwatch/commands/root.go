package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/livp123/suriwatch/internal/config"
	"github.com/livp123/suriwatch/internal/runtime"
	"github.com/livp123/suriwatch/internal/utils/logger"
	"github.com/spf13/cobra"
)

var RootCmd = &cobra.Command{
	Use:   "suriwatch",
	Short: "Suricata alert indexer, viewer and live notifier",
	// Short: Suricata 告警索引、查看与实时通知工具
	Long: `suriwatch reads the Suricata EVE JSON log, builds a compact alert index,
serves grouped alert views over HTTP and raises desktop notifications for new alerts.
suriwatch 读取 Suricata EVE JSON 日志，构建精简告警索引，
通过 HTTP 提供分组告警视图，并为新告警发送桌面通知。`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Load configuration to get logging settings
		// 加载配置以获取日志设置
		logCfg := logger.LoggingConfig{Level: "info"}
		if cfg, err := config.LoadOrDefault(config.GetConfigPath()); err == nil {
			logCfg = cfg.Logging
		}
		if runtime.Verbose {
			logCfg.Level = "debug"
		}
		logger.Init(logCfg)

		// Inject logger into context
		// 将 Logger 注入 Context
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		cmd.SetContext(logger.WithContext(ctx, logger.Get(nil)))
	},
}

func init() {
	// Config file path
	// 配置文件路径
	RootCmd.PersistentFlags().StringVarP(&runtime.ConfigPath, "config", "c", "", fmt.Sprintf("Path to configuration file (default: %s)", config.DefaultConfigPath))
	RootCmd.PersistentFlags().BoolVarP(&runtime.Verbose, "verbose", "v", false, "Enable debug logging")

	RootCmd.CompletionOptions.DisableDescriptions = true
}

// Execute runs the root command; SIGINT and SIGTERM cancel its context.
// Execute 运行根命令；SIGINT 和 SIGTERM 会取消其 Context。
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := RootCmd.ExecuteContext(ctx)
	stop()
	_ = logger.Sync()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
