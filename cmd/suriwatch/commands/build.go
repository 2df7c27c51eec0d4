package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/livp123/suriwatch/internal/config"
	"github.com/livp123/suriwatch/internal/minilog"
	"github.com/livp123/suriwatch/internal/utils/fmtutil"
	"github.com/livp123/suriwatch/pkg/storage"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	buildSource string
	buildLines  int
	buildOutput string
)

// BuildCmd 实现 'build' 命令
// BuildCmd implements the 'build' command
var BuildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the alert index from the tail of the EVE log",
	// Short: 从 EVE 日志末尾构建告警索引
	Long: `Read the last lines of the EVE log, keep the alert events and
replace the persisted index snapshot.
读取 EVE 日志的最后若干行，保留告警事件并替换已持久化的索引快照。`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		executor := NewCommandExecutor(cmd)
		return executor.ExecuteWithConfig(func(ctx context.Context, cfg *config.GlobalConfig) error {
			applyBuildFlags(cmd, cfg)

			store, release, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = release() }()

			start := time.Now()
			snap, err := newBuilder(cfg, store, executor.Logger()).Build(ctx)
			if err != nil {
				return err
			}

			size := uint64(0)
			if fi, err := os.Stat(cfg.Index.SnapshotPath); err == nil {
				size = uint64(fi.Size())
			}
			executor.PrintSuccess(fmt.Sprintf("Indexed %s alerts over %d dates into %s (%s, %s)",
				fmtutil.FormatNumberWithComma(uint64(len(snap.Alerts))),
				len(snap.Dates()),
				cfg.Index.SnapshotPath,
				fmtutil.FormatBytes(size),
				fmtutil.FormatDuration(time.Since(start))))
			return nil
		})
	},
}

func init() {
	BuildCmd.Flags().StringVarP(&buildSource, "source", "s", "", "EVE log to read (overrides source.eve_path)")
	BuildCmd.Flags().IntVarP(&buildLines, "lines", "n", 0, "Number of trailing lines to read (overrides source.tail_lines)")
	BuildCmd.Flags().StringVarP(&buildOutput, "output", "o", "", "Snapshot file to write (overrides index.snapshot_path)")
	RootCmd.AddCommand(BuildCmd)
}

func applyBuildFlags(cmd *cobra.Command, cfg *config.GlobalConfig) {
	if cmd.Flags().Changed("source") {
		cfg.Source.EvePath = buildSource
	}
	if cmd.Flags().Changed("lines") {
		cfg.Source.TailLines = buildLines
	}
	if cmd.Flags().Changed("output") {
		cfg.Index.SnapshotPath = buildOutput
	}
}

func openStore(cfg *config.GlobalConfig) (storage.SnapshotStore, func() error, error) {
	return storage.Open(cfg.Index.Backend, cfg.Index.SnapshotPath)
}

func newBuilder(cfg *config.GlobalConfig, store storage.SnapshotStore, log *zap.SugaredLogger) *minilog.Builder {
	return minilog.New(minilog.Options{
		SourcePath: cfg.Source.EvePath,
		TailLines:  cfg.Source.TailLines,
		Store:      store,
		Logger:     log,
	})
}
