package commands

import (
	"context"
	"os"
	"time"

	"github.com/livp123/suriwatch/internal/config"
	"github.com/livp123/suriwatch/internal/utils/fmtutil"
	"github.com/livp123/suriwatch/pkg/storage"
	"github.com/spf13/cobra"
)

// StatusCmd 实现 'status' 命令
// StatusCmd implements the 'status' command
var StatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the persisted index snapshot",
	// Short: 显示已持久化的索引快照
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		executor := NewCommandExecutor(cmd)
		return executor.ExecuteWithConfig(func(ctx context.Context, cfg *config.GlobalConfig) error {
			store, release, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = release() }()

			snap, err := store.Load(ctx)
			if err != nil {
				return err
			}

			cmd.Printf("Snapshot: %s (%s)\n", cfg.Index.SnapshotPath, backendName(cfg.Index.Backend))
			if fi, err := os.Stat(cfg.Index.SnapshotPath); err == nil {
				cmd.Printf("Size:     %s\n", fmtutil.FormatBytes(uint64(fi.Size())))
			}
			if snap.BuiltAt.IsZero() {
				cmd.Println("Built:    never")
			} else {
				cmd.Printf("Built:    %s (%s ago)\n", snap.BuiltAt.Format(time.RFC3339), fmtutil.FormatDuration(time.Since(snap.BuiltAt).Truncate(time.Second)))
			}
			if snap.Source != "" {
				cmd.Printf("Source:   %s\n", snap.Source)
			}
			cmd.Printf("Alerts:   %s\n", fmtutil.FormatNumberWithComma(uint64(len(snap.Alerts))))

			dates := snap.Dates()
			cmd.Printf("Dates:    %d\n", len(dates))
			for _, d := range dates {
				cmd.Printf(" - %s\n", d)
			}
			return nil
		})
	},
}

func backendName(b string) string {
	if b == "" {
		return storage.BackendFile
	}
	return b
}

func init() {
	RootCmd.AddCommand(StatusCmd)
}
