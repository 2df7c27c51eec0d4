package commands

import (
	"fmt"
	"time"

	"github.com/livp123/suriwatch/internal/sample"
	"github.com/spf13/cobra"
)

var genCount int

// GenTestLogsCmd 实现 'gen-test-logs' 命令
// GenTestLogsCmd implements the 'gen-test-logs' command
var GenTestLogsCmd = &cobra.Command{
	Use:   "gen-test-logs [file]",
	Short: "Write a synthetic EVE log for testing",
	// Short: 生成用于测试的模拟 EVE 日志
	Long: `Write synthetic alert events spread over the last seven days.
Point source.eve_path (or build --source) at the file to try the viewer
without a running sensor.
生成分布在最近七天内的模拟告警事件。`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "test_eve.json"
		if len(args) == 1 {
			path = args[0]
		}
		if genCount < 0 {
			return fmt.Errorf("count must not be negative: %d", genCount)
		}
		if err := sample.WriteFile(path, sample.Generate(genCount, time.Now())); err != nil {
			return err
		}
		NewCommandExecutor(cmd).PrintSuccess(fmt.Sprintf("Wrote %d test alerts to %s", genCount, path))
		return nil
	},
}

func init() {
	GenTestLogsCmd.Flags().IntVarP(&genCount, "count", "n", sample.DefaultCount, "Number of alert lines")
	RootCmd.AddCommand(GenTestLogsCmd)
}
