package commands

import (
	"github.com/livp123/suriwatch/internal/config"
	"github.com/spf13/cobra"
)

var initUpgrade bool

// InitCmd 实现 'init' 命令
// InitCmd implements the 'init' command
var InitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	// Short: 初始化配置
	Long: `Write the default configuration file if it does not exist yet.
With --upgrade an existing file is rewritten with every current field filled in.`,
	// Long: 如果配置文件尚不存在则写入默认配置；使用 --upgrade 时补全已有文件的所有字段
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		executor := NewCommandExecutor(cmd)
		path := config.GetConfigPath()
		created, err := config.InitConfiguration(path)
		if err != nil {
			return err
		}
		if !created {
			if !initUpgrade {
				executor.PrintWarning("Configuration already exists: " + path)
				return nil
			}
			cm := config.NewConfigManager(path)
			if err := cm.LoadConfig(); err != nil {
				return err
			}
			if err := cm.SaveConfig(); err != nil {
				return err
			}
			executor.PrintSuccess("Configuration upgraded: " + path)
			return nil
		}
		executor.PrintSuccess("Configuration initialized: " + path)
		return nil
	},
}

// TestCmd 实现 'test' 命令
// TestCmd implements the 'test' command
var TestCmd = &cobra.Command{
	Use:   "test",
	Short: "Test configuration",
	// Short: 测试配置
	Long: `Load and validate the configuration file`,
	// Long: 加载并校验配置文件
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		executor := NewCommandExecutor(cmd)
		if _, err := executor.LoadConfig(); err != nil {
			return err
		}
		executor.PrintSuccess("Configuration test passed")
		return nil
	},
}

func init() {
	InitCmd.Flags().BoolVar(&initUpgrade, "upgrade", false, "Rewrite an existing file with all current fields")
	RootCmd.AddCommand(InitCmd)
	RootCmd.AddCommand(TestCmd)
}
