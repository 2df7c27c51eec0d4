package commands

import (
	"context"
	"fmt"

	"github.com/livp123/suriwatch/internal/config"
	"github.com/livp123/suriwatch/internal/utils/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// CommandExecutor 统一的命令执行器，处理所有命令的通用逻辑
// CommandExecutor handles the setup shared by every command
type CommandExecutor struct {
	cmd *cobra.Command
}

// NewCommandExecutor 创建新的命令执行器
// NewCommandExecutor creates a new command executor
func NewCommandExecutor(cmd *cobra.Command) *CommandExecutor {
	return &CommandExecutor{cmd: cmd}
}

// Context returns the command context.
func (e *CommandExecutor) Context() context.Context {
	if ctx := e.cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// Logger returns the logger injected by the root command.
// Logger 返回根命令注入的 Logger。
func (e *CommandExecutor) Logger() *zap.SugaredLogger {
	return logger.Get(e.Context())
}

// LoadConfig 加载并校验配置
// LoadConfig loads and validates the configuration
func (e *CommandExecutor) LoadConfig() (*config.GlobalConfig, error) {
	cm := config.NewConfigManager(config.GetConfigPath())
	if err := cm.LoadConfig(); err != nil {
		return nil, fmt.Errorf("[ERROR] Failed to load configuration %s: %w", cm.GetConfigPath(), err)
	}
	return cm.GetConfig(), nil
}

// ExecuteWithConfig 使用配置执行命令
// ExecuteWithConfig executes command with the loaded configuration
func (e *CommandExecutor) ExecuteWithConfig(execFunc func(context.Context, *config.GlobalConfig) error) error {
	cfg, err := e.LoadConfig()
	if err != nil {
		return err
	}
	return execFunc(e.Context(), cfg)
}

// PrintSuccess 打印成功消息
// PrintSuccess prints success message
func (e *CommandExecutor) PrintSuccess(msg string) {
	e.cmd.Println("[OK] " + msg)
}

// PrintWarning 打印警告消息
// PrintWarning prints warning message
func (e *CommandExecutor) PrintWarning(msg string) {
	e.cmd.PrintErrln("[WARN]  " + msg)
}
