package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/livp123/suriwatch/internal/config"
	"github.com/livp123/suriwatch/internal/rules"
	"github.com/livp123/suriwatch/pkg/storage"
	"github.com/spf13/cobra"
)

var (
	ruleProtocol string
	rulePort     string
	ruleMessage  string
)

// RuleCmd 规则管理命令
// RuleCmd manages user-authored Suricata rules
var RuleCmd = &cobra.Command{
	Use:   "rules",
	Short: "Manage user rules",
	// Short: 管理用户规则
}

var ruleListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show user rules and local.rules",
	// Short: 显示用户规则和 local.rules
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRuleFile(cmd, func(rf *storage.RuleFile) error {
			user, err := rf.ReadUser()
			if err != nil {
				return err
			}
			cmd.Printf("# %s\n%s\n\n", rf.UserPath(), user)

			local, err := rf.ReadLocal()
			if err != nil {
				local = fmt.Sprintf("Error reading %s: %v", rf.LocalPath(), err)
			}
			cmd.Printf("# %s\n%s\n", rf.LocalPath(), local)
			return nil
		})
	},
}

var ruleAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Compose a rule and append it to the user rules",
	// Short: 生成规则并追加到用户规则
	Example: `  suriwatch rules add -p tcp --port 22 -m "SSH connection"`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRuleFile(cmd, func(rf *storage.RuleFile) error {
			rule, err := rules.Compose(ruleProtocol, rulePort, ruleMessage, time.Now())
			if err != nil {
				return err
			}
			if err := rf.Append(rule); err != nil {
				return err
			}
			NewCommandExecutor(cmd).PrintSuccess("Rule added: " + rule)
			return nil
		})
	},
}

var ruleMergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Replace local.rules with the user rules (keeps a .bak copy)",
	// Short: 用用户规则替换 local.rules（保留 .bak 备份）
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRuleFile(cmd, func(rf *storage.RuleFile) error {
			if err := rf.MergeIntoLocal(); err != nil {
				return err
			}
			NewCommandExecutor(cmd).PrintSuccess(fmt.Sprintf("Rules merged into %s (backup: %s)", rf.LocalPath(), rf.BackupPath()))
			return nil
		})
	},
}

func init() {
	ruleAddCmd.Flags().StringVarP(&ruleProtocol, "protocol", "p", "tcp", "Rule protocol (tcp, udp, icmp, ip, http, dns, tls)")
	ruleAddCmd.Flags().StringVar(&rulePort, "port", "", "Destination port (empty = any)")
	ruleAddCmd.Flags().StringVarP(&ruleMessage, "message", "m", "", "Rule message")
	_ = ruleAddCmd.MarkFlagRequired("message")

	RuleCmd.AddCommand(ruleListCmd, ruleAddCmd, ruleMergeCmd)
	RootCmd.AddCommand(RuleCmd)
}

func withRuleFile(cmd *cobra.Command, f func(*storage.RuleFile) error) error {
	return NewCommandExecutor(cmd).ExecuteWithConfig(func(ctx context.Context, cfg *config.GlobalConfig) error {
		return f(storage.NewRuleFile(cfg.Rules.UserRulesPath, cfg.Rules.LocalRulesPath))
	})
}
