package commands

import (
	"context"

	"github.com/livp123/suriwatch/internal/api"
	"github.com/livp123/suriwatch/internal/cache"
	"github.com/livp123/suriwatch/internal/config"
	"github.com/livp123/suriwatch/pkg/storage"
	"github.com/spf13/cobra"
)

var (
	serveListen        string
	serveBuildInterval string
)

// ServeCmd 实现 'serve' 命令
// ServeCmd implements the 'serve' command
var ServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the alert viewer and API",
	// Short: 启动告警查看界面和 API
	Long: `Serve grouped alert views from the index snapshot. The snapshot is
reloaded at most once per cache.refresh_interval. When index.build_interval
is set the index is also rebuilt periodically.
从索引快照提供分组告警视图。快照每个 cache.refresh_interval 最多重新加载一次。
设置 index.build_interval 时还会定期重建索引。`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		executor := NewCommandExecutor(cmd)
		return executor.ExecuteWithConfig(func(ctx context.Context, cfg *config.GlobalConfig) error {
			if cmd.Flags().Changed("listen") {
				cfg.Web.Listen = serveListen
			}
			if cmd.Flags().Changed("build-interval") {
				cfg.Index.BuildInterval = serveBuildInterval
				if err := cfg.Validate(); err != nil {
					return err
				}
			}
			log := executor.Logger()

			refresh, _ := cfg.RefreshInterval()
			buildEvery, _ := cfg.BuildInterval()

			store, release, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = release() }()

			if buildEvery > 0 {
				log.Infof("🔁 Rebuilding index every %s", buildEvery)
				go newBuilder(cfg, store, log).Run(ctx, buildEvery)
			}

			c := cache.New(cache.Options{
				Store:           store,
				RefreshInterval: refresh,
				LimitPerGroup:   cfg.Cache.LimitPerGroup,
				Logger:          log,
			})
			server := api.NewServer(api.Options{
				Listen:         cfg.Web.Listen,
				Cache:          c,
				Rules:          storage.NewRuleFile(cfg.Rules.UserRulesPath, cfg.Rules.LocalRulesPath),
				MetricsEnabled: cfg.Metrics.Enabled,
				Logger:         log,
			})
			return server.Start(ctx)
		})
	},
}

func init() {
	ServeCmd.Flags().StringVarP(&serveListen, "listen", "l", "", "Listen address (overrides web.listen)")
	ServeCmd.Flags().StringVar(&serveBuildInterval, "build-interval", "", "Rebuild the index periodically, e.g. 1m (overrides index.build_interval)")
	RootCmd.AddCommand(ServeCmd)
}
