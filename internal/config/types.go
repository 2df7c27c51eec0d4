package config

import "github.com/livp123/suriwatch/internal/utils/logger"

// GlobalConfig is the root of the configuration file.
// GlobalConfig 是配置文件的根结构。
type GlobalConfig struct {
	Source  SourceConfig         `yaml:"source"`
	Index   IndexConfig          `yaml:"index"`
	Cache   CacheConfig          `yaml:"cache"`
	Monitor MonitorConfig        `yaml:"monitor"`
	Rules   RulesConfig          `yaml:"rules"`
	Web     WebConfig            `yaml:"web"`
	Metrics MetricsConfig        `yaml:"metrics"`
	Logging logger.LoggingConfig `yaml:"logging"`
}

// SourceConfig describes the sensor log.
// SourceConfig 描述传感器日志。
type SourceConfig struct {
	EvePath   string `yaml:"eve_path"`
	TailLines int    `yaml:"tail_lines"`
}

// IndexConfig describes the persisted snapshot.
// IndexConfig 描述持久化快照。
type IndexConfig struct {
	// Backend: "file"（JSON 文档，默认）或 "sqlite"
	Backend      string `yaml:"backend"`
	SnapshotPath string `yaml:"snapshot_path"`
	// BuildInterval: 在 serve 模式下定期重建索引的间隔，空表示不重建
	BuildInterval string `yaml:"build_interval"`
}

// CacheConfig describes the serving cache.
// CacheConfig 描述服务缓存。
type CacheConfig struct {
	RefreshInterval string `yaml:"refresh_interval"`
	LimitPerGroup   int    `yaml:"limit_per_group"`
}

// MonitorConfig describes the live monitor.
// MonitorConfig 描述实时监控器。
type MonitorConfig struct {
	Cooldown      string `yaml:"cooldown"`
	PollInterval  string `yaml:"poll_interval"`
	Filter        string `yaml:"filter"`
	NotifySend    bool   `yaml:"notify_send"`
	MaxReadErrors int    `yaml:"max_read_errors"`
}

// RulesConfig locates rule files.
// RulesConfig 指定规则文件位置。
type RulesConfig struct {
	UserRulesPath  string `yaml:"user_rules_path"`
	LocalRulesPath string `yaml:"local_rules_path"`
}

// WebConfig defines the HTTP query surface.
// WebConfig 定义 HTTP 查询接口。
type WebConfig struct {
	Listen string `yaml:"listen"`
}

// MetricsConfig toggles the /metrics endpoint.
// MetricsConfig 控制 /metrics 端点。
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}
