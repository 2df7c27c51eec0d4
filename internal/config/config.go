package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/livp123/suriwatch/internal/filter"
	"github.com/livp123/suriwatch/internal/utils/fileutil"
	xerrors "github.com/livp123/suriwatch/pkg/errors"
	"gopkg.in/yaml.v3"
)

// DefaultConfigTemplate is written by `suriwatch init`.
const DefaultConfigTemplate = `# suriwatch Configuration File / suriwatch 配置文件

# Sensor log / 传感器日志
source:
  eve_path: "/var/log/suricata/eve.json"
  # Number of trailing lines read when building the index.
  # 构建索引时读取的末尾行数。
  tail_lines: 5000

# Compact index / 精简索引
index:
  # "file" writes one JSON document, "sqlite" a database at snapshot_path.
  # "file" 写入一个 JSON 文档，"sqlite" 在 snapshot_path 处写入数据库。
  backend: "file"
  snapshot_path: "/var/lib/suriwatch/mini_eve.json"
  # Rebuild the index periodically while serving ("" disables).
  # 在 serve 模式下定期重建索引（"" 表示禁用）。
  build_interval: ""

# Serving cache / 服务缓存
cache:
  refresh_interval: "30s"
  limit_per_group: 20

# Live monitor / 实时监控
monitor:
  cooldown: "30s"
  poll_interval: "1s"
  # Optional expression; only matching alerts may notify.
  # 可选表达式；只有匹配的告警才会通知。
  # Example / 示例: 'Severity <= 2 && !(Signature startsWith "ET INFO")'
  filter: ""
  notify_send: true
  max_read_errors: 5

# Rule files / 规则文件
rules:
  user_rules_path: "/var/lib/suriwatch/user_rules.txt"
  local_rules_path: "/etc/suricata/rules/local.rules"

# Query API / 查询 API
web:
  listen: ":5000"

metrics:
  enabled: true

logging:
  enabled: false
  level: "info"
  path: "/var/log/suriwatch/suriwatch.log"
  max_size: 10
  max_backups: 5
  max_age: 30
  compress: true
`

// Default returns the configuration used when a field is absent from the file.
// Default 返回文件中缺少字段时使用的配置。
func Default() *GlobalConfig {
	cfg := &GlobalConfig{}
	cfg.Source.EvePath = DefaultEvePath
	cfg.Source.TailLines = DefaultTailLines
	cfg.Index.Backend = DefaultIndexBackend
	cfg.Index.SnapshotPath = DefaultSnapshotPath
	cfg.Cache.RefreshInterval = DefaultRefreshInterval.String()
	cfg.Cache.LimitPerGroup = DefaultLimitPerGroup
	cfg.Monitor.Cooldown = DefaultCooldown.String()
	cfg.Monitor.PollInterval = DefaultPollInterval.String()
	cfg.Monitor.NotifySend = true
	cfg.Monitor.MaxReadErrors = DefaultMaxReadErrors
	cfg.Rules.UserRulesPath = DefaultUserRulesPath
	cfg.Rules.LocalRulesPath = DefaultLocalRulesPath
	cfg.Web.Listen = DefaultListen
	cfg.Metrics.Enabled = true
	cfg.Logging.Level = "info"
	return cfg
}

// LoadGlobalConfig reads the YAML file on top of Default().
// LoadGlobalConfig 在 Default() 的基础上读取 YAML 文件。
func LoadGlobalConfig(path string) (*GlobalConfig, error) {
	safePath := filepath.Clean(path) // Sanitize path to prevent directory traversal
	data, err := os.ReadFile(safePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, xerrors.ErrConfigNotFound
		}
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, xerrors.NewConfigError("yaml", err)
	}
	return cfg, nil
}

// LoadOrDefault returns the file configuration, or Default() if the file is absent.
// LoadOrDefault 返回文件配置；文件不存在时返回 Default()。
func LoadOrDefault(path string) (*GlobalConfig, error) {
	cfg, err := LoadGlobalConfig(path)
	if errors.Is(err, xerrors.ErrConfigNotFound) {
		return Default(), nil
	}
	return cfg, err
}

// SaveGlobalConfig writes the configuration atomically.
// SaveGlobalConfig 以原子方式写入配置。
func SaveGlobalConfig(path string, cfg *GlobalConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return fileutil.AtomicWriteFile(filepath.Clean(path), data, 0644)
}

// InitConfiguration writes the default template if no file exists yet.
// It reports whether a file was created.
// InitConfiguration 如果文件尚不存在则写入默认模板，并返回是否创建了文件。
func InitConfiguration(path string) (bool, error) {
	safePath := filepath.Clean(path)
	if _, err := os.Stat(safePath); err == nil {
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, err
	}
	if err := fileutil.AtomicWriteFile(safePath, []byte(DefaultConfigTemplate), 0644); err != nil {
		return false, err
	}
	return true, nil
}

// Validate checks durations, counts, paths and the monitor filter.
// Validate 检查时长、数量、路径和监控过滤器。
func (c *GlobalConfig) Validate() error {
	if c.Source.EvePath == "" {
		return xerrors.NewConfigError("source.eve_path", c.Source.EvePath)
	}
	if c.Source.TailLines < 0 {
		return xerrors.NewConfigError("source.tail_lines", c.Source.TailLines)
	}
	if c.Index.SnapshotPath == "" {
		return xerrors.NewConfigError("index.snapshot_path", c.Index.SnapshotPath)
	}
	switch c.Index.Backend {
	case "", IndexBackendFile, IndexBackendSQLite:
	default:
		return xerrors.NewConfigError("index.backend", c.Index.Backend)
	}
	if c.Cache.LimitPerGroup < 0 {
		return xerrors.NewConfigError("cache.limit_per_group", c.Cache.LimitPerGroup)
	}
	if c.Monitor.MaxReadErrors < 0 {
		return xerrors.NewConfigError("monitor.max_read_errors", c.Monitor.MaxReadErrors)
	}
	if _, err := c.BuildInterval(); err != nil {
		return err
	}
	if _, err := c.RefreshInterval(); err != nil {
		return err
	}
	if _, err := c.Cooldown(); err != nil {
		return err
	}
	if _, err := c.PollInterval(); err != nil {
		return err
	}
	if _, err := filter.Compile(c.Monitor.Filter); err != nil {
		return xerrors.NewConfigError("monitor.filter", err)
	}
	return nil
}

// BuildInterval returns 0 when periodic builds are disabled.
func (c *GlobalConfig) BuildInterval() (time.Duration, error) {
	return parseDuration("index.build_interval", c.Index.BuildInterval, 0, true)
}

// RefreshInterval returns the cache staleness bound.
func (c *GlobalConfig) RefreshInterval() (time.Duration, error) {
	return parseDuration("cache.refresh_interval", c.Cache.RefreshInterval, DefaultRefreshInterval, true)
}

// Cooldown returns the per-signature notification cooldown.
func (c *GlobalConfig) Cooldown() (time.Duration, error) {
	return parseDuration("monitor.cooldown", c.Monitor.Cooldown, DefaultCooldown, true)
}

// PollInterval returns the follow-mode polling interval.
func (c *GlobalConfig) PollInterval() (time.Duration, error) {
	return parseDuration("monitor.poll_interval", c.Monitor.PollInterval, DefaultPollInterval, false)
}

func parseDuration(field, value string, def time.Duration, allowZero bool) (time.Duration, error) {
	if value == "" {
		return def, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil || d < 0 || (d == 0 && !allowZero) {
		return 0, xerrors.NewConfigError(field, value)
	}
	return d, nil
}
