package config

import (
	"time"

	"github.com/livp123/suriwatch/pkg/storage"
)

const (
	// DefaultConfigPath is the standard location for the suriwatch configuration file.
	// DefaultConfigPath 是 suriwatch 配置文件的标准位置。
	DefaultConfigPath = "/etc/suriwatch/config.yaml"

	// DefaultEvePath is where Suricata writes its EVE JSON log.
	// DefaultEvePath 是 Suricata 写入 EVE JSON 日志的位置。
	DefaultEvePath = "/var/log/suricata/eve.json"

	// DefaultSnapshotPath is the persisted compact index.
	// DefaultSnapshotPath 是持久化的精简索引。
	DefaultSnapshotPath = "/var/lib/suriwatch/mini_eve.json"

	// Snapshot backends; sqlite stores the index in a database at snapshot_path.
	// 快照后端；sqlite 将索引存入 snapshot_path 处的数据库。
	IndexBackendFile    = storage.BackendFile
	IndexBackendSQLite  = storage.BackendSQLite
	DefaultIndexBackend = IndexBackendFile

	DefaultUserRulesPath  = "/var/lib/suriwatch/user_rules.txt"
	DefaultLocalRulesPath = "/etc/suricata/rules/local.rules"

	DefaultTailLines       = 5000
	DefaultLimitPerGroup   = 20
	DefaultRefreshInterval = 30 * time.Second
	DefaultCooldown        = 30 * time.Second
	DefaultPollInterval    = time.Second
	DefaultMaxReadErrors   = 5
	DefaultListen          = ":5000"
)
