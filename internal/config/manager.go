package config

import (
	"sync"
)

// ConfigManager holds the loaded configuration for concurrent readers.
// ConfigManager 为并发读取方保存已加载的配置。
type ConfigManager struct {
	configPath string
	mutex      sync.RWMutex
	config     *GlobalConfig
}

// NewConfigManager creates a new configuration manager instance
// NewConfigManager 创建新的配置管理器实例
func NewConfigManager(configPath string) *ConfigManager {
	return &ConfigManager{
		configPath: configPath,
	}
}

// LoadConfig loads and validates the configuration; a missing file yields defaults.
// LoadConfig 加载并校验配置；文件不存在时使用默认值。
func (cm *ConfigManager) LoadConfig() error {
	cfg, err := LoadOrDefault(cm.configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	cm.mutex.Lock()
	cm.config = cfg
	cm.mutex.Unlock()
	return nil
}

// SaveConfig writes the loaded configuration back to its file, with every field present.
// SaveConfig 将已加载的配置写回文件，包含所有字段。
func (cm *ConfigManager) SaveConfig() error {
	cm.mutex.RLock()
	defer cm.mutex.RUnlock()

	if cm.config == nil {
		return nil
	}
	return SaveGlobalConfig(cm.configPath, cm.config)
}

// GetConfig returns a copy of the current configuration
// GetConfig 返回当前配置的副本
func (cm *ConfigManager) GetConfig() *GlobalConfig {
	cm.mutex.RLock()
	defer cm.mutex.RUnlock()

	if cm.config == nil {
		return nil
	}

	// Return a copy to prevent external modifications
	cfgCopy := *cm.config
	return &cfgCopy
}

// GetConfigPath returns the managed file path.
func (cm *ConfigManager) GetConfigPath() string {
	return cm.configPath
}
