package runtime

// ConfigPath stores the path to the configuration file provided via CLI flags.
// ConfigPath 存储通过 CLI 标志提供的配置文件路径。
var ConfigPath string

// Verbose enables debug-level console logging when set via CLI flags.
// Verbose 通过 CLI 标志设置时启用 debug 级别的控制台日志。
var Verbose bool
