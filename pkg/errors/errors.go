package errors

import (
	"errors"
	"fmt"
)

var (
	ErrParse             = errors.New("parse error")
	ErrSourceUnavailable = errors.New("source log unavailable")
	ErrPersistence       = errors.New("snapshot persistence failed")
	ErrConfigNotFound    = errors.New("config not found")
	ErrConfigInvalid     = errors.New("invalid configuration")
	ErrInvalidRule       = errors.New("invalid rule")
	ErrInvalidProtocol   = errors.New("invalid protocol")
	ErrInvalidPort       = errors.New("invalid port number")
)

// NewParseError wraps a malformed line or timestamp failure.
// NewParseError 包装格式错误的行或时间戳解析失败。
func NewParseError(what string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrParse, what, err)
}

// NewSourceError reports a log file that cannot be tailed or followed.
// NewSourceError 报告无法读取或跟踪的日志文件。
func NewSourceError(path string, reason error) error {
	return fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, path, reason)
}

// NewPersistenceError reports a snapshot read/write failure.
// NewPersistenceError 报告快照读写失败。
func NewPersistenceError(op, path string, err error) error {
	return fmt.Errorf("%w: op=%s path=%s: %v", ErrPersistence, op, path, err)
}

func NewConfigError(field string, value interface{}) error {
	return fmt.Errorf("%w: field=%s value=%v", ErrConfigInvalid, field, value)
}

func NewRuleError(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidRule, reason)
}

func NewProtocolError(proto string) error {
	return fmt.Errorf("%w: %s", ErrInvalidProtocol, proto)
}

func NewPortError(port string) error {
	return fmt.Errorf("%w: %s", ErrInvalidPort, port)
}
