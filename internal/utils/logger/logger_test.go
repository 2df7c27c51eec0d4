package logger

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

// TestInit tests logger initialization
// TestInit 测试日志初始化
func TestInit(t *testing.T) {
	Init(LoggingConfig{Enabled: false, Level: "info"})

	log := Get(nil)
	require.NotNil(t, log)

	// Sync may return error on stdout, which is expected
	// Sync 在 stdout 上可能返回错误，这是预期的
	_ = Sync()
}

// TestNew_File tests rotating file output
// TestNew_File 测试轮转文件输出
func TestNew_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "suriwatch.log")

	log := New(LoggingConfig{Enabled: true, Level: "debug", Path: path, MaxSize: 1})
	log.Infof("hello %s", "file")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello file")
}

// TestParseLevel tests level mapping
func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel("WARN"))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel("warning"))
	assert.Equal(t, zapcore.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel(""))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("verbose"))
}

// TestWithContext tests adding logger to context
// TestWithContext 测试将 logger 添加到 context
func TestWithContext(t *testing.T) {
	Init(LoggingConfig{Enabled: false, Level: "info"})
	log := New(LoggingConfig{Level: "error"})

	ctx := WithContext(context.Background(), log)
	assert.Same(t, log, Get(ctx))
	assert.NotNil(t, Get(context.Background()))
}
