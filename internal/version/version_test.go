package version

import (
	"testing"
)

// TestVersion tests that version is set
// TestVersion 测试版本已设置
func TestVersion(t *testing.T) {
	if Version == "" {
		t.Error("Version should not be empty")
	}

	// Default version should be "dev"
	// 默认版本应该是 "dev"
	if Version != "dev" {
		t.Logf("Version is: %s (expected 'dev' for development)", Version)
	}
}

// TestString tests the display string
// TestString 测试显示字符串
func TestString(t *testing.T) {
	if got := String(); got != "suriwatch "+Version {
		t.Errorf("String() = %q", got)
	}
}
