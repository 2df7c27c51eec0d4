package filter

import (
	"testing"

	"github.com/livp123/suriwatch/internal/eve"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCompile_Empty tests that an empty expression matches everything
// TestCompile_Empty 测试空表达式匹配所有告警
func TestCompile_Empty(t *testing.T) {
	f, err := Compile("  ")
	require.NoError(t, err)

	ok, err := f.Match(eve.Alert{Signature: "anything"})
	require.NoError(t, err)
	assert.True(t, ok)

	var nilFilter *Filter
	ok, err = nilFilter.Match(eve.Alert{})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "", nilFilter.String())
}

// TestCompile_Invalid tests rejected expressions
// TestCompile_Invalid 测试被拒绝的表达式
func TestCompile_Invalid(t *testing.T) {
	for _, src := range []string{
		`Signature contains`,
		`Severity + 1`,
		`NoSuchField == "x"`,
	} {
		_, err := Compile(src)
		assert.Error(t, err, src)
	}
}

// TestMatch tests evaluation over alert fields
// TestMatch 测试针对告警字段的求值
func TestMatch(t *testing.T) {
	alert := eve.Alert{
		Signature:     "ET SCAN Potential SSH Scan",
		SourceAddress: "203.0.113.1",
		Severity:      1,
		Category:      "Attempted Information Leak",
		DestPort:      22,
	}

	tests := []struct {
		src  string
		want bool
	}{
		{`Signature contains "SCAN"`, true},
		{`Signature startsWith "ET POLICY"`, false},
		{`Severity <= 2`, true},
		{`Severity <= 2 && DestPort == 443`, false},
		{`SourceAddress in ["203.0.113.1", "198.51.100.1"]`, true},
		{`Category == "Attempted Information Leak"`, true},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			f, err := Compile(tt.src)
			require.NoError(t, err)
			assert.Equal(t, tt.src, f.String())

			got, err := f.Match(alert)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
