package rules

import (
	"errors"
	"testing"
	"time"

	xerrors "github.com/livp123/suriwatch/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCompose tests rule rendering
// TestCompose 测试规则生成
func TestCompose(t *testing.T) {
	now := time.Unix(1700012345, 0)

	tests := []struct {
		name     string
		protocol string
		port     string
		message  string
		want     string
	}{
		{"tcp with port", "tcp", "22", "SSH attempt", `alert tcp any any -> any 22 (msg:"SSH attempt"; sid:12345; rev:1;)`},
		{"empty port", "udp", "", "DNS", `alert udp any any -> any any (msg:"DNS"; sid:12345; rev:1;)`},
		{"upper case protocol", " HTTP ", "080", "web", `alert http any any -> any 80 (msg:"web"; sid:12345; rev:1;)`},
		{"explicit any", "icmp", "any", "ping", `alert icmp any any -> any any (msg:"ping"; sid:12345; rev:1;)`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Compose(tt.protocol, tt.port, tt.message, now)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestCompose_Invalid tests input validation
// TestCompose_Invalid 测试输入校验
func TestCompose_Invalid(t *testing.T) {
	now := time.Unix(1700000000, 0)

	tests := []struct {
		name     string
		protocol string
		port     string
		message  string
		want     error
	}{
		{"unknown protocol", "ftp", "21", "x", xerrors.ErrInvalidProtocol},
		{"empty protocol", "", "21", "x", xerrors.ErrInvalidProtocol},
		{"port not a number", "tcp", "ssh", "x", xerrors.ErrInvalidPort},
		{"port zero", "tcp", "0", "x", xerrors.ErrInvalidPort},
		{"port too large", "tcp", "65536", "x", xerrors.ErrInvalidPort},
		{"empty message", "tcp", "22", "  ", xerrors.ErrInvalidRule},
		{"quote in message", "tcp", "22", `a"b`, xerrors.ErrInvalidRule},
		{"semicolon in message", "tcp", "22", "a;b", xerrors.ErrInvalidRule},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compose(tt.protocol, tt.port, tt.message, now)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), err.Error())
		})
	}
}

func TestComposeRequest(t *testing.T) {
	got, err := ComposeRequest(Request{Protocol: "dns", Message: "lookup"}, time.Unix(200000, 0))
	require.NoError(t, err)
	assert.Equal(t, `alert dns any any -> any any (msg:"lookup"; sid:0; rev:1;)`, got)
}
