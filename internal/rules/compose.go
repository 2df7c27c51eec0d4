// Package rules builds Suricata alert rules from user input.
// Package rules 根据用户输入构造 Suricata 告警规则。
package rules

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	xerrors "github.com/livp123/suriwatch/pkg/errors"
)

// SIDModulo keeps generated sids inside the local rule range.
const SIDModulo = 100000

// Protocols lists the accepted rule protocols.
// Protocols 列出允许的规则协议。
var Protocols = []string{"tcp", "udp", "icmp", "ip", "http", "dns", "tls"}

// Request is the user-facing input of a new rule.
// Request 是新规则的用户输入。
type Request struct {
	Protocol string `json:"protocol"`
	Port     string `json:"port"`
	Message  string `json:"message"`
}

// Compose renders a rule such as
//
//	alert tcp any any -> any 22 (msg:"SSH"; sid:12345; rev:1;)
//
// An empty port matches any port. The sid is derived from now.
// Compose 生成规则文本。端口为空时匹配任意端口，sid 由 now 生成。
func Compose(protocol, port, message string, now time.Time) (string, error) {
	proto, err := ValidateProtocol(protocol)
	if err != nil {
		return "", err
	}
	dst, err := ValidatePort(port)
	if err != nil {
		return "", err
	}
	msg, err := ValidateMessage(message)
	if err != nil {
		return "", err
	}

	sid := now.Unix() % SIDModulo
	return fmt.Sprintf(`alert %s any any -> any %s (msg:"%s"; sid:%d; rev:1;)`, proto, dst, msg, sid), nil
}

// ComposeRequest is Compose for a decoded Request.
func ComposeRequest(req Request, now time.Time) (string, error) {
	return Compose(req.Protocol, req.Port, req.Message, now)
}

// ValidateProtocol returns the lower-cased protocol if it is supported.
func ValidateProtocol(protocol string) (string, error) {
	p := strings.ToLower(strings.TrimSpace(protocol))
	for _, known := range Protocols {
		if p == known {
			return p, nil
		}
	}
	return "", xerrors.NewProtocolError(protocol)
}

// ValidatePort accepts an empty value (any) or a number in 1-65535.
// ValidatePort 接受空值（any）或 1-65535 范围内的数字。
func ValidatePort(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" || strings.EqualFold(p, "any") {
		return "any", nil
	}
	n, err := strconv.Atoi(p)
	if err != nil || n < 1 || n > 65535 {
		return "", xerrors.NewPortError(port)
	}
	return strconv.Itoa(n), nil
}

// ValidateMessage rejects empty messages and characters that would break the rule options.
func ValidateMessage(message string) (string, error) {
	m := strings.TrimSpace(message)
	switch {
	case m == "":
		return "", xerrors.NewRuleError("message is required")
	case strings.ContainsAny(m, "\";\n\r"):
		return "", xerrors.NewRuleError(fmt.Sprintf("message contains forbidden characters: %q", m))
	}
	return m, nil
}
