// Package filter compiles boolean expressions that decide whether an alert
// may raise a notification.
// Package filter 编译布尔表达式，用于决定告警是否可以触发通知。
package filter

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/livp123/suriwatch/internal/eve"
)

// Env is the variable set visible to a filter expression.
// Env 是过滤表达式可见的变量集合。
type Env struct {
	Signature          string
	SourceAddress      string
	DestinationAddress string
	Category           string
	Proto              string
	Severity           int
	SignatureID        int64
	SourcePort         int
	DestPort           int
	DateOnly           string
}

func envFor(a eve.Alert) Env {
	return Env{
		Signature:          a.Signature,
		SourceAddress:      a.SourceAddress,
		DestinationAddress: a.DestinationAddress,
		Category:           a.Category,
		Proto:              a.Proto,
		Severity:           a.Severity,
		SignatureID:        a.SignatureID,
		SourcePort:         a.SourcePort,
		DestPort:           a.DestPort,
		DateOnly:           a.DateOnly,
	}
}

// Filter is a compiled expression. The zero value and a nil *Filter match everything.
// Filter 是已编译的表达式。零值和 nil *Filter 匹配所有告警。
type Filter struct {
	source  string
	program *vm.Program
}

// Compile parses src; an empty src yields a match-all filter.
// Compile 解析 src；空 src 返回匹配所有的过滤器。
func Compile(src string) (*Filter, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return &Filter{}, nil
	}
	program, err := expr.Compile(src, expr.Env(Env{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile filter %q: %w", src, err)
	}
	return &Filter{source: src, program: program}, nil
}

// String returns the expression source.
func (f *Filter) String() string {
	if f == nil {
		return ""
	}
	return f.source
}

// Match evaluates the filter against an alert. Evaluation errors do not match.
// Match 针对告警求值。求值出错视为不匹配。
func (f *Filter) Match(a eve.Alert) (bool, error) {
	if f == nil || f.program == nil {
		return true, nil
	}
	out, err := expr.Run(f.program, envFor(a))
	if err != nil {
		return false, err
	}
	matched, ok := out.(bool)
	return ok && matched, nil
}
