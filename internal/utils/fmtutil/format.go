// Package fmtutil provides formatting utilities for human-readable CLI output.
// Package fmtutil 提供用于 CLI 可读输出的格式化工具。
package fmtutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormatNumberWithComma formats a count with thousand separators.
// FormatNumberWithComma 格式化计数，添加千位分隔符。
func FormatNumberWithComma(n uint64) string {
	s := strconv.FormatUint(n, 10)
	if len(s) <= 3 {
		return s
	}

	var sb strings.Builder
	head := len(s) % 3
	if head > 0 {
		sb.WriteString(s[:head])
	}
	for i := head; i < len(s); i += 3 {
		if sb.Len() > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(s[i : i+3])
	}
	return sb.String()
}

var byteUnits = []string{"KB", "MB", "GB"}

// FormatBytes formats a file size using binary units.
// FormatBytes 使用二进制单位格式化文件大小。
func FormatBytes(b uint64) string {
	if b < 1024 {
		return fmt.Sprintf("%dB", b)
	}
	value := float64(b) / 1024
	unit := 0
	for value >= 1024 && unit < len(byteUnits)-1 {
		value /= 1024
		unit++
	}
	return fmt.Sprintf("%.2f%s", value, byteUnits[unit])
}

// FormatDuration renders a duration as "1d 2h 3m 4s", omitting zero parts.
// Durations under a second use time.Duration's own format.
// FormatDuration 将时长渲染为 "1d 2h 3m 4s"，省略为零的部分。
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return d.String()
	}

	total := int64(d / time.Second)
	parts := []struct {
		value  int64
		suffix string
	}{
		{total / 86400, "d"},
		{total % 86400 / 3600, "h"},
		{total % 3600 / 60, "m"},
		{total % 60, "s"},
	}

	var out []string
	for _, p := range parts {
		if p.value > 0 {
			out = append(out, fmt.Sprintf("%d%s", p.value, p.suffix))
		}
	}
	return strings.Join(out, " ")
}
