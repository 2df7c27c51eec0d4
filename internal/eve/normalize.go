package eve

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Normalize turns one raw log line into an Alert.
// It never fails: malformed lines and non-alert events come back with ok == false
// and a Reason describing the drop.
// Normalize 将一行原始日志转换为 Alert。
// 它从不失败：格式错误的行和非告警事件返回 ok == false 并附带丢弃原因。
func Normalize(line []byte) (alert Alert, reason Reason, ok bool) {
	line = bytes.TrimSpace(line)
	if len(line) == 0 {
		return Alert{}, ReasonMalformed, false
	}

	var raw RawEvent
	if err := json.Unmarshal(line, &raw); err != nil || raw == nil {
		return Alert{}, ReasonMalformed, false
	}
	return FromRaw(raw)
}

// NormalizeString is Normalize for text lines.
func NormalizeString(line string) (Alert, Reason, bool) {
	return Normalize([]byte(line))
}

// FromRaw normalizes an already decoded record.
// FromRaw 规范化已解码的记录。
func FromRaw(raw RawEvent) (Alert, Reason, bool) {
	if stringField(raw, "event_type") != EventTypeAlert {
		return Alert{}, ReasonNotAlert, false
	}

	a := Alert{
		SourceAddress:      stringField(raw, "src_ip"),
		DestinationAddress: stringField(raw, "dest_ip"),
		RawTimestamp:       stringField(raw, "timestamp"),
		Proto:              stringField(raw, "proto"),
		SourcePort:         int(intField(raw, "src_port")),
		DestPort:           int(intField(raw, "dest_port")),
	}

	if detail, ok := raw["alert"].(map[string]interface{}); ok {
		a.Signature = stringField(detail, "signature")
		a.SignatureID = intField(detail, "signature_id")
		a.Severity = int(intField(detail, "severity"))
		a.Category = stringField(detail, "category")
	}
	if a.Signature == "" {
		a.Signature = UnknownSignature
	}

	ts := ParseTimestamp(a.RawTimestamp)
	a.FormattedTimestamp = ts.Formatted
	a.DateOnly = ts.Date

	return a, ReasonOK, true
}

// stringField returns the value as text; numbers and booleans are rendered,
// everything else becomes "".
func stringField(m map[string]interface{}, key string) string {
	switch v := m[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

func intField(m map[string]interface{}, key string) int64 {
	switch v := m[key].(type) {
	case float64:
		return int64(v)
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}
