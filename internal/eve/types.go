package eve

const (
	// EventTypeAlert is the event_type discriminator of alert records.
	// EventTypeAlert 是告警记录的 event_type 判别值。
	EventTypeAlert = "alert"

	// UnknownSignature substitutes for a missing or empty signature.
	// UnknownSignature 用于替代缺失或为空的签名。
	UnknownSignature = "unknown signature"

	// UnknownDate is the date_only sentinel for unparseable timestamps.
	// UnknownDate 是无法解析时间戳时 date_only 的哨兵值。
	UnknownDate = "unknown"

	// DateLayout is the calendar date layout of date_only.
	DateLayout = "2006-01-02"

	// DisplayLayout renders day, month name, year and time.
	// DisplayLayout 渲染日、月份名、年份和时间。
	DisplayLayout = "02 January 2006, 15:04:05"
)

// RawEvent is one decoded line of the sensor log.
// RawEvent 是传感器日志中解码后的一行。
type RawEvent map[string]interface{}

// Alert is the canonical alert record shared by the index, the cache and the monitor.
// Alert 是索引、缓存与监控器共享的规范告警记录。
type Alert struct {
	Signature          string `json:"signature"`
	SourceAddress      string `json:"src_ip"`
	DestinationAddress string `json:"dest_ip"`
	RawTimestamp       string `json:"timestamp"`
	FormattedTimestamp string `json:"formatted_time"`
	DateOnly           string `json:"date_only"`

	// Detail fields, informational only.
	// 详细字段，仅供展示。
	SignatureID int64  `json:"signature_id,omitempty"`
	Severity    int    `json:"severity,omitempty"`
	Category    string `json:"category,omitempty"`
	Proto       string `json:"proto,omitempty"`
	SourcePort  int    `json:"src_port,omitempty"`
	DestPort    int    `json:"dest_port,omitempty"`

	// RelativeTime is filled in at read time and never persisted.
	// RelativeTime 在读取时计算，从不持久化。
	RelativeTime string `json:"relative_time,omitempty"`
}

// Reason explains why Normalize produced or dropped an alert.
// Reason 说明 Normalize 生成或丢弃告警的原因。
type Reason uint8

const (
	ReasonOK Reason = iota
	ReasonMalformed
	ReasonNotAlert
)

func (r Reason) String() string {
	switch r {
	case ReasonOK:
		return "ok"
	case ReasonMalformed:
		return "malformed"
	case ReasonNotAlert:
		return "not_alert"
	default:
		return "unknown"
	}
}
