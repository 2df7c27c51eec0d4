// Package sample generates synthetic sensor logs for local testing.
// Package sample 生成用于本地测试的模拟传感器日志。
package sample

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/livp123/suriwatch/internal/utils/fileutil"
)

// DefaultCount is the number of lines gen-test-logs writes by default.
const DefaultCount = 100

// TimestampLayout matches the sensor's microsecond UTC timestamps.
const TimestampLayout = "2006-01-02T15:04:05.000000Z"

var (
	Signatures = []string{
		"ET SCAN Suspicious inbound to mySQL port 3306",
		"ET DROP Spamhaus SBL Listed Traffic",
		"ET POLICY SSH brute force attack",
		"ET SCAN Potential SSH Scan",
		"ET MALWARE Win32/Trojan Generic",
		"ET INFO Executable Download",
		"ET SCAN Port Scan",
		"ET POLICY External IP Lookup",
		"ET TROJAN Possible Backdoor",
		"ET WEB_SPECIFIC_APPS SQL Injection Attack",
	}

	sourceIPs = []string{"192.168.1.10", "192.168.1.15", "10.0.0.5", "172.16.0.10", "203.0.113.1", "198.51.100.1"}
	destIPs   = []string{"192.168.1.100", "192.168.1.200", "10.0.0.1", "172.16.0.1"}
	destPorts = []int{22, 80, 443, 3306, 53}
)

type event struct {
	Timestamp string `json:"timestamp"`
	EventType string `json:"event_type"`
	SrcIP     string `json:"src_ip"`
	SrcPort   int    `json:"src_port"`
	DestIP    string `json:"dest_ip"`
	DestPort  int    `json:"dest_port"`
	Proto     string `json:"proto"`
	Alert     alert  `json:"alert"`
	Flow      flow   `json:"flow"`
}

type alert struct {
	Signature   string `json:"signature"`
	SignatureID int    `json:"signature_id"`
	Severity    int    `json:"severity"`
	Category    string `json:"category"`
}

type flow struct {
	PktsToServer  int `json:"pkts_toserver"`
	PktsToClient  int `json:"pkts_toclient"`
	BytesToServer int `json:"bytes_toserver"`
	BytesToClient int `json:"bytes_toclient"`
}

// Generate returns n alert lines spread over the seven days before now.
// Line i is i%7 days and (2i)%24 hours old.
// Generate 返回 n 行告警，分布在 now 之前的七天内。
func Generate(n int, now time.Time) []string {
	lines := make([]string, 0, n)
	for i := 0; i < n; i++ {
		ts := now.Add(-time.Duration(i%7)*24*time.Hour - time.Duration((i*2)%24)*time.Hour)
		e := event{
			Timestamp: ts.UTC().Format(TimestampLayout),
			EventType: "alert",
			SrcIP:     sourceIPs[i%len(sourceIPs)],
			SrcPort:   1024 + (i*17)%60000,
			DestIP:    destIPs[i%len(destIPs)],
			DestPort:  destPorts[i%len(destPorts)],
			Proto:     "TCP",
			Alert: alert{
				Signature:   Signatures[i%len(Signatures)],
				SignatureID: 2000000 + i,
				Severity:    1 + i%3,
				Category:    "Attempted Information Leak",
			},
			Flow: flow{
				PktsToServer:  1 + i%10,
				PktsToClient:  1 + i%5,
				BytesToServer: 60 + (i*23)%500,
				BytesToClient: 40 + (i*31)%300,
			},
		}
		b, _ := json.Marshal(e)
		lines = append(lines, string(b))
	}
	return lines
}

// WriteFile replaces path with the given lines, one per row.
// WriteFile 用给定的行替换 path 的内容，每行一条。
func WriteFile(path string, lines []string) error {
	var sb strings.Builder
	for _, l := range lines {
		sb.WriteString(l)
		sb.WriteByte('\n')
	}
	return fileutil.AtomicWriteFile(path, []byte(sb.String()), 0644)
}
