package monitor

import (
	"sync"
	"time"
)

// Cooldown remembers when each signature last raised a notification.
// The key is the signature alone: different sources hitting the same rule
// inside the window share one notification.
// Cooldown 记录每个签名上次触发通知的时间。
// 键仅为签名：窗口内不同来源触发同一规则只产生一条通知。
type Cooldown struct {
	window time.Duration

	mu   sync.Mutex
	last map[string]time.Time
}

// NewCooldown creates an empty table with the given window.
func NewCooldown(window time.Duration) *Cooldown {
	return &Cooldown{window: window, last: make(map[string]time.Time)}
}

// Allow reports whether signature may notify at now, and records now if so.
// A repeat fires once at least window has elapsed since the last notification.
// Allow 判断签名在 now 时刻是否可以通知，若可以则记录 now。
// 距上次通知至少经过 window 后才会再次触发。
func (c *Cooldown) Allow(signature string, now time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if last, ok := c.last[signature]; ok && now.Sub(last) < c.window {
		return false
	}
	c.last[signature] = now
	return true
}

// Len returns the number of tracked signatures.
func (c *Cooldown) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.last)
}

// Window returns the configured window.
func (c *Cooldown) Window() time.Duration {
	return c.window
}
