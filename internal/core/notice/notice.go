// Package notice holds ephemeral user-facing notices. A notice replaces any
// prior one (never queued) and clears itself after a fixed delay.
package notice

import (
	"sync"
	"time"
)

// DefaultTTL is how long a notice stays visible before self-clearing.
const DefaultTTL = 3 * time.Second

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Notice is a transient user-facing message.
type Notice struct {
	Kind Kind
	Text string
	At   time.Time
}

// Center holds at most one current notice.
type Center struct {
	mu      sync.Mutex
	ttl     time.Duration
	current *Notice
	seq     uint64
}

// NewCenter creates a Center; ttl <= 0 falls back to DefaultTTL.
func NewCenter(ttl time.Duration) *Center {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Center{ttl: ttl}
}

// Publish replaces the current notice and schedules its clearing. A later
// Publish supersedes the pending clear of an earlier one.
func (c *Center) Publish(kind Kind, text string) {
	c.mu.Lock()
	c.seq++
	seq := c.seq
	c.current = &Notice{Kind: kind, Text: text, At: time.Now()}
	c.mu.Unlock()

	time.AfterFunc(c.ttl, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		// Only clear if no newer notice replaced this one.
		if c.seq == seq {
			c.current = nil
		}
	})
}

// Current returns the visible notice, or nil when none is active.
func (c *Center) Current() *Notice {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return nil
	}
	n := *c.current
	return &n
}

// Clear removes the current notice immediately.
func (c *Center) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	c.current = nil
}
