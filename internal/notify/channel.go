// Package notify holds the single current user notification.
package notify

import (
	"sync"

	"github.com/UUDigitalHumanitieslab/historic-hebrew-dates/internal/textdir"
)

// Severity of a notification
type Severity string

const (
	Success Severity = "success"
	Error   Severity = "error"
	Info    Severity = "info"
)

// Notification is a message shown to the user
type Notification struct {
	Message   string
	Severity  Severity
	Direction textdir.Direction
}

// Channel is a single-slot store. Every Show or Clear replaces the current
// value and is delivered to subscribers; nothing is queued.
type Channel struct {
	mu      sync.Mutex
	current *Notification
	subs    map[int]chan *Notification
	nextID  int
}

// NewChannel creates an empty channel
func NewChannel() *Channel {
	return &Channel{subs: make(map[int]chan *Notification)}
}

// Show replaces the current notification
func (c *Channel) Show(message string, severity Severity, dir textdir.Direction) {
	c.publish(&Notification{Message: message, Severity: severity, Direction: dir})
}

// Clear removes the current notification
func (c *Channel) Clear() {
	c.publish(nil)
}

// Current returns a copy of the current notification, or nil
func (c *Channel) Current() *Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return nil
	}
	n := *c.current
	return &n
}

// Subscribe returns a channel that receives the current value immediately
// and every later change. A slow reader only ever sees the latest value.
// The returned func unsubscribes and closes the channel.
func (c *Channel) Subscribe() (<-chan *Notification, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ch := make(chan *Notification, 1)
	id := c.nextID
	c.nextID++
	c.subs[id] = ch
	ch <- copyOf(c.current)

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			delete(c.subs, id)
			close(ch)
		})
	}
}

func (c *Channel) publish(n *Notification) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = n
	for _, ch := range c.subs {
		// drop the stale value, if any, so the send never blocks
		select {
		case <-ch:
		default:
		}
		ch <- copyOf(n)
	}
}

func copyOf(n *Notification) *Notification {
	if n == nil {
		return nil
	}
	cp := *n
	return &cp
}
