// Package client consumes the notification push channel: one SSE
// connection per session, folded into a local notification feed.
package client

import (
	"sync"

	"frontdesk/internal/models"
)

// Feed is the client-local notification state, most recent first.
// The server keeps no history, so the feed only ever holds what
// arrived while this consumer was connected.
type Feed struct {
	mu            sync.RWMutex
	notifications []models.Notification
	unread        int
}

func NewFeed() *Feed {
	return &Feed{}
}

// Push prepends a notification and bumps the unread counter.
func (f *Feed) Push(n models.Notification) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notifications = append([]models.Notification{n}, f.notifications...)
	f.unread++
}

// Notifications returns a snapshot of the list, most recent first.
func (f *Feed) Notifications() []models.Notification {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]models.Notification, len(f.notifications))
	copy(out, f.notifications)
	return out
}

// Unread returns the count of notifications since the last MarkSeen.
func (f *Feed) Unread() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.unread
}

// MarkSeen resets the unread counter; the list itself is kept.
func (f *Feed) MarkSeen() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.unread = 0
}

// Len reports the number of retained notifications.
func (f *Feed) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.notifications)
}
