package notify

import (
	"sync"

	"nandighosh/internal/domain/models"
)

// Sink receives notifications.
type Sink interface {
	Notify(n models.Notification)
}

// Relay hands a notification to the live connections of one session.
// Feed only keeps the ones no connection took.
type Relay struct {
	Hub       *Hub
	SessionID string
	Feed      *Feed
}

func (r Relay) Notify(n models.Notification) {
	if r.Hub != nil && r.Hub.Publish(r.SessionID, n) > 0 {
		return
	}
	if r.Feed != nil {
		r.Feed.Notify(n)
	}
}

const defaultFeedLimit = 20

// Feed keeps the latest notifications of one visitor until the page
// drains them. Older entries are dropped once Limit is reached.
type Feed struct {
	mu    sync.Mutex
	limit int
	items []models.Notification
}

func NewFeed(limit int) *Feed {
	if limit <= 0 {
		limit = defaultFeedLimit
	}
	return &Feed{limit: limit}
}

func (f *Feed) Notify(n models.Notification) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = append(f.items, n)
	if over := len(f.items) - f.limit; over > 0 {
		f.items = append([]models.Notification(nil), f.items[over:]...)
	}
}

// Drain returns the pending notifications oldest first and empties the feed.
func (f *Feed) Drain() []models.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := f.items
	f.items = nil
	if out == nil {
		out = []models.Notification{}
	}
	return out
}

// Len is the number of pending notifications.
func (f *Feed) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.items)
}
