package services

import (
	"context"
	"sync"
	"time"

	"nandighosh/internal/booking"
	"nandighosh/internal/contact"
	"nandighosh/internal/domain"
	"nandighosh/internal/notify"
	"nandighosh/internal/utils"

	"github.com/google/uuid"
)

// Session is the state of one visitor: the booking dialog, the contact
// form and the notifications not yet shown.
type Session struct {
	ID       string
	Wizard   *booking.Wizard
	Contact  *contact.Form
	Feed     *notify.Feed
	Notifier notify.Relay

	mu       sync.Mutex
	lastSeen time.Time
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// Busy reports whether either component has a submission in flight.
func (s *Session) Busy() bool {
	return s.Wizard.Busy() || s.Contact.Busy()
}

// SessionService creates and tracks visitor sessions in memory.
type SessionService struct {
	Catalog          booking.Catalog
	BookingSubmitter booking.Submitter
	ContactSubmitter contact.Submitter
	Hub              *notify.Hub
	Location         *time.Location
	TTL              time.Duration
	Now              domain.Clock
	FeedLimit        int

	// NewID defaults to uuid.NewString.
	NewID func() string

	mu       sync.RWMutex
	sessions map[string]*Session
}

func (s *SessionService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *SessionService) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return uuid.NewString()
}

// Create starts a fresh session.
func (s *SessionService) Create() *Session {
	id := s.newID()
	feed := notify.NewFeed(s.FeedLimit)
	sinks := notify.Relay{Hub: s.Hub, SessionID: id, Feed: feed}

	wizard := booking.NewWizard(booking.Options{
		Catalog:   s.Catalog,
		Submitter: s.BookingSubmitter,
		Notifier:  sinks,
		Now:       s.Now,
		Location:  s.Location,
	})
	sess := &Session{
		ID:       id,
		Wizard:   wizard,
		Contact:  contact.NewForm(s.ContactSubmitter, sinks, s.Now),
		Feed:     feed,
		Notifier: sinks,
		lastSeen: s.now(),
	}

	s.mu.Lock()
	if s.sessions == nil {
		s.sessions = make(map[string]*Session)
	}
	s.sessions[id] = sess
	s.mu.Unlock()
	return sess
}

// Get returns the live session with id and marks it as seen.
func (s *SessionService) Get(id string) (*Session, bool) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	sess.touch(s.now())
	return sess, true
}

// Resolve returns the session with id, or a new one when id is unknown.
// The boolean is true when a session was created.
func (s *SessionService) Resolve(id string) (*Session, bool) {
	if id != "" {
		if sess, ok := s.Get(id); ok {
			return sess, false
		}
	}
	return s.Create(), true
}

// Sweep drops sessions idle for longer than TTL and returns how many
// were removed. Sessions with a submission in flight are kept.
func (s *SessionService) Sweep() int {
	if s.TTL <= 0 {
		return 0
	}
	cutoff := s.now().Add(-s.TTL)

	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, sess := range s.sessions {
		if sess.idleSince().Before(cutoff) && !sess.Busy() {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Run sweeps every interval until ctx is done.
func (s *SessionService) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				utils.Logger().Debug().Str("label", "sessions").Int("removed", n).Msg("expired sessions swept")
			}
		}
	}
}

// Len is the number of live sessions.
func (s *SessionService) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
