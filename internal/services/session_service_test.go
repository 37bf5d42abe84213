package services

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"nandighosh/internal/contact"
	"nandighosh/internal/domain/models"
	"nandighosh/internal/repositories"
	"nandighosh/internal/submit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func newSessionService(clock *fakeClock, contactSubmitter contact.Submitter) *SessionService {
	n := 0
	return &SessionService{
		Catalog:          repositories.NewRouteCatalog(),
		BookingSubmitter: submit.NewSimulated[models.BookingRequest](0),
		ContactSubmitter: contactSubmitter,
		Location:         time.UTC,
		TTL:              time.Hour,
		Now:              clock.Now,
		NewID: func() string {
			n++
			return "session-" + strconv.Itoa(n)
		},
	}
}

func TestSessionServiceResolve(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 10, 15, 10, 0, 0, 0, time.UTC)}
	svc := newSessionService(clock, submit.NewSimulated[models.ContactDraft](0))

	first, created := svc.Resolve("")
	require.True(t, created)
	assert.Equal(t, "session-1", first.ID)

	again, created := svc.Resolve(first.ID)
	assert.False(t, created)
	assert.Same(t, first, again)

	other, created := svc.Resolve("unknown")
	assert.True(t, created)
	assert.NotEqual(t, first.ID, other.ID)
	assert.Equal(t, 2, svc.Len())
}

func TestSessionServiceSweep(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 10, 15, 10, 0, 0, 0, time.UTC)}
	svc := newSessionService(clock, submit.NewSimulated[models.ContactDraft](0))

	stale := svc.Create()
	clock.Advance(45 * time.Minute)
	fresh := svc.Create()
	clock.Advance(30 * time.Minute)

	assert.Equal(t, 1, svc.Sweep())
	_, ok := svc.Get(stale.ID)
	assert.False(t, ok)
	_, ok = svc.Get(fresh.ID)
	assert.True(t, ok)
}

func TestSessionServiceSweepKeepsBusySessions(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 10, 15, 10, 0, 0, 0, time.UTC)}
	release := make(chan struct{})
	started := make(chan struct{})
	blocking := submit.Func[models.ContactDraft](func(ctx context.Context, _ models.ContactDraft) error {
		close(started)
		<-release
		return nil
	})
	svc := newSessionService(clock, blocking)
	sess := svc.Create()

	done := make(chan error, 1)
	go func() {
		done <- sess.Contact.Submit(context.Background(), models.ContactDraft{
			Name: "Asha", Phone: "9000000000", Email: "asha@example.com", Message: "Hello",
		})
	}()
	<-started

	clock.Advance(2 * time.Hour)
	assert.Equal(t, 0, svc.Sweep())
	assert.Equal(t, 1, svc.Len())

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, 1, svc.Sweep())
	assert.Equal(t, 0, svc.Len())
}

func TestSessionNotificationsReachFeed(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 10, 15, 10, 0, 0, 0, time.UTC)}
	svc := newSessionService(clock, submit.NewSimulated[models.ContactDraft](0))
	sess := svc.Create()

	err := sess.Contact.Submit(context.Background(), models.ContactDraft{
		Name: "Asha", Phone: "9000000000", Email: "asha@example.com", Message: "Hello",
	})
	require.NoError(t, err)

	items := sess.Feed.Drain()
	require.Len(t, items, 1)
	assert.Equal(t, "Message Sent! ✅", items[0].Title)
}
