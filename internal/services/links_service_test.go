package services

import (
	"context"
	"testing"
	"time"

	"nandighosh/internal/content"
	"nandighosh/internal/domain"
	"nandighosh/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type platformCall struct {
	kind       string
	target     string
	newContext bool
}

type recordingPlatform struct {
	calls []platformCall
}

func (p *recordingPlatform) Dial(target string) {
	p.calls = append(p.calls, platformCall{kind: "dial", target: target})
}

func (p *recordingPlatform) OpenURL(url string, newContext bool) {
	p.calls = append(p.calls, platformCall{kind: "open", target: url, newContext: newContext})
}

func (p *recordingPlatform) ScrollTo(anchor string) {
	p.calls = append(p.calls, platformCall{kind: "scroll", target: anchor})
}

type recordingNotifier struct {
	items []models.Notification
}

func (r *recordingNotifier) Notify(n models.Notification) {
	r.items = append(r.items, n)
}

func newLinksService(t *testing.T) (LinksService, *recordingPlatform, *recordingNotifier) {
	t.Helper()
	site, err := content.Load()
	require.NoError(t, err)
	p := &recordingPlatform{}
	n := &recordingNotifier{}
	return LinksService{
		Site:          site,
		Platform:      p,
		Notifier:      n,
		RedirectDelay: time.Second,
	}, p, n
}

func TestLinksServiceFixedTargets(t *testing.T) {
	svc, p, _ := newLinksService(t)

	svc.Call()
	svc.WhatsApp()
	svc.Email()

	require.Len(t, p.calls, 3)
	assert.Equal(t, platformCall{kind: "dial", target: "tel:+919876543210"}, p.calls[0])
	assert.Equal(t, platformCall{
		kind:       "open",
		target:     "https://wa.me/919876543210?text=Hi!%20I'm%20interested%20in%20booking%20a%20bus%20ticket%20with%20Nandighosh%20Bus.%20Can%20you%20help%20me%3F",
		newContext: true,
	}, p.calls[1])
	assert.Equal(t, platformCall{kind: "open", target: "mailto:info@nandighoshbus.com"}, p.calls[2])
}

func TestLinksServiceAppStore(t *testing.T) {
	svc, p, n := newLinksService(t)
	var slept time.Duration
	var notesBefore, callsBefore int
	svc.Sleep = func(_ context.Context, d time.Duration) error {
		slept = d
		require.Len(t, n.items, notesBefore+1, "notification must precede the redirect")
		require.Len(t, p.calls, callsBefore)
		return nil
	}

	for _, id := range []string{"play", "app"} {
		notesBefore, callsBefore = len(n.items), len(p.calls)
		require.NoError(t, svc.AppStore(context.Background(), id))
	}

	assert.Equal(t, time.Second, slept)
	require.Len(t, n.items, 2)
	assert.Equal(t, "Redirecting to Store", n.items[0].Title)
	assert.Equal(t, "Opening Google Play Store...", n.items[0].Description)
	assert.Equal(t, "Opening App Store...", n.items[1].Description)
	assert.Equal(t, []platformCall{
		{kind: "open", target: "https://play.google.com/store", newContext: true},
		{kind: "open", target: "https://apps.apple.com/app-store", newContext: true},
	}, p.calls)
}

func TestLinksServiceAppStoreUnknown(t *testing.T) {
	svc, p, n := newLinksService(t)
	err := svc.AppStore(context.Background(), "windows")
	assert.True(t, domain.IsNotFound(err))
	assert.Empty(t, p.calls)
	assert.Empty(t, n.items)
}

func TestLinksServiceAppStoreCancelled(t *testing.T) {
	svc, p, _ := newLinksService(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := svc.AppStore(ctx, "play")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, p.calls)
}

func TestLinksServiceSection(t *testing.T) {
	svc, p, _ := newLinksService(t)
	for _, id := range []string{"routes", "features", "contact"} {
		require.NoError(t, svc.Section(id))
	}
	assert.True(t, domain.IsNotFound(svc.Section("pricing")))
	assert.Equal(t, []platformCall{
		{kind: "scroll", target: "routes"},
		{kind: "scroll", target: "features"},
		{kind: "scroll", target: "contact"},
	}, p.calls)
}
