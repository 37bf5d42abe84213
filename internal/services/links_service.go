package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"nandighosh/internal/content"
	"nandighosh/internal/domain"
	"nandighosh/internal/domain/models"
	"nandighosh/internal/utils"
)

// Platform carries out the navigation the page asks for. The HTTP
// implementation answers with redirects.
type Platform interface {
	Dial(target string)
	OpenURL(url string, newContext bool)
	ScrollTo(anchor string)
}

// Notifier receives the toasts emitted by page actions.
type Notifier interface {
	Notify(n models.Notification)
}

// LinksService maps the page's call, chat, mail, store and navigation
// actions to platform targets.
type LinksService struct {
	Site          content.Site
	Platform      Platform
	Notifier      Notifier
	RedirectDelay time.Duration
	Now           domain.Clock
	RequestID     string

	// Sleep defaults to a context-aware timer.
	Sleep func(ctx context.Context, d time.Duration) error
}

func (s LinksService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s LinksService) sleep(ctx context.Context, d time.Duration) error {
	if s.Sleep != nil {
		return s.Sleep(ctx, d)
	}
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// CallTarget is the dial target of the phone line, e.g. "tel:+919876543210".
func (s LinksService) CallTarget() string {
	return "tel:" + strings.TrimSpace(s.Site.Contact.PhoneDial)
}

// WhatsAppURL is the chat link with the greeting pre-filled.
func (s LinksService) WhatsAppURL() string {
	return fmt.Sprintf("https://wa.me/%s?text=%s",
		strings.TrimSpace(s.Site.Contact.WhatsAppNumber),
		utils.EncodeURIComponent(s.Site.Contact.WhatsAppGreeting),
	)
}

// EmailTarget is the mail link of the support inbox.
func (s LinksService) EmailTarget() string {
	return "mailto:" + strings.TrimSpace(s.Site.Contact.Email)
}

func (s LinksService) Call() {
	utils.LogEvent(s.RequestID, "links", "call", "dial support line")
	s.Platform.Dial(s.CallTarget())
}

func (s LinksService) WhatsApp() {
	utils.LogEvent(s.RequestID, "links", "whatsapp", "open chat")
	s.Platform.OpenURL(s.WhatsAppURL(), true)
}

func (s LinksService) Email() {
	utils.LogEvent(s.RequestID, "links", "email", "open mail client")
	s.Platform.OpenURL(s.EmailTarget(), false)
}

// AppStore announces the redirect, waits RedirectDelay and opens the
// store in a new browsing context.
func (s LinksService) AppStore(ctx context.Context, storeID string) error {
	store, ok := s.Site.Store(strings.ToLower(strings.TrimSpace(storeID)))
	if !ok {
		return domain.NotFoundError{Resource: fmt.Sprintf("store %q", storeID)}
	}
	if s.Notifier != nil {
		s.Notifier.Notify(models.Notification{
			Title:       "Redirecting to Store",
			Description: fmt.Sprintf("Opening %s...", store.Name),
			Variant:     models.VariantDefault,
			CreatedAt:   s.now(),
		})
	}
	if err := s.sleep(ctx, s.RedirectDelay); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "links", "app_store", "store="+store.ID)
	s.Platform.OpenURL(store.URL, true)
	return nil
}

// Section scrolls to a page section.
func (s LinksService) Section(anchor string) error {
	sec, ok := s.Site.Section(strings.ToLower(strings.TrimSpace(anchor)))
	if !ok {
		return domain.NotFoundError{Resource: fmt.Sprintf("section %q", anchor)}
	}
	s.Platform.ScrollTo(sec.ID)
	return nil
}
