package services

import (
	"fmt"
	"strings"
	"time"

	"nandighosh/internal/content"
	"nandighosh/internal/domain"
	"nandighosh/internal/domain/models"
)

// FeatureService answers clicks on the "Why Choose Us" cards.
type FeatureService struct {
	Site     content.Site
	Notifier Notifier
	Now      domain.Clock
}

// Highlight emits the detail notification of feature id.
func (s FeatureService) Highlight(id string) (models.Notification, error) {
	f, ok := s.Site.Feature(strings.TrimSpace(id))
	if !ok {
		return models.Notification{}, domain.NotFoundError{Resource: fmt.Sprintf("feature %q", id)}
	}
	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}
	n := models.Notification{
		Title:       f.Title,
		Description: f.Detail,
		Variant:     models.VariantDefault,
		CreatedAt:   now,
	}
	if s.Notifier != nil {
		s.Notifier.Notify(n)
	}
	return n, nil
}
