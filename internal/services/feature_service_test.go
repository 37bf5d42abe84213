package services

import (
	"testing"

	"nandighosh/internal/content"
	"nandighosh/internal/domain"
	"nandighosh/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeatureServiceHighlight(t *testing.T) {
	site, err := content.Load()
	require.NoError(t, err)
	n := &recordingNotifier{}
	svc := FeatureService{Site: site, Notifier: n}

	got, err := svc.Highlight("free-wifi")
	require.NoError(t, err)
	assert.Equal(t, "Free WiFi", got.Title)
	assert.Contains(t, got.Description, "complimentary high-speed WiFi")
	assert.Equal(t, models.VariantDefault, got.Variant)
	assert.Equal(t, []models.Notification{got}, n.items)

	_, err = svc.Highlight("jacuzzi")
	assert.True(t, domain.IsNotFound(err))
	assert.Len(t, n.items, 1)
}
