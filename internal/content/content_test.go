package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbeddedSite(t *testing.T) {
	site, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "+91 98765 43210", site.Contact.PhoneDisplay)
	assert.Equal(t, "+919876543210", site.Contact.PhoneDial)
	assert.Equal(t, "919876543210", site.Contact.WhatsAppNumber)
	assert.Equal(t, "info@nandighoshbus.com", site.Contact.Email)

	assert.Len(t, site.MainFeatures(), 4)
	assert.Len(t, site.ExtraFeatures(), 3)

	for _, id := range []string{"routes", "features", "contact"} {
		_, ok := site.Section(id)
		assert.True(t, ok, id)
	}
	play, ok := site.Store("play")
	require.True(t, ok)
	assert.Equal(t, "https://play.google.com/store", play.URL)
	_, ok = site.Feature("gps-tracking")
	assert.True(t, ok)
}

func TestParseRejectsBrokenContent(t *testing.T) {
	tests := map[string]string{
		"unknown key": "contact:\n  phone_dial: \"1\"\n  email: a@b.c\nbanner: x\n",
		"no contact":  "brand:\n  name: X\n",
		"dup feature": "contact:\n  phone_dial: \"1\"\n  email: a@b.c\nfeatures:\n  - id: a\n  - id: a\n",
		"dup section": "contact:\n  phone_dial: \"1\"\n  email: a@b.c\nsections:\n  - id: s\n  - id: s\n",
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(raw))
			assert.Error(t, err)
		})
	}
}

func TestTemplatesEmbedded(t *testing.T) {
	raw, err := Templates.ReadFile("templates/index.tmpl")
	require.NoError(t, err)
	assert.Contains(t, string(raw), "Book Your Seat")
}
