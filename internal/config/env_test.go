package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEnvDefaults(t *testing.T) {
	env := envFrom(func(string) string { return "" })

	assert.Equal(t, ":8080", env.AppAddr)
	assert.Equal(t, "info", env.LogLevel)
	assert.Equal(t, 2*time.Hour, env.SessionTTL)
	assert.Equal(t, 2000*time.Millisecond, env.BookingSubmitDelay)
	assert.Equal(t, 1500*time.Millisecond, env.ContactSubmitDelay)
	assert.Equal(t, 1000*time.Millisecond, env.StoreRedirectDelay)
	assert.Equal(t, ContactStoreSimulated, env.ContactStore)
	assert.Equal(t, 5, env.ContactRatePerMinute)
	assert.Empty(t, env.CORSAllowedOrigins)
	assert.False(t, env.EnablePprof)
}

func TestEnvOverrides(t *testing.T) {
	vals := map[string]string{
		"APP_ADDR":                ":9090",
		"BOOKING_SUBMIT_DELAY":    "250ms",
		"CONTACT_SUBMIT_DELAY":    "bogus",
		"CONTACT_STORE":           "MySQL",
		"CORS_ALLOWED_ORIGINS":    "https://a.example, ,https://b.example",
		"CONTACT_RATE_PER_MINUTE": "-3",
		"ENABLE_PPROF":            "true",
	}
	env := envFrom(func(k string) string { return vals[k] })

	assert.Equal(t, ":9090", env.AppAddr)
	assert.Equal(t, 250*time.Millisecond, env.BookingSubmitDelay)
	assert.Equal(t, 1500*time.Millisecond, env.ContactSubmitDelay)
	assert.Equal(t, ContactStoreMySQL, env.ContactStore)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, env.CORSAllowedOrigins)
	assert.Equal(t, 5, env.ContactRatePerMinute)
	assert.True(t, env.EnablePprof)
}

func TestEnvLocation(t *testing.T) {
	env := Env{Timezone: "Asia/Kolkata"}
	_, offset := time.Date(2026, 10, 15, 0, 0, 0, 0, env.Location()).Zone()
	assert.Equal(t, 5*60*60+30*60, offset)

	env.Timezone = "Nowhere/Special"
	_, offset = time.Date(2026, 10, 15, 0, 0, 0, 0, env.Location()).Zone()
	assert.Equal(t, 5*60*60+30*60, offset)
}

func TestWeakSessionSecret(t *testing.T) {
	tests := []struct {
		name string
		vals map[string]string
		want bool
	}{
		{"debug with default", map[string]string{}, false},
		{"release with default", map[string]string{"GIN_MODE": "release"}, true},
		{"release with secret", map[string]string{"GIN_MODE": "release", "SESSION_SECRET": "s3cr3t-from-vault"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := envFrom(func(k string) string { return tt.vals[k] })
			assert.Equal(t, tt.want, env.WeakSessionSecret())
		})
	}
}
