package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// defaultSessionSecret only suits local development.
const defaultSessionSecret = "change-me-nandighosh-session"

// Contact submitter kinds.
const (
	ContactStoreSimulated = "simulated"
	ContactStoreMySQL     = "mysql"
)

type Env struct {
	AppAddr  string
	GinMode  string
	LogLevel string

	SessionSecret string
	SessionTTL    time.Duration
	Timezone      string

	BookingSubmitDelay time.Duration
	ContactSubmitDelay time.Duration
	StoreRedirectDelay time.Duration

	ContactStore string
	MySQLDSN     string

	CORSAllowedOrigins   []string
	ContactRatePerMinute int
	EnablePprof          bool
}

// LoadEnv reads configuration from the environment. A .env file in the
// working directory is loaded first when present; real environment
// variables win over it.
func LoadEnv() Env {
	_ = godotenv.Load()
	return envFrom(os.Getenv)
}

func envFrom(get func(string) string) Env {
	str := func(key, def string) string {
		if v := strings.TrimSpace(get(key)); v != "" {
			return v
		}
		return def
	}
	dur := func(key string, def time.Duration) time.Duration {
		v := strings.TrimSpace(get(key))
		if v == "" {
			return def
		}
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			return def
		}
		return d
	}
	num := func(key string, def int) int {
		n, err := strconv.Atoi(strings.TrimSpace(get(key)))
		if err != nil || n <= 0 {
			return def
		}
		return n
	}
	flag := func(key string) bool {
		b, _ := strconv.ParseBool(strings.TrimSpace(get(key)))
		return b
	}

	store := strings.ToLower(str("CONTACT_STORE", ContactStoreSimulated))
	if store != ContactStoreMySQL {
		store = ContactStoreSimulated
	}

	return Env{
		AppAddr:              str("APP_ADDR", ":8080"),
		GinMode:              str("GIN_MODE", ""),
		LogLevel:             str("LOG_LEVEL", "info"),
		SessionSecret:        str("SESSION_SECRET", defaultSessionSecret),
		SessionTTL:           dur("SESSION_TTL", 2*time.Hour),
		Timezone:             str("TIMEZONE", "Asia/Kolkata"),
		BookingSubmitDelay:   dur("BOOKING_SUBMIT_DELAY", 2000*time.Millisecond),
		ContactSubmitDelay:   dur("CONTACT_SUBMIT_DELAY", 1500*time.Millisecond),
		StoreRedirectDelay:   dur("STORE_REDIRECT_DELAY", 1000*time.Millisecond),
		ContactStore:         store,
		MySQLDSN:             str("MYSQL_DSN", "root:@tcp(127.0.0.1:3306)/nandighosh?parseTime=true&charset=utf8mb4&timeout=5s&readTimeout=30s&writeTimeout=30s"),
		CORSAllowedOrigins:   splitList(get("CORS_ALLOWED_ORIGINS")),
		ContactRatePerMinute: num("CONTACT_RATE_PER_MINUTE", 5),
		EnablePprof:          flag("ENABLE_PPROF"),
	}
}

// WeakSessionSecret reports a release build still signing sessions with
// the built-in development secret.
func (e Env) WeakSessionSecret() bool {
	return strings.EqualFold(e.GinMode, "release") && e.SessionSecret == defaultSessionSecret
}

// Location resolves Timezone, falling back to IST when the zone database
// does not know it.
func (e Env) Location() *time.Location {
	if loc, err := time.LoadLocation(e.Timezone); err == nil {
		return loc
	}
	return time.FixedZone("IST", 5*60*60+30*60)
}

func splitList(raw string) []string {
	out := []string{}
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
