package config

import (
	"os"
	"strconv"
	"time"
)

type Environment struct {
	IsDevelopment bool
	Domain        string
	CookieSecure  bool
	// AdvanceDelay is how long quiz feedback stays visible before the feed
	// auto-advances past a correctly answered card.
	AdvanceDelay time.Duration
}

var Env Environment

func init() {
	// Get domain from environment variable
	domain := os.Getenv("COOKIE_DOMAIN")

	// If no domain is set, we're in development
	isDev := domain == ""
	if isDev {
		domain = "localhost"
	}

	advanceDelay := 2500 * time.Millisecond
	if ms := os.Getenv("ADVANCE_DELAY_MS"); ms != "" {
		if v, err := strconv.Atoi(ms); err == nil && v > 0 {
			advanceDelay = time.Duration(v) * time.Millisecond
		}
	}

	Env = Environment{
		IsDevelopment: isDev,
		Domain:        domain,
		CookieSecure:  !isDev,
		AdvanceDelay:  advanceDelay,
	}
}
