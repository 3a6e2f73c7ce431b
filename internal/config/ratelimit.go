package config

import (
	"os"
	"time"
)

// RouteLimit is a fixed-window rate limit applied to a single route: at most
// Limit requests per Window per source.
type RouteLimit struct {
	Name   string // short name used in the Redis key, e.g. "login"
	Limit  int
	Window time.Duration
}

// RateLimitConfig carries the limiter settings for the two throttled routes.
type RateLimitConfig struct {
	Enabled  bool
	Prefix   string
	Debug    bool
	Login    RouteLimit
	Register RouteLimit
}

// LoadRateLimitConfig reads limiter settings from the environment. Defaults
// are 5 login attempts per 15 minutes and 10 registrations per hour per
// source IP.
func LoadRateLimitConfig() RateLimitConfig {
	cfg := RateLimitConfig{
		Enabled: envBool("RATE_LIMIT_ENABLED", true),
		Prefix:  envStr("RATE_LIMIT_PREFIX", "rl"),
		Debug:   envBool("RATE_LIMIT_DEBUG", false),
		Login: RouteLimit{
			Name:   "login",
			Limit:  envInt("LOGIN_RATE_LIMIT", 5),
			Window: envDur("LOGIN_RATE_WINDOW", 15*time.Minute),
		},
		Register: RouteLimit{
			Name:   "register",
			Limit:  envInt("REGISTER_RATE_LIMIT", 10),
			Window: envDur("REGISTER_RATE_WINDOW", time.Hour),
		},
	}
	for _, rl := range []*RouteLimit{&cfg.Login, &cfg.Register} {
		if rl.Limit < 1 {
			rl.Limit = 1
		}
		if rl.Window <= 0 {
			rl.Window = time.Minute
		}
	}
	return cfg
}

func envDur(k string, d time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if dur, err := time.ParseDuration(v); err == nil && dur > 0 {
		return dur
	}
	return d
}
