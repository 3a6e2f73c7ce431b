package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
	"strings"
)

// Config holds all runtime configuration values. Each field corresponds to
// an environment variable. The signing secret and the store connection are
// loaded once at startup and passed explicitly to the components that need
// them; nothing reads configuration from ambient globals after Load returns.
type Config struct {
	Env            string   // application environment (e.g. "dev", "prod")
	Port           string   // HTTP port to listen on
	MongoURI       string   // MongoDB connection string
	MongoDB        string   // database name
	JWTSecret      string   // secret used to sign session tokens
	TokenTTLMin    int      // session token time-to-live in minutes
	BcryptCost     int      // bcrypt cost for password hashing
	AllowedOrigins []string // CORS origin allowlist
}

// Load reads configuration values from environment variables and returns a
// Config. Required variables are enforced by must() and missing values cause
// the program to exit with a fatal log message. Session TTL defaults to one
// hour and bcrypt cost to 10 when unset.
func Load() Config {
	return Config{
		Env:            must("APP_ENV"),
		Port:           must("APP_PORT"),
		MongoURI:       must("MONGO_URI"),
		MongoDB:        must("MONGO_DB"),
		JWTSecret:      must("JWT_SECRET"),
		TokenTTLMin:    envInt("TOKEN_TTL_MIN", 60),
		BcryptCost:     envInt("BCRYPT_COST", 10),
		AllowedOrigins: splitCSV(envStr("ALLOWED_ORIGINS", "*")),
	}
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Shared env helpers with defaults. Unlike must(), these tolerate absent or
// malformed values and fall back to the provided default.
func envStr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func envInt(k string, d int) int {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return d
}

func envBool(k string, d bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return d
}
