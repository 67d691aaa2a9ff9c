// Package config loads application configuration from environment variables.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the core runtime settings. Every field has a default so the
// demo starts with an empty environment.
type Config struct {
	Env             string        // application environment (dev, prod)
	Port            string        // HTTP port to listen on
	JWTSecret       string        // secret used to sign session tokens
	SessionTTL      time.Duration // lifetime of a session token
	ShutdownTimeout time.Duration // grace period for in-flight requests
}

// LoadEnvFile loads variables from path (default ".env") without overriding
// values already present in the environment. A missing file is not an
// error.
func LoadEnvFile(path string) error {
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	return godotenv.Load(path)
}

// Load reads the core configuration.
func Load() Config {
	return Config{
		Env:             envStr("APP_ENV", "dev"),
		Port:            envStr("APP_PORT", "8080"),
		JWTSecret:       envStr("JWT_SECRET", "golden-hour-demo-secret"),
		SessionTTL:      envDur("SESSION_TTL", 8*time.Hour),
		ShutdownTimeout: envDur("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

// Production reports whether the service runs with production logging.
func (c Config) Production() bool {
	return c.Env == "prod" || c.Env == "production"
}

// DemoConfig tunes the simulated behaviour of the booking flows.
type DemoConfig struct {
	ClosureRate        float64       // chance that a free slot is shown closed
	PaymentDelay       time.Duration // simulated card processing time
	SubmitDelay        time.Duration // simulated guest submission time
	ReservationLogPath string        // where the event consumer appends lines
	Timezone           string        // location used for "today" and stats
}

func LoadDemoConfig() DemoConfig {
	d := DemoConfig{
		ClosureRate:        envFloat("SLOTS_CLOSURE_RATE", 0.2),
		PaymentDelay:       envDur("PAYMENT_DELAY", 3*time.Second),
		SubmitDelay:        envDur("SUBMIT_DELAY", 1500*time.Millisecond),
		ReservationLogPath: envStr("RESERVATION_LOG_PATH", "logs/reservations.log"),
		Timezone:           envStr("APP_TIMEZONE", "Local"),
	}
	if d.ClosureRate < 0 {
		d.ClosureRate = 0
	}
	if d.ClosureRate > 1 {
		d.ClosureRate = 1
	}
	if d.PaymentDelay < 0 {
		d.PaymentDelay = 0
	}
	if d.SubmitDelay < 0 {
		d.SubmitDelay = 0
	}
	return d
}

// Location resolves Timezone, falling back to the local zone.
func (d DemoConfig) Location() *time.Location {
	loc, err := time.LoadLocation(d.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

func envFloat(k string, d float64) float64 {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return f
	}
	return d
}
