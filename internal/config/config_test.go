package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"APP_ENV", "APP_PORT", "JWT_SECRET", "SESSION_TTL"} {
		t.Setenv(k, "")
	}
	c := Load()
	if c.Port != "8080" || c.Env != "dev" {
		t.Errorf("Load() = %+v, want dev on 8080", c)
	}
	if c.SessionTTL != 8*time.Hour {
		t.Errorf("SessionTTL = %v, want 8h", c.SessionTTL)
	}
	if c.Production() {
		t.Error("dev config reported as production")
	}
}

func TestLoadDemoConfig(t *testing.T) {
	tests := []struct {
		name        string
		rate        string
		delay       string
		wantRate    float64
		wantPayment time.Duration
	}{
		{name: "defaults", wantRate: 0.2, wantPayment: 3 * time.Second},
		{name: "disabledClosure", rate: "0", delay: "0s", wantRate: 0, wantPayment: 0},
		{name: "clamped", rate: "3", delay: "-1s", wantRate: 1, wantPayment: 0},
		{name: "garbage", rate: "often", delay: "soon", wantRate: 0.2, wantPayment: 3 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("SLOTS_CLOSURE_RATE", tt.rate)
			t.Setenv("PAYMENT_DELAY", tt.delay)
			d := LoadDemoConfig()
			if d.ClosureRate != tt.wantRate {
				t.Errorf("ClosureRate = %v, want %v", d.ClosureRate, tt.wantRate)
			}
			if d.PaymentDelay != tt.wantPayment {
				t.Errorf("PaymentDelay = %v, want %v", d.PaymentDelay, tt.wantPayment)
			}
		})
	}
}

func TestLoadEventsConfig(t *testing.T) {
	t.Setenv("EVENTS_DRIVER", "NATS")
	t.Setenv("RABBITMQ_URL", "")
	t.Setenv("AMQP_URL", "amqp://demo@broker:5672/")

	c := LoadEventsConfig()
	if c.Driver != EventsDriverNATS {
		t.Errorf("Driver = %q, want %q", c.Driver, EventsDriverNATS)
	}
	if c.AMQPURL != "amqp://demo@broker:5672/" {
		t.Errorf("AMQPURL = %q, want AMQP_URL fallback", c.AMQPURL)
	}
	if c.Queue != "reservation.events" {
		t.Errorf("Queue = %q", c.Queue)
	}
}

func TestLoadRateLimitConfigBounds(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "0")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "2s")
	t.Setenv("RATE_LIMIT_TTL", "1s")

	c := LoadRateLimitConfig()
	if c.Capacity != 1 {
		t.Errorf("Capacity = %d, want 1", c.Capacity)
	}
	if c.TTL != 10*time.Second {
		t.Errorf("TTL = %v, want 5 refill intervals", c.TTL)
	}
}

func TestLoadRedisConfig(t *testing.T) {
	t.Setenv("REDIS_ADDR", "cache:6380")
	t.Setenv("REDIS_HOST", "")
	t.Setenv("REDIS_PORT", "")
	if got := LoadRedisConfig().Addr; got != "cache:6380" {
		t.Errorf("Addr = %q, want cache:6380", got)
	}

	t.Setenv("REDIS_HOST", "redis")
	t.Setenv("REDIS_PORT", "6379")
	if got := LoadRedisConfig().Addr; got != "redis:6379" {
		t.Errorf("Addr = %q, want redis:6379", got)
	}
}

func TestLoadEnvFile(t *testing.T) {
	if err := LoadEnvFile(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("LoadEnvFile(missing) error = %v", err)
	}

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("GOLDENHOUR_TEST_KEY=from-file\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("GOLDENHOUR_TEST_KEY", "")
	os.Unsetenv("GOLDENHOUR_TEST_KEY")

	if err := LoadEnvFile(path); err != nil {
		t.Fatalf("LoadEnvFile() error = %v", err)
	}
	if got := os.Getenv("GOLDENHOUR_TEST_KEY"); got != "from-file" {
		t.Errorf("GOLDENHOUR_TEST_KEY = %q, want from-file", got)
	}
}
