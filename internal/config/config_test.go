package config

import (
	"strings"
	"testing"
	"time"
)

func lookupFrom(env map[string]string) envLookup {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func requiredEnv() map[string]string {
	return map[string]string{
		"DATABASE_URI":           "postgres://localhost/payments",
		"REDIS_ADDRESS":          "localhost:6379",
		"XENDIT_GATEWAY_ADDRESS": "https://api.xendit.co",
		"XENDIT_TEST_SECRET_KEY": "xnd_test_secret",
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(nil, lookupFrom(requiredEnv()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.RunAddress != ":8080" {
		t.Fatalf("unexpected run address %q", cfg.RunAddress)
	}
	if cfg.Environment != EnvironmentTest {
		t.Fatalf("unexpected environment %q", cfg.Environment)
	}
	if cfg.StoreName != "Web Store" {
		t.Fatalf("unexpected store name %q", cfg.StoreName)
	}
	if cfg.SweepInterval != time.Minute || cfg.SweepAfter != 24*time.Hour {
		t.Fatalf("unexpected sweep settings %v %v", cfg.SweepInterval, cfg.SweepAfter)
	}
	if cfg.WorkerPoolSize != 4 || cfg.SweepBatch != 32 {
		t.Fatalf("unexpected pool settings %d %d", cfg.WorkerPoolSize, cfg.SweepBatch)
	}
}

func TestLoadFlagsOverrideEnvironment(t *testing.T) {
	env := requiredEnv()
	env["RUN_ADDRESS"] = ":9090"

	args := []string{
		"-a", ":7070",
		"-store-name", "Demo Store",
		"-sweep-interval", "30s",
		"-worker-pool", "8",
	}
	cfg, err := load(args, lookupFrom(env))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.RunAddress != ":7070" {
		t.Fatalf("expected flag to win, got %q", cfg.RunAddress)
	}
	if cfg.StoreName != "Demo Store" {
		t.Fatalf("unexpected store name %q", cfg.StoreName)
	}
	if cfg.SweepInterval != 30*time.Second {
		t.Fatalf("unexpected sweep interval %v", cfg.SweepInterval)
	}
	if cfg.WorkerPoolSize != 8 {
		t.Fatalf("unexpected worker pool %d", cfg.WorkerPoolSize)
	}
}

func TestLoadRequiresConnections(t *testing.T) {
	tests := []struct {
		name    string
		drop    string
		message string
	}{
		{name: "database", drop: "DATABASE_URI", message: "database URI"},
		{name: "redis", drop: "REDIS_ADDRESS", message: "redis address"},
		{name: "gateway", drop: "XENDIT_GATEWAY_ADDRESS", message: "gateway address"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := requiredEnv()
			delete(env, tt.drop)
			_, err := load(nil, lookupFrom(env))
			if err == nil || !strings.Contains(err.Error(), tt.message) {
				t.Fatalf("expected %q error, got %v", tt.message, err)
			}
		})
	}
}

func TestLoadRejectsUnknownEnvironment(t *testing.T) {
	env := requiredEnv()
	env["XENDIT_ENVIRONMENT"] = "staging"

	if _, err := load(nil, lookupFrom(env)); err == nil {
		t.Fatal("expected error for unknown environment")
	}
}

func TestLoadRequiresActiveSecretKey(t *testing.T) {
	env := requiredEnv()
	env["XENDIT_ENVIRONMENT"] = EnvironmentLive

	_, err := load(nil, lookupFrom(env))
	if err == nil || !strings.Contains(err.Error(), "live") {
		t.Fatalf("expected live secret key error, got %v", err)
	}

	env["XENDIT_LIVE_SECRET_KEY"] = "xnd_live_secret"
	if _, err := load(nil, lookupFrom(env)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCredentialsFollowEnvironment(t *testing.T) {
	cfg := &Config{
		Environment:   EnvironmentTest,
		TestSecretKey: "xnd_test_secret",
		TestPublicKey: "xnd_test_public",
		LiveSecretKey: "xnd_live_secret",
		LivePublicKey: "xnd_live_public",
	}

	pair := cfg.Credentials()
	if pair.SecretKey != "xnd_test_secret" || pair.PublicKey != "xnd_test_public" {
		t.Fatalf("unexpected test pair %+v", pair)
	}

	cfg.Environment = EnvironmentLive
	pair = cfg.Credentials()
	if pair.SecretKey != "xnd_live_secret" || pair.PublicKey != "xnd_live_public" {
		t.Fatalf("unexpected live pair %+v", pair)
	}
}

func TestLoadNormalizesNonPositiveTuning(t *testing.T) {
	env := requiredEnv()
	env["WORKER_POOL_SIZE"] = "-2"
	env["SWEEP_BATCH"] = "0"
	env["GATEWAY_RPS"] = "-1"

	cfg, err := load(nil, lookupFrom(env))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.WorkerPoolSize != 4 || cfg.SweepBatch != 32 {
		t.Fatalf("expected defaults for non-positive tuning, got %d %d", cfg.WorkerPoolSize, cfg.SweepBatch)
	}
	if cfg.GatewayRPS != 10 {
		t.Fatalf("expected default rps, got %v", cfg.GatewayRPS)
	}
}
