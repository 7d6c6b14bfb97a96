package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Environment selects which credential pair authenticates gateway calls.
const (
	EnvironmentTest = "test"
	EnvironmentLive = "live"
)

// CredentialPair is a gateway secret/public key pair.
type CredentialPair struct {
	SecretKey string
	PublicKey string
}

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress         string
	DatabaseURI        string
	RedisAddress       string
	GatewayAddress     string
	Environment        string
	TestSecretKey      string
	TestPublicKey      string
	LiveSecretKey      string
	LivePublicKey      string
	StoreName          string
	SuccessRedirectURL string
	FailureRedirectURL string
	CallbackURL        string
	CallbackToken      string
	GatewayRPS         float64
	SweepInterval      time.Duration
	SweepAfter         time.Duration
	SweepBatch         int
	WorkerPoolSize     int
	ShutdownTimeout    time.Duration
}

const (
	defaultRunAddress      = ":8080"
	defaultEnvironment     = EnvironmentTest
	defaultStoreName       = "Web Store"
	defaultGatewayRPS      = 10
	defaultSweepInterval   = time.Minute
	defaultSweepAfter      = 24 * time.Hour
	defaultSweepBatch      = 32
	defaultWorkerPoolSize  = 4
	defaultShutdownTimeout = 10 * time.Second
)

// Load parses configuration from flags and environment variables. A .env file
// in the working directory is applied first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:         getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:        getString(lookup, "DATABASE_URI", ""),
		RedisAddress:       getString(lookup, "REDIS_ADDRESS", ""),
		GatewayAddress:     getString(lookup, "XENDIT_GATEWAY_ADDRESS", ""),
		Environment:        getString(lookup, "XENDIT_ENVIRONMENT", defaultEnvironment),
		TestSecretKey:      getString(lookup, "XENDIT_TEST_SECRET_KEY", ""),
		TestPublicKey:      getString(lookup, "XENDIT_TEST_PUBLIC_KEY", ""),
		LiveSecretKey:      getString(lookup, "XENDIT_LIVE_SECRET_KEY", ""),
		LivePublicKey:      getString(lookup, "XENDIT_LIVE_PUBLIC_KEY", ""),
		StoreName:          getString(lookup, "STORE_NAME", defaultStoreName),
		SuccessRedirectURL: getString(lookup, "SUCCESS_REDIRECT_URL", ""),
		FailureRedirectURL: getString(lookup, "FAILURE_REDIRECT_URL", ""),
		CallbackURL:        getString(lookup, "CALLBACK_URL", ""),
		CallbackToken:      getString(lookup, "XENDIT_CALLBACK_TOKEN", ""),
		GatewayRPS:         getFloat(lookup, "GATEWAY_RPS", defaultGatewayRPS),
		SweepInterval:      getDuration(lookup, "SWEEP_INTERVAL", defaultSweepInterval),
		SweepAfter:         getDuration(lookup, "SWEEP_AFTER", defaultSweepAfter),
		SweepBatch:         getInt(lookup, "SWEEP_BATCH", defaultSweepBatch),
		WorkerPoolSize:     getInt(lookup, "WORKER_POOL_SIZE", defaultWorkerPoolSize),
		ShutdownTimeout:    getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	fs := flag.NewFlagSet("paymentd", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		sweepIntervalStr   = cfg.SweepInterval.String()
		sweepAfterStr      = cfg.SweepAfter.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.RedisAddress, "r", cfg.RedisAddress, "Redis address for cart storage")
	fs.StringVar(&cfg.GatewayAddress, "g", cfg.GatewayAddress, "Payment gateway base URL")
	fs.StringVar(&cfg.Environment, "env", cfg.Environment, "Gateway environment (test|live)")
	fs.StringVar(&cfg.StoreName, "store-name", cfg.StoreName, "Store display name")
	fs.StringVar(&cfg.SuccessRedirectURL, "success-url", cfg.SuccessRedirectURL, "Redirect URL after successful payment")
	fs.StringVar(&cfg.FailureRedirectURL, "failure-url", cfg.FailureRedirectURL, "Redirect URL after failed payment")
	fs.StringVar(&cfg.CallbackURL, "callback-url", cfg.CallbackURL, "Notification callback URL registered with the gateway")
	fs.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of concurrent sweep workers")
	fs.StringVar(&sweepIntervalStr, "sweep-interval", sweepIntervalStr, "Interval between pending payment sweeps")
	fs.StringVar(&sweepAfterStr, "sweep-after", sweepAfterStr, "Age before a pending payment is swept")
	fs.IntVar(&cfg.SweepBatch, "sweep-batch", cfg.SweepBatch, "Maximum payments per sweep batch")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.SweepInterval, err = time.ParseDuration(sweepIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid sweep interval: %w", err)
	}

	if cfg.SweepAfter, err = time.ParseDuration(sweepAfterStr); err != nil {
		return nil, fmt.Errorf("invalid sweep age: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}

	if cfg.SweepBatch <= 0 {
		cfg.SweepBatch = defaultSweepBatch
	}

	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = defaultSweepInterval
	}

	if cfg.SweepAfter <= 0 {
		cfg.SweepAfter = defaultSweepAfter
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.GatewayRPS <= 0 {
		cfg.GatewayRPS = defaultGatewayRPS
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.RedisAddress == "" {
		return nil, fmt.Errorf("redis address must be provided")
	}

	if cfg.GatewayAddress == "" {
		return nil, fmt.Errorf("gateway address must be provided")
	}

	if cfg.Environment != EnvironmentTest && cfg.Environment != EnvironmentLive {
		return nil, fmt.Errorf("environment must be %q or %q", EnvironmentTest, EnvironmentLive)
	}

	if cfg.Credentials().SecretKey == "" {
		return nil, fmt.Errorf("secret key for %s environment must be provided", cfg.Environment)
	}

	return cfg, nil
}

// Credentials resolves the credential pair for the active environment. It is
// called on every gateway request; pairs are never cached across requests.
func (c *Config) Credentials() CredentialPair {
	if c.Environment == EnvironmentLive {
		return CredentialPair{SecretKey: c.LiveSecretKey, PublicKey: c.LivePublicKey}
	}
	return CredentialPair{SecretKey: c.TestSecretKey, PublicKey: c.TestPublicKey}
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getFloat(lookup envLookup, key string, def float64) float64 {
	if v, ok := lookup(key); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
