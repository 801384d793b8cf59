package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress  string
	DatabaseURI string
	JWTSecret   string
	TokenTTL    time.Duration
	LogLevel    string

	MidtransServerKey    string
	MidtransIsProduction bool
	MidtransSnapURL      string
	MidtransAPIURL       string
	GatewayTimeout       time.Duration

	ReconcileInterval time.Duration
	ReconcileAfter    time.Duration
	ReconcileBatch    int
	WorkerPoolSize    int
	ShutdownTimeout   time.Duration

	RedisAddr        string
	RedisDB          int
	CreateRateLimit  int
	CreateRateWindow time.Duration
}

const (
	defaultRunAddress        = ":8080"
	defaultJWTSecret         = "change-me-in-production"
	defaultTokenTTL          = 24 * time.Hour
	defaultGatewayTimeout    = 10 * time.Second
	defaultReconcileInterval = time.Minute
	defaultReconcileAfter    = 15 * time.Minute
	defaultReconcileBatch    = 32
	defaultWorkerPoolSize    = 4
	defaultShutdownTimeout   = 10 * time.Second
	defaultCreateRateLimit   = 5
	defaultCreateRateWindow  = time.Minute
	defaultEnvFile           = ".env"
	defaultLogLevel          = "info"

	sandboxSnapURL    = "https://app.sandbox.midtrans.com"
	sandboxAPIURL     = "https://api.sandbox.midtrans.com"
	productionSnapURL = "https://app.midtrans.com"
	productionAPIURL  = "https://api.midtrans.com"
)

// Load parses configuration from flags, environment variables and an optional .env file.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	lookup, err := withEnvFile(lookup)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		RunAddress:           getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:          getString(lookup, "DATABASE_URI", ""),
		JWTSecret:            getString(lookup, "JWT_SECRET", defaultJWTSecret),
		TokenTTL:             getDuration(lookup, "TOKEN_TTL", defaultTokenTTL),
		LogLevel:             getString(lookup, "LOG_LEVEL", defaultLogLevel),
		MidtransServerKey:    getString(lookup, "MIDTRANS_SERVER_KEY", ""),
		MidtransIsProduction: getBool(lookup, "MIDTRANS_IS_PRODUCTION", false),
		MidtransSnapURL:      getString(lookup, "MIDTRANS_SNAP_URL", ""),
		MidtransAPIURL:       getString(lookup, "MIDTRANS_API_URL", ""),
		GatewayTimeout:       getDuration(lookup, "GATEWAY_TIMEOUT", defaultGatewayTimeout),
		ReconcileInterval:    getDuration(lookup, "RECONCILE_INTERVAL", defaultReconcileInterval),
		ReconcileAfter:       getDuration(lookup, "RECONCILE_AFTER", defaultReconcileAfter),
		ReconcileBatch:       getInt(lookup, "RECONCILE_BATCH", defaultReconcileBatch),
		WorkerPoolSize:       getInt(lookup, "WORKER_POOL_SIZE", defaultWorkerPoolSize),
		ShutdownTimeout:      getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		RedisAddr:            getString(lookup, "REDIS_ADDR", ""),
		RedisDB:              getInt(lookup, "REDIS_DB", 0),
		CreateRateLimit:      getInt(lookup, "CREATE_RATE_LIMIT", defaultCreateRateLimit),
		CreateRateWindow:     getDuration(lookup, "CREATE_RATE_WINDOW", defaultCreateRateWindow),
	}

	fs := flag.NewFlagSet("undangan", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		reconcileIntervalStr = cfg.ReconcileInterval.String()
		shutdownTimeoutStr   = cfg.ShutdownTimeout.String()
		gatewayTimeoutStr    = cfg.GatewayTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "Secret for signing auth tokens")
	fs.StringVar(&cfg.MidtransServerKey, "server-key", cfg.MidtransServerKey, "Payment gateway server key")
	fs.BoolVar(&cfg.MidtransIsProduction, "production", cfg.MidtransIsProduction, "Use production gateway endpoints")
	fs.StringVar(&gatewayTimeoutStr, "gateway-timeout", gatewayTimeoutStr, "Timeout for payment gateway calls")
	fs.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of concurrent reconcile workers")
	fs.StringVar(&reconcileIntervalStr, "reconcile-interval", reconcileIntervalStr, "Interval between pending order reconciliations, 0 disables")
	fs.IntVar(&cfg.ReconcileBatch, "reconcile-batch", cfg.ReconcileBatch, "Maximum orders per reconcile batch")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.StringVar(&cfg.RedisAddr, "redis", cfg.RedisAddr, "Redis address for rate limiting")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	if cfg.ReconcileInterval, err = time.ParseDuration(reconcileIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid reconcile interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if cfg.GatewayTimeout, err = time.ParseDuration(gatewayTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid gateway timeout: %w", err)
	}

	if err := readSecretFile(lookup, "JWT_SECRET_FILE", &cfg.JWTSecret); err != nil {
		return nil, err
	}

	if err := readSecretFile(lookup, "MIDTRANS_SERVER_KEY_FILE", &cfg.MidtransServerKey); err != nil {
		return nil, err
	}

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}

	if cfg.ReconcileBatch <= 0 {
		cfg.ReconcileBatch = defaultReconcileBatch
	}

	// Zero interval disables the reconciler.
	if cfg.ReconcileInterval < 0 {
		cfg.ReconcileInterval = 0
	}

	if cfg.ReconcileAfter <= 0 {
		cfg.ReconcileAfter = defaultReconcileAfter
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.GatewayTimeout <= 0 {
		cfg.GatewayTimeout = defaultGatewayTimeout
	}

	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}

	if cfg.CreateRateLimit <= 0 {
		cfg.CreateRateLimit = defaultCreateRateLimit
	}

	if cfg.CreateRateWindow <= 0 {
		cfg.CreateRateWindow = defaultCreateRateWindow
	}

	if cfg.MidtransSnapURL == "" {
		cfg.MidtransSnapURL = sandboxSnapURL
		if cfg.MidtransIsProduction {
			cfg.MidtransSnapURL = productionSnapURL
		}
	}

	if cfg.MidtransAPIURL == "" {
		cfg.MidtransAPIURL = sandboxAPIURL
		if cfg.MidtransIsProduction {
			cfg.MidtransAPIURL = productionAPIURL
		}
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.MidtransServerKey == "" {
		return nil, fmt.Errorf("midtrans server key must be provided")
	}

	return cfg, nil
}

// withEnvFile layers values from ENV_FILE (default .env) under the real environment.
// A missing file is not an error.
func withEnvFile(lookup envLookup) (envLookup, error) {
	path := getString(lookup, "ENV_FILE", defaultEnvFile)
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return lookup, nil
		}
		return nil, fmt.Errorf("read env file %s: %w", path, err)
	}

	return func(key string) (string, bool) {
		if v, ok := lookup(key); ok {
			return v, true
		}
		v, ok := values[key]
		return v, ok
	}, nil
}

func readSecretFile(lookup envLookup, key string, dst *string) error {
	path, ok := lookup(key)
	if !ok || path == "" {
		return nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", strings.ToLower(key), err)
	}
	*dst = strings.TrimSpace(string(content))
	return nil
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

func getBool(lookup envLookup, key string, def bool) bool {
	if v, ok := lookup(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
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
