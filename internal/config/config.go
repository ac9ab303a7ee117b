package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds all runtime configuration derived from environment variables.
type Config struct {
	HTTPPort string
	LogLevel string

	StateFile string

	DebounceWindow     time.Duration
	ValidationCacheTTL time.Duration
	LookupRetries      int
	SessionIdleTTL     time.Duration
	JanitorInterval    time.Duration

	SeedBalance decimal.Decimal

	LookupFailureRate   float64
	TransferFailureRate float64
	LoginFailureRate    float64
	LookupLatency       time.Duration
	TransferLatency     time.Duration
	LoginLatency        time.Duration

	DemoUsername string
	DemoPassword string
	DemoName     string

	JWTSecret   string
	JWTIssuer   string
	JWTAudience string
	JWTTTL      time.Duration

	PublicRateLimitRPS int
	AuthRateLimitRPS   int
}

// Load reads environment variables using viper and returns a typed config.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	bindEnv(v, "port", "PORT", "SECONDBANK_PORT")
	bindEnv(v, "log_level", "LOG_LEVEL", "SECONDBANK_LOG_LEVEL")
	bindEnv(v, "state_file", "STATE_FILE", "SECONDBANK_STATE_FILE")
	bindEnv(v, "debounce_window", "DEBOUNCE_WINDOW", "SECONDBANK_DEBOUNCE_WINDOW")
	bindEnv(v, "validation_cache_ttl", "VALIDATION_CACHE_TTL", "SECONDBANK_VALIDATION_CACHE_TTL")
	bindEnv(v, "lookup_retries", "LOOKUP_RETRIES", "SECONDBANK_LOOKUP_RETRIES")
	bindEnv(v, "session_idle_ttl", "SESSION_IDLE_TTL", "SECONDBANK_SESSION_IDLE_TTL")
	bindEnv(v, "janitor_interval", "JANITOR_INTERVAL", "SECONDBANK_JANITOR_INTERVAL")
	bindEnv(v, "seed_balance", "SEED_BALANCE", "SECONDBANK_SEED_BALANCE")
	bindEnv(v, "lookup_failure_rate", "LOOKUP_FAILURE_RATE", "SECONDBANK_LOOKUP_FAILURE_RATE")
	bindEnv(v, "transfer_failure_rate", "TRANSFER_FAILURE_RATE", "SECONDBANK_TRANSFER_FAILURE_RATE")
	bindEnv(v, "login_failure_rate", "LOGIN_FAILURE_RATE", "SECONDBANK_LOGIN_FAILURE_RATE")
	bindEnv(v, "lookup_latency", "LOOKUP_LATENCY", "SECONDBANK_LOOKUP_LATENCY")
	bindEnv(v, "transfer_latency", "TRANSFER_LATENCY", "SECONDBANK_TRANSFER_LATENCY")
	bindEnv(v, "login_latency", "LOGIN_LATENCY", "SECONDBANK_LOGIN_LATENCY")
	bindEnv(v, "demo_username", "DEMO_USERNAME", "SECONDBANK_DEMO_USERNAME")
	bindEnv(v, "demo_password", "DEMO_PASSWORD", "SECONDBANK_DEMO_PASSWORD")
	bindEnv(v, "demo_name", "DEMO_NAME", "SECONDBANK_DEMO_NAME")
	bindEnv(v, "jwt_secret", "JWT_SECRET", "SECONDBANK_JWT_SECRET")
	bindEnv(v, "jwt_issuer", "JWT_ISSUER", "SECONDBANK_JWT_ISSUER")
	bindEnv(v, "jwt_audience", "JWT_AUDIENCE", "SECONDBANK_JWT_AUDIENCE")
	bindEnv(v, "jwt_ttl", "JWT_TTL", "SECONDBANK_JWT_TTL")
	bindEnv(v, "public_rate_limit_rps", "PUBLIC_RATE_LIMIT_RPS", "SECONDBANK_PUBLIC_RATE_LIMIT_RPS")
	bindEnv(v, "auth_rate_limit_rps", "AUTH_RATE_LIMIT_RPS", "SECONDBANK_AUTH_RATE_LIMIT_RPS")

	v.SetDefault("port", "8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("state_file", "secondbank_state.json")
	v.SetDefault("debounce_window", "600ms")
	v.SetDefault("validation_cache_ttl", "5m")
	v.SetDefault("lookup_retries", 1)
	v.SetDefault("session_idle_ttl", "10m")
	v.SetDefault("janitor_interval", "1m")
	v.SetDefault("seed_balance", "248300.00")
	v.SetDefault("lookup_failure_rate", 0.05)
	v.SetDefault("transfer_failure_rate", 0.07)
	v.SetDefault("login_failure_rate", 0.06)
	v.SetDefault("lookup_latency", "1s")
	v.SetDefault("transfer_latency", "1500ms")
	v.SetDefault("login_latency", "1100ms")
	v.SetDefault("demo_username", "adwoa@secondbank.app")
	v.SetDefault("demo_password", "")
	v.SetDefault("demo_name", "Adwoa Doe")
	v.SetDefault("jwt_secret", "")
	v.SetDefault("jwt_issuer", "secondbank-mobile-api")
	v.SetDefault("jwt_audience", "secondbank-app")
	v.SetDefault("jwt_ttl", "24h")
	v.SetDefault("public_rate_limit_rps", 10)
	v.SetDefault("auth_rate_limit_rps", 100)

	debounce, err := parseDuration(v, "debounce_window")
	if err != nil {
		return nil, err
	}
	cacheTTL, err := parseDuration(v, "validation_cache_ttl")
	if err != nil {
		return nil, err
	}
	idleTTL, err := parseDuration(v, "session_idle_ttl")
	if err != nil {
		return nil, err
	}
	janitorInterval, err := parseDuration(v, "janitor_interval")
	if err != nil {
		return nil, err
	}
	jwtTTL, err := parseDuration(v, "jwt_ttl")
	if err != nil {
		return nil, err
	}
	lookupLatency, err := parseDuration(v, "lookup_latency")
	if err != nil {
		return nil, err
	}
	transferLatency, err := parseDuration(v, "transfer_latency")
	if err != nil {
		return nil, err
	}
	loginLatency, err := parseDuration(v, "login_latency")
	if err != nil {
		return nil, err
	}

	seed, err := decimal.NewFromString(v.GetString("seed_balance"))
	if err != nil {
		return nil, fmt.Errorf("invalid SEED_BALANCE: %w", err)
	}

	cfg := &Config{
		HTTPPort:            v.GetString("port"),
		LogLevel:            v.GetString("log_level"),
		StateFile:           v.GetString("state_file"),
		DebounceWindow:      debounce,
		ValidationCacheTTL:  cacheTTL,
		LookupRetries:       max(v.GetInt("lookup_retries"), 0),
		SessionIdleTTL:      idleTTL,
		JanitorInterval:     janitorInterval,
		SeedBalance:         seed,
		LookupFailureRate:   v.GetFloat64("lookup_failure_rate"),
		TransferFailureRate: v.GetFloat64("transfer_failure_rate"),
		LoginFailureRate:    v.GetFloat64("login_failure_rate"),
		LookupLatency:       lookupLatency,
		TransferLatency:     transferLatency,
		LoginLatency:        loginLatency,
		DemoUsername:        v.GetString("demo_username"),
		DemoPassword:        v.GetString("demo_password"),
		DemoName:            v.GetString("demo_name"),
		JWTSecret:           v.GetString("jwt_secret"),
		JWTIssuer:           v.GetString("jwt_issuer"),
		JWTAudience:         v.GetString("jwt_audience"),
		JWTTTL:              jwtTTL,
		PublicRateLimitRPS:  max(v.GetInt("public_rate_limit_rps"), 1),
		AuthRateLimitRPS:    max(v.GetInt("auth_rate_limit_rps"), 1),
	}

	if strings.TrimSpace(cfg.JWTSecret) == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if len(cfg.JWTSecret) < 32 {
		return nil, fmt.Errorf("JWT_SECRET must be at least 32 characters")
	}
	if strings.TrimSpace(cfg.DemoPassword) == "" {
		return nil, fmt.Errorf("DEMO_PASSWORD is required")
	}
	for name, rate := range map[string]float64{
		"LOOKUP_FAILURE_RATE":   cfg.LookupFailureRate,
		"TRANSFER_FAILURE_RATE": cfg.TransferFailureRate,
		"LOGIN_FAILURE_RATE":    cfg.LoginFailureRate,
	} {
		if rate < 0 || rate > 1 {
			return nil, fmt.Errorf("%s must be between 0 and 1", name)
		}
	}
	if cfg.DebounceWindow <= 0 {
		return nil, fmt.Errorf("DEBOUNCE_WINDOW must be positive")
	}
	if cfg.ValidationCacheTTL <= 0 {
		return nil, fmt.Errorf("VALIDATION_CACHE_TTL must be positive")
	}

	return cfg, nil
}

func parseDuration(v *viper.Viper, key string) (time.Duration, error) {
	d, err := time.ParseDuration(v.GetString(key))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", strings.ToUpper(key), err)
	}
	return d, nil
}

func bindEnv(v *viper.Viper, key string, names ...string) {
	args := append([]string{key}, names...)
	_ = v.BindEnv(args...)
}
