package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures process-level configuration. Values come from the
// environment so main stays lean.
type Config struct {
	Addr        string
	MetricsAddr string

	Postgres PostgresConfig
	Redis    RedisConfig
	Kafka    KafkaConfig

	// JWTSigningKey verifies tokens issued by the identity provider. This
	// service never issues credentials itself.
	JWTSigningKey string

	// RegionCatalogPath points at the region reference file; empty means
	// the embedded catalog.
	RegionCatalogPath string

	// BootstrapAdminEmail seeds the first active admin entry when the
	// whitelist is empty. Ignored once any entry exists.
	BootstrapAdminEmail string
	BootstrapAdminName  string
}

// PostgresConfig holds relational store settings.
type PostgresConfig struct {
	DSN          string
	MaxOpenConns int
	MaxIdleConns int
}

// RedisConfig holds scorecard cache settings. An empty URL disables the
// cache; scorecards are then recomputed on every read.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	ScorecardTTL time.Duration
}

// KafkaConfig holds audit relay settings. Empty brokers disable the relay;
// audit events then stay in the outbox.
type KafkaConfig struct {
	Brokers    []string
	AuditTopic string
}

// FromEnv builds a Config from environment variables.
func FromEnv() Config {
	return Config{
		Addr:        envOr("INKLUSI_ADDR", ":8080"),
		MetricsAddr: envOr("INKLUSI_METRICS_ADDR", ":9090"),
		Postgres: PostgresConfig{
			DSN:          os.Getenv("INKLUSI_POSTGRES_DSN"),
			MaxOpenConns: envInt("INKLUSI_POSTGRES_MAX_OPEN", 16),
			MaxIdleConns: envInt("INKLUSI_POSTGRES_MAX_IDLE", 4),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("INKLUSI_REDIS_URL"),
			PoolSize:     envInt("INKLUSI_REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("INKLUSI_REDIS_MIN_IDLE", 2),
			DialTimeout:  envDuration("INKLUSI_REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("INKLUSI_REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("INKLUSI_REDIS_WRITE_TIMEOUT", 3*time.Second),
			ScorecardTTL: envDuration("INKLUSI_SCORECARD_TTL", 10*time.Minute),
		},
		Kafka: KafkaConfig{
			Brokers:    splitNonEmpty(os.Getenv("INKLUSI_KAFKA_BROKERS")),
			AuditTopic: envOr("INKLUSI_AUDIT_TOPIC", "inklusi.audit"),
		},
		JWTSigningKey:     envOr("INKLUSI_JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		RegionCatalogPath: os.Getenv("INKLUSI_REGION_CATALOG"),

		BootstrapAdminEmail: os.Getenv("INKLUSI_BOOTSTRAP_ADMIN_EMAIL"),
		BootstrapAdminName:  envOr("INKLUSI_BOOTSTRAP_ADMIN_NAME", "Platform Administrator"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func splitNonEmpty(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
