package config

import (
	"strings"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
	Notify    NotifyConfig    `yaml:"notify"`
	Documents DocumentsConfig `yaml:"documents"`
	Suppliers SuppliersConfig `yaml:"suppliers"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type,X-Request-Id"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	RateLimit       int           `yaml:"rate_limit"       env:"SERVER_RATE_LIMIT"       env-default:"600"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	ApplicationName string        `yaml:"application_name"   env:"DATABASE_APPLICATION_NAME"   env-default:"replenish"`
	LockTimeout     time.Duration `yaml:"lock_timeout"       env:"DATABASE_LOCK_TIMEOUT"       env-default:"5s"`
}

// AuthConfig holds identity token settings.
type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret" env:"AUTH_JWT_SECRET" env-required:"true"`
	JWTIssuer string        `yaml:"jwt_issuer" env:"AUTH_JWT_ISSUER" env-default:"replenish"`
	TokenTTL  time.Duration `yaml:"token_ttl"  env:"AUTH_TOKEN_TTL"  env-default:"8h"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// Notification drivers.
const (
	DriverInbox = "inbox"
	DriverNATS  = "nats"
	DriverKafka = "kafka"
)

// NotifyConfig selects and configures notification dispatchers. The inbox
// driver writes in-app notifications; nats and kafka publish events.
type NotifyConfig struct {
	DriversRaw      string `yaml:"drivers"       env:"NOTIFY_DRIVERS"       env-default:"inbox"`
	Concurrency     int    `yaml:"concurrency"   env:"NOTIFY_CONCURRENCY"   env-default:"8"`
	NATSURL         string `yaml:"nats_url"      env:"NOTIFY_NATS_URL"      env-default:"nats://localhost:4222"`
	NATSPrefix      string `yaml:"nats_prefix"   env:"NOTIFY_NATS_PREFIX"   env-default:"notifications"`
	KafkaBrokersRaw string `yaml:"kafka_brokers" env:"NOTIFY_KAFKA_BROKERS" env-default:"localhost:9092"`
	KafkaTopic      string `yaml:"kafka_topic"   env:"NOTIFY_KAFKA_TOPIC"   env-default:"replenish.notifications"`
	KafkaRetries    int    `yaml:"kafka_retries" env:"NOTIFY_KAFKA_RETRIES" env-default:"3"`

	// Drivers is parsed from DriversRaw during validation.
	Drivers []string `yaml:"-" env:"-"`
	// KafkaBrokers is parsed from KafkaBrokersRaw during validation.
	KafkaBrokers []string `yaml:"-" env:"-"`
}

// Enabled reports whether the given driver is configured.
func (n NotifyConfig) Enabled(driver string) bool {
	for _, d := range n.Drivers {
		if d == driver {
			return true
		}
	}
	return false
}

// DocumentsConfig holds the invoice document store settings.
type DocumentsConfig struct {
	Root    string `yaml:"root"     env:"DOCUMENTS_ROOT"     env-default:"./data/documents"`
	MaxSize int64  `yaml:"max_size" env:"DOCUMENTS_MAX_SIZE" env-default:"10485760"`
}

// SuppliersConfig holds supplier scoring settings.
type SuppliersConfig struct {
	ScoreWindow time.Duration `yaml:"score_window" env:"SUPPLIERS_SCORE_WINDOW" env-default:"8760h"`
}

// splitList splits a comma-separated list, dropping blanks.
func splitList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
