package config

import (
	"strings"
	"time"

	"github.com/heartmarshall/campus-jobs/internal/domain"
)

// Config is the root application configuration.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Database      DatabaseConfig      `yaml:"database"`
	Auth          AuthConfig          `yaml:"auth"`
	Log           LogConfig           `yaml:"log"`
	CORS          CORSConfig          `yaml:"cors"`
	Audit         AuditConfig         `yaml:"audit"`
	Realtime      RealtimeConfig      `yaml:"realtime"`
	Aggregates    AggregatesConfig    `yaml:"aggregates"`
	Notifications NotificationsConfig `yaml:"notifications"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
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
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	AutoMigrate     bool          `yaml:"auto_migrate"       env:"DATABASE_AUTO_MIGRATE"       env-default:"false"`
}

// AuthConfig holds access token validation settings. Tokens are issued elsewhere.
type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret" env:"AUTH_JWT_SECRET" env-required:"true"`
	JWTIssuer string `yaml:"jwt_issuer" env:"AUTH_JWT_ISSUER" env-default:"campus-jobs"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// AuditConfig holds the audit failure policy.
type AuditConfig struct {
	Policy string `yaml:"policy" env:"AUDIT_POLICY" env-default:"strict"`
}

// AuditPolicy returns the policy as a domain value.
func (c AuditConfig) AuditPolicy() domain.AuditPolicy {
	return domain.AuditPolicy(strings.ToLower(strings.TrimSpace(c.Policy)))
}

// RealtimeConfig holds per-session delivery settings.
type RealtimeConfig struct {
	QueueSize            int           `yaml:"queue_size"              env:"REALTIME_QUEUE_SIZE"              env-default:"256"`
	OverflowPolicy       string        `yaml:"overflow_policy"         env:"REALTIME_OVERFLOW_POLICY"         env-default:"drop_oldest"`
	DeliveryTimeout      time.Duration `yaml:"delivery_timeout"        env:"REALTIME_DELIVERY_TIMEOUT"        env-default:"10s"`
	StallTimeout         time.Duration `yaml:"stall_timeout"           env:"REALTIME_STALL_TIMEOUT"           env-default:"30s"`
	PingInterval         time.Duration `yaml:"ping_interval"           env:"REALTIME_PING_INTERVAL"           env-default:"54s"`
	PongTimeout          time.Duration `yaml:"pong_timeout"            env:"REALTIME_PONG_TIMEOUT"            env-default:"90s"`
	MaxMessageSize       int64         `yaml:"max_message_size"        env:"REALTIME_MAX_MESSAGE_SIZE"        env-default:"4096"`
	ConnectRatePerMinute int           `yaml:"connect_rate_per_minute" env:"REALTIME_CONNECT_RATE_PER_MINUTE" env-default:"60"`
}

// Overflow returns the overflow policy as a domain value.
func (c RealtimeConfig) Overflow() domain.OverflowPolicy {
	return domain.OverflowPolicy(strings.ToLower(strings.TrimSpace(c.OverflowPolicy)))
}

// AggregatesConfig holds materializer scheduling settings.
type AggregatesConfig struct {
	RefreshSchedule string        `yaml:"refresh_schedule" env:"AGGREGATES_REFRESH_SCHEDULE" env-default:"*/15 * * * *"`
	RefreshTimeout  time.Duration `yaml:"refresh_timeout"  env:"AGGREGATES_REFRESH_TIMEOUT"  env-default:"2m"`
	RefreshOnStart  bool          `yaml:"refresh_on_start" env:"AGGREGATES_REFRESH_ON_START" env-default:"false"`
}

// NotificationsConfig holds notification store settings.
type NotificationsConfig struct {
	RetentionDays int `yaml:"retention_days" env:"NOTIFICATIONS_RETENTION_DAYS" env-default:"90"`
	MaxPageSize   int `yaml:"max_page_size"  env:"NOTIFICATIONS_MAX_PAGE_SIZE"  env-default:"100"`
}

// Retention returns the retention window as a duration.
func (c NotificationsConfig) Retention() time.Duration {
	return time.Duration(c.RetentionDays) * 24 * time.Hour
}
