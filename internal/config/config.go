package config

import (
	"errors"
	"fmt"
	"net"
	"net/netip"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// ErrInvalidConfig возвращается, когда значения конфигурации недопустимы
var ErrInvalidConfig = errors.New("config: invalid value")

// Config конфигурация сервиса (config.toml)
type Config struct {
	Server    ServerConfig        `toml:"server"`
	Database  DatabaseConfig      `toml:"database"`
	Logs      LogsConfig          `toml:"logs"`
	Metrics   MetricsConfig       `toml:"metrics"`
	Auth      AuthConfig          `toml:"auth"`
	RateLimit RateLimitConfig     `toml:"rate_limit"`
	Booking   BookingConfig       `toml:"booking"`
	CORS      CORSConfig          `toml:"cors"`
	Roles     map[string][]string `toml:"roles"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
	AutoMigrate     bool   `toml:"auto_migrate"`
	MigrationsPath  string `toml:"migrations_path"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// URL строка подключения в формате URL (нужна golang-migrate).
// Логин и пароль экранируются
func (d DatabaseConfig) URL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     net.JoinHostPort(d.Host, strconv.Itoa(d.Port)),
		Path:     "/" + d.DBName,
		RawQuery: url.Values{"sslmode": {d.SSLMode}}.Encode(),
	}
	return u.String()
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type AuthConfig struct {
	JWTSecret string `toml:"jwt_secret"`
	Issuer    string `toml:"issuer"`
}

type RateLimitConfig struct {
	Enabled bool    `toml:"enabled"`
	RPS     float64 `toml:"rps"`
	Burst   int     `toml:"burst"`
	// Адреса или подсети прокси, которым доверяем X-Forwarded-For
	TrustedProxies []string `toml:"trusted_proxies"`
}

// TrustedPrefixes разбирает trusted_proxies. Одиночный адрес становится подсетью из одного адреса
func (r RateLimitConfig) TrustedPrefixes() ([]netip.Prefix, error) {
	prefixes := make([]netip.Prefix, 0, len(r.TrustedProxies))
	for _, raw := range r.TrustedProxies {
		raw = strings.TrimSpace(raw)
		if strings.Contains(raw, "/") {
			prefix, err := netip.ParsePrefix(raw)
			if err != nil {
				return nil, fmt.Errorf("%w: rate_limit.trusted_proxies: %v", ErrInvalidConfig, err)
			}
			prefixes = append(prefixes, prefix.Masked())
			continue
		}
		addr, err := netip.ParseAddr(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: rate_limit.trusted_proxies: %v", ErrInvalidConfig, err)
		}
		addr = addr.Unmap()
		prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return prefixes, nil
}

type BookingConfig struct {
	DefaultMaxBookings    int `toml:"default_max_bookings"`
	RetentionHours        int `toml:"retention_hours"`
	ReaperIntervalSeconds int `toml:"reaper_interval_seconds"`
}

// Retention сколько слоты и бронирования хранятся после своей даты
func (b BookingConfig) Retention() time.Duration {
	return time.Duration(b.RetentionHours) * time.Hour
}

// ReaperInterval период запуска очистки просроченных записей
func (b BookingConfig) ReaperInterval() time.Duration {
	return time.Duration(b.ReaperIntervalSeconds) * time.Second
}

type CORSConfig struct {
	AllowedOrigins []string `toml:"allowed_origins"`
}

// Load читает конфигурацию из TOML-файла.
// Секреты можно переопределить переменными окружения (в т.ч. из .env): DB_PASSWORD, JWT_SECRET
func Load(path string) (*Config, error) {
	// .env необязателен
	_ = godotenv.Load()

	cfg := defaults()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет обязательные поля и диапазоны значений
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port=%d", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("%w: database.host and database.dbname are required", ErrInvalidConfig)
	}
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		return fmt.Errorf("%w: auth.jwt_secret is required", ErrInvalidConfig)
	}
	if c.Booking.DefaultMaxBookings <= 0 {
		return fmt.Errorf("%w: booking.default_max_bookings must be positive", ErrInvalidConfig)
	}
	if c.Booking.RetentionHours < 0 {
		return fmt.Errorf("%w: booking.retention_hours must not be negative", ErrInvalidConfig)
	}
	if c.Booking.ReaperIntervalSeconds <= 0 {
		return fmt.Errorf("%w: booking.reaper_interval_seconds must be positive", ErrInvalidConfig)
	}
	if c.RateLimit.Enabled && (c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("%w: rate_limit.rps and rate_limit.burst must be positive", ErrInvalidConfig)
	}
	if _, err := c.RateLimit.TrustedPrefixes(); err != nil {
		return err
	}
	return nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Database: DatabaseConfig{
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
			MigrationsPath:  "migrations",
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "arena_slots",
		},
		Auth: AuthConfig{
			Issuer: "arena-slots",
		},
		RateLimit: RateLimitConfig{
			RPS:   10,
			Burst: 20,
		},
		Booking: BookingConfig{
			DefaultMaxBookings:    5,
			RetentionHours:        24,
			ReaperIntervalSeconds: 300,
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"*"},
		},
	}
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.Auth.JWTSecret = v
	}
}
