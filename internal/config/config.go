package config

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"golang.org/x/crypto/bcrypt"
)

// DefaultHorizonYears is how far ahead a reservation may start when
// booking.horizon_years is unset.
const DefaultHorizonYears = 2

// DefaultMetricsPath is where prometheus metrics are served when
// metrics.path is unset.
const DefaultMetricsPath = "/metrics"

// Config is the top-level application configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Log      LogConfig      `koanf:"log"`
	Auth     AuthConfig     `koanf:"auth"`
	Booking  BookingConfig  `koanf:"booking"`
	Metrics  MetricsConfig  `koanf:"metrics"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host       string     `koanf:"host"`
	Port       int        `koanf:"port"`
	Mode       string     `koanf:"mode"`
	CSRFSecret string     `koanf:"csrf_secret"`
	Timeout    string     `koanf:"timeout"`
	CORS       CORSConfig `koanf:"cors"`
}

// CORSConfig holds CORS middleware settings.
type CORSConfig struct {
	AllowOrigins     []string `koanf:"allow_origins"`
	AllowMethods     []string `koanf:"allow_methods"`
	AllowHeaders     []string `koanf:"allow_headers"`
	AllowCredentials bool     `koanf:"allow_credentials"`
	MaxAge           string   `koanf:"max_age"`
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	Driver string `koanf:"driver"`
	// AutoMigrate creates or updates the schema at startup. Debug mode
	// always migrates.
	AutoMigrate bool           `koanf:"auto_migrate"`
	SQLite      SQLiteConfig   `koanf:"sqlite"`
	Postgres    PostgresConfig `koanf:"postgres"`
	Pool        PoolConfig     `koanf:"pool"`
}

// SQLiteConfig holds SQLite-specific settings.
type SQLiteConfig struct {
	Path string `koanf:"path"`
}

// PostgresConfig holds PostgreSQL-specific settings.
type PostgresConfig struct {
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`
	DBName   string `koanf:"dbname"`
	SSLMode  string `koanf:"sslmode"`
}

// PoolConfig holds database connection pool settings.
type PoolConfig struct {
	MaxIdleConns    int    `koanf:"max_idle_conns"`
	MaxOpenConns    int    `koanf:"max_open_conns"`
	ConnMaxLifetime string `koanf:"conn_max_lifetime"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level           string `koanf:"level"`
	Format          string `koanf:"format"`
	Color           *bool  `koanf:"color"`
	FilePath        string `koanf:"file_path"`
	MaxSizeMB       int    `koanf:"max_size_mb"`
	RetentionDays   int    `koanf:"retention_days"`
	MaxBackups      int    `koanf:"max_backups"`
	CompressRotated *bool  `koanf:"compress_rotated"`
}

// AuthConfig holds the bearer-token guard settings. The administrator is the
// only account; its password is stored as a bcrypt hash.
type AuthConfig struct {
	Enabled           bool   `koanf:"enabled"`
	JWTSecret         string `koanf:"jwt_secret"`
	TokenExpiry       string `koanf:"token_expiry"`
	AdminUsername     string `koanf:"admin_username"`
	AdminPasswordHash string `koanf:"admin_password_hash"`
}

// BookingConfig holds reservation policy settings.
type BookingConfig struct {
	HorizonYears int `koanf:"horizon_years"`
}

// MetricsConfig holds prometheus exposition settings.
type MetricsConfig struct {
	Enabled bool   `koanf:"enabled"`
	Path    string `koanf:"path"`
}

// TokenTTL returns the parsed token expiry. It assumes Validate has run.
func (a AuthConfig) TokenTTL() time.Duration {
	d, _ := time.ParseDuration(a.TokenExpiry)
	return d
}

const envPrefix = "APP__"

// Load reads the YAML file at configPath, overlays APP__ environment
// variables and validates the result. A double underscore separates levels
// and a single one stays in the key, so APP__AUTH__ADMIN_PASSWORD_HASH sets
// auth.admin_password_hash.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
	}
	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envKey turns APP__BOOKING__HORIZON_YEARS into booking.horizon_years.
func envKey(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(name, envPrefix)), "__", ".")
}

// Validate normalizes c in place, fills defaults and reports the first
// invalid setting.
func (c *Config) Validate() error {
	steps := []func() error{
		c.validateServer,
		c.validateDatabase,
		c.validateAuth,
		c.validateBooking,
		c.validateMetrics,
		c.validateLog,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validateServer() error {
	var err error
	if c.Server.Mode, err = oneOf("server.mode", c.Server.Mode, gin.DebugMode, gin.ReleaseMode, gin.TestMode); err != nil {
		return err
	}
	if err := checkPort("server.port", c.Server.Port); err != nil {
		return err
	}
	if c.Server.Host, err = required("server.host", c.Server.Host, ""); err != nil {
		return err
	}

	c.Server.Timeout = strings.TrimSpace(c.Server.Timeout)
	c.Server.CORS.MaxAge = strings.TrimSpace(c.Server.CORS.MaxAge)
	if err := checkOptionalDuration("server.timeout", c.Server.Timeout); err != nil {
		return err
	}
	return checkOptionalDuration("server.cors.max_age", c.Server.CORS.MaxAge)
}

func (c *Config) validateDatabase() error {
	db := &c.Database
	var err error
	switch db.Driver {
	case "sqlite":
		db.SQLite.Path, err = required("database.sqlite.path", db.SQLite.Path, "driver is sqlite")
	case "postgres":
		err = c.validatePostgres()
	default:
		_, err = oneOf("database.driver", db.Driver, "sqlite", "postgres")
	}
	if err != nil {
		return err
	}

	db.Pool.ConnMaxLifetime = strings.TrimSpace(db.Pool.ConnMaxLifetime)
	return checkOptionalDuration("database.pool.conn_max_lifetime", db.Pool.ConnMaxLifetime)
}

var (
	sslModes       = []string{"disable", "allow", "prefer", "require", "verify-ca", "verify-full"}
	secureSSLModes = []string{"require", "verify-ca", "verify-full"}
)

func (c *Config) validatePostgres() error {
	pg := &c.Database.Postgres
	const when = "driver is postgres"
	var err error

	if pg.Host, err = required("database.postgres.host", pg.Host, when); err != nil {
		return err
	}
	if err := checkPort("database.postgres.port", pg.Port); err != nil {
		return err
	}
	if pg.User, err = required("database.postgres.user", pg.User, when); err != nil {
		return err
	}
	if pg.DBName, err = required("database.postgres.dbname", pg.DBName, when); err != nil {
		return err
	}
	if pg.SSLMode, err = oneOf("database.postgres.sslmode", pg.SSLMode, sslModes...); err != nil {
		return err
	}
	if c.Server.Mode == gin.ReleaseMode && !slices.Contains(secureSSLModes, pg.SSLMode) {
		return fmt.Errorf("invalid database.postgres.sslmode %q for server.mode %q: must be one of %s",
			pg.SSLMode, gin.ReleaseMode, quoteAll(secureSSLModes))
	}
	return nil
}

func (c *Config) validateAuth() error {
	a := &c.Auth
	if !a.Enabled {
		return nil
	}
	const when = "auth is enabled"
	var err error

	if a.JWTSecret, err = required("auth.jwt_secret", a.JWTSecret, when); err != nil {
		return err
	}
	if len(a.JWTSecret) < 32 {
		return fmt.Errorf("invalid auth.jwt_secret: must be at least 32 characters")
	}
	if c.Server.Mode == gin.ReleaseMode && CountSecretClasses(a.JWTSecret) < 3 {
		return fmt.Errorf("auth.jwt_secret must include at least 3 character classes (lowercase, uppercase, digit, symbol) in release mode")
	}

	if a.TokenExpiry, err = required("auth.token_expiry", a.TokenExpiry, when); err != nil {
		return err
	}
	if err := checkOptionalDuration("auth.token_expiry", a.TokenExpiry); err != nil {
		return err
	}

	if a.AdminUsername, err = required("auth.admin_username", a.AdminUsername, when); err != nil {
		return err
	}
	if a.AdminPasswordHash, err = required("auth.admin_password_hash", a.AdminPasswordHash, when); err != nil {
		return err
	}
	if _, err := bcrypt.Cost([]byte(a.AdminPasswordHash)); err != nil {
		return fmt.Errorf("invalid auth.admin_password_hash: must be a bcrypt hash: %w", err)
	}
	return nil
}

// validateBooking treats a zero horizon as unset.
func (c *Config) validateBooking() error {
	switch {
	case c.Booking.HorizonYears < 0:
		return fmt.Errorf("invalid booking.horizon_years %d: must not be negative", c.Booking.HorizonYears)
	case c.Booking.HorizonYears == 0:
		c.Booking.HorizonYears = DefaultHorizonYears
	}
	return nil
}

func (c *Config) validateMetrics() error {
	c.Metrics.Path = strings.TrimSpace(c.Metrics.Path)
	if c.Metrics.Path == "" {
		c.Metrics.Path = DefaultMetricsPath
	}
	if !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("invalid metrics.path %q: must start with '/'", c.Metrics.Path)
	}
	return nil
}

func (c *Config) validateLog() error {
	var err error
	if c.Log.Level, err = oneOf("log.level", strings.ToLower(c.Log.Level), "debug", "info", "warn", "error"); err != nil {
		return err
	}
	c.Log.Format, err = oneOf("log.format", strings.ToLower(c.Log.Format), "text", "json")
	return err
}

// required trims value and rejects it when blank. when, if set, names the
// condition that makes the setting mandatory.
func required(name, value, when string) (string, error) {
	value = strings.TrimSpace(value)
	if value != "" {
		return value, nil
	}
	if when == "" {
		return "", fmt.Errorf("%s is required", name)
	}
	return "", fmt.Errorf("%s is required when %s", name, when)
}

// oneOf trims value and checks it against allowed.
func oneOf(name, value string, allowed ...string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if slices.Contains(allowed, trimmed) {
		return trimmed, nil
	}
	return "", fmt.Errorf("invalid %s %q: must be one of %s", name, value, quoteAll(allowed))
}

func quoteAll(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = strconv.Quote(v)
	}
	return strings.Join(quoted, ", ")
}

func checkPort(name string, port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("invalid %s %d: must be between 1 and 65535", name, port)
	}
	return nil
}

// checkOptionalDuration accepts an empty value or a positive Go duration.
func checkOptionalDuration(name, value string) error {
	if value == "" {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", name, value, err)
	}
	if d <= 0 {
		return fmt.Errorf("invalid %s %q: must be greater than 0", name, value)
	}
	return nil
}

// CountSecretClasses reports how many of lowercase, uppercase, digit and
// symbol occur in secret.
func CountSecretClasses(secret string) int {
	var seen [4]bool
	for _, r := range secret {
		switch {
		case unicode.IsLower(r):
			seen[0] = true
		case unicode.IsUpper(r):
			seen[1] = true
		case unicode.IsDigit(r):
			seen[2] = true
		default:
			seen[3] = true
		}
	}
	n := 0
	for _, ok := range seen {
		if ok {
			n++
		}
	}
	return n
}
