// Package config loads runtime configuration and opens the database.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// ConfigError represents a configuration error.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error: field %q: %s", e.Field, e.Message)
}

// DatabaseConfig holds the Postgres connection settings.
type DatabaseConfig struct {
	Host         string `yaml:"host" validate:"required"`
	Port         string `yaml:"port" validate:"required,numeric"`
	User         string `yaml:"user" validate:"required"`
	Password     string `yaml:"password"`
	Name         string `yaml:"name" validate:"required"`
	SSLMode      string `yaml:"sslmode" validate:"oneof=disable allow prefer require verify-ca verify-full"`
	TimeZone     string `yaml:"timezone"`
	MaxOpenConns int    `yaml:"maxOpenConns" validate:"gte=0"`
}

// DSN renders the settings as a libpq key/value connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode, d.TimeZone,
	)
}

// LogConfig controls the application log sink.
type LogConfig struct {
	File   string `yaml:"file"`
	Level  string `yaml:"level" validate:"oneof=trace debug info warn warning error fatal panic"`
	Format string `yaml:"format" validate:"oneof=text json"`
	Stdout bool   `yaml:"stdout"`
}

// Config holds all runtime configuration.
type Config struct {
	Port     int            `yaml:"port" validate:"gte=1,lte=65535"`
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`

	// JWTSecret enables the write guard when non-empty.
	JWTSecret   string   `yaml:"jwtSecret"`
	CORSOrigins []string `yaml:"corsOrigins"`

	// Operator login. /auth/login is served only when both JWTSecret and
	// AdminPasswordHash are set.
	AdminUser         string        `yaml:"adminUser" validate:"required"`
	AdminPasswordHash string        `yaml:"adminPasswordHash"`
	TokenTTL          time.Duration `yaml:"tokenTTL" validate:"gt=0"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Port: 3333,
		Database: DatabaseConfig{
			Host:         "localhost",
			Port:         "5432",
			User:         "postgres",
			Password:     "password",
			Name:         "transit",
			SSLMode:      "disable",
			TimeZone:     "UTC",
			MaxOpenConns: 20,
		},
		Log: LogConfig{
			File:   "./logs/app.log",
			Level:  "info",
			Format: "text",
			Stdout: true,
		},
		AdminUser: "admin",
		TokenTTL:  12 * time.Hour,
	}
}

// Load builds the configuration from defaults, an optional YAML file named
// by CONFIG_FILE and the environment, in increasing order of precedence.
// A .env file in the working directory is loaded first when present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("no .env file found, relying on environment variables")
	}

	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every field against its constraints.
func (c *Config) Validate() error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	errs := make([]error, 0, len(verrs))
	for _, fe := range verrs {
		errs = append(errs, &ConfigError{
			Field:   fe.Namespace(),
			Message: fmt.Sprintf("failed %q constraint (value %v)", fe.Tag(), fe.Value()),
		})
	}
	return errors.Join(errs...)
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &ConfigError{Field: "CONFIG_FILE", Message: err.Error()}
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return &ConfigError{Field: "CONFIG_FILE", Message: "invalid YAML: " + err.Error()}
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if raw, ok := os.LookupEnv("PORT"); ok {
		port, err := strconv.Atoi(raw)
		if err != nil {
			return &ConfigError{Field: "PORT", Message: "must be a valid integer"}
		}
		cfg.Port = port
	}

	setString(&cfg.Database.Host, "DB_HOST")
	setString(&cfg.Database.Port, "DB_PORT")
	setString(&cfg.Database.User, "DB_USER")
	setString(&cfg.Database.Password, "DB_PASSWORD")
	setString(&cfg.Database.Name, "DB_NAME")
	setString(&cfg.Database.SSLMode, "DB_SSLMODE")
	setString(&cfg.Database.TimeZone, "DB_TIMEZONE")
	if raw, ok := os.LookupEnv("DB_MAX_OPEN_CONNS"); ok {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return &ConfigError{Field: "DB_MAX_OPEN_CONNS", Message: "must be a valid integer"}
		}
		cfg.Database.MaxOpenConns = n
	}

	setString(&cfg.Log.File, "LOG_FILE")
	setString(&cfg.Log.Level, "LOG_LEVEL")
	setString(&cfg.Log.Format, "LOG_FORMAT")
	if raw, ok := os.LookupEnv("LOG_STDOUT"); ok {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return &ConfigError{Field: "LOG_STDOUT", Message: "must be a boolean"}
		}
		cfg.Log.Stdout = b
	}

	setString(&cfg.JWTSecret, "JWT_SECRET")
	setString(&cfg.AdminUser, "ADMIN_USER")
	setString(&cfg.AdminPasswordHash, "ADMIN_PASSWORD_HASH")
	if raw, ok := os.LookupEnv("TOKEN_TTL"); ok {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return &ConfigError{Field: "TOKEN_TTL", Message: "must be a duration such as 12h"}
		}
		cfg.TokenTTL = d
	}
	if raw, ok := os.LookupEnv("CORS_ORIGINS"); ok {
		cfg.CORSOrigins = splitList(raw)
	}
	return nil
}

// setString overwrites *dst with the environment variable key when it is set.
func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = v
	}
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
