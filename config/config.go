package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const cfgName = "application"

// ErrInvalidConfig is returned when a required setting is missing or out of range.
var ErrInvalidConfig = errors.New("invalid configuration")

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Name     string `mapstructure:"database"`
	User     string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	SSLMode  string `mapstructure:"sslmode"`
	LogSQL   bool   `mapstructure:"log_sql"`
}

type SeedConfig struct {
	RandomSeed uint64 `mapstructure:"random_seed"`
}

type ReportConfig struct {
	OutputDir       string `mapstructure:"output_dir"`
	HistogramBins   int    `mapstructure:"histogram_bins"`
	BestsellerLimit int    `mapstructure:"bestseller_limit"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Seed     SeedConfig     `mapstructure:"seed"`
	Report   ReportConfig   `mapstructure:"report"`
	Server   ServerConfig   `mapstructure:"server"`
	LogLevel string         `mapstructure:"log_level"`
}

// envBindings maps configuration keys to the environment variables that override them.
var envBindings = map[string]string{
	"database.host":           "DB_HOST",
	"database.port":           "DB_PORT",
	"database.database":       "DB_DATABASE",
	"database.username":       "DB_USERNAME",
	"database.password":       "DB_PASSWORD",
	"database.sslmode":        "DB_SSLMODE",
	"database.log_sql":        "DB_LOG_SQL",
	"seed.random_seed":        "SEED_RANDOM_SEED",
	"report.output_dir":       "REPORT_OUTPUT_DIR",
	"report.histogram_bins":   "REPORT_HISTOGRAM_BINS",
	"report.bestseller_limit": "REPORT_BESTSELLER_LIMIT",
	"server.addr":             "SERVER_ADDR",
	"log_level":               "LOG_LEVEL",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.log_sql", false)
	v.SetDefault("seed.random_seed", 42)
	v.SetDefault("report.output_dir", "charts")
	v.SetDefault("report.histogram_bins", 10)
	v.SetDefault("report.bestseller_limit", 5)
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("log_level", "info")
}

// Load reads the configuration.
//
// Sources, lowest precedence first:
//  1. built-in defaults
//  2. the YAML file at path, or application.yml in '.' and './config' when path is empty
//  3. a .env file in the working directory
//  4. process environment variables
//
// A missing application.yml is not an error; a missing explicit path is.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v)
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
	} else {
		v.SetConfigName(cfgName)
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read %s: %w", cfgName, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports the first missing or out of range setting.
func (c *Config) Validate() error {
	switch {
	case c.Database.Host == "":
		return fmt.Errorf("%w: database host is required (DB_HOST)", ErrInvalidConfig)
	case c.Database.Name == "":
		return fmt.Errorf("%w: database name is required (DB_DATABASE)", ErrInvalidConfig)
	case c.Database.User == "":
		return fmt.Errorf("%w: database user is required (DB_USERNAME)", ErrInvalidConfig)
	case c.Database.Port <= 0:
		return fmt.Errorf("%w: database port must be positive", ErrInvalidConfig)
	case c.Report.HistogramBins <= 0:
		return fmt.Errorf("%w: histogram bins must be positive", ErrInvalidConfig)
	case c.Report.BestsellerLimit <= 0:
		return fmt.Errorf("%w: bestseller limit must be positive", ErrInvalidConfig)
	}
	return nil
}

// DSN builds a postgres:// connection URL for the configured database.
func (d DatabaseConfig) DSN() string {
	return d.dsn(d.Name, url.UserPassword(d.User, d.Password))
}

// MaintenanceDSN points at the built-in "postgres" database of the same server.
func (d DatabaseConfig) MaintenanceDSN() string {
	return d.dsn("postgres", url.UserPassword(d.User, d.Password))
}

// Redacted is the DSN with the password masked, safe for logs.
func (d DatabaseConfig) Redacted() string {
	return fmt.Sprintf("postgres://%s:***@%s:%d/%s", d.User, d.Host, d.Port, d.Name)
}

func (d DatabaseConfig) dsn(database string, user *url.Userinfo) string {
	sslMode := d.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     user,
		Host:     fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:     "/" + database,
		RawQuery: "sslmode=" + url.QueryEscape(sslMode),
	}
	return u.String()
}

// Level normalizes LogLevel for logging.New.
func (c *Config) Level() string {
	return strings.ToLower(strings.TrimSpace(c.LogLevel))
}
