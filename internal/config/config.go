package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/invertedv/spending/load"
	"github.com/joho/godotenv"
)

const (
	SourceFile = "file"
	SourceDB   = "db"
)

type Config struct {
	// Input
	Source  string
	File    string
	Dialect string
	Query   string

	// Database credentials, from the environment
	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string

	// Output
	Out        string
	Categories []string
	Labels     []string

	LogLevel string
}

// Load reads an optional .env file and fills the database credentials from the environment.
// envFile "" means ".env" in the working directory; a missing file is not an error.
func Load(envFile string) (*Config, error) {
	if envFile == "" {
		envFile = ".env"
	}

	if _, e := os.Stat(envFile); e == nil {
		if e := godotenv.Load(envFile); e != nil {
			return nil, fmt.Errorf("cannot read %s: %w", envFile, e)
		}
	}

	cfg := &Config{
		Source:     SourceFile,
		DBHost:     getEnv("SPENDING_DB_HOST", ""),
		DBPort:     getEnvInt("SPENDING_DB_PORT", 0),
		DBUser:     getEnv("SPENDING_DB_USER", ""),
		DBPassword: getEnv("SPENDING_DB_PASSWORD", ""),
		DBName:     getEnv("SPENDING_DB_NAME", ""),
		LogLevel:   "info",
	}

	return cfg, nil
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errs []string

	switch c.Source {
	case SourceFile:
		if c.File == "" {
			errs = append(errs, "no input file: use --file")
		} else if _, e := os.Stat(c.File); e != nil {
			errs = append(errs, fmt.Sprintf("input file '%s' not readable: %v", c.File, e))
		}
	case SourceDB:
		if !slices.Contains([]string{"clickhouse", "postgres"}, c.Dialect) {
			errs = append(errs, fmt.Sprintf("invalid dialect '%s': must be one of [clickhouse postgres]", c.Dialect))
		}

		if c.Query == "" {
			errs = append(errs, "no query: use --query with --source db")
		}

		if c.DBHost == "" {
			errs = append(errs, "SPENDING_DB_HOST must be set with --source db")
		}
	default:
		errs = append(errs, fmt.Sprintf("invalid source '%s': must be one of [file db]", c.Source))
	}

	if c.DBPort < 0 || c.DBPort > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", c.DBPort))
	}

	if c.Out != "" {
		if dir := filepath.Dir(c.Out); dir != "." {
			if _, e := os.Stat(dir); e != nil {
				errs = append(errs, fmt.Sprintf("output directory '%s' does not exist", dir))
			}
		}
	}

	if len(c.Labels) > 0 && len(c.Labels) != len(c.Categories) {
		errs = append(errs, fmt.Sprintf("%d labels for %d categories", len(c.Labels), len(c.Categories)))
	}

	if _, e := c.Level(); e != nil {
		errs = append(errs, e.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}

	return nil
}

// Level is the slog level named by LogLevel
func (c *Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if e := lvl.UnmarshalText([]byte(c.LogLevel)); e != nil {
		return 0, fmt.Errorf("invalid log level '%s'", c.LogLevel)
	}

	return lvl, nil
}

// Connect describes the database connection the configuration asks for
func (c *Config) Connect() load.ConnectOptions {
	return load.ConnectOptions{
		Dialect:  c.Dialect,
		Host:     c.DBHost,
		Port:     c.DBPort,
		User:     c.DBUser,
		Password: c.DBPassword,
		Database: c.DBName,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}
