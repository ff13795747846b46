// Package config defines the server configuration and loads it from an
// optional YAML file plus MONEEE_* environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Configuration holds all configuration for the server.
type Configuration struct {
	Server   ServerConfig
	Database DatabaseConfig
	Logging  LoggingConfig
}

// ServerConfig holds the HTTP listener parameters.
type ServerConfig struct {
	Port           int
	AllowedOrigins []string
}

// DatabaseConfig points at the SQLite file. ":memory:" works for
// throwaway instances.
type DatabaseConfig struct {
	Path string
}

// LoggingConfig selects the zap level and encoder.
type LoggingConfig struct {
	Level  string
	Format string
}

// LoadConfiguration loads configuration from the given file path. An
// empty path skips the file and uses defaults and environment variables
// only. Environment variables use the MONEEE_ prefix with underscores,
// e.g. MONEEE_SERVER_PORT, MONEEE_DATABASE_PATH.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.allowedorigins", []string{"http://localhost:3000", "http://localhost:8080"})
	v.SetDefault("database.path", "moneee.db")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetEnvPrefix("moneee")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file, %s", err)
		}
	}

	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}
