// Package config loads the server configuration from a YAML file with
// environment-variable overrides.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Configuration holds all settings for the venture-engine server.
type Configuration struct {
	Server   Server
	Database Database
	SMTP     SMTP
	Scenario Scenario
	Logging  Logging
}

// Server holds the HTTP listener settings.
type Server struct {
	Port            int
	AllowedOrigins  []string
	ShutdownSeconds int
}

// Database holds the submission archive settings.
type Database struct {
	Path string
}

// SMTP holds the statement delivery account. With Enabled false the
// server computes and archives runs but sends no mail.
type SMTP struct {
	Enabled       bool
	Host          string
	Port          int
	Username      string
	Password      string
	From          string
	OperatorEmail string
}

// Scenario selects which parameter set prices the runs.
type Scenario struct {
	// Default names a built-in preset ("classic", "strict").
	Default string
	// File optionally points at a JSON scenario document that is
	// registered alongside the presets.
	File string
}

// Logging holds logger settings. Encoding is "json" or "console".
type Logging struct {
	Level    string
	Encoding string
}

// Load reads the YAML configuration at configPath.
func Load(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yml")
	v.SetEnvPrefix("VENTURE")
	v.AutomaticEnv()

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.shutdownseconds", 30)
	v.SetDefault("database.path", "submissions.db")
	v.SetDefault("smtp.enabled", false)
	v.SetDefault("smtp.port", 465)
	v.SetDefault("scenario.default", "classic")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.encoding", "json")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	if configuration.SMTP.Enabled {
		if configuration.SMTP.Host == "" || configuration.SMTP.From == "" {
			return nil, fmt.Errorf("smtp enabled but host or from is missing")
		}
	}

	return &configuration, nil
}
