package kdotool

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
)

// ErrConfigValidation is returned when configuration validation fails
var ErrConfigValidation = errors.New("configuration validation failed")

// Config represents the kdotool configuration
type Config struct {
	LogLevel       string         `yaml:"log_level"`
	SessionVersion SessionVersion `yaml:"session_version"`
	DBus           DBusConfig     `yaml:"dbus"`
	Journal        JournalConfig  `yaml:"journal"`
	Script         ScriptConfig   `yaml:"script"`
}

// DBusConfig represents D-Bus call settings for the KWin scripting interface
type DBusConfig struct {
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// JournalConfig represents systemd journal scraping settings
type JournalConfig struct {
	// Units are the systemd user units whose output carries the script log.
	Units []string `yaml:"units"`
	// TransportPrefix is prepended by the journal transport to every
	// script-written line, before the marker.
	TransportPrefix string `yaml:"transport_prefix"`
}

// ScriptConfig represents generated-script handling settings
type ScriptConfig struct {
	// KeepTempFiles leaves the generated script file behind for inspection.
	KeepTempFiles bool `yaml:"keep_temp_files"`
}

// LoadConfig loads configuration from the given path.
// It returns the default configuration when the file does not exist.
func LoadConfig(configPath string) (*Config, error) {
	// Load .env files first
	err := loadEnvFiles()
	if err != nil {
		return nil, fmt.Errorf("failed to load environment files: %w", err)
	}

	// Check if config file exists
	_, err = os.Stat(configPath)
	if os.IsNotExist(err) {
		// Return default configuration if file doesn't exist
		config := getDefaultConfig()
		expandConfigEnvVars(config)

		return config, nil
	}

	// Read config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse YAML with strict mode to detect unknown fields
	var config Config

	err = yaml.UnmarshalWithOptions(data, &config, yaml.Strict())
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Validate the configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	// Apply defaults for missing values
	applyDefaults(&config)

	// Expand environment variables
	expandConfigEnvVars(&config)

	return &config, nil
}

// validateConfig validates the configuration for common errors and inconsistencies
func validateConfig(config *Config) error {
	// Validate log level
	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if config.LogLevel != "" && !validLevels[config.LogLevel] {
		return fmt.Errorf("%w: invalid log_level '%s': must be one of trace, debug, info, warn, error", ErrConfigValidation, config.LogLevel)
	}

	// Validate session version
	validVersions := map[SessionVersion]bool{
		SessionAuto: true,
		SessionKDE5: true,
		SessionKDE6: true,
	}
	if config.SessionVersion != "" && !validVersions[config.SessionVersion] {
		return fmt.Errorf("%w: invalid session_version '%s': must be one of auto, 5, 6", ErrConfigValidation, config.SessionVersion)
	}

	if config.DBus.TimeoutSeconds < 0 {
		return fmt.Errorf("%w: dbus.timeout_seconds must be non-negative, got %d", ErrConfigValidation, config.DBus.TimeoutSeconds)
	}

	return nil
}

// getDefaultConfig returns the default configuration
func getDefaultConfig() *Config {
	return &Config{
		LogLevel:       "error",
		SessionVersion: SessionAuto,
		DBus: DBusConfig{
			TimeoutSeconds: 5,
		},
		Journal: JournalConfig{
			Units: []string{
				"plasma-kwin_wayland.service",
				"plasma-kwin_x11.service",
			},
			TransportPrefix: "js: ",
		},
		Script: ScriptConfig{
			KeepTempFiles: false,
		},
	}
}

// applyDefaults fills in default values for settings missing from the file
func applyDefaults(config *Config) {
	defaults := getDefaultConfig()

	if config.LogLevel == "" {
		config.LogLevel = defaults.LogLevel
	}

	if config.SessionVersion == "" {
		config.SessionVersion = defaults.SessionVersion
	}

	if config.DBus.TimeoutSeconds == 0 {
		config.DBus.TimeoutSeconds = defaults.DBus.TimeoutSeconds
	}

	if len(config.Journal.Units) == 0 {
		config.Journal.Units = defaults.Journal.Units
	}

	if config.Journal.TransportPrefix == "" {
		config.Journal.TransportPrefix = defaults.Journal.TransportPrefix
	}
}

// loadEnvFiles loads .env files if they exist
func loadEnvFiles() error {
	// Try to load .env file from current directory
	if fileExists(".env") {
		err := godotenv.Load(".env")
		if err != nil {
			return fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	return nil
}

// expandEnvVars expands environment variables in the format ${VAR} or $VAR
func expandEnvVars(s string) string {
	// Pattern for ${VAR} format
	re1 := regexp.MustCompile(`\$\{([^}]+)\}`)
	s = re1.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1] // Remove ${ and }
		return os.Getenv(varName)
	})

	// Pattern for $VAR format (word boundaries)
	re2 := regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
	s = re2.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[1:] // Remove $
		return os.Getenv(varName)
	})

	return s
}

// expandConfigEnvVars expands environment variables in config
func expandConfigEnvVars(config *Config) {
	for i, unit := range config.Journal.Units {
		config.Journal.Units[i] = expandEnvVars(unit)
	}
}

// fileExists checks if a file exists
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
