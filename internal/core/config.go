package core

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator"
	"gopkg.in/yaml.v3"
)

const (
	defaultPort      = 8080
	defaultMountPath = "/"
	defaultLogLevel  = "info"
)

type Database struct {
	Type             string `yaml:"type" validate:"required,oneof=sqlite redis mongodb"`
	ConnectionString string `yaml:"connectionString" validate:"required"`
	// Name selects the database inside the server for backends that have one (mongodb).
	Name string `yaml:"name"`
}

type ServiceConfig struct {
	Port      int      `yaml:"port" validate:"min=1,max=65535"`
	MountPath string   `yaml:"mountPath"`
	LogLevel  string   `yaml:"logLevel" validate:"oneof=debug info warn error"`
	Database  Database `yaml:"database"`
}

// LoadConfig loads configuration from the specified YAML file. Environment
// variables override values from the file.
func LoadConfig(configPath string) (*ServiceConfig, error) {
	// Read the config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	// Parse YAML
	var config ServiceConfig
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
	}

	config.applyDefaults()
	if err := config.applyEnv(os.LookupEnv); err != nil {
		return nil, fmt.Errorf("invalid environment override: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate checks the field constraints declared on the config structs.
func (config *ServiceConfig) Validate() error {
	if err := validator.New().Struct(config); err != nil {
		return err
	}
	if !strings.HasPrefix(config.MountPath, "/") {
		return fmt.Errorf("mountPath must start with '/', got %q", config.MountPath)
	}
	return nil
}

// SlogLevel maps LogLevel to a slog level, defaulting to info.
func (config *ServiceConfig) SlogLevel() slog.Level {
	switch strings.ToLower(config.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (config *ServiceConfig) applyDefaults() {
	if config.Port == 0 {
		config.Port = defaultPort
	}
	if config.MountPath == "" {
		config.MountPath = defaultMountPath
	}
	if config.LogLevel == "" {
		config.LogLevel = defaultLogLevel
	}
	config.LogLevel = strings.ToLower(config.LogLevel)
}

func (config *ServiceConfig) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("PORT"); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("PORT must be a number, got %q", v)
		}
		config.Port = port
	}
	if v, ok := lookup("MOUNT_PATH"); ok && v != "" {
		config.MountPath = v
	}
	if v, ok := lookup("LOG_LEVEL"); ok && v != "" {
		config.LogLevel = strings.ToLower(v)
	}
	if v, ok := lookup("DATABASE_TYPE"); ok && v != "" {
		config.Database.Type = v
	}
	if v, ok := lookup("DATABASE_CONNECTION_STRING"); ok && v != "" {
		config.Database.ConnectionString = v
	}
	if v, ok := lookup("DATABASE_NAME"); ok && v != "" {
		config.Database.Name = v
	}
	return nil
}
