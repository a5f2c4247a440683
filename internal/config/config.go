// Package config loads leadpipe configuration from config.toml, an optional
// config.<env>.toml overlay, and LEADPIPE_* environment variables.
package config

import (
	"fmt"
	"os"
	"time"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
	"github.com/pelletier/go-toml/v2"

	"github.com/JaimeStill/leadpipe/pkg/broker"
	"github.com/JaimeStill/leadpipe/pkg/database"
	"github.com/JaimeStill/leadpipe/pkg/mailer"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvLeadpipeEnv             = "LEADPIPE_ENV"
	EnvLeadpipeShutdownTimeout = "LEADPIPE_SHUTDOWN_TIMEOUT"
	EnvLeadpipeVersion         = "LEADPIPE_VERSION"
)

var databaseEnv = &database.Env{
	Host:     "LEADPIPE_DB_HOST",
	Port:     "LEADPIPE_DB_PORT",
	Name:     "LEADPIPE_DB_NAME",
	User:     "LEADPIPE_DB_USER",
	Password: "LEADPIPE_DB_PASSWORD",
	SSLMode:  "LEADPIPE_DB_SSL_MODE",
}

var brokerEnv = &broker.Env{
	Host:     "LEADPIPE_BROKER_HOST",
	Port:     "LEADPIPE_BROKER_PORT",
	User:     "LEADPIPE_BROKER_USER",
	Password: "LEADPIPE_BROKER_PASSWORD",
	VHost:    "LEADPIPE_BROKER_VHOST",
}

var mailEnv = &mailer.Env{
	Host:     "LEADPIPE_MAIL_HOST",
	Port:     "LEADPIPE_MAIL_PORT",
	User:     "LEADPIPE_MAIL_USER",
	Password: "LEADPIPE_MAIL_PASSWORD",
	From:     "LEADPIPE_MAIL_FROM",
}

// Config is the root configuration for the leadpipe service.
type Config struct {
	Server          ServerConfig         `toml:"server"`
	Database        database.Config      `toml:"database"`
	Broker          broker.Config        `toml:"broker"`
	Mail            mailer.Config        `toml:"mail"`
	API             APIConfig            `toml:"api"`
	Agent           gaconfig.AgentConfig `toml:"agent"`
	Workflow        WorkflowConfig       `toml:"workflow"`
	Logging         LoggingConfig        `toml:"logging"`
	ShutdownTimeout string               `toml:"shutdown_timeout"`
	Version         string               `toml:"version"`
}

// Env returns the LEADPIPE_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvLeadpipeEnv); env != "" {
		return env
	}
	return "local"
}

func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads the base config (if present), applies any environment overlay,
// and finalizes all values. Without config.toml, defaults and environment
// variables provide all configuration.
func Load() (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(BaseConfigFile); err == nil {
		loaded, err := load(BaseConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.Finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Server.Merge(&overlay.Server)
	c.Database.Merge(&overlay.Database)
	c.Broker.Merge(&overlay.Broker)
	c.Mail.Merge(&overlay.Mail)
	c.API.Merge(&overlay.API)
	c.Agent.Merge(&overlay.Agent)
	c.Workflow.Merge(&overlay.Workflow)
	c.Logging.Merge(&overlay.Logging)
}

// Finalize applies defaults, environment overrides and validation to every
// section.
func (c *Config) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}

	steps := []struct {
		name string
		fn   func() error
	}{
		{"server", c.Server.Finalize},
		{"database", func() error { return c.Database.Finalize(databaseEnv) }},
		{"broker", func() error { return c.Broker.Finalize(brokerEnv) }},
		{"mail", func() error { return c.Mail.Finalize(mailEnv) }},
		{"api", c.API.Finalize},
		{"agent", func() error { return FinalizeAgent(&c.Agent) }},
		{"workflow", c.Workflow.Finalize},
		{"logging", c.Logging.Finalize},
	}

	for _, step := range steps {
		if err := step.fn(); err != nil {
			return fmt.Errorf("%s: %w", step.name, err)
		}
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvLeadpipeShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvLeadpipeVersion); v != "" {
		c.Version = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath() string {
	if env := os.Getenv(EnvLeadpipeEnv); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
