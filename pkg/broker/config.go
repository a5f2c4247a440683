package broker

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"
)

// Config holds RabbitMQ connection and topology parameters.
type Config struct {
	Host           string `toml:"host"`
	Port           int    `toml:"port"`
	User           string `toml:"user"`
	Password       string `toml:"password"`
	VHost          string `toml:"vhost"`
	Exchange       string `toml:"exchange"`
	Queue          string `toml:"queue"`
	RoutingKey     string `toml:"routing_key"`
	DeadLetter     string `toml:"dead_letter"`
	ConnTimeout    string `toml:"conn_timeout"`
	PublishTimeout string `toml:"publish_timeout"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	Host     string
	Port     string
	User     string
	Password string
	VHost    string
}

// URL returns the AMQP connection URL.
func (c *Config) URL() string {
	u := url.URL{
		Scheme: "amqp",
		User:   url.UserPassword(c.User, c.Password),
		Host:   fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:   "/" + url.PathEscape(c.VHost),
	}
	return u.String()
}

// ConnTimeoutDuration returns ConnTimeout as a time.Duration.
func (c *Config) ConnTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ConnTimeout)
	return d
}

// PublishTimeoutDuration returns PublishTimeout as a time.Duration.
func (c *Config) PublishTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.PublishTimeout)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.Host != "" {
		c.Host = overlay.Host
	}
	if overlay.Port != 0 {
		c.Port = overlay.Port
	}
	if overlay.User != "" {
		c.User = overlay.User
	}
	if overlay.Password != "" {
		c.Password = overlay.Password
	}
	if overlay.VHost != "" {
		c.VHost = overlay.VHost
	}
	if overlay.Exchange != "" {
		c.Exchange = overlay.Exchange
	}
	if overlay.Queue != "" {
		c.Queue = overlay.Queue
	}
	if overlay.RoutingKey != "" {
		c.RoutingKey = overlay.RoutingKey
	}
	if overlay.DeadLetter != "" {
		c.DeadLetter = overlay.DeadLetter
	}
	if overlay.ConnTimeout != "" {
		c.ConnTimeout = overlay.ConnTimeout
	}
	if overlay.PublishTimeout != "" {
		c.PublishTimeout = overlay.PublishTimeout
	}
}

func (c *Config) loadDefaults() {
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.Port == 0 {
		c.Port = 5672
	}
	if c.User == "" {
		c.User = "guest"
	}
	if c.Password == "" {
		c.Password = "guest"
	}
	if c.Exchange == "" {
		c.Exchange = "ex.approvals"
	}
	if c.Queue == "" {
		c.Queue = "q.approvals"
	}
	if c.RoutingKey == "" {
		c.RoutingKey = "k.approval.request"
	}
	if c.DeadLetter == "" {
		c.DeadLetter = "ex.approvals.dlx"
	}
	if c.ConnTimeout == "" {
		c.ConnTimeout = "10s"
	}
	if c.PublishTimeout == "" {
		c.PublishTimeout = "5s"
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.Host != "" {
		if v := os.Getenv(env.Host); v != "" {
			c.Host = v
		}
	}
	if env.Port != "" {
		if v := os.Getenv(env.Port); v != "" {
			if port, err := strconv.Atoi(v); err == nil {
				c.Port = port
			}
		}
	}
	if env.User != "" {
		if v := os.Getenv(env.User); v != "" {
			c.User = v
		}
	}
	if env.Password != "" {
		if v := os.Getenv(env.Password); v != "" {
			c.Password = v
		}
	}
	if env.VHost != "" {
		if v := os.Getenv(env.VHost); v != "" {
			c.VHost = v
		}
	}
}

func (c *Config) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if _, err := time.ParseDuration(c.ConnTimeout); err != nil {
		return fmt.Errorf("invalid conn_timeout: %w", err)
	}
	if _, err := time.ParseDuration(c.PublishTimeout); err != nil {
		return fmt.Errorf("invalid publish_timeout: %w", err)
	}
	return nil
}
