package config

import (
	"fmt"
	"os"

	"github.com/JaimeStill/leadpipe/pkg/middleware"
	"github.com/JaimeStill/leadpipe/pkg/pagination"
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "LEADPIPE_CORS_ENABLED",
	Origins:          "LEADPIPE_CORS_ORIGINS",
	AllowedMethods:   "LEADPIPE_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "LEADPIPE_CORS_ALLOWED_HEADERS",
	AllowCredentials: "LEADPIPE_CORS_ALLOW_CREDENTIALS",
	ExposedHeaders:   "LEADPIPE_CORS_EXPOSED_HEADERS",
	MaxAge:           "LEADPIPE_CORS_MAX_AGE",
}

var paginationEnv = &pagination.ConfigEnv{
	DefaultPageSize: "LEADPIPE_PAGINATION_DEFAULT_PAGE_SIZE",
	MaxPageSize:     "LEADPIPE_PAGINATION_MAX_PAGE_SIZE",
}

// APIConfig holds API routing, CORS, and pagination settings.
type APIConfig struct {
	BasePath   string                `toml:"base_path"`
	CORS       middleware.CORSConfig `toml:"cors"`
	Pagination pagination.Config     `toml:"pagination"`
}

func (c *APIConfig) Finalize() error {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
	if v := os.Getenv("LEADPIPE_API_BASE_PATH"); v != "" {
		c.BasePath = v
	}

	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.Pagination.Finalize(paginationEnv); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	return nil
}

func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	c.CORS.Merge(&overlay.CORS)
	c.Pagination.Merge(&overlay.Pagination)
}
