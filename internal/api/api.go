// Package api assembles the API module with all domain systems and route registration.
package api

import (
	"net/http"

	"github.com/JaimeStill/leadpipe/internal/config"
	"github.com/JaimeStill/leadpipe/internal/infrastructure"
	"github.com/JaimeStill/leadpipe/pkg/middleware"
	"github.com/JaimeStill/leadpipe/pkg/module"
)

// NewModule creates the API module with all domain handlers and middleware.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)

	domain, err := NewDomain(cfg, runtime)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	patterns := registerRoutes(mux, domain, cfg, runtime)
	runtime.Logger.Info("routes registered", "count", len(patterns))

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Logger))
	m.Use(middleware.Metrics())

	return m, nil
}
