package api

import (
	"net/http"

	"github.com/JaimeStill/leadpipe/internal/config"
	"github.com/JaimeStill/leadpipe/internal/pipeline"
	"github.com/JaimeStill/leadpipe/pkg/routes"
)

func registerRoutes(mux *http.ServeMux, domain *Domain, cfg *config.Config, runtime *Runtime) []string {
	intake := pipeline.NewHandler(
		domain.Leads,
		domain.Workflow,
		runtime.Lifecycle,
		pipeline.Options{
			MinTier:     cfg.Workflow.Tier(),
			Concurrency: cfg.Workflow.Concurrency,
		},
		runtime.Logger,
	)

	return routes.Register(
		mux,
		domain.Leads.Handler().Routes(),
		intake.Routes(),
		domain.Workflows.Handler().Routes(),
		domain.Prompts.Handler().Routes(),
	)
}
