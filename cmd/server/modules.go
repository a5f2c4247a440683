package main

import (
	"encoding/json"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/JaimeStill/leadpipe/internal/api"
	"github.com/JaimeStill/leadpipe/internal/config"
	"github.com/JaimeStill/leadpipe/internal/infrastructure"
	"github.com/JaimeStill/leadpipe/pkg/module"
)

type Modules struct {
	API *module.Module
}

func NewModules(infra *infrastructure.Infrastructure, cfg *config.Config) (*Modules, error) {
	apiModule, err := api.NewModule(cfg, infra)
	if err != nil {
		return nil, err
	}

	return &Modules{API: apiModule}, nil
}

func (m *Modules) Mount(router *module.Router) {
	router.Mount(m.API)
}

func buildRouter(infra *infrastructure.Infrastructure) *module.Router {
	router := module.NewRouter()

	router.HandleNative("GET /healthz", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondStatus(w, http.StatusOK, "ok")
	}))

	router.HandleNative("GET /readyz", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !infra.Lifecycle.Ready() || !infra.Database.Ready() {
			respondStatus(w, http.StatusServiceUnavailable, "not ready")
			return
		}
		respondStatus(w, http.StatusOK, "ready")
	}))

	router.HandleNative("GET /metrics", promhttp.Handler())

	return router
}

func respondStatus(w http.ResponseWriter, code int, status string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"status": status})
}
