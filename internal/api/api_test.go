package api_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/leadpipe/internal/api"
	"github.com/JaimeStill/leadpipe/internal/config"
	"github.com/JaimeStill/leadpipe/internal/infrastructure"
)

func newModule(t *testing.T, channel string) http.HandlerFunc {
	t.Helper()

	cfg := &config.Config{
		Workflow: config.WorkflowConfig{
			ApprovalChannel: channel,
			Reviewers:       []string{"sales@example.com"},
		},
	}
	cfg.Database.User = "leadpipe"
	cfg.Agent.Name = "lead-agent"
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	infra, err := infrastructure.New(cfg)
	if err != nil {
		t.Fatalf("infrastructure.New() error = %v", err)
	}
	t.Cleanup(func() { infra.Database.Connection().Close() })

	m, err := api.NewModule(cfg, infra)
	if err != nil {
		t.Fatalf("NewModule() error = %v", err)
	}
	return m.Serve
}

func TestNewModuleRoutes(t *testing.T) {
	for _, channel := range []string{config.ChannelBroker, config.ChannelMail} {
		t.Run(channel, func(t *testing.T) {
			serve := newModule(t, channel)

			tests := []struct {
				method, path string
				want         int
			}{
				{http.MethodGet, "/api/leads/not-a-uuid", http.StatusBadRequest},
				{http.MethodPost, "/api/leads/not-a-uuid/workflow", http.StatusBadRequest},
				{http.MethodGet, "/api/workflows/not-a-uuid", http.StatusBadRequest},
				{http.MethodGet, "/api/prompts/stages", http.StatusOK},
				{http.MethodGet, "/api/nowhere", http.StatusNotFound},
			}

			for _, tt := range tests {
				rec := httptest.NewRecorder()
				serve(rec, httptest.NewRequest(tt.method, tt.path, nil))
				if rec.Code != tt.want {
					t.Errorf("%s %s = %d, want %d", tt.method, tt.path, rec.Code, tt.want)
				}
			}
		})
	}
}
