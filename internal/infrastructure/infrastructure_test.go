package infrastructure_test

import (
	"testing"

	"github.com/JaimeStill/leadpipe/internal/config"
	"github.com/JaimeStill/leadpipe/internal/infrastructure"
)

func finalized(t *testing.T, channel string) *config.Config {
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
	return cfg
}

func TestNewBrokerChannel(t *testing.T) {
	infra, err := infrastructure.New(finalized(t, config.ChannelBroker))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer infra.Database.Connection().Close()

	if infra.Lifecycle == nil || infra.Logger == nil || infra.Mailer == nil {
		t.Fatal("core systems should be initialized")
	}
	if infra.Broker == nil {
		t.Error("broker should be created for the broker channel")
	}
}

func TestNewMailChannelSkipsBroker(t *testing.T) {
	infra, err := infrastructure.New(finalized(t, config.ChannelMail))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer infra.Database.Connection().Close()

	if infra.Broker != nil {
		t.Error("broker should not be created for the mail channel")
	}
}
