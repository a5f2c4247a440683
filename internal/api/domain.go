package api

import (
	"fmt"

	"github.com/JaimeStill/leadpipe/internal/agents"
	"github.com/JaimeStill/leadpipe/internal/approvals"
	"github.com/JaimeStill/leadpipe/internal/config"
	"github.com/JaimeStill/leadpipe/internal/leads"
	"github.com/JaimeStill/leadpipe/internal/prompts"
	"github.com/JaimeStill/leadpipe/internal/workflow"
	"github.com/JaimeStill/leadpipe/internal/workflows"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Leads     leads.System
	Workflows workflows.System
	Prompts   prompts.System
	Workflow  *workflow.Runtime
}

// NewDomain creates all domain systems and the workflow runtime that ties
// them to the agent providers and the approval gate.
func NewDomain(cfg *config.Config, runtime *Runtime) (*Domain, error) {
	db := runtime.Database.Connection()

	leadsSystem := leads.New(db, runtime.Logger, runtime.Pagination)
	workflowsSystem := workflows.New(db, runtime.Logger, runtime.Pagination)
	promptsSystem := prompts.New(db, runtime.Logger, runtime.Pagination)

	provider := agents.New(agents.AgentChat(cfg.Agent), promptsSystem, runtime.Logger)

	gate, err := approvals.New(&cfg.Workflow, runtime.Broker, runtime.Mailer, runtime.Logger)
	if err != nil {
		return nil, fmt.Errorf("approval gate: %w", err)
	}

	return &Domain{
		Leads:     leadsSystem,
		Workflows: workflowsSystem,
		Prompts:   promptsSystem,
		Workflow: &workflow.Runtime{
			Store:      workflow.NewStore(workflowsSystem, leadsSystem),
			Researcher: provider,
			Classifier: provider,
			Drafter:    provider,
			Gate:       gate,
			Logger:     runtime.Logger.With("workflow", "leads"),
		},
	}, nil
}
