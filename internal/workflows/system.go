package workflows

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/leadpipe/pkg/pagination"
)

// System defines the public contract for workflow records.
type System interface {
	Handler() *Handler

	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Workflow], error)
	Find(ctx context.Context, id uuid.UUID) (*Workflow, error)

	// Create inserts a running workflow for the lead.
	Create(ctx context.Context, tenantID, leadID uuid.UUID) (*Workflow, error)

	// UpdateOutreach stores research and draft in one write. The workflow
	// must still be running.
	UpdateOutreach(ctx context.Context, id uuid.UUID, research, draft string) error

	// Finalize moves a running workflow to completed or failed and stamps
	// completed_at. Returns ErrNotRunning for a terminal workflow.
	Finalize(ctx context.Context, id uuid.UUID, status Status) error

	// Decide applies a reviewer's approval or rejection to a completed
	// workflow with a draft, and mirrors the outcome onto its lead.
	Decide(ctx context.Context, id uuid.UUID, cmd DecisionCommand) (*Workflow, error)
}
