package workflow

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/leadpipe/internal/leads"
	"github.com/JaimeStill/leadpipe/internal/workflows"
)

type store struct {
	workflows workflows.System
	leads     leads.System
}

// NewStore adapts the workflow and lead systems to Store. Every error is
// wrapped with ErrPersistence.
func NewStore(wf workflows.System, ld leads.System) Store {
	return &store{workflows: wf, leads: ld}
}

func (s *store) CreateWorkflow(ctx context.Context, tenantID, leadID uuid.UUID) (*workflows.Workflow, error) {
	wf, err := s.workflows.Create(ctx, tenantID, leadID)
	if err != nil {
		return nil, persistence(err)
	}
	return wf, nil
}

func (s *store) UpdateLeadQualification(ctx context.Context, leadID uuid.UUID, q Qualification) error {
	if err := s.leads.UpdateQualification(ctx, leadID, q.Category, q.Reason); err != nil {
		return persistence(err)
	}
	return nil
}

func (s *store) UpdateWorkflowOutreach(ctx context.Context, workflowID uuid.UUID, research, draft string) error {
	if err := s.workflows.UpdateOutreach(ctx, workflowID, research, draft); err != nil {
		return persistence(err)
	}
	return nil
}

func (s *store) FinalizeWorkflow(ctx context.Context, workflowID uuid.UUID, status workflows.Status) error {
	if err := s.workflows.Finalize(ctx, workflowID, status); err != nil {
		return persistence(err)
	}
	return nil
}
