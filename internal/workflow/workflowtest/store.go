// Package workflowtest provides in-memory implementations of the workflow
// store and providers for tests and local runs.
package workflowtest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/leadpipe/internal/workflow"
	"github.com/JaimeStill/leadpipe/internal/workflows"
)

var ErrNotRunning = errors.New("workflow not running")

// Store is an in-memory workflow.Store. Setting one of the Fail fields makes
// the matching operation return that error without side effects.
type Store struct {
	FailCreate        error
	FailQualification error
	FailOutreach      error
	FailFinalize      error

	// FailFinalizeStatus limits FailFinalize to one target status when set.
	FailFinalizeStatus workflows.Status

	mu             sync.Mutex
	workflows      map[uuid.UUID]*workflows.Workflow
	order          []uuid.UUID
	qualifications map[uuid.UUID]workflow.Qualification
	outreachWrites map[uuid.UUID]int
	finalizeCalls  []workflows.Status
}

func NewStore() *Store {
	return &Store{
		workflows:      make(map[uuid.UUID]*workflows.Workflow),
		qualifications: make(map[uuid.UUID]workflow.Qualification),
		outreachWrites: make(map[uuid.UUID]int),
	}
}

func (s *Store) CreateWorkflow(_ context.Context, tenantID, leadID uuid.UUID) (*workflows.Workflow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailCreate != nil {
		return nil, s.FailCreate
	}

	wf := &workflows.Workflow{
		ID:        uuid.New(),
		TenantID:  tenantID,
		LeadID:    leadID,
		Status:    workflows.StatusRunning,
		CreatedAt: time.Now(),
	}
	s.workflows[wf.ID] = wf
	s.order = append(s.order, wf.ID)

	cp := *wf
	return &cp, nil
}

func (s *Store) UpdateLeadQualification(_ context.Context, leadID uuid.UUID, q workflow.Qualification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailQualification != nil {
		return s.FailQualification
	}
	s.qualifications[leadID] = q
	return nil
}

func (s *Store) UpdateWorkflowOutreach(_ context.Context, workflowID uuid.UUID, research, draft string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailOutreach != nil {
		return s.FailOutreach
	}

	wf, err := s.running(workflowID)
	if err != nil {
		return err
	}
	wf.ResearchResults = &research
	wf.EmailDraft = &draft
	s.outreachWrites[workflowID]++
	return nil
}

func (s *Store) FinalizeWorkflow(_ context.Context, workflowID uuid.UUID, status workflows.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.finalizeCalls = append(s.finalizeCalls, status)

	if s.FailFinalize != nil && (s.FailFinalizeStatus == "" || s.FailFinalizeStatus == status) {
		return s.FailFinalize
	}
	if !status.Terminal() {
		return fmt.Errorf("invalid final status %q", status)
	}

	wf, err := s.running(workflowID)
	if err != nil {
		return err
	}
	now := time.Now()
	wf.Status = status
	wf.CompletedAt = &now
	return nil
}

func (s *Store) running(id uuid.UUID) (*workflows.Workflow, error) {
	wf, ok := s.workflows[id]
	if !ok {
		return nil, fmt.Errorf("workflow %s not found", id)
	}
	if wf.Status != workflows.StatusRunning {
		return nil, fmt.Errorf("%w: %s is %s", ErrNotRunning, id, wf.Status)
	}
	return wf, nil
}

// Workflow returns a copy of the stored workflow.
func (s *Store) Workflow(id uuid.UUID) (workflows.Workflow, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wf, ok := s.workflows[id]
	if !ok {
		return workflows.Workflow{}, false
	}
	return *wf, true
}

// Workflows returns copies of all workflows in creation order.
func (s *Store) Workflows() []workflows.Workflow {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]workflows.Workflow, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.workflows[id])
	}
	return out
}

// Qualification returns the last qualification recorded for a lead.
func (s *Store) Qualification(leadID uuid.UUID) (workflow.Qualification, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q, ok := s.qualifications[leadID]
	return q, ok
}

// OutreachWrites returns how many times outreach was stored for a workflow.
func (s *Store) OutreachWrites(workflowID uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.outreachWrites[workflowID]
}

// FinalizeCalls returns the statuses passed to FinalizeWorkflow in order.
func (s *Store) FinalizeCalls() []workflows.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]workflows.Status(nil), s.finalizeCalls...)
}
