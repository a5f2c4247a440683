package workflow

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/leadpipe/internal/leads"
	"github.com/JaimeStill/leadpipe/internal/workflows"
)

// Store is the persistence the orchestrator needs. Implementations must
// keep workflow status monotonic: running to completed or failed, once.
type Store interface {
	CreateWorkflow(ctx context.Context, tenantID, leadID uuid.UUID) (*workflows.Workflow, error)
	UpdateLeadQualification(ctx context.Context, leadID uuid.UUID, q Qualification) error
	UpdateWorkflowOutreach(ctx context.Context, workflowID uuid.UUID, research, draft string) error
	FinalizeWorkflow(ctx context.Context, workflowID uuid.UUID, status workflows.Status) error
}

// ResearchRequest carries the lead identity fields given to the researcher.
type ResearchRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Company string `json:"company,omitempty"`
	Message string `json:"message"`
}

// Researcher gathers background on a lead and returns it as free text.
type Researcher interface {
	Research(ctx context.Context, req ResearchRequest) (string, error)
}

// Qualification is the classifier's decision for a lead.
type Qualification struct {
	Category leads.Category `json:"category"`
	Reason   string         `json:"reason"`
}

// Classifier assigns a lead one of the known categories with a reason.
type Classifier interface {
	Classify(ctx context.Context, lead leads.Lead, research string) (Qualification, error)
}

// Drafter writes an outreach email from the research and qualification.
type Drafter interface {
	Draft(ctx context.Context, research string, q Qualification) (string, error)
}

// ApprovalRequest asks a human to review a drafted email. WorkflowID is the
// correlation token the decision is later applied against.
type ApprovalRequest struct {
	WorkflowID    uuid.UUID     `json:"workflow_id"`
	Lead          leads.Lead    `json:"lead"`
	Research      string        `json:"research"`
	Email         string        `json:"email"`
	Qualification Qualification `json:"qualification"`
}

// ApprovalGate publishes a review request. It returns once the request is
// handed off; the decision arrives out of band.
type ApprovalGate interface {
	Request(ctx context.Context, req ApprovalRequest) error
}
