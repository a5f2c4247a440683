package workflow

import (
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/leadpipe/internal/workflows"
)

// Result summarizes a run. On failure after the workflow row exists, Run
// returns a Result with Status failed alongside the error.
type Result struct {
	WorkflowID        uuid.UUID        `json:"workflow_id"`
	LeadID            uuid.UUID        `json:"lead_id"`
	Status            workflows.Status `json:"status"`
	Stage             Stage            `json:"stage"`
	FailedStage       Stage            `json:"failed_stage,omitempty"`
	Qualification     *Qualification   `json:"qualification,omitempty"`
	Route             *Route           `json:"route,omitempty"`
	Research          string           `json:"research,omitempty"`
	Draft             string           `json:"draft,omitempty"`
	ApprovalRequested bool             `json:"approval_requested"`
	Duration          time.Duration    `json:"duration"`
}
