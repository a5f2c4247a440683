// Package workflows stores the durable record of each workflow run and the
// out-of-band approval decision applied to it.
package workflows

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Terminal reports whether s is completed or failed.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Workflow is one run of the lead pipeline. CompletedAt is set exactly when
// Status is terminal.
type Workflow struct {
	ID              uuid.UUID  `json:"id"`
	TenantID        uuid.UUID  `json:"tenant_id"`
	LeadID          uuid.UUID  `json:"lead_id"`
	Status          Status     `json:"status"`
	ResearchResults *string    `json:"research_results,omitempty"`
	EmailDraft      *string    `json:"email_draft,omitempty"`
	ApprovedBy      *string    `json:"approved_by,omitempty"`
	RejectedBy      *string    `json:"rejected_by,omitempty"`
	DecidedAt       *time.Time `json:"decided_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
}

// DecisionCommand is a reviewer's verdict on a drafted outreach email.
type DecisionCommand struct {
	Approve  bool   `json:"-"`
	Reviewer string `json:"reviewer"`
}
