// Package approvals delivers outreach review requests to humans, either as
// broker messages or as email. Decisions come back through the workflows
// API keyed by the workflow id carried in every request.
package approvals

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/leadpipe/internal/config"
	"github.com/JaimeStill/leadpipe/internal/leads"
	"github.com/JaimeStill/leadpipe/internal/workflow"
	"github.com/JaimeStill/leadpipe/pkg/broker"
	"github.com/JaimeStill/leadpipe/pkg/mailer"
)

// Message is the wire form of an approval request.
type Message struct {
	WorkflowID  uuid.UUID      `json:"workflow_id"`
	LeadID      uuid.UUID      `json:"lead_id"`
	TenantID    uuid.UUID      `json:"tenant_id"`
	Name        string         `json:"name"`
	Email       string         `json:"email"`
	Company     string         `json:"company,omitempty"`
	Category    leads.Category `json:"category"`
	Reason      string         `json:"reason"`
	Research    string         `json:"research"`
	EmailDraft  string         `json:"email_draft"`
	RequestedAt time.Time      `json:"requested_at"`
}

// NewMessage flattens an approval request.
func NewMessage(req workflow.ApprovalRequest, now time.Time) Message {
	return Message{
		WorkflowID:  req.WorkflowID,
		LeadID:      req.Lead.ID,
		TenantID:    req.Lead.TenantID,
		Name:        req.Lead.Name,
		Email:       req.Lead.Email,
		Company:     req.Lead.CompanyName(),
		Category:    req.Qualification.Category,
		Reason:      req.Qualification.Reason,
		Research:    req.Research,
		EmailDraft:  req.Email,
		RequestedAt: now,
	}
}

// New selects the gate for the configured approval channel.
func New(cfg *config.WorkflowConfig, b broker.System, m mailer.System, logger *slog.Logger) (workflow.ApprovalGate, error) {
	switch cfg.ApprovalChannel {
	case config.ChannelBroker:
		if b == nil {
			return nil, fmt.Errorf("approval channel %s requires a broker", cfg.ApprovalChannel)
		}
		return NewQueueGate(b, logger), nil
	case config.ChannelMail:
		if m == nil {
			return nil, fmt.Errorf("approval channel %s requires a mailer", cfg.ApprovalChannel)
		}
		return NewMailGate(m, cfg.Reviewers, logger), nil
	}
	return nil, fmt.Errorf("unknown approval channel %q", cfg.ApprovalChannel)
}
