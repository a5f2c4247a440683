package approvals

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/JaimeStill/leadpipe/internal/workflow"
	"github.com/JaimeStill/leadpipe/pkg/mailer"
)

// MailGate emails approval requests to a fixed reviewer list.
type MailGate struct {
	mailer    mailer.System
	reviewers []string
	logger    *slog.Logger
}

func NewMailGate(m mailer.System, reviewers []string, logger *slog.Logger) *MailGate {
	return &MailGate{
		mailer:    m,
		reviewers: reviewers,
		logger:    logger.With("system", "approvals", "channel", "mail"),
	}
}

// Request sends one message to all reviewers. SMTP delivery does not take a
// context, so ctx only short-circuits an already cancelled call.
func (g *MailGate) Request(ctx context.Context, req workflow.ApprovalRequest) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", workflow.ErrProvider, err)
	}

	msg := g.mailer.NewMessage()
	msg.SetHeader("To", g.reviewers...)
	msg.SetHeader("Subject", Subject(req))
	msg.SetHeader("X-Leadpipe-Workflow", req.WorkflowID.String())
	msg.SetBody("text/plain", Body(req))

	if err := g.mailer.Send(msg); err != nil {
		return fmt.Errorf("%w: send approval email: %w", workflow.ErrProvider, err)
	}

	g.logger.InfoContext(ctx, "approval requested",
		"workflow_id", req.WorkflowID,
		"lead_id", req.Lead.ID,
		"reviewers", len(g.reviewers),
	)
	return nil
}

func Subject(req workflow.ApprovalRequest) string {
	who := req.Lead.Name
	if c := req.Lead.CompanyName(); c != "" {
		who += " (" + c + ")"
	}
	return fmt.Sprintf("[%s] Review outreach to %s", req.Qualification.Category, who)
}

// Body renders the review email. The correlation line is what reviewers
// quote when approving or rejecting.
func Body(req workflow.ApprovalRequest) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Lead: %s <%s>\n", req.Lead.Name, req.Lead.Email)
	if c := req.Lead.CompanyName(); c != "" {
		fmt.Fprintf(&sb, "Company: %s\n", c)
	}
	fmt.Fprintf(&sb, "Category: %s\n", req.Qualification.Category)
	fmt.Fprintf(&sb, "Reason: %s\n", req.Qualification.Reason)

	sb.WriteString("\n--- Draft ---\n\n")
	sb.WriteString(req.Email)
	sb.WriteString("\n\n--- Research ---\n\n")
	sb.WriteString(req.Research)

	fmt.Fprintf(&sb, "\n\nWorkflow: %s\n", req.WorkflowID)
	fmt.Fprintf(&sb, "Approve: POST /api/workflows/%s/approve\n", req.WorkflowID)
	fmt.Fprintf(&sb, "Reject:  POST /api/workflows/%s/reject\n", req.WorkflowID)

	return sb.String()
}
