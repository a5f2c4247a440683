package approvals

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/JaimeStill/leadpipe/internal/workflow"
	"github.com/JaimeStill/leadpipe/pkg/broker"
)

// QueueGate publishes approval requests to the broker. The message id is
// the workflow id.
type QueueGate struct {
	broker broker.System
	logger *slog.Logger
	now    func() time.Time
}

func NewQueueGate(b broker.System, logger *slog.Logger) *QueueGate {
	return &QueueGate{
		broker: b,
		logger: logger.With("system", "approvals", "channel", "broker"),
		now:    time.Now,
	}
}

func (g *QueueGate) Request(ctx context.Context, req workflow.ApprovalRequest) error {
	body, err := json.Marshal(NewMessage(req, g.now().UTC()))
	if err != nil {
		return fmt.Errorf("%w: encode approval message: %w", workflow.ErrProvider, err)
	}

	err = g.broker.Publish(ctx, broker.Message{
		ID:   req.WorkflowID.String(),
		Body: body,
	})
	if err != nil {
		return fmt.Errorf("%w: publish approval request: %w", workflow.ErrProvider, err)
	}

	g.logger.InfoContext(ctx, "approval requested",
		"workflow_id", req.WorkflowID,
		"lead_id", req.Lead.ID,
	)
	return nil
}
