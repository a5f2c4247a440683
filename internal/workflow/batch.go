package workflow

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/leadpipe/internal/leads"
)

// Outcome is the result of one run in a batch.
type Outcome struct {
	LeadID uuid.UUID `json:"lead_id"`
	Result *Result   `json:"result,omitempty"`
	Err    error     `json:"-"`
}

// RunMany runs a workflow per lead with at most limit in flight. A failed
// run does not cancel the others. Outcomes are in input order.
func RunMany(ctx context.Context, rt *Runtime, batch []leads.Lead, limit int) []Outcome {
	outcomes := make([]Outcome, len(batch))

	var g errgroup.Group
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, lead := range batch {
		g.Go(func() error {
			res, err := Run(ctx, rt, lead)
			outcomes[i] = Outcome{LeadID: lead.ID, Result: res, Err: err}
			return nil
		})
	}

	_ = g.Wait()
	return outcomes
}
