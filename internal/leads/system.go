package leads

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/leadpipe/internal/scoring"
	"github.com/JaimeStill/leadpipe/pkg/pagination"
)

// System defines the public contract for lead domain operations.
type System interface {
	Handler() *Handler

	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Lead], error)
	Find(ctx context.Context, id uuid.UUID) (*Lead, error)
	FindScore(ctx context.Context, id uuid.UUID) (*scoring.LeadScore, error)

	// Submit scores the quiz and stores the lead and its score together.
	Submit(ctx context.Context, cmd SubmitCommand) (*Submission, error)

	// UpdateQualification records the classifier's decision on the lead.
	UpdateQualification(ctx context.Context, id uuid.UUID, category Category, reason string) error
}
