package workflows

import (
	"net/url"

	"github.com/google/uuid"

	"github.com/JaimeStill/leadpipe/pkg/query"
	"github.com/JaimeStill/leadpipe/pkg/repository"
)

const columns = `id, tenant_id, lead_id, status, research_results, email_draft,
	approved_by, rejected_by, decided_at, created_at, completed_at`

var projection = query.
	NewProjectionMap("public", "workflows", "w").
	Project("id", "ID").
	Project("tenant_id", "TenantID").
	Project("lead_id", "LeadID").
	Project("status", "Status").
	Project("research_results", "ResearchResults").
	Project("email_draft", "EmailDraft").
	Project("approved_by", "ApprovedBy").
	Project("rejected_by", "RejectedBy").
	Project("decided_at", "DecidedAt").
	Project("created_at", "CreatedAt").
	Project("completed_at", "CompletedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters narrows workflow queries. Nil fields are ignored.
type Filters struct {
	TenantID *uuid.UUID `json:"tenant_id,omitempty"`
	LeadID   *uuid.UUID `json:"lead_id,omitempty"`
	Status   *string    `json:"status,omitempty"`
}

func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("TenantID", f.TenantID).
		WhereEquals("LeadID", f.LeadID).
		WhereEquals("Status", f.Status)
}

func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if v := values.Get("tenant_id"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			f.TenantID = &id
		}
	}
	if v := values.Get("lead_id"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			f.LeadID = &id
		}
	}
	if v := values.Get("status"); v != "" {
		f.Status = &v
	}

	return f
}

func scanWorkflow(s repository.Scanner) (Workflow, error) {
	var w Workflow
	err := s.Scan(
		&w.ID,
		&w.TenantID,
		&w.LeadID,
		&w.Status,
		&w.ResearchResults,
		&w.EmailDraft,
		&w.ApprovedBy,
		&w.RejectedBy,
		&w.DecidedAt,
		&w.CreatedAt,
		&w.CompletedAt,
	)
	return w, err
}
