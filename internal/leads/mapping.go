package leads

import (
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"github.com/JaimeStill/leadpipe/pkg/query"
	"github.com/JaimeStill/leadpipe/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "leads", "l").
	Project("id", "ID").
	Project("tenant_id", "TenantID").
	Project("name", "Name").
	Project("email", "Email").
	Project("phone", "Phone").
	Project("company", "Company").
	Project("message", "Message").
	Project("qualification_category", "Category").
	Project("qualification_reason", "Reason").
	Project("email_draft", "EmailDraft").
	Project("research_results", "ResearchResults").
	Project("status", "Status").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt").
	LeftJoin("lead_scores", "s", "s.lead_id = l.id").
	ProjectFrom("s", "readiness_score", "ReadinessScore").
	ProjectFrom("s", "tier", "Tier")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters narrows lead queries. Nil fields are ignored; MinScore is inclusive.
type Filters struct {
	TenantID *uuid.UUID `json:"tenant_id,omitempty"`
	Status   *string    `json:"status,omitempty"`
	Category *string    `json:"category,omitempty"`
	Tier     *string    `json:"tier,omitempty"`
	MinScore *int       `json:"min_score,omitempty"`
}

func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("TenantID", f.TenantID).
		WhereEquals("Status", f.Status).
		WhereEquals("Category", f.Category).
		WhereEquals("Tier", f.Tier).
		WhereAtLeast("ReadinessScore", f.MinScore)
}

func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if v := values.Get("tenant_id"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			f.TenantID = &id
		}
	}
	if v := values.Get("status"); v != "" {
		f.Status = &v
	}
	if v := values.Get("category"); v != "" {
		f.Category = &v
	}
	if v := values.Get("tier"); v != "" {
		f.Tier = &v
	}
	if v := values.Get("min_score"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			f.MinScore = &n
		}
	}

	return f
}

func scanLead(s repository.Scanner) (Lead, error) {
	var l Lead
	err := s.Scan(
		&l.ID,
		&l.TenantID,
		&l.Name,
		&l.Email,
		&l.Phone,
		&l.Company,
		&l.Message,
		&l.Category,
		&l.Reason,
		&l.EmailDraft,
		&l.ResearchResults,
		&l.Status,
		&l.CreatedAt,
		&l.UpdatedAt,
		&l.ReadinessScore,
		&l.Tier,
	)
	return l, err
}
