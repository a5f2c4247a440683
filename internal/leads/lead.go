// Package leads implements the lead domain: quiz submissions, their scores,
// and the qualification recorded by workflow runs.
package leads

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/leadpipe/internal/scoring"
)

// Category is the qualification assigned by the classifier.
type Category string

const (
	Qualified   Category = "QUALIFIED"
	FollowUp    Category = "FOLLOW_UP"
	Unqualified Category = "UNQUALIFIED"
	Support     Category = "SUPPORT"
)

var categories = []Category{Qualified, FollowUp, Unqualified, Support}

// ParseCategory accepts a category name in any case, with spaces or dashes
// in place of underscores.
func ParseCategory(s string) (Category, error) {
	norm := strings.NewReplacer(" ", "_", "-", "_").Replace(strings.ToUpper(strings.TrimSpace(s)))
	c := Category(norm)
	if !slices.Contains(categories, c) {
		return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
	}
	return c, nil
}

func (c *Category) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v, err := ParseCategory(raw)
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// Status is the human review state of a lead.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Lead is a prospective customer submission. Qualification fields are nil
// until a workflow run classifies the lead.
type Lead struct {
	ID              uuid.UUID     `json:"id"`
	TenantID        uuid.UUID     `json:"tenant_id"`
	Name            string        `json:"name"`
	Email           string        `json:"email"`
	Phone           *string       `json:"phone,omitempty"`
	Company         *string       `json:"company,omitempty"`
	Message         string        `json:"message"`
	Category        *Category     `json:"category,omitempty"`
	Reason          *string       `json:"reason,omitempty"`
	EmailDraft      *string       `json:"email_draft,omitempty"`
	ResearchResults *string       `json:"research_results,omitempty"`
	Status          Status        `json:"status"`
	ReadinessScore  *int          `json:"readiness_score,omitempty"`
	Tier            *scoring.Tier `json:"tier,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// CompanyName returns the company or an empty string.
func (l *Lead) CompanyName() string {
	if l.Company == nil {
		return ""
	}
	return *l.Company
}

// SubmitCommand carries a quiz submission. Questions are the definitions
// the responses were collected against.
type SubmitCommand struct {
	TenantID  uuid.UUID          `json:"tenant_id"`
	Name      string             `json:"name"`
	Email     string             `json:"email"`
	Phone     *string            `json:"phone,omitempty"`
	Company   *string            `json:"company,omitempty"`
	Message   string             `json:"message"`
	Questions []scoring.Question `json:"questions"`
	Responses scoring.Responses  `json:"responses"`
}

func (c *SubmitCommand) validate() error {
	switch {
	case c.TenantID == uuid.Nil:
		return fmt.Errorf("%w: tenant_id required", ErrInvalidSubmission)
	case strings.TrimSpace(c.Name) == "":
		return fmt.Errorf("%w: name required", ErrInvalidSubmission)
	case !strings.Contains(c.Email, "@"):
		return fmt.Errorf("%w: valid email required", ErrInvalidSubmission)
	}
	return nil
}

// Submission is a stored lead together with its quiz score.
type Submission struct {
	Lead  Lead              `json:"lead"`
	Score scoring.LeadScore `json:"score"`
}
