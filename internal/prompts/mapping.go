package prompts

import (
	"net/url"
	"strconv"

	"github.com/JaimeStill/leadpipe/pkg/query"
	"github.com/JaimeStill/leadpipe/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "prompts", "p").
	Project("id", "ID").
	Project("name", "Name").
	Project("stage", "Stage").
	Project("instructions", "Instructions").
	Project("description", "Description").
	Project("active", "Active")

const columns = "id, name, stage, instructions, description, active"

var defaultSort = query.SortField{
	Field: "Name",
}

// Filters narrows prompt queries. Nil fields are ignored; Name matches
// case-insensitively anywhere in the name.
type Filters struct {
	Stage  *Stage  `json:"stage,omitempty"`
	Name   *string `json:"name,omitempty"`
	Active *bool   `json:"active,omitempty"`
}

func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("Stage", f.Stage).
		WhereSearch(f.Name, "Name").
		WhereEquals("Active", f.Active)
}

func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if s := values.Get("stage"); s != "" {
		if stage, err := ParseStage(s); err == nil {
			f.Stage = &stage
		}
	}

	if n := values.Get("name"); n != "" {
		f.Name = &n
	}

	if a := values.Get("active"); a != "" {
		if v, err := strconv.ParseBool(a); err == nil {
			f.Active = &v
		}
	}

	return f
}

func scanPrompt(s repository.Scanner) (Prompt, error) {
	var p Prompt
	err := s.Scan(
		&p.ID,
		&p.Name,
		&p.Stage,
		&p.Instructions,
		&p.Description,
		&p.Active,
	)
	return p, err
}
