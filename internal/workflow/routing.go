package workflow

import "github.com/JaimeStill/leadpipe/internal/leads"

// Route is the post-qualification action set for a category.
type Route struct {
	Draft   bool `json:"draft"`
	Approve bool `json:"approve"`
}

// Outreach reports whether the route drafts and requests approval.
func (r Route) Outreach() bool {
	return r.Draft && r.Approve
}

var routes = map[leads.Category]Route{
	leads.Qualified:   {Draft: true, Approve: true},
	leads.FollowUp:    {Draft: true, Approve: true},
	leads.Unqualified: {},
	leads.Support:     {},
}

// RouteFor returns the route for c. ok is false for unknown categories.
func RouteFor(c leads.Category) (route Route, ok bool) {
	route, ok = routes[c]
	return route, ok
}
