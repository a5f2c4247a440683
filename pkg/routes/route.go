package routes

import "net/http"

// Route binds an HTTP method and pattern to a handler.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
}

// Key is the ServeMux pattern for r under prefix, e.g. "POST /leads/{id}/run".
func (r Route) Key(prefix string) string {
	return r.Method + " " + prefix + r.Pattern
}
