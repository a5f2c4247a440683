// Package routes declares handler groups and registers them on a ServeMux.
package routes

import "net/http"

// Group organizes routes under a common prefix. Children inherit the prefix.
type Group struct {
	Prefix   string
	Routes   []Route
	Children []Group
}

// Register adds all routes from groups to mux and returns the registered
// patterns in registration order.
func Register(mux *http.ServeMux, groups ...Group) []string {
	var patterns []string
	for _, group := range groups {
		patterns = registerGroup(mux, "", group, patterns)
	}
	return patterns
}

func registerGroup(mux *http.ServeMux, parentPrefix string, group Group, patterns []string) []string {
	prefix := parentPrefix + group.Prefix
	for _, route := range group.Routes {
		key := route.Key(prefix)
		mux.HandleFunc(key, route.Handler)
		patterns = append(patterns, key)
	}
	for _, child := range group.Children {
		patterns = registerGroup(mux, prefix, child, patterns)
	}
	return patterns
}
