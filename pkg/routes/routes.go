package routes

import (
	"net/http"

	"github.com/JaimeStill/facility-management/pkg/openapi"
)

// Register adds every route in groups to mux. Patterns are relative to the
// module the mux serves; basePath is only used for the OpenAPI paths.
func Register(mux *http.ServeMux, basePath string, spec *openapi.Spec, groups ...Group) {
	for _, group := range groups {
		register(mux, "", group)
		if spec != nil {
			group.AddToSpec(basePath, spec)
		}
	}
}

func register(mux *http.ServeMux, parent string, group Group) {
	prefix := parent + group.Prefix

	for _, route := range group.Routes {
		mux.HandleFunc(route.Method+" "+pattern(prefix, route.Pattern), route.Handler)
	}

	for _, child := range group.Children {
		register(mux, prefix, child)
	}
}

// pattern anchors group roots so "" does not match the whole subtree.
func pattern(prefix, route string) string {
	p := prefix + route
	if p == "" || p == "/" {
		return "/{$}"
	}
	return p
}
