// Package routes describes handler groups and registers them on a ServeMux
// while recording their operations in an OpenAPI document.
package routes

import (
	"net/http"

	"github.com/JaimeStill/facility-management/pkg/openapi"
)

// Group represents a collection of routes under a common URL prefix.
// Groups can contain child groups for hierarchical route organization.
type Group struct {
	Prefix      string
	Tags        []string
	Description string
	Routes      []Route
	Children    []Group
	Schemas     map[string]*openapi.Schema
}

// Route represents an HTTP route with method, pattern, and handler.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
	OpenAPI *openapi.Operation
}

// AddToSpec records every documented route under prefix. Operations without
// tags inherit the group's tags.
func (g *Group) AddToSpec(prefix string, spec *openapi.Spec) {
	full := prefix + g.Prefix

	for _, route := range g.Routes {
		if route.OpenAPI == nil {
			continue
		}

		op := route.OpenAPI
		if len(op.Tags) == 0 {
			op.Tags = g.Tags
		}

		path := full + route.Pattern
		if path == "" {
			path = "/"
		}
		spec.AddOperation(path, route.Method, op)
	}

	if spec.Components != nil && len(g.Schemas) > 0 {
		spec.Components.AddSchemas(g.Schemas)
	}

	for _, child := range g.Children {
		child.AddToSpec(full, spec)
	}
}
