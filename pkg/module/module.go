// Package module provides prefix-mounted HTTP handler groups and the router
// that dispatches requests to them.
package module

import (
	"fmt"
	"net/http"
	"strings"
)

// Module is an http.Handler mounted at a fixed path prefix with its own
// middleware chain.
type Module struct {
	prefix     string
	handler    http.Handler
	middleware []func(http.Handler) http.Handler
}

// New creates a module serving handler under prefix.
// The prefix must start with "/", must not end with "/", and must not
// contain empty segments. New panics on an invalid prefix.
func New(prefix string, handler http.Handler) *Module {
	if err := validatePrefix(prefix); err != nil {
		panic(err)
	}
	return &Module{
		prefix:  prefix,
		handler: handler,
	}
}

// Prefix returns the mount prefix.
func (m *Module) Prefix() string {
	return m.prefix
}

// Use appends middleware. The first registered middleware runs outermost.
func (m *Module) Use(mw func(http.Handler) http.Handler) {
	m.middleware = append(m.middleware, mw)
}

// Handler returns the module handler wrapped in its middleware chain.
func (m *Module) Handler() http.Handler {
	h := m.handler
	for i := len(m.middleware) - 1; i >= 0; i-- {
		h = m.middleware[i](h)
	}
	return h
}

// Serve strips the module prefix from the request path and forwards the
// request to the wrapped handler.
func (m *Module) Serve(w http.ResponseWriter, r *http.Request) {
	m.Handler().ServeHTTP(w, m.strip(r))
}

func (m *Module) strip(r *http.Request) *http.Request {
	path := strings.TrimPrefix(r.URL.Path, m.prefix)
	if path == "" {
		path = "/"
	}

	r2 := r.Clone(r.Context())
	r2.URL.Path = path
	if r.URL.RawPath != "" {
		raw := strings.TrimPrefix(r.URL.RawPath, m.prefix)
		if raw == "" {
			raw = "/"
		}
		r2.URL.RawPath = raw
	}
	return r2
}

// matches reports whether path falls under the module prefix on a
// segment boundary.
func (m *Module) matches(path string) bool {
	if path == m.prefix {
		return true
	}
	return strings.HasPrefix(path, m.prefix+"/")
}

func validatePrefix(prefix string) error {
	if prefix == "" {
		return fmt.Errorf("module prefix required")
	}
	if !strings.HasPrefix(prefix, "/") {
		return fmt.Errorf("module prefix %q must start with /", prefix)
	}
	if prefix == "/" || strings.HasSuffix(prefix, "/") {
		return fmt.Errorf("module prefix %q must not end with /", prefix)
	}
	for _, seg := range strings.Split(prefix[1:], "/") {
		if seg == "" {
			return fmt.Errorf("module prefix %q contains an empty segment", prefix)
		}
	}
	return nil
}
