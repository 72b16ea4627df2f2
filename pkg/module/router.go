package module

import (
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strings"
)

// Router dispatches requests to mounted modules by longest matching prefix
// and falls back to a native ServeMux for everything else.
type Router struct {
	modules []*Module
	native  *http.ServeMux
}

// NewRouter creates an empty router.
func NewRouter() *Router {
	return &Router{
		native: http.NewServeMux(),
	}
}

// Mount registers a module. Mount panics if a module with the same prefix
// is already mounted.
func (r *Router) Mount(m *Module) {
	for _, existing := range r.modules {
		if existing.prefix == m.prefix {
			panic(fmt.Sprintf("module prefix %q already mounted", m.prefix))
		}
	}
	r.modules = append(r.modules, m)
}

// HandleNative registers a pattern on the fallback ServeMux.
func (r *Router) HandleNative(pattern string, handler http.HandlerFunc) {
	r.native.HandleFunc(pattern, handler)
}

// Prefixes returns the mounted prefixes in registration order.
func (r *Router) Prefixes() []string {
	prefixes := make([]string, len(r.modules))
	for i, m := range r.modules {
		prefixes[i] = m.prefix
	}
	return prefixes
}

// ServeHTTP normalizes the trailing slash and forwards the request to the
// module with the longest matching prefix, or to the native mux when no
// module matches.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	req = normalizePath(req)

	if m := r.match(req.URL.Path); m != nil {
		m.Serve(w, req)
		return
	}

	r.native.ServeHTTP(w, req)
}

func (r *Router) match(path string) *Module {
	var best *Module
	for _, m := range r.modules {
		if !m.matches(path) {
			continue
		}
		if best == nil || len(m.prefix) > len(best.prefix) {
			best = m
		}
	}
	return best
}

// normalizePath cleans dot segments and repeated slashes and drops the
// trailing slash so prefix matching sees the same path the inner mux will.
func normalizePath(req *http.Request) *http.Request {
	p := req.URL.Path
	if p == "" {
		return req
	}

	clean := path.Clean("/" + strings.TrimPrefix(p, "/"))
	if clean == p {
		return req
	}

	r2 := req.Clone(req.Context())
	r2.URL.Path = clean
	r2.URL.RawPath = ""
	if raw := req.URL.RawPath; raw != "" {
		rawClean := path.Clean("/" + strings.TrimPrefix(raw, "/"))
		if unescaped, err := url.PathUnescape(rawClean); err == nil && unescaped == clean {
			r2.URL.RawPath = rawClean
		}
	}
	return r2
}
