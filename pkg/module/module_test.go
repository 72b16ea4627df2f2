package module_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/facility-management/pkg/module"
)

func TestNew(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []string{"/admin", "/api/auth", "/api/facilities", "/api/permissions"}

	for _, prefix := range tests {
		t.Run(prefix, func(t *testing.T) {
			m := module.New(prefix, handler)
			if m == nil {
				t.Fatal("New() returned nil")
			}
			if m.Prefix() != prefix {
				t.Errorf("Prefix() = %q, want %q", m.Prefix(), prefix)
			}
		})
	}
}

func TestNew_InvalidPrefix(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
	}{
		{"empty", ""},
		{"root", "/"},
		{"no leading slash", "api"},
		{"trailing slash", "/api/auth/"},
		{"empty segment", "/api//auth"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if r := recover(); r == nil {
					t.Errorf("New(%q) did not panic", tt.prefix)
				}
			}()

			module.New(tt.prefix, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		})
	}
}

func TestModule_Handler(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("hello"))
	})

	m := module.New("/api", handler)
	h := m.Handler()

	if h == nil {
		t.Fatal("Handler() returned nil")
	}

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()

	h.ServeHTTP(w, req)

	body, _ := io.ReadAll(w.Result().Body)
	if string(body) != "hello" {
		t.Errorf("body = %q, want %q", string(body), "hello")
	}
}

func TestModule_Serve(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(r.URL.Path))
	})

	m := module.New("/api/facilities", handler)

	tests := []struct {
		name     string
		path     string
		wantPath string
	}{
		{"root path", "/api/facilities", "/"},
		{"sub path", "/api/facilities/search", "/search"},
		{"nested path", "/api/facilities/123/rooms", "/123/rooms"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			w := httptest.NewRecorder()

			m.Serve(w, req)

			body, _ := io.ReadAll(w.Result().Body)
			if string(body) != tt.wantPath {
				t.Errorf("path = %q, want %q", string(body), tt.wantPath)
			}
		})
	}
}

func TestModule_Serve_DoesNotMutateRequest(t *testing.T) {
	m := module.New("/admin", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	m.Serve(httptest.NewRecorder(), req)

	if req.URL.Path != "/admin/users" {
		t.Errorf("original path = %q, want %q", req.URL.Path, "/admin/users")
	}
}

func TestModule_MiddlewareOrder(t *testing.T) {
	var order []string

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	})

	m := module.New("/api", handler)

	m.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			order = append(order, "first")
			next.ServeHTTP(w, r)
		})
	})

	m.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			order = append(order, "second")
			next.ServeHTTP(w, r)
		})
	})

	m.Handler().ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/test", nil))

	expected := []string{"first", "second", "handler"}
	if len(order) != len(expected) {
		t.Fatalf("order length = %d, want %d", len(order), len(expected))
	}

	for i, v := range expected {
		if order[i] != v {
			t.Errorf("order[%d] = %q, want %q", i, order[i], v)
		}
	}
}
