package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/JaimeStill/facility-management/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := &config.Config{}
	cfg.Database.Name = "facilities"
	cfg.Database.User = "facilities"
	cfg.Auth.Secret = "0123456789abcdef0123456789abcdef"
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}
	return cfg
}

func serve(s *Server, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestNewServer_Mounts(t *testing.T) {
	s, err := NewServer(testConfig(t))
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}

	want := []string{"/admin", "/api/auth", "/api/facilities", "/api/permissions"}
	got := s.router.Prefixes()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("Prefixes() = %v, want %v", got, want)
	}
}

func TestNativeRoutes(t *testing.T) {
	s, err := NewServer(testConfig(t))
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}

	if w := serve(s, "/healthz"); w.Code != http.StatusOK || w.Body.String() != "OK" {
		t.Errorf("healthz = %d %q", w.Code, w.Body.String())
	}

	if w := serve(s, "/readyz"); w.Code != http.StatusServiceUnavailable {
		t.Errorf("readyz before startup = %d, want %d", w.Code, http.StatusServiceUnavailable)
	}

	s.infra.Lifecycle.WaitForStartup()
	if w := serve(s, "/readyz"); w.Code != http.StatusOK || w.Body.String() != "READY" {
		t.Errorf("readyz after startup = %d %q", w.Code, w.Body.String())
	}

	if w := serve(s, "/api/openapi.json"); w.Code != http.StatusOK {
		t.Errorf("openapi.json = %d", w.Code)
	}

	if w := serve(s, "/nowhere"); w.Code != http.StatusNotFound {
		t.Errorf("unmatched = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	s, err := NewServer(testConfig(t))
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}

	serve(s, "/api/facilities")

	w := serve(s, "/metrics")
	if w.Code != http.StatusOK {
		t.Fatalf("metrics = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `module="/api/facilities"`) {
		t.Errorf("metrics missing facilities series:\n%s", w.Body.String())
	}
}

func TestServer_Shutdown(t *testing.T) {
	s, err := NewServer(testConfig(t))
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}
	if err := s.Shutdown(time.Second); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
}
