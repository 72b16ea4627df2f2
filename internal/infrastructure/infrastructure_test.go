package infrastructure_test

import (
	"testing"

	"github.com/JaimeStill/facility-management/internal/config"
	"github.com/JaimeStill/facility-management/internal/infrastructure"
)

func finalized(t *testing.T) *config.Config {
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

func TestNew(t *testing.T) {
	infra, err := infrastructure.New(finalized(t))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if infra.Lifecycle == nil || infra.Logger == nil || infra.Database == nil {
		t.Fatal("core systems not initialized")
	}
	if infra.Metrics == nil || infra.Tokens == nil || infra.Authenticator == nil {
		t.Fatal("auth or metrics not initialized")
	}
	if infra.Database.Connection() == nil {
		t.Error("Connection() returned nil before Start")
	}
	if infra.Lifecycle.Ready() {
		t.Error("Ready() = true before startup")
	}
}
