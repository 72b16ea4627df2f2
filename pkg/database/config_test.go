package database_test

import (
	"os"
	"strings"
	"testing"

	"github.com/JaimeStill/facility-management/pkg/database"
)

func TestConfig_Finalize_Defaults(t *testing.T) {
	cfg := &database.Config{
		Name: "facilities",
		User: "facilities",
	}

	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	if cfg.Host != "localhost" {
		t.Errorf("Host = %q, want %q", cfg.Host, "localhost")
	}
	if cfg.Port != 5432 {
		t.Errorf("Port = %d, want %d", cfg.Port, 5432)
	}
	if cfg.MaxOpenConns != 25 {
		t.Errorf("MaxOpenConns = %d, want %d", cfg.MaxOpenConns, 25)
	}
	if cfg.ConnMaxLifetime != "15m" {
		t.Errorf("ConnMaxLifetime = %q, want %q", cfg.ConnMaxLifetime, "15m")
	}
	if cfg.SSLMode != "disable" {
		t.Errorf("SSLMode = %q, want %q", cfg.SSLMode, "disable")
	}
}

func TestConfig_Finalize_EnvOverrides(t *testing.T) {
	os.Setenv("TEST_DB_HOST", "envhost")
	os.Setenv("TEST_DB_PORT", "5434")
	os.Setenv("TEST_DB_NAME", "envdb")
	os.Setenv("TEST_DB_USER", "envuser")
	os.Setenv("TEST_DB_SSL_MODE", "require")
	defer func() {
		os.Unsetenv("TEST_DB_HOST")
		os.Unsetenv("TEST_DB_PORT")
		os.Unsetenv("TEST_DB_NAME")
		os.Unsetenv("TEST_DB_USER")
		os.Unsetenv("TEST_DB_SSL_MODE")
	}()

	cfg := &database.Config{}
	env := &database.Env{
		Host:    "TEST_DB_HOST",
		Port:    "TEST_DB_PORT",
		Name:    "TEST_DB_NAME",
		User:    "TEST_DB_USER",
		SSLMode: "TEST_DB_SSL_MODE",
	}

	if err := cfg.Finalize(env); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	if cfg.Host != "envhost" {
		t.Errorf("Host = %q, want %q", cfg.Host, "envhost")
	}
	if cfg.Port != 5434 {
		t.Errorf("Port = %d, want %d", cfg.Port, 5434)
	}
	if cfg.Name != "envdb" {
		t.Errorf("Name = %q, want %q", cfg.Name, "envdb")
	}
	if cfg.SSLMode != "require" {
		t.Errorf("SSLMode = %q, want %q", cfg.SSLMode, "require")
	}
}

func TestConfig_Finalize_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		cfg     database.Config
		wantErr string
	}{
		{"missing name", database.Config{User: "user"}, "name required"},
		{"missing user", database.Config{Name: "db"}, "user required"},
		{"invalid conn_max_lifetime", database.Config{Name: "db", User: "user", ConnMaxLifetime: "invalid"}, "invalid conn_max_lifetime"},
		{"invalid conn_timeout", database.Config{Name: "db", User: "user", ConnTimeout: "invalid"}, "invalid conn_timeout"},
		{"invalid ssl_mode", database.Config{Name: "db", User: "user", SSLMode: "sometimes"}, "invalid ssl_mode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Finalize(nil)
			if err == nil {
				t.Fatal("Finalize() should return error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want to contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestConfig_Merge_Partial(t *testing.T) {
	base := database.Config{Host: "localhost", Port: 5432, Name: "db1", User: "user1", SSLMode: "disable"}
	base.Merge(&database.Config{Host: "remotehost", SSLMode: "require"})

	if base.Host != "remotehost" {
		t.Errorf("Host = %q, want %q", base.Host, "remotehost")
	}
	if base.Name != "db1" {
		t.Errorf("Name = %q, want %q", base.Name, "db1")
	}
	if base.SSLMode != "require" {
		t.Errorf("SSLMode = %q, want %q", base.SSLMode, "require")
	}
}

func TestConfig_Dsn(t *testing.T) {
	cfg := &database.Config{
		Host:     "localhost",
		Port:     5432,
		Name:     "facilities",
		User:     "app",
		Password: "secret",
		SSLMode:  "disable",
	}

	want := "host=localhost port=5432 dbname=facilities user=app password=secret sslmode=disable"
	if got := cfg.Dsn(); got != want {
		t.Errorf("Dsn() = %q, want %q", got, want)
	}
}

func TestConfig_URL(t *testing.T) {
	cfg := &database.Config{
		Host:     "db",
		Port:     5433,
		Name:     "facilities",
		User:     "app",
		Password: "p@ss",
		SSLMode:  "require",
	}

	want := "pgx5://app:p%40ss@db:5433/facilities?sslmode=require"
	if got := cfg.URL(); got != want {
		t.Errorf("URL() = %q, want %q", got, want)
	}
}

func TestErrNotReady(t *testing.T) {
	if database.ErrNotReady.Error() != "database not ready" {
		t.Errorf("ErrNotReady.Error() = %q, want %q", database.ErrNotReady.Error(), "database not ready")
	}
}
