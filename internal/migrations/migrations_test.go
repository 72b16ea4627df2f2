package migrations

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/golang-migrate/migrate/v4/source/iofs"
)

func TestFiles_Paired(t *testing.T) {
	entries, err := fs.Glob(files, "*.sql")
	if err != nil {
		t.Fatalf("Glob() error = %v", err)
	}

	ups := map[string]bool{}
	downs := map[string]bool{}
	for _, name := range entries {
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			ups[strings.TrimSuffix(name, ".up.sql")] = true
		case strings.HasSuffix(name, ".down.sql"):
			downs[strings.TrimSuffix(name, ".down.sql")] = true
		default:
			t.Errorf("unexpected file %s", name)
		}
	}

	if len(ups) == 0 {
		t.Fatal("no migrations embedded")
	}
	for base := range ups {
		if !downs[base] {
			t.Errorf("migration %s has no down file", base)
		}
	}
}

func TestSource_Versions(t *testing.T) {
	src, err := iofs.New(files, ".")
	if err != nil {
		t.Fatalf("iofs.New() error = %v", err)
	}
	defer src.Close()

	v, err := src.First()
	if err != nil {
		t.Fatalf("First() error = %v", err)
	}

	var versions []uint
	for {
		versions = append(versions, v)
		next, err := src.Next(v)
		if err != nil {
			break
		}
		v = next
	}

	if len(versions) != 3 || versions[0] != 1 || versions[2] != 3 {
		t.Errorf("versions = %v, want [1 2 3]", versions)
	}
}
