// Package main provides the seed command for populating the database with
// initial data: a superuser account and a starter facility catalog. Seeders
// run in registration order within a single transaction.
package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/JaimeStill/facility-management/pkg/repository"
)

// Seeder defines the interface for database seeders.
// Each seeder is responsible for populating a specific domain's data.
type Seeder interface {
	// Name returns the unique identifier for this seeder.
	Name() string

	// Description returns a human-readable description of what this seeder does.
	Description() string

	// Seed executes the seeding logic within the provided transaction.
	Seed(ctx context.Context, tx *sql.Tx) error
}

// registry keeps seeders in registration order; later seeders may depend
// on rows written by earlier ones.
type registry struct {
	order []Seeder
}

func (r *registry) register(s Seeder) {
	r.order = append(r.order, s)
}

func (r *registry) get(name string) (Seeder, bool) {
	for _, s := range r.order {
		if s.Name() == name {
			return s, true
		}
	}
	return nil, false
}

func (r *registry) list() []Seeder {
	return r.order
}

// run executes the named seeders, or all of them when names is empty, in
// registration order within one transaction. Any failure rolls back every
// seeder.
func (r *registry) run(ctx context.Context, db *sql.DB, names ...string) error {
	selected := r.order
	if len(names) > 0 {
		selected = make([]Seeder, 0, len(names))
		for _, s := range r.order {
			for _, n := range names {
				if s.Name() == n {
					selected = append(selected, s)
				}
			}
		}
		for _, n := range names {
			if _, ok := r.get(n); !ok {
				return fmt.Errorf("seeder not found: %s", n)
			}
		}
	}

	_, err := repository.WithTx(ctx, db, func(tx *sql.Tx) (struct{}, error) {
		for _, s := range selected {
			if err := s.Seed(ctx, tx); err != nil {
				return struct{}{}, fmt.Errorf("seed %s: %w", s.Name(), err)
			}
		}
		return struct{}{}, nil
	})
	return err
}
