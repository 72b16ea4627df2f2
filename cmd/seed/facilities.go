package main

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

//go:embed seeds/*.toml
var seedFiles embed.FS

// FacilitySeedData is the TOML layout of a facility seed file.
type FacilitySeedData struct {
	Facilities []FacilitySeed `toml:"facility"`
}

// FacilitySeed is one facility row.
type FacilitySeed struct {
	Name        string `toml:"name"`
	Code        string `toml:"code"`
	Type        string `toml:"type"`
	Address     string `toml:"address"`
	City        string `toml:"city"`
	Capacity    int    `toml:"capacity"`
	Description string `toml:"description"`
}

// FacilitySeeder upserts facilities by code and grants every superuser
// admin on them.
type FacilitySeeder struct {
	file string
}

func (s *FacilitySeeder) Name() string {
	return "facilities"
}

func (s *FacilitySeeder) Description() string {
	return "Seeds the starter facility catalog and grants superusers admin on it"
}

// SetFile configures an external seed file path, overriding the embedded default.
func (s *FacilitySeeder) SetFile(path string) {
	s.file = path
}

func (s *FacilitySeeder) Seed(ctx context.Context, tx *sql.Tx) error {
	data, err := s.load()
	if err != nil {
		return err
	}

	for _, f := range data.Facilities {
		id, err := s.save(ctx, tx, f)
		if err != nil {
			return fmt.Errorf("save facility %s: %w", f.Code, err)
		}
		if err := s.grant(ctx, tx, id); err != nil {
			return fmt.Errorf("grant facility %s: %w", f.Code, err)
		}
	}
	return nil
}

func (s *FacilitySeeder) load() (*FacilitySeedData, error) {
	var (
		content []byte
		err     error
	)

	if s.file != "" {
		content, err = os.ReadFile(s.file)
		if err != nil {
			return nil, fmt.Errorf("read seed file: %w", err)
		}
	} else {
		content, err = seedFiles.ReadFile("seeds/facilities.toml")
		if err != nil {
			return nil, fmt.Errorf("read embedded seed file: %w", err)
		}
	}

	var data FacilitySeedData
	if err := toml.Unmarshal(content, &data); err != nil {
		return nil, fmt.Errorf("parse seed data: %w", err)
	}
	return &data, nil
}

func (s *FacilitySeeder) save(ctx context.Context, tx *sql.Tx, f FacilitySeed) (string, error) {
	const q = `
		INSERT INTO facilities (name, code, type, address, city, capacity, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (code) DO UPDATE SET
			name = EXCLUDED.name,
			type = EXCLUDED.type,
			address = EXCLUDED.address,
			city = EXCLUDED.city,
			capacity = EXCLUDED.capacity,
			description = EXCLUDED.description,
			updated_at = NOW()
		RETURNING id`

	var id string
	err := tx.QueryRowContext(ctx, q, f.Name, f.Code, f.Type, f.Address, f.City, f.Capacity, f.Description).Scan(&id)
	return id, err
}

func (s *FacilitySeeder) grant(ctx context.Context, tx *sql.Tx, facilityID string) error {
	const q = `
		INSERT INTO grants (user_id, facility_id, level, granted_by)
		SELECT u.id, $1, 'admin', u.id FROM users u WHERE u.is_superuser
		ON CONFLICT (user_id, facility_id) DO NOTHING`

	_, err := tx.ExecContext(ctx, q, facilityID)
	return err
}
