// Package facilities manages the facility catalog. Visibility and mutation
// are gated by the caller's grant level on each facility.
package facilities

import (
	"time"

	"github.com/google/uuid"
)

// Type classifies a facility.
type Type string

const (
	Office     Type = "office"
	Warehouse  Type = "warehouse"
	Laboratory Type = "laboratory"
	Clinic     Type = "clinic"
	Other      Type = "other"
)

// Types lists every facility type.
var Types = []Type{Office, Warehouse, Laboratory, Clinic, Other}

// Valid reports whether t is a known facility type.
func (t Type) Valid() bool {
	for _, known := range Types {
		if t == known {
			return true
		}
	}
	return false
}

// Facility is a managed site.
type Facility struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Code        string     `json:"code"`
	Type        Type       `json:"type"`
	Address     string     `json:"address"`
	City        string     `json:"city"`
	Capacity    int        `json:"capacity"`
	Description string     `json:"description"`
	IsActive    bool       `json:"is_active"`
	CreatedBy   *uuid.UUID `json:"created_by"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// CreateCommand contains the data required to create a facility.
type CreateCommand struct {
	Name        string `json:"name"`
	Code        string `json:"code"`
	Type        Type   `json:"type"`
	Address     string `json:"address"`
	City        string `json:"city"`
	Capacity    int    `json:"capacity"`
	Description string `json:"description"`
}

// UpdateCommand replaces the mutable fields of a facility. A nil IsActive
// leaves the active flag unchanged.
type UpdateCommand struct {
	CreateCommand
	IsActive *bool `json:"is_active"`
}
