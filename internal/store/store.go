// Package store supplies the profile and position records consumed by the
// ranking and matching services. The in-memory implementation is the only
// one shipped; callers depend on the Repository interface so a real database
// can be injected without touching the core.
package store

import (
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/talentvec/talentvec/internal/faults"
)

// Profile is a candidate record.
type Profile struct {
	ID          string   `json:"id" mapstructure:"id"`
	Name        string   `json:"name" mapstructure:"name"`
	Description string   `json:"description" mapstructure:"description"`
	Skills      []string `json:"skills" mapstructure:"skills"`
	Years       int      `json:"years" mapstructure:"years"`
	Location    string   `json:"location,omitempty" mapstructure:"location"`
}

// Position is an open job record.
type Position struct {
	ID             string   `json:"id" mapstructure:"id"`
	Title          string   `json:"title" mapstructure:"title"`
	Description    string   `json:"description" mapstructure:"description"`
	RequiredSkills []string `json:"required_skills" mapstructure:"required_skills"`
	YearsRequired  int      `json:"years_required" mapstructure:"years_required"`
	SalaryRange    string   `json:"salary_range,omitempty" mapstructure:"salary_range"`
}

// Repository is the read/write boundary to the data source. Implementations
// must be safe for concurrent use.
type Repository interface {
	Profiles() []*Profile
	Positions() []*Position
	ProfileByID(id string) (*Profile, error)
	PositionByID(id string) (*Position, error)
	AddProfile(p *Profile) (*Profile, error)
	AddPosition(p *Position) (*Position, error)
}

// Memory is an in-memory Repository guarded by a RWMutex.
type Memory struct {
	mu        sync.RWMutex
	profiles  []*Profile
	positions []*Position
}

func NewMemory() *Memory {
	return &Memory{}
}

// Profiles returns a snapshot of all profiles.
func (m *Memory) Profiles() []*Profile {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Profile, len(m.profiles))
	copy(out, m.profiles)
	return out
}

// Positions returns a snapshot of all positions.
func (m *Memory) Positions() []*Position {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Position, len(m.positions))
	copy(out, m.positions)
	return out
}

func (m *Memory) ProfileByID(id string) (*Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, p := range m.profiles {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, faults.Newf(faults.NotFound, "profile %q not found", id)
}

func (m *Memory) PositionByID(id string) (*Position, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, p := range m.positions {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, faults.Newf(faults.NotFound, "position %q not found", id)
}

// AddProfile stores the profile, assigning a fresh ID when none is set.
func (m *Memory) AddProfile(p *Profile) (*Profile, error) {
	if p == nil || strings.TrimSpace(p.Description) == "" {
		return nil, faults.New(faults.InvalidInput, "profile description is required")
	}

	stored := *p
	if strings.TrimSpace(stored.ID) == "" {
		stored.ID = uuid.NewString()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles = append(m.profiles, &stored)

	return &stored, nil
}

// AddPosition stores the position, assigning a fresh ID when none is set.
func (m *Memory) AddPosition(p *Position) (*Position, error) {
	if p == nil || strings.TrimSpace(p.Description) == "" {
		return nil, faults.New(faults.InvalidInput, "position description is required")
	}

	stored := *p
	if strings.TrimSpace(stored.ID) == "" {
		stored.ID = uuid.NewString()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.positions = append(m.positions, &stored)

	return &stored, nil
}
