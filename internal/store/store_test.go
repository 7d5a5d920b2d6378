package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/talentvec/talentvec/internal/faults"
)

func TestMemoryByID(t *testing.T) {
	m := NewMemoryWithDemoData()

	profile, err := m.ProfileByID("C001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.Name != "Alice Johnson" {
		t.Fatalf("unexpected profile: %+v", profile)
	}

	position, err := m.PositionByID("J003")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if position.Title != "Machine Learning Engineer" {
		t.Fatalf("unexpected position: %+v", position)
	}
}

func TestMemoryNotFound(t *testing.T) {
	m := NewMemoryWithDemoData()

	_, err := m.ProfileByID("C999")
	if err == nil {
		t.Fatalf("expected error")
	}
	if faults.KindOf(err) != faults.NotFound {
		t.Fatalf("expected NotFound kind, got %v", faults.KindOf(err))
	}

	_, err = m.PositionByID("J999")
	if faults.KindOf(err) != faults.NotFound {
		t.Fatalf("expected NotFound kind, got %v", faults.KindOf(err))
	}
}

func TestAddProfileAssignsID(t *testing.T) {
	m := NewMemory()

	stored, err := m.AddProfile(&Profile{Description: "Go developer", Years: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.ID == "" {
		t.Fatalf("expected generated id")
	}

	again, err := m.ProfileByID(stored.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if again.Description != "Go developer" {
		t.Fatalf("unexpected record: %+v", again)
	}
}

func TestAddProfileRejectsEmptyDescription(t *testing.T) {
	m := NewMemory()

	_, err := m.AddProfile(&Profile{Name: "nameless"})
	if faults.KindOf(err) != faults.InvalidInput {
		t.Fatalf("expected InvalidInput, got %v", err)
	}

	_, err = m.AddPosition(&Position{Title: "empty"})
	if faults.KindOf(err) != faults.InvalidInput {
		t.Fatalf("expected InvalidInput, got %v", err)
	}
}

func TestSnapshotsAreCopies(t *testing.T) {
	m := NewMemoryWithDemoData()

	snapshot := m.Profiles()
	snapshot[0] = nil

	if m.Profiles()[0] == nil {
		t.Fatalf("mutating the snapshot must not affect the repository")
	}
}

func TestLoadFile(t *testing.T) {
	doc := `{
		"profiles": [
			{"id": "C100", "name": "Grace Kim", "description": "Cloud Architect AWS certified", "skills": ["AWS", "Terraform"], "years": 9}
		],
		"positions": [
			{"id": "J100", "title": "Cloud Architect", "description": "Design cloud infrastructure on AWS", "required_skills": ["AWS"], "years_required": 7}
		]
	}`

	path := filepath.Join(t.TempDir(), "data.json")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	m := NewMemory()
	if err := m.LoadFile(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	profile, err := m.ProfileByID("C100")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.Years != 9 || len(profile.Skills) != 2 {
		t.Fatalf("decoded profile incomplete: %+v", profile)
	}

	position, err := m.PositionByID("J100")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if position.YearsRequired != 7 {
		t.Fatalf("decoded position incomplete: %+v", position)
	}
}

func TestLoadFileErrors(t *testing.T) {
	m := NewMemory()

	if err := m.LoadFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatalf("expected error for missing file")
	}

	bad := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(bad, []byte("{"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	if err := m.LoadFile(bad); err == nil {
		t.Fatalf("expected error for malformed json")
	}
}
