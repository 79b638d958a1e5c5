package models

import (
	"errors"
	"testing"
)

func TestDefault(t *testing.T) {
	if got := Default().ID; got != "gpt-4o" {
		t.Errorf("expected default 'gpt-4o', got %q", got)
	}
	if Default() != All()[0] {
		t.Error("expected default to be the first catalogue entry")
	}
}

func TestAll(t *testing.T) {
	all := All()
	if len(all) != 4 {
		t.Fatalf("expected 4 models, got %d", len(all))
	}

	all[0].ID = "mutated"
	if Default().ID != "gpt-4o" {
		t.Error("All must return a copy")
	}
}

func TestLookup(t *testing.T) {
	for _, id := range IDs() {
		m, err := Lookup(id)
		if err != nil {
			t.Errorf("Lookup(%q) unexpected error: %v", id, err)
		}
		if m.Description == "" {
			t.Errorf("Lookup(%q) missing description", id)
		}
	}

	_, err := Lookup("gpt-2")
	if !errors.Is(err, ErrUnknownModel) {
		t.Errorf("expected ErrUnknownModel, got %v", err)
	}
}
