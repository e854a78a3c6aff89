package store

import (
	"testing"

	"github.com/oxtailbadger/mise/internal/database"
)

func setupSettingsTestDB(t *testing.T) *SettingsStore {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewSettingsStore(db)
}

func TestHouseholdNameDefault(t *testing.T) {
	ss := setupSettingsTestDB(t)

	name, err := ss.GetHouseholdName()
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if name != DefaultHouseholdName {
		t.Errorf("name = %q, want default %q", name, DefaultHouseholdName)
	}
}

func TestHouseholdNameSetAndUpdate(t *testing.T) {
	ss := setupSettingsTestDB(t)

	if err := ss.SetHouseholdName("the Nakamura"); err != nil {
		t.Fatalf("set: %v", err)
	}
	name, err := ss.GetHouseholdName()
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if name != "the Nakamura" {
		t.Errorf("name = %q", name)
	}

	// Setting again overwrites the singleton row.
	if err := ss.SetHouseholdName("our"); err != nil {
		t.Fatalf("re-set: %v", err)
	}
	name, err = ss.GetHouseholdName()
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if name != "our" {
		t.Errorf("name = %q after update", name)
	}
}
