package store

import (
	"testing"

	"github.com/oxtailbadger/mise/internal/database"
)

func setupPantryTestDB(t *testing.T) *PantryStore {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewPantryStore(db)
}

func TestPantryAddNormalizes(t *testing.T) {
	ps := setupPantryTestDB(t)

	staple, err := ps.Add("  Olive Oil ")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if staple.Name != "olive oil" {
		t.Errorf("name = %q, want lowercased and trimmed", staple.Name)
	}

	// Re-adding under different casing returns the same row.
	again, err := ps.Add("OLIVE OIL")
	if err != nil {
		t.Fatalf("re-add: %v", err)
	}
	if again.ID != staple.ID {
		t.Errorf("duplicate add created a new row: %d vs %d", again.ID, staple.ID)
	}

	staples, err := ps.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(staples) != 1 {
		t.Fatalf("expected 1 staple, got %d", len(staples))
	}
}

func TestPantryListAlphabetical(t *testing.T) {
	ps := setupPantryTestDB(t)

	for _, name := range []string{"soy sauce", "butter", "rice"} {
		if _, err := ps.Add(name); err != nil {
			t.Fatalf("add %q: %v", name, err)
		}
	}

	names, err := ps.Names()
	if err != nil {
		t.Fatalf("names: %v", err)
	}
	want := []string{"butter", "rice", "soy sauce"}
	for i, name := range want {
		if names[i] != name {
			t.Errorf("names[%d] = %q, want %q", i, names[i], name)
		}
	}
}

func TestPantryDelete(t *testing.T) {
	ps := setupPantryTestDB(t)

	staple, err := ps.Add("salt")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := ps.Delete(staple.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	staples, err := ps.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(staples) != 0 {
		t.Fatalf("expected empty pantry, got %d staples", len(staples))
	}
}

func TestPantrySeedIdempotent(t *testing.T) {
	ps := setupPantryTestDB(t)

	if _, err := ps.Add("olive oil"); err != nil {
		t.Fatalf("add: %v", err)
	}

	added, err := ps.Seed(DefaultStaples)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if added != int64(len(DefaultStaples)-1) {
		t.Errorf("added = %d, want %d (olive oil already present)", added, len(DefaultStaples)-1)
	}

	again, err := ps.Seed(DefaultStaples)
	if err != nil {
		t.Fatalf("re-seed: %v", err)
	}
	if again != 0 {
		t.Errorf("re-seed added %d staples, want 0", again)
	}
}
