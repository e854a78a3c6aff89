package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/oxtailbadger/mise/internal/model"
)

// DefaultStaples is the starter pantry a new household can seed. Stored
// lowercase to match case-insensitive ingredient lookups.
var DefaultStaples = []string{
	// Oils & fats
	"olive oil", "butter", "vegetable oil", "sesame oil", "coconut oil",
	// Salt, pepper & core spices
	"salt", "black pepper", "garlic powder", "onion powder",
	"paprika", "cumin", "oregano", "chili powder", "red pepper flakes",
	"cinnamon", "bay leaves", "thyme", "rosemary",
	// Sweeteners
	"sugar", "brown sugar", "honey", "maple syrup",
	// Acids & condiments
	"white wine vinegar", "apple cider vinegar", "soy sauce",
	"hot sauce", "dijon mustard", "fish sauce",
	// Canned & jarred
	"chicken broth", "diced tomatoes", "tomato paste", "coconut milk",
	// Dry goods
	"rice", "cornstarch", "baking powder", "baking soda",
	// Nuts & seeds
	"sesame seeds",
}

type PantryStore struct {
	db *sql.DB
}

func NewPantryStore(db *sql.DB) *PantryStore {
	return &PantryStore{db: db}
}

// List returns all staples alphabetically.
func (s *PantryStore) List() ([]model.PantryStaple, error) {
	rows, err := s.db.Query(`SELECT id, name FROM pantry_staples ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list staples: %w", err)
	}
	defer rows.Close()

	staples := []model.PantryStaple{}
	for rows.Next() {
		var p model.PantryStaple
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, fmt.Errorf("scan staple: %w", err)
		}
		staples = append(staples, p)
	}
	return staples, rows.Err()
}

// Names returns just the staple names, for building the pantry match set.
func (s *PantryStore) Names() ([]string, error) {
	staples, err := s.List()
	if err != nil {
		return nil, err
	}
	names := make([]string, len(staples))
	for i, p := range staples {
		names[i] = p.Name
	}
	return names, nil
}

// Add stores a staple under its lowercased, trimmed name. Adding a name
// that already exists is not an error and returns the existing row.
func (s *PantryStore) Add(name string) (*model.PantryStaple, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	if _, err := s.db.Exec(`INSERT OR IGNORE INTO pantry_staples (name) VALUES (?)`, normalized); err != nil {
		return nil, fmt.Errorf("insert staple: %w", err)
	}

	var p model.PantryStaple
	if err := s.db.QueryRow(`SELECT id, name FROM pantry_staples WHERE name = ?`, normalized).Scan(&p.ID, &p.Name); err != nil {
		return nil, fmt.Errorf("get staple: %w", err)
	}
	return &p, nil
}

func (s *PantryStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM pantry_staples WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete staple: %w", err)
	}
	return nil
}

// Seed inserts the given staples, skipping any that already exist, and
// returns the number added. Safe to call repeatedly.
func (s *PantryStore) Seed(names []string) (int64, error) {
	var added int64
	for _, name := range names {
		result, err := s.db.Exec(`INSERT OR IGNORE INTO pantry_staples (name) VALUES (?)`, strings.ToLower(strings.TrimSpace(name)))
		if err != nil {
			return added, fmt.Errorf("seed staple: %w", err)
		}
		n, err := result.RowsAffected()
		if err != nil {
			return added, fmt.Errorf("rows affected: %w", err)
		}
		added += n
	}
	return added, nil
}
