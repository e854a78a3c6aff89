package store

import (
	"database/sql"
	"fmt"
)

// DefaultHouseholdName shows as "the <name> household" when nothing is set.
const DefaultHouseholdName = "your"

type SettingsStore struct {
	db *sql.DB
}

func NewSettingsStore(db *sql.DB) *SettingsStore {
	return &SettingsStore{db: db}
}

// GetHouseholdName returns the configured household name, or the default
// when none has been saved yet.
func (s *SettingsStore) GetHouseholdName() (string, error) {
	var name string
	err := s.db.QueryRow(`SELECT name FROM household_settings WHERE id = 1`).Scan(&name)
	if err == sql.ErrNoRows {
		return DefaultHouseholdName, nil
	}
	if err != nil {
		return "", fmt.Errorf("get household name: %w", err)
	}
	return name, nil
}

func (s *SettingsStore) SetHouseholdName(name string) error {
	_, err := s.db.Exec(
		`INSERT INTO household_settings (id, name) VALUES (1, ?)
		 ON CONFLICT (id) DO UPDATE SET name = excluded.name`,
		name,
	)
	if err != nil {
		return fmt.Errorf("set household name: %w", err)
	}
	return nil
}
