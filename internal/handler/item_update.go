package handler

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/oxtailbadger/mise/internal/store"
)

// buildItemUpdate turns a raw PATCH body into a store update. Key presence
// decides what changes: "quantity": null clears the field, while an absent
// key leaves it alone.
func buildItemUpdate(raw map[string]json.RawMessage) (store.ItemUpdate, error) {
	var u store.ItemUpdate

	if v, ok := raw["name"]; ok {
		var name string
		if err := json.Unmarshal(v, &name); err != nil {
			return u, errors.New("name must be a string")
		}
		name = strings.TrimSpace(name)
		if name == "" {
			return u, errors.New("name cannot be empty")
		}
		u.Name = &name
	}

	if v, ok := raw["quantity"]; ok {
		q, err := nullableString(v)
		if err != nil {
			return u, errors.New("quantity must be a string or null")
		}
		u.Quantity = &q
	}

	if v, ok := raw["unit"]; ok {
		unit, err := nullableString(v)
		if err != nil {
			return u, errors.New("unit must be a string or null")
		}
		u.Unit = &unit
	}

	if v, ok := raw["is_checked"]; ok {
		var checked bool
		if err := json.Unmarshal(v, &checked); err != nil {
			return u, errors.New("is_checked must be a boolean")
		}
		u.IsChecked = &checked
	}

	return u, nil
}

func nullableString(v json.RawMessage) (*string, error) {
	var s *string
	if err := json.Unmarshal(v, &s); err != nil {
		return nil, err
	}
	if s != nil {
		trimmed := strings.TrimSpace(*s)
		if trimmed == "" {
			return nil, nil
		}
		s = &trimmed
	}
	return s, nil
}
