package model

// HouseholdSettings is a singleton row of display preferences.
type HouseholdSettings struct {
	Name string `json:"name"`
}
