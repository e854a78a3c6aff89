package model

// PantryStaple is an ingredient the household always keeps on hand.
// Names are stored lowercase so ingredient matching is case-insensitive.
type PantryStaple struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
