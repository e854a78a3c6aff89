package model

import "time"

// GFStatus reflects whether a recipe is safe for the household's
// gluten-free eater.
type GFStatus string

const (
	GFConfirmed      GFStatus = "CONFIRMED_GF"
	GFContainsGluten GFStatus = "CONTAINS_GLUTEN"
	GFNeedsReview    GFStatus = "NEEDS_REVIEW"
)

type TagType string

const (
	TagProtein TagType = "PROTEIN"
	TagVeggie  TagType = "VEGGIE"
	TagCarb    TagType = "CARB"
	TagCuisine TagType = "CUISINE"
)

type Recipe struct {
	ID             int64              `json:"id"`
	Name           string             `json:"name"`
	SourceURL      *string            `json:"source_url"`
	TotalTime      *int               `json:"total_time"`
	ActiveCookTime *int               `json:"active_cook_time"`
	PotsAndPans    *int               `json:"pots_and_pans"`
	Servings       int                `json:"servings"`
	Instructions   string             `json:"instructions"`
	GFStatus       GFStatus           `json:"gf_status"`
	GFNotes        *string            `json:"gf_notes"`
	Notes          *string            `json:"notes"`
	Favorite       bool               `json:"favorite"`
	Ingredients    []RecipeIngredient `json:"ingredients"`
	Tags           []RecipeTag        `json:"tags"`
	CreatedAt      time.Time          `json:"created_at"`
}

// RecipeIngredient is the stored ingredient line of a recipe. Grocery
// generation copies these into grocery items as a point-in-time snapshot;
// later recipe edits never touch already-generated items.
type RecipeIngredient struct {
	ID           int64   `json:"id"`
	RecipeID     int64   `json:"recipe_id"`
	Name         string  `json:"name"`
	Quantity     string  `json:"quantity"`
	Unit         *string `json:"unit"`
	Notes        *string `json:"notes"`
	IsGlutenFlag bool    `json:"is_gluten_flag"`
	GFSubstitute *string `json:"gf_substitute"`
	SortOrder    int     `json:"sort_order"`
}

type RecipeTag struct {
	ID       int64   `json:"id"`
	RecipeID int64   `json:"recipe_id"`
	Type     TagType `json:"type"`
	Value    string  `json:"value"`
}

// RecipeFilters narrows the recipe listing.
type RecipeFilters struct {
	Search        string
	GFOnly        bool
	FavoritesOnly bool
	MaxTime       int // minutes; 0 = no limit
	Protein       string
}
