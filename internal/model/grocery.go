package model

import "time"

// ItemCategory is the fixed grocery-section taxonomy.
type ItemCategory string

const (
	CategoryProduce  ItemCategory = "PRODUCE"
	CategoryProtein  ItemCategory = "PROTEIN"
	CategoryDairy    ItemCategory = "DAIRY"
	CategoryDryGoods ItemCategory = "DRY_GOODS"
	CategoryCanned   ItemCategory = "CANNED"
	CategoryOther    ItemCategory = "OTHER"
)

// CategoryOrder is the display order for the buy section. Item sorting uses
// this order, not the lexical order of the enum values.
var CategoryOrder = []ItemCategory{
	CategoryProduce,
	CategoryProtein,
	CategoryDairy,
	CategoryDryGoods,
	CategoryCanned,
	CategoryOther,
}

type GroceryList struct {
	ID        int64         `json:"id"`
	WeekStart string        `json:"week_start"`
	Items     []GroceryItem `json:"items"`
	CreatedAt time.Time     `json:"created_at"`
}

type GroceryItem struct {
	ID            int64        `json:"id"`
	ListID        int64        `json:"list_id"`
	Name          string       `json:"name"`
	Quantity      *string      `json:"quantity"`
	Unit          *string      `json:"unit"`
	Category      ItemCategory `json:"category"`
	IsPantryCheck bool         `json:"is_pantry_check"`
	IsManual      bool         `json:"is_manual"`
	IsQuickTrip   bool         `json:"is_quick_trip"`
	IsChecked     bool         `json:"is_checked"`
	SortOrder     int          `json:"sort_order"`
}
