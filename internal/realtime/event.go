package realtime

import "fmt"

// Entities that emit sync events.
const (
	EntityRecipe      = "recipe"
	EntityMealPlan    = "meal_plan"
	EntityGroceryList = "grocery_list"
	EntityGroceryItem = "grocery_item"
	EntityPantry      = "pantry_staple"
)

// Actions carried by sync events.
const (
	ActionCreated   = "created"
	ActionUpdated   = "updated"
	ActionDeleted   = "deleted"
	ActionGenerated = "generated"
)

// Event is a sync notification pushed to every connected device, so a phone
// at the store and a tablet in the kitchen see each other's changes live.
// WeekStart is set for week-scoped entities (plans and grocery lists) so
// clients can ignore events for weeks they are not showing.
type Event struct {
	Type      string `json:"type"`
	Entity    string `json:"entity"`
	Action    string `json:"action"`
	ID        int64  `json:"id,omitempty"`
	WeekStart string `json:"week_start,omitempty"`
}

// NewEvent builds an event with Type derived from entity and action.
func NewEvent(entity, action string, id int64) Event {
	return Event{
		Type:   fmt.Sprintf("%s_%s", entity, action),
		Entity: entity,
		Action: action,
		ID:     id,
	}
}

// WeekEvent builds an event scoped to a plan week.
func WeekEvent(entity, action, weekStart string, id int64) Event {
	e := NewEvent(entity, action, id)
	e.WeekStart = weekStart
	return e
}
