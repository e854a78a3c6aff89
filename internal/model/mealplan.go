package model

// DayStatus describes what is happening for dinner on a planned day.
type DayStatus string

const (
	DayPlanned   DayStatus = "PLANNED"
	DayEatingOut DayStatus = "EATING_OUT"
	DayLeftovers DayStatus = "LEFTOVERS"
	DaySkipped   DayStatus = "SKIP"
)

// MealPlanDay is one day slot in a week's plan. WeekStart is the Monday of
// the week as "YYYY-MM-DD"; DayOfWeek runs 0=Mon through 6=Sun.
type MealPlanDay struct {
	ID             int64         `json:"id"`
	WeekStart      string        `json:"week_start"`
	DayOfWeek      int           `json:"day_of_week"`
	Status         DayStatus     `json:"status"`
	RecipeID       *int64        `json:"recipe_id"`
	CustomMealName *string       `json:"custom_meal_name"`
	Servings       int           `json:"servings"`
	Recipe         *RecipeSummary `json:"recipe"`
}

// RecipeSummary is the slim recipe shape attached to plan days.
type RecipeSummary struct {
	ID        int64    `json:"id"`
	Name      string   `json:"name"`
	TotalTime *int     `json:"total_time"`
	GFStatus  GFStatus `json:"gf_status"`
}
