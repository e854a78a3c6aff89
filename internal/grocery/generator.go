package grocery

import (
	"log/slog"

	"github.com/oxtailbadger/mise/internal/model"
	"github.com/oxtailbadger/mise/internal/store"
)

// Generator builds or rebuilds a week's grocery list from its meal plan.
// Regeneration replaces every auto-generated item and leaves manual items
// alone; replacement runs in one storage transaction so a failure never
// leaves a half-swapped list.
type Generator struct {
	plans      *store.MealPlanStore
	groceries  *store.GroceryStore
	pantry     *store.PantryStore
	classifier *Classifier
	logger     *slog.Logger
}

func NewGenerator(plans *store.MealPlanStore, groceries *store.GroceryStore, pantry *store.PantryStore, classifier *Classifier, logger *slog.Logger) *Generator {
	return &Generator{
		plans:      plans,
		groceries:  groceries,
		pantry:     pantry,
		classifier: classifier,
		logger:     logger,
	}
}

// Generate produces the grocery list for weekStart ("YYYY-MM-DD", validated
// by the caller) and returns it with items in display order.
func (g *Generator) Generate(weekStart string) (*model.GroceryList, error) {
	planned, err := g.plans.PlannedIngredients(weekStart)
	if err != nil {
		return nil, err
	}

	raw := make([]RawIngredient, len(planned))
	for i, ing := range planned {
		// Copy only the fields a grocery line needs; prep notes and
		// GF substitution hints stay on the recipe.
		raw[i] = RawIngredient{
			Name:         ing.Name,
			Quantity:     ing.Quantity,
			Unit:         ing.Unit,
			IsGlutenFlag: ing.IsGlutenFlag,
		}
	}

	consolidated := Consolidate(raw)

	names, err := g.pantry.Names()
	if err != nil {
		return nil, err
	}
	pantrySet := PantrySet(names)

	items := make([]model.GroceryItem, len(consolidated))
	for i, ing := range consolidated {
		items[i] = model.GroceryItem{
			Name:          ing.Name,
			Quantity:      ing.Quantity,
			Unit:          ing.Unit,
			Category:      g.classifier.Detect(ing.Name),
			IsPantryCheck: MatchesPantry(ing.Name, pantrySet),
			IsManual:      false,
			IsQuickTrip:   false,
			IsChecked:     false,
			SortOrder:     i,
		}
	}

	existing, err := g.groceries.GetListByWeek(weekStart)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		if err := g.groceries.ReplaceAutoItems(existing.ID, items); err != nil {
			return nil, err
		}
	} else {
		if _, err := g.groceries.CreateListWithItems(weekStart, items); err != nil {
			return nil, err
		}
	}

	g.logger.Info("grocery list generated",
		"week_start", weekStart,
		"planned_ingredients", len(raw),
		"items", len(items),
		"regenerated", existing != nil,
	)

	return g.groceries.GetListWithItems(weekStart)
}
