package store

import (
	"testing"

	"github.com/oxtailbadger/mise/internal/database"
	"github.com/oxtailbadger/mise/internal/model"
)

func setupMealPlanTestDB(t *testing.T) (*MealPlanStore, *RecipeStore) {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewMealPlanStore(db), NewRecipeStore(db)
}

const (
	planWeek = "2026-03-09"
	nextWeek = "2026-03-16"
)

func TestUpsertDayInsertAndUpdate(t *testing.T) {
	ps, rs := setupMealPlanTestDB(t)

	r, err := rs.Create(testRecipe("Chili"))
	if err != nil {
		t.Fatalf("create recipe: %v", err)
	}

	day, err := ps.UpsertDay(planWeek, 2, model.DayPlanned, &r.ID, nil, 4)
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if day.Status != model.DayPlanned {
		t.Errorf("status = %s", day.Status)
	}
	if day.Recipe == nil || day.Recipe.Name != "Chili" {
		t.Errorf("recipe summary missing: %+v", day.Recipe)
	}
	if day.Servings != 4 {
		t.Errorf("servings = %d", day.Servings)
	}

	// Upserting the same slot replaces it rather than erroring.
	takeout := "takeout pizza"
	day, err = ps.UpsertDay(planWeek, 2, model.DayPlanned, nil, &takeout, 2)
	if err != nil {
		t.Fatalf("upsert replace: %v", err)
	}
	if day.RecipeID != nil {
		t.Error("recipe link should be cleared")
	}
	if day.CustomMealName == nil || *day.CustomMealName != "takeout pizza" {
		t.Errorf("custom meal = %v", day.CustomMealName)
	}

	days, err := ps.ListWeek(planWeek)
	if err != nil {
		t.Fatalf("list week: %v", err)
	}
	if len(days) != 1 {
		t.Fatalf("expected 1 slot, got %d", len(days))
	}
}

func TestGetDayMissing(t *testing.T) {
	ps, _ := setupMealPlanTestDB(t)

	day, err := ps.GetDay(planWeek, 5)
	if err != nil {
		t.Fatalf("get day: %v", err)
	}
	if day != nil {
		t.Fatal("expected nil for unplanned day")
	}
}

func TestDeleteDay(t *testing.T) {
	ps, _ := setupMealPlanTestDB(t)

	if _, err := ps.UpsertDay(planWeek, 0, model.DayEatingOut, nil, nil, 2); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := ps.DeleteDay(planWeek, 0); err != nil {
		t.Fatalf("delete: %v", err)
	}

	day, err := ps.GetDay(planWeek, 0)
	if err != nil {
		t.Fatalf("get day: %v", err)
	}
	if day != nil {
		t.Fatal("day should be cleared")
	}
}

func TestListWeekOrdered(t *testing.T) {
	ps, _ := setupMealPlanTestDB(t)

	for _, dow := range []int{4, 0, 6} {
		if _, err := ps.UpsertDay(planWeek, dow, model.DaySkipped, nil, nil, 2); err != nil {
			t.Fatalf("upsert day %d: %v", dow, err)
		}
	}

	days, err := ps.ListWeek(planWeek)
	if err != nil {
		t.Fatalf("list week: %v", err)
	}
	want := []int{0, 4, 6}
	if len(days) != len(want) {
		t.Fatalf("expected %d days, got %d", len(want), len(days))
	}
	for i, dow := range want {
		if days[i].DayOfWeek != dow {
			t.Errorf("days[%d].DayOfWeek = %d, want %d", i, days[i].DayOfWeek, dow)
		}
	}
}

func TestCarryForwardSkipsPlannedDays(t *testing.T) {
	ps, rs := setupMealPlanTestDB(t)

	r, err := rs.Create(testRecipe("Meatloaf"))
	if err != nil {
		t.Fatalf("create recipe: %v", err)
	}

	// Source week: three planned slots.
	for dow := 0; dow < 3; dow++ {
		if _, err := ps.UpsertDay(planWeek, dow, model.DayPlanned, &r.ID, nil, 4); err != nil {
			t.Fatalf("upsert source day %d: %v", dow, err)
		}
	}
	// Target week already has Monday planned; carry-forward must not clobber it.
	custom := "leftover night"
	if _, err := ps.UpsertDay(nextWeek, 0, model.DayLeftovers, nil, &custom, 2); err != nil {
		t.Fatalf("upsert target day: %v", err)
	}

	copied, err := ps.CarryForward(planWeek, nextWeek)
	if err != nil {
		t.Fatalf("carry forward: %v", err)
	}
	if copied != 2 {
		t.Errorf("copied %d days, want 2", copied)
	}

	monday, err := ps.GetDay(nextWeek, 0)
	if err != nil {
		t.Fatalf("get monday: %v", err)
	}
	if monday.Status != model.DayLeftovers {
		t.Errorf("existing day was overwritten: %+v", monday)
	}

	tuesday, err := ps.GetDay(nextWeek, 1)
	if err != nil {
		t.Fatalf("get tuesday: %v", err)
	}
	if tuesday == nil || tuesday.RecipeID == nil || *tuesday.RecipeID != r.ID {
		t.Errorf("copied day wrong: %+v", tuesday)
	}
}

func TestPlannedIngredients(t *testing.T) {
	ps, rs := setupMealPlanTestDB(t)

	cooked, err := rs.Create(testRecipe("Teriyaki"))
	if err != nil {
		t.Fatalf("create recipe: %v", err)
	}
	skipped, err := rs.Create(testRecipe("Unloved"))
	if err != nil {
		t.Fatalf("create recipe: %v", err)
	}

	if _, err := ps.UpsertDay(planWeek, 1, model.DayPlanned, &cooked.ID, nil, 4); err != nil {
		t.Fatalf("upsert planned: %v", err)
	}
	// Linked recipe on a non-PLANNED day contributes nothing.
	if _, err := ps.UpsertDay(planWeek, 3, model.DayLeftovers, &skipped.ID, nil, 4); err != nil {
		t.Fatalf("upsert leftovers: %v", err)
	}
	// Custom meal with no recipe contributes nothing.
	takeout := "thai takeout"
	if _, err := ps.UpsertDay(planWeek, 5, model.DayPlanned, nil, &takeout, 2); err != nil {
		t.Fatalf("upsert custom: %v", err)
	}

	ingredients, err := ps.PlannedIngredients(planWeek)
	if err != nil {
		t.Fatalf("planned ingredients: %v", err)
	}
	if len(ingredients) != 2 {
		t.Fatalf("expected 2 ingredients, got %d", len(ingredients))
	}
	if ingredients[0].Name != "chicken thighs" || ingredients[1].Name != "soy sauce" {
		t.Errorf("wrong ingredients: %+v", ingredients)
	}

	// A recipe planned twice contributes its ingredients twice.
	if _, err := ps.UpsertDay(planWeek, 6, model.DayPlanned, &cooked.ID, nil, 4); err != nil {
		t.Fatalf("upsert repeat: %v", err)
	}
	ingredients, err = ps.PlannedIngredients(planWeek)
	if err != nil {
		t.Fatalf("planned ingredients: %v", err)
	}
	if len(ingredients) != 4 {
		t.Fatalf("expected 4 ingredients after repeat, got %d", len(ingredients))
	}
}
