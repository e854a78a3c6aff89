package store

import (
	"database/sql"
	"fmt"

	"github.com/oxtailbadger/mise/internal/model"
)

type MealPlanStore struct {
	db *sql.DB
}

func NewMealPlanStore(db *sql.DB) *MealPlanStore {
	return &MealPlanStore{db: db}
}

const dayCols = `d.id, d.week_start, d.day_of_week, d.status, d.recipe_id, d.custom_meal_name, d.servings,
	r.id, r.name, r.total_time, r.gf_status`

const daySelect = `SELECT ` + dayCols + ` FROM meal_plan_days d LEFT JOIN recipes r ON r.id = d.recipe_id`

func scanDay(scanner interface{ Scan(...any) error }) (*model.MealPlanDay, error) {
	var d model.MealPlanDay
	var recipeID sql.NullInt64
	var customName sql.NullString
	var rID sql.NullInt64
	var rName, rGF sql.NullString
	var rTime sql.NullInt64

	err := scanner.Scan(
		&d.ID, &d.WeekStart, &d.DayOfWeek, &d.Status, &recipeID, &customName, &d.Servings,
		&rID, &rName, &rTime, &rGF,
	)
	if err != nil {
		return nil, err
	}

	if recipeID.Valid {
		id := recipeID.Int64
		d.RecipeID = &id
	}
	d.CustomMealName = nullStr(customName)
	if rID.Valid {
		d.Recipe = &model.RecipeSummary{
			ID:        rID.Int64,
			Name:      rName.String,
			TotalTime: nullInt(rTime),
			GFStatus:  model.GFStatus(rGF.String),
		}
	}
	return &d, nil
}

// ListWeek returns every planned day slot for the week in day order, each
// with its linked recipe summary if any.
func (s *MealPlanStore) ListWeek(weekStart string) ([]model.MealPlanDay, error) {
	rows, err := s.db.Query(daySelect+` WHERE d.week_start = ? ORDER BY d.day_of_week ASC`, weekStart)
	if err != nil {
		return nil, fmt.Errorf("list week: %w", err)
	}
	defer rows.Close()

	var days []model.MealPlanDay
	for rows.Next() {
		d, err := scanDay(rows)
		if err != nil {
			return nil, fmt.Errorf("scan day: %w", err)
		}
		days = append(days, *d)
	}
	return days, rows.Err()
}

// UpsertDay creates or replaces the plan for a single (weekStart, dayOfWeek)
// slot.
func (s *MealPlanStore) UpsertDay(weekStart string, dayOfWeek int, status model.DayStatus, recipeID *int64, customMealName *string, servings int) (*model.MealPlanDay, error) {
	_, err := s.db.Exec(
		`INSERT INTO meal_plan_days (week_start, day_of_week, status, recipe_id, custom_meal_name, servings)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (week_start, day_of_week) DO UPDATE SET
			status = excluded.status,
			recipe_id = excluded.recipe_id,
			custom_meal_name = excluded.custom_meal_name,
			servings = excluded.servings`,
		weekStart, dayOfWeek, string(status), ptrInt64(recipeID), ptrStr(customMealName), servings,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert day: %w", err)
	}
	return s.GetDay(weekStart, dayOfWeek)
}

func (s *MealPlanStore) GetDay(weekStart string, dayOfWeek int) (*model.MealPlanDay, error) {
	row := s.db.QueryRow(daySelect+` WHERE d.week_start = ? AND d.day_of_week = ?`, weekStart, dayOfWeek)
	d, err := scanDay(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get day: %w", err)
	}
	return d, nil
}

// DeleteDay clears a single day back to unplanned.
func (s *MealPlanStore) DeleteDay(weekStart string, dayOfWeek int) error {
	_, err := s.db.Exec(`DELETE FROM meal_plan_days WHERE week_start = ? AND day_of_week = ?`, weekStart, dayOfWeek)
	if err != nil {
		return fmt.Errorf("delete day: %w", err)
	}
	return nil
}

// CarryForward copies fromWeek's plan into toWeek, skipping days toWeek has
// already planned. Returns the number of days copied.
func (s *MealPlanStore) CarryForward(fromWeek, toWeek string) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO meal_plan_days (week_start, day_of_week, status, recipe_id, custom_meal_name, servings)
		 SELECT ?, day_of_week, status, recipe_id, custom_meal_name, servings
		 FROM meal_plan_days
		 WHERE week_start = ?
		   AND day_of_week NOT IN (SELECT day_of_week FROM meal_plan_days WHERE week_start = ?)`,
		toWeek, fromWeek, toWeek,
	)
	if err != nil {
		return 0, fmt.Errorf("carry forward: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}

// PlannedIngredients flattens the ingredient lists of every PLANNED day
// with a linked recipe for the week, in day then recipe order. This is the
// snapshot grocery generation consumes.
func (s *MealPlanStore) PlannedIngredients(weekStart string) ([]model.RecipeIngredient, error) {
	rows, err := s.db.Query(
		`SELECT ri.id, ri.recipe_id, ri.name, ri.quantity, ri.unit, ri.notes, ri.is_gluten_flag, ri.gf_substitute, ri.sort_order
		 FROM meal_plan_days d
		 JOIN recipe_ingredients ri ON ri.recipe_id = d.recipe_id
		 WHERE d.week_start = ? AND d.status = 'PLANNED' AND d.recipe_id IS NOT NULL
		 ORDER BY d.day_of_week ASC, ri.sort_order ASC`,
		weekStart,
	)
	if err != nil {
		return nil, fmt.Errorf("planned ingredients: %w", err)
	}
	defer rows.Close()

	var ingredients []model.RecipeIngredient
	for rows.Next() {
		var ing model.RecipeIngredient
		var unit, notes, sub sql.NullString
		var flag int
		if err := rows.Scan(&ing.ID, &ing.RecipeID, &ing.Name, &ing.Quantity, &unit, &notes, &flag, &sub, &ing.SortOrder); err != nil {
			return nil, fmt.Errorf("scan planned ingredient: %w", err)
		}
		ing.Unit = nullStr(unit)
		ing.Notes = nullStr(notes)
		ing.GFSubstitute = nullStr(sub)
		ing.IsGlutenFlag = flag != 0
		ingredients = append(ingredients, ing)
	}
	return ingredients, rows.Err()
}

func ptrInt64(p *int64) any {
	if p == nil {
		return nil
	}
	return *p
}
