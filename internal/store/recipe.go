package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/oxtailbadger/mise/internal/model"
)

type RecipeStore struct {
	db *sql.DB
}

func NewRecipeStore(db *sql.DB) *RecipeStore {
	return &RecipeStore{db: db}
}

const recipeCols = `id, name, source_url, total_time, active_cook_time, pots_and_pans, servings, instructions, gf_status, gf_notes, notes, favorite, created_at`

func scanRecipe(scanner interface{ Scan(...any) error }) (*model.Recipe, error) {
	var r model.Recipe
	var sourceURL, gfNotes, notes sql.NullString
	var totalTime, activeCookTime, potsAndPans sql.NullInt64
	var favorite int

	err := scanner.Scan(
		&r.ID, &r.Name, &sourceURL, &totalTime, &activeCookTime, &potsAndPans,
		&r.Servings, &r.Instructions, &r.GFStatus, &gfNotes, &notes, &favorite,
		&r.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	r.SourceURL = nullStr(sourceURL)
	r.GFNotes = nullStr(gfNotes)
	r.Notes = nullStr(notes)
	r.TotalTime = nullInt(totalTime)
	r.ActiveCookTime = nullInt(activeCookTime)
	r.PotsAndPans = nullInt(potsAndPans)
	r.Favorite = favorite != 0
	return &r, nil
}

// List returns recipes matching the filters, favorites first then newest.
// Search matches the recipe name or any ingredient name.
func (s *RecipeStore) List(f model.RecipeFilters) ([]model.Recipe, error) {
	var conds []string
	var args []any

	if f.Search != "" {
		conds = append(conds, `(name LIKE '%' || ? || '%' OR id IN (SELECT recipe_id FROM recipe_ingredients WHERE name LIKE '%' || ? || '%'))`)
		args = append(args, f.Search, f.Search)
	}
	if f.GFOnly {
		conds = append(conds, `gf_status = ?`)
		args = append(args, string(model.GFConfirmed))
	}
	if f.FavoritesOnly {
		conds = append(conds, `favorite = 1`)
	}
	if f.MaxTime > 0 {
		conds = append(conds, `total_time IS NOT NULL AND total_time <= ?`)
		args = append(args, f.MaxTime)
	}
	if f.Protein != "" {
		conds = append(conds, `id IN (SELECT recipe_id FROM recipe_tags WHERE type = 'PROTEIN' AND value LIKE '%' || ? || '%')`)
		args = append(args, f.Protein)
	}

	query := `SELECT ` + recipeCols + ` FROM recipes`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, ` AND `)
	}
	query += ` ORDER BY favorite DESC, created_at DESC, id DESC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	defer rows.Close()

	var recipes []model.Recipe
	for rows.Next() {
		r, err := scanRecipe(rows)
		if err != nil {
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		recipes = append(recipes, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range recipes {
		if err := s.loadDetails(&recipes[i]); err != nil {
			return nil, err
		}
	}
	return recipes, nil
}

func (s *RecipeStore) GetByID(id int64) (*model.Recipe, error) {
	row := s.db.QueryRow(`SELECT `+recipeCols+` FROM recipes WHERE id = ?`, id)
	r, err := scanRecipe(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get recipe: %w", err)
	}
	if err := s.loadDetails(r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *RecipeStore) loadDetails(r *model.Recipe) error {
	rows, err := s.db.Query(
		`SELECT id, recipe_id, name, quantity, unit, notes, is_gluten_flag, gf_substitute, sort_order
		 FROM recipe_ingredients WHERE recipe_id = ? ORDER BY sort_order ASC`, r.ID)
	if err != nil {
		return fmt.Errorf("list ingredients: %w", err)
	}
	defer rows.Close()

	r.Ingredients = []model.RecipeIngredient{}
	for rows.Next() {
		var ing model.RecipeIngredient
		var unit, notes, sub sql.NullString
		var flag int
		if err := rows.Scan(&ing.ID, &ing.RecipeID, &ing.Name, &ing.Quantity, &unit, &notes, &flag, &sub, &ing.SortOrder); err != nil {
			return fmt.Errorf("scan ingredient: %w", err)
		}
		ing.Unit = nullStr(unit)
		ing.Notes = nullStr(notes)
		ing.GFSubstitute = nullStr(sub)
		ing.IsGlutenFlag = flag != 0
		r.Ingredients = append(r.Ingredients, ing)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	tagRows, err := s.db.Query(`SELECT id, recipe_id, type, value FROM recipe_tags WHERE recipe_id = ?`, r.ID)
	if err != nil {
		return fmt.Errorf("list tags: %w", err)
	}
	defer tagRows.Close()

	r.Tags = []model.RecipeTag{}
	for tagRows.Next() {
		var t model.RecipeTag
		if err := tagRows.Scan(&t.ID, &t.RecipeID, &t.Type, &t.Value); err != nil {
			return fmt.Errorf("scan tag: %w", err)
		}
		r.Tags = append(r.Tags, t)
	}
	return tagRows.Err()
}

// Create inserts a recipe and its ingredient and tag rows in one transaction.
func (s *RecipeStore) Create(r model.Recipe) (*model.Recipe, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(
		`INSERT INTO recipes (name, source_url, total_time, active_cook_time, pots_and_pans, servings, instructions, gf_status, gf_notes, notes, favorite)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Name, ptrStr(r.SourceURL), ptrInt(r.TotalTime), ptrInt(r.ActiveCookTime), ptrInt(r.PotsAndPans),
		r.Servings, r.Instructions, string(r.GFStatus), ptrStr(r.GFNotes), ptrStr(r.Notes), boolInt(r.Favorite),
	)
	if err != nil {
		return nil, fmt.Errorf("insert recipe: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	if err := insertDetails(tx, id, r.Ingredients, r.Tags); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return s.GetByID(id)
}

// Update rewrites the recipe row and fully replaces its ingredients and
// tags, all in one transaction.
func (s *RecipeStore) Update(id int64, r model.Recipe) (*model.Recipe, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`UPDATE recipes SET name = ?, source_url = ?, total_time = ?, active_cook_time = ?, pots_and_pans = ?,
		 servings = ?, instructions = ?, gf_status = ?, gf_notes = ?, notes = ?, favorite = ? WHERE id = ?`,
		r.Name, ptrStr(r.SourceURL), ptrInt(r.TotalTime), ptrInt(r.ActiveCookTime), ptrInt(r.PotsAndPans),
		r.Servings, r.Instructions, string(r.GFStatus), ptrStr(r.GFNotes), ptrStr(r.Notes), boolInt(r.Favorite), id,
	)
	if err != nil {
		return nil, fmt.Errorf("update recipe: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM recipe_ingredients WHERE recipe_id = ?`, id); err != nil {
		return nil, fmt.Errorf("delete ingredients: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM recipe_tags WHERE recipe_id = ?`, id); err != nil {
		return nil, fmt.Errorf("delete tags: %w", err)
	}

	if err := insertDetails(tx, id, r.Ingredients, r.Tags); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return s.GetByID(id)
}

func insertDetails(tx *sql.Tx, recipeID int64, ingredients []model.RecipeIngredient, tags []model.RecipeTag) error {
	for i, ing := range ingredients {
		_, err := tx.Exec(
			`INSERT INTO recipe_ingredients (recipe_id, name, quantity, unit, notes, is_gluten_flag, gf_substitute, sort_order)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			recipeID, ing.Name, ing.Quantity, ptrStr(ing.Unit), ptrStr(ing.Notes), boolInt(ing.IsGlutenFlag), ptrStr(ing.GFSubstitute), i,
		)
		if err != nil {
			return fmt.Errorf("insert ingredient: %w", err)
		}
	}
	for _, t := range tags {
		if _, err := tx.Exec(`INSERT INTO recipe_tags (recipe_id, type, value) VALUES (?, ?, ?)`, recipeID, string(t.Type), t.Value); err != nil {
			return fmt.Errorf("insert tag: %w", err)
		}
	}
	return nil
}

func (s *RecipeStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM recipes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}
	return nil
}

// ToggleFavorite flips the favorite bit and returns the new value, or nil
// if the recipe does not exist.
func (s *RecipeStore) ToggleFavorite(id int64) (*bool, error) {
	result, err := s.db.Exec(`UPDATE recipes SET favorite = NOT favorite WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("toggle favorite: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return nil, nil
	}

	var favorite int
	if err := s.db.QueryRow(`SELECT favorite FROM recipes WHERE id = ?`, id).Scan(&favorite); err != nil {
		return nil, fmt.Errorf("read favorite: %w", err)
	}
	fav := favorite != 0
	return &fav, nil
}

// --- nullable column helpers shared across stores ---

func nullStr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func nullInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}

func ptrStr(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

func ptrInt(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
