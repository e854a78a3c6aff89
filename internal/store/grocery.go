package store

import (
	"database/sql"
	"fmt"

	"github.com/oxtailbadger/mise/internal/model"
)

type GroceryStore struct {
	db *sql.DB
}

func NewGroceryStore(db *sql.DB) *GroceryStore {
	return &GroceryStore{db: db}
}

const itemCols = `id, list_id, name, quantity, unit, category, is_pantry_check, is_manual, is_quick_trip, is_checked, sort_order`

// itemOrder sorts for display: pantry-check items first, then category in
// store-walk order (not lexical), then generation order.
const itemOrder = `ORDER BY is_pantry_check DESC,
	CASE category
		WHEN 'PRODUCE' THEN 0
		WHEN 'PROTEIN' THEN 1
		WHEN 'DAIRY' THEN 2
		WHEN 'DRY_GOODS' THEN 3
		WHEN 'CANNED' THEN 4
		ELSE 5
	END ASC,
	sort_order ASC`

func scanGroceryItem(scanner interface{ Scan(...any) error }) (*model.GroceryItem, error) {
	var item model.GroceryItem
	var quantity, unit sql.NullString
	var pantryCheck, manual, quickTrip, checked int

	err := scanner.Scan(
		&item.ID, &item.ListID, &item.Name, &quantity, &unit, &item.Category,
		&pantryCheck, &manual, &quickTrip, &checked, &item.SortOrder,
	)
	if err != nil {
		return nil, err
	}

	item.Quantity = nullStr(quantity)
	item.Unit = nullStr(unit)
	item.IsPantryCheck = pantryCheck != 0
	item.IsManual = manual != 0
	item.IsQuickTrip = quickTrip != 0
	item.IsChecked = checked != 0
	return &item, nil
}

// GetListByWeek returns the list row for a week without items, or nil.
func (s *GroceryStore) GetListByWeek(weekStart string) (*model.GroceryList, error) {
	var l model.GroceryList
	row := s.db.QueryRow(`SELECT id, week_start, created_at FROM grocery_lists WHERE week_start = ?`, weekStart)
	err := row.Scan(&l.ID, &l.WeekStart, &l.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get list: %w", err)
	}
	return &l, nil
}

// GetListWithItems returns the week's list with its items in display order,
// or nil when no list exists.
func (s *GroceryStore) GetListWithItems(weekStart string) (*model.GroceryList, error) {
	list, err := s.GetListByWeek(weekStart)
	if err != nil || list == nil {
		return list, err
	}

	items, err := s.ListItems(list.ID)
	if err != nil {
		return nil, err
	}
	list.Items = items
	return list, nil
}

func (s *GroceryStore) ListItems(listID int64) ([]model.GroceryItem, error) {
	rows, err := s.db.Query(`SELECT `+itemCols+` FROM grocery_items WHERE list_id = ? `+itemOrder, listID)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	items := []model.GroceryItem{}
	for rows.Next() {
		item, err := scanGroceryItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

// CreateListWithItems creates the week's list and its initial auto-generated
// items in one transaction.
func (s *GroceryStore) CreateListWithItems(weekStart string, items []model.GroceryItem) (*model.GroceryList, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(`INSERT INTO grocery_lists (week_start) VALUES (?)`, weekStart)
	if err != nil {
		return nil, fmt.Errorf("insert list: %w", err)
	}
	listID, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	if err := insertItems(tx, listID, items); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return s.GetListWithItems(weekStart)
}

// ReplaceAutoItems deletes every non-manual item on the list and inserts
// the freshly generated set, atomically. Manual items are never touched; a
// failure part-way leaves the previous item set intact.
func (s *GroceryStore) ReplaceAutoItems(listID int64, items []model.GroceryItem) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM grocery_items WHERE list_id = ? AND is_manual = 0`, listID); err != nil {
		return fmt.Errorf("delete auto items: %w", err)
	}

	if err := insertItems(tx, listID, items); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func insertItems(tx *sql.Tx, listID int64, items []model.GroceryItem) error {
	for _, item := range items {
		_, err := tx.Exec(
			`INSERT INTO grocery_items (list_id, name, quantity, unit, category, is_pantry_check, is_manual, is_quick_trip, is_checked, sort_order)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			listID, item.Name, ptrStr(item.Quantity), ptrStr(item.Unit), string(item.Category),
			boolInt(item.IsPantryCheck), boolInt(item.IsManual), boolInt(item.IsQuickTrip), boolInt(item.IsChecked), item.SortOrder,
		)
		if err != nil {
			return fmt.Errorf("insert item: %w", err)
		}
	}
	return nil
}

// DeleteListByWeek removes the entire list and, via cascade, its items.
func (s *GroceryStore) DeleteListByWeek(weekStart string) error {
	_, err := s.db.Exec(`DELETE FROM grocery_lists WHERE week_start = ?`, weekStart)
	if err != nil {
		return fmt.Errorf("delete list: %w", err)
	}
	return nil
}

func (s *GroceryStore) GetItemByID(id int64) (*model.GroceryItem, error) {
	row := s.db.QueryRow(`SELECT `+itemCols+` FROM grocery_items WHERE id = ?`, id)
	item, err := scanGroceryItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

// CreateManualItem appends a user-added item at the end of the list's sort
// order. Manual items survive regeneration.
func (s *GroceryStore) CreateManualItem(listID int64, name string, qty, unit *string, category model.ItemCategory, isQuickTrip bool) (*model.GroceryItem, error) {
	var next int
	err := s.db.QueryRow(`SELECT COALESCE(MAX(sort_order), -1) + 1 FROM grocery_items WHERE list_id = ?`, listID).Scan(&next)
	if err != nil {
		return nil, fmt.Errorf("next sort order: %w", err)
	}

	result, err := s.db.Exec(
		`INSERT INTO grocery_items (list_id, name, quantity, unit, category, is_pantry_check, is_manual, is_quick_trip, is_checked, sort_order)
		 VALUES (?, ?, ?, ?, ?, 0, 1, ?, 0, ?)`,
		listID, name, ptrStr(qty), ptrStr(unit), string(category), boolInt(isQuickTrip), next,
	)
	if err != nil {
		return nil, fmt.Errorf("insert manual item: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetItemByID(id)
}

// ItemUpdate carries the PATCH-able item fields; nil means leave unchanged.
type ItemUpdate struct {
	Name      *string
	Quantity  **string
	Unit      **string
	IsChecked *bool
}

// Empty reports whether the update would change nothing.
func (u ItemUpdate) Empty() bool {
	return u.Name == nil && u.Quantity == nil && u.Unit == nil && u.IsChecked == nil
}

func (s *GroceryStore) UpdateItem(id int64, u ItemUpdate) (*model.GroceryItem, error) {
	item, err := s.GetItemByID(id)
	if err != nil || item == nil {
		return item, err
	}

	if u.Name != nil {
		item.Name = *u.Name
	}
	if u.Quantity != nil {
		item.Quantity = *u.Quantity
	}
	if u.Unit != nil {
		item.Unit = *u.Unit
	}
	if u.IsChecked != nil {
		item.IsChecked = *u.IsChecked
	}

	_, err = s.db.Exec(
		`UPDATE grocery_items SET name = ?, quantity = ?, unit = ?, is_checked = ? WHERE id = ?`,
		item.Name, ptrStr(item.Quantity), ptrStr(item.Unit), boolInt(item.IsChecked), id,
	)
	if err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}
	return s.GetItemByID(id)
}

func (s *GroceryStore) DeleteItem(id int64) error {
	_, err := s.db.Exec(`DELETE FROM grocery_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

// ClearChecked deletes every checked item on the list and returns the count.
func (s *GroceryStore) ClearChecked(listID int64) (int64, error) {
	result, err := s.db.Exec(`DELETE FROM grocery_items WHERE list_id = ? AND is_checked = 1`, listID)
	if err != nil {
		return 0, fmt.Errorf("clear checked: %w", err)
	}
	count, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return count, nil
}
