package store

import (
	"database/sql"
	"testing"

	"github.com/oxtailbadger/mise/internal/database"
	"github.com/oxtailbadger/mise/internal/model"
)

func setupGroceryTestDB(t *testing.T) (*GroceryStore, *sql.DB) {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("enable foreign keys: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewGroceryStore(db), db
}

func autoItem(name string, category model.ItemCategory, sortOrder int) model.GroceryItem {
	return model.GroceryItem{Name: name, Category: category, SortOrder: sortOrder}
}

const groceryWeek = "2026-03-02"

func TestCreateListWithItems(t *testing.T) {
	gs, _ := setupGroceryTestDB(t)

	list, err := gs.CreateListWithItems(groceryWeek, []model.GroceryItem{
		autoItem("spinach", model.CategoryProduce, 0),
		autoItem("chicken", model.CategoryProtein, 1),
	})
	if err != nil {
		t.Fatalf("create list: %v", err)
	}
	if list.WeekStart != groceryWeek {
		t.Errorf("week_start = %q", list.WeekStart)
	}
	if len(list.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(list.Items))
	}

	again, err := gs.GetListWithItems(groceryWeek)
	if err != nil {
		t.Fatalf("get list: %v", err)
	}
	if again == nil || again.ID != list.ID {
		t.Fatal("lookup by week did not return the created list")
	}
}

func TestGetListByWeekMissing(t *testing.T) {
	gs, _ := setupGroceryTestDB(t)

	list, err := gs.GetListByWeek("2026-01-05")
	if err != nil {
		t.Fatalf("get list: %v", err)
	}
	if list != nil {
		t.Fatal("expected nil for missing week")
	}
}

func TestListItemsDisplayOrder(t *testing.T) {
	gs, _ := setupGroceryTestDB(t)

	flour := autoItem("flour", model.CategoryDryGoods, 0)
	beef := autoItem("beef", model.CategoryProtein, 1)
	kale := autoItem("kale", model.CategoryProduce, 2)
	oil := autoItem("olive oil", model.CategoryDryGoods, 3)
	oil.IsPantryCheck = true

	list, err := gs.CreateListWithItems(groceryWeek, []model.GroceryItem{flour, beef, kale, oil})
	if err != nil {
		t.Fatalf("create list: %v", err)
	}

	want := []string{"olive oil", "kale", "beef", "flour"}
	for i, name := range want {
		if list.Items[i].Name != name {
			t.Errorf("items[%d] = %q, want %q", i, list.Items[i].Name, name)
		}
	}
}

func TestReplaceAutoItemsKeepsManual(t *testing.T) {
	gs, _ := setupGroceryTestDB(t)

	list, err := gs.CreateListWithItems(groceryWeek, []model.GroceryItem{
		autoItem("old auto", model.CategoryOther, 0),
	})
	if err != nil {
		t.Fatalf("create list: %v", err)
	}
	manual, err := gs.CreateManualItem(list.ID, "batteries", nil, nil, model.CategoryOther, true)
	if err != nil {
		t.Fatalf("create manual: %v", err)
	}
	if !manual.IsManual || !manual.IsQuickTrip {
		t.Fatalf("manual item flags wrong: %+v", manual)
	}

	err = gs.ReplaceAutoItems(list.ID, []model.GroceryItem{
		autoItem("new auto", model.CategoryProduce, 0),
	})
	if err != nil {
		t.Fatalf("replace: %v", err)
	}

	items, err := gs.ListItems(list.ID)
	if err != nil {
		t.Fatalf("list items: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	names := map[string]bool{}
	for _, item := range items {
		names[item.Name] = true
	}
	if !names["new auto"] || !names["batteries"] {
		t.Errorf("unexpected item set: %v", names)
	}
	if names["old auto"] {
		t.Error("old auto item should have been replaced")
	}
}

func TestReplaceAutoItemsRollsBackOnFailure(t *testing.T) {
	gs, _ := setupGroceryTestDB(t)

	list, err := gs.CreateListWithItems(groceryWeek, []model.GroceryItem{
		autoItem("keep me", model.CategoryProduce, 0),
	})
	if err != nil {
		t.Fatalf("create list: %v", err)
	}

	// The second item violates the category CHECK constraint, so the whole
	// replace (including the delete) must roll back.
	err = gs.ReplaceAutoItems(list.ID, []model.GroceryItem{
		autoItem("fine", model.CategoryProduce, 0),
		autoItem("broken", model.ItemCategory("NOT_A_CATEGORY"), 1),
	})
	if err == nil {
		t.Fatal("expected constraint error")
	}

	items, err := gs.ListItems(list.ID)
	if err != nil {
		t.Fatalf("list items: %v", err)
	}
	if len(items) != 1 || items[0].Name != "keep me" {
		t.Fatalf("previous item set not preserved: %+v", items)
	}
}

func TestUpdateItem(t *testing.T) {
	gs, _ := setupGroceryTestDB(t)

	list, err := gs.CreateListWithItems(groceryWeek, nil)
	if err != nil {
		t.Fatalf("create list: %v", err)
	}
	item, err := gs.CreateManualItem(list.ID, "milk", sp("1"), sp("gallon"), model.CategoryDairy, false)
	if err != nil {
		t.Fatalf("create item: %v", err)
	}

	checked := true
	newName := "whole milk"
	got, err := gs.UpdateItem(item.ID, ItemUpdate{Name: &newName, IsChecked: &checked})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Name != "whole milk" || !got.IsChecked {
		t.Errorf("update not applied: %+v", got)
	}
	if got.Quantity == nil || *got.Quantity != "1" {
		t.Errorf("untouched quantity changed: %v", got.Quantity)
	}

	// A double pointer distinguishes "clear the field" from "leave it alone".
	var noQty *string
	got, err = gs.UpdateItem(item.ID, ItemUpdate{Quantity: &noQty})
	if err != nil {
		t.Fatalf("clear quantity: %v", err)
	}
	if got.Quantity != nil {
		t.Errorf("quantity should be cleared, got %v", *got.Quantity)
	}
	if got.Name != "whole milk" {
		t.Errorf("name should be untouched, got %q", got.Name)
	}
}

func TestUpdateItemMissing(t *testing.T) {
	gs, _ := setupGroceryTestDB(t)

	checked := true
	got, err := gs.UpdateItem(999, ItemUpdate{IsChecked: &checked})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got != nil {
		t.Fatal("expected nil for missing item")
	}
}

func TestItemUpdateEmpty(t *testing.T) {
	if !(ItemUpdate{}).Empty() {
		t.Error("zero update should be empty")
	}
	name := "x"
	if (ItemUpdate{Name: &name}).Empty() {
		t.Error("update with a field should not be empty")
	}
}

func TestClearChecked(t *testing.T) {
	gs, _ := setupGroceryTestDB(t)

	list, err := gs.CreateListWithItems(groceryWeek, []model.GroceryItem{
		autoItem("a", model.CategoryProduce, 0),
		autoItem("b", model.CategoryProduce, 1),
		autoItem("c", model.CategoryProduce, 2),
	})
	if err != nil {
		t.Fatalf("create list: %v", err)
	}

	checked := true
	for _, item := range list.Items[:2] {
		if _, err := gs.UpdateItem(item.ID, ItemUpdate{IsChecked: &checked}); err != nil {
			t.Fatalf("check item: %v", err)
		}
	}

	n, err := gs.ClearChecked(list.ID)
	if err != nil {
		t.Fatalf("clear checked: %v", err)
	}
	if n != 2 {
		t.Errorf("cleared %d items, want 2", n)
	}

	items, err := gs.ListItems(list.ID)
	if err != nil {
		t.Fatalf("list items: %v", err)
	}
	if len(items) != 1 || items[0].Name != "c" {
		t.Fatalf("unexpected remaining items: %+v", items)
	}
}

func TestDeleteListByWeekCascades(t *testing.T) {
	gs, db := setupGroceryTestDB(t)

	list, err := gs.CreateListWithItems(groceryWeek, []model.GroceryItem{
		autoItem("a", model.CategoryProduce, 0),
	})
	if err != nil {
		t.Fatalf("create list: %v", err)
	}

	if err := gs.DeleteListByWeek(groceryWeek); err != nil {
		t.Fatalf("delete list: %v", err)
	}

	gone, err := gs.GetListByWeek(groceryWeek)
	if err != nil {
		t.Fatalf("get list: %v", err)
	}
	if gone != nil {
		t.Fatal("list should be gone")
	}

	var orphans int
	if err := db.QueryRow(`SELECT COUNT(*) FROM grocery_items WHERE list_id = ?`, list.ID).Scan(&orphans); err != nil {
		t.Fatalf("count orphans: %v", err)
	}
	if orphans != 0 {
		t.Errorf("expected cascade delete, found %d orphaned items", orphans)
	}
}
