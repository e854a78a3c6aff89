package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/oxtailbadger/mise/internal/grocery"
	"github.com/oxtailbadger/mise/internal/model"
	"github.com/oxtailbadger/mise/internal/realtime"
	"github.com/oxtailbadger/mise/internal/store"
	"github.com/oxtailbadger/mise/internal/week"
)

type GroceryHandler struct {
	groceries  *store.GroceryStore
	generator  *grocery.Generator
	classifier *grocery.Classifier
	hub        *realtime.Hub
	logger     *slog.Logger
}

func NewGroceryHandler(groceries *store.GroceryStore, generator *grocery.Generator, classifier *grocery.Classifier, hub *realtime.Hub, logger *slog.Logger) *GroceryHandler {
	return &GroceryHandler{
		groceries:  groceries,
		generator:  generator,
		classifier: classifier,
		hub:        hub,
		logger:     logger,
	}
}

// GetList handles GET /api/grocery?week_start=YYYY-MM-DD. Responds null
// when the week has no list yet.
func (h *GroceryHandler) GetList(w http.ResponseWriter, r *http.Request) {
	ws, ok := weekStartParam(w, r)
	if !ok {
		return
	}

	list, err := h.groceries.GetListWithItems(ws)
	if err != nil {
		h.logger.Error("get grocery list", "week_start", ws, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load grocery list")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

type generateRequest struct {
	WeekStart string `json:"week_start"`
}

// Generate handles POST /api/grocery/generate, building or rebuilding the
// week's list from its meal plan. Manual items survive; auto items are
// replaced wholesale.
func (h *GroceryHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if _, err := week.ParseWeekStart(req.WeekStart); err != nil {
		writeError(w, http.StatusBadRequest, "week_start must be a Monday in YYYY-MM-DD form")
		return
	}

	list, err := h.generator.Generate(req.WeekStart)
	if err != nil {
		h.logger.Error("generate grocery list", "week_start", req.WeekStart, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to generate grocery list")
		return
	}

	h.hub.Broadcast(realtime.WeekEvent(realtime.EntityGroceryList, realtime.ActionGenerated, req.WeekStart, list.ID))
	writeJSON(w, http.StatusOK, list)
}

// DeleteList handles DELETE /api/grocery?week_start=YYYY-MM-DD.
func (h *GroceryHandler) DeleteList(w http.ResponseWriter, r *http.Request) {
	ws, ok := weekStartParam(w, r)
	if !ok {
		return
	}

	if err := h.groceries.DeleteListByWeek(ws); err != nil {
		h.logger.Error("delete grocery list", "week_start", ws, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete grocery list")
		return
	}

	h.hub.Broadcast(realtime.WeekEvent(realtime.EntityGroceryList, realtime.ActionDeleted, ws, 0))
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type createItemRequest struct {
	ListID      int64   `json:"list_id"`
	Name        string  `json:"name"`
	Quantity    *string `json:"quantity"`
	Unit        *string `json:"unit"`
	Category    string  `json:"category"`
	IsQuickTrip bool    `json:"is_quick_trip"`
}

// CreateItem handles POST /api/grocery/items, adding a manual item to an
// existing list. Category falls back to keyword detection on the name.
func (h *GroceryHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var req createItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.ListID == 0 || req.Name == "" {
		writeError(w, http.StatusBadRequest, "list_id and name are required")
		return
	}

	category := model.ItemCategory(req.Category)
	if req.Category == "" {
		category = h.classifier.Detect(req.Name)
	} else if !validCategory(category) {
		writeError(w, http.StatusBadRequest, "invalid category")
		return
	}

	item, err := h.groceries.CreateManualItem(req.ListID, req.Name, trimPtr(req.Quantity), trimPtr(req.Unit), category, req.IsQuickTrip)
	if err != nil {
		h.logger.Error("create grocery item", "list_id", req.ListID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create item")
		return
	}

	h.hub.Broadcast(realtime.NewEvent(realtime.EntityGroceryItem, realtime.ActionCreated, item.ID))
	writeJSON(w, http.StatusCreated, item)
}

// UpdateItem handles PATCH /api/grocery/items/{id}. Only fields present in
// the body change; quantity and unit may be set to null explicitly.
func (h *GroceryHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	update, err := buildItemUpdate(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if update.Empty() {
		writeError(w, http.StatusBadRequest, "no valid fields to update")
		return
	}

	item, err := h.groceries.UpdateItem(id, update)
	if err != nil {
		h.logger.Error("update grocery item", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update item")
		return
	}
	if item == nil {
		writeError(w, http.StatusNotFound, "item not found")
		return
	}

	h.hub.Broadcast(realtime.NewEvent(realtime.EntityGroceryItem, realtime.ActionUpdated, id))
	writeJSON(w, http.StatusOK, item)
}

// DeleteItem handles DELETE /api/grocery/items/{id}.
func (h *GroceryHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.groceries.DeleteItem(id); err != nil {
		h.logger.Error("delete grocery item", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete item")
		return
	}

	h.hub.Broadcast(realtime.NewEvent(realtime.EntityGroceryItem, realtime.ActionDeleted, id))
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type clearCheckedRequest struct {
	ListID int64 `json:"list_id"`
}

// ClearChecked handles POST /api/grocery/clear-checked, deleting every
// checked-off item on the list.
func (h *GroceryHandler) ClearChecked(w http.ResponseWriter, r *http.Request) {
	var req clearCheckedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.ListID == 0 {
		writeError(w, http.StatusBadRequest, "list_id is required")
		return
	}

	deleted, err := h.groceries.ClearChecked(req.ListID)
	if err != nil {
		h.logger.Error("clear checked items", "list_id", req.ListID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to clear checked items")
		return
	}

	h.hub.Broadcast(realtime.NewEvent(realtime.EntityGroceryList, realtime.ActionUpdated, req.ListID))
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "deleted": deleted})
}

func validCategory(c model.ItemCategory) bool {
	for _, cat := range model.CategoryOrder {
		if c == cat {
			return true
		}
	}
	return false
}

func trimPtr(p *string) *string {
	if p == nil {
		return nil
	}
	s := strings.TrimSpace(*p)
	if s == "" {
		return nil
	}
	return &s
}
