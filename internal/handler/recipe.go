package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/oxtailbadger/mise/internal/model"
	"github.com/oxtailbadger/mise/internal/realtime"
	"github.com/oxtailbadger/mise/internal/store"
)

type RecipeHandler struct {
	recipes *store.RecipeStore
	hub     *realtime.Hub
	logger  *slog.Logger
}

func NewRecipeHandler(recipes *store.RecipeStore, hub *realtime.Hub, logger *slog.Logger) *RecipeHandler {
	return &RecipeHandler{recipes: recipes, hub: hub, logger: logger}
}

// List handles GET /api/recipes with optional filters: search, gf_only,
// favorites, max_time, protein.
func (h *RecipeHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filters := model.RecipeFilters{
		Search:        strings.TrimSpace(q.Get("search")),
		GFOnly:        q.Get("gf_only") == "true",
		FavoritesOnly: q.Get("favorites") == "true",
		Protein:       strings.TrimSpace(q.Get("protein")),
	}
	if s := q.Get("max_time"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "max_time must be a positive number")
			return
		}
		filters.MaxTime = n
	}

	recipes, err := h.recipes.List(filters)
	if err != nil {
		h.logger.Error("list recipes", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list recipes")
		return
	}
	if recipes == nil {
		recipes = []model.Recipe{}
	}
	writeJSON(w, http.StatusOK, recipes)
}

func (h *RecipeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	recipe, err := h.recipes.GetByID(id)
	if err != nil {
		h.logger.Error("get recipe", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get recipe")
		return
	}
	if recipe == nil {
		writeError(w, http.StatusNotFound, "recipe not found")
		return
	}
	writeJSON(w, http.StatusOK, recipe)
}

func (h *RecipeHandler) Create(w http.ResponseWriter, r *http.Request) {
	recipe, ok := h.decodeRecipe(w, r)
	if !ok {
		return
	}

	created, err := h.recipes.Create(*recipe)
	if err != nil {
		h.logger.Error("create recipe", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create recipe")
		return
	}

	h.hub.Broadcast(realtime.NewEvent(realtime.EntityRecipe, realtime.ActionCreated, created.ID))
	writeJSON(w, http.StatusCreated, created)
}

func (h *RecipeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	existing, err := h.recipes.GetByID(id)
	if err != nil {
		h.logger.Error("get recipe", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get recipe")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "recipe not found")
		return
	}

	recipe, ok := h.decodeRecipe(w, r)
	if !ok {
		return
	}

	updated, err := h.recipes.Update(id, *recipe)
	if err != nil {
		h.logger.Error("update recipe", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update recipe")
		return
	}

	h.hub.Broadcast(realtime.NewEvent(realtime.EntityRecipe, realtime.ActionUpdated, id))
	writeJSON(w, http.StatusOK, updated)
}

func (h *RecipeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.recipes.Delete(id); err != nil {
		h.logger.Error("delete recipe", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete recipe")
		return
	}

	h.hub.Broadcast(realtime.NewEvent(realtime.EntityRecipe, realtime.ActionDeleted, id))
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// ToggleFavorite handles POST /api/recipes/{id}/favorite.
func (h *RecipeHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	favorite, err := h.recipes.ToggleFavorite(id)
	if err != nil {
		h.logger.Error("toggle favorite", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to toggle favorite")
		return
	}
	if favorite == nil {
		writeError(w, http.StatusNotFound, "recipe not found")
		return
	}

	h.hub.Broadcast(realtime.NewEvent(realtime.EntityRecipe, realtime.ActionUpdated, id))
	writeJSON(w, http.StatusOK, map[string]bool{"favorite": *favorite})
}

// decodeRecipe reads and validates a recipe body, answering the error
// response itself when the payload is unusable.
func (h *RecipeHandler) decodeRecipe(w http.ResponseWriter, r *http.Request) (*model.Recipe, bool) {
	var recipe model.Recipe
	if err := json.NewDecoder(r.Body).Decode(&recipe); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return nil, false
	}

	recipe.Name = strings.TrimSpace(recipe.Name)
	if recipe.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return nil, false
	}
	if recipe.Servings <= 0 {
		recipe.Servings = 2
	}
	if recipe.GFStatus == "" {
		recipe.GFStatus = model.GFNeedsReview
	}
	switch recipe.GFStatus {
	case model.GFConfirmed, model.GFContainsGluten, model.GFNeedsReview:
	default:
		writeError(w, http.StatusBadRequest, "invalid gf_status")
		return nil, false
	}
	for i := range recipe.Ingredients {
		recipe.Ingredients[i].Name = strings.TrimSpace(recipe.Ingredients[i].Name)
		if recipe.Ingredients[i].Name == "" {
			writeError(w, http.StatusBadRequest, "ingredient name is required")
			return nil, false
		}
		recipe.Ingredients[i].SortOrder = i
	}
	return &recipe, true
}
