package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/oxtailbadger/mise/internal/model"
	"github.com/oxtailbadger/mise/internal/realtime"
	"github.com/oxtailbadger/mise/internal/store"
)

type PantryHandler struct {
	pantry *store.PantryStore
	hub    *realtime.Hub
	logger *slog.Logger
}

func NewPantryHandler(pantry *store.PantryStore, hub *realtime.Hub, logger *slog.Logger) *PantryHandler {
	return &PantryHandler{pantry: pantry, hub: hub, logger: logger}
}

func (h *PantryHandler) List(w http.ResponseWriter, r *http.Request) {
	staples, err := h.pantry.List()
	if err != nil {
		h.logger.Error("list pantry", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list pantry staples")
		return
	}
	if staples == nil {
		staples = []model.PantryStaple{}
	}
	writeJSON(w, http.StatusOK, staples)
}

type addStapleRequest struct {
	Name string `json:"name"`
}

func (h *PantryHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req addStapleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	staple, err := h.pantry.Add(req.Name)
	if err != nil {
		h.logger.Error("add pantry staple", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to add staple")
		return
	}

	h.hub.Broadcast(realtime.NewEvent(realtime.EntityPantry, realtime.ActionCreated, staple.ID))
	writeJSON(w, http.StatusCreated, staple)
}

func (h *PantryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.pantry.Delete(id); err != nil {
		h.logger.Error("delete pantry staple", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete staple")
		return
	}

	h.hub.Broadcast(realtime.NewEvent(realtime.EntityPantry, realtime.ActionDeleted, id))
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Seed handles POST /api/pantry/seed, loading the starter staple set.
// Already-present staples are left alone, so it is safe to call twice.
func (h *PantryHandler) Seed(w http.ResponseWriter, r *http.Request) {
	added, err := h.pantry.Seed(store.DefaultStaples)
	if err != nil {
		h.logger.Error("seed pantry", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to seed pantry")
		return
	}

	if added > 0 {
		h.hub.Broadcast(realtime.NewEvent(realtime.EntityPantry, realtime.ActionCreated, 0))
	}
	writeJSON(w, http.StatusOK, map[string]int64{"added": added})
}
