package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/oxtailbadger/mise/internal/store"
)

type SettingsHandler struct {
	settings *store.SettingsStore
	logger   *slog.Logger
}

func NewSettingsHandler(settings *store.SettingsStore, logger *slog.Logger) *SettingsHandler {
	return &SettingsHandler{settings: settings, logger: logger}
}

// GetHousehold handles GET /api/settings/household. The name personalizes
// headings like "the Nakamura household menu".
func (h *SettingsHandler) GetHousehold(w http.ResponseWriter, r *http.Request) {
	name, err := h.settings.GetHouseholdName()
	if err != nil {
		h.logger.Error("get household name", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load settings")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"name": name})
}

type householdRequest struct {
	Name string `json:"name"`
}

func (h *SettingsHandler) UpdateHousehold(w http.ResponseWriter, r *http.Request) {
	var req householdRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	if err := h.settings.SetHouseholdName(req.Name); err != nil {
		h.logger.Error("set household name", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save settings")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"name": req.Name})
}
