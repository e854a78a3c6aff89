package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/oxtailbadger/mise/internal/model"
	"github.com/oxtailbadger/mise/internal/realtime"
	"github.com/oxtailbadger/mise/internal/store"
	"github.com/oxtailbadger/mise/internal/week"
)

type MealPlanHandler struct {
	plans  *store.MealPlanStore
	hub    *realtime.Hub
	logger *slog.Logger
}

func NewMealPlanHandler(plans *store.MealPlanStore, hub *realtime.Hub, logger *slog.Logger) *MealPlanHandler {
	return &MealPlanHandler{plans: plans, hub: hub, logger: logger}
}

// weekStartParam reads and validates the week_start query parameter,
// answering the error response itself on failure.
func weekStartParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	ws := r.URL.Query().Get("week_start")
	if ws == "" {
		writeError(w, http.StatusBadRequest, "week_start is required")
		return "", false
	}
	if _, err := week.ParseWeekStart(ws); err != nil {
		writeError(w, http.StatusBadRequest, "week_start must be a Monday in YYYY-MM-DD form")
		return "", false
	}
	return ws, true
}

// ListWeek handles GET /api/meal-plan?week_start=YYYY-MM-DD.
func (h *MealPlanHandler) ListWeek(w http.ResponseWriter, r *http.Request) {
	ws, ok := weekStartParam(w, r)
	if !ok {
		return
	}

	days, err := h.plans.ListWeek(ws)
	if err != nil {
		h.logger.Error("list week", "week_start", ws, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load meal plan")
		return
	}
	if days == nil {
		days = []model.MealPlanDay{}
	}
	writeJSON(w, http.StatusOK, days)
}

type upsertDayRequest struct {
	WeekStart      string  `json:"week_start"`
	DayOfWeek      *int    `json:"day_of_week"`
	Status         string  `json:"status"`
	RecipeID       *int64  `json:"recipe_id"`
	CustomMealName *string `json:"custom_meal_name"`
	Servings       int     `json:"servings"`
}

// UpsertDay handles PUT /api/meal-plan, creating or replacing one day slot.
func (h *MealPlanHandler) UpsertDay(w http.ResponseWriter, r *http.Request) {
	var req upsertDayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.WeekStart == "" || req.DayOfWeek == nil || req.Status == "" {
		writeError(w, http.StatusBadRequest, "week_start, day_of_week, and status are required")
		return
	}
	if _, err := week.ParseWeekStart(req.WeekStart); err != nil {
		writeError(w, http.StatusBadRequest, "week_start must be a Monday in YYYY-MM-DD form")
		return
	}
	if *req.DayOfWeek < 0 || *req.DayOfWeek > 6 {
		writeError(w, http.StatusBadRequest, "day_of_week must be 0 through 6")
		return
	}
	status := model.DayStatus(req.Status)
	switch status {
	case model.DayPlanned, model.DayEatingOut, model.DayLeftovers, model.DaySkipped:
	default:
		writeError(w, http.StatusBadRequest, "invalid status")
		return
	}
	if req.Servings <= 0 {
		req.Servings = 2
	}

	day, err := h.plans.UpsertDay(req.WeekStart, *req.DayOfWeek, status, req.RecipeID, req.CustomMealName, req.Servings)
	if err != nil {
		h.logger.Error("upsert day", "week_start", req.WeekStart, "day", *req.DayOfWeek, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save day")
		return
	}

	h.hub.Broadcast(realtime.WeekEvent(realtime.EntityMealPlan, realtime.ActionUpdated, req.WeekStart, day.ID))
	writeJSON(w, http.StatusOK, day)
}

// DeleteDay handles DELETE /api/meal-plan?week_start=...&day_of_week=N,
// clearing the slot back to unplanned.
func (h *MealPlanHandler) DeleteDay(w http.ResponseWriter, r *http.Request) {
	ws, ok := weekStartParam(w, r)
	if !ok {
		return
	}
	dow, err := strconv.Atoi(r.URL.Query().Get("day_of_week"))
	if err != nil || dow < 0 || dow > 6 {
		writeError(w, http.StatusBadRequest, "day_of_week must be 0 through 6")
		return
	}

	if err := h.plans.DeleteDay(ws, dow); err != nil {
		h.logger.Error("delete day", "week_start", ws, "day", dow, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to clear day")
		return
	}

	h.hub.Broadcast(realtime.WeekEvent(realtime.EntityMealPlan, realtime.ActionDeleted, ws, 0))
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type carryForwardRequest struct {
	WeekStart string `json:"week_start"`
}

// CarryForward handles POST /api/meal-plan/carry-forward, copying the
// previous week's plan into the given week without touching days already
// planned. Responds with the full resulting week.
func (h *MealPlanHandler) CarryForward(w http.ResponseWriter, r *http.Request) {
	var req carryForwardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	target, err := week.ParseWeekStart(req.WeekStart)
	if err != nil {
		writeError(w, http.StatusBadRequest, "week_start must be a Monday in YYYY-MM-DD form")
		return
	}
	prev := week.FormatDate(week.AddWeeks(target, -1))

	copied, err := h.plans.CarryForward(prev, req.WeekStart)
	if err != nil {
		h.logger.Error("carry forward", "from", prev, "to", req.WeekStart, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to carry forward")
		return
	}

	days, err := h.plans.ListWeek(req.WeekStart)
	if err != nil {
		h.logger.Error("list week", "week_start", req.WeekStart, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load meal plan")
		return
	}
	if days == nil {
		days = []model.MealPlanDay{}
	}

	if copied > 0 {
		h.hub.Broadcast(realtime.WeekEvent(realtime.EntityMealPlan, realtime.ActionUpdated, req.WeekStart, 0))
	}
	writeJSON(w, http.StatusOK, map[string]any{"copied": copied, "days": days})
}
