package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/oxtailbadger/mise/internal/grocery"
	"github.com/oxtailbadger/mise/internal/handler"
	"github.com/oxtailbadger/mise/internal/importer"
	"github.com/oxtailbadger/mise/internal/middleware"
	"github.com/oxtailbadger/mise/internal/realtime"
	"github.com/oxtailbadger/mise/internal/store"
)

// Config carries the secrets and knobs the server needs beyond the database.
type Config struct {
	// PasswordHash is the bcrypt hash of the shared household password.
	// Login is disabled when empty.
	PasswordHash []byte
	// AnthropicAPIKey enables recipe import when set.
	AnthropicAPIKey string
}

type Server struct {
	db           *sql.DB
	hub          *realtime.Hub
	authH        *handler.AuthHandler
	recipeH      *handler.RecipeHandler
	mealPlanH    *handler.MealPlanHandler
	groceryH     *handler.GroceryHandler
	pantryH      *handler.PantryHandler
	settingsH    *handler.SettingsHandler
	importH      *handler.ImportHandler
	sessionStore *store.SessionStore
	rateLimiter  *middleware.RateLimiter
	logger       *slog.Logger
}

func New(db *sql.DB, cfg Config, logger *slog.Logger) *Server {
	hub := realtime.NewHub(logger.With("component", "realtime"))

	recipeStore := store.NewRecipeStore(db)
	mealPlanStore := store.NewMealPlanStore(db)
	groceryStore := store.NewGroceryStore(db)
	pantryStore := store.NewPantryStore(db)
	settingsStore := store.NewSettingsStore(db)
	sessionStore := store.NewSessionStore(db)

	classifier := grocery.NewClassifier(grocery.DefaultKeywords())
	generator := grocery.NewGenerator(mealPlanStore, groceryStore, pantryStore, classifier, logger.With("component", "generator"))

	importClient := importer.NewClient(cfg.AnthropicAPIKey, logger.With("component", "importer"))

	return &Server{
		db:           db,
		hub:          hub,
		authH:        handler.NewAuthHandler(sessionStore, cfg.PasswordHash, logger.With("component", "auth")),
		recipeH:      handler.NewRecipeHandler(recipeStore, hub, logger.With("component", "recipe")),
		mealPlanH:    handler.NewMealPlanHandler(mealPlanStore, hub, logger.With("component", "meal_plan")),
		groceryH:     handler.NewGroceryHandler(groceryStore, generator, classifier, hub, logger.With("component", "grocery")),
		pantryH:      handler.NewPantryHandler(pantryStore, hub, logger.With("component", "pantry")),
		settingsH:    handler.NewSettingsHandler(settingsStore, logger.With("component", "settings")),
		importH:      handler.NewImportHandler(importClient, logger.With("component", "import")),
		sessionStore: sessionStore,
		rateLimiter:  middleware.NewRateLimiter(),
		logger:       logger,
	}
}

// SessionStore returns the session store for cleanup tasks.
func (s *Server) SessionStore() *store.SessionStore {
	return s.sessionStore
}

// RateLimiter returns the rate limiter for cleanup tasks.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

func (s *Server) Router() http.Handler {
	outerMux := http.NewServeMux()

	// Public routes (no auth required)
	outerMux.HandleFunc("POST /api/login", s.rateLimitedHandler(s.authH.Login))
	outerMux.HandleFunc("GET /health", s.healthHandler)

	// Protected routes — wrapped with RequireAuth middleware
	protectedMux := http.NewServeMux()
	s.registerProtectedRoutes(protectedMux)

	authMiddleware := middleware.RequireAuth(s.sessionStore)
	outerMux.Handle("/", authMiddleware(protectedMux))

	return middleware.RequestLogger(s.logger.With("component", "http"))(outerMux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) rateLimitedHandler(h http.HandlerFunc) http.HandlerFunc {
	keyFunc := func(r *http.Request) string {
		return middleware.RealIP(r)
	}
	rl := middleware.RateLimit(s.rateLimiter, keyFunc, 10, time.Minute)
	return func(w http.ResponseWriter, r *http.Request) {
		rl(http.HandlerFunc(h)).ServeHTTP(w, r)
	}
}

func (s *Server) registerProtectedRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/logout", s.authH.Logout)

	// Recipe API routes
	mux.HandleFunc("GET /api/recipes", s.recipeH.List)
	mux.HandleFunc("POST /api/recipes", s.recipeH.Create)
	mux.HandleFunc("GET /api/recipes/{id}", s.recipeH.Get)
	mux.HandleFunc("PUT /api/recipes/{id}", s.recipeH.Update)
	mux.HandleFunc("DELETE /api/recipes/{id}", s.recipeH.Delete)
	mux.HandleFunc("POST /api/recipes/{id}/favorite", s.recipeH.ToggleFavorite)
	mux.HandleFunc("POST /api/recipes/import", s.importH.Import)

	// Meal plan API routes
	mux.HandleFunc("GET /api/meal-plan", s.mealPlanH.ListWeek)
	mux.HandleFunc("PUT /api/meal-plan", s.mealPlanH.UpsertDay)
	mux.HandleFunc("DELETE /api/meal-plan", s.mealPlanH.DeleteDay)
	mux.HandleFunc("POST /api/meal-plan/carry-forward", s.mealPlanH.CarryForward)

	// Grocery API routes
	mux.HandleFunc("GET /api/grocery", s.groceryH.GetList)
	mux.HandleFunc("DELETE /api/grocery", s.groceryH.DeleteList)
	mux.HandleFunc("POST /api/grocery/generate", s.groceryH.Generate)
	mux.HandleFunc("POST /api/grocery/items", s.groceryH.CreateItem)
	mux.HandleFunc("PATCH /api/grocery/items/{id}", s.groceryH.UpdateItem)
	mux.HandleFunc("DELETE /api/grocery/items/{id}", s.groceryH.DeleteItem)
	mux.HandleFunc("POST /api/grocery/clear-checked", s.groceryH.ClearChecked)

	// Pantry staple API routes
	mux.HandleFunc("GET /api/pantry", s.pantryH.List)
	mux.HandleFunc("POST /api/pantry", s.pantryH.Add)
	mux.HandleFunc("DELETE /api/pantry/{id}", s.pantryH.Delete)
	mux.HandleFunc("POST /api/pantry/seed", s.pantryH.Seed)

	// Settings API routes
	mux.HandleFunc("GET /api/settings/household", s.settingsH.GetHousehold)
	mux.HandleFunc("PUT /api/settings/household", s.settingsH.UpdateHousehold)

	// WebSocket
	mux.HandleFunc("GET /ws", s.hub.Handler())
}
