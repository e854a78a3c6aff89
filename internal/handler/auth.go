package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/oxtailbadger/mise/internal/auth"
	"github.com/oxtailbadger/mise/internal/middleware"
	"github.com/oxtailbadger/mise/internal/store"
)

// AuthHandler implements the single shared household login. There are no
// user accounts: one password, checked against a bcrypt hash from the
// environment, grants a 30-day device session.
type AuthHandler struct {
	sessions     *store.SessionStore
	passwordHash []byte
	logger       *slog.Logger
}

func NewAuthHandler(sessions *store.SessionStore, passwordHash []byte, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		sessions:     sessions,
		passwordHash: passwordHash,
		logger:       logger,
	}
}

type loginRequest struct {
	Password string `json:"password"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if len(h.passwordHash) == 0 {
		h.logger.Error("login attempted with no password hash configured")
		writeError(w, http.StatusServiceUnavailable, "login is not configured")
		return
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.Password == "" {
		writeError(w, http.StatusBadRequest, "password is required")
		return
	}

	if err := bcrypt.CompareHashAndPassword(h.passwordHash, []byte(req.Password)); err != nil {
		h.logger.Warn("failed login", "remote", middleware.RealIP(r))
		writeError(w, http.StatusUnauthorized, "incorrect password")
		return
	}

	sess, err := h.sessions.Create()
	if err != nil {
		h.logger.Error("create session", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create session")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    sess.Token,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]any{"expires_at": sess.ExpiresAt})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if token := auth.SessionToken(r.Context()); token != "" {
		if err := h.sessions.DeleteByToken(token); err != nil {
			h.logger.Error("delete session", "error", err)
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
