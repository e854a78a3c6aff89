package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/oxtailbadger/mise/internal/auth"
	"github.com/oxtailbadger/mise/internal/store"
)

// SessionCookieName is the cookie carrying the household session token.
const SessionCookieName = "mise_session"

// RequireAuth validates the session cookie and attaches the session to the
// request context. Failures get a JSON 401; the SPA client treats that as
// "show the login screen".
func RequireAuth(sessions *store.SessionStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				unauthorized(w)
				return
			}

			sess, err := sessions.GetByToken(cookie.Value)
			if err != nil || sess == nil {
				unauthorized(w)
				return
			}

			ctx := auth.WithSession(r.Context(), auth.Session{ID: sess.ID, Token: sess.Token})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": "authentication required"})
}
