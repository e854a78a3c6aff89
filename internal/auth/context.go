package auth

import "context"

type contextKey struct{}

// Session identifies the authenticated device on a request. There is one
// shared household login, so this carries no user identity, just the
// session row backing the cookie.
type Session struct {
	ID    int64
	Token string
}

func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

func FromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(contextKey{}).(Session)
	return s, ok
}

// SessionToken returns the request's session token, or "" when the request
// is unauthenticated.
func SessionToken(ctx context.Context) string {
	s, ok := FromContext(ctx)
	if !ok {
		return ""
	}
	return s.Token
}
