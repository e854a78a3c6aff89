package store

import (
	"database/sql"
	"testing"
	"time"

	"github.com/oxtailbadger/mise/internal/database"
)

func setupSessionTestDB(t *testing.T) (*SessionStore, *sql.DB) {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewSessionStore(db), db
}

func TestSessionCreateAndGet(t *testing.T) {
	ss, _ := setupSessionTestDB(t)

	sess, err := ss.Create()
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(sess.Token) != 64 {
		t.Errorf("token length = %d, want 64 hex chars", len(sess.Token))
	}
	if !sess.ExpiresAt.After(time.Now().UTC().Add(29 * 24 * time.Hour)) {
		t.Errorf("expires_at = %v, want ~30 days out", sess.ExpiresAt)
	}

	got, err := ss.GetByToken(sess.Token)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.ID != sess.ID {
		t.Fatalf("lookup by token failed: %+v", got)
	}
}

func TestSessionGetInvalidToken(t *testing.T) {
	ss, _ := setupSessionTestDB(t)

	got, err := ss.GetByToken("nope")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Fatal("expected nil for unknown token")
	}
}

func TestSessionExpiredNotReturned(t *testing.T) {
	ss, db := setupSessionTestDB(t)

	expired := time.Now().UTC().Add(-time.Hour)
	if _, err := db.Exec(`INSERT INTO sessions (token, expires_at) VALUES (?, ?)`, "stale", expired); err != nil {
		t.Fatalf("insert expired: %v", err)
	}

	got, err := ss.GetByToken("stale")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Fatal("expired session should not resolve")
	}
}

func TestSessionDeleteByToken(t *testing.T) {
	ss, _ := setupSessionTestDB(t)

	sess, err := ss.Create()
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := ss.DeleteByToken(sess.Token); err != nil {
		t.Fatalf("delete: %v", err)
	}

	got, err := ss.GetByToken(sess.Token)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Fatal("session should be gone after logout")
	}
}

func TestSessionDeleteExpired(t *testing.T) {
	ss, db := setupSessionTestDB(t)

	if _, err := ss.Create(); err != nil {
		t.Fatalf("create live: %v", err)
	}
	expired := time.Now().UTC().Add(-time.Hour)
	if _, err := db.Exec(`INSERT INTO sessions (token, expires_at) VALUES (?, ?)`, "stale", expired); err != nil {
		t.Fatalf("insert expired: %v", err)
	}

	n, err := ss.DeleteExpired()
	if err != nil {
		t.Fatalf("delete expired: %v", err)
	}
	if n != 1 {
		t.Errorf("deleted %d sessions, want 1", n)
	}
}
