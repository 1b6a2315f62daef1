package contact

import (
	"sync"
	"testing"
	"time"

	pkgcontact "github.com/goliatone/go-contactform/pkg/contact"
)

func TestSessionStore_Acquire(t *testing.T) {
	store := NewSessionStore(pkgcontact.NewValidator(pkgcontact.DefaultRules()))

	first, created := store.Acquire("")
	if !created || first.ID == "" {
		t.Fatalf("expected a new session, got %+v created=%v", first, created)
	}
	again, created := store.Acquire(first.ID)
	if created || again != first {
		t.Fatalf("expected the same session back")
	}
	other, created := store.Acquire("not-a-uuid")
	if !created || other.ID == first.ID {
		t.Fatalf("expected a fresh session for a malformed id")
	}
	if store.Len() != 2 {
		t.Fatalf("expected two sessions, got %d", store.Len())
	}

	store.Delete(first.ID)
	if _, ok := store.Get(first.ID); ok {
		t.Fatalf("expected session to be deleted")
	}
}

func TestSession_DoSerialisesChanges(t *testing.T) {
	store := NewSessionStore(pkgcontact.NewValidator(pkgcontact.DefaultRules()))
	session, _ := store.Acquire("")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = session.Do(func(form *pkgcontact.Form) error {
				form.Change(pkgcontact.FieldMessage, form.Values().Message+"x")
				return nil
			})
		}()
	}
	wg.Wait()

	if got := session.Snapshot().Values.Message; got != "xxxxxxxx" {
		t.Fatalf("expected eight serialised appends, got %q", got)
	}
}

func TestSessionStore_EvictsLeastRecentlyUsed(t *testing.T) {
	store := NewSessionStore(pkgcontact.NewValidator(pkgcontact.DefaultRules()), WithMaxSessions(2))

	first, _ := store.Acquire("")
	second, _ := store.Acquire("")
	if _, ok := store.Lookup(first.ID); !ok {
		t.Fatalf("expected first session to be live")
	}
	third, _ := store.Acquire("")

	if store.Len() != 2 {
		t.Fatalf("expected two sessions, got %d", store.Len())
	}
	if _, ok := store.Get(second.ID); ok {
		t.Fatalf("expected least recently used session to be evicted")
	}
	for _, session := range []*Session{first, third} {
		if _, ok := store.Get(session.ID); !ok {
			t.Fatalf("expected session %s to survive", session.ID)
		}
	}
}

func TestSessionStore_ExpiresIdleSessions(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	store := NewSessionStore(
		pkgcontact.NewValidator(pkgcontact.DefaultRules()),
		WithIdleTimeout(time.Minute),
		WithClock(func() time.Time { return now }),
	)

	stale, _ := store.Acquire("")
	now = now.Add(45 * time.Second)
	fresh, _ := store.Acquire("")
	now = now.Add(30 * time.Second)

	if _, ok := store.Lookup(stale.ID); ok {
		t.Fatalf("expected idle session to expire")
	}
	if _, ok := store.Lookup(fresh.ID); !ok {
		t.Fatalf("expected recent session to survive")
	}
	if store.Len() != 1 {
		t.Fatalf("expected one session, got %d", store.Len())
	}

	again, created := store.Acquire(stale.ID)
	if !created || again.ID == stale.ID {
		t.Fatalf("expected a fresh session for an expired id")
	}
}

func TestSessionStore_EphemeralIsNotStored(t *testing.T) {
	store := NewSessionStore(pkgcontact.NewValidator(pkgcontact.DefaultRules()))

	session := store.Ephemeral()
	if session.ID != "" {
		t.Fatalf("expected ephemeral session without id, got %q", session.ID)
	}
	if store.Len() != 0 {
		t.Fatalf("expected empty store, got %d", store.Len())
	}
}
