package realtime

import (
	"encoding/json"
	"log/slog"
	"sync"
	"testing"
	"time"
)

// testClient builds a client with an outbox but no real connection.
func testClient(hub *Hub) *Client {
	return &Client{hub: hub, outbox: make(chan []byte, outboxSize)}
}

func TestRegisterUnregister(t *testing.T) {
	hub := NewHub(slog.Default())

	c1 := testClient(hub)
	c2 := testClient(hub)
	hub.register(c1)
	hub.register(c2)

	if got := hub.ClientCount(); got != 2 {
		t.Fatalf("expected 2 clients, got %d", got)
	}

	hub.unregister(c1)
	if got := hub.ClientCount(); got != 1 {
		t.Fatalf("expected 1 client, got %d", got)
	}

	// Unregistering twice must not panic on the closed outbox.
	hub.unregister(c1)
	hub.unregister(c2)
	if got := hub.ClientCount(); got != 0 {
		t.Fatalf("expected 0 clients, got %d", got)
	}
}

func TestBroadcastReachesAllClients(t *testing.T) {
	hub := NewHub(slog.Default())

	c1 := testClient(hub)
	c2 := testClient(hub)
	hub.register(c1)
	hub.register(c2)

	hub.Broadcast(WeekEvent(EntityGroceryItem, ActionUpdated, "2026-03-02", 42))

	for _, c := range []*Client{c1, c2} {
		select {
		case data := <-c.outbox:
			var got Event
			if err := json.Unmarshal(data, &got); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if got.Type != "grocery_item_updated" {
				t.Errorf("type = %q", got.Type)
			}
			if got.ID != 42 {
				t.Errorf("id = %d", got.ID)
			}
			if got.WeekStart != "2026-03-02" {
				t.Errorf("week_start = %q", got.WeekStart)
			}
		case <-time.After(100 * time.Millisecond):
			t.Fatal("timeout waiting for event")
		}
	}

	hub.unregister(c1)
	hub.unregister(c2)
}

func TestBroadcastEmptyHub(t *testing.T) {
	hub := NewHub(slog.Default())
	hub.Broadcast(NewEvent(EntityRecipe, ActionDeleted, 1))
}

func TestBroadcastDropsWhenOutboxFull(t *testing.T) {
	hub := NewHub(slog.Default())

	c := testClient(hub)
	hub.register(c)

	for i := 0; i < outboxSize; i++ {
		hub.Broadcast(NewEvent(EntityPantry, ActionCreated, int64(i)))
	}
	// One past capacity: dropped, not blocking.
	hub.Broadcast(NewEvent(EntityPantry, ActionCreated, 999))

	count := 0
drain:
	for {
		select {
		case <-c.outbox:
			count++
		default:
			break drain
		}
	}
	if count != outboxSize {
		t.Errorf("drained %d events, want %d", count, outboxSize)
	}

	hub.unregister(c)
}

func TestNewEvent(t *testing.T) {
	e := NewEvent(EntityMealPlan, ActionUpdated, 5)
	if e.Type != "meal_plan_updated" {
		t.Errorf("type = %q", e.Type)
	}
	if e.Entity != EntityMealPlan || e.Action != ActionUpdated || e.ID != 5 {
		t.Errorf("unexpected event: %+v", e)
	}
	if e.WeekStart != "" {
		t.Errorf("week_start should be empty, got %q", e.WeekStart)
	}
}

func TestConcurrentClients(t *testing.T) {
	hub := NewHub(slog.Default())
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c := testClient(hub)
			hub.register(c)
			hub.Broadcast(WeekEvent(EntityGroceryList, ActionGenerated, "2026-03-02", 1))
			for {
				select {
				case <-c.outbox:
				default:
					hub.unregister(c)
					return
				}
			}
		}()
	}
	wg.Wait()

	if got := hub.ClientCount(); got != 0 {
		t.Errorf("expected 0 clients, got %d", got)
	}
}
