package ws

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestPublishQueuesEncodedEvent(t *testing.T) {
	h := NewHub()
	id := uuid.New()

	h.Publish(Event{Type: TypeStockUpdate, Action: "transaction_created", ProductID: id, CurrentStock: 2, Status: "LOW"})

	select {
	case msg := <-h.Broadcast:
		var got Event
		if err := json.Unmarshal(msg, &got); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if got.ProductID != id || got.CurrentStock != 2 || got.Type != TypeStockUpdate {
			t.Errorf("unexpected event %+v", got)
		}
	default:
		t.Fatal("expected a queued message")
	}
}

func TestPublishNeverBlocks(t *testing.T) {
	h := NewHub()

	// Nobody drains the queue; extra events must be dropped
	for i := 0; i < cap(h.Broadcast)+10; i++ {
		h.Publish(Event{Type: TypeStockUpdate, Action: "product_updated"})
	}
	if len(h.Broadcast) != cap(h.Broadcast) {
		t.Errorf("expected a full queue, got %d/%d", len(h.Broadcast), cap(h.Broadcast))
	}
}

func TestRunStops(t *testing.T) {
	h := NewHub()
	done := make(chan struct{})
	go func() {
		h.Run()
		close(done)
	}()

	h.Publish(Event{Type: TypeStockUpdate})
	h.Stop()
	<-done

	if h.ClientCount() != 0 {
		t.Errorf("expected no clients after stop")
	}
}

func TestAddRemoveAfterStop(t *testing.T) {
	h := NewHub()
	done := make(chan struct{})
	go func() {
		h.Run()
		close(done)
	}()
	h.Stop()
	<-done

	returned := make(chan bool)
	go func() {
		added := h.Add(nil)
		h.Remove(nil)
		returned <- added
	}()

	select {
	case added := <-returned:
		if added {
			t.Errorf("expected Add to fail on a stopped hub")
		}
	case <-time.After(time.Second):
		t.Fatal("Add/Remove blocked on a stopped hub")
	}
}
