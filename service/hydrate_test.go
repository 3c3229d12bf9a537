package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"eventify-cli/model"
)

type countingGetter struct {
	mu       sync.Mutex
	events   map[string]model.Event
	inFlight int32
	maxSeen  int32
}

func (c *countingGetter) GetEvent(ctx context.Context, eventID string) (model.Event, error) {
	n := atomic.AddInt32(&c.inFlight, 1)
	defer atomic.AddInt32(&c.inFlight, -1)
	for {
		seen := atomic.LoadInt32(&c.maxSeen)
		if n <= seen || atomic.CompareAndSwapInt32(&c.maxSeen, seen, n) {
			break
		}
	}
	time.Sleep(5 * time.Millisecond)

	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.events[eventID]
	if !ok {
		return model.Event{}, &APIError{StatusCode: 404, Message: "event not found"}
	}
	return e, nil
}

func TestHydrateRegistrations(t *testing.T) {
	getter := &countingGetter{events: map[string]model.Event{}}
	var regs []model.Registration
	for i := 0; i < 20; i++ {
		id := fmt.Sprintf("e%d", i)
		if i%2 == 0 {
			getter.events[id] = model.Event{Id: id, Title: "Event " + id}
		}
		regs = append(regs, model.Registration{Id: "r" + id, EventId: id, Status: model.StatusConfirmed})
	}
	snapshot := model.Event{Id: "kept", Title: "Snapshot"}
	regs = append(regs, model.Registration{Id: "rk", EventId: "kept", Event: &snapshot})

	HydrateRegistrations(context.Background(), getter, regs)

	for i := 0; i < 20; i++ {
		if i%2 == 0 && (regs[i].Event == nil || regs[i].Event.Id != regs[i].EventId) {
			t.Fatalf("expected registration %d to be hydrated", i)
		}
		if i%2 == 1 && regs[i].Event != nil {
			t.Fatalf("expected registration %d to keep the fallback", i)
		}
	}
	if regs[20].Event != &snapshot {
		t.Fatal("expected existing snapshot to be kept")
	}
	if peak := atomic.LoadInt32(&getter.maxSeen); peak > HydrateLimit {
		t.Fatalf("expected at most %d concurrent lookups, saw %d", HydrateLimit, peak)
	}
}
