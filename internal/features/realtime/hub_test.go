package realtime

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/random-lottery/AIPortal/internal/features/portal"

	"go.uber.org/zap"
)

type fakeSink struct {
	mu     sync.Mutex
	frames []interface{}
	fail   bool
}

func (s *fakeSink) WriteJSON(v interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return errors.New("connection gone")
	}
	s.frames = append(s.frames, v)
	return nil
}

func (s *fakeSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.frames)
}

func TestHubPublishToSubscribers(t *testing.T) {
	hub := NewHub(zap.NewNop())
	a := &fakeSink{}
	b := &fakeSink{}
	other := &fakeSink{}

	hub.Subscribe("user-1", a)
	hub.Subscribe("user-1", b)
	hub.Subscribe("user-2", other)

	settings := portal.DefaultSettings("user-1")
	hub.Publish("user-1", settings)

	if a.count() != 1 || b.count() != 1 {
		t.Errorf("both user-1 sessions should receive the event, got %d and %d", a.count(), b.count())
	}
	if other.count() != 0 {
		t.Errorf("user-2 session must not receive user-1 events")
	}

	event, ok := a.frames[0].(settingsEvent)
	if !ok {
		t.Fatalf("unexpected frame type %T", a.frames[0])
	}
	if event.Event != settingsUpdatedEvent {
		t.Errorf("event = %q, want %q", event.Event, settingsUpdatedEvent)
	}
	if event.Settings.UserID != "user-1" {
		t.Errorf("settings userId = %q", event.Settings.UserID)
	}
}

func TestHubPublishWithoutSubscribersIsNoOp(t *testing.T) {
	hub := NewHub(zap.NewNop())
	// Must not panic or error
	hub.Publish("nobody", portal.DefaultSettings("nobody"))
}

func TestHubUnsubscribe(t *testing.T) {
	hub := NewHub(zap.NewNop())
	sink := &fakeSink{}

	hub.Subscribe("user-1", sink)
	hub.Unsubscribe("user-1", sink)
	hub.Publish("user-1", portal.DefaultSettings("user-1"))

	if sink.count() != 0 {
		t.Errorf("unsubscribed session received %d events", sink.count())
	}
}

func TestHubWriteFailureIsSwallowed(t *testing.T) {
	hub := NewHub(zap.NewNop())
	broken := &fakeSink{fail: true}
	healthy := &fakeSink{}

	hub.Subscribe("user-1", broken)
	hub.Subscribe("user-1", healthy)

	hub.Publish("user-1", portal.DefaultSettings("user-1"))

	if healthy.count() != 1 {
		t.Errorf("a broken session must not block the others")
	}
}

func TestHubConcurrentChurn(t *testing.T) {
	hub := NewHub(zap.NewNop())
	settings := portal.DefaultSettings("user-1")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		sink := &fakeSink{}
		userID := fmt.Sprintf("user-%d", i%5)

		wg.Add(1)
		go func() {
			defer wg.Done()
			hub.Subscribe(userID, sink)
			hub.Publish(userID, settings)
			hub.Unsubscribe(userID, sink)
		}()
	}
	wg.Wait()

	// All rooms drained after the churn
	hub.mu.RLock()
	defer hub.mu.RUnlock()
	if len(hub.rooms) != 0 {
		t.Errorf("rooms not cleaned up: %d left", len(hub.rooms))
	}
}
