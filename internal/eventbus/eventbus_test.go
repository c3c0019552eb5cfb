package eventbus

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type recorder struct {
	mu     sync.Mutex
	events []DomainEvent
}

func (r *recorder) handle(e DomainEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) snapshot() []DomainEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]DomainEvent, len(r.events))
	copy(out, r.events)
	return out
}

func TestPublishDeliversInOrder(t *testing.T) {
	b := New(nil)
	defer b.Close()

	rec := &recorder{}
	b.Subscribe(EventSearchStarted, rec.handle)
	b.Subscribe(EventSearchCompleted, rec.handle)

	b.Publish(SearchStartedEvent{Query: "red shoes", Seq: 1})
	b.Publish(SearchCompletedEvent{Query: "red shoes", Seq: 1, Count: 6})
	b.Publish(SearchStartedEvent{Query: "red shoes size 10", Seq: 2})

	require.Eventually(t, func() bool { return len(rec.snapshot()) == 3 }, time.Second, 5*time.Millisecond)

	got := rec.snapshot()
	assert.Equal(t, SearchStartedEvent{Query: "red shoes", Seq: 1}, got[0])
	assert.Equal(t, SearchCompletedEvent{Query: "red shoes", Seq: 1, Count: 6}, got[1])
	assert.Equal(t, SearchStartedEvent{Query: "red shoes size 10", Seq: 2}, got[2])
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	b := New(nil)
	defer b.Close()

	kept := &recorder{}
	dropped := &recorder{}
	b.Subscribe(EventPromptDeleted, kept.handle)
	unsubscribe := b.Subscribe(EventPromptDeleted, dropped.handle)
	unsubscribe()

	b.Publish(PromptDeletedEvent{ID: "a"})

	require.Eventually(t, func() bool { return len(kept.snapshot()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Empty(t, dropped.snapshot())
}

func TestHandlerPanicDoesNotStopBus(t *testing.T) {
	b := New(nil)
	defer b.Close()

	rec := &recorder{}
	b.Subscribe(EventError, func(DomainEvent) { panic("boom") })
	b.Subscribe(EventError, rec.handle)

	b.Publish(ErrorEvent{Message: "first"})
	b.Publish(ErrorEvent{Message: "second"})

	require.Eventually(t, func() bool { return len(rec.snapshot()) == 2 }, time.Second, 5*time.Millisecond)
}

func TestPublishAfterCloseIsDropped(t *testing.T) {
	b := New(nil)
	rec := &recorder{}
	b.Subscribe(EventSearchSkipped, rec.handle)
	b.Close()
	b.Close()

	b.Publish(SearchSkippedEvent{})
	time.Sleep(20 * time.Millisecond)
	assert.Empty(t, rec.snapshot())
}
