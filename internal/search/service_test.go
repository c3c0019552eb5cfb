package search

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"findanything/internal/domain"
	"findanything/internal/errs"
	"findanything/internal/eventbus"
	"findanything/internal/logic"
	"findanything/internal/provider"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeProvider struct {
	mu      sync.Mutex
	queries []string
	fn      func(ctx context.Context, query string) ([]domain.Result, error)
}

func (f *fakeProvider) Search(ctx context.Context, query string) ([]domain.Result, error) {
	f.mu.Lock()
	f.queries = append(f.queries, query)
	fn := f.fn
	f.mu.Unlock()

	if fn == nil {
		return named(query), nil
	}
	return fn(ctx, query)
}

func (f *fakeProvider) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.queries))
	copy(out, f.queries)
	return out
}

func named(names ...string) []domain.Result {
	out := make([]domain.Result, len(names))
	for i, n := range names {
		out[i] = domain.Result{Name: n}
	}
	return out
}

func newTestService(t *testing.T, p Provider, opts Options) *Service {
	t.Helper()
	if opts.SettleDelay == 0 {
		opts.SettleDelay = 10 * time.Millisecond
	}
	s := NewService(logic.NewMemoryPromptStore(), p, provider.DefaultFallback(), nil, opts)
	t.Cleanup(s.Close)
	return s
}

func waitIdle(t *testing.T, s *Service) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, s.Idle(ctx))
}

func promptID(t *testing.T, s *Service, text string) string {
	t.Helper()
	for _, p := range s.Prompts() {
		if p.Text == text {
			return p.ID
		}
	}
	t.Fatalf("no prompt %q", text)
	return ""
}

func TestSubmitSendsQueryBody(t *testing.T) {
	var mu sync.Mutex
	var bodies []map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		var body map[string]string
		_ = json.Unmarshal(data, &body)
		mu.Lock()
		bodies = append(bodies, body)
		mu.Unlock()
		_, _ = w.Write([]byte(`[{"name":"Red Runner","price":"59.99"}]`))
	}))
	defer srv.Close()

	client := provider.NewClient(provider.Options{URL: srv.URL, HTTPClient: srv.Client()})
	s := newTestService(t, client, Options{})

	p, existed, err := s.Submit("red shoes")
	require.NoError(t, err)
	assert.False(t, existed)
	assert.True(t, p.Selected)
	require.Len(t, s.Prompts(), 1)

	waitIdle(t, s)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, bodies, 1)
	assert.Equal(t, map[string]string{"query": "red shoes"}, bodies[0])

	st := s.State()
	assert.False(t, st.IsLoading)
	assert.False(t, st.Degraded)
	assert.True(t, st.HasSearchedAtLeastOnce)
	require.Len(t, st.Results, 1)
	assert.Equal(t, "Red Runner", st.Results[0].Name)
}

func TestComposeAcrossSubmits(t *testing.T) {
	fp := &fakeProvider{}
	s := newTestService(t, fp, Options{})

	_, _, err := s.Submit("red shoes")
	require.NoError(t, err)
	_, _, err = s.Submit("size 10")
	require.NoError(t, err)
	waitIdle(t, s)

	assert.Equal(t, []string{"red shoes", "red shoes size 10"}, fp.calls())
	assert.Equal(t, "red shoes size 10", s.State().Query)
}

func TestToggleDispatchesAfterSettle(t *testing.T) {
	fp := &fakeProvider{}
	s := newTestService(t, fp, Options{SettleDelay: 50 * time.Millisecond})

	_, _, err := s.Submit("red shoes")
	require.NoError(t, err)
	_, _, err = s.Submit("size 10")
	require.NoError(t, err)
	waitIdle(t, s)
	require.Len(t, fp.calls(), 2)

	require.NoError(t, s.Toggle(promptID(t, s, "size 10")))
	assert.Len(t, fp.calls(), 2, "toggle waits for the settle delay")

	waitIdle(t, s)
	calls := fp.calls()
	require.Len(t, calls, 3)
	assert.Equal(t, "red shoes", calls[2])
	assert.Equal(t, named("red shoes"), s.State().Results)
}

func TestDeleteOnlyPromptKeepsResults(t *testing.T) {
	fp := &fakeProvider{}
	s := newTestService(t, fp, Options{})

	p, _, err := s.Submit("red shoes")
	require.NoError(t, err)
	waitIdle(t, s)
	before := s.State()

	s.Delete(p.ID)
	waitIdle(t, s)

	assert.Empty(t, s.Prompts())
	assert.Len(t, fp.calls(), 1)
	after := s.State()
	assert.Equal(t, before.Results, after.Results)
	assert.False(t, after.IsLoading)
}

func TestDispatchWithEmptySelectionIsNoop(t *testing.T) {
	fp := &fakeProvider{}
	s := newTestService(t, fp, Options{})

	assert.Zero(t, s.Dispatch())
	assert.Empty(t, fp.calls())
	assert.False(t, s.State().IsLoading)

	p, _, err := s.Submit("lamp")
	require.NoError(t, err)
	waitIdle(t, s)
	require.NoError(t, s.Toggle(p.ID))
	waitIdle(t, s)

	assert.Zero(t, s.Dispatch())
	assert.Len(t, fp.calls(), 1)
	assert.Equal(t, named("lamp"), s.State().Results)
}

func TestProviderFailureServesFallback(t *testing.T) {
	fp := &fakeProvider{fn: func(ctx context.Context, query string) ([]domain.Result, error) {
		return nil, errs.New("provider.status", errs.CodeProviderFailure, errs.WithHTTP(http.StatusBadGateway))
	}}
	s := newTestService(t, fp, Options{})

	for _, text := range []string{"desk", "lamp", "desk"} {
		_, _, err := s.Submit(text)
		require.NoError(t, err)
		waitIdle(t, s)

		st := s.State()
		assert.False(t, st.IsLoading)
		assert.True(t, st.Degraded)
		assert.Contains(t, st.DegradedReason, "provider_failure")
		assert.Equal(t, provider.DefaultFallback().Results(), st.Results)
	}
}

func TestProviderRecoveryClearsDegraded(t *testing.T) {
	var mu sync.Mutex
	fail := true
	fp := &fakeProvider{fn: func(ctx context.Context, query string) ([]domain.Result, error) {
		mu.Lock()
		defer mu.Unlock()
		if fail {
			return nil, errors.New("connection refused")
		}
		return named(query), nil
	}}
	s := newTestService(t, fp, Options{})

	_, _, err := s.Submit("bag")
	require.NoError(t, err)
	waitIdle(t, s)
	require.True(t, s.State().Degraded)

	mu.Lock()
	fail = false
	mu.Unlock()

	_, existed, err := s.Submit("bag")
	require.NoError(t, err)
	assert.True(t, existed)
	waitIdle(t, s)

	st := s.State()
	assert.False(t, st.Degraded)
	assert.Empty(t, st.DegradedReason)
	assert.Equal(t, named("bag"), st.Results)
}

func TestResubmitDispatchesWithoutAppending(t *testing.T) {
	fp := &fakeProvider{}
	s := newTestService(t, fp, Options{})

	first, _, err := s.Submit("red shoes")
	require.NoError(t, err)
	again, existed, err := s.Submit("  red shoes ")
	require.NoError(t, err)
	waitIdle(t, s)

	assert.True(t, existed)
	assert.Equal(t, first, again)
	assert.Len(t, s.Prompts(), 1)
	assert.Equal(t, []string{"red shoes", "red shoes"}, fp.calls())
}

func TestMutationErrors(t *testing.T) {
	fp := &fakeProvider{}
	s := newTestService(t, fp, Options{})

	_, _, err := s.Submit("   ")
	assert.True(t, errs.IsCode(err, errs.CodeInvalidInput))

	assert.True(t, errs.IsCode(s.Edit("missing", "x"), errs.CodeNotFound))
	assert.True(t, errs.IsCode(s.Toggle("missing"), errs.CodeNotFound))
	s.Delete("missing")

	p, _, err := s.Submit("lamp")
	require.NoError(t, err)
	assert.True(t, errs.IsCode(s.Edit(p.ID, " "), errs.CodeInvalidInput))

	waitIdle(t, s)
	assert.Equal(t, []string{"lamp"}, fp.calls())
	assert.True(t, s.State().HasSearchedAtLeastOnce)
}

func TestEditKeepsPositionAndSelection(t *testing.T) {
	fp := &fakeProvider{}
	s := newTestService(t, fp, Options{})

	a, _, err := s.Submit("red shoes")
	require.NoError(t, err)
	b, _, err := s.Submit("size 10")
	require.NoError(t, err)
	require.NoError(t, s.Toggle(b.ID))

	require.NoError(t, s.Edit(a.ID, "  blue shoes  "))
	require.NoError(t, s.Edit(a.ID, "blue shoes"))
	waitIdle(t, s)

	prompts := s.Prompts()
	require.Len(t, prompts, 2)
	assert.Equal(t, domain.Prompt{ID: a.ID, Text: "blue shoes", Selected: true}, prompts[0])
	assert.Equal(t, domain.Prompt{ID: b.ID, Text: "size 10", Selected: false}, prompts[1])
	assert.Equal(t, "blue shoes", s.State().Query)
}

// slowFirst blocks the query "slow" until release is closed
func slowFirst(release <-chan struct{}) *fakeProvider {
	return &fakeProvider{fn: func(ctx context.Context, query string) ([]domain.Result, error) {
		if query == "slow" {
			select {
			case <-release:
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
		return named(query), nil
	}}
}

func TestLastCompletionWins(t *testing.T) {
	release := make(chan struct{})
	s := newTestService(t, slowFirst(release), Options{})

	_, _, err := s.Submit("slow")
	require.NoError(t, err)
	_, _, err = s.Submit("fast")
	require.NoError(t, err)

	require.Eventually(t, func() bool { return s.State().Generation == 2 }, 2*time.Second, 5*time.Millisecond)
	st := s.State()
	assert.Equal(t, named("slow fast"), st.Results)
	assert.False(t, st.IsLoading)

	close(release)
	waitIdle(t, s)

	st = s.State()
	assert.Equal(t, named("slow"), st.Results, "the older dispatch finished last")
	assert.Equal(t, uint64(1), st.Generation)
	assert.False(t, st.IsLoading)
}

func TestDiscardStaleKeepsNewest(t *testing.T) {
	release := make(chan struct{})
	bus := eventbus.New(nil)
	defer bus.Close()

	discarded := make(chan eventbus.SearchDiscardedEvent, 1)
	bus.Subscribe(eventbus.EventSearchDiscarded, func(e eventbus.DomainEvent) {
		discarded <- e.(eventbus.SearchDiscardedEvent)
	})

	s := NewService(logic.NewMemoryPromptStore(), slowFirst(release), provider.DefaultFallback(), bus,
		Options{SettleDelay: 10 * time.Millisecond, DiscardStale: true})
	defer s.Close()

	_, _, err := s.Submit("slow")
	require.NoError(t, err)
	_, _, err = s.Submit("fast")
	require.NoError(t, err)

	require.Eventually(t, func() bool { return s.State().Generation == 2 }, 2*time.Second, 5*time.Millisecond)
	assert.True(t, s.State().IsLoading, "older dispatch still in flight")

	close(release)
	waitIdle(t, s)

	st := s.State()
	assert.Equal(t, named("slow fast"), st.Results)
	assert.Equal(t, uint64(2), st.Generation)
	assert.False(t, st.IsLoading)

	select {
	case e := <-discarded:
		assert.Equal(t, uint64(1), e.Seq)
		assert.Equal(t, uint64(2), e.Newest)
	case <-time.After(2 * time.Second):
		t.Fatal("no discard event")
	}
}

func TestSettleTimersPerMutation(t *testing.T) {
	fp := &fakeProvider{}
	s := newTestService(t, fp, Options{SettleDelay: 40 * time.Millisecond})

	p, _, err := s.Submit("lamp")
	require.NoError(t, err)
	_, _, err = s.Submit("desk")
	require.NoError(t, err)
	waitIdle(t, s)

	for i := 0; i < 3; i++ {
		require.NoError(t, s.Toggle(p.ID))
	}
	waitIdle(t, s)

	assert.Len(t, fp.calls(), 2+3)
}

func TestCoalesceSettle(t *testing.T) {
	fp := &fakeProvider{}
	s := newTestService(t, fp, Options{SettleDelay: 40 * time.Millisecond, CoalesceSettle: true})

	p, _, err := s.Submit("lamp")
	require.NoError(t, err)
	_, _, err = s.Submit("desk")
	require.NoError(t, err)
	waitIdle(t, s)

	for i := 0; i < 3; i++ {
		require.NoError(t, s.Toggle(p.ID))
	}
	waitIdle(t, s)

	calls := fp.calls()
	require.Len(t, calls, 3)
	assert.Equal(t, "desk", calls[2])
}

func TestEventsPublished(t *testing.T) {
	bus := eventbus.New(nil)
	defer bus.Close()

	got := make(chan eventbus.DomainEvent, 16)
	for _, et := range []eventbus.EventType{
		eventbus.EventPromptAdded,
		eventbus.EventSearchStarted,
		eventbus.EventSearchCompleted,
		eventbus.EventSearchSkipped,
	} {
		bus.Subscribe(et, func(e eventbus.DomainEvent) { got <- e })
	}

	s := NewService(logic.NewMemoryPromptStore(), &fakeProvider{}, provider.DefaultFallback(), bus, Options{})
	defer s.Close()

	s.Dispatch()
	_, _, err := s.Submit("lamp")
	require.NoError(t, err)
	waitIdle(t, s)

	var types []eventbus.EventType
	for len(types) < 4 {
		select {
		case e := <-got:
			types = append(types, e.Type())
			if c, ok := e.(eventbus.SearchCompletedEvent); ok {
				assert.Equal(t, "lamp", c.Query)
				assert.Equal(t, 1, c.Count)
				assert.False(t, c.Degraded)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("only received %v", types)
		}
	}
	assert.Equal(t, []eventbus.EventType{
		eventbus.EventSearchSkipped,
		eventbus.EventPromptAdded,
		eventbus.EventSearchStarted,
		eventbus.EventSearchCompleted,
	}, types)
}

func TestCloseCancelsInFlight(t *testing.T) {
	started := make(chan struct{})
	fp := &fakeProvider{fn: func(ctx context.Context, query string) ([]domain.Result, error) {
		close(started)
		<-ctx.Done()
		return nil, ctx.Err()
	}}
	s := NewService(logic.NewMemoryPromptStore(), fp, provider.DefaultFallback(), nil, Options{})

	_, _, err := s.Submit("lamp")
	require.NoError(t, err)
	<-started

	s.Close()
	s.Close()

	st := s.State()
	assert.Zero(t, st.Generation)
	assert.Empty(t, st.Results)
	assert.Zero(t, s.Dispatch())
	require.NoError(t, s.Idle(context.Background()))
}

func TestIdleHonoursContext(t *testing.T) {
	release := make(chan struct{})
	s := newTestService(t, slowFirst(release), Options{})
	defer close(release)

	_, _, err := s.Submit("slow")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, s.Idle(ctx), context.DeadlineExceeded)
}

func TestZeroSettleDelayDispatches(t *testing.T) {
	fp := &fakeProvider{}
	s := NewService(logic.NewMemoryPromptStore(), fp, provider.DefaultFallback(), nil, Options{SettleDelay: 0})
	defer s.Close()

	_, _, err := s.Submit("red shoes")
	require.NoError(t, err)
	waitIdle(t, s)

	const rounds = 200
	for i := 0; i < rounds; i++ {
		s.ScheduleDispatch(0)
		waitIdle(t, s)
	}

	calls := fp.calls()
	require.Len(t, calls, rounds+1)
	assert.Equal(t, "red shoes", calls[rounds])
	assert.Equal(t, uint64(rounds+1), s.State().Generation)
}

func TestSubmitAfterCloseDoesNotMarkSearched(t *testing.T) {
	fp := &fakeProvider{}
	s := NewService(logic.NewMemoryPromptStore(), fp, provider.DefaultFallback(), nil, Options{})
	s.Close()

	_, _, err := s.Submit("lamp")
	require.NoError(t, err)

	st := s.State()
	assert.False(t, st.HasSearchedAtLeastOnce)
	assert.False(t, st.IsLoading)
	assert.Empty(t, fp.calls())
	require.NoError(t, s.Idle(context.Background()))
}
