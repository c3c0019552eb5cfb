// Package search owns the prompt collection and drives dispatches against the Results Provider.
package search

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/sourcegraph/conc"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"findanything/internal/domain"
	"findanything/internal/errs"
	"findanything/internal/eventbus"
	"findanything/internal/logic"
)

// DefaultSettleDelay is applied before dispatching after an edit, delete or toggle
const DefaultSettleDelay = 100 * time.Millisecond

// Provider resolves a composite query to results
type Provider interface {
	Search(ctx context.Context, query string) ([]domain.Result, error)
}

// Fallback supplies the offline result set used when the provider fails
type Fallback interface {
	Results() []domain.Result
}

// Options tunes dispatch behaviour
type Options struct {
	SettleDelay time.Duration
	// DiscardStale drops completions issued before the newest dispatch
	DiscardStale bool
	// CoalesceSettle replaces a pending settle timer instead of adding another
	CoalesceSettle bool

	Logger        *zap.Logger
	MeterProvider metric.MeterProvider
}

// Service is the single owner of the prompt store and the search state
type Service struct {
	mu       sync.Mutex
	store    logic.PromptStore
	provider Provider
	fallback Fallback
	bus      eventbus.EventBus
	opts     Options
	logger   *zap.Logger
	metrics  *metrics

	state    domain.SearchState
	seq      uint64 // newest issued dispatch
	inflight int
	timerSeq uint64
	pending  map[uint64]*time.Timer // settle timers keyed by token
	idle     chan struct{} // closed when nothing is pending or in flight
	closed   bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     conc.WaitGroup
}

// NewService creates the orchestrator
func NewService(store logic.PromptStore, p Provider, fb Fallback, bus eventbus.EventBus, opts Options) *Service {
	if opts.SettleDelay < 0 {
		opts.SettleDelay = 0
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Service{
		store:    store,
		provider: p,
		fallback: fb,
		bus:      bus,
		opts:     opts,
		logger:   logger.Named("search"),
		metrics:  newMetrics(opts.MeterProvider),
		state:    domain.SearchState{Results: []domain.Result{}},
		pending:  make(map[uint64]*time.Timer),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Submit adds a phrase, or finds the existing one, and dispatches immediately.
// The bool reports that the phrase was already present.
func (s *Service) Submit(text string) (domain.Prompt, bool, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return domain.Prompt{}, false, errs.InvalidInput("search.submit", "prompt text is empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, existed, err := s.store.AddIfAbsent(trimmed)
	if err != nil {
		return domain.Prompt{}, false, err
	}
	if existed {
		s.logger.Debug("prompt already present", zap.String("id", p.ID), zap.String("text", p.Text))
	} else {
		s.logger.Debug("prompt added", zap.String("id", p.ID), zap.String("text", p.Text))
		s.publish(eventbus.PromptAddedEvent{Prompt: p})
	}

	if !s.closed {
		s.state.HasSearchedAtLeastOnce = true
	}
	s.dispatchLocked()
	return p, existed, nil
}

// Edit replaces a prompt's text in place and schedules a settled dispatch
func (s *Service) Edit(id string, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.store.GetPrompt(id)
	if !ok {
		return errs.NotFound("search.edit", id)
	}
	p, err := s.store.Edit(id, strings.TrimSpace(text))
	if err != nil {
		return err
	}

	s.logger.Debug("prompt edited", zap.String("id", id), zap.String("old", old.Text), zap.String("new", p.Text))
	s.publish(eventbus.PromptEditedEvent{Prompt: p, OldText: old.Text})
	s.scheduleLocked(s.opts.SettleDelay)
	return nil
}

// Delete removes a prompt; unknown ids are ignored
func (s *Service) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.store.Delete(id) {
		return
	}
	s.logger.Debug("prompt deleted", zap.String("id", id))
	s.publish(eventbus.PromptDeletedEvent{ID: id})
	s.scheduleLocked(s.opts.SettleDelay)
}

// Toggle flips a prompt's selection and schedules a settled dispatch
func (s *Service) Toggle(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.store.Toggle(id)
	if err != nil {
		return err
	}
	s.logger.Debug("prompt toggled", zap.String("id", id), zap.Bool("selected", p.Selected))
	s.publish(eventbus.PromptToggledEvent{Prompt: p})
	s.scheduleLocked(s.opts.SettleDelay)
	return nil
}

// Dispatch composes the current query and starts a provider call.
// It returns the dispatch sequence number, or 0 when nothing was sent.
func (s *Service) Dispatch() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dispatchLocked()
}

// ScheduleDispatch dispatches after delay
func (s *Service) ScheduleDispatch(delay time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scheduleLocked(delay)
}

// Prompts returns the prompts in insertion order
func (s *Service) Prompts() []domain.Prompt {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.GetAllPrompts()
}

// State returns a snapshot of the search state
func (s *Service) State() domain.SearchState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Idle blocks until no dispatch is scheduled or in flight
func (s *Service) Idle(ctx context.Context) error {
	for {
		s.mu.Lock()
		if s.busyLocked() == 0 {
			s.mu.Unlock()
			return nil
		}
		ch := s.idleChanLocked()
		s.mu.Unlock()

		select {
		case <-ch:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Close stops pending timers, cancels provider calls and waits for them to return
func (s *Service) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	for token, t := range s.pending {
		t.Stop()
		delete(s.pending, token)
	}
	s.cancel()
	s.mu.Unlock()

	s.wg.Wait()

	s.mu.Lock()
	s.signalIdleLocked()
	s.mu.Unlock()
}

func (s *Service) dispatchLocked() uint64 {
	if s.closed {
		return 0
	}

	query := logic.Compose(s.store.SelectedTextsInOrder())
	if query == "" {
		s.logger.Debug("nothing selected, dispatch skipped")
		s.metrics.outcome(OutcomeSkipped)
		s.publish(eventbus.SearchSkippedEvent{})
		return 0
	}

	s.seq++
	seq := s.seq
	s.inflight++
	s.state.IsLoading = true

	s.logger.Info("dispatching search", zap.Uint64("seq", seq), zap.String("query", query))
	s.publish(eventbus.SearchStartedEvent{Query: query, Seq: seq})

	ctx := s.ctx
	s.wg.Go(func() {
		s.run(ctx, seq, query)
	})
	return seq
}

func (s *Service) run(ctx context.Context, seq uint64, query string) {
	start := time.Now()
	results, err := s.provider.Search(ctx, query)
	s.metrics.providerLatency(time.Since(start), err != nil)

	if err != nil {
		s.logger.Warn("provider failed, serving fallback catalog",
			zap.Uint64("seq", seq),
			zap.String("query", query),
			zap.Error(err))
		results = s.fallback.Results()
	}
	s.complete(seq, query, results, err)
}

func (s *Service) complete(seq uint64, query string, results []domain.Result, providerErr error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.inflight--
	defer s.signalIdleLocked()

	if s.closed {
		return
	}

	if s.opts.DiscardStale && seq < s.seq {
		s.state.IsLoading = s.inflight > 0
		s.logger.Debug("discarding stale completion", zap.Uint64("seq", seq), zap.Uint64("newest", s.seq))
		s.metrics.outcome(OutcomeDiscarded)
		s.publish(eventbus.SearchDiscardedEvent{Seq: seq, Newest: s.seq})
		return
	}

	if results == nil {
		results = []domain.Result{}
	}
	s.state.Results = results
	s.state.Query = query
	s.state.Generation = seq
	s.state.Degraded = providerErr != nil
	s.state.DegradedReason = ""
	if providerErr != nil {
		s.state.DegradedReason = providerErr.Error()
		s.metrics.outcome(OutcomeFallback)
	} else {
		s.metrics.outcome(OutcomeProvider)
	}
	if s.opts.DiscardStale {
		s.state.IsLoading = s.inflight > 0
	} else {
		s.state.IsLoading = false
	}

	s.logger.Info("search completed",
		zap.Uint64("seq", seq),
		zap.Int("results", len(results)),
		zap.Bool("degraded", s.state.Degraded))
	s.publish(eventbus.SearchCompletedEvent{
		Query:    query,
		Seq:      seq,
		Count:    len(results),
		Degraded: s.state.Degraded,
	})
}

func (s *Service) scheduleLocked(delay time.Duration) {
	if s.closed {
		return
	}
	if s.opts.CoalesceSettle {
		for token, t := range s.pending {
			// a timer that already fired removes itself
			if t.Stop() {
				delete(s.pending, token)
			}
		}
	}

	s.timerSeq++
	token := s.timerSeq
	s.pending[token] = time.AfterFunc(delay, func() {
		s.fire(token)
	})
	s.idleChanLocked()
}

func (s *Service) fire(token uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.pending[token]; !ok {
		return
	}
	delete(s.pending, token)
	s.dispatchLocked()
	s.signalIdleLocked()
}

func (s *Service) busyLocked() int {
	return len(s.pending) + s.inflight
}

func (s *Service) idleChanLocked() chan struct{} {
	if s.idle == nil {
		s.idle = make(chan struct{})
	}
	return s.idle
}

func (s *Service) signalIdleLocked() {
	if s.busyLocked() == 0 && s.idle != nil {
		close(s.idle)
		s.idle = nil
	}
}

func (s *Service) publish(e eventbus.DomainEvent) {
	if s.bus != nil {
		s.bus.Publish(e)
	}
}
