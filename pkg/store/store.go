package store

import (
	"context"
	"log/slog"
	"sync"

	"github.com/vango-dev/newtab/pkg/actions"
)

// DefaultMaxUserEvents bounds the user-event log kept in state.
const DefaultMaxUserEvents = 100

// Dispatcher accepts actions.
type Dispatcher interface {
	Dispatch(a actions.Action)
}

// StateProvider returns a snapshot of the current state.
type StateProvider interface {
	State() State
}

// DispatchFunc adapts a function to Dispatcher.
type DispatchFunc func(a actions.Action)

// Dispatch implements Dispatcher.
func (f DispatchFunc) Dispatch(a actions.Action) { f(a) }

// StateFunc adapts a function to StateProvider.
type StateFunc func() State

// State implements StateProvider.
func (f StateFunc) State() State { return f() }

// Middleware wraps dispatch. Implementations must call next exactly once
// unless they reject the action, and return its error.
type Middleware interface {
	Handle(ctx context.Context, a actions.Action, next func(context.Context) error) error
}

// MiddlewareFunc adapts a function to Middleware.
type MiddlewareFunc func(ctx context.Context, a actions.Action, next func(context.Context) error) error

// Handle implements Middleware.
func (f MiddlewareFunc) Handle(ctx context.Context, a actions.Action, next func(context.Context) error) error {
	return f(ctx, a, next)
}

// Listener is notified after every successful dispatch.
type Listener func(a actions.Action, s State)

// Option configures a Store.
type Option func(*Store)

// WithInitialState sets the state the store starts from.
func WithInitialState(s State) Option {
	return func(st *Store) {
		st.state = s.Clone()
	}
}

// WithLogger sets the store logger.
func WithLogger(l *slog.Logger) Option {
	return func(st *Store) {
		st.logger = l
	}
}

// WithMaxUserEvents bounds the user-event log. Zero keeps every event.
func WithMaxUserEvents(n int) Option {
	return func(st *Store) {
		st.maxUserEvents = n
	}
}

// WithMiddleware installs middleware, outermost first.
func WithMiddleware(mw ...Middleware) Option {
	return func(st *Store) {
		st.middleware = append(st.middleware, mw...)
	}
}

// Store is the central state container. It is safe for concurrent use.
type Store struct {
	mu            sync.RWMutex
	state         State
	middleware    []Middleware
	listeners     map[int]Listener
	nextListener  int
	maxUserEvents int
	logger        *slog.Logger
}

// New creates a Store.
func New(opts ...Option) *Store {
	s := &Store{
		listeners:     make(map[int]Listener),
		maxUserEvents: DefaultMaxUserEvents,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Use appends middleware to the chain. Middleware added later runs
// closer to the reducer.
func (s *Store) Use(mw ...Middleware) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.middleware = append(s.middleware, mw...)
}

// State returns a copy of the current state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// SetExperiments replaces the experiment node. A nil value removes it.
func (s *Store) SetExperiments(exp *Experiments) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if exp == nil {
		s.state.Experiments = nil
		return
	}
	e := *exp
	s.state.Experiments = &e
}

// Subscribe registers l and returns a function that removes it.
func (s *Store) Subscribe(l Listener) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextListener
	s.nextListener++
	s.listeners[id] = l
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// Dispatch implements Dispatcher. Rejected actions are logged.
func (s *Store) Dispatch(a actions.Action) {
	if err := s.DispatchContext(context.Background(), a); err != nil {
		s.logger.Warn("dispatch rejected", "type", string(a.Type), "error", err)
	}
}

// DispatchContext runs a through the middleware chain and the reducer.
func (s *Store) DispatchContext(ctx context.Context, a actions.Action) error {
	if a.Type == "" {
		return ErrNilAction
	}

	s.mu.RLock()
	chain := s.middleware
	s.mu.RUnlock()

	var run func(i int) func(context.Context) error
	run = func(i int) func(context.Context) error {
		if i == len(chain) {
			return func(context.Context) error { return s.apply(a) }
		}
		return func(ctx context.Context) error {
			return chain[i].Handle(ctx, a, run(i+1))
		}
	}
	return run(0)(ctx)
}

// Bind returns a Dispatcher that dispatches with ctx and reports every
// rejection to onErr. A nil onErr logs instead.
func (s *Store) Bind(ctx context.Context, onErr func(actions.Action, error)) Dispatcher {
	return DispatchFunc(func(a actions.Action) {
		if err := s.DispatchContext(ctx, a); err != nil {
			if onErr != nil {
				onErr(a, err)
				return
			}
			s.logger.Warn("dispatch rejected", "type", string(a.Type), "error", err)
		}
	})
}

func (s *Store) apply(a actions.Action) error {
	s.mu.Lock()
	if err := reduce(&s.state, a, s.maxUserEvents); err != nil {
		s.mu.Unlock()
		return err
	}
	snapshot := s.state.Clone()
	listeners := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.Unlock()

	s.logger.Debug("action dispatched", "type", string(a.Type))
	for _, l := range listeners {
		l(a, snapshot)
	}
	return nil
}
