package vtest

import (
	"slices"
	"sync"

	"github.com/vango-dev/newtab/pkg/actions"
	"github.com/vango-dev/newtab/pkg/store"
)

// Env customises the mock store a component is mounted against.
type Env struct {
	// Dispatch observes every dispatched action. Optional.
	Dispatch func(a actions.Action)

	// GetState returns the state snapshot. Defaults to RawMockData.
	GetState func() store.State
}

// Provider is the mock store handed to a component. It implements
// store.Dispatcher and store.StateProvider and records every dispatch.
type Provider struct {
	env Env

	mu         sync.Mutex
	dispatched []actions.Action
}

// NewProvider creates a Provider for env.
func NewProvider(env Env) *Provider {
	return &Provider{env: env}
}

// Dispatch implements store.Dispatcher.
func (p *Provider) Dispatch(a actions.Action) {
	p.mu.Lock()
	p.dispatched = append(p.dispatched, a)
	p.mu.Unlock()

	if p.env.Dispatch != nil {
		p.env.Dispatch(a)
	}
}

// State implements store.StateProvider.
func (p *Provider) State() store.State {
	if p.env.GetState != nil {
		return p.env.GetState()
	}
	return RawMockData()
}

// Dispatched returns the actions dispatched so far, in order.
func (p *Provider) Dispatched() []actions.Action {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.dispatched)
}

// Reset forgets recorded dispatches.
func (p *Provider) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.dispatched = nil
}

// RawMockData returns the default mock state: a few tiles and an
// experiment node with no active experiment.
func RawMockData() store.State {
	return store.State{
		Experiments: &store.Experiments{},
		Sites: []store.Site{
			{URL: "https://foo.com", Title: "Foo", Source: "TOP_SITES"},
			{URL: "https://bar.com", Title: "Bar", BookmarkGUID: "testBookmark", Source: "FEATURED"},
		},
	}
}

// WithExperiment returns a GetState function that reports an active
// experiment on top of RawMockData.
func WithExperiment(id string, reverseMenuOptions bool) func() store.State {
	return func() store.State {
		s := RawMockData()
		s.Experiments = &store.Experiments{
			Data: store.ExperimentData{ID: id, ReverseMenuOptions: reverseMenuOptions},
		}
		return s
	}
}
