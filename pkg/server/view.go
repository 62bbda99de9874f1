package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/vango-dev/newtab/pkg/actions"
	"github.com/vango-dev/newtab/pkg/store"
)

var (
	errUnknownTarget = errors.New("unknown target")
	errUnknownView   = errors.New("unknown view")
)

// view is one rendering of the page. It owns the click handlers collected
// while rendering and is the Dispatcher its menus were built with, so a
// click can report what it dispatched.
type view struct {
	id     string
	store  *store.Store
	logger *slog.Logger

	mu         sync.Mutex
	handlers   map[string]any
	ctx        context.Context
	dispatched []actions.Action
}

// Dispatch implements store.Dispatcher.
func (v *view) Dispatch(a actions.Action) {
	ctx := v.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	v.dispatched = append(v.dispatched, a)
	if err := v.store.DispatchContext(ctx, a); err != nil {
		v.logger.Warn("dispatch rejected", "type", string(a.Type), "error", err)
	}
}

func (v *view) setHandlers(h map[string]any) {
	v.mu.Lock()
	v.handlers = h
	v.mu.Unlock()
}

// click runs the click handler registered for hid and returns the actions
// it dispatched. Clicks on one view are serialized.
func (v *view) click(ctx context.Context, hid string) ([]actions.Action, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	handler, ok := v.handlers[hid+"_onclick"]
	if !ok {
		return nil, errUnknownTarget
	}

	v.ctx = ctx
	v.dispatched = nil
	defer func() { v.ctx = nil }()

	switch fn := handler.(type) {
	case func():
		fn()
	case func(any):
		fn(nil)
	default:
		return nil, fmt.Errorf("unsupported handler %T", handler)
	}

	out := v.dispatched
	v.dispatched = nil
	return out, nil
}

// viewRegistry keeps the most recent views.
type viewRegistry struct {
	mu    sync.Mutex
	limit int
	views map[string]*view
	order []string
}

func newViewRegistry(limit int) *viewRegistry {
	return &viewRegistry{limit: limit, views: make(map[string]*view)}
}

// newView returns an unregistered view with a fresh id.
func newView(st *store.Store, logger *slog.Logger) *view {
	v := &view{id: uuid.NewString(), store: st}
	v.logger = logger.With("view", v.id)
	return v
}

// add registers v, evicting the oldest views beyond the limit.
func (r *viewRegistry) add(v *view) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.views[v.id] = v
	r.order = append(r.order, v.id)
	for len(r.order) > r.limit {
		delete(r.views, r.order[0])
		r.order = r.order[1:]
	}
}

func (r *viewRegistry) get(id string) (*view, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.views[id]
	if !ok {
		return nil, errUnknownView
	}
	return v, nil
}

func (r *viewRegistry) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.views)
}
