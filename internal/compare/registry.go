package compare

import (
	"sync"

	"github.com/paveg/comparego/internal/corerrors"
	"github.com/paveg/comparego/internal/matcher"
)

// Registry is the process-wide store of live comparison contexts (spec
// §4.7, §5 "Shared-resource policy"). Contexts are immutable after
// Create, so every method but Put/Discard only needs the read lock;
// the shape generalizes the teacher's worker.Pool (internal/worker/pool.go),
// whose sync.RWMutex guards a single started flag, into one guarding a
// map of entries instead.
type Registry struct {
	mu    sync.RWMutex
	byID  map[string]*Context
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byID: make(map[string]*Context)}
}

// Put registers ctx under its own id and returns that id. Put is the only
// write path besides Discard; both take the exclusive lock.
func (r *Registry) Put(ctx *Context) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[ctx.ID()] = ctx
	return ctx.ID()
}

// Get returns the context for id, or ErrComparisonNotFound.
func (r *Registry) Get(id string) (*Context, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ctx, ok := r.byID[id]
	if !ok {
		return nil, corerrors.ErrComparisonNotFound
	}
	return ctx, nil
}

// Summary returns id's aggregate counts (spec §4.7 `summary`).
func (r *Registry) Summary(id string) (Summary, error) {
	ctx, err := r.Get(id)
	if err != nil {
		return Summary{}, err
	}
	return ctx.Summary(), nil
}

// ListChanges delegates to id's context (spec §4.7 `list_changes`).
func (r *Registry) ListChanges(id string, filter Filter, sortKey SortKey, offset, limit int) ([]matcher.Change, error) {
	ctx, err := r.Get(id)
	if err != nil {
		return nil, err
	}
	return ctx.ListChanges(filter, sortKey, offset, limit), nil
}

// GetChange delegates to id's context (spec §4.7 `get_change`).
func (r *Registry) GetChange(id, functionName string) (matcher.Change, error) {
	ctx, err := r.Get(id)
	if err != nil {
		return matcher.Change{}, err
	}
	return ctx.GetChange(functionName)
}

// Discard removes id from the registry. Idempotent: discarding an id that
// is absent (already discarded, or never existed) is not an error (spec
// §4.7 `discard`: "ack; idempotent").
func (r *Registry) Discard(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byID, id)
}

// Count reports how many contexts are currently live. Mainly useful for
// tests and diagnostics.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}
