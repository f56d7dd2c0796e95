package location

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/datecalc/internal/log"
	"github.com/zjrosen/datecalc/internal/pubsub"
	"github.com/zjrosen/datecalc/internal/querystore"
	"github.com/zjrosen/datecalc/internal/tracing"
)

// RouterOption configures a Router.
type RouterOption func(*Router)

// WithTracer records a span for every history operation.
func WithTracer(tracer trace.Tracer) RouterOption {
	return func(r *Router) {
		if tracer != nil {
			r.tracer = tracer
		}
	}
}

// Router is the address bar of the calculator. It caches the current history
// entry and publishes the new query on its broker whenever the current entry
// changes. Events carry a snapshot, but subscribers should read Query when
// they handle one since later changes may already have landed.
type Router struct {
	repo   HistoryRepository
	broker *pubsub.Broker[querystore.Query]
	tracer trace.Tracer

	mu      sync.Mutex // serializes repository writes and guards current
	current Entry
}

// NewRouter loads the current entry of repo, creating an empty first entry
// when the history is empty.
func NewRouter(ctx context.Context, repo HistoryRepository, opts ...RouterOption) (*Router, error) {
	r := &Router{
		repo:   repo,
		broker: pubsub.NewBroker[querystore.Query](),
		tracer: noop.NewTracerProvider().Tracer("location"),
	}
	for _, opt := range opts {
		opt(r)
	}

	entry, err := repo.Current(ctx)
	if errors.Is(err, ErrNoEntries) {
		entry, err = repo.Push(ctx, querystore.Query{})
	}
	if err != nil {
		return nil, fmt.Errorf("load current location: %w", err)
	}
	r.current = entry
	log.Debug(log.CatLocation, "router ready", "entry", entry.ID, "query", Format(entry.Query))
	return r, nil
}

// Query returns the current query.
func (r *Router) Query() querystore.Query {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current.Query.Clone()
}

// Entry returns the current history entry.
func (r *Router) Entry() Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	e := r.current
	e.Query = e.Query.Clone()
	return e
}

// String returns the current query string.
func (r *Router) String() string {
	return Format(r.Query())
}

// Replace rewrites the current entry without adding to the history.
func (r *Router) Replace(q querystore.Query) error {
	return r.write(context.Background(), "replace", pubsub.ReplacedEvent, func(ctx context.Context) (Entry, bool, error) {
		e, err := r.repo.ReplaceCurrent(ctx, q)
		return e, true, err
	})
}

// Push navigates to q, adding a history entry and dropping forward entries.
func (r *Router) Push(ctx context.Context, q querystore.Query) error {
	return r.write(ctx, "push", pubsub.NavigatedEvent, func(ctx context.Context) (Entry, bool, error) {
		e, err := r.repo.Push(ctx, q)
		return e, true, err
	})
}

// Back navigates to the previous entry. It reports false at the oldest entry.
func (r *Router) Back(ctx context.Context) (bool, error) {
	return r.move(ctx, "back", -1)
}

// Forward navigates to the next entry. It reports false at the newest entry.
func (r *Router) Forward(ctx context.Context) (bool, error) {
	return r.move(ctx, "forward", 1)
}

// Reload re-reads the current entry from the repository, which another
// process may have changed. It publishes and reports true only when the
// current entry or its query differs from the cached one.
func (r *Router) Reload(ctx context.Context) (bool, error) {
	changed := false
	err := r.write(ctx, "reload", pubsub.NavigatedEvent, func(ctx context.Context) (Entry, bool, error) {
		e, err := r.repo.Current(ctx)
		if err != nil {
			return e, false, err
		}
		changed = e.ID != r.current.ID || !querystore.EqualShallow(e.Query, r.current.Query)
		return e, changed, nil
	})
	return changed, err
}

// Broker returns the broker the Router publishes query changes on.
func (r *Router) Broker() *pubsub.Broker[querystore.Query] {
	return r.broker
}

// Close closes the broker. The repository is owned by the caller.
func (r *Router) Close() {
	r.broker.Close()
}

func (r *Router) move(ctx context.Context, op string, delta int) (bool, error) {
	moved := false
	err := r.write(ctx, op, pubsub.NavigatedEvent, func(ctx context.Context) (Entry, bool, error) {
		e, ok, err := r.repo.Move(ctx, delta)
		moved = ok
		return e, ok, err
	})
	return moved, err
}

// write runs op under the lock and, when op reports a change, caches the
// returned entry and publishes its query.
func (r *Router) write(ctx context.Context, name string, event pubsub.EventType, op func(context.Context) (Entry, bool, error)) error {
	ctx, span := r.tracer.Start(ctx, tracing.SpanPrefixLocation+name)
	defer span.End()

	r.mu.Lock()
	entry, changed, err := op(ctx)
	if err != nil {
		r.mu.Unlock()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.ErrorErr(log.CatLocation, "history "+name+" failed", err)
		return fmt.Errorf("history %s: %w", name, err)
	}
	if changed {
		r.current = entry
	}
	r.mu.Unlock()

	span.SetAttributes(
		attribute.String(tracing.AttrEntryID, entry.ID.String()),
		attribute.String(tracing.AttrQuery, Format(entry.Query)),
	)
	if !changed {
		return nil
	}

	n := r.broker.Publish(event, entry.Query.Clone())
	log.Debug(log.CatLocation, "location "+name, "entry", entry.ID, "query", Format(entry.Query), "subscribers", n)
	return nil
}

var _ querystore.Location = (*Router)(nil)
