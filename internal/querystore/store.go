package querystore

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/datecalc/internal/log"
	"github.com/zjrosen/datecalc/internal/tracing"
)

// Location is the external collaborator that owns the query snapshot.
type Location interface {
	// Query returns the current snapshot.
	Query() Query
	// Replace sets a new snapshot without creating a history entry.
	Replace(q Query) error
}

// Direction names one side of the synchronization.
type Direction int

const (
	// Inbound reflects location changes into the record.
	Inbound Direction = iota
	// Outbound reflects record changes into the location.
	Outbound
)

func (d Direction) String() string {
	switch d {
	case Inbound:
		return "inbound"
	case Outbound:
		return "outbound"
	default:
		return "unknown"
	}
}

// Phase is the state of one sync direction.
type Phase int

const (
	// PhaseUninitialized means the store is not mounted and never syncs.
	PhaseUninitialized Phase = iota
	// PhaseIdle means no pass is running in this direction.
	PhaseIdle
	// PhasePropagating means a pass is running in this direction.
	PhasePropagating
)

func (p Phase) String() string {
	switch p {
	case PhaseUninitialized:
		return "uninitialized"
	case PhaseIdle:
		return "idle"
	case PhasePropagating:
		return "propagating"
	default:
		return "unknown"
	}
}

// Option configures a Store.
type Option func(*Store)

// WithTracer records a span for every sync pass.
func WithTracer(tracer trace.Tracer) Option {
	return func(s *Store) {
		if tracer != nil {
			s.tracer = tracer
		}
	}
}

type observer struct {
	id uint64
	fn func(Record)
}

// Store owns the domain Record and keeps it in sync with a Location.
//
// Every operation is queued and the queue is drained one event at a time, so
// a pass always completes before the next one starts. Calls made while a pass
// is running, from an observer or from a Location that notifies inside
// Replace, wait in the queue.
//
// Store may be called from several goroutines, but only one of them drains
// the queue at a time. A call that arrives while another goroutine is
// draining is queued and returns at once; that goroutine applies it before it
// returns. State read right after such a call may not include it yet, so
// cross-goroutine callers should observe results through Subscribe.
type Store struct {
	registry Registry
	location Location
	tracer   trace.Tracer

	mu       sync.Mutex // guards queue and draining
	queue    []func()
	draining bool

	stateMu sync.RWMutex // guards state and phases
	state   Record
	phases  [2]Phase

	obsMu     sync.Mutex
	observers []observer
	nextObsID uint64
}

// New creates an unmounted Store. Call Mount before use.
func New(reg Registry, loc Location, opts ...Option) *Store {
	s := &Store{
		registry: reg,
		location: loc,
		tracer:   noop.NewTracerProvider().Tracer("querystore"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Mount seeds the record by parsing the current location once and makes both
// directions idle. Mount never writes to the location. Mounting a mounted
// store is a no-op.
func (s *Store) Mount() {
	s.dispatch(func() {
		if s.Mounted() {
			return
		}
		_, span := s.tracer.Start(context.Background(), tracing.SpanMount)
		defer span.End()

		seed := ParseRecord(s.registry, s.location.Query())
		s.stateMu.Lock()
		s.state = seed
		s.phases = [2]Phase{PhaseIdle, PhaseIdle}
		s.stateMu.Unlock()

		span.SetAttributes(attribute.Int(tracing.AttrFieldCount, len(seed)))
		log.Debug(log.CatSync, "store mounted", "fields", len(seed))
	})
}

// Unmount drops the record and returns both directions to uninitialized.
// Events still queued are ignored. A later Mount re-seeds from the location.
func (s *Store) Unmount() {
	s.dispatch(func() {
		s.stateMu.Lock()
		s.state = nil
		s.phases = [2]Phase{PhaseUninitialized, PhaseUninitialized}
		s.stateMu.Unlock()
		log.Debug(log.CatSync, "store unmounted")
	})
}

// Mounted reports whether Mount has run since creation or the last Unmount.
func (s *Store) Mounted() bool {
	return s.Phase(Inbound) != PhaseUninitialized
}

// Phase returns the current phase of direction d.
func (s *Store) Phase(d Direction) Phase {
	if d != Inbound && d != Outbound {
		return PhaseUninitialized
	}
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.phases[d]
}

// State returns a copy of the current record. It is nil before Mount.
func (s *Store) State() Record {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	if s.state == nil {
		return nil
	}
	return s.state.Clone()
}

// Update merges partial into the record, last write wins per key, and then
// writes the serialized record to the location when it differs.
func (s *Store) Update(partial Record) {
	partial = partial.Clone()
	s.dispatch(func() {
		if !s.Mounted() {
			log.Debug(log.CatSync, "update ignored: store not mounted", "fields", len(partial))
			return
		}
		s.stateMu.Lock()
		s.state = s.state.Merge(partial)
		s.stateMu.Unlock()

		s.syncOutbound()
		s.notify()
	})
}

// LocationChanged tells the store that the location snapshot changed.
// A snapshot that already matches the serialized record is an echo of the
// store's own write and is ignored. Anything else is parsed into a new record,
// which is then written back if parsing canonicalized it.
func (s *Store) LocationChanged() {
	s.dispatch(func() {
		if !s.Mounted() {
			log.Debug(log.CatSync, "location change ignored: store not mounted")
			return
		}
		if !s.syncInbound() {
			return
		}
		s.syncOutbound()
		s.notify()
	})
}

// Subscribe registers fn to receive the record after every change.
// Observers run in registration order. The returned function unsubscribes.
func (s *Store) Subscribe(fn func(Record)) (unsubscribe func()) {
	s.obsMu.Lock()
	id := s.nextObsID
	s.nextObsID++
	s.observers = append(s.observers, observer{id: id, fn: fn})
	s.obsMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.obsMu.Lock()
			defer s.obsMu.Unlock()
			for i, o := range s.observers {
				if o.id == id {
					s.observers = append(s.observers[:i:i], s.observers[i+1:]...)
					return
				}
			}
		})
	}
}

// syncInbound reports whether the record was replaced.
func (s *Store) syncInbound() bool {
	_, span := s.tracer.Start(context.Background(), tracing.SpanSyncInbound,
		trace.WithAttributes(attribute.String(tracing.AttrSyncDirection, Inbound.String())))
	defer span.End()

	s.setPhase(Inbound, PhasePropagating)
	defer s.setPhase(Inbound, PhaseIdle)

	current := SerializeRecord(s.registry, s.snapshot())
	external := s.location.Query()
	if EqualShallow(current, external) {
		span.AddEvent(tracing.EventEchoIgnored)
		span.SetAttributes(attribute.Bool(tracing.AttrSyncChanged, false))
		log.Debug(log.CatSync, "inbound: location matches record")
		return false
	}

	next := ParseRecord(s.registry, external)
	s.stateMu.Lock()
	s.state = next
	s.stateMu.Unlock()

	span.AddEvent(tracing.EventRecordParsed)
	span.SetAttributes(attribute.Bool(tracing.AttrSyncChanged, true))
	log.Debug(log.CatSync, "inbound: record replaced from location", "keys", len(external))
	return true
}

func (s *Store) syncOutbound() {
	_, span := s.tracer.Start(context.Background(), tracing.SpanSyncOutbound,
		trace.WithAttributes(attribute.String(tracing.AttrSyncDirection, Outbound.String())))
	defer span.End()

	s.setPhase(Outbound, PhasePropagating)
	defer s.setPhase(Outbound, PhaseIdle)

	next := SerializeRecord(s.registry, s.snapshot())
	if EqualShallow(s.location.Query(), next) {
		span.SetAttributes(attribute.Bool(tracing.AttrSyncWrote, false))
		log.Debug(log.CatSync, "outbound: location already up to date")
		return
	}

	if err := s.location.Replace(next); err != nil {
		span.RecordError(err)
		span.AddEvent(tracing.EventReplaceFailed)
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.Bool(tracing.AttrSyncWrote, false))
		log.ErrorErr(log.CatSync, "outbound: replace failed", err)
		return
	}
	span.SetAttributes(attribute.Bool(tracing.AttrSyncWrote, true))
	log.Debug(log.CatSync, "outbound: location replaced", "keys", len(next))
}

func (s *Store) notify() {
	s.obsMu.Lock()
	observers := make([]observer, len(s.observers))
	copy(observers, s.observers)
	s.obsMu.Unlock()

	for _, o := range observers {
		o.fn(s.State())
	}
}

func (s *Store) snapshot() Record {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.state
}

func (s *Store) setPhase(d Direction, p Phase) {
	s.stateMu.Lock()
	s.phases[d] = p
	s.stateMu.Unlock()
}

// dispatch queues event and, unless another call is already draining the
// queue, drains it on the calling goroutine. Otherwise it returns without
// waiting for event to run.
func (s *Store) dispatch(event func()) {
	s.mu.Lock()
	s.queue = append(s.queue, event)
	if s.draining {
		s.mu.Unlock()
		return
	}
	s.draining = true

	for len(s.queue) > 0 {
		next := s.queue[0]
		s.queue[0] = nil
		s.queue = s.queue[1:]
		s.mu.Unlock()
		s.run(next)
		s.mu.Lock()
	}
	s.draining = false
	s.mu.Unlock()
}

func (s *Store) run(event func()) {
	defer func() {
		if r := recover(); r != nil {
			s.mu.Lock()
			s.queue = nil
			s.draining = false
			s.mu.Unlock()
			panic(r)
		}
	}()
	event()
}
