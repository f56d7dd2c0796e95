package querystore_test

import (
	"errors"
	"fmt"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/zjrosen/datecalc/internal/querystore"
	"github.com/zjrosen/datecalc/internal/testutil"
	"github.com/zjrosen/datecalc/internal/tracing"
)

func intCodec() querystore.Codec {
	return querystore.Codec{
		Parse: func(raw string, present bool) any {
			if !present {
				return nil
			}
			n, err := strconv.Atoi(raw)
			if err != nil {
				return nil
			}
			return n
		},
		Serialize: func(v any) string {
			if n, ok := v.(int); ok {
				return strconv.Itoa(n)
			}
			return ""
		},
	}
}

func storeRegistry() querystore.Registry {
	double := intCodec()
	double.Default = func(_ string, v any, parsed querystore.Record) any {
		if n, ok := parsed["count"].(int); ok {
			return n * 2
		}
		return v
	}
	return querystore.Registry{"count": intCodec(), "double": double}
}

func newMountedStore(t *testing.T, q querystore.Query, opts ...querystore.Option) (*querystore.Store, *testutil.FakeLocation) {
	t.Helper()
	loc := testutil.NewFakeLocation(q)
	store := querystore.New(storeRegistry(), loc, opts...)
	store.Mount()
	return store, loc
}

func TestStore_MountSeedsWithoutWriting(t *testing.T) {
	store, loc := newMountedStore(t, querystore.Query{"count": "5"})

	require.True(t, store.Mounted())
	require.Equal(t, querystore.Record{"count": 5, "double": 10}, store.State())
	require.Empty(t, loc.Replaces(), "mount must not write to the location")
	require.Equal(t, querystore.Query{"count": "5"}, loc.Query())
	require.Equal(t, querystore.PhaseIdle, store.Phase(querystore.Inbound))
	require.Equal(t, querystore.PhaseIdle, store.Phase(querystore.Outbound))
}

func TestStore_MountDoesNotNotify(t *testing.T) {
	loc := testutil.NewFakeLocation(querystore.Query{"count": "1"})
	store := querystore.New(storeRegistry(), loc)
	calls := 0
	store.Subscribe(func(querystore.Record) { calls++ })

	store.Mount()

	require.Zero(t, calls)
}

func TestStore_MountTwiceIsNoop(t *testing.T) {
	store, loc := newMountedStore(t, querystore.Query{"count": "5"})
	loc.Set(querystore.Query{"count": "9"})

	store.Mount()

	require.Equal(t, 5, store.State()["count"])
}

func TestStore_IgnoresCallsBeforeMount(t *testing.T) {
	loc := testutil.NewFakeLocation(querystore.Query{"count": "5"})
	store := querystore.New(storeRegistry(), loc)
	calls := 0
	store.Subscribe(func(querystore.Record) { calls++ })

	store.Update(querystore.Record{"count": 1})
	store.LocationChanged()

	require.False(t, store.Mounted())
	require.Nil(t, store.State())
	require.Empty(t, loc.Replaces())
	require.Zero(t, calls)
	require.Equal(t, querystore.PhaseUninitialized, store.Phase(querystore.Inbound))
	require.Equal(t, querystore.PhaseUninitialized, store.Phase(querystore.Outbound))
}

func TestStore_UpdateWritesLocation(t *testing.T) {
	store, loc := newMountedStore(t, querystore.Query{})

	store.Update(querystore.Record{"count": 3})

	require.Equal(t, querystore.Record{"count": 3, "double": nil}, store.State())
	require.Equal(t, []querystore.Query{{"count": "3"}}, loc.Replaces())
}

func TestStore_UpdateIsIdempotent(t *testing.T) {
	store, loc := newMountedStore(t, querystore.Query{})

	store.Update(querystore.Record{"count": 3})
	store.Update(querystore.Record{"count": 3})

	require.Len(t, loc.Replaces(), 1, "second update serializes to the same snapshot")
}

func TestStore_UpdateLastWriteWins(t *testing.T) {
	store, _ := newMountedStore(t, querystore.Query{"count": "1"})

	store.Update(querystore.Record{"count": 2, "double": 7})
	store.Update(querystore.Record{"double": 8})

	require.Equal(t, querystore.Record{"count": 2, "double": 8}, store.State())
}

func TestStore_UpdateClonesPartial(t *testing.T) {
	store, _ := newMountedStore(t, querystore.Query{})
	partial := querystore.Record{"count": 3}

	store.Update(partial)
	partial["count"] = 99

	require.Equal(t, 3, store.State()["count"])
}

func TestStore_StateIsACopy(t *testing.T) {
	store, _ := newMountedStore(t, querystore.Query{"count": "1"})

	snapshot := store.State()
	snapshot["count"] = 42

	require.Equal(t, 1, store.State()["count"])
}

func TestStore_UpdateNotifiesObservers(t *testing.T) {
	store, _ := newMountedStore(t, querystore.Query{})
	var got []querystore.Record
	store.Subscribe(func(r querystore.Record) { got = append(got, r) })

	store.Update(querystore.Record{"count": 4})

	require.Len(t, got, 1)
	require.Equal(t, 4, got[0]["count"])
}

func TestStore_LocationChangedParsesAndCanonicalizes(t *testing.T) {
	store, loc := newMountedStore(t, querystore.Query{})
	var got []querystore.Record
	store.Subscribe(func(r querystore.Record) { got = append(got, r) })

	loc.Set(querystore.Query{"count": "3"})
	store.LocationChanged()

	require.Equal(t, querystore.Record{"count": 3, "double": 6}, store.State())
	require.Equal(t, []querystore.Query{{"count": "3", "double": "6"}}, loc.Replaces())
	require.Len(t, got, 1)
}

func TestStore_LocationChangedCanonicalLocationNotRewritten(t *testing.T) {
	store, loc := newMountedStore(t, querystore.Query{})

	loc.Set(querystore.Query{"count": "3", "double": "6"})
	store.LocationChanged()

	require.Equal(t, 3, store.State()["count"])
	require.Empty(t, loc.Replaces())
}

func TestStore_LocationChangedDropsInvalidValues(t *testing.T) {
	store, loc := newMountedStore(t, querystore.Query{"count": "2"})

	loc.Set(querystore.Query{"count": "abc"})
	store.LocationChanged()

	require.Equal(t, querystore.Record{"count": nil, "double": nil}, store.State())
	require.Equal(t, []querystore.Query{{}}, loc.Replaces())
}

func TestStore_LocationChangedReplacesWholeRecord(t *testing.T) {
	store, loc := newMountedStore(t, querystore.Query{})
	store.Update(querystore.Record{"note": "keep?"})

	loc.Set(querystore.Query{"count": "1", "double": "2"})
	store.LocationChanged()

	require.NotContains(t, store.State(), "note", "inbound reparse does not merge")
}

func TestStore_EchoIsIgnored(t *testing.T) {
	loc := testutil.NewFakeLocation(querystore.Query{})
	store := querystore.New(storeRegistry(), loc)
	store.Mount()
	loc.OnReplace = func(querystore.Query) { store.LocationChanged() }

	notifications := 0
	store.Subscribe(func(querystore.Record) { notifications++ })

	store.Update(querystore.Record{"count": 7})

	require.Len(t, loc.Replaces(), 1, "no feedback loop")
	require.Equal(t, 1, notifications, "echo does not notify")
	require.Equal(t, querystore.Record{"count": 7, "double": nil}, store.State())
}

func TestStore_CanonicalizingEchoSettles(t *testing.T) {
	loc := testutil.NewFakeLocation(querystore.Query{})
	store := querystore.New(storeRegistry(), loc)
	store.Mount()
	loc.OnReplace = func(querystore.Query) { store.LocationChanged() }

	loc.Set(querystore.Query{"count": "3"})
	store.LocationChanged()

	require.Equal(t, []querystore.Query{{"count": "3", "double": "6"}}, loc.Replaces())
}

func TestStore_ReentrantUpdateIsQueued(t *testing.T) {
	store, loc := newMountedStore(t, querystore.Query{})
	var seen []int
	store.Subscribe(func(r querystore.Record) {
		n, _ := r["count"].(int)
		seen = append(seen, n)
		if n == 1 {
			store.Update(querystore.Record{"count": 2})
			// The nested update runs after this observer returns.
			require.Equal(t, 1, store.State()["count"])
		}
	})

	store.Update(querystore.Record{"count": 1})

	require.Equal(t, []int{1, 2}, seen)
	require.Equal(t, []querystore.Query{{"count": "1"}, {"count": "2"}}, loc.Replaces())
}

func TestStore_PhaseDuringOutbound(t *testing.T) {
	store, loc := newMountedStore(t, querystore.Query{})
	var during querystore.Phase
	loc.OnReplace = func(querystore.Query) { during = store.Phase(querystore.Outbound) }

	store.Update(querystore.Record{"count": 1})

	require.Equal(t, querystore.PhasePropagating, during)
	require.Equal(t, querystore.PhaseIdle, store.Phase(querystore.Outbound))
}

func TestStore_ReplaceErrorIsNotFatal(t *testing.T) {
	store, loc := newMountedStore(t, querystore.Query{})
	loc.Err = errors.New("history unavailable")
	notified := false
	store.Subscribe(func(querystore.Record) { notified = true })

	require.NotPanics(t, func() { store.Update(querystore.Record{"count": 5}) })

	require.Equal(t, 5, store.State()["count"])
	require.True(t, notified)
	require.Equal(t, querystore.PhaseIdle, store.Phase(querystore.Outbound))
}

func TestStore_ObserverOrderAndUnsubscribe(t *testing.T) {
	store, _ := newMountedStore(t, querystore.Query{})
	var order []string
	store.Subscribe(func(querystore.Record) { order = append(order, "first") })
	unsub := store.Subscribe(func(querystore.Record) { order = append(order, "second") })
	store.Subscribe(func(querystore.Record) { order = append(order, "third") })

	store.Update(querystore.Record{"count": 1})
	require.Equal(t, []string{"first", "second", "third"}, order)

	unsub()
	unsub()
	order = nil
	store.Update(querystore.Record{"count": 2})
	require.Equal(t, []string{"first", "third"}, order)
}

func TestStore_UnmountAndRemount(t *testing.T) {
	store, loc := newMountedStore(t, querystore.Query{"count": "1"})

	store.Unmount()
	require.False(t, store.Mounted())
	require.Nil(t, store.State())

	store.Update(querystore.Record{"count": 9})
	require.Empty(t, loc.Replaces())

	loc.Set(querystore.Query{"count": "4"})
	store.Mount()
	require.Equal(t, 4, store.State()["count"])
}

func TestStore_PanickingObserverDoesNotWedgeQueue(t *testing.T) {
	store, _ := newMountedStore(t, querystore.Query{})
	boom := true
	store.Subscribe(func(querystore.Record) {
		if boom {
			boom = false
			panic("observer failed")
		}
	})

	require.Panics(t, func() { store.Update(querystore.Record{"count": 1}) })
	store.Update(querystore.Record{"count": 2})

	require.Equal(t, 2, store.State()["count"])
}

func TestStore_ConcurrentUpdates(t *testing.T) {
	store, loc := newMountedStore(t, querystore.Query{})

	var wg sync.WaitGroup
	for i := range 32 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			store.Update(querystore.Record{fmt.Sprintf("k%d", i): "v"})
		}(i)
	}
	wg.Wait()

	state := store.State()
	for i := range 32 {
		require.Equal(t, "v", state[fmt.Sprintf("k%d", i)])
	}
	require.Equal(t, querystore.SerializeRecord(storeRegistry(), state), loc.Query())
}

func TestStore_UpdateFromOtherGoroutineIsAppliedByDrainer(t *testing.T) {
	store, loc := newMountedStore(t, querystore.Query{"count": "1"})
	entered := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	store.Subscribe(func(querystore.Record) {
		once.Do(func() {
			close(entered)
			<-release
		})
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		store.Update(querystore.Record{"count": 2})
	}()
	<-entered

	store.Update(querystore.Record{"count": 3})
	require.Equal(t, 2, store.State()["count"], "queued update is not applied by the caller")

	close(release)
	<-done
	require.Equal(t, 3, store.State()["count"])
	require.Equal(t, "3", loc.Query()["count"])
}

func TestStore_MockLocationInteraction(t *testing.T) {
	loc := new(testutil.MockLocation)
	loc.On("Query").Return(querystore.Query{})
	loc.On("Replace", querystore.Query{"count": "1"}).Return(nil).Once()

	store := querystore.New(storeRegistry(), loc)
	store.Mount()
	store.Update(querystore.Record{"count": 1})

	loc.AssertExpectations(t)
	loc.AssertNumberOfCalls(t, "Replace", 1)
}

func TestStore_RecordsSpans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = provider.Shutdown(t.Context()) })

	store, loc := newMountedStore(t, querystore.Query{},
		querystore.WithTracer(provider.Tracer("test")))

	store.Update(querystore.Record{"count": 2})
	loc.Set(querystore.Query{"count": "2"})
	store.LocationChanged()

	byName := map[string][]sdktrace.ReadOnlySpan{}
	for _, s := range recorder.Ended() {
		byName[s.Name()] = append(byName[s.Name()], s)
	}
	require.Len(t, byName[tracing.SpanMount], 1)
	require.Len(t, byName[tracing.SpanSyncInbound], 1)
	require.Len(t, byName[tracing.SpanSyncOutbound], 1, "echo skips the outbound pass")

	out := byName[tracing.SpanSyncOutbound][0]
	require.Contains(t, out.Attributes(), attribute.Bool(tracing.AttrSyncWrote, true))

	in := byName[tracing.SpanSyncInbound][0]
	require.Contains(t, in.Attributes(), attribute.Bool(tracing.AttrSyncChanged, false))
}

func TestDirectionAndPhaseStrings(t *testing.T) {
	require.Equal(t, "inbound", querystore.Inbound.String())
	require.Equal(t, "outbound", querystore.Outbound.String())
	require.Equal(t, "uninitialized", querystore.PhaseUninitialized.String())
	require.Equal(t, "idle", querystore.PhaseIdle.String())
	require.Equal(t, "propagating", querystore.PhasePropagating.String())
}
