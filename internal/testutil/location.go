package testutil

import (
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/zjrosen/datecalc/internal/querystore"
)

// FakeLocation is an in-memory querystore.Location that records every write.
type FakeLocation struct {
	mu       sync.Mutex
	query    querystore.Query
	replaces []querystore.Query

	// OnReplace, when set, runs after every successful Replace with the new
	// snapshot. Tests use it to simulate a location that notifies
	// synchronously from inside Replace.
	OnReplace func(q querystore.Query)
	// Err, when set, is returned by Replace and the snapshot is left as is.
	Err error
}

// NewFakeLocation creates a FakeLocation holding a copy of q.
func NewFakeLocation(q querystore.Query) *FakeLocation {
	return &FakeLocation{query: q.Clone()}
}

// Query returns a copy of the current snapshot.
func (l *FakeLocation) Query() querystore.Query {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.query.Clone()
}

// Replace stores q, or returns Err.
func (l *FakeLocation) Replace(q querystore.Query) error {
	l.mu.Lock()
	if l.Err != nil {
		err := l.Err
		l.mu.Unlock()
		return err
	}
	l.query = q.Clone()
	l.replaces = append(l.replaces, q.Clone())
	hook := l.OnReplace
	l.mu.Unlock()

	if hook != nil {
		hook(q.Clone())
	}
	return nil
}

// Set overwrites the snapshot without recording a write, like a user editing
// the location by hand.
func (l *FakeLocation) Set(q querystore.Query) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.query = q.Clone()
}

// Replaces returns every snapshot written through Replace, oldest first.
func (l *FakeLocation) Replaces() []querystore.Query {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]querystore.Query, len(l.replaces))
	copy(out, l.replaces)
	return out
}

// MockLocation is a testify mock of querystore.Location.
type MockLocation struct {
	mock.Mock
}

// Query implements querystore.Location.
func (m *MockLocation) Query() querystore.Query {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(querystore.Query)
}

// Replace implements querystore.Location.
func (m *MockLocation) Replace(q querystore.Query) error {
	args := m.Called(q)
	return args.Error(0)
}

var (
	_ querystore.Location = (*FakeLocation)(nil)
	_ querystore.Location = (*MockLocation)(nil)
)
