// Package testutil provides in-memory implementations of the repository interfaces and the
// transactor, for service and handler tests that must not depend on a running MongoDB.
package testutil

import (
	"bytes"
	"context"
	"reflect"
	"sort"
	"sync"
	"time"

	"styledecor/database"
	"styledecor/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// Store holds every collection in memory.
type Store struct {
	mu         sync.Mutex
	users      map[string]models.User
	decorators map[string]models.Decorator
	bookings   map[string]models.Booking
	payments   map[string]models.Payment
	services   map[string]models.Service
	packages   map[string]models.Package
	coverages  map[string]models.CoverageArea
	failures   map[string]error
}

func NewStore() *Store {
	return &Store{
		users:      map[string]models.User{},
		decorators: map[string]models.Decorator{},
		bookings:   map[string]models.Booking{},
		payments:   map[string]models.Payment{},
		services:   map[string]models.Service{},
		packages:   map[string]models.Package{},
		coverages:  map[string]models.CoverageArea{},
		failures:   map[string]error{},
	}
}

// FailNext makes the next call of op (e.g. "payments.Insert") return err.
func (s *Store) FailNext(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[op] = err
}

// takeFailure must be called with s.mu held.
func (s *Store) takeFailure(op string) error {
	err, ok := s.failures[op]
	if ok {
		delete(s.failures, op)
	}
	return err
}

type snapshot struct {
	users      map[string]models.User
	decorators map[string]models.Decorator
	bookings   map[string]models.Booking
	payments   map[string]models.Payment
	services   map[string]models.Service
}

func copyMap[V any](m map[string]V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (s *Store) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot{
		users:      copyMap(s.users),
		decorators: copyMap(s.decorators),
		bookings:   copyMap(s.bookings),
		payments:   copyMap(s.payments),
		services:   copyMap(s.services),
	}
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = snap.users
	s.decorators = snap.decorators
	s.bookings = snap.bookings
	s.payments = snap.payments
	s.services = snap.services
}

// Transactor returns a database.Transactor that rolls the whole store back when fn fails.
func (s *Store) Transactor() database.Transactor {
	return transactor{s: s}
}

type transactor struct{ s *Store }

func (t transactor) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	snap := t.s.snapshot()
	if err := fn(ctx); err != nil {
		t.s.restore(snap)
		return err
	}
	return nil
}

// applySet emulates a $set on a decoded document and reports whether it changed.
func applySet(doc interface{}, fields bson.M) (bool, error) {
	before, err := bson.Marshal(doc)
	if err != nil {
		return false, err
	}
	var m bson.M
	if err := bson.Unmarshal(before, &m); err != nil {
		return false, err
	}
	for k, v := range fields {
		m[k] = v
	}
	merged, err := bson.Marshal(m)
	if err != nil {
		return false, err
	}
	elem := reflect.ValueOf(doc).Elem()
	elem.Set(reflect.Zero(elem.Type()))
	if err := bson.Unmarshal(merged, doc); err != nil {
		return false, err
	}
	after, err := bson.Marshal(doc)
	if err != nil {
		return false, err
	}
	return !bytes.Equal(before, after), nil
}

func modifiedCount(changed bool) int64 {
	if changed {
		return 1
	}
	return 0
}

func newID() string {
	return uuid.New().String()
}

func byCreatedDesc[T any](items []T, created func(T) time.Time) {
	sort.SliceStable(items, func(i, j int) bool {
		return created(items[i]).After(created(items[j]))
	})
}
