// Package testutil provides shared fixtures for binding configuration
// tests: qualifier markers, observable scopes and providers, and simple
// service types.
package testutil

import (
	"errors"
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/Jsparrow/guice"
)

// Common test errors
var (
	ErrTest        = errors.New("test error")
	ErrConstructor = errors.New("constructor error")
)

// Marker qualifier types for annotating keys in tests.
type (
	Blue struct{}
	Red  struct{}
)

var (
	BlueType = reflect.TypeOf(Blue{})
	RedType  = reflect.TypeOf(Red{})
)

// RequestScoped is a scope marker with no built-in scope bound to it.
type RequestScoped struct{}

var RequestScopedType = reflect.TypeOf(RequestScoped{})

// TestService is a basic test service.
type TestService struct {
	Data string
}

// TestLogger is a test logger interface backed by TestLoggerImpl.
type TestLogger interface {
	Log(msg string)
	Logs() []string
}

// TestLoggerImpl implements TestLogger.
type TestLoggerImpl struct {
	mu   sync.Mutex
	logs []string
}

func NewTestLogger() *TestLoggerImpl { return &TestLoggerImpl{} }

func (l *TestLoggerImpl) Log(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logs = append(l.logs, msg)
}

func (l *TestLoggerImpl) Logs() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.logs))
	copy(out, l.logs)
	return out
}

// CountingProvider yields a fresh *TestService on every Get and counts the
// calls, making instance caching observable.
type CountingProvider struct {
	calls atomic.Int64
}

func (p *CountingProvider) Get() (any, error) {
	p.calls.Add(1)
	return &TestService{Data: "instance"}, nil
}

func (p *CountingProvider) Calls() int64 { return p.calls.Load() }

// FailingProvider always returns ErrConstructor.
type FailingProvider struct{}

func (FailingProvider) Get() (any, error) { return nil, ErrConstructor }

// CountingScope delegates to the unscoped provider and records which keys
// it was asked to scope.
type CountingScope struct {
	mu   sync.Mutex
	keys []guice.Key
}

func (s *CountingScope) Scope(key guice.Key, unscoped guice.Provider) guice.Provider {
	s.mu.Lock()
	s.keys = append(s.keys, key)
	s.mu.Unlock()
	return unscoped
}

func (s *CountingScope) ScopedKeys() []guice.Key {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]guice.Key, len(s.keys))
	copy(out, s.keys)
	return out
}

func (s *CountingScope) String() string { return "counting scope" }
