package guice

import (
	"fmt"
	"reflect"
	"sync"
)

// Scope applies a lifecycle policy to instances of a key. Given the
// unscoped provider it returns a provider that decides when to create and
// when to reuse instances.
type Scope interface {
	Scope(key Key, unscoped Provider) Provider
}

// Scoping is the lifecycle policy of a binding. Like Target it is a closed
// set of variants consumed through VisitScoping.
type Scoping interface {
	fmt.Stringer

	// scoping restricts implementations to this package.
	scoping()
}

// NoScoping means no lifecycle policy has been set; a new instance is
// produced for every request.
type NoScoping struct{}

// ScopeMarker names a scope by its marker type. The marker is resolved to
// a Scope through the binder's scope bindings.
type ScopeMarker struct {
	Type reflect.Type
}

// ScopeInstance carries the scope object itself.
type ScopeInstance struct {
	Scope Scope
}

// EagerSingleton is singleton lifetime with construction forced up front
// rather than on first use.
type EagerSingleton struct{}

func (NoScoping) scoping()      {}
func (ScopeMarker) scoping()    {}
func (ScopeInstance) scoping()  {}
func (EagerSingleton) scoping() {}

func (NoScoping) String() string { return "unscoped" }

func (s ScopeMarker) String() string { return s.Type.String() }

func (s ScopeInstance) String() string { return fmt.Sprintf("%v", s.Scope) }

func (EagerSingleton) String() string { return "eager singleton" }

// ScopingVisitor reacts to each scoping variant.
type ScopingVisitor[V any] interface {
	VisitNoScoping() V
	VisitScopeMarker(markerType reflect.Type) V
	VisitScope(scope Scope) V
	VisitEagerSingleton() V
}

// VisitScoping dispatches s to the matching visitor method and returns its
// result. Pure function of the scoping value.
func VisitScoping[V any](s Scoping, v ScopingVisitor[V]) V {
	switch s := s.(type) {
	case NoScoping:
		return v.VisitNoScoping()
	case ScopeMarker:
		return v.VisitScopeMarker(s.Type)
	case ScopeInstance:
		return v.VisitScope(s.Scope)
	case EagerSingleton:
		return v.VisitEagerSingleton()
	default:
		panic(fmt.Sprintf("guice: unknown scoping variant %T", s))
	}
}

type singletonMarker struct{}

// Singleton is the marker type for the built-in singleton scope. Every
// binder binds it to SingletonScope up front, so bindings may use
// In(guice.Singleton) without further setup.
var Singleton = reflect.TypeOf(singletonMarker{})

// SingletonScope memoizes the first instance a provider produces and
// returns it for every subsequent request. The returned provider is safe
// for concurrent use.
var SingletonScope Scope = singletonScope{}

type singletonScope struct{}

func (singletonScope) Scope(_ Key, unscoped Provider) Provider {
	var (
		once sync.Once
		v    any
		err  error
	)
	return ProviderFunc(func() (any, error) {
		once.Do(func() {
			v, err = unscoped.Get()
		})
		return v, err
	})
}

func (singletonScope) String() string { return "singleton" }
