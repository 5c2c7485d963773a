package guice

import "fmt"

// Target is the resolution strategy of a binding: how instances of the
// bound key are produced. It is a closed set of variants; consumers branch
// on it through VisitTarget so that adding a variant breaks every consumer
// at compile time instead of silently falling through a type switch.
type Target interface {
	fmt.Stringer

	// target restricts implementations to this package.
	target()
}

// UntargetedTarget means no target has been set. Bindings start here and
// stay here when the configuration never names an implementation.
type UntargetedTarget struct{}

// InstanceTarget binds the key to a single pre-built value.
type InstanceTarget struct {
	Instance any
}

// LinkedKeyTarget aliases the key to another key, which must be bound
// elsewhere.
type LinkedKeyTarget struct {
	Key Key
}

// ProviderInstanceTarget binds the key to a provider object that produces
// instances on demand.
type ProviderInstanceTarget struct {
	Provider Provider
}

// ProviderKeyTarget binds the key to another key whose bound value is a
// Provider; instances come from that provider.
type ProviderKeyTarget struct {
	Key Key
}

func (UntargetedTarget) target()       {}
func (InstanceTarget) target()         {}
func (LinkedKeyTarget) target()        {}
func (ProviderInstanceTarget) target() {}
func (ProviderKeyTarget) target()      {}

func (UntargetedTarget) String() string { return "untargeted" }

func (t InstanceTarget) String() string { return fmt.Sprintf("instance %v", t.Instance) }

func (t LinkedKeyTarget) String() string { return t.Key.String() }

func (t ProviderInstanceTarget) String() string { return fmt.Sprintf("provider %v", t.Provider) }

func (t ProviderKeyTarget) String() string { return "provider " + t.Key.String() }

// TargetVisitor reacts to each target variant. Implementations must handle
// every variant; DefaultTargetVisitor helps when most variants share one
// behavior.
type TargetVisitor[V any] interface {
	VisitUntargeted() V
	VisitInstance(instance any) V
	VisitLinkedKey(key Key) V
	VisitProvider(provider Provider) V
	VisitProviderKey(key Key) V
}

// VisitTarget dispatches t to the matching visitor method and returns its
// result. It is a pure function of the target value: visiting the same
// target repeatedly yields identical results.
func VisitTarget[V any](t Target, v TargetVisitor[V]) V {
	switch t := t.(type) {
	case UntargetedTarget:
		return v.VisitUntargeted()
	case InstanceTarget:
		return v.VisitInstance(t.Instance)
	case LinkedKeyTarget:
		return v.VisitLinkedKey(t.Key)
	case ProviderInstanceTarget:
		return v.VisitProvider(t.Provider)
	case ProviderKeyTarget:
		return v.VisitProviderKey(t.Key)
	default:
		panic(fmt.Sprintf("guice: unknown target variant %T", t))
	}
}

// DefaultTargetVisitor implements TargetVisitor from optional per-variant
// hooks. Variants without a hook fall back to Other; when Other is also nil
// the zero value of V is returned.
type DefaultTargetVisitor[V any] struct {
	Untargeted  func() V
	Instance    func(instance any) V
	LinkedKey   func(key Key) V
	Provider    func(provider Provider) V
	ProviderKey func(key Key) V
	Other       func() V
}

func (d DefaultTargetVisitor[V]) VisitUntargeted() V {
	if d.Untargeted != nil {
		return d.Untargeted()
	}
	return d.other()
}

func (d DefaultTargetVisitor[V]) VisitInstance(instance any) V {
	if d.Instance != nil {
		return d.Instance(instance)
	}
	return d.other()
}

func (d DefaultTargetVisitor[V]) VisitLinkedKey(key Key) V {
	if d.LinkedKey != nil {
		return d.LinkedKey(key)
	}
	return d.other()
}

func (d DefaultTargetVisitor[V]) VisitProvider(provider Provider) V {
	if d.Provider != nil {
		return d.Provider(provider)
	}
	return d.other()
}

func (d DefaultTargetVisitor[V]) VisitProviderKey(key Key) V {
	if d.ProviderKey != nil {
		return d.ProviderKey(key)
	}
	return d.other()
}

func (d DefaultTargetVisitor[V]) other() V {
	if d.Other != nil {
		return d.Other()
	}
	var zero V
	return zero
}

// A single pre-built instance cannot be re-scoped; every other target can.
var supportsScoping = DefaultTargetVisitor[bool]{
	Instance: func(any) bool { return false },
	Other:    func() bool { return true },
}
