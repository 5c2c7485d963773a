package guice

import (
	"fmt"
	"reflect"

	"github.com/google/uuid"
)

// Messages recorded as configuration errors when a builder precondition is
// violated. These are accumulated, never thrown: a configuration pass keeps
// going so every problem surfaces at once.
const (
	implementationAlreadySet   = "Implementation is set more than once."
	singleInstanceAndScope     = "Setting the scope is not permitted when binding to a single instance."
	scopeAlreadySet            = "Scope is set more than once."
	annotationAlreadySpecified = "More than one annotation is specified for this binding."
	constantValueAlreadySet    = "Constant value is set more than once."
)

// ModuleBinding is a snapshot of a request to bind a value: a key, the
// target that produces instances for it, and the scoping policy applied to
// those instances.
//
// A binding is mutable only through the builders returned by
// RegularBuilder and ConstantBuilder, and only for the duration of the
// configuration pass that created it. Once the pass completes the binding
// is treated as frozen: nothing mutates it, so it may be read concurrently
// without synchronization.
type ModuleBinding struct {
	source  any
	id      string
	key     Key
	target  Target
	scoping Scoping
}

// NewBinding returns a binding for key, recorded at source. Both arguments
// are required.
func NewBinding(source any, key Key) *ModuleBinding {
	if key.IsZero() {
		panic("guice: untyped key")
	}
	b := NewUntypedBinding(source)
	b.key = key
	return b
}

// NewUntypedBinding returns a binding whose key starts as the untyped
// placeholder. The constant builder resolves the key's type from the
// constant value it is eventually given.
func NewUntypedBinding(source any) *ModuleBinding {
	if source == nil {
		panic("guice: nil source")
	}
	return &ModuleBinding{
		source:  source,
		id:      uuid.NewString(),
		target:  UntargetedTarget{},
		scoping: NoScoping{},
	}
}

// Source returns the provenance marker the binding was recorded at.
func (b *ModuleBinding) Source() any { return b.source }

// ID returns the binding's unique element identity. Keys may collide while
// a configuration pass is still in flight (two bindings can share a key
// until qualifiers are attached), so bookkeeping that needs a stable
// identity uses the ID instead.
func (b *ModuleBinding) ID() string { return b.id }

// Key returns the bound key.
func (b *ModuleBinding) Key() Key { return b.key }

// Target returns the binding's resolution target. Branch on it with
// VisitTarget.
func (b *ModuleBinding) Target() Target { return b.target }

// Scoping returns the binding's lifecycle policy. Branch on it with
// VisitScoping.
func (b *ModuleBinding) Scoping() Scoping { return b.scoping }

func (b *ModuleBinding) String() string {
	s := "bind " + b.key.String()
	if _, ok := b.target.(UntargetedTarget); !ok {
		s += " to " + b.target.String()
	}
	if _, ok := b.scoping.(NoScoping); !ok {
		s += " in " + b.scoping.String()
	}
	return s
}

// RegularBuilder returns write access to the binding for targets that are
// keys, instances, or providers. Precondition violations are recorded on
// the binder rather than stopping the pass.
func (b *ModuleBinding) RegularBuilder(binder Binder) *RegularBuilder {
	if binder == nil {
		panic("guice: nil binder")
	}
	return &RegularBuilder{binding: b, binder: binder.WithSource(b.source)}
}

// ConstantBuilder returns write access to the binding for constant values,
// where the key's type is derived from the value itself.
func (b *ModuleBinding) ConstantBuilder(binder Binder) *ConstantBuilder {
	if binder == nil {
		panic("guice: nil binder")
	}
	return &ConstantBuilder{binding: b, binder: binder.WithSource(b.source)}
}

// RegularBuilder accumulates the configuration of one binding through a
// fluent call chain. Each aspect of the binding (qualifier, target,
// scoping) may be set at most once; violations are recorded as
// configuration errors and the rejected mutation is dropped, leaving the
// binding as it was.
type RegularBuilder struct {
	binding *ModuleBinding
	binder  Binder
}

// AnnotatedWith attaches a qualifier value to the binding's key. The
// qualifier must be non-nil and comparable.
func (rb *RegularBuilder) AnnotatedWith(qualifier any) *RegularBuilder {
	if qualifier == nil {
		panic("guice: nil qualifier")
	}
	if rb.checkNotAnnotated() {
		rb.binding.key = rb.binding.key.Qualified(qualifier)
	}
	return rb
}

// AnnotatedWithType attaches a marker qualifier type to the binding's key.
func (rb *RegularBuilder) AnnotatedWithType(qualifierType reflect.Type) *RegularBuilder {
	if qualifierType == nil {
		panic("guice: nil qualifier type")
	}
	if rb.checkNotAnnotated() {
		rb.binding.key = rb.binding.key.QualifiedBy(qualifierType)
	}
	return rb
}

// To links the binding to another key.
func (rb *RegularBuilder) To(targetKey Key) *RegularBuilder {
	if targetKey.IsZero() {
		panic("guice: untyped target key")
	}
	if rb.checkNotTargeted() {
		rb.binding.target = LinkedKeyTarget{Key: targetKey}
	}
	return rb
}

// ToType links the binding to the unqualified key of implementationType.
func (rb *RegularBuilder) ToType(implementationType reflect.Type) *RegularBuilder {
	if implementationType == nil {
		panic("guice: nil implementation type")
	}
	return rb.To(KeyFor(implementationType))
}

// ToInstance binds the key to a single pre-built value. A nil instance is
// representable here; whether it is acceptable is for the consumer of the
// binding to decide. Terminal: an instance cannot be scoped, so there is
// nothing left to chain.
func (rb *RegularBuilder) ToInstance(instance any) {
	if rb.checkNotTargeted() {
		rb.binding.target = InstanceTarget{Instance: instance}
	}
}

// ToProvider binds the key to a provider object.
func (rb *RegularBuilder) ToProvider(provider Provider) *RegularBuilder {
	if provider == nil {
		panic("guice: nil provider")
	}
	if rb.checkNotTargeted() {
		rb.binding.target = ProviderInstanceTarget{Provider: provider}
	}
	return rb
}

// ToProviderKey binds the key to another key whose bound value is a
// Provider.
func (rb *RegularBuilder) ToProviderKey(providerKey Key) *RegularBuilder {
	if providerKey.IsZero() {
		panic("guice: untyped provider key")
	}
	if rb.checkNotTargeted() {
		rb.binding.target = ProviderKeyTarget{Key: providerKey}
	}
	return rb
}

// In applies the scope named by a marker type, such as guice.Singleton.
func (rb *RegularBuilder) In(scopeMarker reflect.Type) *RegularBuilder {
	if scopeMarker == nil {
		panic("guice: nil scope marker")
	}
	if rb.checkNotScoped() {
		rb.binding.scoping = ScopeMarker{Type: scopeMarker}
	}
	return rb
}

// InScope applies the given scope object.
func (rb *RegularBuilder) InScope(scope Scope) *RegularBuilder {
	if scope == nil {
		panic("guice: nil scope")
	}
	if rb.checkNotScoped() {
		rb.binding.scoping = ScopeInstance{Scope: scope}
	}
	return rb
}

// AsEagerSingleton applies singleton lifetime with up-front construction.
func (rb *RegularBuilder) AsEagerSingleton() *RegularBuilder {
	if rb.checkNotScoped() {
		rb.binding.scoping = EagerSingleton{}
	}
	return rb
}

func (rb *RegularBuilder) checkNotAnnotated() bool {
	if rb.binding.key.HasQualifier() {
		rb.binder.AddError(annotationAlreadySpecified)
		return false
	}
	return true
}

func (rb *RegularBuilder) checkNotTargeted() bool {
	if _, ok := rb.binding.target.(UntargetedTarget); !ok {
		rb.binder.AddError(implementationAlreadySet)
		return false
	}
	return true
}

func (rb *RegularBuilder) checkNotScoped() bool {
	// Scoping is not allowed when we have only one instance. This check
	// runs first, so an instance-targeted binding reports the instance
	// conflict even when a scope was already set.
	if !VisitTarget(rb.binding.target, supportsScoping) {
		rb.binder.AddError(singleInstanceAndScope)
		return false
	}
	if _, ok := rb.binding.scoping.(NoScoping); !ok {
		rb.binder.AddError(scopeAlreadySet)
		return false
	}
	return true
}

// ConstantBuilder accumulates the configuration of a constant binding. The
// key's type is not supplied up front: it is derived from the constant
// value, so the qualifier may be attached either before or after the value.
type ConstantBuilder struct {
	binding *ModuleBinding
	binder  Binder
}

// AnnotatedWith attaches a qualifier value to the constant's key.
func (cb *ConstantBuilder) AnnotatedWith(qualifier any) *ConstantBuilder {
	if qualifier == nil {
		panic("guice: nil qualifier")
	}
	if cb.checkNotAnnotated() {
		cb.binding.key = cb.binding.key.Qualified(qualifier)
	}
	return cb
}

// AnnotatedWithType attaches a marker qualifier type to the constant's key.
func (cb *ConstantBuilder) AnnotatedWithType(qualifierType reflect.Type) *ConstantBuilder {
	if qualifierType == nil {
		panic("guice: nil qualifier type")
	}
	if cb.checkNotAnnotated() {
		cb.binding.key = cb.binding.key.QualifiedBy(qualifierType)
	}
	return cb
}

// To resolves the key's type from the constant value and binds the value as
// the target. Value must be non-nil and of a constant kind: a boolean,
// numeric or string kind (named types included), or a reflect.Type literal.
// Setting a value after the key's type is resolved is a configuration
// error; the first value wins.
func (cb *ConstantBuilder) To(value any) {
	if value == nil {
		panic("guice: nil constant value")
	}
	t := constantType(value)

	if !cb.binding.key.IsZero() {
		cb.binder.AddError(constantValueAlreadySet)
		return
	}

	cb.binding.key = cb.binding.key.withType(t)
	cb.binding.target = InstanceTarget{Instance: value}
}

func (cb *ConstantBuilder) checkNotAnnotated() bool {
	if cb.binding.key.HasQualifier() {
		cb.binder.AddError(annotationAlreadySpecified)
		return false
	}
	return true
}

var reflectTypeType = reflect.TypeOf((*reflect.Type)(nil)).Elem()

func constantType(value any) reflect.Type {
	if _, ok := value.(reflect.Type); ok {
		return reflectTypeType
	}
	t := reflect.TypeOf(value)
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128,
		reflect.String:
		return t
	default:
		panic(fmt.Sprintf("guice: %v is not a constant type", t))
	}
}
