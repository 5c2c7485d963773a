package guice

import (
	"fmt"
	"reflect"
)

// Key identifies a binding: the requested type plus an optional qualifier.
//
// A qualifier distinguishes multiple bindings of the same type. It comes in
// two forms, mirroring marker-only and value-carrying qualifiers:
//
//   - a qualifier type, attached with QualifiedBy, when the marker alone is
//     enough (e.g. a ReadOnly struct{} marker)
//   - a qualifier value, attached with Qualified, when the qualifier carries
//     data (e.g. Named("primary"))
//
// Key is a comparable value type. Two keys are equal when their types and
// qualifiers are structurally equal, so keys can be used directly as map
// keys.
//
// The zero Key is an untyped placeholder used by constant bindings, whose
// type is only known once the constant value is supplied. IsZero reports it.
type Key struct {
	t             reflect.Type
	qualifierType reflect.Type
	qualifier     any
}

// KeyOf returns the key for type T with no qualifier.
func KeyOf[T any]() Key {
	return Key{t: reflect.TypeOf((*T)(nil)).Elem()}
}

// KeyFor returns the key for t with no qualifier.
func KeyFor(t reflect.Type) Key {
	if t == nil {
		panic("guice: nil type for key")
	}
	return Key{t: t}
}

// Qualified returns a copy of the key carrying the given qualifier value.
// The qualifier must be non-nil and comparable; its dynamic type becomes the
// key's qualifier type.
func (k Key) Qualified(qualifier any) Key {
	if qualifier == nil {
		panic("guice: nil qualifier")
	}
	t := reflect.TypeOf(qualifier)
	if !t.Comparable() {
		panic(fmt.Sprintf("guice: qualifier type %v is not comparable", t))
	}
	k.qualifierType = t
	k.qualifier = qualifier
	return k
}

// QualifiedBy returns a copy of the key carrying the given qualifier type
// as a marker, with no qualifier value.
func (k Key) QualifiedBy(qualifierType reflect.Type) Key {
	if qualifierType == nil {
		panic("guice: nil qualifier type")
	}
	k.qualifierType = qualifierType
	k.qualifier = nil
	return k
}

// withType rebinds the key to a new type, keeping whatever qualifier is
// currently attached. Used by constant bindings, which learn their type
// from the constant value.
func (k Key) withType(t reflect.Type) Key {
	k.t = t
	return k
}

// Type returns the requested type, or nil for the untyped placeholder.
func (k Key) Type() reflect.Type { return k.t }

// QualifierType returns the qualifier's type, or nil when unqualified.
func (k Key) QualifierType() reflect.Type { return k.qualifierType }

// Qualifier returns the qualifier value, or nil when the key is unqualified
// or qualified by a marker type only.
func (k Key) Qualifier() any { return k.qualifier }

// HasQualifier reports whether any qualifier, marker or value, is attached.
func (k Key) HasQualifier() bool { return k.qualifierType != nil }

// IsZero reports whether the key is the untyped placeholder.
func (k Key) IsZero() bool { return k.t == nil }

func (k Key) String() string {
	name := "<untyped>"
	if k.t != nil {
		name = k.t.String()
	}
	switch {
	case k.qualifier != nil:
		return fmt.Sprintf("%s qualified by %v", name, k.qualifier)
	case k.qualifierType != nil:
		return fmt.Sprintf("%s qualified by %v", name, k.qualifierType)
	default:
		return name
	}
}

// Named is a string qualifier for distinguishing bindings of the same type
// by name. The dig bridge maps it onto dig's named values.
//
//	guice.KeyOf[*sql.DB]().Qualified(guice.Named("replica"))
type Named string

func (n Named) String() string { return fmt.Sprintf("Named(%q)", string(n)) }
