package guice

import (
	"fmt"
	"reflect"

	"go.uber.org/dig"
)

var (
	errorType = reflect.TypeOf((*error)(nil)).Elem()
	digInType = reflect.TypeOf(dig.In{})
)

// Populate runs a configuration pass over modules and registers every
// resulting binding with the dig container, which takes over actual
// resolution. Instance and provider bindings become zero-argument
// constructors; linked-key and provider-key bindings are followed through
// the recorded element set; scoping wraps the constructor before
// registration, and eager singletons are constructed before Populate
// returns.
//
// Qualified keys are registered as dig named values: a Named qualifier
// contributes its string, any other qualifier contributes a name derived
// from its type and value.
func Populate(container *dig.Container, modules ...Module) error {
	binder := NewBinder()
	binder.Install(modules...)
	if errs := binder.Errors(); len(errs) > 0 {
		return ConfigErrors(errs)
	}
	return provideAll(container, binder.Bindings(), binder.ScopeBindings())
}

func provideAll(container *dig.Container, elements []*ModuleBinding, scopes map[reflect.Type]Scope) error {
	index := make(map[Key]*ModuleBinding, len(elements))
	for _, b := range elements {
		if prev, ok := index[b.Key()]; ok {
			return fmt.Errorf("%w: %s (first bound at %v)", ErrDuplicateBinding, b.Key(), prev.Source())
		}
		index[b.Key()] = b
	}

	for _, b := range elements {
		ctor, err := constructorFor(b, index, scopes)
		if err != nil {
			return err
		}
		if err := container.Provide(ctor, digOptions(b.Key())...); err != nil {
			return fmt.Errorf("guice: providing %s: %w", b, err)
		}
	}

	// Eager singletons are forced only after every binding is registered,
	// so their providers may depend on bindings recorded later.
	for _, b := range elements {
		if _, ok := b.Scoping().(EagerSingleton); ok {
			if err := invokeEager(container, b.Key()); err != nil {
				return fmt.Errorf("guice: constructing eager singleton %s: %w", b.Key(), err)
			}
		}
	}
	return nil
}

// constructorFor turns a frozen binding into a zero-argument constructor
// func() (T, error) suitable for dig.Provide, with the binding's scoping
// already applied.
func constructorFor(b *ModuleBinding, index map[Key]*ModuleBinding, scopes map[reflect.Type]Scope) (any, error) {
	provider, err := providerFor(b, index, make(map[string]bool))
	if err != nil {
		return nil, err
	}
	provider, err = applyScoping(b, provider, scopes)
	if err != nil {
		return nil, err
	}

	key := b.Key()
	out := key.Type()
	fnType := reflect.FuncOf(nil, []reflect.Type{out, errorType}, false)
	fn := reflect.MakeFunc(fnType, func([]reflect.Value) []reflect.Value {
		v, err := provider.Get()
		if err != nil {
			return []reflect.Value{reflect.Zero(out), errValue(err)}
		}
		outv := reflect.New(out).Elem()
		if v != nil {
			rv := reflect.ValueOf(v)
			if !rv.Type().AssignableTo(out) {
				return []reflect.Value{reflect.Zero(out), errValue(
					fmt.Errorf("guice: %s produced %T, which is not assignable to %v", key, v, out))}
			}
			outv.Set(rv)
		}
		return []reflect.Value{outv, errValue(nil)}
	})
	return fn.Interface(), nil
}

// providerFor resolves a binding's target to a Provider, following linked
// keys and provider keys through the element set. The visited set is keyed
// by binding ID so that key rewrites cannot hide a cycle.
func providerFor(b *ModuleBinding, index map[Key]*ModuleBinding, visited map[string]bool) (Provider, error) {
	if visited[b.ID()] {
		return nil, fmt.Errorf("%w: %s", ErrBindingCycle, b)
	}
	visited[b.ID()] = true

	switch t := b.Target().(type) {
	case InstanceTarget:
		return InstanceProvider(t.Instance), nil

	case ProviderInstanceTarget:
		return t.Provider, nil

	case LinkedKeyTarget:
		linked, ok := index[t.Key]
		if !ok {
			return nil, fmt.Errorf("%w: %s (linked from %s)", ErrKeyNotBound, t.Key, b.Key())
		}
		return providerFor(linked, index, visited)

	case ProviderKeyTarget:
		bound, ok := index[t.Key]
		if !ok {
			return nil, fmt.Errorf("%w: %s (provider key of %s)", ErrKeyNotBound, t.Key, b.Key())
		}
		inner, err := providerFor(bound, index, visited)
		if err != nil {
			return nil, err
		}
		providerKey := t.Key
		return ProviderFunc(func() (any, error) {
			v, err := inner.Get()
			if err != nil {
				return nil, err
			}
			p, ok := v.(Provider)
			if !ok {
				return nil, fmt.Errorf("guice: %s is bound to %T, which is not a Provider", providerKey, v)
			}
			return p.Get()
		}), nil

	case UntargetedTarget:
		return nil, fmt.Errorf("%w: %s", ErrUntargetedBinding, b)

	default:
		panic(fmt.Sprintf("guice: unknown target variant %T", t))
	}
}

func applyScoping(b *ModuleBinding, unscoped Provider, scopes map[reflect.Type]Scope) (Provider, error) {
	switch s := b.Scoping().(type) {
	case NoScoping:
		return unscoped, nil
	case ScopeMarker:
		scope, ok := scopes[s.Type]
		if !ok {
			return nil, fmt.Errorf("%w: %v (on %s)", ErrScopeNotBound, s.Type, b.Key())
		}
		return scope.Scope(b.Key(), unscoped), nil
	case ScopeInstance:
		return s.Scope.Scope(b.Key(), unscoped), nil
	case EagerSingleton:
		return SingletonScope.Scope(b.Key(), unscoped), nil
	default:
		panic(fmt.Sprintf("guice: unknown scoping variant %T", s))
	}
}

// invokeEager pulls the key's value out of the container once, forcing
// construction up front.
func invokeEager(container *dig.Container, key Key) error {
	var fnType reflect.Type
	if name, ok := digName(key); ok {
		paramType := reflect.StructOf([]reflect.StructField{
			{Name: "In", Type: digInType, Anonymous: true},
			{Name: "Value", Type: key.Type(), Tag: reflect.StructTag(fmt.Sprintf(`name:%q`, name))},
		})
		fnType = reflect.FuncOf([]reflect.Type{paramType}, nil, false)
	} else {
		fnType = reflect.FuncOf([]reflect.Type{key.Type()}, nil, false)
	}
	fn := reflect.MakeFunc(fnType, func([]reflect.Value) []reflect.Value { return nil })
	return container.Invoke(fn.Interface())
}

func digOptions(key Key) []dig.ProvideOption {
	if name, ok := digName(key); ok {
		return []dig.ProvideOption{dig.Name(name)}
	}
	return nil
}

// digName maps a key's qualifier onto a dig value name. Named qualifiers
// contribute their string verbatim; other qualifier values contribute a
// deterministic rendering of their type and value; marker-only qualifiers
// contribute the marker type's name.
func digName(key Key) (string, bool) {
	if !key.HasQualifier() {
		return "", false
	}
	if n, ok := key.Qualifier().(Named); ok {
		return string(n), true
	}
	if q := key.Qualifier(); q != nil {
		return fmt.Sprintf("%v(%v)", key.QualifierType(), q), true
	}
	return key.QualifierType().String(), true
}

func errValue(err error) reflect.Value {
	v := reflect.New(errorType).Elem()
	if err != nil {
		v.Set(reflect.ValueOf(err))
	}
	return v
}
