package guice

import (
	"fmt"
	"path/filepath"
	"reflect"
	"runtime"
)

// Binder collects binding configuration from modules. Builders report
// precondition violations through AddError; the binder accumulates them so
// the whole pass can be validated in one go.
//
// A Binder is used by a single goroutine for the duration of a
// configuration pass. The bindings it records are frozen afterward and may
// then be shared freely.
type Binder interface {
	// Bind starts a binding for key and returns its builder.
	Bind(key Key) *RegularBuilder

	// BindConstant starts a constant binding, whose key type is derived
	// from the constant value.
	BindConstant() *ConstantBuilder

	// BindScope associates a scope marker type with a scope object, making
	// the marker usable with RegularBuilder.In.
	BindScope(marker reflect.Type, scope Scope)

	// Install applies the modules' configuration to this binder.
	Install(modules ...Module)

	// AddError records a configuration error against the current source.
	AddError(format string, args ...any)

	// WithSource returns a view of this binder that attributes subsequent
	// bindings and errors to source.
	WithSource(source any) Binder
}

// RecordingBinder is the standard Binder: it records bindings, scope
// bindings and configuration errors for one pass. Views created with
// WithSource share the underlying records.
type RecordingBinder struct {
	source any
	state  *binderState
}

type binderState struct {
	elements []*ModuleBinding
	scopes   map[reflect.Type]Scope
	errs     []ConfigError
}

var _ Binder = (*RecordingBinder)(nil)

// NewBinder returns an empty RecordingBinder with the built-in singleton
// scope already bound.
func NewBinder() *RecordingBinder {
	return &RecordingBinder{
		state: &binderState{
			scopes: map[reflect.Type]Scope{Singleton: SingletonScope},
		},
	}
}

func (b *RecordingBinder) Bind(key Key) *RegularBuilder {
	binding := NewBinding(b.sourceOrCaller(), key)
	b.state.elements = append(b.state.elements, binding)
	return binding.RegularBuilder(b)
}

func (b *RecordingBinder) BindConstant() *ConstantBuilder {
	binding := NewUntypedBinding(b.sourceOrCaller())
	b.state.elements = append(b.state.elements, binding)
	return binding.ConstantBuilder(b)
}

func (b *RecordingBinder) BindScope(marker reflect.Type, scope Scope) {
	if marker == nil {
		panic("guice: nil scope marker")
	}
	if scope == nil {
		panic("guice: nil scope")
	}
	if bound, ok := b.state.scopes[marker]; ok {
		b.AddError("Scope %v is already bound to %v.", marker, bound)
		return
	}
	b.state.scopes[marker] = scope
}

func (b *RecordingBinder) Install(modules ...Module) {
	for _, m := range modules {
		if m == nil {
			continue
		}
		m.Configure(b)
	}
}

func (b *RecordingBinder) AddError(format string, args ...any) {
	b.state.errs = append(b.state.errs, ConfigError{
		Source:  b.source,
		Message: fmt.Sprintf(format, args...),
	})
}

func (b *RecordingBinder) WithSource(source any) Binder {
	return &RecordingBinder{source: source, state: b.state}
}

// Bindings returns the bindings recorded so far, in recording order.
func (b *RecordingBinder) Bindings() []*ModuleBinding {
	out := make([]*ModuleBinding, len(b.state.elements))
	copy(out, b.state.elements)
	return out
}

// Errors returns the configuration errors recorded so far, in recording
// order.
func (b *RecordingBinder) Errors() []ConfigError {
	out := make([]ConfigError, len(b.state.errs))
	copy(out, b.state.errs)
	return out
}

// ScopeBindings returns the marker-to-scope associations recorded so far,
// including the built-in singleton scope.
func (b *RecordingBinder) ScopeBindings() map[reflect.Type]Scope {
	out := make(map[reflect.Type]Scope, len(b.state.scopes))
	for marker, scope := range b.state.scopes {
		out[marker] = scope
	}
	return out
}

func (b *RecordingBinder) sourceOrCaller() any {
	if b.source != nil {
		return b.source
	}
	return callerSource(2)
}

// callerSource walks up past this package's own frames and reports the
// configuring caller as "file.go:line".
func callerSource(skip int) any {
	if _, file, line, ok := runtime.Caller(skip + 1); ok {
		return fmt.Sprintf("%s:%d", filepath.Base(file), line)
	}
	return "unknown source"
}

// Elements runs a configuration pass over modules and returns the recorded
// bindings. When any configuration error was recorded the bindings are
// returned together with the full ConfigErrors aggregate.
func Elements(modules ...Module) ([]*ModuleBinding, error) {
	binder := NewBinder()
	binder.Install(modules...)
	if errs := binder.Errors(); len(errs) > 0 {
		return binder.Bindings(), ConfigErrors(errs)
	}
	return binder.Bindings(), nil
}
