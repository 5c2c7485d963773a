package guice

import (
	"errors"
	"fmt"
	"strings"
)

// ========================================
// Sentinel Errors
// ========================================
// Base errors for the dig bridge. Always wrapped with key or binding
// context before being returned.

var (
	ErrUntargetedBinding = errors.New("binding has no target")
	ErrKeyNotBound       = errors.New("no binding for key")
	ErrDuplicateBinding  = errors.New("key is bound more than once")
	ErrBindingCycle      = errors.New("linked bindings form a cycle")
	ErrScopeNotBound     = errors.New("no scope bound for marker")
)

var (
	_ error = ConfigError{}
	_ error = ConfigErrors(nil)
)

// ========================================
// Configuration Errors
// ========================================

// ConfigError is one recorded, non-fatal problem detected while building
// bindings. Builders record these on the binder instead of failing fast,
// so a single configuration pass surfaces every problem at once.
type ConfigError struct {
	// Source is the provenance marker active when the error was recorded,
	// or nil when none was set.
	Source  any
	Message string
}

func (e ConfigError) Error() string {
	if e.Source == nil {
		return e.Message
	}
	return fmt.Sprintf("%s (at %v)", e.Message, e.Source)
}

// ConfigErrors aggregates every problem found in a configuration pass.
type ConfigErrors []ConfigError

func (e ConfigErrors) Error() string {
	var b strings.Builder
	noun := "errors"
	if len(e) == 1 {
		noun = "error"
	}
	fmt.Fprintf(&b, "%d %s in binding configuration:", len(e), noun)
	for i, err := range e {
		fmt.Fprintf(&b, "\n  %d) %s", i+1, err.Error())
	}
	return b.String()
}
