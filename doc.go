// Package guice provides a declarative binding-configuration layer for
// dependency injection, modeled after Guice's binding builders. It offers
// familiar patterns for developers coming from Guice and similar DI
// frameworks while staying idiomatic Go.
//
// # Overview
//
// The package separates configuration from resolution. Modules declare
// bindings against a Binder through a fluent builder API; the binder
// freezes each declaration into a ModuleBinding (a key, a target, and a
// scoping policy) and accumulates configuration errors instead of failing
// fast, so one pass surfaces every problem at once. Finished bindings are
// consumed through an exhaustive visitor protocol, or handed to a dig
// container with Populate for actual resolution.
//
// # Bindings
//
// A binding maps a Key (a type plus an optional qualifier) to a target:
//
//	binder.Bind(guice.KeyOf[Payment]()).ToType(reflect.TypeOf(CreditCard{}))
//	binder.Bind(guice.KeyOf[*Config]()).ToInstance(cfg)
//	binder.Bind(guice.KeyOf[Clock]()).ToProvider(clockProvider)
//	binder.BindConstant().AnnotatedWith(guice.Named("port")).To(8080)
//
// Each aspect of a binding (qualifier, target, scope) may be set at most
// once. A violated precondition is recorded on the binder as a ConfigError
// and the rejected mutation is dropped; the builder chain keeps operating
// on a consistent binding.
//
// # Scopes
//
// Scoping controls instance lifetime. Bindings opt in with In (a scope
// marker type), InScope (a scope object), or AsEagerSingleton:
//
//	binder.Bind(guice.KeyOf[*Pool]()).ToProvider(newPool).In(guice.Singleton)
//
// Bindings to a single instance cannot be scoped; the instance already has
// whatever lifetime its creator gave it.
//
// # Consuming bindings
//
// External consumers branch on a binding's target and scoping through
// VisitTarget and VisitScoping, which dispatch over a closed set of
// variants. Adding a variant is deliberately a breaking change: every
// consumer is forced to handle the new case.
//
// Populate bridges finished bindings into a go.uber.org/dig container,
// following linked keys, applying scopes, and mapping qualified keys onto
// dig named values.
//
// # Concurrency
//
// Configuration is single-threaded: a Binder and its builders belong to
// one goroutine for the duration of the pass. Frozen bindings never change
// afterward and are safe for concurrent reads.
package guice
