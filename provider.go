package guice

// Provider produces instances of a bound type on demand. It is the payload
// of provider bindings and the currency of the Scope contract.
type Provider interface {
	Get() (any, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func() (any, error)

func (f ProviderFunc) Get() (any, error) { return f() }

// InstanceProvider returns a Provider that always yields v.
func InstanceProvider(v any) Provider {
	return ProviderFunc(func() (any, error) { return v, nil })
}
