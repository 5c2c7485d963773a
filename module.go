package guice

// Module contributes binding configuration to a Binder. Modules are the
// unit of composition: related bindings are grouped in one module and
// modules are combined with NewModule or installed together.
//
// Example:
//
//	var DatabaseModule = guice.ModuleFunc(func(binder guice.Binder) {
//	    binder.Bind(guice.KeyOf[Database]()).
//	        ToType(reflect.TypeOf(Postgres{})).
//	        In(guice.Singleton)
//	    binder.BindConstant().
//	        AnnotatedWith(guice.Named("dsn")).
//	        To("postgres://localhost/app")
//	})
type Module interface {
	Configure(binder Binder)
}

// ModuleFunc adapts a function to the Module interface.
type ModuleFunc func(binder Binder)

func (f ModuleFunc) Configure(binder Binder) { f(binder) }

// NewModule groups modules under a name. The grouped modules are applied
// in order, and bindings or errors they record are attributed to the named
// module unless they set a more specific source themselves.
func NewModule(name string, modules ...Module) Module {
	return ModuleFunc(func(binder Binder) {
		scoped := binder.WithSource(moduleSource{name: name})
		for _, m := range modules {
			if m == nil {
				continue
			}
			m.Configure(scoped)
		}
	})
}

type moduleSource struct {
	name string
}

func (s moduleSource) String() string { return "module " + s.name }
