package binding

// Registry is the application-owned set of named bindings, plus an optional
// default binding. It stands in for the host application handle that
// consumers such as the interceptor receive at construction.
type Registry struct {
	names    []string
	bindings map[string]Binding
	def      Binding
}

func NewRegistry() *Registry {
	return &Registry{bindings: map[string]Binding{}}
}

// Register adds b under its name, replacing any previous binding with the
// same name (registration order of first appearance is kept).
func (r *Registry) Register(b Binding) {
	if _, ok := r.bindings[b.Name()]; !ok {
		r.names = append(r.names, b.Name())
	}
	r.bindings[b.Name()] = b
}

// SetDefault marks b as the application's default binding. It does not have
// to be registered under a name.
func (r *Registry) SetDefault(b Binding) {
	r.def = b
}

// Default returns the default binding, or nil when none is configured.
func (r *Registry) Default() Binding {
	return r.def
}

// Each visits registered bindings in registration order.
func (r *Registry) Each(fn func(b Binding)) {
	for _, name := range r.names {
		fn(r.bindings[name])
	}
}

// Get returns the binding registered under name, or nil.
func (r *Registry) Get(name string) Binding {
	return r.bindings[name]
}
