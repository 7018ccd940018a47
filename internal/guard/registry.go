package guard

import (
	"fmt"
	"sort"
	"sync"

	"github.com/funvibe/modgud/internal/diagnostics"
	"github.com/funvibe/modgud/internal/token"
	"github.com/funvibe/modgud/pkg/maybe"
)

// Factory builds a guard from manifest-shaped parameters.
type Factory func(params map[string]any) (Func, error)

// Registry is a thread-safe lookup table of guard factories, keyed by
// name within an optional namespace. Namespaces are mutated in place, so
// one lock guards insert, lookup and remove.
type Registry struct {
	mu         sync.RWMutex
	guards     map[string]Factory
	namespaces map[string]map[string]Factory
}

func NewRegistry() *Registry {
	return &Registry{
		guards:     make(map[string]Factory),
		namespaces: make(map[string]map[string]Factory),
	}
}

// defaultRegistry backs the package-level convenience functions. Code
// that wants isolation constructs its own Registry.
var defaultRegistry = NewRegistry()

// Default returns the process-wide registry.
func Default() *Registry { return defaultRegistry }

// Register adds a factory. Registering a name twice within the same
// namespace is an error.
func (r *Registry) Register(name string, factory Factory, namespace string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if namespace == "" {
		if _, exists := r.guards[name]; exists {
			return diagnostics.NewError(diagnostics.ErrR001, token.Token{},
				fmt.Sprintf("guard '%s' is already registered in global namespace", name))
		}
		r.guards[name] = factory
		return nil
	}

	ns, ok := r.namespaces[namespace]
	if !ok {
		ns = make(map[string]Factory)
		r.namespaces[namespace] = ns
	}
	if _, exists := ns[name]; exists {
		return diagnostics.NewError(diagnostics.ErrR001, token.Token{},
			fmt.Sprintf("guard '%s' is already registered in namespace '%s'", name, namespace))
	}
	ns[name] = factory
	return nil
}

// Get retrieves a registered factory.
func (r *Registry) Get(name string, namespace string) maybe.Maybe[Factory] {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var f Factory
	var ok bool
	if namespace == "" {
		f, ok = r.guards[name]
	} else {
		f, ok = r.namespaces[namespace][name]
	}
	if !ok {
		return maybe.Zero[Factory]()
	}
	return maybe.Some(f)
}

// Has reports whether a guard is registered.
func (r *Registry) Has(name string, namespace string) bool {
	return r.Get(name, namespace).IsSome()
}

// List returns the sorted guard names in the given namespace ("" for
// global).
func (r *Registry) List(namespace string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	src := r.guards
	if namespace != "" {
		src = r.namespaces[namespace]
	}
	names := make([]string, 0, len(src))
	for name := range src {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Namespaces returns the sorted namespace names.
func (r *Registry) Namespaces() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.namespaces))
	for name := range r.namespaces {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Unregister removes a guard, reporting whether it was present. An
// emptied namespace is dropped.
func (r *Registry) Unregister(name string, namespace string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if namespace == "" {
		if _, ok := r.guards[name]; !ok {
			return false
		}
		delete(r.guards, name)
		return true
	}

	ns, ok := r.namespaces[namespace]
	if !ok {
		return false
	}
	if _, ok := ns[name]; !ok {
		return false
	}
	delete(ns, name)
	if len(ns) == 0 {
		delete(r.namespaces, namespace)
	}
	return true
}
