// Package container provides a thread-safe service container for
// dependency injection: interface-keyed, named registrations with
// singleton or transient lifetime.
package container

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/google/uuid"

	"github.com/funvibe/modgud/internal/diagnostics"
	"github.com/funvibe/modgud/internal/token"
)

// DefaultName is the registration name used when none is given.
const DefaultName = "default"

type registration struct {
	id        string
	factory   func() any
	singleton bool
}

// Container manages service registration and resolution.
type Container struct {
	mu        sync.RWMutex
	services  map[reflect.Type]map[string]*registration
	instances map[reflect.Type]map[string]any
}

func New() *Container {
	return &Container{
		services:  make(map[reflect.Type]map[string]*registration),
		instances: make(map[reflect.Type]map[string]any),
	}
}

func keyFor[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Register binds a factory for interface T under the given name. A
// singleton registration caches the first constructed instance;
// re-registering replaces the binding and drops any cached instance.
// Each registration gets a uuid for trace attribution.
func Register[T any](c *Container, name string, singleton bool, factory func() T) string {
	key := keyFor[T]()
	id := uuid.NewString()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.services[key] == nil {
		c.services[key] = make(map[string]*registration)
	}
	c.services[key][name] = &registration{
		id:        id,
		factory:   func() any { return factory() },
		singleton: singleton,
	}
	if c.instances[key] != nil {
		delete(c.instances[key], name)
	}
	return id
}

// Resolve returns the instance bound to interface T under the given
// name, constructing it on first use for singletons and on every call
// for transients.
func Resolve[T any](c *Container, name string) (T, error) {
	var zero T
	key := keyFor[T]()

	c.mu.Lock()
	defer c.mu.Unlock()

	reg, ok := c.services[key][name]
	if !ok {
		return zero, diagnostics.NewError(diagnostics.ErrC001, token.Token{},
			fmt.Sprintf("no service registered for %s with name '%s'", key, name))
	}

	if reg.singleton {
		if inst, ok := c.instances[key][name]; ok {
			return inst.(T), nil
		}
	}

	inst := reg.factory()
	if reg.singleton {
		if c.instances[key] == nil {
			c.instances[key] = make(map[string]any)
		}
		c.instances[key][name] = inst
	}
	return inst.(T), nil
}

// IsRegistered reports whether a binding exists for T under name.
func IsRegistered[T any](c *Container, name string) bool {
	key := keyFor[T]()
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.services[key][name]
	return ok
}

// RegistrationID returns the uuid assigned when the binding was made.
func RegistrationID[T any](c *Container, name string) (string, bool) {
	key := keyFor[T]()
	c.mu.RLock()
	defer c.mu.RUnlock()
	reg, ok := c.services[key][name]
	if !ok {
		return "", false
	}
	return reg.id, true
}
