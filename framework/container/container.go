package container

import (
	"fmt"

	"go.uber.org/zap"
)

// Container is the application-facing facade over the injector: typed
// registration and lookup on top of the type-erased registry, plus the
// auto-wire and validation triggers. It holds no algorithmic state of its
// own — everything delegates.
//
// Typical bootstrap:
//
//	c := container.New()
//	_ = container.RegisterSingleton(c, db)
//	_ = container.RegisterWithDependencies(c, repo, container.TypeOf[*Database]())
//	if err := c.AutoWire(); err != nil { ... }
//	repo, ok := container.Get[*UserRepository](c)
type Container struct {
	injector *Injector
}

// New creates an empty container.
func New() *Container {
	return &Container{injector: NewInjector()}
}

// SetLogger attaches a logger to the whole container stack.
func (c *Container) SetLogger(log *zap.Logger) {
	c.injector.SetLogger(log)
}

// Injector exposes the underlying injector for advanced use.
func (c *Container) Injector() *Injector { return c.injector }

// Registry exposes the underlying registry for read-only introspection.
func (c *Container) Registry() *Registry { return c.injector.Registry() }

// ── Registration ─────────────────────────────────────────────────────────────

// Register stores a prototype component named after its type.
func Register[T Component](c *Container, component T) error {
	return RegisterNamed(c, component, "")
}

// RegisterNamed stores a prototype component under an explicit name.
func RegisterNamed[T Component](c *Container, component T, name string) error {
	return c.injector.RegisterValueWithDependencies(TypeOf[T](), component, name, nil)
}

// RegisterSingleton stores a singleton component named after its type.
func RegisterSingleton[T Component](c *Container, component T) error {
	return RegisterSingletonNamed(c, component, "")
}

// RegisterSingletonNamed stores a singleton component under an explicit name.
func RegisterSingletonNamed[T Component](c *Container, component T, name string) error {
	return c.injector.RegisterSingletonValueWithDependencies(TypeOf[T](), component, name, nil)
}

// RegisterWithDependencies stores a prototype component and declares one
// dependency edge per listed identity. The dependencies themselves may be
// registered later; AutoWire and Validate check presence.
func RegisterWithDependencies[T Component](c *Container, component T, deps ...TypeID) error {
	return c.injector.RegisterValueWithDependencies(TypeOf[T](), component, "", deps)
}

// RegisterSingletonWithDependencies is the singleton-lifecycle variant.
func RegisterSingletonWithDependencies[T Component](c *Container, component T, deps ...TypeID) error {
	return c.injector.RegisterSingletonValueWithDependencies(TypeOf[T](), component, "", deps)
}

// AddDependency declares the edge "dependent requires dependency" without
// registering either side.
func (c *Container) AddDependency(dependent, dependency TypeID) {
	c.injector.AddDependency(dependent, dependency)
}

// ── Lookup ───────────────────────────────────────────────────────────────────

// Get returns the prototype-class component of type T. The value is scoped
// to the container's lifetime; absence (or registration under the singleton
// lifecycle) yields (zero, false).
func Get[T Component](c *Container) (T, bool) {
	var zero T
	id := TypeOf[T]()

	stored, ok := c.Registry().Value(id)
	if !ok {
		return zero, false
	}
	return downcast[T](stored)
}

// GetSingleton returns a shared handle to the singleton-class component of
// type T. Every caller observes the same instance; handles stay valid
// independently of later registry mutations.
func GetSingleton[T Component](c *Container) (T, bool) {
	var zero T
	id := TypeOf[T]()

	stored, ok := c.Registry().SharedValue(id)
	if !ok {
		return zero, false
	}
	return downcast[T](stored)
}

// downcast converts a type-erased stored value back to T. The checked type
// assertion is the runtime verification: it succeeds only when the stored
// value's dynamic type is, or implements, T, so an entry stored under a
// mismatched identity through the type-erased registry API surfaces as
// absence. A failed assertion leaves the stored value untouched.
func downcast[T Component](stored Component) (T, bool) {
	typed, ok := stored.(T)
	if !ok {
		var zero T
		return zero, false
	}
	return typed, true
}

// MustResolve is Get/GetSingleton rolled into one hard-failure lookup: it
// checks both lifecycle stores and panics with ErrComponentNotFound when the
// type is absent. Intended for bootstrap code where a missing component is a
// programming error.
func MustResolve[T Component](c *Container) T {
	if v, ok := Get[T](c); ok {
		return v
	}
	if v, ok := GetSingleton[T](c); ok {
		return v
	}
	panic(fmt.Errorf("%w: %s", ErrComponentNotFound, TypeOf[T]()))
}

// Contains reports whether type T is registered under either lifecycle.
func Contains[T any](c *Container) bool {
	return c.Registry().ContainsTypeID(TypeOf[T]())
}

// Remove deletes T's storage, metadata and outgoing edges, and invalidates
// the cached initialization order. Returns whether anything was present.
func Remove[T any](c *Container) bool {
	return c.injector.RemoveTypeID(TypeOf[T]())
}

// MetadataOf returns the metadata record for type T.
func MetadataOf[T any](c *Container) (Metadata, bool) {
	return c.Registry().MetadataFor(TypeOf[T]())
}

// ── Wiring & introspection ───────────────────────────────────────────────────

// AutoWire runs cycle detection, computes the initialization order and
// verifies every declared dependency is registered.
func (c *Container) AutoWire() error {
	return c.injector.AutoWire()
}

// Validate checks dependency presence without computing an order.
func (c *Container) Validate() error {
	return c.injector.ValidateDependencies()
}

// InitializationOrder returns the dependency-respecting order in which
// components should be initialised.
func (c *Container) InitializationOrder() ([]TypeID, error) {
	return c.injector.InitializationOrder()
}

// List returns metadata for every registered component, in registration
// order.
func (c *Container) List() []Metadata {
	return c.Registry().List()
}

// Clear empties the container and invalidates the cached order.
func (c *Container) Clear() {
	c.Registry().Clear()
	c.injector.Invalidate()
}

// ContainerStats summarises the container for observability.
type ContainerStats struct {
	TotalComponents     int  `json:"total_components"`
	SingletonComponents int  `json:"singleton_components"`
	PrototypeComponents int  `json:"prototype_components"`
	TotalDependencies   int  `json:"total_dependencies"`
	AutoWired           bool `json:"auto_wired"`
}

// Stats returns current container statistics.
func (c *Container) Stats() ContainerStats {
	s := c.injector.Stats()
	return ContainerStats{
		TotalComponents:     s.TotalComponents,
		SingletonComponents: s.SingletonComponents,
		PrototypeComponents: s.PrototypeComponents,
		TotalDependencies:   s.TotalDependencies,
		AutoWired:           s.OrderComputed,
	}
}
