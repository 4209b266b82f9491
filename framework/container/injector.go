package container

import (
	"fmt"

	"go.uber.org/zap"
)

// Injector wraps a Registry with graph validation and initialization-order
// computation. It does not construct or wire fields — components arrive
// pre-built; the injector only sequences and validates them.
//
// The injector tracks a dirty flag: every registration or edge addition
// invalidates the cached initialization order, and the order is recomputed
// lazily on the next AutoWire or InitializationOrder call.
type Injector struct {
	registry *Registry

	initOrder     []TypeID
	orderComputed bool

	log *zap.Logger
}

// NewInjector creates an injector over a fresh registry.
func NewInjector() *Injector {
	return NewInjectorWith(NewRegistry())
}

// NewInjectorWith wraps an existing registry.
func NewInjectorWith(registry *Registry) *Injector {
	return &Injector{
		registry: registry,
		log:      zap.NewNop(),
	}
}

// SetLogger attaches a logger to the injector and its registry.
func (inj *Injector) SetLogger(log *zap.Logger) {
	if log == nil {
		return
	}
	inj.log = log
	inj.registry.SetLogger(log)
}

// Registry exposes the wrapped registry for read-only introspection.
// Mutations should go through the injector so the cached order is
// invalidated; after mutating the registry directly, call Invalidate.
func (inj *Injector) Registry() *Registry {
	return inj.registry
}

// Invalidate discards the cached initialization order.
func (inj *Injector) Invalidate() {
	inj.orderComputed = false
}

// ── Registration ─────────────────────────────────────────────────────────────

// RegisterValueWithDependencies registers a prototype component and declares
// one edge per listed dependency. An empty name defaults to the identity's
// de-namespaced type name.
func (inj *Injector) RegisterValueWithDependencies(id TypeID, component Component, name string, deps []TypeID) error {
	if err := inj.registry.RegisterValue(id, component, name); err != nil {
		return err
	}
	inj.addEdges(id, deps)
	return nil
}

// RegisterSingletonValueWithDependencies is the singleton-lifecycle variant.
func (inj *Injector) RegisterSingletonValueWithDependencies(id TypeID, component Component, name string, deps []TypeID) error {
	if err := inj.registry.RegisterSingletonValue(id, component, name); err != nil {
		return err
	}
	inj.addEdges(id, deps)
	return nil
}

func (inj *Injector) addEdges(dependent TypeID, deps []TypeID) {
	for _, dep := range deps {
		inj.registry.AddDependency(dependent, dep)
	}
	inj.orderComputed = false
}

// AddDependency declares an edge and invalidates the cached order.
func (inj *Injector) AddDependency(dependent, dependency TypeID) {
	inj.registry.AddDependency(dependent, dependency)
	inj.orderComputed = false
}

// RemoveTypeID removes a component through the injector, invalidating the
// cached order. Returns whether anything was present.
func (inj *Injector) RemoveTypeID(id TypeID) bool {
	removed := inj.registry.RemoveTypeID(id)
	if removed {
		inj.orderComputed = false
	}
	return removed
}

// ── Auto-wiring ──────────────────────────────────────────────────────────────

// AutoWire runs the full three-phase pass:
//
//  1. cycle detection over the edge table;
//  2. topological initialization-order computation (cached until the next
//     mutation);
//  3. a presence check that every declared dependency of every ordered
//     component is registered.
//
// On failure the injector keeps its dirty state, so a later call recomputes
// from scratch.
func (inj *Injector) AutoWire() error {
	inj.log.Info("auto-wire started")

	if err := inj.registry.DetectCircularDependencies(); err != nil {
		return err
	}

	if err := inj.computeInitializationOrder(); err != nil {
		return err
	}

	for _, id := range inj.initOrder {
		if err := inj.checkDependenciesPresent(id); err != nil {
			return err
		}
	}

	inj.log.Info("auto-wire complete", zap.Int("components", len(inj.initOrder)))
	return nil
}

// computeInitializationOrder runs Kahn's algorithm over the registered
// metadata keys.
//
// Direction: a node's in-degree is the number of its own registered
// dependencies, so the queue seeds with components that depend on nothing,
// and emitting a node unblocks the components that depend on it. The result
// therefore places every dependency before every component declaring it.
// Edges to unregistered identities do not count here; the presence pass
// reports them.
func (inj *Injector) computeInitializationOrder() error {
	if inj.orderComputed {
		return nil
	}

	registered := inj.registry.List()

	inDegree := make(map[TypeID]int, len(registered))
	dependents := make(map[TypeID][]TypeID, len(registered))
	for _, m := range registered {
		inDegree[m.Type] = 0
	}
	for _, m := range registered {
		for _, dep := range inj.registry.Dependencies(m.Type) {
			if _, ok := inDegree[dep]; ok {
				inDegree[m.Type]++
				dependents[dep] = append(dependents[dep], m.Type)
			}
		}
	}

	// Seed in registration order so the result is stable across runs.
	queue := make([]TypeID, 0, len(registered))
	for _, m := range registered {
		if inDegree[m.Type] == 0 {
			queue = append(queue, m.Type)
		}
	}

	result := make([]TypeID, 0, len(registered))
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		result = append(result, current)

		for _, dependent := range dependents[current] {
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				queue = append(queue, dependent)
			}
		}
	}

	if len(result) != len(registered) {
		return fmt.Errorf("%w: ordered %d of %d components",
			ErrGraphInconsistent, len(result), len(registered))
	}

	inj.initOrder = result
	inj.orderComputed = true

	inj.log.Debug("initialization order computed", zap.Int("components", len(result)))
	return nil
}

func (inj *Injector) checkDependenciesPresent(id TypeID) error {
	for _, dep := range inj.registry.Dependencies(id) {
		if !inj.registry.ContainsTypeID(dep) {
			name := id.ShortName()
			if m, ok := inj.registry.MetadataFor(id); ok {
				name = m.Name
			}
			return fmt.Errorf("%w: component %q requires unregistered %s",
				ErrMissingDependency, name, dep.ShortName())
		}
	}
	return nil
}

// ValidateDependencies checks that every declared dependency of every
// registered component is present in storage. Usable at any time; it does
// not touch the cached order.
func (inj *Injector) ValidateDependencies() error {
	for _, m := range inj.registry.List() {
		if err := inj.checkDependenciesPresent(m.Type); err != nil {
			return err
		}
	}
	return nil
}

// InitializationOrder returns the cached order, recomputing it if the edge
// set changed since the last computation. The slice is a copy.
func (inj *Injector) InitializationOrder() ([]TypeID, error) {
	if err := inj.computeInitializationOrder(); err != nil {
		return nil, err
	}
	out := make([]TypeID, len(inj.initOrder))
	copy(out, inj.initOrder)
	return out, nil
}

// ── Stats ────────────────────────────────────────────────────────────────────

// InjectionStats summarises the injector's view of the registry.
type InjectionStats struct {
	TotalComponents     int
	SingletonComponents int
	PrototypeComponents int

	// TotalDependencies counts declared edges of registered components.
	TotalDependencies int

	// OrderComputed reports whether the cached initialization order is
	// valid (no mutation since the last successful computation).
	OrderComputed bool
}

// Stats returns current injection statistics.
func (inj *Injector) Stats() InjectionStats {
	rs := inj.registry.Stats()
	edges := 0
	for _, m := range inj.registry.List() {
		edges += len(inj.registry.Dependencies(m.Type))
	}
	return InjectionStats{
		TotalComponents:     rs.Total,
		SingletonComponents: rs.Singletons,
		PrototypeComponents: rs.Prototypes,
		TotalDependencies:   edges,
		OrderComputed:       inj.orderComputed,
	}
}
