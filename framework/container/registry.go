package container

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Registry is type-indexed storage for component instances, independent of
// dependency semantics. It keeps two lifecycle stores (prototype and
// singleton), one metadata record per registered identity, and a directed
// dependency edge table.
//
// The registry is a single-owner, synchronously mutated structure: it defines
// no locking of its own. The surrounding application is responsible for
// exclusive access during mutation; concurrent shared reads are safe once the
// component set has stabilised.
type Registry struct {
	// prototype store — the registry holds the sole instance
	components map[TypeID]Component

	// singleton store — instances shared by every holder
	singletons map[TypeID]Component

	// one record per registered identity
	metadata map[TypeID]*Metadata

	// dependent → declared dependencies, in declaration order.
	// May reference identities not (yet) registered; that is surfaced at
	// validation time, not here.
	dependencies map[TypeID][]TypeID

	// registration order of metadata keys, so listings and the topological
	// seed order are deterministic across runs
	order []TypeID

	log *zap.Logger
}

// NewRegistry creates an empty registry. Logging is off until SetLogger.
func NewRegistry() *Registry {
	return &Registry{
		components:   make(map[TypeID]Component),
		singletons:   make(map[TypeID]Component),
		metadata:     make(map[TypeID]*Metadata),
		dependencies: make(map[TypeID][]TypeID),
		log:          zap.NewNop(),
	}
}

// SetLogger attaches a logger for registration and lookup diagnostics.
func (r *Registry) SetLogger(log *zap.Logger) {
	if log != nil {
		r.log = log
	}
}

// ── Registration ─────────────────────────────────────────────────────────────

// RegisterValue stores component under the given identity in the prototype
// store. An empty name defaults to the identity's de-namespaced type name.
// Fails with ErrDuplicateRegistration if the identity is present in either
// lifecycle store.
//
// The typed entry points live on the Container facade (Register[T] and
// friends), which derive the identity from the static type argument and
// delegate here.
func (r *Registry) RegisterValue(id TypeID, component Component, name string) error {
	return r.insert(id, component, name, Prototype)
}

// RegisterSingletonValue is RegisterValue for the singleton store.
func (r *Registry) RegisterSingletonValue(id TypeID, component Component, name string) error {
	return r.insert(id, component, name, Singleton)
}

func (r *Registry) insert(id TypeID, component Component, name string, lifecycle Lifecycle) error {
	if name == "" {
		name = id.ShortName()
	}

	if _, dup := r.components[id]; dup {
		return fmt.Errorf("%w: %q (%s)", ErrDuplicateRegistration, name, id)
	}
	if _, dup := r.singletons[id]; dup {
		return fmt.Errorf("%w: %q (%s)", ErrDuplicateRegistration, name, id)
	}

	switch lifecycle {
	case Singleton:
		r.singletons[id] = component
	default:
		r.components[id] = component
	}

	r.metadata[id] = &Metadata{
		Name:         name,
		Type:         id,
		Lifecycle:    lifecycle,
		RegisteredAt: time.Now(),
	}
	r.order = append(r.order, id)

	r.log.Debug("component registered",
		zap.String("name", name),
		zap.String("type", id.String()),
		zap.Stringer("lifecycle", lifecycle))
	return nil
}

// ── Lookup ───────────────────────────────────────────────────────────────────

// Value returns the prototype-class instance stored under id. Absence — or a
// registration under the singleton lifecycle — yields (nil, false), never an
// error.
func (r *Registry) Value(id TypeID) (Component, bool) {
	c, ok := r.components[id]
	return c, ok
}

// SharedValue returns the singleton-class instance stored under id. The
// returned value is a shared handle: every caller observes the same instance.
func (r *Registry) SharedValue(id TypeID) (Component, bool) {
	c, ok := r.singletons[id]
	return c, ok
}

// ContainsTypeID reports whether id is registered under either lifecycle.
func (r *Registry) ContainsTypeID(id TypeID) bool {
	if _, ok := r.components[id]; ok {
		return true
	}
	_, ok := r.singletons[id]
	return ok
}

// MetadataFor returns the metadata record for id.
func (r *Registry) MetadataFor(id TypeID) (Metadata, bool) {
	m, ok := r.metadata[id]
	if !ok {
		return Metadata{}, false
	}
	return *m, true
}

// ── Removal ──────────────────────────────────────────────────────────────────

// RemoveTypeID deletes the storage, metadata and outgoing edges for id.
// Returns whether anything was present. Incoming edges declared by other
// components are left in place; they surface as missing dependencies at the
// next validation.
func (r *Registry) RemoveTypeID(id TypeID) bool {
	_, hadComponent := r.components[id]
	_, hadSingleton := r.singletons[id]
	if !hadComponent && !hadSingleton {
		return false
	}

	name := id.ShortName()
	if m, ok := r.metadata[id]; ok {
		name = m.Name
	}

	delete(r.components, id)
	delete(r.singletons, id)
	delete(r.metadata, id)
	delete(r.dependencies, id)
	for i, ordered := range r.order {
		if ordered == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	r.log.Debug("component removed", zap.String("name", name))
	return true
}

// Clear empties all four tables.
func (r *Registry) Clear() {
	r.components = make(map[TypeID]Component)
	r.singletons = make(map[TypeID]Component)
	r.metadata = make(map[TypeID]*Metadata)
	r.dependencies = make(map[TypeID][]TypeID)
	r.order = nil
	r.log.Info("registry cleared")
}

// ── Dependency edges ─────────────────────────────────────────────────────────

// AddDependency appends the edge "dependent requires dependency". Edges may
// be declared before either side is registered, and duplicates are permitted
// (harmless multi-edges).
func (r *Registry) AddDependency(dependent, dependency TypeID) {
	r.dependencies[dependent] = append(r.dependencies[dependent], dependency)
}

// Dependencies returns the declared outgoing edges for id, in declaration
// order. The slice is a copy.
func (r *Registry) Dependencies(id TypeID) []TypeID {
	deps := r.dependencies[id]
	if len(deps) == 0 {
		return nil
	}
	out := make([]TypeID, len(deps))
	copy(out, deps)
	return out
}

// DetectCircularDependencies walks the edge table depth-first from every
// not-yet-visited node, tracking the set of nodes on the active path.
// Revisiting a node already on the path means a cycle. Runs in O(V+E).
func (r *Registry) DetectCircularDependencies() error {
	visited := make(map[TypeID]bool, len(r.dependencies))
	onPath := make(map[TypeID]bool)

	for id := range r.dependencies {
		if !visited[id] {
			if err := r.cycleDFS(id, visited, onPath); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *Registry) cycleDFS(current TypeID, visited, onPath map[TypeID]bool) error {
	if onPath[current] {
		return fmt.Errorf("%w: involving %s", ErrCircularDependency, current.ShortName())
	}
	if visited[current] {
		return nil
	}

	visited[current] = true
	onPath[current] = true
	for _, dep := range r.dependencies[current] {
		if err := r.cycleDFS(dep, visited, onPath); err != nil {
			return err
		}
	}
	delete(onPath, current)
	return nil
}

// ── Introspection ────────────────────────────────────────────────────────────

// List returns a metadata snapshot for every registered component, in
// registration order.
func (r *Registry) List() []Metadata {
	out := make([]Metadata, 0, len(r.order))
	for _, id := range r.order {
		if m, ok := r.metadata[id]; ok {
			out = append(out, *m)
		}
	}
	return out
}

// Stats returns component counts by lifecycle.
func (r *Registry) Stats() RegistryStats {
	return RegistryStats{
		Total:      len(r.components) + len(r.singletons),
		Prototypes: len(r.components),
		Singletons: len(r.singletons),
	}
}
