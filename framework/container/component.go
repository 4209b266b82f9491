package container

import "time"

// Component is the minimal capability every registrable value must satisfy:
// it can report a human-readable name, used for logs and diagnostics.
//
//	// Spring: every bean has a bean name
//	type UserService struct{ ... }
//	func (s *UserService) ComponentName() string { return "UserService" }
type Component interface {
	ComponentName() string
}

// ── Stereotypes ──────────────────────────────────────────────────────────────

// Service, Repository and Controller tag components by architectural role in
// signatures and documentation. Tagging only; the container treats every
// component alike.

// Service marks a business-logic component.
type Service interface{ Component }

// Repository marks a data-access component.
type Repository interface{ Component }

// Controller marks a request-handling component.
type Controller interface{ Component }

// ── Lifecycle ────────────────────────────────────────────────────────────────

// Lifecycle classifies how a component instance is owned and shared.
type Lifecycle int

const (
	// Prototype components are held exclusively by the registry; lookups
	// return the stored instance scoped to the registry's lifetime.
	Prototype Lifecycle = iota

	// Singleton components are stored once and shared by every holder for
	// the container's lifetime.
	Singleton
)

func (l Lifecycle) String() string {
	switch l {
	case Prototype:
		return "prototype"
	case Singleton:
		return "singleton"
	default:
		return "unknown"
	}
}

// ── Metadata ─────────────────────────────────────────────────────────────────

// Metadata describes one registered component. One record exists per
// registered type identity; it is immutable after creation and removed only
// when the component is removed.
type Metadata struct {
	// Name is the human-readable component name. Defaults to the
	// de-namespaced type name when registration omits it.
	Name string

	// Type is the component's type identity.
	Type TypeID

	// Lifecycle records which storage class holds the component.
	Lifecycle Lifecycle

	// RegisteredAt is the registration timestamp.
	RegisteredAt time.Time

	// Description is optional free-form text for diagnostics.
	Description string
}

// ── Stats ────────────────────────────────────────────────────────────────────

// RegistryStats is a point-in-time count of registered components.
type RegistryStats struct {
	Total      int
	Prototypes int
	Singletons int
}
