package container

import "errors"

// Error kinds returned by the container. Match them with errors.Is; the
// wrapped message carries the component or dependency name for diagnostics.
var (
	// ErrDuplicateRegistration — the type identity is already present in
	// either lifecycle store. Not retryable: remove the existing
	// registration first or register a different type.
	ErrDuplicateRegistration = errors.New("component already registered")

	// ErrCircularDependency — the dependency edge table contains a cycle.
	// Fatal to auto-wiring; the declarations must be restructured.
	ErrCircularDependency = errors.New("circular dependency detected")

	// ErrGraphInconsistent — the topological sort could not account for
	// every registered component. Should not occur when cycle detection
	// runs first, but is checked defensively.
	ErrGraphInconsistent = errors.New("dependency graph inconsistent")

	// ErrMissingDependency — a declared dependency is not present in
	// storage at validation or auto-wire time.
	ErrMissingDependency = errors.New("missing dependency")

	// ErrComponentNotFound — a lookup that demands a hard failure found
	// nothing. The registry itself models absence as (zero, false); this
	// kind is for callers such as MustResolve and the diagnostics surface.
	ErrComponentNotFound = errors.New("component not found")
)
