// Package container provides a Spring-style IoC (Inversion of Control)
// container for Go: a type-indexed, lifecycle-aware component registry with
// dependency-graph validation and topological initialization ordering.
//
// # Overview
//
// Application code registers pre-built component instances, declares which
// types each one depends on, and asks the container to verify the graph and
// compute a safe initialization order. The container sequences and validates;
// it never constructs components or injects fields — Go has no constructor
// reflection, so components arrive ready-made.
//
// Storage is keyed by type identity: one component per static type, under one
// of two lifecycles.
//
//   - Prototype — the registry holds the sole instance; lookups return it
//     scoped to the registry's lifetime.
//   - Singleton — the instance is shared; every lookup hands back the same
//     shared handle.
//
// # Container Lifecycle
//
//  1. Create: c := container.New()
//  2. Register components (optionally with dependency edges)
//  3. AutoWire: cycle check → initialization order → presence validation
//  4. Resolve components at runtime
//
// # Registration
//
//	// Spring: @Component
//	c := container.New()
//	err := container.Register(c, &UserRepository{})
//
//	// Spring: @Component + explicit bean name
//	err = container.RegisterNamed(c, &UserRepository{}, "users")
//
//	// Spring: @Component @Scope("singleton")
//	err = container.RegisterSingleton(c, &Database{})
//
//	// Declare dependencies at registration time
//	err = container.RegisterWithDependencies(c, &UserService{},
//	    container.TypeOf[*UserRepository](),
//	    container.TypeOf[*Database]())
//
// Registering the same type twice fails with ErrDuplicateRegistration, under
// either lifecycle. Dependency edges may name types that are registered
// later; presence is checked by AutoWire and Validate, not at declaration.
//
// # Auto-wiring
//
//	// Spring: ApplicationContext#refresh
//	if err := c.AutoWire(); err != nil {
//	    // ErrCircularDependency, ErrGraphInconsistent or ErrMissingDependency
//	}
//
//	order, _ := c.InitializationOrder() // dependencies before dependents
//
// The order is cached and invalidated by any registration, edge declaration
// or removal.
//
// # Resolving
//
//	// Spring: context.getBean(UserService.class)
//	svc, ok := container.Get[*UserService](c)          // prototype
//	db, ok := container.GetSingleton[*Database](c)     // shared handle
//	repo := container.MustResolve[*UserRepository](c)  // panics when absent
//
// # Service Providers
//
//	type AppProvider struct{ container.BaseProvider }
//
//	func (p *AppProvider) Register(c *container.Container) error {
//	    return container.RegisterSingleton(c, mail.NewSMTP())
//	}
//
//	registry := container.NewProviderRegistry(c)
//	_ = registry.Register(&AppProvider{})
//	_ = c.AutoWire()
//	_ = registry.Boot() // safe to resolve components here
package container
