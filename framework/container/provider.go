package container

// ── ServiceProvider interface ─────────────────────────────────────────────────

// ServiceProvider groups related component registrations into one unit.
//
// Register runs during bootstrap and should only register components and
// declare dependency edges. Boot runs after the whole container has been
// auto-wired, so it is safe to resolve any component there.
//
//	type StorageProvider struct{ container.BaseProvider }
//
//	func (p *StorageProvider) Register(c *container.Container) error {
//	    return container.RegisterSingleton(c, storage.NewDatabase())
//	}
//
//	func (p *StorageProvider) Boot(c *container.Container) error {
//	    db := container.MustResolve[*storage.Database](c)
//	    return db.Ping()
//	}
type ServiceProvider interface {
	// Register binds components into the container.
	// Do NOT resolve other components here — use Boot for that.
	Register(c *Container) error

	// Boot is called after all providers are registered and the container
	// has been auto-wired. Safe to resolve anything here.
	Boot(c *Container) error
}

// ── BaseProvider ──────────────────────────────────────────────────────────────

// BaseProvider is an embeddable struct providing a no-op Boot.
// Embed it and override only what you need.
type BaseProvider struct{}

func (p *BaseProvider) Boot(_ *Container) error { return nil }

// ── ProviderRegistry ──────────────────────────────────────────────────────────

// ProviderRegistry manages registration and booting of ServiceProviders.
// Providers register eagerly; the Boot pass runs once, after auto-wiring.
type ProviderRegistry struct {
	container  *Container
	providers  []ServiceProvider
	booted     bool
	registered map[ServiceProvider]bool
}

// NewProviderRegistry creates a registry bound to c.
func NewProviderRegistry(c *Container) *ProviderRegistry {
	return &ProviderRegistry{
		container:  c,
		registered: make(map[ServiceProvider]bool),
	}
}

// Register adds a provider and calls its Register method. Registering the
// same provider instance twice is a no-op. A provider whose Register fails
// is not recorded and may be retried. If the registry has already booted,
// the provider is booted immediately after registering.
func (r *ProviderRegistry) Register(provider ServiceProvider) error {
	if r.registered[provider] {
		return nil
	}

	if err := provider.Register(r.container); err != nil {
		return err
	}
	r.registered[provider] = true
	r.providers = append(r.providers, provider)

	if r.booted {
		return provider.Boot(r.container)
	}
	return nil
}

// Boot calls Boot on all providers, in registration order. Idempotent; the
// first provider error aborts the pass and the registry stays unbooted.
func (r *ProviderRegistry) Boot() error {
	if r.booted {
		return nil
	}
	for _, provider := range r.providers {
		if err := provider.Boot(r.container); err != nil {
			return err
		}
	}
	r.booted = true
	return nil
}

// Booted returns true if Boot has completed.
func (r *ProviderRegistry) Booted() bool { return r.booted }

// Providers returns all registered providers.
func (r *ProviderRegistry) Providers() []ServiceProvider { return r.providers }
