package container_test

import (
	"errors"
	"testing"

	"github.com/km-arc/go-spring/framework/container"
)

// ── stub components ───────────────────────────────────────────────────────────

type stubService struct{ tag string }

func (s *stubService) ComponentName() string { return "StubService" }

type stubRepository struct{ value int }

func (r *stubRepository) ComponentName() string { return "StubRepository" }

type stubDatabase struct{}

func (d *stubDatabase) ComponentName() string { return "StubDatabase" }

var (
	serviceID    = container.TypeOf[*stubService]()
	repositoryID = container.TypeOf[*stubRepository]()
	databaseID   = container.TypeOf[*stubDatabase]()
)

// ── Registration ─────────────────────────────────────────────────────────────

func TestRegistry_RegisterValue_StoresPrototype(t *testing.T) {
	r := container.NewRegistry()

	if err := r.RegisterValue(serviceID, &stubService{}, "users"); err != nil {
		t.Fatalf("RegisterValue: %v", err)
	}

	got, ok := r.Value(serviceID)
	if !ok {
		t.Fatal("Value() should find the registered component")
	}
	if got.ComponentName() != "StubService" {
		t.Errorf("ComponentName: got %q", got.ComponentName())
	}

	meta, ok := r.MetadataFor(serviceID)
	if !ok {
		t.Fatal("MetadataFor() should find a record")
	}
	if meta.Name != "users" {
		t.Errorf("metadata name: got %q, want 'users'", meta.Name)
	}
	if meta.Lifecycle != container.Prototype {
		t.Errorf("lifecycle: got %v, want prototype", meta.Lifecycle)
	}
	if meta.RegisteredAt.IsZero() {
		t.Error("RegisteredAt should be set")
	}
}

func TestRegistry_RegisterValue_DefaultsNameToShortTypeName(t *testing.T) {
	r := container.NewRegistry()

	if err := r.RegisterValue(serviceID, &stubService{}, ""); err != nil {
		t.Fatalf("RegisterValue: %v", err)
	}

	meta, _ := r.MetadataFor(serviceID)
	if meta.Name != "stubService" {
		t.Errorf("default name: got %q, want 'stubService'", meta.Name)
	}
}

func TestRegistry_DuplicateRegistration_FailsAcrossLifecycles(t *testing.T) {
	r := container.NewRegistry()

	if err := r.RegisterValue(serviceID, &stubService{tag: "first"}, "first"); err != nil {
		t.Fatalf("first registration: %v", err)
	}

	// Same identity, either lifecycle, must fail.
	if err := r.RegisterValue(serviceID, &stubService{tag: "second"}, "second"); !errors.Is(err, container.ErrDuplicateRegistration) {
		t.Errorf("prototype re-registration: got %v, want ErrDuplicateRegistration", err)
	}
	if err := r.RegisterSingletonValue(serviceID, &stubService{tag: "third"}, "third"); !errors.Is(err, container.ErrDuplicateRegistration) {
		t.Errorf("singleton re-registration: got %v, want ErrDuplicateRegistration", err)
	}

	// First registration's storage and metadata are untouched.
	got, _ := r.Value(serviceID)
	if got.(*stubService).tag != "first" {
		t.Error("stored instance should be the first registration")
	}
	meta, _ := r.MetadataFor(serviceID)
	if meta.Name != "first" {
		t.Errorf("metadata name: got %q, want 'first'", meta.Name)
	}
}

// ── Lifecycle isolation ──────────────────────────────────────────────────────

func TestRegistry_LifecycleIsolation(t *testing.T) {
	r := container.NewRegistry()

	if err := r.RegisterValue(serviceID, &stubService{}, ""); err != nil {
		t.Fatal(err)
	}
	if err := r.RegisterSingletonValue(databaseID, &stubDatabase{}, ""); err != nil {
		t.Fatal(err)
	}

	if _, ok := r.SharedValue(serviceID); ok {
		t.Error("a prototype component must not be visible through SharedValue")
	}
	if _, ok := r.Value(databaseID); ok {
		t.Error("a singleton component must not be visible through Value")
	}
	if !r.ContainsTypeID(serviceID) || !r.ContainsTypeID(databaseID) {
		t.Error("ContainsTypeID should see both lifecycles")
	}
}

func TestRegistry_SharedValue_SameInstanceEveryLookup(t *testing.T) {
	r := container.NewRegistry()
	db := &stubDatabase{}

	if err := r.RegisterSingletonValue(databaseID, db, ""); err != nil {
		t.Fatal(err)
	}

	first, _ := r.SharedValue(databaseID)
	second, _ := r.SharedValue(databaseID)
	if first != second || first.(*stubDatabase) != db {
		t.Error("every SharedValue lookup must return the same instance")
	}
}

// ── Removal ──────────────────────────────────────────────────────────────────

func TestRegistry_RemoveTypeID_Consistency(t *testing.T) {
	r := container.NewRegistry()
	if err := r.RegisterValue(serviceID, &stubService{}, ""); err != nil {
		t.Fatal(err)
	}
	r.AddDependency(serviceID, repositoryID)

	if !r.RemoveTypeID(serviceID) {
		t.Fatal("RemoveTypeID should report true for a present component")
	}
	if r.ContainsTypeID(serviceID) {
		t.Error("component should be gone after removal")
	}
	if _, ok := r.MetadataFor(serviceID); ok {
		t.Error("metadata should be gone after removal")
	}
	if deps := r.Dependencies(serviceID); len(deps) != 0 {
		t.Errorf("outgoing edges should be gone, got %d", len(deps))
	}
	if r.RemoveTypeID(serviceID) {
		t.Error("second removal should report false")
	}
}

func TestRegistry_Clear(t *testing.T) {
	r := container.NewRegistry()
	if err := r.RegisterValue(serviceID, &stubService{}, ""); err != nil {
		t.Fatal(err)
	}
	if err := r.RegisterSingletonValue(databaseID, &stubDatabase{}, ""); err != nil {
		t.Fatal(err)
	}
	r.AddDependency(serviceID, databaseID)

	r.Clear()

	if stats := r.Stats(); stats.Total != 0 {
		t.Errorf("stats after clear: got %d components, want 0", stats.Total)
	}
	if r.ContainsTypeID(serviceID) || r.ContainsTypeID(databaseID) {
		t.Error("clear should remove all components")
	}
	if len(r.Dependencies(serviceID)) != 0 {
		t.Error("clear should remove all edges")
	}
}

// ── Introspection ────────────────────────────────────────────────────────────

func TestRegistry_Stats(t *testing.T) {
	r := container.NewRegistry()

	if stats := r.Stats(); stats.Total != 0 {
		t.Fatalf("empty registry: got %d components", stats.Total)
	}

	if err := r.RegisterValue(serviceID, &stubService{}, ""); err != nil {
		t.Fatal(err)
	}
	if err := r.RegisterSingletonValue(databaseID, &stubDatabase{}, ""); err != nil {
		t.Fatal(err)
	}

	stats := r.Stats()
	if stats.Total != 2 || stats.Prototypes != 1 || stats.Singletons != 1 {
		t.Errorf("stats: got %+v", stats)
	}
}

func TestRegistry_List_RegistrationOrder(t *testing.T) {
	r := container.NewRegistry()
	if err := r.RegisterValue(serviceID, &stubService{}, "svc"); err != nil {
		t.Fatal(err)
	}
	if err := r.RegisterSingletonValue(repositoryID, &stubRepository{}, "repo"); err != nil {
		t.Fatal(err)
	}

	list := r.List()
	if len(list) != 2 {
		t.Fatalf("List: got %d entries, want 2", len(list))
	}
	if list[0].Name != "svc" || list[1].Name != "repo" {
		t.Errorf("List should preserve registration order, got [%s %s]",
			list[0].Name, list[1].Name)
	}
}

// ── Dependency edges ─────────────────────────────────────────────────────────

func TestRegistry_Dependencies_TrackedInDeclarationOrder(t *testing.T) {
	r := container.NewRegistry()

	r.AddDependency(serviceID, repositoryID)
	r.AddDependency(serviceID, databaseID)
	r.AddDependency(serviceID, repositoryID) // duplicate edges are allowed

	deps := r.Dependencies(serviceID)
	if len(deps) != 3 {
		t.Fatalf("Dependencies: got %d edges, want 3", len(deps))
	}
	if deps[0] != repositoryID || deps[1] != databaseID || deps[2] != repositoryID {
		t.Error("edges should come back in declaration order")
	}
	if len(r.Dependencies(databaseID)) != 0 {
		t.Error("an undeclared dependent should have no edges")
	}
}

func TestRegistry_Dependencies_ReturnsCopy(t *testing.T) {
	r := container.NewRegistry()
	r.AddDependency(serviceID, repositoryID)

	deps := r.Dependencies(serviceID)
	deps[0] = databaseID

	if r.Dependencies(serviceID)[0] != repositoryID {
		t.Error("mutating the returned slice must not affect the registry")
	}
}

// ── Cycle detection ──────────────────────────────────────────────────────────

func TestRegistry_DetectCircularDependencies_AcyclicPasses(t *testing.T) {
	r := container.NewRegistry()
	r.AddDependency(serviceID, repositoryID)
	r.AddDependency(repositoryID, databaseID)

	if err := r.DetectCircularDependencies(); err != nil {
		t.Errorf("acyclic graph should pass, got %v", err)
	}
}

func TestRegistry_DetectCircularDependencies_TwoCycle(t *testing.T) {
	r := container.NewRegistry()
	r.AddDependency(serviceID, repositoryID)
	r.AddDependency(repositoryID, serviceID)

	if err := r.DetectCircularDependencies(); !errors.Is(err, container.ErrCircularDependency) {
		t.Errorf("got %v, want ErrCircularDependency", err)
	}
}

func TestRegistry_DetectCircularDependencies_SelfLoop(t *testing.T) {
	r := container.NewRegistry()
	r.AddDependency(serviceID, serviceID)

	if err := r.DetectCircularDependencies(); !errors.Is(err, container.ErrCircularDependency) {
		t.Errorf("got %v, want ErrCircularDependency", err)
	}
}

func TestRegistry_DetectCircularDependencies_DeepCycle(t *testing.T) {
	r := container.NewRegistry()
	// service → repository → database → repository
	r.AddDependency(serviceID, repositoryID)
	r.AddDependency(repositoryID, databaseID)
	r.AddDependency(databaseID, repositoryID)

	if err := r.DetectCircularDependencies(); !errors.Is(err, container.ErrCircularDependency) {
		t.Errorf("got %v, want ErrCircularDependency", err)
	}
}

// ── TypeID ───────────────────────────────────────────────────────────────────

func TestTypeID_IdentityAndRendering(t *testing.T) {
	if container.TypeOf[*stubService]() != serviceID {
		t.Error("TypeOf must be stable for the same type")
	}
	if serviceID == repositoryID {
		t.Error("distinct types must have distinct identities")
	}
	if got := serviceID.ShortName(); got != "stubService" {
		t.Errorf("ShortName: got %q, want 'stubService'", got)
	}
	if container.TypeIDOf(&stubService{}) != serviceID {
		t.Error("TypeIDOf should agree with TypeOf for the dynamic type")
	}
}
