package main

import (
	"fmt"
	"os"

	"github.com/km-arc/go-spring/framework/app"
	"github.com/km-arc/go-spring/framework/container"
)

// ── Demo components ──────────────────────────────────────────────────────────

// Database is a shared connection pool stand-in.
type Database struct {
	DSN string
}

func (d *Database) ComponentName() string { return "database" }

// UserRepository reads users through the database.
type UserRepository struct{}

func (r *UserRepository) ComponentName() string { return "user_repository" }

// UserService implements the user-facing operations.
type UserService struct{}

func (s *UserService) ComponentName() string { return "user_service" }

// ── Demo provider ────────────────────────────────────────────────────────────

// DemoProvider registers the demo component graph:
//
//	UserService → UserRepository → Database
type DemoProvider struct {
	container.BaseProvider
}

func (p *DemoProvider) Register(c *container.Container) error {
	if err := container.RegisterSingleton(c, &Database{DSN: "postgres://localhost/demo"}); err != nil {
		return err
	}
	if err := container.RegisterWithDependencies(c, &UserRepository{},
		container.TypeOf[*Database]()); err != nil {
		return err
	}
	return container.RegisterWithDependencies(c, &UserService{},
		container.TypeOf[*UserRepository]())
}

func (p *DemoProvider) Boot(c *container.Container) error {
	db := container.MustResolve[*Database](c)
	fmt.Printf("booted against %s\n", db.DSN)
	return nil
}

func main() {
	application, err := app.New()
	if err != nil {
		fmt.Fprintln(os.Stderr, "bootstrap:", err)
		os.Exit(1)
	}

	if err := application.Register(&DemoProvider{}); err != nil {
		fmt.Fprintln(os.Stderr, "register providers:", err)
		os.Exit(1)
	}

	if err := application.Boot(); err != nil {
		fmt.Fprintln(os.Stderr, "boot:", err)
		os.Exit(1)
	}

	order, err := application.InitializationOrder()
	if err != nil {
		fmt.Fprintln(os.Stderr, "initialization order:", err)
		os.Exit(1)
	}
	fmt.Println("initialization order:")
	for i, id := range order {
		fmt.Printf("  %d. %s\n", i+1, id.ShortName())
	}

	if err := application.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "run:", err)
		os.Exit(1)
	}
}
