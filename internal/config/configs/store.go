package configs

import "strings"

// Store selects the persistence backend.
type Store struct {
	// Driver is "memory" or "postgres". The memory store loses its data on
	// restart and is meant for demos and tests.
	Driver string `env:"DRIVER" envDefault:"memory"`
	// Seed fills an empty store with demo campaigns and leads on startup.
	Seed bool `env:"SEED" envDefault:"false"`
}

// UsePostgres reports whether the postgres backend is selected.
func (s Store) UsePostgres() bool {
	return strings.EqualFold(s.Driver, "postgres")
}
