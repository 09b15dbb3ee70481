// Package main provides the seed command for populating a development
// database with registrations. Seeders run inside one transaction so a
// failed run leaves nothing behind.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"slices"

	"github.com/JaimeStill/regdesk/pkg/repository"
)

// Seeder populates one table.
type Seeder interface {
	Name() string
	Description() string
	// Seed must be idempotent; it may run against an already-seeded database.
	Seed(ctx context.Context, tx *sql.Tx) (int, error)
}

var seeders = map[string]Seeder{}

func registerSeeder(s Seeder) {
	seeders[s.Name()] = s
}

// seederNames returns registered names in a stable order.
func seederNames() []string {
	names := make([]string, 0, len(seeders))
	for name := range seeders {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// run executes the named seeders, or all of them when names is empty,
// in a single transaction. It returns rows written per seeder.
func run(ctx context.Context, db *sql.DB, names ...string) (map[string]int, error) {
	if len(names) == 0 {
		names = seederNames()
	}

	selected := make([]Seeder, 0, len(names))
	for _, name := range names {
		s, ok := seeders[name]
		if !ok {
			return nil, fmt.Errorf("seeder not found: %s", name)
		}
		selected = append(selected, s)
	}

	return repository.WithTx(ctx, db, func(tx *sql.Tx) (map[string]int, error) {
		counts := make(map[string]int, len(selected))
		for _, s := range selected {
			n, err := s.Seed(ctx, tx)
			if err != nil {
				return nil, fmt.Errorf("seed %s: %w", s.Name(), err)
			}
			counts[s.Name()] = n
		}
		return counts, nil
	})
}
