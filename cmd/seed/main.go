package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"

	"github.com/JaimeStill/regdesk/internal/config"
	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var (
		dsn  = flag.String("dsn", "", "Database connection string (defaults to the configured database)")
		only = flag.String("only", "", "Run a single seeder by name")
		file = flag.String("file", "", "External registrations seed file (overrides embedded)")
		list = flag.Bool("list", false, "List available seeders")
	)
	flag.Parse()

	if *list {
		fmt.Println("Available seeders:")
		for _, name := range seederNames() {
			fmt.Printf("  - %s: %s\n", name, seeders[name].Description())
		}
		return
	}

	if *dsn == "" {
		cfg, err := config.Load()
		if err != nil {
			log.Fatalf("config load failed: %v", err)
		}
		*dsn = cfg.Database.Dsn()
	}

	if *file != "" {
		seeders["registrations"].(*RegistrationSeeder).SetFile(*file)
	}

	db, err := sql.Open("pgx", *dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	var names []string
	if *only != "" {
		names = []string{*only}
	}

	counts, err := run(ctx, db, names...)
	if err != nil {
		log.Fatalf("seeding failed: %v", err)
	}

	for _, name := range seederNames() {
		if n, ok := counts[name]; ok {
			fmt.Printf("%s: %d rows\n", name, n)
		}
	}
}
