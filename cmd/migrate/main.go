// Command migrate applies or rolls back the fix_messages/fix_sequences
// Postgres schema, in the teacher's flag-driven migrate tool style.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/epic1st/fixengine/config"
	"github.com/epic1st/fixengine/store"
)

func main() {
	upCmd := flag.Bool("up", false, "run all pending migrations")
	downCmd := flag.Bool("down", false, "roll back the last migration")
	statusCmd := flag.Bool("status", false, "show migration status")
	initCmd := flag.Bool("init", false, "initialize the schema_migrations table")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	ctx := context.Background()
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.User,
		cfg.Database.Password, cfg.Database.Name, cfg.Database.SSLMode,
	)

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("failed to ping database: %v", err)
	}
	log.Printf("[migrate] connected to %s@%s:%s/%s", cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.Name)

	migrator := store.NewMigrator(pool)

	switch {
	case *initCmd:
		if err := migrator.Init(ctx); err != nil {
			log.Fatalf("init failed: %v", err)
		}
		log.Println("[migrate] schema_migrations table initialized")

	case *upCmd:
		if err := migrator.Init(ctx); err != nil {
			log.Fatalf("init failed: %v", err)
		}
		if err := migrator.Up(ctx); err != nil {
			log.Fatalf("migration failed: %v", err)
		}
		log.Println("[migrate] all migrations applied")

	case *downCmd:
		if err := migrator.Down(ctx); err != nil {
			log.Fatalf("rollback failed: %v", err)
		}
		log.Println("[migrate] rollback complete")

	case *statusCmd:
		if err := migrator.Init(ctx); err != nil {
			log.Fatalf("init failed: %v", err)
		}
		statuses, err := migrator.Status(ctx)
		if err != nil {
			log.Fatalf("status failed: %v", err)
		}
		for _, s := range statuses {
			state := "pending"
			if s.Applied {
				state = "applied"
			}
			fmt.Printf("%4d  %-24s  %s\n", s.Version, s.Name, state)
		}

	default:
		fmt.Println("fixengine schema migration tool")
		fmt.Println()
		fmt.Println("Usage:")
		fmt.Println("  migrate -init     initialize the schema_migrations table")
		fmt.Println("  migrate -up       run all pending migrations")
		fmt.Println("  migrate -down     roll back the last migration")
		fmt.Println("  migrate -status   show migration status")
		fmt.Println()
		fmt.Println("Database connection is read from DB_HOST/DB_PORT/DB_NAME/DB_USER/DB_PASSWORD/DB_SSL_MODE, or a .env file.")
		os.Exit(1)
	}
}
