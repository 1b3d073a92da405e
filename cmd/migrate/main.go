// Command migrate manages the database schema with the embedded goose
// migrations.
//
// Usage:
//
//	migrate up|down|status|version
//
// Reads DATABASE_URL from the environment or a .env file.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/heartmarshall/ewasl-backend/internal/adapter/postgres"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "Usage: migrate up|down|status|version")
		os.Exit(2)
	}

	_ = godotenv.Load()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	m, err := postgres.NewMigrator(ctx, dsn)
	if err != nil {
		log.Fatalf("open migrator: %v", err)
	}
	defer m.Close()

	switch os.Args[1] {
	case "up":
		results, err := m.Up(ctx)
		for _, r := range results {
			fmt.Printf("OK   %s (%s)\n", r.Source.Path, r.Duration.Round(time.Millisecond))
		}
		if err != nil {
			log.Fatal(err)
		}
		if len(results) == 0 {
			fmt.Println("Schema is up to date.")
		}
	case "down":
		r, err := m.Down(ctx)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("Rolled back %s\n", r.Source.Path)
	case "status":
		statuses, err := m.Status(ctx)
		if err != nil {
			log.Fatal(err)
		}
		for _, s := range statuses {
			applied := "pending"
			if !s.AppliedAt.IsZero() {
				applied = s.AppliedAt.Format(time.RFC3339)
			}
			fmt.Printf("%-25s %s\n", applied, s.Source.Path)
		}
	case "version":
		v, err := m.Version(ctx)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(v)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", os.Args[1])
		os.Exit(2)
	}
}
