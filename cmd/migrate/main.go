// Command migrate applies or rolls back the embedded schema migrations.
//
//	migrate up
//	migrate down [steps]
//	migrate version
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/JaimeStill/facility-management/internal/config"
	"github.com/JaimeStill/facility-management/internal/migrations"
	"github.com/golang-migrate/migrate/v4"
)

// EnvDatabaseURL overrides the URL derived from config.toml.
const EnvDatabaseURL = "DATABASE_URL"

func main() {
	url := flag.String("url", "", "Database URL, pgx5:// scheme (defaults to "+EnvDatabaseURL+" or config.toml)")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
		os.Exit(2)
	}

	target, err := resolveURL(*url)
	if err != nil {
		log.Fatal(err)
	}

	m, err := migrations.New(target)
	if err != nil {
		log.Fatal(err)
	}
	defer m.Close()

	if err := run(m, flag.Args()); err != nil {
		log.Fatal(err)
	}
}

func run(m *migrate.Migrate, args []string) error {
	switch args[0] {
	case "up":
		if err := migrations.Up(m); err != nil {
			return fmt.Errorf("migrate up: %w", err)
		}
	case "down":
		steps := 1
		if len(args) > 1 {
			n, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid steps %q: %w", args[1], err)
			}
			steps = n
		}
		if err := migrations.Down(m, steps); err != nil {
			return fmt.Errorf("migrate down: %w", err)
		}
	case "version":
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}

	return printVersion(m)
}

func printVersion(m *migrate.Migrate) error {
	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		fmt.Println("version: none")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Printf("version: %d dirty: %t\n", version, dirty)
	return nil
}

func resolveURL(flagURL string) (string, error) {
	if flagURL != "" {
		return flagURL, nil
	}
	if v := os.Getenv(EnvDatabaseURL); v != "" {
		return v, nil
	}
	cfg, err := config.Load()
	if err != nil {
		return "", fmt.Errorf("database url required: use -url, %s, or config.toml: %w", EnvDatabaseURL, err)
	}
	return cfg.Database.URL(), nil
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: migrate [-url <pgx5://...>] up | down [steps] | version")
	flag.PrintDefaults()
}
