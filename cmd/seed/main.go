package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/JaimeStill/facility-management/internal/config"
	_ "github.com/jackc/pgx/v5/stdlib"
	"golang.org/x/crypto/bcrypt"
)

const (
	EnvDatabaseDSN       = "DATABASE_DSN"
	EnvSuperuserPassword = "SEED_SUPERUSER_PASSWORD"
)

func main() {
	var (
		dsn        = flag.String("dsn", "", "Database connection string (defaults to config.toml)")
		all        = flag.Bool("all", false, "Run all seeders")
		superuser  = flag.Bool("superuser", false, "Create or promote a superuser")
		facilities = flag.Bool("facilities", false, "Seed the facility catalog")
		file       = flag.String("file", "", "External facility seed file (overrides embedded)")
		list       = flag.Bool("list", false, "List available seeders")
		username   = flag.String("username", "admin", "Superuser username")
		email      = flag.String("email", "admin@localhost", "Superuser email")
		password   = flag.String("password", "", "Superuser password (or "+EnvSuperuserPassword+")")
	)
	flag.Parse()

	su := &SuperuserSeeder{
		Username:  *username,
		Email:     *email,
		Password:  *password,
		Cost:      bcrypt.DefaultCost,
		MinLength: 8,
	}
	if su.Password == "" {
		su.Password = os.Getenv(EnvSuperuserPassword)
	}

	fac := &FacilitySeeder{}
	if *file != "" {
		fac.SetFile(*file)
	}

	reg := &registry{}
	reg.register(su)
	reg.register(fac)

	if *list {
		fmt.Println("Available seeders:")
		for _, s := range reg.list() {
			fmt.Printf("  - %s: %s\n", s.Name(), s.Description())
		}
		return
	}

	var names []string
	switch {
	case *all:
	case *superuser || *facilities:
		if *superuser {
			names = append(names, su.Name())
		}
		if *facilities {
			names = append(names, fac.Name())
		}
	default:
		fmt.Println("usage: seed [-dsn <connection-string>] [-all|-superuser|-facilities] [-file <path>] [-list]")
		flag.PrintDefaults()
		return
	}

	if *dsn == "" {
		*dsn = os.Getenv(EnvDatabaseDSN)
	}
	if *dsn == "" {
		cfg, err := config.Load()
		if err != nil {
			log.Fatalf("database connection string required: use -dsn, %s, or config.toml: %v", EnvDatabaseDSN, err)
		}
		*dsn = cfg.Database.Dsn()
		su.Cost = cfg.Auth.BcryptCost
		su.MinLength = cfg.Auth.MinPasswordLength
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

	if err := reg.run(ctx, db, names...); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	fmt.Println("seeding completed successfully")
}
