package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/ivaschool/portal-api/pkg/config"
)

func main() {
	var dir string
	flag.StringVar(&dir, "path", "migrations", "directory holding the migration files")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	m, err := migrate.New("file://"+dir, cfg.Database.URL())
	if err != nil {
		log.Fatalf("failed to init migrations: %v", err)
	}
	defer m.Close() //nolint:errcheck

	args := flag.Args()
	if len(args) < 1 {
		usage()
		return
	}

	switch args[0] {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatalf("up failed: %v", err)
		}
		fmt.Println("migrated up")
	case "down":
		if err := m.Steps(-1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatalf("down failed: %v", err)
		}
		fmt.Println("rolled back one step")
	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			log.Fatalf("version failed: %v", err)
		}
		fmt.Printf("version %d (dirty=%t)\n", version, dirty)
	case "force":
		if len(args) < 2 {
			log.Fatal("force requires a version")
		}
		v, err := strconv.Atoi(args[1])
		if err != nil {
			log.Fatalf("invalid version: %v", err)
		}
		if err := m.Force(v); err != nil {
			log.Fatalf("force failed: %v", err)
		}
		fmt.Printf("forced version %d\n", v)
	default:
		usage()
	}
}

func usage() {
	fmt.Println("usage: migrate [-path dir] up|down|version|force <version>")
	flag.PrintDefaults()
}
