package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"

	"rentroll/internal/config"
)

const defaultMigrationsPath = "migrations"

func main() {
	var migrationsPath string

	flag.StringVar(&migrationsPath, "path", defaultMigrationsPath, "path to migrations directory")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	dsn := fmt.Sprintf("pgx5://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.DB.User, cfg.DB.Password, cfg.DB.Host, cfg.DB.Port, cfg.DB.Name)

	m, err := migrate.New("file://"+migrationsPath, dsn)
	if err != nil {
		slog.Error("failed to initialize migrator", "error", err)
		os.Exit(1)
	}
	defer m.Close()

	if err := run(m, args); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			slog.Info("no pending migrations")
			return
		}

		slog.Error("migration failed", "command", args[0], "error", err)
		os.Exit(1)
	}

	slog.Info("migration complete", "command", args[0])
}

func run(m *migrate.Migrate, args []string) error {
	switch cmd := args[0]; cmd {
	case "up":
		return m.Up()
	case "down":
		return m.Down()
	case "steps":
		if len(args) < 2 {
			return errors.New("steps requires a count")
		}

		n, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid step count %q", args[1])
		}

		return m.Steps(n)
	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			return err
		}

		slog.Info("current version", "version", version, "dirty", dirty)

		return nil
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `usage: migrate [-path dir] <command>

commands:
  up             apply all pending migrations
  down           roll back all migrations
  steps <n>      apply n migrations (negative rolls back)
  version        print the current migration version`)
}
