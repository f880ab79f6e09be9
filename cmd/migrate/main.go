// Command migrate applies or rolls back the embedded schema migrations by
// hand. The server runs "up" on start-up; this tool is for everything else.
//
// Usage:
//
//	migrate up           apply all pending migrations
//	migrate down [N]     roll back N migrations (default 1)
//	migrate version      print the current schema version
//	migrate force V      mark version V as applied and clean
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	"github.com/joho/godotenv"

	"github.com/sakif/healthtrack/internal/config"
	"github.com/sakif/healthtrack/internal/repository/sqlite"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "migrate:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		return errors.New("usage: migrate up | down [N] | version | force V")
	}

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := cfg.Log.NewLogger(os.Stderr)

	db, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	// The migrator shares db's connection; closing it would close db too.
	m, err := db.Migrator(logger)
	if err != nil {
		return err
	}

	switch args[0] {
	case "up":
		err = m.Up()
	case "down":
		steps := 1
		if len(args) > 1 {
			if steps, err = strconv.Atoi(args[1]); err != nil || steps < 1 {
				return fmt.Errorf("down: invalid step count %q", args[1])
			}
		}
		err = m.Steps(-steps)
	case "version":
		version, dirty, verr := m.Version()
		if errors.Is(verr, migrate.ErrNilVersion) {
			fmt.Println("no migrations applied")
			return nil
		}
		if verr != nil {
			return verr
		}
		fmt.Printf("version %d (dirty: %t)\n", version, dirty)
		return nil
	case "force":
		if len(args) < 2 {
			return errors.New("force: version required")
		}
		version, perr := strconv.Atoi(args[1])
		if perr != nil {
			return fmt.Errorf("force: invalid version %q", args[1])
		}
		err = m.Force(version)
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}

	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("schema already up to date")
		return nil
	}
	if err != nil {
		return err
	}

	logger.Info("migration complete", slog.String("command", args[0]))
	return nil
}
