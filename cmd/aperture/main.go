package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/planqa/aperture/internal/cli"
	"github.com/planqa/aperture/internal/db"
	"github.com/planqa/aperture/internal/repository"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	app := &cli.App{
		Log: log,
		IsInteractive: func() bool {
			return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
		},
		OpenRepo: openRepo,
	}

	return cli.NewRootCmd(app).Execute()
}

// openRepo resolves the database path from the --db flag or APERTURE_DB,
// defaulting to ~/.aperture/aperture.db, and opens the result store.
func openRepo() (repository.ResultRepo, func() error, error) {
	path := viper.GetString("db")
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, nil, fmt.Errorf("finding home directory: %w", err)
		}
		path = filepath.Join(home, ".aperture", "aperture.db")
	}

	database, err := db.OpenDB(path)
	if err != nil {
		return nil, nil, err
	}
	return repository.NewSQLiteResultRepo(database), database.Close, nil
}
