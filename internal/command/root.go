// Package command contains the recipectl command constructors.
package command

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/caarlos0/env/v10"
	"github.com/spf13/cobra"

	"github.com/recipebook/recipebook/internal/model"
	"github.com/recipebook/recipebook/internal/repository"
)

// Store is the persistence surface the admin commands need.
type Store interface {
	Migrate(ctx context.Context, logger *slog.Logger) error
	MigrateDown(ctx context.Context, logger *slog.Logger) error
	MigrationVersion(ctx context.Context) (int64, error)
	UpsertAdmin(ctx context.Context, user *model.User) (bool, error)
	CreateCategoryIfMissing(ctx context.Context, category *model.Category) (bool, error)
	Close()
}

// Opener connects to the store named by databaseURL.
type Opener func(ctx context.Context, databaseURL string) (Store, error)

// settings are read from the same environment as the API server.
type settings struct {
	DatabaseURL string `env:"DATABASE_URL"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
}

type app struct {
	open        Opener
	in          io.Reader
	databaseURL string
	logger      *slog.Logger
}

// RootCommand instantiates the root command backed by PostgreSQL.
func RootCommand(version string) *cobra.Command {
	return NewRootCommand(version, openRepository)
}

// NewRootCommand instantiates the root command with all sub-commands bound,
// opening stores through open.
func NewRootCommand(version string, open Opener) *cobra.Command {
	a := &app{open: open}

	cmd := &cobra.Command{
		Use:          "recipectl [command] [flags]",
		Short:        "Administrative tool for the Recipe Book API",
		Version:      version,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var s settings
			if err := env.Parse(&s); err != nil {
				return fmt.Errorf("failed to parse environment: %w", err)
			}
			if a.databaseURL == "" {
				a.databaseURL = s.DatabaseURL
			}
			a.in = cmd.InOrStdin()
			a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
				Level: parseLevel(s.LogLevel),
			}))
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(
		&a.databaseURL,
		"database-url", "",
		"PostgreSQL connection string (defaults to $DATABASE_URL)",
	)

	cmd.AddCommand(
		migrateCommand(a),
		userCommand(a),
		seedCommand(a),
	)

	return cmd
}

// withStore opens the store, runs fn, and closes the store.
func (a *app) withStore(ctx context.Context, fn func(Store) error) error {
	if a.databaseURL == "" {
		return fmt.Errorf("database URL is required: set DATABASE_URL or --database-url")
	}

	store, err := a.open(ctx, a.databaseURL)
	if err != nil {
		return err
	}
	defer store.Close()

	return fn(store)
}

func openRepository(ctx context.Context, databaseURL string) (Store, error) {
	opts := repository.DefaultOptions()
	opts.MaxConns = 2
	opts.MinConns = 0
	repo, err := repository.New(ctx, databaseURL, opts)
	if err != nil {
		return nil, err
	}
	return repo, nil
}

func parseLevel(level string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo
	}
	return l
}
