package command

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/spf13/cobra"

	"github.com/recipebook/recipebook/internal/auth"
	"github.com/recipebook/recipebook/internal/model"
)

func userCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "User commands",
	}
	cmd.AddCommand(userCreateAdminCommand(a))
	return cmd
}

func userCreateAdminCommand(a *app) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "create-admin USERNAME",
		Short: "Create or promote an admin user",
		Long: "Creates an admin account, or resets the password of an existing account and\n" +
			"grants it admin. Passwords may be provided with --password, via stdin, or\n" +
			"through the interactive prompt.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			username := strings.TrimSpace(args[0])
			if username == "" {
				return errors.New("username is required")
			}
			if email == "" {
				email = username + "@localhost"
			}

			passwd := []byte(password)
			if len(passwd) == 0 {
				var err error
				passwd, err = prompt(a.in, cmd.ErrOrStderr(), "password: ", true)
				if err != nil {
					return fmt.Errorf("failed to read password: %w", err)
				}
			}
			if len(passwd) == 0 {
				return errors.New("password must not be empty")
			}

			hash, err := auth.HashPassword(string(passwd))
			if err != nil {
				return err
			}

			return a.withStore(cmd.Context(), func(store Store) error {
				inserted, err := store.UpsertAdmin(cmd.Context(), &model.User{
					ID:           ulid.Make().String(),
					Username:     username,
					Email:        email,
					PasswordHash: hash,
					IsAdmin:      true,
					CreatedAt:    time.Now().UTC(),
				})
				if err != nil {
					return err
				}

				action := "promoted existing user"
				if inserted {
					action = "created admin user"
				}
				a.logger.InfoContext(cmd.Context(), action, slog.String("username", username))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email for a new account (defaults to USERNAME@localhost)")
	cmd.Flags().StringVar(&password, "password", "", "password for the account (prompted when omitted)")

	return cmd
}
