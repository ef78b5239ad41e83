package command

import (
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/spf13/cobra"

	"github.com/recipebook/recipebook/internal/model"
)

func seedCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load starter data",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "categories",
		Short: "Insert the default categories that are not present yet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withStore(cmd.Context(), func(store Store) error {
				created := 0
				for _, def := range model.DefaultCategories {
					now := time.Now().UTC()
					description := def.Description
					inserted, err := store.CreateCategoryIfMissing(cmd.Context(), &model.Category{
						ID:          ulid.Make().String(),
						Name:        def.Name,
						Description: &description,
						CreatedAt:   now,
						UpdatedAt:   now,
					})
					if err != nil {
						return fmt.Errorf("seed %q: %w", def.Name, err)
					}
					if inserted {
						created++
					}
				}

				_, err := fmt.Fprintf(cmd.OutOrStdout(), "seeded %d of %d default categories\n",
					created, len(model.DefaultCategories))
				return err
			})
		},
	})
	return cmd
}
