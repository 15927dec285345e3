package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mrlokans/catalog/internal/database"
	"github.com/mrlokans/catalog/internal/demo"
)

func (c *CLI) newSeedDemoCmd() *cobra.Command {
	var (
		username string
		reset    bool
	)

	cmd := &cobra.Command{
		Use:   "seed-demo",
		Short: "Fill a database with sample profiles, listings and bookmarks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dbPath := c.cfg.Database.Path

			if reset {
				if err := os.Remove(dbPath); err != nil && !os.IsNotExist(err) {
					return fmt.Errorf("failed to remove existing database: %w", err)
				}
			}

			db, err := database.NewQuietDatabase(dbPath)
			if err != nil {
				return err
			}
			defer db.Close()

			result, err := demo.Seed(cmd.Context(), db, demo.Options{Username: username}, c.log)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Seeded %s\n", dbPath)
			fmt.Fprintf(out, "  profiles:  %d\n", result.Profiles)
			fmt.Fprintf(out, "  listings:  %d\n", result.Listings)
			fmt.Fprintf(out, "  bookmarks: %d\n", result.Bookmarks)
			fmt.Fprintf(out, "Pending shared folder: catalog import-bookmarks --user %s --notification %d\n",
				username, result.NotificationID)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "user", c.cfg.Auth.DefaultUsername, "Username that owns the sample bookmarks")
	cmd.Flags().BoolVar(&reset, "reset", false, "Delete the database file before seeding")

	return cmd
}
