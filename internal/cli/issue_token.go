package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mrlokans/catalog/internal/auth"
	"github.com/mrlokans/catalog/internal/database"
	"github.com/mrlokans/catalog/internal/database/profiles"
)

func (c *CLI) newIssueTokenCmd() *cobra.Command {
	var username string

	cmd := &cobra.Command{
		Use:   "issue-token",
		Short: "Create or rotate the API token of a profile",
		Long: `Create or rotate the API token of a profile. The token is printed once;
only its hash is stored. Requests authenticate with "Authorization: Bearer <token>"
when AUTH_MODE=token.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := database.NewQuietDatabase(c.cfg.Database.Path)
			if err != nil {
				return err
			}
			defer db.Close()

			service := auth.NewService(profiles.NewRepository(db.DB), c.cfg.Auth)
			token, err := service.IssueToken(cmd.Context(), username)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "user", "", "Profile username (required)")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}
