package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mrlokans/catalog/internal/entrypoint"
)

func (c *CLI) newImportBookmarksCmd() *cobra.Command {
	var (
		username       string
		notificationID uint
	)

	cmd := &cobra.Command{
		Use:   "import-bookmarks",
		Short: "Import a peer's shared bookmark folder into a user's library",
		Example: `  # Accept notification 12 on behalf of wsmith
  catalog import-bookmarks --user wsmith --notification 12`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Warm-ups are not needed for a one-shot import.
			c.cfg.Tasks.Enabled = false

			app, err := entrypoint.Build(c.cfg, c.log)
			if err != nil {
				return err
			}
			defer app.Close()

			outcome, err := app.Importer.Import(cmd.Context(), username, notificationID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if outcome.Rejected() {
				for _, p := range outcome.Errors {
					fmt.Fprintf(out, "  - %s\n", p.Message)
				}
				return errors.New("import rejected")
			}

			fmt.Fprintf(out, "Imported %d bookmarks for %s\n", len(outcome.Entries), username)
			for _, e := range outcome.Entries {
				folder := ""
				if e.Folder != nil {
					folder = *e.Folder
				}
				fmt.Fprintf(out, "  #%d %s [%s]\n", e.ID, e.Listing.Title, folder)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "user", "", "Username that receives the bookmarks (required)")
	cmd.Flags().UintVar(&notificationID, "notification", 0, "ID of the peer bookmark notification (required)")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("notification")

	return cmd
}
