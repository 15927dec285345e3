// Package cli implements the catalog command line.
package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/mrlokans/catalog/internal/config"
	"github.com/mrlokans/catalog/internal/logger"
)

// CLI represents the catalog command line interface.
type CLI struct {
	cfg     *config.Config
	log     logger.Logger
	version string
	rootCmd *cobra.Command
}

// New creates the command tree. Running the binary without a subcommand
// starts the HTTP server.
func New(cfg *config.Config, version string, log logger.Logger) *CLI {
	c := &CLI{
		cfg:     cfg,
		log:     log,
		version: version,
	}

	rootCmd := &cobra.Command{
		Use:           "catalog",
		Short:         "Catalog library service: bookmarks, folders and shared bookmark imports",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.serve()
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfg.Database.Path, "db", cfg.Database.Path, "Path to the catalog database")

	rootCmd.AddCommand(c.newServeCmd())
	rootCmd.AddCommand(c.newImportBookmarksCmd())
	rootCmd.AddCommand(c.newSeedDemoCmd())
	rootCmd.AddCommand(c.newIssueTokenCmd())

	c.rootCmd = rootCmd
	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOut redirects command output. Used for testing.
func (c *CLI) SetOut(w io.Writer) {
	c.rootCmd.SetOut(w)
}
