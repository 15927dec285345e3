package cli

import (
	"github.com/spf13/cobra"

	"github.com/mrlokans/catalog/internal/entrypoint"
)

func (c *CLI) newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.serve()
		},
	}
}

func (c *CLI) serve() error {
	return entrypoint.Run(c.cfg, c.version, c.log)
}
