package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/vpctree/internal/api"
)

// serveCommand creates the serve command, which exposes the trees over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve VPC trees over HTTP",
		Long: `Serve VPC trees over HTTP.

Endpoints:
  GET /health           liveness and version
  GET /vpcs             the VPC list
  GET /vpcs/{vpcID}     the tree of one VPC

Add ?format=json for JSON responses and ?refresh=true to bypass the cache.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if addr == "" {
				addr = c.config.Server.Addr
			}

			snap, err := c.loadSnapshot()
			if err != nil {
				return err
			}
			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			status{cmd.ErrOrStderr()}.info("Serving %s on %s", c.snapshot(), StyleHighlight.Render(addr))
			return api.NewServer(runner, snap, c.Logger).ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, \":8080\")")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the report cache")

	return cmd
}
