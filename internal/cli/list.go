package cli

import (
	"context"
	"encoding/json"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/vpctree/pkg/pipeline"
)

// listCommand creates the list command, the long form of "vpctree -l".
func (c *CLI) listCommand() *cobra.Command {
	format := pipeline.FormatText

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the VPCs in the snapshot",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runList(cmd.Context(), cmd.OutOrStdout(), format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", format, "output format: text or json")

	return cmd
}

// runList writes one line per VPC to w.
func (c *CLI) runList(ctx context.Context, w io.Writer, format string) error {
	if err := pipeline.ValidateFormat(format); err != nil {
		return err
	}

	snap, err := c.loadSnapshot()
	if err != nil {
		return err
	}
	runner, err := c.newRunner(ctx, false)
	if err != nil {
		return err
	}
	defer runner.Close()

	lines, err := runner.ListVPCs(ctx, snap)
	if err != nil {
		return err
	}
	loggerFromContext(ctx).Debug("listed VPCs", "count", max(0, len(lines)-1))

	if format == pipeline.FormatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string][]string{"vpcs": lines})
	}
	return printTree(w, lines, isTerminal(w))
}
