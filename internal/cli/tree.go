package cli

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/vpctree/pkg/errors"
	"github.com/matzehuels/vpctree/pkg/pipeline"
)

// treeOptions holds the flags of "vpctree tree".
type treeOptions struct {
	output  string
	format  string
	refresh bool
	noCache bool
	strict  bool
}

// treeCommand creates the tree command for rendering one VPC.
func (c *CLI) treeCommand() *cobra.Command {
	opts := treeOptions{format: pipeline.FormatText}

	cmd := &cobra.Command{
		Use:   "tree VPC_ID",
		Short: "Render the resource tree of a VPC",
		Long: `Render the resource tree of a VPC.

The tree lists the VPC's subnets with their instances, followed by its security
groups, load balancers, target groups and auto scaling groups. Reports are
cached per snapshot; use --refresh to re-render.`,
		Example: `  vpctree tree vpc-0a1b2c3d
  vpctree tree vpc-0a1b2c3d -o vpc.txt
  vpctree tree vpc-0a1b2c3d --format json --no-cache`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: c.completeVPCIDs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTree(cmd.Context(), cmd.OutOrStdout(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the tree to a file instead of stdout")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: text or json")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even if a cached report exists")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the report cache")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "require a well-formed EC2 VPC id")

	return cmd
}

// runTree renders vpcID and writes it to w or opts.output.
func (c *CLI) runTree(ctx context.Context, w io.Writer, vpcID string, opts treeOptions) error {
	if opts.format == "" {
		opts.format = pipeline.FormatText
	}
	if err := pipeline.ValidateFormat(opts.format); err != nil {
		return err
	}
	if opts.output != "" {
		if err := errors.ValidatePath(opts.output); err != nil {
			return err
		}
	}

	spinner := startSpinner(ctx, "Loading snapshot...")
	defer spinner.Stop()

	snap, err := c.loadSnapshot()
	if err != nil {
		return err
	}
	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner.Update("Rendering " + vpcID + "...")
	result, err := runner.Execute(ctx, snap, pipeline.Options{
		VpcID:     vpcID,
		Refresh:   opts.refresh,
		StrictIDs: opts.strict,
	})
	spinner.Stop()
	if err != nil {
		return err
	}
	loggerFromContext(ctx).Debug("rendered", "vpc", vpcID, "lines", result.Stats.LineCount,
		"cached", result.CacheHit, "fetch", result.Stats.FetchTime, "render", result.Stats.RenderTime)

	if opts.output == "" {
		return writeReport(w, vpcID, result, opts.format, isTerminal(w))
	}

	f, err := os.Create(opts.output)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", opts.output)
	}
	if err := writeReport(f, vpcID, result, opts.format, false); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	st := status{w}
	st.success("Rendered %s", vpcID)
	st.file(opts.output)
	st.stats(result.Stats.LineCount, result.Stats.FetchTime+result.Stats.RenderTime, result.CacheHit)
	return nil
}

// startSpinner starts a spinner on stderr. Output is discarded when stderr
// is not a terminal.
func startSpinner(ctx context.Context, msg string) *Spinner {
	var out io.Writer = os.Stderr
	if !isTerminal(os.Stderr) {
		out = io.Discard
	}
	s := newSpinner(ctx, out, msg)
	s.Start()
	return s
}

// treeReport is the JSON form of a rendered tree.
type treeReport struct {
	VpcID  string   `json:"vpc_id"`
	Lines  []string `json:"lines"`
	Cached bool     `json:"cached"`
}

// writeReport writes result in the given format. Styling applies to text
// output only.
func writeReport(w io.Writer, vpcID string, result *pipeline.Result, format string, styled bool) error {
	if format == pipeline.FormatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(treeReport{VpcID: vpcID, Lines: result.Lines, Cached: result.CacheHit})
	}
	return printTree(w, result.Lines, styled)
}
