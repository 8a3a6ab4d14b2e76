package cli

import (
	"github.com/spf13/cobra"
)

var completionShells = []string{"bash", "zsh", "fish", "powershell"}

// completionCommand prints a shell completion script to stdout.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion SHELL",
		Short: "Generate shell completion scripts",
		Long: `Print a completion script for bash, zsh, fish or powershell.

Completion of VPC ids is offered for the tree and view commands once a
snapshot is configured.`,
		Example: `  source <(vpctree completion bash)
  vpctree completion zsh > "${fpath[1]}/_vpctree"
  vpctree completion fish > ~/.config/fish/completions/vpctree.fish`,
		DisableFlagsInUseLine: true,
		ValidArgs:             completionShells,
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		PersistentPreRunE:     func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			root, out := cmd.Root(), cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(out, true)
			case "zsh":
				return root.GenZshCompletion(out)
			case "fish":
				return root.GenFishCompletion(out, true)
			default:
				return root.GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}

// completeVPCIDs offers the VPC ids of the configured snapshot.
func (c *CLI) completeVPCIDs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	if cfg, err := loadConfig(c.configPath); err == nil {
		c.config = cfg
	}
	snap, err := c.loadSnapshot()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	vpcs, err := snap.VPCs(cmd.Context())
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	ids := make([]string, 0, len(vpcs))
	for _, v := range vpcs {
		ids = append(ids, v.VpcID+"\t"+v.CidrBlock)
	}
	return ids, cobra.ShellCompDirectiveNoFileComp
}
