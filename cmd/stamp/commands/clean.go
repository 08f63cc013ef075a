package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/stamp/internal/app"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove generated artifacts and the proxy cache",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			artifacts, _ := cmd.Flags().GetBool("artifacts")
			cache, _ := cmd.Flags().GetBool("cache")

			opts := app.CleanOptions{ConfigPath: configPath(cmd)}

			switch {
			case artifacts || cache:
				opts.Artifacts = artifacts
				opts.Cache = cache
			default:
				// Default behavior: clean everything
				opts.Artifacts = true
				opts.Cache = true
			}

			return c.app.Clean(cmd.Context(), opts)
		},
	}

	cmd.Flags().Bool("artifacts", false, "Only remove the generated worker script and metadata")
	cmd.Flags().Bool("cache", false, "Only remove the proxy cache")

	return cmd
}
