package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/stamp/internal/app"
)

func (c *CLI) newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write the versioned worker script and version metadata",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			watch, _ := cmd.Flags().GetBool("watch")
			return c.app.Generate(cmd.Context(), app.GenerateOptions{
				ConfigPath: configPath(cmd),
				Watch:      watch,
			})
		},
	}
	cmd.Flags().BoolP("watch", "w", false, "Regenerate when the worker template changes")
	return cmd
}

func (c *CLI) newFallbackCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fallback",
		Short: "Copy the built entry document to the SPA fallback paths",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Fallback(cmd.Context(), configPath(cmd))
		},
	}
}

func (c *CLI) newBuildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Run generate and fallback in sequence",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Build(cmd.Context(), configPath(cmd))
		},
	}
}
