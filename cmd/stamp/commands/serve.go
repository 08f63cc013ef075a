package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/stamp/internal/app"
)

func (c *CLI) newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Preview the build directory like a static host",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			addr, _ := cmd.Flags().GetString("addr")
			return c.app.Serve(cmd.Context(), app.ServeOptions{
				ConfigPath: configPath(cmd),
				Addr:       addr,
			})
		},
	}
	cmd.Flags().StringP("addr", "a", "127.0.0.1:4173", "Address to listen on")
	return cmd
}

func (c *CLI) newProxyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "proxy",
		Short: "Run the cache worker as a proxy in front of a deployed site",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			addr, _ := cmd.Flags().GetString("addr")
			origin, _ := cmd.Flags().GetString("origin")
			interval, _ := cmd.Flags().GetDuration("interval")
			skipWaiting, _ := cmd.Flags().GetBool("skip-waiting")

			return c.app.Proxy(cmd.Context(), app.ProxyOptions{
				ConfigPath:  configPath(cmd),
				Addr:        addr,
				Origin:      origin,
				Interval:    interval,
				SkipWaiting: skipWaiting,
			})
		},
	}
	cmd.Flags().StringP("addr", "a", "127.0.0.1:8080", "Address to listen on")
	cmd.Flags().String("origin", "", "Base URL of the deployed site")
	cmd.Flags().Duration("interval", app.DefaultPollInterval, "How often to check the origin for a new version")
	cmd.Flags().Bool("skip-waiting", true, "Activate a new version without waiting for in-flight requests")
	_ = cmd.MarkFlagRequired("origin")
	return cmd
}
