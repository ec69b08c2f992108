package cli

import (
	"github.com/spf13/cobra"

	"github.com/okian/iplstats/internal/adapters/mcp"
)

func newMCPCommand(env *runtimeEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the reports as MCP tools over stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			svc, stop, err := startService(ctx, env.cfg)
			if err != nil {
				return err
			}
			defer stop()
			return mcp.Serve(ctx, svc, Version)
		},
	}
}
