package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/okian/iplstats/internal/adapters/repository"
)

func newStatusCommand(env *runtimeEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show store size and the last import",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, err := openStore(ctx, env.cfg)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			counts, err := store.Count(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "backend:    %s\n", env.cfg.Backend())
			_, _ = fmt.Fprintf(out, "matches:    %d\n", counts.Matches)
			_, _ = fmt.Fprintf(out, "deliveries: %d\n", counts.Deliveries)

			mr, ok := store.(repository.MetaReader)
			if !ok {
				return nil
			}
			meta, err := mr.ImportMeta(ctx)
			if err != nil {
				return err
			}
			keys := make([]string, 0, len(meta))
			for k := range meta {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				_, _ = fmt.Fprintf(out, "%s: %s\n", k, meta[k])
			}
			return nil
		},
	}
}
