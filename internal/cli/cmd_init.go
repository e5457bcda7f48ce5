package cli

import (
	"context"
	"fmt"

	"github.com/krushit1307/HRMS/internal/app"
	"github.com/krushit1307/HRMS/internal/store"

	"github.com/spf13/cobra"
)

func newInitCommand(deps commandDeps) *cobra.Command {
	var reset bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Seed the demo data when the store is empty",
		Example: "  dayflowctl init\n" +
			"  dayflowctl init --reset",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withResources(cmd.Context(), deps, func(ctx context.Context, res *app.Resources) error {
				if reset {
					for _, key := range []string{store.DocumentKey, store.CredentialsKey} {
						if err := res.Backend.Delete(ctx, key); err != nil {
							return fmt.Errorf("reset %s: %w", key, err)
						}
					}
				}
				if err := res.Store.InitializeIfAbsent(ctx); err != nil {
					return err
				}
				doc, err := res.Store.Load(ctx)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(deps.out, "store ready: %d users, %d attendance, %d leaves, %d payroll\n",
					len(doc.Users), len(doc.Attendance), len(doc.Leaves), len(doc.Payroll))
				return err
			})
		},
	}
	cmd.Flags().BoolVar(&reset, "reset", false, "Delete the stored document and credentials before seeding")
	return cmd
}
