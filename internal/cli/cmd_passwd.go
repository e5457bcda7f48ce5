package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/krushit1307/HRMS/internal/app"
	"github.com/krushit1307/HRMS/internal/store"

	"github.com/spf13/cobra"
)

func newPasswdCommand(deps commandDeps) *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:     "passwd <email>",
		Short:   "Set the password of a user",
		Example: "  dayflowctl passwd admin@dayflow.com --password 'n3w-secret'",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(password) < 6 {
				return fmt.Errorf("--password must be at least 6 characters")
			}
			email := args[0]

			return withResources(cmd.Context(), deps, func(ctx context.Context, res *app.Resources) error {
				u, err := res.Store.FindUserByEmail(ctx, email)
				if err != nil {
					if errors.Is(err, store.ErrNotFound) {
						return fmt.Errorf("no user with email %s", email)
					}
					return err
				}
				if err := res.Store.SetPassword(ctx, u.ID, password); err != nil {
					return err
				}
				_, err = fmt.Fprintf(deps.out, "password updated for %s (%s)\n", u.Email, u.ID)
				return err
			})
		},
	}
	cmd.Flags().StringVar(&password, "password", "", "New password (required)")
	return cmd
}
