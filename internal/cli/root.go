// Package cli implements dayflowctl, the operator tool for the Dayflow store.
package cli

import (
	"context"
	"io"

	"github.com/krushit1307/HRMS/internal/app"

	"github.com/spf13/cobra"
)

// Opener opens the configured store. The command closes what it returns.
type Opener func(ctx context.Context) (*app.Resources, error)

type commandDeps struct {
	out  io.Writer
	open Opener
}

func NewRootCommand(out io.Writer, open Opener) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "dayflowctl",
		Short:         "Manage the Dayflow HR store",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(out)
	cmd.SetErr(out)

	deps := commandDeps{out: out, open: open}
	cmd.AddCommand(
		newInitCommand(deps),
		newExportCommand(deps),
		newImportCommand(deps),
		newPasswdCommand(deps),
	)
	return cmd
}

func withResources(ctx context.Context, deps commandDeps, fn func(ctx context.Context, res *app.Resources) error) (err error) {
	res, err := deps.open(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := res.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return fn(ctx, res)
}
