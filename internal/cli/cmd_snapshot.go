package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/krushit1307/HRMS/internal/app"
	"github.com/krushit1307/HRMS/internal/store"

	"github.com/spf13/cobra"
)

func newExportCommand(deps commandDeps) *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the document and credential hashes as JSON",
		Example: "  dayflowctl export > backup.json\n" +
			"  dayflowctl export --output backup.json",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withResources(cmd.Context(), deps, func(ctx context.Context, res *app.Resources) error {
				snap, err := res.Store.Export(ctx)
				if err != nil {
					return err
				}
				b, err := json.MarshalIndent(snap, "", "  ")
				if err != nil {
					return fmt.Errorf("encode snapshot: %w", err)
				}
				b = append(b, '\n')

				if outputPath == "" {
					_, err = deps.out.Write(b)
					return err
				}
				if err := os.WriteFile(outputPath, b, 0o600); err != nil {
					return fmt.Errorf("write %s: %w", outputPath, err)
				}
				_, err = fmt.Fprintf(deps.out, "exported to %s\n", outputPath)
				return err
			})
		},
	}
	cmd.Flags().StringVar(&outputPath, "output", "", "File to write instead of stdout")
	return cmd
}

func newImportCommand(deps commandDeps) *cobra.Command {
	var inputPath string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Replace the store contents with a snapshot",
		Long: "Replace the store contents with a snapshot written by export. A browser\n" +
			"localStorage dump with dayflow_db and dayflow_passwords also works;\n" +
			"plaintext passwords are hashed on the way in.",
		Example: "  dayflowctl import --from backup.json",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(inputPath) == "" {
				return fmt.Errorf("import requires --from")
			}
			data, err := os.ReadFile(inputPath)
			if err != nil {
				return fmt.Errorf("read %s: %w", inputPath, err)
			}
			snap, err := store.ParseSnapshot(data)
			if err != nil {
				return err
			}

			return withResources(cmd.Context(), deps, func(ctx context.Context, res *app.Resources) error {
				if err := res.Store.Import(ctx, snap); err != nil {
					return err
				}
				_, err := fmt.Fprintf(deps.out, "imported %d users, %d credentials\n",
					len(snap.Document.Users), len(snap.Credentials))
				return err
			})
		},
	}
	cmd.Flags().StringVar(&inputPath, "from", "", "Snapshot file to import (required)")
	return cmd
}
