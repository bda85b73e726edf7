package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/realty/internal/sqlite"
)

func (a *app) newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <dir>",
		Short: "Write every table to <dir> as JSONL",
		Long: "Export writes agents.jsonl, clients.jsonl, properties.jsonl, and\n" +
			"contracts.jsonl into <dir>, one record per line in id order. Existing files\n" +
			"are replaced atomically.",
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("resolving export dir: %w", err)
			}
			if _, err := a.service(cmd.Context()); err != nil {
				return err
			}
			if err := a.backend.Export(cmd.Context(), dir); err != nil {
				return fmt.Errorf("exporting: %w", err)
			}

			files := []string{sqlite.AgentsJSONL, sqlite.ClientsJSONL, sqlite.PropertiesJSONL, sqlite.ContractsJSONL}
			if a.flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), map[string]any{"dir": dir, "files": files})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d tables to %s\n", len(files), dir)
			return nil
		},
	}
}
