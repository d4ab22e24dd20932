// Export command: materialize the catalog into a SQLite database.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/benedicteb/bookmon/internal/sqlite"
)

var exportCmd = &cobra.Command{
	Use:   "export <file.db>",
	Short: "Export the catalog to a SQLite database for ad-hoc queries",
	Long: `Export writes a snapshot of the catalog into a SQLite database.
The JSON storage file remains the source of truth; the database is a
read-only convenience and is replaced on every export.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, _, err := openCatalog()
		if err != nil {
			return err
		}

		if err := sqlite.Export(s, args[0]); err != nil {
			return fmt.Errorf("export: %w", err)
		}
		fmt.Printf("Exported catalog to %s.\n", args[0])
		return nil
	},
}
