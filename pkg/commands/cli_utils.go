package commands

import (
	"github.com/spf13/cobra"

	"github.com/alphaholdings/entity-registry/modules"
)

// NewRegistryCommands creates the operational commands (migrate, seed, tree,
// export) wired to the built-in modules.
func NewRegistryCommands() []*cobra.Command {
	return []*cobra.Command{
		newMigrateCmd(),
		newSeedCmd(),
		newTreeCmd(),
		newExportCmd(),
	}
}

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			RunE: func(cmd *cobra.Command, args []string) error {
				return RunMigrations(cmd.Context(), "up", modules.BuiltInModules...)
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the most recent migration",
			RunE: func(cmd *cobra.Command, args []string) error {
				return RunMigrations(cmd.Context(), "down", modules.BuiltInModules...)
			},
		},
		&cobra.Command{
			Use:   "redo",
			Short: "Roll back and re-apply the most recent migration",
			RunE: func(cmd *cobra.Command, args []string) error {
				return RunMigrations(cmd.Context(), "redo", modules.BuiltInModules...)
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Print the status of every known migration",
			RunE: func(cmd *cobra.Command, args []string) error {
				return RunMigrations(cmd.Context(), "status", modules.BuiltInModules...)
			},
		},
	)
	return cmd
}

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed the database with the sample Alpha Holdings dataset",
		Long:  `Loads the sample dataset through the registry services: reporting groups, sector codes, the Alpha Holdings entity hierarchy, and the mappings that link them. Safe to re-run; rows that already exist are skipped.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return SeedDatabase(cmd.Context(), modules.BuiltInModules...)
		},
	}
}

func newTreeCmd() *cobra.Command {
	var (
		statuses []string
		kinds    []string
	)
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Render the legal-entity hierarchy to stdout",
		RunE: func(cmd *cobra.Command, args []string) error {
			return PrintTree(cmd.Context(), statuses, kinds, modules.BuiltInModules...)
		},
	}
	cmd.Flags().StringSliceVar(&statuses, "status", nil, "Filter by status (Active, Inactive, Pending); repeatable")
	cmd.Flags().StringSliceVar(&kinds, "kind", nil, "Filter by entity type (Parent, Subsidiary, JV, Branch, Other); repeatable")
	return cmd
}

func newExportCmd() *cobra.Command {
	var (
		format string
		out    string
	)
	cmd := &cobra.Command{
		Use:   "export (entities|mappings)",
		Short: "Export registry data to CSV or XLSX",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ExportData(cmd.Context(), args[0], format, out, modules.BuiltInModules...)
		},
	}
	cmd.Flags().StringVar(&format, "format", "csv", "Output format: csv or xlsx")
	cmd.Flags().StringVar(&out, "out", "", "Output file (defaults to the export's canonical name)")
	return cmd
}
