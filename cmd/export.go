package cmd

import (
	"context"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Lumos-Labs-HQ/martgen/internal/export"
)

var exportDir string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export tables, views and analytics queries to CSV",
	Long: `Dump every table, every reporting view and the canned analytics
queries to CSV files, one file per source, named <source>.csv.

Files are written with a UTF-8 byte order mark so spreadsheet tools pick
the right encoding. Re-running overwrites files in place.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		dir := cfg.ExportPath
		if exportDir != "" {
			dir = exportDir
		}

		ctx := context.Background()
		adapter, err := connect(ctx, cfg)
		if err != nil {
			return err
		}
		defer adapter.Close()

		e := export.New(adapter, cfg.Database.Provider, dir)
		res, err := e.Run(ctx)
		if err != nil {
			return err
		}

		color.Green("\n✅ Exported %d files (%d rows) to %s", res.Files, res.Rows, dir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportDir, "out", "o", "", "Output directory (default from config export_path)")
}
