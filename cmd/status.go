package cmd

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Lumos-Labs-HQ/martgen/internal/schema"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show row counts and key ranges per table",
	Long: `Show the current state of the dataset: whether each table exists,
how many rows it holds and its highest surrogate key. The highest key is
where the next append run will continue from.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx := context.Background()
		adapter, err := connect(ctx, cfg)
		if err != nil {
			return err
		}
		defer adapter.Close()

		color.Cyan("📊 Dataset status (provider: %s)\n", cfg.Database.Provider)
		fmt.Printf("%-20s %12s %12s\n", "TABLE", "ROWS", "MAX KEY")

		for _, t := range schema.Tables() {
			exists, err := adapter.TableExists(ctx, t.Name)
			if err != nil {
				return err
			}
			if !exists {
				color.Yellow("%-20s %12s %12s", t.Name, "missing", "-")
				continue
			}
			rows, err := adapter.RowCount(ctx, t.Name)
			if err != nil {
				return err
			}
			maxKey, err := adapter.MaxID(ctx, t.Name, t.PrimaryKey())
			if err != nil {
				return err
			}
			fmt.Printf("%-20s %12d %12d\n", t.Name, rows, maxKey)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
