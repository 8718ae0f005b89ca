package cmd

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Lumos-Labs-HQ/martgen/internal/pipeline"
)

var (
	loadAppend      bool
	loadSeed        int64
	loadSkipCatalog bool
	loadForce       bool

	loadSuppliers int
	loadProducts  int
	loadCustomers int
	loadOrders    int
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Generate a synthetic dataset and bulk-load it",
	Long: `Generate suppliers, products, customers, orders and competitor prices
and bulk-load them in dependency order.

By default the schema is reset first (replace mode). With --append the
existing rows are kept and new surrogate keys continue past the current
maximum of each table.

Pass --seed to make a run reproducible; the effective seed is always
recorded in the run manifest written to the export directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		// Flag overrides beat config file counts
		if loadSuppliers > 0 {
			cfg.Counts.Suppliers = loadSuppliers
		}
		if loadProducts > 0 {
			cfg.Counts.Products = loadProducts
		}
		if loadCustomers > 0 {
			cfg.Counts.Customers = loadCustomers
		}
		if loadOrders > 0 {
			cfg.Counts.Orders = loadOrders
		}

		mode := pipeline.ModeReplace
		if loadAppend {
			mode = pipeline.ModeAppend
		}

		if mode == pipeline.ModeReplace && !loadForce && !confirm("This will REPLACE all existing data. Continue?") {
			color.Yellow("Aborted.")
			return nil
		}

		ctx := context.Background()
		adapter, err := connect(ctx, cfg)
		if err != nil {
			return err
		}
		defer adapter.Close()

		p := pipeline.New(cfg, adapter)
		manifest, err := p.Run(ctx, pipeline.Options{
			Mode:        mode,
			Seed:        loadSeed,
			SkipCatalog: loadSkipCatalog,
		})
		if err != nil {
			return err
		}

		path, err := manifest.Write(cfg.ExportPath)
		if err != nil {
			return fmt.Errorf("failed to write run manifest: %w", err)
		}
		color.Cyan("📝 Run manifest: %s", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loadCmd)
	loadCmd.Flags().BoolVar(&loadAppend, "append", false, "Keep existing rows and continue key sequences")
	loadCmd.Flags().Int64Var(&loadSeed, "seed", 0, "Random seed for reproducible runs (0 = time-based)")
	loadCmd.Flags().BoolVar(&loadSkipCatalog, "skip-catalog", false, "Skip the catalog fetch and use local fallback names")
	loadCmd.Flags().BoolVarP(&loadForce, "force", "f", false, "Skip confirmation prompt")
	loadCmd.Flags().IntVar(&loadSuppliers, "suppliers", 0, "Override supplier count")
	loadCmd.Flags().IntVar(&loadProducts, "products", 0, "Override product count")
	loadCmd.Flags().IntVar(&loadCustomers, "customers", 0, "Override customer count")
	loadCmd.Flags().IntVar(&loadOrders, "orders", 0, "Override order count")
}
