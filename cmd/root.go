package cmd

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Lumos-Labs-HQ/martgen/internal/config"
	"github.com/Lumos-Labs-HQ/martgen/internal/database"
)

var (
	cfgFile string
	Version = "1.3.0"
)

func showBanner() {
	greenColor := color.New(color.FgGreen, color.Bold)

	banner := []string{
		"╔══════════════════════════════════════════════════════════╗",
		"║  ███╗   ███╗ █████╗ ██████╗ ████████╗ ██████╗ ███████╗███╗   ██╗ ║",
		"║  ████╗ ████║██╔══██╗██╔══██╗╚══██╔══╝██╔════╝ ██╔════╝████╗  ██║ ║",
		"║  ██╔████╔██║███████║██████╔╝   ██║   ██║  ███╗█████╗  ██╔██╗ ██║ ║",
		"║  ██║╚██╔╝██║██╔══██║██╔══██╗   ██║   ██║   ██║██╔══╝  ██║╚██╗██║ ║",
		"║  ██║ ╚═╝ ██║██║  ██║██║  ██║   ██║   ╚██████╔╝███████╗██║ ╚████║ ║",
		"║  ╚═╝     ╚═╝╚═╝  ╚═╝╚═╝  ╚═╝   ╚═╝    ╚═════╝ ╚══════╝╚═╝  ╚═══╝ ║",
		"║                                                          ║",
		"║        📊 Synthetic Retail Analytics Datasets 📊         ║",
		"╚══════════════════════════════════════════════════════════╝",
	}

	for _, line := range banner {
		greenColor.Println(line)
	}

	fmt.Print("                        ")
	color.New(color.FgCyan, color.Bold).Print("Version: ")
	color.New(color.FgYellow, color.Bold).Printf("%s\n", Version)
}

var rootCmd = &cobra.Command{
	Use:   "martgen",
	Short: "Generate, load and export synthetic e-commerce analytics datasets",
	Long: `
Martgen builds realistic relational e-commerce datasets for analytics and
BI development: suppliers, products, customers, orders and competitor
prices, with referential integrity guaranteed by construction.

Workflow:
- martgen setup    create (or reset) the schema and reporting views
- martgen load     generate and bulk-load a fresh dataset
- martgen export   dump tables, views and analytics queries to CSV
- martgen status   show row counts and key ranges per table

Database Support:
- PostgreSQL (bulk COPY loading)
- MySQL (batched multi-row inserts)
- SQLite (embedded, single file)`,

	Run: func(cmd *cobra.Command, args []string) {
		showVersion, _ := cmd.Flags().GetBool("version")
		if showVersion {
			fmt.Printf("martgen version %s\n", Version)
			return
		}

		showBanner()
		fmt.Println()
		cmd.Help()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

// loadConfig runs the shared preamble every command needs: config load,
// validation and output directory creation.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to create directories: %w", err)
	}
	return cfg, nil
}

// connect opens and pings the adapter for the configured provider. The
// caller owns the returned adapter and must Close it.
func connect(ctx context.Context, cfg *config.Config) (database.Adapter, error) {
	dbURL, err := cfg.GetDatabaseURL()
	if err != nil {
		return nil, err
	}

	adapter := database.NewAdapter(cfg.Database.Provider)
	if err := adapter.Connect(ctx, dbURL); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := adapter.Ping(ctx); err != nil {
		adapter.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return adapter, nil
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./martgen.config.json)")
	rootCmd.Flags().BoolP("version", "v", false, "Show CLI version")
}

func initConfig() {
	if err := godotenv.Load(); err != nil {
		godotenv.Load(".env")
		godotenv.Load(".env.local")
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("json")
		viper.SetConfigName("martgen.config")
	}

	viper.AutomaticEnv()

	viper.ReadInConfig()
}
