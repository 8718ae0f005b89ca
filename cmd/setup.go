package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Lumos-Labs-HQ/martgen/internal/pipeline"
)

var setupForce bool

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create or reset the analytics schema",
	Long: `Drop and recreate all five tables plus the reporting views.

Tables are dropped children-first and created parents-first so foreign key
constraints never block the reset. Any existing data is destroyed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		if !setupForce && !confirm("This will DROP all existing tables and data. Continue?") {
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
		if err := p.Setup(ctx); err != nil {
			return err
		}

		color.Green("✅ Schema created (provider: %s)", cfg.Database.Provider)
		return nil
	},
}

func confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

func init() {
	rootCmd.AddCommand(setupCmd)
	setupCmd.Flags().BoolVarP(&setupForce, "force", "f", false, "Skip confirmation prompt")
}
