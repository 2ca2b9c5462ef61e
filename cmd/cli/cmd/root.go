// Package cmd provides the CLI commands for ingredient-pricing.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ingredient-pricing/internal/config"
	"ingredient-pricing/internal/logging"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "ingredient-pricing",
	Short: "Normalize ingredient quantities and compute unit prices",
	Long: `ingredient-pricing converts free-text quantity expressions such as
"10x100g", "1.2kg" or "2l" to grams and reports the price per
kilogram, gram and milligram.

Examples:
  ingredient-pricing price "Rice" "10x100g" 1000
  ingredient-pricing bulk ingredients.csv -o results.xlsx --format excel`,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.ingredient-pricing.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	// Add subcommands
	rootCmd.AddCommand(priceCmd)
	rootCmd.AddCommand(bulkCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	if cfgFile != "" {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		config.Set(cfg)
	}

	// Initialize logging
	cfg := config.Get()
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("ingredient-pricing version 1.0.0")
	},
}
