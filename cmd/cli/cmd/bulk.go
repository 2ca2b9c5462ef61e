// Package cmd - bulk command
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ingredient-pricing/adapters/tabular"
	"ingredient-pricing/core/bulk"
	"ingredient-pricing/core/output"
	"ingredient-pricing/core/pricing"
	"ingredient-pricing/core/quantity"
	"ingredient-pricing/internal/config"
	"ingredient-pricing/internal/logging"
)

var (
	bulkOutput  string
	bulkFormat  string
	bulkLenient bool
)

// bulkCmd represents the bulk command
var bulkCmd = &cobra.Command{
	Use:   "bulk <input-file>",
	Short: "Price every row of a CSV or Excel file",
	Long: `Read a 3-column tabular file (ingredient name, quantity, price),
compute unit prices per row and write the annotated results.

Examples:
  ingredient-pricing bulk ingredients.csv
  ingredient-pricing bulk ingredients.xlsx -o results.csv
  ingredient-pricing bulk ingredients.csv -o results.xlsx --format excel`,
	Args: cobra.ExactArgs(1),
	RunE: runBulk,
}

func init() {
	bulkCmd.Flags().StringVarP(&bulkOutput, "output", "o", "", "output file (default pricing_results.csv or .xlsx)")
	bulkCmd.Flags().StringVarP(&bulkFormat, "format", "f", "csv", "output format (csv, excel)")
	bulkCmd.Flags().BoolVar(&bulkLenient, "lenient", false, "default missing units to grams instead of rejecting them")
}

func runBulk(cmd *cobra.Command, args []string) error {
	cfg := config.Get()

	strict := cfg.Parser.StrictUnitRequired && !bulkLenient
	parser := quantity.NewParser(strict)
	calc := pricing.NewCalculator(parser, cfg.Precision)
	proc := bulk.NewProcessor(calc, cfg.Bulk)

	input, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer input.Close()

	rows, readErr := tabular.ReadFile(args[0], input)
	if readErr != nil {
		return fmt.Errorf("%s", readErr.Message)
	}

	results, procErr := proc.Process(context.Background(), rows)
	if procErr != nil {
		return fmt.Errorf("%s", procErr.Message)
	}

	formatter := output.NewFormatter(cfg.Currency, cfg.Precision)
	records := make([][]string, len(results))
	failures := 0
	for i, r := range results {
		records[i] = formatter.ResultCells(r)
		if !r.Outcome.Success {
			failures++
		}
	}

	outPath := bulkOutput
	if outPath == "" {
		outPath = "pricing_results.csv"
		if bulkFormat == "excel" {
			outPath = "pricing_results.xlsx"
		}
	}

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer out.Close()

	if bulkFormat == "excel" {
		if e := tabular.WriteExcel(out, records); e != nil {
			return fmt.Errorf("%s", e.Message)
		}
	} else if e := tabular.WriteCSV(out, records); e != nil {
		return fmt.Errorf("%s", e.Message)
	}

	logging.Info("bulk file processed",
		zap.String("input", args[0]),
		zap.String("output", outPath),
		zap.Int("rows", len(results)),
		zap.Int("failures", failures),
	)

	fmt.Printf("Processed %d rows (%d failed) -> %s\n", len(results), failures, outPath)
	return nil
}
