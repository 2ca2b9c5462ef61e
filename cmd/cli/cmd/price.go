// Package cmd - price command
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"ingredient-pricing/core/output"
	"ingredient-pricing/core/pricing"
	"ingredient-pricing/core/quantity"
	"ingredient-pricing/internal/config"
)

var priceLenient bool

// priceCmd represents the price command
var priceCmd = &cobra.Command{
	Use:   "price <ingredient> <quantity> <price>",
	Short: "Compute unit prices for a single ingredient",
	Long: `Normalize a quantity expression to grams and report the price per
kilogram, gram and milligram.

Examples:
  ingredient-pricing price "Rice" "10x100g" 1000
  ingredient-pricing price "Oil" 2l 200
  ingredient-pricing price "Saffron" 500mg 450`,
	Args: cobra.ExactArgs(3),
	RunE: runPrice,
}

func init() {
	priceCmd.Flags().BoolVar(&priceLenient, "lenient", false, "default missing units to grams instead of rejecting them")
}

func runPrice(cmd *cobra.Command, args []string) error {
	cfg := config.Get()

	strict := cfg.Parser.StrictUnitRequired && !priceLenient
	parser := quantity.NewParser(strict)
	calc := pricing.NewCalculator(parser, cfg.Precision)

	outcome := calc.Calculate(args[0], args[1], args[2])
	if !outcome.Success {
		return fmt.Errorf("%s", outcome.Err.Message)
	}

	formatter := output.NewFormatter(cfg.Currency, cfg.Precision)

	fmt.Printf("Ingredient: %s\n", outcome.IngredientName)
	fmt.Printf("Mass:       %sg\n", outcome.Grams.String())
	fmt.Printf("Per KG:     %s\n", formatter.PerKG(outcome.Prices.KG))
	fmt.Printf("Per G:      %s\n", formatter.PerG(outcome.Prices.G))
	fmt.Printf("Per MG:     %s\n", formatter.PerMG(outcome.Prices.MG))
	return nil
}
