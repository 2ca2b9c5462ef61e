// Package pricing derives per-unit prices from a quantity expression
// and a price. It owns validation order and rounding; parsing belongs
// to core/quantity.
package pricing

import (
	"strings"

	"github.com/shopspring/decimal"

	"ingredient-pricing/core/quantity"
	"ingredient-pricing/internal/config"
	"ingredient-pricing/internal/errors"
)

const (
	msgMissingName     = "Please enter an ingredient name."
	msgMissingQuantity = "Please enter a quantity."
	msgMissingPrice    = "Please enter a price."
	msgInvalidPrice    = "Please enter a valid price."
	msgNonPositive     = "Quantity must be greater than zero."
)

// UnitPrices holds the price per kilogram, gram and milligram. All
// three are scalings of the same price-per-gram value (kg = pg*1000,
// mg = pg/1000), rounded to the configured precision per unit.
type UnitPrices struct {
	KG decimal.Decimal `json:"kg"`
	G  decimal.Decimal `json:"g"`
	MG decimal.Decimal `json:"mg"`
}

// Outcome is the result of one pricing calculation, tagged with the
// originating ingredient name for correlation in batch output. Exactly
// one of Prices and Err is set.
type Outcome struct {
	IngredientName string
	Success        bool
	Prices         *UnitPrices
	Grams          decimal.Decimal
	Err            *errors.Error
}

// Calculator computes unit prices. It is a pure, stateless value:
// safe to share across any number of goroutines.
type Calculator struct {
	parser    *quantity.Parser
	precision config.Precision
}

// NewCalculator creates a calculator around the given parser and
// rounding precision.
func NewCalculator(parser *quantity.Parser, precision config.Precision) *Calculator {
	return &Calculator{
		parser:    parser,
		precision: precision,
	}
}

// Calculate validates the three inputs, parses the quantity and
// derives the per-unit prices. Validation short-circuits on the first
// failing check; parse errors propagate verbatim.
func (c *Calculator) Calculate(ingredientName, quantityText, priceText string) Outcome {
	outcome := Outcome{IngredientName: ingredientName}

	if strings.TrimSpace(ingredientName) == "" {
		outcome.Err = errors.MissingField(msgMissingName)
		return outcome
	}

	if strings.TrimSpace(quantityText) == "" {
		outcome.Err = errors.MissingField(msgMissingQuantity)
		return outcome
	}

	if strings.TrimSpace(priceText) == "" {
		outcome.Err = errors.MissingField(msgMissingPrice)
		return outcome
	}

	price, err := decimal.NewFromString(strings.TrimSpace(priceText))
	if err != nil {
		outcome.Err = errors.InvalidPrice(msgInvalidPrice)
		return outcome
	}

	grams, parseErr := c.parser.Parse(quantityText)
	if parseErr != nil {
		outcome.Err = parseErr
		return outcome
	}

	// A zero mass would divide by zero; negative cannot happen but is
	// covered by the same guard.
	if !grams.IsPositive() {
		outcome.Err = errors.NonPositiveQuantity(msgNonPositive)
		return outcome
	}

	perGram := price.Div(grams)

	outcome.Success = true
	outcome.Grams = grams
	outcome.Prices = &UnitPrices{
		KG: perGram.Mul(decimal.New(1, 3)).Round(c.precision.KG),
		G:  perGram.Round(c.precision.G),
		MG: perGram.Div(decimal.New(1, 3)).Round(c.precision.MG),
	}
	return outcome
}
