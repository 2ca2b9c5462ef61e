// Package output renders numeric pricing results for display and
// export. The core returns plain numbers; currency symbols and fixed
// decimal places exist only here.
package output

import (
	"github.com/shopspring/decimal"

	"ingredient-pricing/core/bulk"
	"ingredient-pricing/internal/config"
)

// Placeholder cell values for rows without a computed price.
const (
	cellNotAvailable = "N/A"
	cellNotProvided  = "Not provided"
)

// Columns is the export header, shared by CSV and Excel writers.
func Columns() []string {
	return []string{
		"Ingredient Name",
		"Quantity",
		"Price",
		"Per KG",
		"Per G",
		"Per MG",
		"Status",
	}
}

// Formatter renders prices with a currency symbol and the configured
// per-unit precision.
type Formatter struct {
	symbol    string
	precision config.Precision
}

// NewFormatter creates a formatter from currency and precision config.
func NewFormatter(currency config.CurrencyConfig, precision config.Precision) *Formatter {
	return &Formatter{
		symbol:    currency.Symbol,
		precision: precision,
	}
}

// Price renders a price with the currency symbol at a fixed number of
// decimal places.
func (f *Formatter) Price(d decimal.Decimal, decimals int32) string {
	return f.symbol + d.StringFixed(decimals)
}

// PerKG renders a per-kilogram price.
func (f *Formatter) PerKG(d decimal.Decimal) string {
	return f.Price(d, f.precision.KG)
}

// PerG renders a per-gram price.
func (f *Formatter) PerG(d decimal.Decimal) string {
	return f.Price(d, f.precision.G)
}

// PerMG renders a per-milligram price.
func (f *Formatter) PerMG(d decimal.Decimal) string {
	return f.Price(d, f.precision.MG)
}

// ResultCells renders one result row in export column order. Failed
// rows get "N/A" price cells; missing quantities echo "Not provided".
func (f *Formatter) ResultCells(r bulk.ResultRow) []string {
	quantity := r.Quantity
	if r.QuantityMissing {
		quantity = cellNotProvided
	}

	perKG, perG, perMG := cellNotAvailable, cellNotAvailable, cellNotAvailable
	if r.Outcome.Success && r.Outcome.Prices != nil {
		perKG = f.PerKG(r.Outcome.Prices.KG)
		perG = f.PerG(r.Outcome.Prices.G)
		perMG = f.PerMG(r.Outcome.Prices.MG)
	}

	return []string{
		r.Ingredient,
		quantity,
		r.Price,
		perKG,
		perG,
		perMG,
		r.Status,
	}
}
