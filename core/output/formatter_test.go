package output

import (
	"testing"

	"github.com/shopspring/decimal"

	"ingredient-pricing/core/bulk"
	"ingredient-pricing/core/pricing"
	"ingredient-pricing/internal/config"
)

func newTestFormatter() *Formatter {
	cfg := config.Default()
	return NewFormatter(cfg.Currency, cfg.Precision)
}

// TestFormatterPrecision tests the per-unit decimal places.
func TestFormatterPrecision(t *testing.T) {
	f := newTestFormatter()
	perGram := decimal.RequireFromString("0.1")

	if got, want := f.PerKG(perGram.Mul(decimal.New(1, 3))), "₹100.00"; got != want {
		t.Errorf("PerKG = %q, want %q", got, want)
	}
	if got, want := f.PerG(perGram), "₹0.1000"; got != want {
		t.Errorf("PerG = %q, want %q", got, want)
	}
	if got, want := f.PerMG(perGram.Div(decimal.New(1, 3))), "₹0.000100"; got != want {
		t.Errorf("PerMG = %q, want %q", got, want)
	}
}

// TestResultCells tests export cell rendering for the three row kinds.
func TestResultCells(t *testing.T) {
	f := newTestFormatter()

	success := bulk.ResultRow{
		Row: bulk.Row{Ingredient: "Rice", Quantity: "10x100g", Price: "1000"},
		Outcome: pricing.Outcome{
			IngredientName: "Rice",
			Success:        true,
			Prices: &pricing.UnitPrices{
				KG: decimal.RequireFromString("1000"),
				G:  decimal.RequireFromString("1"),
				MG: decimal.RequireFromString("0.001"),
			},
		},
		Status: bulk.StatusSuccess,
	}

	cells := f.ResultCells(success)
	want := []string{"Rice", "10x100g", "1000", "₹1000.00", "₹1.0000", "₹0.001000", bulk.StatusSuccess}
	for i := range want {
		if cells[i] != want[i] {
			t.Errorf("cell %d = %q, want %q", i, cells[i], want[i])
		}
	}

	failed := bulk.ResultRow{
		Row:    bulk.Row{Ingredient: "Pepper", Quantity: "abc", Price: "10"},
		Status: "Error: Invalid quantity format. Use formats like '10x100g', '400g', '1.2kg', '500mg'",
	}
	cells = f.ResultCells(failed)
	for _, i := range []int{3, 4, 5} {
		if cells[i] != "N/A" {
			t.Errorf("failed row cell %d = %q, want N/A", i, cells[i])
		}
	}

	missing := bulk.ResultRow{
		Row:    bulk.Row{Ingredient: "Salt", Quantity: "", QuantityMissing: true, Price: "20"},
		Status: bulk.StatusNoQuantity,
	}
	cells = f.ResultCells(missing)
	if cells[1] != "Not provided" {
		t.Errorf("missing quantity cell = %q, want %q", cells[1], "Not provided")
	}
}
