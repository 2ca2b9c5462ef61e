package pricing

import (
	"testing"

	"github.com/shopspring/decimal"

	"ingredient-pricing/core/quantity"
	"ingredient-pricing/internal/config"
	"ingredient-pricing/internal/errors"
)

func newTestCalculator() *Calculator {
	cfg := config.Default()
	return NewCalculator(quantity.NewParser(cfg.Parser.StrictUnitRequired), cfg.Precision)
}

// TestCalculateValidationOrder tests that the first failing check wins
// and short-circuits the rest.
func TestCalculateValidationOrder(t *testing.T) {
	calc := newTestCalculator()

	tests := []struct {
		name    string
		args    [3]string
		errType errors.Type
		message string
	}{
		{
			name:    "blank name wins over everything",
			args:    [3]string{"", "", ""},
			errType: errors.TypeMissingField,
			message: "Please enter an ingredient name.",
		},
		{
			name:    "whitespace name is blank",
			args:    [3]string{"   ", "400g", "10"},
			errType: errors.TypeMissingField,
			message: "Please enter an ingredient name.",
		},
		{
			name:    "blank quantity before blank price",
			args:    [3]string{"Rice", "", ""},
			errType: errors.TypeMissingField,
			message: "Please enter a quantity.",
		},
		{
			name:    "blank price before quantity parsing",
			args:    [3]string{"Rice", "not-a-quantity", ""},
			errType: errors.TypeMissingField,
			message: "Please enter a price.",
		},
		{
			name:    "invalid price before quantity parsing",
			args:    [3]string{"Rice", "not-a-quantity", "notanumber"},
			errType: errors.TypeInvalidPrice,
			message: "Please enter a valid price.",
		},
		{
			name:    "parser error propagates verbatim",
			args:    [3]string{"X", "abc", "10"},
			errType: errors.TypeInvalidQuantityFormat,
			message: "Invalid quantity format. Use formats like '10x100g', '400g', '1.2kg', '500mg'",
		},
		{
			name:    "invalid price with valid quantity",
			args:    [3]string{"X", "5kg", "notanumber"},
			errType: errors.TypeInvalidPrice,
			message: "Please enter a valid price.",
		},
		{
			name:    "zero mass rejected",
			args:    [3]string{"X", "0g", "10"},
			errType: errors.TypeNonPositiveQuantity,
			message: "Quantity must be greater than zero.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := calc.Calculate(tt.args[0], tt.args[1], tt.args[2])
			if outcome.Success {
				t.Fatalf("Calculate(%v) succeeded, want %s", tt.args, tt.errType)
			}
			if outcome.Err.Type != tt.errType {
				t.Errorf("error type = %s, want %s", outcome.Err.Type, tt.errType)
			}
			if outcome.Err.Message != tt.message {
				t.Errorf("message = %q, want %q", outcome.Err.Message, tt.message)
			}
			if outcome.Prices != nil {
				t.Error("failed outcome carries prices")
			}
		})
	}
}

// TestCalculateExamples tests the documented end-to-end examples.
func TestCalculateExamples(t *testing.T) {
	calc := newTestCalculator()

	tests := []struct {
		name     string
		quantity string
		price    string
		grams    string
		kg       string
		g        string
		mg       string
	}{
		{"Rice", "10x100g", "1000", "1000", "1000", "1", "0.001"},
		{"Oil", "2l", "200", "2000", "100", "0.1", "0.0001"},
		{"Saffron", "500mg", "450", "0.5", "900000", "900", "0.9"},
		{"Flour", "1.2kg", "60", "1200", "50", "0.05", "0.00005"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := calc.Calculate(tt.name, tt.quantity, tt.price)
			if !outcome.Success {
				t.Fatalf("Calculate failed: %v", outcome.Err)
			}
			if outcome.IngredientName != tt.name {
				t.Errorf("ingredient name = %q, want %q", outcome.IngredientName, tt.name)
			}
			if want := decimal.RequireFromString(tt.grams); !outcome.Grams.Equal(want) {
				t.Errorf("grams = %s, want %s", outcome.Grams, want)
			}
			if want := decimal.RequireFromString(tt.kg); !outcome.Prices.KG.Equal(want) {
				t.Errorf("per kg = %s, want %s", outcome.Prices.KG, want)
			}
			if want := decimal.RequireFromString(tt.g); !outcome.Prices.G.Equal(want) {
				t.Errorf("per g = %s, want %s", outcome.Prices.G, want)
			}
			if want := decimal.RequireFromString(tt.mg); !outcome.Prices.MG.Equal(want) {
				t.Errorf("per mg = %s, want %s", outcome.Prices.MG, want)
			}
		})
	}
}

// TestCalculateScalingConsistency tests that the three figures are
// scalings of the same price-per-gram value.
func TestCalculateScalingConsistency(t *testing.T) {
	calc := newTestCalculator()

	outcome := calc.Calculate("Rice", "10x100g", "1000")
	if !outcome.Success {
		t.Fatalf("Calculate failed: %v", outcome.Err)
	}

	thousand := decimal.New(1, 3)
	if !outcome.Prices.KG.Equal(outcome.Prices.G.Mul(thousand)) {
		t.Errorf("kg (%s) != g (%s) * 1000", outcome.Prices.KG, outcome.Prices.G)
	}
	if !outcome.Prices.MG.Equal(outcome.Prices.G.Div(thousand)) {
		t.Errorf("mg (%s) != g (%s) / 1000", outcome.Prices.MG, outcome.Prices.G)
	}
}

// TestCalculateRounding tests per-unit rounding precision.
func TestCalculateRounding(t *testing.T) {
	calc := newTestCalculator()

	// 10 / 3g: per-gram is a repeating decimal, so every figure rounds.
	outcome := calc.Calculate("Spice", "3g", "10")
	if !outcome.Success {
		t.Fatalf("Calculate failed: %v", outcome.Err)
	}

	if got, want := outcome.Prices.KG.String(), "3333.33"; got != want {
		t.Errorf("per kg = %s, want %s", got, want)
	}
	if got, want := outcome.Prices.G.String(), "3.3333"; got != want {
		t.Errorf("per g = %s, want %s", got, want)
	}
	if got, want := outcome.Prices.MG.String(), "0.003333"; got != want {
		t.Errorf("per mg = %s, want %s", got, want)
	}
}

// TestCalculateIsDeterministic tests that repeated calls yield
// identical outcomes.
func TestCalculateIsDeterministic(t *testing.T) {
	calc := newTestCalculator()

	first := calc.Calculate("Rice", "10x100g", "1000")
	for i := 0; i < 10; i++ {
		next := calc.Calculate("Rice", "10x100g", "1000")
		if next.Success != first.Success || !next.Prices.G.Equal(first.Prices.G) {
			t.Fatalf("outcome changed between calls: %+v vs %+v", first, next)
		}
	}
}
