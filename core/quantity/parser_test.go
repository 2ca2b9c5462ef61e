package quantity

import (
	"testing"

	"github.com/shopspring/decimal"

	"ingredient-pricing/internal/errors"
)

// TestParseValidExpressions tests conversion of well-formed quantity
// expressions to grams.
func TestParseValidExpressions(t *testing.T) {
	parser := NewParser(true)

	tests := []struct {
		input string
		grams string
	}{
		{"400g", "400"},
		{"1.2kg", "1200"},
		{"500mg", "0.5"},
		{"2l", "2000"},
		{"250ml", "250"},
		{"10x100g", "1000"},
		{"20*1200g", "24000"},
		{"3x1.5kg", "4500"},
		{"2x500ml", "1000"},
		{"5x200mg", "1"},
		{"100gm", "100"},
		{"2kilograms", "2000"},
		{"3grams", "3"},
		{"250milligrams", "0.25"},
		{"1ltr", "1000"},
		{"2litres", "2000"},
		{"3liters", "3000"},
		{"50millilitres", "50"},
		{"0g", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			grams, err := parser.Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) returned error: %v", tt.input, err)
			}
			want := decimal.RequireFromString(tt.grams)
			if !grams.Equal(want) {
				t.Errorf("Parse(%q) = %s, want %s", tt.input, grams, want)
			}
		})
	}
}

// TestParseNormalization tests that case and whitespace do not affect
// the parsed mass.
func TestParseNormalization(t *testing.T) {
	parser := NewParser(true)

	inputs := []string{"1.5KG", "1.5kg", "1.5 kg", " 1.5 Kg "}
	want := decimal.RequireFromString("1500")

	for _, input := range inputs {
		grams, err := parser.Parse(input)
		if err != nil {
			t.Fatalf("Parse(%q) returned error: %v", input, err)
		}
		if !grams.Equal(want) {
			t.Errorf("Parse(%q) = %s, want %s", input, grams, want)
		}
	}
}

// TestParseErrors tests the error classification for malformed input.
func TestParseErrors(t *testing.T) {
	parser := NewParser(true)

	tests := []struct {
		name    string
		input   string
		errType errors.Type
	}{
		{"bare number", "400", errors.TypeMissingUnit},
		{"bare decimal", "1.5", errors.TypeMissingUnit},
		{"multiplication without unit", "10x100", errors.TypeMissingUnit},
		{"letters only", "abc", errors.TypeInvalidQuantityFormat},
		{"empty string", "", errors.TypeInvalidQuantityFormat},
		{"unit before amount", "kg2", errors.TypeInvalidQuantityFormat},
		{"trailing garbage", "400g!", errors.TypeInvalidQuantityFormat},
		{"chained multiplication", "2x3x4g", errors.TypeInvalidQuantityFormat},
		{"unknown unit", "5oz", errors.TypeUnsupportedUnit},
		{"unknown long unit", "2pounds", errors.TypeUnsupportedUnit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parser.Parse(tt.input)
			if err == nil {
				t.Fatalf("Parse(%q) succeeded, want %s", tt.input, tt.errType)
			}
			if err.Type != tt.errType {
				t.Errorf("Parse(%q) error type = %s, want %s", tt.input, err.Type, tt.errType)
			}
			if err.Message == "" {
				t.Errorf("Parse(%q) error has no message", tt.input)
			}
		})
	}
}

// TestParseErrorsAreStable tests that the same malformed input always
// yields the same error kind.
func TestParseErrorsAreStable(t *testing.T) {
	parser := NewParser(true)

	inputs := []string{"400", "abc", "10x100", "5oz"}
	for _, input := range inputs {
		_, first := parser.Parse(input)
		if first == nil {
			t.Fatalf("Parse(%q) unexpectedly succeeded", input)
		}
		for i := 0; i < 5; i++ {
			_, err := parser.Parse(input)
			if err == nil || err.Type != first.Type {
				t.Fatalf("Parse(%q) error kind changed between calls: %v vs %v", input, first, err)
			}
		}
	}
}

// TestParseUnsupportedUnitNamesUnit tests that the offending unit
// appears in the error message.
func TestParseUnsupportedUnitNamesUnit(t *testing.T) {
	parser := NewParser(true)

	_, err := parser.Parse("5oz")
	if err == nil {
		t.Fatal("Parse(\"5oz\") succeeded, want unsupported unit error")
	}
	if got := err.Message; got != "Unsupported unit 'oz'. Please use kg, g, gm, mg, l, or ml" {
		t.Errorf("unexpected message: %s", got)
	}
}

// TestParseLenientMode tests the lenient missing-unit policy for
// multiplication expressions.
func TestParseLenientMode(t *testing.T) {
	lenient := NewParser(false)

	grams, err := lenient.Parse("10x100")
	if err != nil {
		t.Fatalf("lenient Parse(\"10x100\") returned error: %v", err)
	}
	if want := decimal.RequireFromString("1000"); !grams.Equal(want) {
		t.Errorf("lenient Parse(\"10x100\") = %s, want %s", grams, want)
	}

	// A bare number stays rejected even in lenient mode.
	if _, err := lenient.Parse("400"); err == nil || err.Type != errors.TypeMissingUnit {
		t.Errorf("lenient Parse(\"400\") = %v, want missing unit error", err)
	}
}

// TestMultiplicationIdentity tests that pack notation always equals
// count * amount converted through the unit table.
func TestMultiplicationIdentity(t *testing.T) {
	parser := NewParser(true)

	tests := []struct {
		count  string
		amount string
		unit   string
		factor string
	}{
		{"2", "250", "g", "1"},
		{"10", "1.5", "kg", "1000"},
		{"7", "500", "mg", "0.001"},
		{"3", "2", "l", "1000"},
		{"12", "330", "ml", "1"},
	}

	for _, tt := range tests {
		input := tt.count + "x" + tt.amount + tt.unit
		t.Run(input, func(t *testing.T) {
			grams, err := parser.Parse(input)
			if err != nil {
				t.Fatalf("Parse(%q) returned error: %v", input, err)
			}
			want := decimal.RequireFromString(tt.count).
				Mul(decimal.RequireFromString(tt.amount)).
				Mul(decimal.RequireFromString(tt.factor))
			if !grams.Equal(want) {
				t.Errorf("Parse(%q) = %s, want %s", input, grams, want)
			}
		})
	}
}
