// Package quantity normalizes free-text quantity expressions to grams.
// This is the only part of the system with parsing rules; everything
// else consumes its output.
package quantity

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"

	"ingredient-pricing/internal/errors"
)

// User-facing messages; the text is part of the contract.
const (
	msgMissingUnit = "Please specify the unit of measurement (kg, g, gm, mg, l, ml). Example: 400g, 1.2kg, 500mg, 2l, 250ml"

	msgMissingUnitMultiplication = "Please specify the unit of measurement. Example: 10x100g, 5x200mg, 3x1.5kg, 2x500ml"

	msgInvalidFormat = "Invalid quantity format. Use formats like '10x100g', '400g', '1.2kg', '500mg'"
)

var (
	// bareNumberPattern matches a number with no unit at all
	bareNumberPattern = regexp.MustCompile(`^\d+(?:\.\d+)?$`)

	// multiplicationPattern matches pack notation, e.g. "10x100g", "20*1.5kg"
	multiplicationPattern = regexp.MustCompile(`^(\d+)[x*](\d+(?:\.\d+)?)([a-z]*)$`)

	// singlePattern matches a plain amount with a trailing unit, e.g. "400g"
	singlePattern = regexp.MustCompile(`^(\d+(?:\.\d+)?)([a-z]*)$`)
)

// Exact conversion factors; volume units assume the density of water
// (1 ml = 1 g), so litres and millilitres share the mass factors.
var (
	factorKilogram  = decimal.New(1, 3)
	factorGram      = decimal.New(1, 0)
	factorMilligram = decimal.New(1, -3)
)

// gramsPerUnit resolves a lowercase, space-free unit to its factor in grams.
var gramsPerUnit = map[string]decimal.Decimal{
	"kg":        factorKilogram,
	"kilogram":  factorKilogram,
	"kilograms": factorKilogram,

	"g":     factorGram,
	"gm":    factorGram,
	"gram":  factorGram,
	"grams": factorGram,

	"mg":         factorMilligram,
	"milligram":  factorMilligram,
	"milligrams": factorMilligram,

	"l":      factorKilogram,
	"ltr":    factorKilogram,
	"litre":  factorKilogram,
	"litres": factorKilogram,
	"liter":  factorKilogram,
	"liters": factorKilogram,

	"ml":          factorGram,
	"millilitre":  factorGram,
	"millilitres": factorGram,
	"milliliter":  factorGram,
	"milliliters": factorGram,
}

// Parser turns quantity expressions into a mass in grams.
//
// In strict mode a multiplication expression without a unit suffix is
// rejected; in lenient mode it defaults to grams. Lenient mode is meant
// for trusted batch inputs where the ambiguity is acceptable. A bare
// number ("400") is rejected in both modes.
type Parser struct {
	strict bool
}

// NewParser creates a parser. strict controls the missing-unit policy
// for multiplication expressions.
func NewParser(strict bool) *Parser {
	return &Parser{strict: strict}
}

// Parse converts a quantity expression to grams.
// The returned mass is always finite and non-negative; on failure the
// error carries one of the user-input error types and a message with
// accepted example formats.
func (p *Parser) Parse(text string) (decimal.Decimal, *errors.Error) {
	normalized := normalize(text)

	// A bare number is ambiguous: "400" could mean grams or anything else.
	if bareNumberPattern.MatchString(normalized) {
		return decimal.Zero, errors.MissingUnit(msgMissingUnit)
	}

	var total decimal.Decimal
	var unit string

	if m := multiplicationPattern.FindStringSubmatch(normalized); m != nil {
		unit = m[3]
		if unit == "" {
			if p.strict {
				return decimal.Zero, errors.MissingUnit(msgMissingUnitMultiplication)
			}
			unit = "g"
		}

		count, err := decimal.NewFromString(m[1])
		if err != nil {
			return decimal.Zero, errors.InvalidQuantityFormat(msgInvalidFormat)
		}
		amount, err := decimal.NewFromString(m[2])
		if err != nil {
			return decimal.Zero, errors.InvalidQuantityFormat(msgInvalidFormat)
		}
		total = count.Mul(amount)
	} else if m := singlePattern.FindStringSubmatch(normalized); m != nil {
		unit = m[2]
		if unit == "" {
			// Unreachable while the bare-number rejection above holds;
			// kept so the policy survives pattern changes.
			return decimal.Zero, errors.MissingUnit(msgMissingUnit)
		}

		amount, err := decimal.NewFromString(m[1])
		if err != nil {
			return decimal.Zero, errors.InvalidQuantityFormat(msgInvalidFormat)
		}
		total = amount
	} else {
		return decimal.Zero, errors.InvalidQuantityFormat(msgInvalidFormat)
	}

	factor, ok := gramsPerUnit[unit]
	if !ok {
		return decimal.Zero, errors.UnsupportedUnit(unit)
	}

	return total.Mul(factor), nil
}

// normalize strips all whitespace and lowercases, so "1.5 KG" and
// "1.5kg" parse identically.
func normalize(text string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToLower(r)
	}, text)
}
