package catalog

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// pricePerUnitPattern matches the per-liter price embedded in texts such as
	// "(1,80 €/Liter)". The source uses a comma as decimal separator.
	pricePerUnitPattern = regexp.MustCompile(`\(([\d,]+) €/Liter\)`)

	leadingCountPattern = regexp.MustCompile(`^\d+`)
)

// ExtractPricePerUnit returns the per-liter price stated in text, or zero when
// text carries no parsable "(<number> €/Liter)" fragment.
func ExtractPricePerUnit(text string) decimal.Decimal {
	match := pricePerUnitPattern.FindStringSubmatch(text)
	if match == nil {
		return decimal.Zero
	}

	value, err := decimal.NewFromString(strings.ReplaceAll(match[1], ",", "."))
	if err != nil {
		return decimal.Zero
	}
	return value
}

// ExtractLeadingBottleCount returns the integer that text starts with, e.g. 20 for
// "20 x 0,5L (Glas)". Text without leading digits, or whose leading digits do not
// fit an int, yields zero.
func ExtractLeadingBottleCount(text string) int {
	digits := leadingCountPattern.FindString(text)
	if digits == "" {
		return 0
	}

	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	return n
}
