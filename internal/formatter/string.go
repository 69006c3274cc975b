package formatter

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// ShortLabel derives the 3-character uppercase abbreviation shown in compact
// outcome chips, e.g. "Yes" -> "YES", "Kansas City Chiefs" -> "KAN".
func ShortLabel(label string) string {
	cleaned := strings.TrimSpace(label)
	if cleaned == "" {
		return ""
	}

	var letters []rune
	for _, r := range cleaned {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			letters = append(letters, unicode.ToUpper(r))
			if len(letters) == 3 {
				break
			}
		}
	}
	return string(letters)
}

// Price formats a 0-100 scaled price as a 2-decimal string ("85.00").
func Price(value float64) string {
	return decimal.NewFromFloat(value).Round(2).StringFixed(2)
}

// Amount rounds a monetary value to 2 decimal places without drifting the way
// repeated float arithmetic does.
func Amount(value float64) float64 {
	out, _ := decimal.NewFromFloat(value).Round(2).Float64()
	return out
}
