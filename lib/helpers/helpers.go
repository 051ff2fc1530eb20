package helpers

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FormatPriceUS renders a price with US thousands separators, picking a
// precision that reads well for the magnitude.
func FormatPriceUS(price float64) string {
	decimals := 2

	if price >= 1000 {
		decimals = 0
	} else if price < 1.2 {
		decimals = 4
	}

	p := message.NewPrinter(language.English)
	return p.Sprintf("%.*f", decimals, price)
}
