package currency

import (
	"strings"

	"github.com/jkengne/boutique-pos-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

var symbolByCurrency = map[enums.Currency]string{
	enums.CurrencyXAF: "₣",
	enums.CurrencyEUR: "€",
	enums.CurrencyUSD: "$",
	enums.CurrencyNGN: "₦",
}

// Symbol returns the display symbol for the currency, defaulting to the CFA franc.
func Symbol(code enums.Currency) string {
	if symbol, ok := symbolByCurrency[code]; ok {
		return symbol
	}
	return symbolByCurrency[enums.CurrencyXAF]
}

// Format renders an amount for display with thousands separators and the
// currency symbol. The currency code is passed explicitly; there is no
// ambient currency state.
func Format(amount decimal.Decimal, code enums.Currency) string {
	return groupThousands(amount) + " " + Symbol(code)
}

func groupThousands(amount decimal.Decimal) string {
	text := amount.String()

	negative := strings.HasPrefix(text, "-")
	if negative {
		text = text[1:]
	}

	intPart := text
	fracPart := ""
	if idx := strings.IndexByte(text, '.'); idx >= 0 {
		intPart = text[:idx]
		fracPart = text[idx:]
	}

	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	lead := len(intPart) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(intPart[:lead])
	for i := lead; i < len(intPart); i += 3 {
		b.WriteByte(',')
		b.WriteString(intPart[i : i+3])
	}
	b.WriteString(fracPart)
	return b.String()
}
