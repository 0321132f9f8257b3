package quote

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

const CurrencySymbol = "R$"

// FormatMoney renders an amount as "R$ 1234.50": two decimals, no
// thousands separator.
func FormatMoney(v decimal.Decimal) string {
	return CurrencySymbol + " " + v.StringFixed(2)
}

func FormatPercent(v decimal.Decimal) string {
	return v.StringFixed(2) + "%"
}

// FileName suggests a download name for the rendered quote.
func FileName(clientName string, number Number) string {
	return "presupuesto-" + safeName(clientName) + "-" + string(number) + ".pdf"
}

func safeName(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		switch {
		case r == '/', r == '\\', r == '"', r == ':':
			return '_'
		case unicode.IsControl(r):
			return '_'
		}
		return r
	}, s)
}
