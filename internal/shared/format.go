package shared

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatAmount renders a monetary amount with thousands separators and two
// decimal places, e.g. 1234567.5 -> "1,234,567.50".
func FormatAmount(v float64) string {
	return printer.Sprintf("%.2f", v)
}

// FormatCount renders an integer with thousands separators.
func FormatCount(n int) string {
	return printer.Sprintf("%d", n)
}

// Summary builds a short human-readable sentence, localised number
// formatting included, for audit metadata and API messages.
func Summary(format string, args ...any) string {
	return printer.Sprintf(format, args...)
}
