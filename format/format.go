// Package format renders calculation figures for people: Colombian pesos
// without fraction digits and kWh quantities, using es-CO digit grouping.
package format

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.MustParse("es-CO"))

// Currency formats amount as whole Colombian pesos, e.g. "$ 90.000".
func Currency(amount float64) string {
	return printer.Sprintf("$ %d", int64(math.Round(amount)))
}

// Kwh formats a consumption figure rounded to a whole number, e.g. "45 kWh".
func Kwh(v float64) string {
	return printer.Sprintf("%d kWh", int64(math.Round(v)))
}

// KwhPrecise keeps one decimal, as shown for consumption estimated from a bill.
func KwhPrecise(v float64) string {
	return printer.Sprintf("%.1f kWh", v)
}

func Percent(v float64) string {
	if v == math.Trunc(v) {
		return printer.Sprintf("%d%%", int64(v))
	}
	return printer.Sprintf("%.1f%%", v)
}

// Kg formats a CO2 mass in kilograms, rounded to a whole number.
func Kg(v float64) string {
	return printer.Sprintf("%d kg", int64(math.Round(v)))
}
