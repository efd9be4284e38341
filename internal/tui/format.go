package tui

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Priceless is shown instead of a price for products that cannot be bought.
const Priceless = "Priceless"

// PriceFormatter renders amounts with locale digit grouping and a unit.
type PriceFormatter struct {
	p    *message.Printer
	unit string
}

func NewPriceFormatter(tag language.Tag, unit string) PriceFormatter {
	if unit == "" {
		unit = "synapses"
	}
	return PriceFormatter{p: message.NewPrinter(tag), unit: unit}
}

// Amount formats d as "1,450 synapses".
func (f PriceFormatter) Amount(d decimal.Decimal) string {
	if d.IsInteger() {
		return f.p.Sprintf("%d %s", d.IntPart(), f.unit)
	}
	return f.p.Sprintf("%.2f %s", d.InexactFloat64(), f.unit)
}

// Price formats a product price, or Priceless.
func (f PriceFormatter) Price(p decimal.NullDecimal) string {
	if !p.Valid {
		return Priceless
	}
	return f.Amount(p.Decimal)
}
