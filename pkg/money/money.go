// Package money formatea montos en la moneda configurada usando golang.org/x/text.
// Los montos internos viajan como decimal; el formateo es solo presentación
// (resúmenes por sede y reportes PDF).
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter formatea montos para un locale y una moneda ISO 4217.
type Formatter struct {
	unit    currency.Unit
	printer *message.Printer
}

// NewFormatter construye el formateador. locale ej. "es-CO", code ej. "COP".
func NewFormatter(locale, code string) (*Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("money: locale %q: %w", locale, err)
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		return nil, fmt.Errorf("money: moneda %q: %w", code, err)
	}
	return &Formatter{
		unit:    unit,
		printer: message.NewPrinter(tag),
	}, nil
}

// Format devuelve el monto con símbolo de moneda según el locale.
func (f *Formatter) Format(amount decimal.Decimal) string {
	return f.printer.Sprintf("%v", currency.Symbol(f.unit.Amount(amount.InexactFloat64())))
}

// Currency devuelve el código ISO de la moneda configurada.
func (f *Formatter) Currency() string {
	return f.unit.String()
}
