package pdf

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// MoneyFormatter formatea montos con separadores del idioma indicado y dos decimales.
type MoneyFormatter struct {
	p *message.Printer
}

// NewMoneyFormatter construye el formateador. Un tag inválido cae a español.
func NewMoneyFormatter(tag string) *MoneyFormatter {
	t, err := language.Parse(tag)
	if err != nil {
		t = language.Spanish
	}
	return &MoneyFormatter{p: message.NewPrinter(t)}
}

// Format devuelve "$" + el monto redondeado a 2 decimales.
func (f *MoneyFormatter) Format(d decimal.Decimal) string {
	v, _ := d.Round(2).Float64()
	return f.p.Sprintf("$%v", number.Decimal(v, number.Scale(2)))
}
