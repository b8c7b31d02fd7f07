package domain

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// CurrencyUSD es la unica moneda que maneja el quiz.
const CurrencyUSD = money.USD

// FormatMoney formatea un decimal como moneda ("$5,000.00"). Moneda desconocida devuelve el decimal crudo.
func FormatMoney(amount decimal.Decimal, currency string) string {
	cur := money.GetCurrency(currency)
	if cur == nil {
		return amount.StringFixed(2)
	}
	factor, _ := decimal.NewFromInt(10).PowInt32(int32(cur.Fraction))
	minor := amount.Mul(factor).Round(0)
	return money.New(minor.IntPart(), currency).Display()
}
