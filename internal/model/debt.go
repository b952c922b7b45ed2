package model

import "github.com/shopspring/decimal"

// DebtAccount is one debt balance supplied from external account data.
// The simulator works on copies; the source records are never written back.
type DebtAccount struct {
	Name           string
	Balance        decimal.Decimal // non-negative
	APR            decimal.Decimal // annual percentage rate, e.g. 19.99
	MinimumPayment decimal.Decimal
}

// MonthlyRate converts the annual percentage rate to a monthly multiplier.
func (d DebtAccount) MonthlyRate() decimal.Decimal {
	return d.APR.Div(decimal.NewFromInt(12)).Div(decimal.NewFromInt(100))
}

// MonthlyInterest estimates one month of interest at the current balance.
func (d DebtAccount) MonthlyInterest() decimal.Decimal {
	return d.Balance.Mul(d.MonthlyRate()).Round(2)
}
