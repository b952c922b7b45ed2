package debtplan

import (
	"github.com/shopspring/decimal"

	"github.com/mjs243/money-manager/internal/model"
)

// TotalDebt sums all account balances.
func TotalDebt(accounts []model.DebtAccount) decimal.Decimal {
	total := decimal.Zero
	for _, a := range accounts {
		total = total.Add(a.Balance)
	}
	return total
}

// TotalMonthlyInterest sums one month of interest across all accounts at
// their current balances.
func TotalMonthlyInterest(accounts []model.DebtAccount) decimal.Decimal {
	total := decimal.Zero
	for _, a := range accounts {
		total = total.Add(a.MonthlyInterest())
	}
	return total
}

// WeightedAPR is the balance-weighted average interest rate.
func WeightedAPR(accounts []model.DebtAccount) decimal.Decimal {
	total := TotalDebt(accounts)
	if total.IsZero() {
		return decimal.Zero
	}
	weighted := decimal.Zero
	for _, a := range accounts {
		weighted = weighted.Add(a.Balance.Mul(a.APR))
	}
	return weighted.Div(total).Round(2)
}

// Comparison holds both strategies' plans over the same inputs, for showing
// the interest cost difference side by side.
type Comparison struct {
	Avalanche *PayoffPlan
	Snowball  *PayoffPlan
}

// InterestSaved is the interest difference of snowball over avalanche.
func (c Comparison) InterestSaved() decimal.Decimal {
	return c.Snowball.TotalInterest.Sub(c.Avalanche.TotalInterest)
}

// Compare runs both strategies over the same accounts and budget.
func Compare(accounts []model.DebtAccount, monthlyBudget decimal.Decimal) (Comparison, error) {
	av, err := Simulate(accounts, monthlyBudget, Avalanche)
	if err != nil {
		return Comparison{}, err
	}
	sn, err := Simulate(accounts, monthlyBudget, Snowball)
	if err != nil {
		return Comparison{}, err
	}
	return Comparison{Avalanche: av, Snowball: sn}, nil
}
