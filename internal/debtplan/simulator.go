// Package debtplan projects month-by-month debt payoff schedules under the
// avalanche and snowball allocation strategies. The projection works on
// copies; real account records are never written back.
package debtplan

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/mjs243/money-manager/internal/model"
)

// Strategy selects the payoff ordering for extra payments.
type Strategy string

const (
	// Avalanche attacks the highest APR first, minimizing total interest.
	Avalanche Strategy = "avalanche"
	// Snowball attacks the smallest balance first for early wins.
	Snowball Strategy = "snowball"
)

// ParseStrategy converts a config/CLI string to a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case Avalanche, Snowball:
		return Strategy(s), nil
	default:
		return "", fmt.Errorf("unknown strategy %q (want avalanche or snowball)", s)
	}
}

// AccountMonth is one account's slice of a monthly snapshot.
type AccountMonth struct {
	Payment   decimal.Decimal // minimum plus any extra applied this month
	Interest  decimal.Decimal
	Remaining decimal.Decimal
}

// MonthSnapshot records every open account's state for one simulated month.
type MonthSnapshot struct {
	Month    int // 1-based
	Accounts map[string]AccountMonth
}

// PayoffPlan is the full projection: one snapshot per month until all
// balances hit zero. The terminal snapshot is the debt-free month.
type PayoffPlan struct {
	Strategy      Strategy
	MonthlyBudget decimal.Decimal
	Months        []MonthSnapshot
	TotalInterest decimal.Decimal
	TotalPaid     decimal.Decimal
}

// DebtFreeMonth returns how many months until all balances reach zero.
func (p *PayoffPlan) DebtFreeMonth() int {
	return len(p.Months)
}

// InsufficientBudgetError means the budget cannot cover the minimums, so no
// plan is mathematically feasible.
type InsufficientBudgetError struct {
	Budget       decimal.Decimal
	MinimumTotal decimal.Decimal
}

func (e *InsufficientBudgetError) Error() string {
	return fmt.Sprintf("monthly budget %s is below the %s required for minimum payments",
		e.Budget.StringFixed(2), e.MinimumTotal.StringFixed(2))
}

// NonConvergentError means the safety cap was reached before the balances
// hit zero. The partial plan is attached for inspection, not discarded.
type NonConvergentError struct {
	Plan *PayoffPlan
}

func (e *NonConvergentError) Error() string {
	return fmt.Sprintf("payoff did not converge within %d months", maxMonths)
}

// maxMonths caps the projection at 50 years.
const maxMonths = 600

// working is the simulator's private mutable copy of a debt account.
type working struct {
	name    string
	balance decimal.Decimal
	apr     decimal.Decimal
	rate    decimal.Decimal // monthly
	minimum decimal.Decimal
}

// Simulate projects a payoff schedule for the accounts under the given
// monthly budget and strategy. It is deterministic and idempotent: the same
// inputs always produce the same plan.
func Simulate(accounts []model.DebtAccount, monthlyBudget decimal.Decimal, strategy Strategy) (*PayoffPlan, error) {
	minTotal := decimal.Zero
	for _, a := range accounts {
		minTotal = minTotal.Add(a.MinimumPayment)
	}
	if monthlyBudget.LessThan(minTotal) {
		return nil, &InsufficientBudgetError{Budget: monthlyBudget, MinimumTotal: minTotal}
	}

	open := make([]*working, 0, len(accounts))
	for _, a := range accounts {
		if a.Balance.IsZero() {
			continue
		}
		open = append(open, &working{
			name:    a.Name,
			balance: a.Balance.Round(2),
			apr:     a.APR,
			rate:    a.MonthlyRate(),
			minimum: a.MinimumPayment,
		})
	}

	plan := &PayoffPlan{
		Strategy:      strategy,
		MonthlyBudget: monthlyBudget,
		TotalInterest: decimal.Zero,
		TotalPaid:     decimal.Zero,
	}

	for month := 1; len(open) > 0; month++ {
		if month > maxMonths {
			return nil, &NonConvergentError{Plan: plan}
		}

		snapshot := MonthSnapshot{Month: month, Accounts: make(map[string]AccountMonth, len(open))}
		interest := make(map[string]decimal.Decimal, len(open))
		paid := make(map[string]decimal.Decimal, len(open))

		// 1. Accrue interest, rounding once per account.
		for _, w := range open {
			accrued := w.balance.Mul(w.rate).Round(2)
			w.balance = w.balance.Add(accrued)
			interest[w.name] = accrued
			plan.TotalInterest = plan.TotalInterest.Add(accrued)
		}

		// 2. Minimums, capped at the balance; the unapplied remainder
		// stays in the budget for the cascade below.
		remaining := monthlyBudget
		for _, w := range open {
			pay := decimal.Min(w.minimum, w.balance)
			w.balance = w.balance.Sub(pay).Round(2)
			paid[w.name] = pay
			remaining = remaining.Sub(pay)
		}

		// 3. Strategy order, with deterministic tie-breaks.
		orderAccounts(open, strategy)

		// 4. Cascade all remaining budget down the ordering within the
		// same month.
		for _, w := range open {
			if remaining.IsZero() {
				break
			}
			extra := decimal.Min(remaining, w.balance)
			w.balance = w.balance.Sub(extra).Round(2)
			paid[w.name] = paid[w.name].Add(extra)
			remaining = remaining.Sub(extra)
		}

		// 5. Snapshot, then retire paid-off accounts so their minimums
		// are freed for later months.
		next := open[:0]
		for _, w := range open {
			snapshot.Accounts[w.name] = AccountMonth{
				Payment:   paid[w.name],
				Interest:  interest[w.name],
				Remaining: w.balance,
			}
			plan.TotalPaid = plan.TotalPaid.Add(paid[w.name])
			if w.balance.IsPositive() {
				next = append(next, w)
			}
		}
		open = next
		plan.Months = append(plan.Months, snapshot)
	}

	return plan, nil
}

// orderAccounts sorts the working set in strategy order. Avalanche:
// descending APR, then descending balance, then name. Snowball: ascending
// balance, then descending APR, then name.
func orderAccounts(open []*working, strategy Strategy) {
	sort.SliceStable(open, func(i, j int) bool {
		a, b := open[i], open[j]
		if strategy == Snowball {
			if !a.balance.Equal(b.balance) {
				return a.balance.LessThan(b.balance)
			}
			if !a.apr.Equal(b.apr) {
				return a.apr.GreaterThan(b.apr)
			}
			return a.name < b.name
		}
		if !a.apr.Equal(b.apr) {
			return a.apr.GreaterThan(b.apr)
		}
		if !a.balance.Equal(b.balance) {
			return a.balance.GreaterThan(b.balance)
		}
		return a.name < b.name
	})
}
