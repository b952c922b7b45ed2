package report

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mjs243/money-manager/internal/debtplan"
	"github.com/mjs243/money-manager/internal/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestSubscriptionsRender(t *testing.T) {
	out := Subscriptions([]model.Subscription{{
		Merchant:        "netflix com",
		AverageInterval: 30,
		AverageAmount:   decimal.RequireFromString("15.49"),
		Occurrences:     5,
		Confidence:      model.ConfidenceHigh,
		LastSeen:        date(2025, 6, 1),
		Status:          model.SubscriptionActive,
	}})

	assert.Contains(t, out, "netflix com")
	assert.Contains(t, out, "monthly")
	assert.Contains(t, out, "$15.49")
	assert.Contains(t, out, "estimated recurring total")
}

func TestSubscriptionsRender_Empty(t *testing.T) {
	assert.Contains(t, Subscriptions(nil), "no recurring charges detected")
}

func TestPayoffRender(t *testing.T) {
	accounts := []model.DebtAccount{
		{Name: "Card A", Balance: decimal.RequireFromString("1000"), APR: decimal.RequireFromString("20"), MinimumPayment: decimal.RequireFromString("25")},
	}
	plan, err := debtplan.Simulate(accounts, decimal.RequireFromString("100"), debtplan.Avalanche)
	require.NoError(t, err)

	out := Payoff(plan)
	assert.Contains(t, out, "avalanche")
	assert.Contains(t, out, "Card A")
	assert.Contains(t, out, "debt-free in")
	assert.Contains(t, out, "month 1")
}

func TestWantsRender(t *testing.T) {
	wants := []model.Want{{
		ID:             "w-1",
		Description:    "standing desk",
		Amount:         decimal.RequireFromString("450.00"),
		RequestedDate:  date(2025, 6, 1),
		CoolingOffDays: 30,
		Status:         model.WantPending,
	}}

	// Eligible and inside the grace window.
	out := Wants(wants, 14, date(2025, 7, 2))
	assert.Contains(t, out, "standing desk")
	assert.Contains(t, out, "ready to confirm")

	// Still cooling off: shows the eligibility date instead.
	out = Wants(wants, 14, date(2025, 6, 10))
	assert.Contains(t, out, "eligible 2025-07-01")

	assert.Contains(t, Wants(nil, 14, date(2025, 6, 1)), "no wants logged")
}

func TestRestockRender(t *testing.T) {
	items := []model.RecurringPurchaseItem{{
		Name:            "dog food",
		TypicalInterval: 30,
		LastPurchase:    date(2025, 5, 10),
	}}

	out := Restock(items, date(2025, 6, 1))
	assert.Contains(t, out, "dog food")
	assert.Contains(t, out, "every 30 days")
	assert.Contains(t, out, "2025-06-09")

	// Past depletion gets flagged.
	out = Restock(items, date(2025, 6, 15))
	assert.Contains(t, out, "(out)")

	assert.Contains(t, Restock(nil, date(2025, 6, 1)), "nothing running out soon")
}
