package restock

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mjs243/money-manager/internal/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func purchase(merchant, amount string, on time.Time) model.Transaction {
	amt, err := decimal.NewFromString(amount)
	if err != nil {
		panic(err)
	}
	return model.Transaction{
		Date:     on,
		Merchant: merchant,
		Amount:   amt.Neg(),
		Category: "Household",
	}
}

func TestNewItem(t *testing.T) {
	item := NewItem("dog food", purchase("CHEWY.COM *A1B2", "54.99", date(2025, 1, 10)))

	assert.NotEmpty(t, item.ID)
	assert.Equal(t, "dog food", item.Name)
	assert.Equal(t, "chewy com", item.Merchant)
	assert.True(t, item.LastAmount.Equal(decimal.RequireFromString("54.99")))
	assert.Zero(t, item.TypicalInterval, "one purchase gives no cadence")
	assert.Len(t, item.PurchaseDates, 1)
}

func TestUpdate_RecomputesInterval(t *testing.T) {
	item := NewItem("dog food", purchase("CHEWY.COM", "54.99", date(2025, 1, 1)))
	item = Update(item, purchase("CHEWY.COM", "54.99", date(2025, 1, 31)))
	item = Update(item, purchase("CHEWY.COM", "56.20", date(2025, 3, 2)))

	assert.InDelta(t, 30.0, item.TypicalInterval, 1e-9)
	assert.Equal(t, date(2025, 3, 2), item.LastPurchase)
	assert.True(t, item.LastAmount.Equal(decimal.RequireFromString("56.20")))
	assert.Equal(t, date(2025, 4, 1), item.EstimatedDepletion())
}

func TestUpdate_OutOfOrderDates(t *testing.T) {
	// A backfilled older purchase must not move the last-purchase marker
	// backwards.
	item := NewItem("coffee beans", purchase("BLUE BOTTLE", "19.00", date(2025, 2, 1)))
	item = Update(item, purchase("BLUE BOTTLE", "19.00", date(2025, 1, 18)))

	assert.Equal(t, date(2025, 2, 1), item.LastPurchase)
	assert.InDelta(t, 14.0, item.TypicalInterval, 1e-9)
}

func TestUpdate_DoesNotMutateInput(t *testing.T) {
	item := NewItem("coffee beans", purchase("BLUE BOTTLE", "19.00", date(2025, 1, 1)))
	_ = Update(item, purchase("BLUE BOTTLE", "19.00", date(2025, 1, 15)))

	assert.Len(t, item.PurchaseDates, 1)
	assert.Zero(t, item.TypicalInterval)
}

func TestMatches(t *testing.T) {
	item := NewItem("dog food", purchase("CHEWY.COM *A1B2", "54.99", date(2025, 1, 1)))

	assert.True(t, Matches(item, purchase("CHEWY.COM *Z9", "50.00", date(2025, 2, 1))))
	assert.False(t, Matches(item, purchase("PETCO 3382", "50.00", date(2025, 2, 1))))
}

func TestQueryExpiring(t *testing.T) {
	now := date(2025, 6, 1)

	soon := model.RecurringPurchaseItem{
		Name: "dog food", TypicalInterval: 30, LastPurchase: date(2025, 5, 10),
	} // depletes 6/09
	later := model.RecurringPurchaseItem{
		Name: "detergent", TypicalInterval: 60, LastPurchase: date(2025, 5, 1),
	} // depletes 6/30
	overdue := model.RecurringPurchaseItem{
		Name: "cat litter", TypicalInterval: 21, LastPurchase: date(2025, 4, 20),
	} // depleted 5/11
	unknown := model.RecurringPurchaseItem{
		Name: "new thing", TypicalInterval: 0, LastPurchase: date(2025, 5, 30),
	}

	out := QueryExpiring([]model.RecurringPurchaseItem{soon, later, overdue, unknown}, 14, now)
	require.Len(t, out, 2)
	assert.Equal(t, "cat litter", out[0].Name, "already-depleted items come first")
	assert.Equal(t, "dog food", out[1].Name)

	// A wider horizon picks up the 60-day item too.
	out = QueryExpiring([]model.RecurringPurchaseItem{soon, later, overdue, unknown}, 45, now)
	require.Len(t, out, 3)
	assert.Equal(t, "detergent", out[2].Name)
}

func TestQueryExpiring_TiesBreakByName(t *testing.T) {
	now := date(2025, 6, 1)
	a := model.RecurringPurchaseItem{Name: "beans", TypicalInterval: 10, LastPurchase: date(2025, 5, 28)}
	b := model.RecurringPurchaseItem{Name: "apples", TypicalInterval: 10, LastPurchase: date(2025, 5, 28)}

	out := QueryExpiring([]model.RecurringPurchaseItem{a, b}, 14, now)
	require.Len(t, out, 2)
	assert.Equal(t, "apples", out[0].Name)
	assert.Equal(t, "beans", out[1].Name)
}

func TestDaysUntilDepletion(t *testing.T) {
	item := model.RecurringPurchaseItem{
		Name: "dog food", TypicalInterval: 30, LastPurchase: date(2025, 5, 10),
	}
	assert.Equal(t, 8, item.DaysUntilDepletion(date(2025, 6, 1)))
	assert.True(t, item.IsExpired(date(2025, 6, 9)))
	assert.False(t, item.IsExpired(date(2025, 6, 8)))
	assert.Zero(t, item.DaysUntilDepletion(date(2025, 7, 1)))
}
