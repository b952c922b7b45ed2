// Package restock tracks consumable recurring purchases and predicts when
// they run out, using the same cadence statistic as subscription detection
// applied to a single item's purchase history.
package restock

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/mjs243/money-manager/internal/model"
	"github.com/mjs243/money-manager/internal/recurrence"
)

// NewItem seeds a tracked item from its first purchase. The interval cannot
// be estimated from one purchase, so it starts at zero until updates arrive.
func NewItem(name string, txn model.Transaction) model.RecurringPurchaseItem {
	return model.RecurringPurchaseItem{
		ID:            uuid.NewString(),
		Name:          name,
		Merchant:      recurrence.NormalizeMerchant(txn.Merchant),
		Category:      txn.Category,
		LastAmount:    txn.Amount.Abs(),
		LastPurchase:  txn.Date,
		PurchaseDates: []time.Time{txn.Date},
	}
}

// Update ingests a new matching purchase: records the date, advances the
// last-purchase marker, and recomputes the interval estimate over the full
// history. The input item is not mutated.
func Update(item model.RecurringPurchaseItem, txn model.Transaction) model.RecurringPurchaseItem {
	dates := make([]time.Time, len(item.PurchaseDates), len(item.PurchaseDates)+1)
	copy(dates, item.PurchaseDates)
	dates = append(dates, txn.Date)
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	gaps := make([]float64, 0, len(dates)-1)
	for i := 1; i < len(dates); i++ {
		gaps = append(gaps, dates[i].Sub(dates[i-1]).Hours()/24)
	}
	mean, stddev := recurrence.MeanStddev(gaps)

	item.PurchaseDates = dates
	item.LastPurchase = dates[len(dates)-1]
	item.LastAmount = txn.Amount.Abs()
	item.TypicalInterval = mean
	item.IntervalStddev = stddev
	return item
}

// Matches reports whether a transaction belongs to the item, by normalized
// merchant identity.
func Matches(item model.RecurringPurchaseItem, txn model.Transaction) bool {
	return item.Merchant != "" && recurrence.NormalizeMerchant(txn.Merchant) == item.Merchant
}

// QueryExpiring returns items whose estimated depletion falls within
// horizonDays of now (including already-depleted items), soonest first,
// ties broken by name.
func QueryExpiring(items []model.RecurringPurchaseItem, horizonDays int, now time.Time) []model.RecurringPurchaseItem {
	cutoff := now.AddDate(0, 0, horizonDays)

	var out []model.RecurringPurchaseItem
	for _, item := range items {
		if item.TypicalInterval <= 0 {
			continue // no cadence established yet
		}
		if !item.EstimatedDepletion().After(cutoff) {
			out = append(out, item)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		di, dj := out[i].EstimatedDepletion(), out[j].EstimatedDepletion()
		if !di.Equal(dj) {
			return di.Before(dj)
		}
		return out[i].Name < out[j].Name
	})
	return out
}
