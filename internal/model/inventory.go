package model

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// RecurringPurchaseItem tracks a consumable bought on a cadence (groceries,
// filters, pet food). The interval estimate is recomputed from the full
// purchase history each time a matching transaction is ingested.
type RecurringPurchaseItem struct {
	ID              string
	Name            string
	Merchant        string // normalized merchant identity the item matches
	Category        string
	TypicalInterval float64 // days, derived from purchase history
	IntervalStddev  float64
	LastAmount      decimal.Decimal
	LastPurchase    time.Time
	PurchaseDates   []time.Time // ascending
}

// EstimatedDepletion is the projected run-out date: last purchase plus the
// typical interval, rounded to whole days.
func (r RecurringPurchaseItem) EstimatedDepletion() time.Time {
	days := int(math.Round(r.TypicalInterval))
	return r.LastPurchase.AddDate(0, 0, days)
}

// IsExpired reports whether the item has reached its estimated depletion.
func (r RecurringPurchaseItem) IsExpired(now time.Time) bool {
	return !now.Before(r.EstimatedDepletion())
}

// DaysUntilDepletion returns days left before depletion, never negative.
func (r RecurringPurchaseItem) DaysUntilDepletion(now time.Time) int {
	d := int(r.EstimatedDepletion().Sub(now).Hours() / 24)
	if d < 0 {
		return 0
	}
	return d
}
