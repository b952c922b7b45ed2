// Package recurrence detects subscription charges from transaction cadence
// alone: no merchant keyword lists, just timing and amount stability.
package recurrence

import (
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mjs243/money-manager/internal/model"
)

// Options tunes the detector. The thresholds are product decisions, not
// derived constants, so they are always injected rather than hard-coded.
type Options struct {
	MinOccurrences          int     // minimum charges before a pattern counts
	IntervalStddevThreshold float64 // stddev must be <= threshold * mean gap
	AmountVarianceThreshold float64 // (max-min)/avg amount must be <= this
}

// DefaultOptions returns the stock detector thresholds.
func DefaultOptions() Options {
	return Options{
		MinOccurrences:          3,
		IntervalStddevThreshold: 0.25,
		AmountVarianceThreshold: 0.10,
	}
}

// A charge pattern is considered lapsed once the gap since the last charge
// exceeds this multiple of the average interval.
const lapsedIntervalFactor = 1.5

// Detect finds recurring charges in the ledger. Only debits participate.
// Previously dismissed merchant identities are suppressed. The function is
// pure: same inputs, same output, sorted by confidence then merchant.
func Detect(txns []model.Transaction, overrides []model.SubscriptionOverride, opts Options) []model.Subscription {
	if opts.MinOccurrences < 3 {
		opts.MinOccurrences = 3
	}

	dismissed := make(map[string]bool)
	for _, o := range overrides {
		if o.State == model.OverrideDismissed {
			dismissed[o.Merchant] = true
		}
	}

	// Group debits by merchant identity, tracking the analysis window end.
	groups := make(map[string][]model.Transaction)
	var windowEnd time.Time
	for _, txn := range txns {
		if !txn.IsDebit() {
			continue
		}
		if txn.Date.After(windowEnd) {
			windowEnd = txn.Date
		}
		key := NormalizeMerchant(txn.Merchant)
		if key == "" || dismissed[key] {
			continue
		}
		groups[key] = append(groups[key], txn)
	}

	var subs []model.Subscription
	scores := make(map[string]float64)
	for key, group := range groups {
		if len(group) < opts.MinOccurrences {
			continue
		}

		sort.SliceStable(group, func(i, j int) bool {
			return group[i].Date.Before(group[j].Date)
		})

		gaps := dayGaps(group)
		mean, stddev := MeanStddev(gaps)
		if mean <= 0 || stddev > mean*opts.IntervalStddevThreshold {
			continue
		}

		avg, min, max := amountSpread(group)
		variance := max.Sub(min).Div(avg)
		if variance.GreaterThan(decimal.NewFromFloat(opts.AmountVarianceThreshold)) {
			continue
		}

		score := confidenceScore(len(group), stddev, variance.InexactFloat64())
		scores[key] = score

		subs = append(subs, model.Subscription{
			Merchant:        key,
			AverageInterval: mean,
			IntervalStddev:  stddev,
			AverageAmount:   avg,
			MinAmount:       min,
			MaxAmount:       max,
			Occurrences:     len(group),
			Category:        group[0].Category,
			Confidence:      confidenceLevel(score),
			FirstSeen:       group[0].Date,
			LastSeen:        group[len(group)-1].Date,
			Status:          status(group[len(group)-1].Date, mean, windowEnd),
		})
	}

	sort.SliceStable(subs, func(i, j int) bool {
		si, sj := scores[subs[i].Merchant], scores[subs[j].Merchant]
		if si != sj {
			return si > sj
		}
		return subs[i].Merchant < subs[j].Merchant
	})
	return subs
}

// dayGaps returns the day counts between consecutive charges.
func dayGaps(group []model.Transaction) []float64 {
	gaps := make([]float64, 0, len(group)-1)
	for i := 1; i < len(group); i++ {
		gaps = append(gaps, group[i].Date.Sub(group[i-1].Date).Hours()/24)
	}
	return gaps
}

// amountSpread returns the average, minimum, and maximum absolute charge.
func amountSpread(group []model.Transaction) (avg, min, max decimal.Decimal) {
	total := decimal.Zero
	for i, txn := range group {
		amt := txn.Amount.Abs()
		total = total.Add(amt)
		if i == 0 {
			min, max = amt, amt
			continue
		}
		if amt.LessThan(min) {
			min = amt
		}
		if amt.GreaterThan(max) {
			max = amt
		}
	}
	avg = total.Div(decimal.NewFromInt(int64(len(group))))
	return avg, min, max
}

// confidenceScore weighs occurrence count, gap stddev, and amount variance
// into a 0-100 score. Longer histories rate higher than the bare minimum.
func confidenceScore(count int, stddev, amountVar float64) float64 {
	countScore := math.Min(float64(count)/10, 1.0) * 50
	stdScore := (1 - math.Min(stddev/10, 1.0)) * 30
	amountScore := (1 - amountVar) * 20
	return countScore + stdScore + amountScore
}

func confidenceLevel(score float64) model.Confidence {
	switch {
	case score >= 70:
		return model.ConfidenceHigh
	case score >= 45:
		return model.ConfidenceMedium
	default:
		return model.ConfidenceLow
	}
}

func status(lastSeen time.Time, meanGap float64, windowEnd time.Time) model.SubscriptionStatus {
	sinceDays := windowEnd.Sub(lastSeen).Hours() / 24
	if sinceDays > meanGap*lapsedIntervalFactor {
		return model.SubscriptionLapsed
	}
	return model.SubscriptionActive
}

// EstimatedMonthlyCost sums the per-month cost of the given subscriptions.
func EstimatedMonthlyCost(subs []model.Subscription) decimal.Decimal {
	total := decimal.Zero
	for _, s := range subs {
		total = total.Add(s.MonthlyCost())
	}
	return total
}

// CostByCategory breaks monthly recurring cost down by transaction category.
func CostByCategory(subs []model.Subscription) map[string]decimal.Decimal {
	result := make(map[string]decimal.Decimal)
	for _, s := range subs {
		cat := s.Category
		if cat == "" {
			cat = "Uncategorized"
		}
		result[cat] = result[cat].Add(s.MonthlyCost())
	}
	return result
}
