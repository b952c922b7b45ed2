package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// SubscriptionStatus represents whether a detected subscription is still
// charging on its usual cadence.
type SubscriptionStatus string

const (
	SubscriptionActive SubscriptionStatus = "active"
	SubscriptionLapsed SubscriptionStatus = "lapsed"
)

// Confidence classifies how reliable a detected subscription pattern is.
// It is derived each detection run, never persisted.
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// IntervalKind labels a recurring cadence by its average gap in days.
type IntervalKind string

const (
	IntervalWeekly    IntervalKind = "weekly"
	IntervalBiweekly  IntervalKind = "bi-weekly"
	IntervalMonthly   IntervalKind = "monthly"
	IntervalQuarterly IntervalKind = "quarterly"
	IntervalAnnual    IntervalKind = "annual"
	IntervalCustom    IntervalKind = "custom"
)

// ClassifyInterval maps an average day-gap to a named cadence.
func ClassifyInterval(days float64) IntervalKind {
	switch {
	case days >= 6 && days <= 8:
		return IntervalWeekly
	case days >= 13 && days <= 15:
		return IntervalBiweekly
	case days >= 27 && days <= 31:
		return IntervalMonthly
	case days >= 89 && days <= 92:
		return IntervalQuarterly
	case days >= 364 && days <= 366:
		return IntervalAnnual
	default:
		return IntervalCustom
	}
}

// Subscription is one recurring charge found by the detector.
type Subscription struct {
	Merchant        string // normalized merchant identity
	AverageInterval float64
	IntervalStddev  float64
	AverageAmount   decimal.Decimal
	MinAmount       decimal.Decimal
	MaxAmount       decimal.Decimal
	Occurrences     int
	Category        string
	Confidence      Confidence
	FirstSeen       time.Time
	LastSeen        time.Time
	Status          SubscriptionStatus
}

// Interval returns the named cadence for the average gap.
func (s Subscription) Interval() IntervalKind {
	return ClassifyInterval(s.AverageInterval)
}

// MonthlyCost estimates what the subscription costs per 30-day month.
func (s Subscription) MonthlyCost() decimal.Decimal {
	if s.AverageInterval <= 0 {
		return decimal.Zero
	}
	perDay := s.AverageAmount.Div(decimal.NewFromFloat(s.AverageInterval))
	return perDay.Mul(decimal.NewFromInt(30)).Round(2)
}

// AnnualCost estimates what the subscription costs per year.
func (s Subscription) AnnualCost() decimal.Decimal {
	return s.MonthlyCost().Mul(decimal.NewFromInt(12)).Round(2)
}

// OverrideState is a user decision about a detected merchant identity,
// persisted across detection runs.
type OverrideState string

const (
	OverrideDismissed OverrideState = "dismissed"
	OverrideConfirmed OverrideState = "confirmed"
)

// SubscriptionOverride records a user's confirm/dismiss decision for a
// merchant identity. A dismissal suppresses re-detection of that identity.
type SubscriptionOverride struct {
	Merchant  string // normalized merchant identity
	State     OverrideState
	UpdatedAt time.Time
}
