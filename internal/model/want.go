package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// WantStatus is the lifecycle state of a discretionary purchase candidate.
// Approved, rejected, and expired are terminal; a want never reverts.
type WantStatus string

const (
	WantPending  WantStatus = "pending"
	WantApproved WantStatus = "approved"
	WantRejected WantStatus = "rejected"
	WantExpired  WantStatus = "expired"
)

// Want is a discretionary purchase candidate gated by a cooling-off period.
type Want struct {
	ID             string
	Description    string
	Amount         decimal.Decimal
	Reason         string // why the purchase seemed worth it at request time
	RequestedDate  time.Time
	CoolingOffDays int
	Status         WantStatus
	ResolvedDate   time.Time // set when status leaves pending
	Notes          string
}

// EligibleDate is the first day the want may be confirmed.
func (w Want) EligibleDate() time.Time {
	return w.RequestedDate.AddDate(0, 0, w.CoolingOffDays)
}

// ExpiryDate is the day an untouched want lapses, given the grace period.
func (w Want) ExpiryDate(graceDays int) time.Time {
	return w.EligibleDate().AddDate(0, 0, graceDays)
}
