// Package coolingoff gates discretionary purchases behind a mandatory
// waiting period. There is deliberately no override path: the delay is the
// feature. All functions are pure over the want's fields and the clock the
// caller passes in; nothing polls.
package coolingoff

import (
	"fmt"
	"time"

	"github.com/mjs243/money-manager/internal/model"
)

// TooEarlyError means a confirm was attempted before the cooling-off period
// elapsed. The want stays pending.
type TooEarlyError struct {
	Description string
	Eligible    time.Time
	Now         time.Time
}

func (e *TooEarlyError) Error() string {
	wait := int(e.Eligible.Sub(e.Now).Hours()/24) + 1
	return fmt.Sprintf("%q cannot be confirmed until %s (%d more days)",
		e.Description, e.Eligible.Format("2006-01-02"), wait)
}

// EffectiveStatus returns the status a want holds at the given time,
// applying automatic expiry to pending wants past their grace window.
// Terminal states are returned unchanged; they never revert.
func EffectiveStatus(w model.Want, graceDays int, now time.Time) model.WantStatus {
	if w.Status != model.WantPending {
		return w.Status
	}
	if now.After(w.ExpiryDate(graceDays)) {
		return model.WantExpired
	}
	return model.WantPending
}

// Actionable reports whether the want can be confirmed right now: still
// pending, past its cooling-off date, not yet expired.
func Actionable(w model.Want, graceDays int, now time.Time) bool {
	return EffectiveStatus(w, graceDays, now) == model.WantPending && !now.Before(w.EligibleDate())
}

// Confirm transitions a pending want to approved. Confirming before the
// cooling-off deadline fails with TooEarlyError; confirming on or after the
// deadline succeeds.
func Confirm(w model.Want, graceDays int, now time.Time) (model.Want, error) {
	switch EffectiveStatus(w, graceDays, now) {
	case model.WantPending:
		// fall through to the deadline check
	case model.WantExpired:
		return w, fmt.Errorf("want %q expired on %s", w.Description, w.ExpiryDate(graceDays).Format("2006-01-02"))
	default:
		return w, fmt.Errorf("want %q is already %s", w.Description, w.Status)
	}

	if now.Before(w.EligibleDate()) {
		return w, &TooEarlyError{Description: w.Description, Eligible: w.EligibleDate(), Now: now}
	}

	w.Status = model.WantApproved
	w.ResolvedDate = now
	return w, nil
}

// Reject cancels a pending want. Allowed at any time before a terminal state.
func Reject(w model.Want, now time.Time) (model.Want, error) {
	if w.Status != model.WantPending {
		return w, fmt.Errorf("want %q is already %s", w.Description, w.Status)
	}
	w.Status = model.WantRejected
	w.ResolvedDate = now
	return w, nil
}

// ExpireStale applies the automatic pending-to-expired transition across a
// set of wants and returns the updated set plus how many expired.
func ExpireStale(wants []model.Want, graceDays int, now time.Time) ([]model.Want, int) {
	expired := 0
	out := make([]model.Want, len(wants))
	for i, w := range wants {
		if w.Status == model.WantPending && EffectiveStatus(w, graceDays, now) == model.WantExpired {
			w.Status = model.WantExpired
			w.ResolvedDate = now
			expired++
		}
		out[i] = w
	}
	return out, expired
}
