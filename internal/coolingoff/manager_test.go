package coolingoff

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

func pendingWant() model.Want {
	return model.Want{
		ID:             "w-1",
		Description:    "standing desk",
		Amount:         decimal.NewFromInt(450),
		Reason:         "back pain",
		RequestedDate:  date(2025, 6, 1),
		CoolingOffDays: 30,
		Status:         model.WantPending,
	}
}

func TestConfirm_TooEarly(t *testing.T) {
	w := pendingWant()

	// One day before the deadline.
	_, err := Confirm(w, 14, date(2025, 6, 30))
	require.Error(t, err)

	var tee *TooEarlyError
	require.ErrorAs(t, err, &tee)
	assert.Equal(t, date(2025, 7, 1), tee.Eligible)
	assert.Contains(t, err.Error(), "2025-07-01")
}

func TestConfirm_OnDeadline(t *testing.T) {
	w, err := Confirm(pendingWant(), 14, date(2025, 7, 1))
	require.NoError(t, err)
	assert.Equal(t, model.WantApproved, w.Status)
	assert.Equal(t, date(2025, 7, 1), w.ResolvedDate)
}

func TestConfirm_AfterDeadlineWithinGrace(t *testing.T) {
	w, err := Confirm(pendingWant(), 14, date(2025, 7, 10))
	require.NoError(t, err)
	assert.Equal(t, model.WantApproved, w.Status)
}

func TestConfirm_PastGraceFails(t *testing.T) {
	// Eligible 2025-07-01 plus 14 grace days: anything after 2025-07-15
	// is too late.
	w := pendingWant()
	_, err := Confirm(w, 14, date(2025, 7, 16))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expired")
}

func TestConfirm_OnLastGraceDayStillWorks(t *testing.T) {
	w, err := Confirm(pendingWant(), 14, date(2025, 7, 15))
	require.NoError(t, err)
	assert.Equal(t, model.WantApproved, w.Status)
}

func TestConfirm_TerminalStatesDoNotRevert(t *testing.T) {
	for _, status := range []model.WantStatus{model.WantApproved, model.WantRejected, model.WantExpired} {
		w := pendingWant()
		w.Status = status
		_, err := Confirm(w, 14, date(2025, 8, 1))
		assert.Error(t, err, "status %s", status)
	}
}

func TestReject_AnyTimeWhilePending(t *testing.T) {
	// Rejection needs no waiting period.
	w, err := Reject(pendingWant(), date(2025, 6, 2))
	require.NoError(t, err)
	assert.Equal(t, model.WantRejected, w.Status)
	assert.Equal(t, date(2025, 6, 2), w.ResolvedDate)

	_, err = Reject(w, date(2025, 6, 3))
	assert.Error(t, err, "terminal state must stay terminal")
}

func TestEffectiveStatus(t *testing.T) {
	w := pendingWant()
	assert.Equal(t, model.WantPending, EffectiveStatus(w, 14, date(2025, 6, 15)))
	assert.Equal(t, model.WantPending, EffectiveStatus(w, 14, date(2025, 7, 15)))
	assert.Equal(t, model.WantExpired, EffectiveStatus(w, 14, date(2025, 7, 16)))

	w.Status = model.WantApproved
	assert.Equal(t, model.WantApproved, EffectiveStatus(w, 14, date(2026, 1, 1)))
}

func TestActionable(t *testing.T) {
	w := pendingWant()
	assert.False(t, Actionable(w, 14, date(2025, 6, 30)), "still cooling off")
	assert.True(t, Actionable(w, 14, date(2025, 7, 1)))
	assert.True(t, Actionable(w, 14, date(2025, 7, 15)))
	assert.False(t, Actionable(w, 14, date(2025, 7, 16)), "past grace")
}

func TestExpireStale(t *testing.T) {
	fresh := pendingWant()
	fresh.ID = "w-fresh"
	fresh.RequestedDate = date(2025, 7, 1)

	stale := pendingWant()
	stale.ID = "w-stale"

	approved := pendingWant()
	approved.ID = "w-approved"
	approved.Status = model.WantApproved

	out, n := ExpireStale([]model.Want{fresh, stale, approved}, 14, date(2025, 7, 20))
	assert.Equal(t, 1, n)

	byID := map[string]model.Want{}
	for _, w := range out {
		byID[w.ID] = w
	}
	assert.Equal(t, model.WantPending, byID["w-fresh"].Status)
	assert.Equal(t, model.WantExpired, byID["w-stale"].Status)
	assert.Equal(t, date(2025, 7, 20), byID["w-stale"].ResolvedDate)
	assert.Equal(t, model.WantApproved, byID["w-approved"].Status)
}
