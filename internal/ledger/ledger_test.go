package ledger

import (
	"strings"
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

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestValidate(t *testing.T) {
	now := date(2025, 6, 15)
	txns := []model.Transaction{
		{Date: date(2025, 6, 10), Merchant: "NETFLIX.COM", Amount: dec("-15.49")},
		{Merchant: "no date", Amount: dec("-5.00")},
		{Date: date(2025, 6, 1), Merchant: "zero amount"},
		{Date: date(2025, 6, 20), Merchant: "future", Amount: dec("-9.00")},
		{Date: date(2025, 6, 1), Merchant: "SPOTIFY", Amount: dec("-11.99")},
	}

	res := Validate(txns, now)
	require.Len(t, res.Valid, 2)
	require.Len(t, res.Skipped, 3)

	// Valid records come back sorted ascending by date.
	assert.Equal(t, "SPOTIFY", res.Valid[0].Merchant)
	assert.Equal(t, "NETFLIX.COM", res.Valid[1].Merchant)

	assert.Equal(t, 1, res.Skipped[0].Row)
	assert.Contains(t, res.Skipped[0].Reason, "date")
	assert.Contains(t, res.Skipped[1].Reason, "amount")
	assert.Contains(t, res.Skipped[2].Reason, "future")
	assert.Contains(t, res.Skipped[2].Error(), "2025-06-20")
}

func TestValidate_TodayIsNotFuture(t *testing.T) {
	now := date(2025, 6, 15)
	res := Validate([]model.Transaction{
		{Date: now, Merchant: "SAME DAY", Amount: dec("-1.00")},
	}, now)
	assert.Len(t, res.Valid, 1)
	assert.Empty(t, res.Skipped)
}

func TestReadWriteTransactions(t *testing.T) {
	txns := []model.Transaction{
		{
			Date:        date(2025, 1, 15),
			Merchant:    "NETFLIX.COM",
			Amount:      dec("-15.49"),
			Description: "monthly plan",
			Category:    "Entertainment",
			AccountID:   "chk-1",
		},
		{
			Date:     date(2025, 1, 20),
			Merchant: "ACME PAYROLL",
			Amount:   dec("2300.00"),
		},
	}

	var sb strings.Builder
	require.NoError(t, WriteTransactions(&sb, txns))

	out := sb.String()
	assert.True(t, strings.HasPrefix(out, Header+"\n"))

	back, err := ReadTransactions(strings.NewReader(out))
	require.NoError(t, err)
	require.Len(t, back, 2)
	assert.Equal(t, "NETFLIX.COM", back[0].Merchant)
	assert.True(t, back[0].Amount.Equal(dec("-15.49")))
	assert.True(t, back[0].IsDebit())
	assert.False(t, back[1].IsDebit())
}

func TestReadTransactions_BadRow(t *testing.T) {
	in := Header + "\nnot-a-date,SHOP,-5.00,,,\n"
	_, err := ReadTransactions(strings.NewReader(in))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
}

func TestUnmarshalTransaction_FieldCount(t *testing.T) {
	_, err := UnmarshalTransaction([]string{"2025-01-15", "SHOP"})
	assert.Error(t, err)
}

func TestLoadSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()

	// Missing file reads as an empty ledger.
	txns, err := Load(dir)
	require.NoError(t, err)
	assert.Empty(t, txns)

	want := []model.Transaction{
		{Date: date(2025, 2, 1), Merchant: "SPOTIFY", Amount: dec("-11.99"), Category: "Entertainment"},
	}
	require.NoError(t, Save(dir, want))

	got, err := Load(dir)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "SPOTIFY", got[0].Merchant)
	assert.True(t, got[0].Amount.Equal(dec("-11.99")))
	assert.True(t, got[0].Date.Equal(date(2025, 2, 1)))
}
