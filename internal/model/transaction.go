package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents a single imported ledger row. Transactions are
// immutable after import; a re-import replaces the whole ledger.
type Transaction struct {
	Date        time.Time
	Merchant    string          // raw descriptor as exported by the bank
	Amount      decimal.Decimal // negative = debit
	Description string
	Category    string // optional classification label
	AccountID   string
}

// IsDebit reports whether the transaction is spending (negative amount).
func (t Transaction) IsDebit() bool {
	return t.Amount.IsNegative()
}
