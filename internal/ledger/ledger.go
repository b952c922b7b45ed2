// Package ledger holds the shared transaction ledger the analysis
// components read from. It is pure data plus validation; all behavior
// lives in the components downstream.
package ledger

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/mjs243/money-manager/internal/model"
)

// ValidationError describes why a single transaction record was rejected.
type ValidationError struct {
	Row    int
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("transaction %d: %s", e.Row, e.Reason)
}

// ValidateResult is the outcome of validating a batch of raw records.
// Rejected records are skipped, not fatal; the count is reported upstream.
type ValidateResult struct {
	Valid   []model.Transaction
	Skipped []ValidationError
}

// Validate filters a batch of transactions, dropping records with a zero
// date, a zero amount, or a date later than now (sync time). Valid
// transactions come back sorted by date ascending.
func Validate(txns []model.Transaction, now time.Time) ValidateResult {
	var res ValidateResult
	for i, txn := range txns {
		switch {
		case txn.Date.IsZero():
			res.Skipped = append(res.Skipped, ValidationError{Row: i, Reason: "missing date"})
		case txn.Amount.IsZero():
			res.Skipped = append(res.Skipped, ValidationError{Row: i, Reason: "missing amount"})
		case txn.Date.After(now):
			res.Skipped = append(res.Skipped, ValidationError{
				Row:    i,
				Reason: fmt.Sprintf("date %s is in the future", txn.Date.Format("2006-01-02")),
			})
		default:
			res.Valid = append(res.Valid, txn)
		}
	}
	sort.SliceStable(res.Valid, func(i, j int) bool {
		return res.Valid[i].Date.Before(res.Valid[j].Date)
	})
	return res
}

// ledgerFile is the canonical ledger location under the data root.
const ledgerFile = "ledger.csv"

// Load reads ledger.csv from a data root. A missing file is an empty ledger.
func Load(dataRoot string) ([]model.Transaction, error) {
	path := filepath.Join(dataRoot, ledgerFile)
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening ledger %s: %w", path, err)
	}
	defer f.Close()

	txns, err := ReadTransactions(f)
	if err != nil {
		return nil, fmt.Errorf("reading ledger %s: %w", path, err)
	}
	return txns, nil
}

// Save replaces ledger.csv under the data root with the given transactions.
func Save(dataRoot string, txns []model.Transaction) error {
	if err := os.MkdirAll(dataRoot, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	path := filepath.Join(dataRoot, ledgerFile)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating ledger file: %w", err)
	}
	defer f.Close()

	if err := WriteTransactions(f, txns); err != nil {
		return fmt.Errorf("writing ledger: %w", err)
	}
	return nil
}
