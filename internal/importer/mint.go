package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mjs243/money-manager/internal/model"
)

// MintParser parses Mint-style transaction exports: unsigned amounts with a
// separate debit/credit column.
type MintParser struct{}

const (
	mintDateFormat = "1/02/2006"
	mintNumFields  = 7
	mintColDate    = 0
	mintColMerch   = 1
	mintColDesc    = 2
	mintColAmount  = 3
	mintColType    = 4
	mintColCat     = 5
	mintColAcct    = 6
)

// Format returns the parser name.
func (p *MintParser) Format() string { return "mint" }

// Parse reads a Mint export and returns Transactions with signed amounts
// (negative = debit, matching the ledger convention).
func (p *MintParser) Parse(r io.Reader) ([]model.Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = mintNumFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading mint CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var txns []model.Transaction
	for i, rec := range records[1:] {
		txn, err := parseMintRow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		txns = append(txns, txn)
	}
	return txns, nil
}

func parseMintRow(rec []string) (model.Transaction, error) {
	date, err := time.Parse(mintDateFormat, rec[mintColDate])
	if err != nil {
		// Some exports use ISO dates.
		date, err = time.Parse("2006-01-02", rec[mintColDate])
		if err != nil {
			return model.Transaction{}, fmt.Errorf("parsing date %q: %w", rec[mintColDate], err)
		}
	}

	amount, err := decimal.NewFromString(rec[mintColAmount])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing amount %q: %w", rec[mintColAmount], err)
	}

	switch strings.ToLower(rec[mintColType]) {
	case "debit":
		amount = amount.Abs().Neg()
	case "credit":
		amount = amount.Abs()
	default:
		return model.Transaction{}, fmt.Errorf("unknown transaction type %q", rec[mintColType])
	}

	return model.Transaction{
		Date:        date,
		Merchant:    rec[mintColMerch],
		Amount:      amount,
		Description: rec[mintColDesc],
		Category:    rec[mintColCat],
		AccountID:   rec[mintColAcct],
	}, nil
}
