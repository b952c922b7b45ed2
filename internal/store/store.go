// Package store persists application state (subscription overrides, wants,
// restock items, debt accounts) in a local SQLite database. Currency values
// are stored as decimal strings, never floats.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mjs243/money-manager/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

const dateFormat = "2006-01-02"

// Store wraps the state database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the state database at the given path.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating state dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening state db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the state database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveOverride upserts a subscription override for a merchant identity.
func (s *Store) SaveOverride(o model.SubscriptionOverride) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO subscription_overrides (merchant, state, updated_at) VALUES (?, ?, ?)`,
		o.Merchant, string(o.State), o.UpdatedAt.UTC().Format(time.RFC3339))
	return err
}

// ListOverrides returns all stored subscription overrides.
func (s *Store) ListOverrides() ([]model.SubscriptionOverride, error) {
	rows, err := s.db.Query(`SELECT merchant, state, updated_at FROM subscription_overrides ORDER BY merchant`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.SubscriptionOverride
	for rows.Next() {
		var o model.SubscriptionOverride
		var state, updated string
		if err := rows.Scan(&o.Merchant, &state, &updated); err != nil {
			return nil, err
		}
		o.State = model.OverrideState(state)
		if o.UpdatedAt, err = time.Parse(time.RFC3339, updated); err != nil {
			return nil, fmt.Errorf("override %s: parsing updated_at: %w", o.Merchant, err)
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// SaveWant upserts a want.
func (s *Store) SaveWant(w model.Want) error {
	resolved := ""
	if !w.ResolvedDate.IsZero() {
		resolved = w.ResolvedDate.Format(dateFormat)
	}
	_, err := s.db.Exec(`INSERT OR REPLACE INTO wants
		(id, description, amount, reason, requested_date, cooling_off_days, status, resolved_date, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		w.ID, w.Description, w.Amount.StringFixed(2), w.Reason,
		w.RequestedDate.Format(dateFormat), w.CoolingOffDays,
		string(w.Status), resolved, w.Notes)
	return err
}

// ListWants returns all wants, oldest request first.
func (s *Store) ListWants() ([]model.Want, error) {
	rows, err := s.db.Query(`SELECT id, description, amount, reason, requested_date, cooling_off_days, status, resolved_date, notes
		FROM wants ORDER BY requested_date, id`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.Want
	for rows.Next() {
		var w model.Want
		var amount, requested, resolved, status string
		if err := rows.Scan(&w.ID, &w.Description, &amount, &w.Reason, &requested, &w.CoolingOffDays, &status, &resolved, &w.Notes); err != nil {
			return nil, err
		}
		if w.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("want %s: parsing amount: %w", w.ID, err)
		}
		if w.RequestedDate, err = time.Parse(dateFormat, requested); err != nil {
			return nil, fmt.Errorf("want %s: parsing requested_date: %w", w.ID, err)
		}
		if resolved != "" {
			if w.ResolvedDate, err = time.Parse(dateFormat, resolved); err != nil {
				return nil, fmt.Errorf("want %s: parsing resolved_date: %w", w.ID, err)
			}
		}
		w.Status = model.WantStatus(status)
		out = append(out, w)
	}
	return out, rows.Err()
}

// SaveItem upserts a restock item and its purchase history in one
// transaction.
func (s *Store) SaveItem(item model.RecurringPurchaseItem) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.Exec(`INSERT OR REPLACE INTO restock_items
		(id, name, merchant, category, typical_interval, interval_stddev, last_amount, last_purchase)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID, item.Name, item.Merchant, item.Category,
		item.TypicalInterval, item.IntervalStddev,
		item.LastAmount.StringFixed(2), item.LastPurchase.Format(dateFormat))
	if err != nil {
		return err
	}

	if _, err := tx.Exec(`DELETE FROM restock_purchases WHERE item_id = ?`, item.ID); err != nil {
		return err
	}
	for _, d := range item.PurchaseDates {
		if _, err := tx.Exec(`INSERT OR IGNORE INTO restock_purchases (item_id, purchase_date) VALUES (?, ?)`,
			item.ID, d.Format(dateFormat)); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// ListItems returns all restock items with their purchase histories.
func (s *Store) ListItems() ([]model.RecurringPurchaseItem, error) {
	rows, err := s.db.Query(`SELECT id, name, merchant, category, typical_interval, interval_stddev, last_amount, last_purchase
		FROM restock_items ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.RecurringPurchaseItem
	for rows.Next() {
		var item model.RecurringPurchaseItem
		var amount, last string
		if err := rows.Scan(&item.ID, &item.Name, &item.Merchant, &item.Category,
			&item.TypicalInterval, &item.IntervalStddev, &amount, &last); err != nil {
			return nil, err
		}
		if item.LastAmount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("item %s: parsing last_amount: %w", item.ID, err)
		}
		if item.LastPurchase, err = time.Parse(dateFormat, last); err != nil {
			return nil, fmt.Errorf("item %s: parsing last_purchase: %w", item.ID, err)
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		dates, err := s.purchaseDates(out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].PurchaseDates = dates
	}
	return out, nil
}

func (s *Store) purchaseDates(itemID string) ([]time.Time, error) {
	rows, err := s.db.Query(`SELECT purchase_date FROM restock_purchases WHERE item_id = ?`, itemID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var dates []time.Time
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		d, err := time.Parse(dateFormat, raw)
		if err != nil {
			return nil, fmt.Errorf("item %s: parsing purchase_date: %w", itemID, err)
		}
		dates = append(dates, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates, nil
}

// SaveDebtAccount upserts a debt account by name.
func (s *Store) SaveDebtAccount(a model.DebtAccount) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO debt_accounts (name, balance, apr, minimum_payment) VALUES (?, ?, ?, ?)`,
		a.Name, a.Balance.StringFixed(2), a.APR.String(), a.MinimumPayment.StringFixed(2))
	return err
}

// ListDebtAccounts returns all debt accounts sorted by name.
func (s *Store) ListDebtAccounts() ([]model.DebtAccount, error) {
	rows, err := s.db.Query(`SELECT name, balance, apr, minimum_payment FROM debt_accounts ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.DebtAccount
	for rows.Next() {
		var a model.DebtAccount
		var balance, apr, minimum string
		if err := rows.Scan(&a.Name, &balance, &apr, &minimum); err != nil {
			return nil, err
		}
		if a.Balance, err = decimal.NewFromString(balance); err != nil {
			return nil, fmt.Errorf("debt %s: parsing balance: %w", a.Name, err)
		}
		if a.APR, err = decimal.NewFromString(apr); err != nil {
			return nil, fmt.Errorf("debt %s: parsing apr: %w", a.Name, err)
		}
		if a.MinimumPayment, err = decimal.NewFromString(minimum); err != nil {
			return nil, fmt.Errorf("debt %s: parsing minimum_payment: %w", a.Name, err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
