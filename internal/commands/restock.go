package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mjs243/money-manager/internal/ledger"
	"github.com/mjs243/money-manager/internal/model"
	"github.com/mjs243/money-manager/internal/recurrence"
	"github.com/mjs243/money-manager/internal/report"
	"github.com/mjs243/money-manager/internal/restock"
)

func newRestockCommand(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restock",
		Short: "Track consumables and predict when they run out",
	}

	cmd.AddCommand(newRestockTrackCommand(e))
	cmd.AddCommand(newRestockSyncCommand(e))
	cmd.AddCommand(newRestockListCommand(e))

	return cmd
}

func newRestockTrackCommand(e *env) *cobra.Command {
	var merchant string

	cmd := &cobra.Command{
		Use:   "track <name>",
		Short: "Start tracking an item bought from a merchant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			identity := recurrence.NormalizeMerchant(merchant)
			if identity == "" {
				return fmt.Errorf("merchant %q normalizes to nothing", merchant)
			}

			txns, err := ledger.Load(e.dataRoot)
			if err != nil {
				return err
			}

			// Seed from the earliest matching purchase, then replay the
			// rest so the interval estimate covers the full history.
			var item model.RecurringPurchaseItem
			found := false
			for _, txn := range txns {
				if !txn.IsDebit() || recurrence.NormalizeMerchant(txn.Merchant) != identity {
					continue
				}
				if !found {
					item = restock.NewItem(args[0], txn)
					found = true
					continue
				}
				item = restock.Update(item, txn)
			}
			if !found {
				return fmt.Errorf("no ledger purchases match merchant %q", identity)
			}

			st, err := e.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.SaveItem(item); err != nil {
				return err
			}

			if item.TypicalInterval > 0 {
				fmt.Printf("tracking %q: bought every %.0f days, runs out %s\n",
					item.Name, item.TypicalInterval,
					item.EstimatedDepletion().Format("2006-01-02"))
			} else {
				fmt.Printf("tracking %q: one purchase so far, cadence unknown\n", item.Name)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&merchant, "merchant", "", "merchant the item is bought from (required)")
	_ = cmd.MarkFlagRequired("merchant")

	return cmd
}

func newRestockSyncCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Fold new ledger purchases into tracked items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			txns, err := ledger.Load(e.dataRoot)
			if err != nil {
				return err
			}

			st, err := e.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			items, err := st.ListItems()
			if err != nil {
				return err
			}

			updated := 0
			for _, item := range items {
				changed := false
				for _, txn := range txns {
					if !txn.IsDebit() || !restock.Matches(item, txn) {
						continue
					}
					if !txn.Date.After(item.LastPurchase) {
						continue // already counted
					}
					item = restock.Update(item, txn)
					changed = true
				}
				if changed {
					if err := st.SaveItem(item); err != nil {
						return err
					}
					updated++
				}
			}

			fmt.Printf("updated %d of %d tracked items\n", updated, len(items))
			return nil
		},
	}
}

func newRestockListCommand(e *env) *cobra.Command {
	var horizon int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show items running out within the horizon",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := e.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			items, err := st.ListItems()
			if err != nil {
				return err
			}

			if horizon == 0 {
				horizon = e.loadConfig().Restock.HorizonDays
			}

			now := time.Now()
			expiring := restock.QueryExpiring(items, horizon, now)
			fmt.Print(report.Restock(expiring, now))
			return nil
		},
	}

	cmd.Flags().IntVar(&horizon, "horizon", 0, "days ahead to look (default from config)")

	return cmd
}
