package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/mjs243/money-manager/internal/coolingoff"
	"github.com/mjs243/money-manager/internal/model"
	"github.com/mjs243/money-manager/internal/report"
	"github.com/mjs243/money-manager/internal/store"
)

func newWantsCommand(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wants",
		Short: "Track discretionary purchases behind a cooling-off period",
	}

	cmd.AddCommand(newWantsAddCommand(e))
	cmd.AddCommand(newWantsListCommand(e))
	cmd.AddCommand(newWantsConfirmCommand(e))
	cmd.AddCommand(newWantsCancelCommand(e))

	return cmd
}

func newWantsAddCommand(e *env) *cobra.Command {
	var amount, reason string
	var days int

	cmd := &cobra.Command{
		Use:   "add <description>",
		Short: "Log a want; it cannot be approved until the cooling-off period passes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amt, err := decimal.NewFromString(amount)
			if err != nil {
				return fmt.Errorf("parsing amount %q: %w", amount, err)
			}

			cfg := e.loadConfig()
			if days == 0 {
				days = cfg.Wants.CoolingOffDays
			}

			want := model.Want{
				ID:             uuid.NewString(),
				Description:    args[0],
				Amount:         amt,
				Reason:         reason,
				RequestedDate:  time.Now(),
				CoolingOffDays: days,
				Status:         model.WantPending,
			}

			st, err := e.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.SaveWant(want); err != nil {
				return err
			}
			fmt.Printf("logged %q ($%s); eligible for confirmation on %s\n",
				want.Description, want.Amount.StringFixed(2),
				want.EligibleDate().Format("2006-01-02"))
			return nil
		},
	}

	cmd.Flags().StringVar(&amount, "amount", "", "purchase price (required)")
	cmd.Flags().StringVar(&reason, "reason", "", "why it seems worth it")
	cmd.Flags().IntVar(&days, "days", 0, "cooling-off days (default from config)")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func newWantsListCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show all wants and their cooling-off status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := e.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			cfg := e.loadConfig()
			wants, err := sweepWants(e, st, cfg.Wants.GracePeriod)
			if err != nil {
				return err
			}

			fmt.Print(report.Wants(wants, cfg.Wants.GracePeriod, time.Now()))
			return nil
		},
	}
}

func newWantsConfirmCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "confirm <description>",
		Short: "Approve a want whose cooling-off period has elapsed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return resolveWant(e, args[0], func(w model.Want, grace int, now time.Time) (model.Want, error) {
				return coolingoff.Confirm(w, grace, now)
			}, "approved")
		},
	}
}

func newWantsCancelCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <description>",
		Short: "Reject a pending want (allowed at any time)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return resolveWant(e, args[0], func(w model.Want, grace int, now time.Time) (model.Want, error) {
				return coolingoff.Reject(w, now)
			}, "rejected")
		},
	}
}

// sweepWants loads all wants and persists any automatic expirations before
// returning them.
func sweepWants(e *env, st *store.Store, graceDays int) ([]model.Want, error) {
	wants, err := st.ListWants()
	if err != nil {
		return nil, err
	}

	swept, expired := coolingoff.ExpireStale(wants, graceDays, time.Now())
	if expired > 0 {
		e.log.Info().Int("expired", expired).Msg("expired stale wants")
		for _, w := range swept {
			if w.Status == model.WantExpired {
				if err := st.SaveWant(w); err != nil {
					return nil, err
				}
			}
		}
	}
	return swept, nil
}

func resolveWant(e *env, description string, transition func(model.Want, int, time.Time) (model.Want, error), verb string) error {
	st, err := e.openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	cfg := e.loadConfig()
	wants, err := sweepWants(e, st, cfg.Wants.GracePeriod)
	if err != nil {
		return err
	}

	for _, w := range wants {
		if !strings.EqualFold(w.Description, description) && w.ID != description {
			continue
		}

		updated, err := transition(w, cfg.Wants.GracePeriod, time.Now())
		if err != nil {
			return err
		}
		if err := st.SaveWant(updated); err != nil {
			return err
		}
		fmt.Printf("%s %q ($%s)\n", verb, updated.Description, updated.Amount.StringFixed(2))
		return nil
	}

	return fmt.Errorf("no want matching %q", description)
}
