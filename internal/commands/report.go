package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mjs243/money-manager/internal/debtplan"
	"github.com/mjs243/money-manager/internal/ledger"
	"github.com/mjs243/money-manager/internal/recurrence"
	"github.com/mjs243/money-manager/internal/report"
	"github.com/mjs243/money-manager/internal/restock"
)

func newReportCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Run the full analysis and print every section",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(e)
		},
	}
}

func runReport(e *env) error {
	txns, err := ledger.Load(e.dataRoot)
	if err != nil {
		return err
	}

	st, err := e.openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	cfg := e.loadConfig()
	now := time.Now()

	// Subscriptions.
	overrides, err := st.ListOverrides()
	if err != nil {
		return err
	}
	subs := recurrence.Detect(txns, overrides, recurrence.Options{
		MinOccurrences:          cfg.Detector.MinOccurrences,
		IntervalStddevThreshold: cfg.Detector.IntervalStddevThreshold,
		AmountVarianceThreshold: cfg.Detector.AmountVarianceThreshold,
	})
	fmt.Print(report.Subscriptions(subs))

	// Debt payoff, when accounts and a budget exist.
	accounts, err := st.ListDebtAccounts()
	if err != nil {
		return err
	}
	if len(accounts) > 0 && cfg.Debt.MonthlyBudget.IsPositive() {
		strategy, err := debtplan.ParseStrategy(cfg.Debt.Strategy)
		if err != nil {
			return err
		}
		plan, err := debtplan.Simulate(accounts, cfg.Debt.MonthlyBudget, strategy)
		var nonconv *debtplan.NonConvergentError
		switch {
		case errors.As(err, &nonconv):
			fmt.Print(report.Payoff(nonconv.Plan))
			e.log.Warn().Msg("payoff plan did not converge; showing the partial projection")
		case err != nil:
			e.log.Warn().Err(err).Msg("skipping debt section")
		default:
			fmt.Print(report.Payoff(plan))
		}
	}

	// Wants.
	wants, err := sweepWants(e, st, cfg.Wants.GracePeriod)
	if err != nil {
		return err
	}
	fmt.Print(report.Wants(wants, cfg.Wants.GracePeriod, now))

	// Restock.
	items, err := st.ListItems()
	if err != nil {
		return err
	}
	expiring := restock.QueryExpiring(items, cfg.Restock.HorizonDays, now)
	fmt.Print(report.Restock(expiring, now))

	return nil
}
