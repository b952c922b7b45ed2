package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mjs243/money-manager/internal/ledger"
	"github.com/mjs243/money-manager/internal/model"
	"github.com/mjs243/money-manager/internal/recurrence"
	"github.com/mjs243/money-manager/internal/report"
)

func newSubscriptionsCommand(e *env) *cobra.Command {
	var dismiss, confirm string

	cmd := &cobra.Command{
		Use:   "subscriptions",
		Short: "Detect recurring charges in the ledger",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dismiss != "" && confirm != "" {
				return fmt.Errorf("--dismiss and --confirm are mutually exclusive")
			}
			if dismiss != "" {
				return runOverride(e, dismiss, model.OverrideDismissed)
			}
			if confirm != "" {
				return runOverride(e, confirm, model.OverrideConfirmed)
			}
			return runSubscriptions(e)
		},
	}

	cmd.Flags().StringVar(&dismiss, "dismiss", "", "merchant identity to stop flagging")
	cmd.Flags().StringVar(&confirm, "confirm", "", "merchant identity to mark as a known subscription")

	return cmd
}

func runOverride(e *env, merchant string, state model.OverrideState) error {
	st, err := e.openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	identity := recurrence.NormalizeMerchant(merchant)
	if identity == "" {
		return fmt.Errorf("merchant %q normalizes to nothing", merchant)
	}

	if err := st.SaveOverride(model.SubscriptionOverride{
		Merchant:  identity,
		State:     state,
		UpdatedAt: time.Now(),
	}); err != nil {
		return err
	}

	fmt.Printf("%s %q\n", state, identity)
	return nil
}

func runSubscriptions(e *env) error {
	txns, err := ledger.Load(e.dataRoot)
	if err != nil {
		return err
	}

	st, err := e.openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	overrides, err := st.ListOverrides()
	if err != nil {
		return err
	}

	cfg := e.loadConfig()
	subs := recurrence.Detect(txns, overrides, recurrence.Options{
		MinOccurrences:          cfg.Detector.MinOccurrences,
		IntervalStddevThreshold: cfg.Detector.IntervalStddevThreshold,
		AmountVarianceThreshold: cfg.Detector.AmountVarianceThreshold,
	})

	fmt.Print(report.Subscriptions(subs))
	return nil
}
