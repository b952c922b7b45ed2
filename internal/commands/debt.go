package commands

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/mjs243/money-manager/internal/debtplan"
	"github.com/mjs243/money-manager/internal/model"
	"github.com/mjs243/money-manager/internal/report"
)

func newDebtCommand(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "debt",
		Short: "Manage debt accounts and project payoff plans",
	}

	cmd.AddCommand(newDebtAddCommand(e))
	cmd.AddCommand(newDebtListCommand(e))
	cmd.AddCommand(newDebtPlanCommand(e))

	return cmd
}

func newDebtAddCommand(e *env) *cobra.Command {
	var balance, apr, minimum string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add or update a debt account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			account, err := parseDebtAccount(args[0], balance, apr, minimum)
			if err != nil {
				return err
			}

			st, err := e.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.SaveDebtAccount(account); err != nil {
				return err
			}
			fmt.Printf("saved %s: $%s at %s%% APR, $%s minimum\n",
				account.Name, account.Balance.StringFixed(2), account.APR, account.MinimumPayment.StringFixed(2))
			return nil
		},
	}

	cmd.Flags().StringVar(&balance, "balance", "", "current balance (required)")
	cmd.Flags().StringVar(&apr, "apr", "", "annual percentage rate, e.g. 19.99 (required)")
	cmd.Flags().StringVar(&minimum, "minimum", "0", "minimum monthly payment")
	_ = cmd.MarkFlagRequired("balance")
	_ = cmd.MarkFlagRequired("apr")

	return cmd
}

func parseDebtAccount(name, balance, apr, minimum string) (model.DebtAccount, error) {
	bal, err := decimal.NewFromString(balance)
	if err != nil {
		return model.DebtAccount{}, fmt.Errorf("parsing balance %q: %w", balance, err)
	}
	rate, err := decimal.NewFromString(apr)
	if err != nil {
		return model.DebtAccount{}, fmt.Errorf("parsing apr %q: %w", apr, err)
	}
	min, err := decimal.NewFromString(minimum)
	if err != nil {
		return model.DebtAccount{}, fmt.Errorf("parsing minimum %q: %w", minimum, err)
	}
	if bal.IsNegative() || rate.IsNegative() || min.IsNegative() {
		return model.DebtAccount{}, errors.New("balance, apr, and minimum must be non-negative")
	}
	return model.DebtAccount{Name: name, Balance: bal, APR: rate, MinimumPayment: min}, nil
}

func newDebtListCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List debt accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := e.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			accounts, err := st.ListDebtAccounts()
			if err != nil {
				return err
			}
			if len(accounts) == 0 {
				fmt.Println("no debt accounts")
				return nil
			}

			for _, a := range accounts {
				fmt.Printf("%-20s $%10s  %6s%% APR  $%8s min  ($%s/mo interest)\n",
					a.Name, a.Balance.StringFixed(2), a.APR, a.MinimumPayment.StringFixed(2),
					a.MonthlyInterest().StringFixed(2))
			}
			fmt.Printf("\ntotal: $%s at %s%% weighted APR, $%s/mo interest\n",
				debtplan.TotalDebt(accounts).StringFixed(2),
				debtplan.WeightedAPR(accounts),
				debtplan.TotalMonthlyInterest(accounts).StringFixed(2))
			return nil
		},
	}
}

func newDebtPlanCommand(e *env) *cobra.Command {
	var strategyFlag, budgetFlag string
	var compare bool

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Project a month-by-month payoff schedule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := e.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			accounts, err := st.ListDebtAccounts()
			if err != nil {
				return err
			}
			if len(accounts) == 0 {
				return errors.New("no debt accounts; add some with 'moneyman debt add'")
			}

			cfg := e.loadConfig()
			budget := cfg.Debt.MonthlyBudget
			if budgetFlag != "" {
				if budget, err = decimal.NewFromString(budgetFlag); err != nil {
					return fmt.Errorf("parsing budget %q: %w", budgetFlag, err)
				}
			}

			if compare {
				cmp, err := debtplan.Compare(accounts, budget)
				if err != nil {
					return describePlanError(err)
				}
				fmt.Print(report.Payoff(cmp.Avalanche))
				fmt.Print(report.Payoff(cmp.Snowball))
				fmt.Printf("avalanche saves $%s in interest over snowball\n",
					cmp.InterestSaved().StringFixed(2))
				return nil
			}

			name := cfg.Debt.Strategy
			if strategyFlag != "" {
				name = strategyFlag
			}
			strategy, err := debtplan.ParseStrategy(name)
			if err != nil {
				return err
			}

			plan, err := debtplan.Simulate(accounts, budget, strategy)
			if err != nil {
				return describePlanError(err)
			}
			fmt.Print(report.Payoff(plan))
			return nil
		},
	}

	cmd.Flags().StringVar(&strategyFlag, "strategy", "", "avalanche or snowball (default from config)")
	cmd.Flags().StringVar(&budgetFlag, "budget", "", "monthly payoff budget (default from config)")
	cmd.Flags().BoolVar(&compare, "compare", false, "run both strategies side by side")

	return cmd
}

// describePlanError turns the simulator's typed failures into remediation
// the user can act on.
func describePlanError(err error) error {
	var insufficient *debtplan.InsufficientBudgetError
	if errors.As(err, &insufficient) {
		return fmt.Errorf("%w; raise the budget to at least %s", err, insufficient.MinimumTotal.StringFixed(2))
	}
	var nonconv *debtplan.NonConvergentError
	if errors.As(err, &nonconv) {
		return fmt.Errorf("%w; the budget barely covers interest, increase it or renegotiate rates", err)
	}
	return err
}
