// Package report renders the decision engine's outputs for the terminal.
// The engine packages stay format-agnostic; styling lives only here.
package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/mjs243/money-manager/internal/coolingoff"
	"github.com/mjs243/money-manager/internal/debtplan"
	"github.com/mjs243/money-manager/internal/model"
	"github.com/mjs243/money-manager/internal/recurrence"
)

var decimalTwelve = decimal.NewFromInt(12)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))

	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	moneyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))

	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))

	alertStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))

	sectionStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)
)

// table renders rows with left-aligned, padded columns.
func table(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder
	for i, h := range headers {
		b.WriteString(headerStyle.Render(pad(h, widths[i])))
		if i < len(headers)-1 {
			b.WriteString("  ")
		}
	}
	b.WriteString("\n")
	for _, row := range rows {
		for i, cell := range row {
			b.WriteString(pad(cell, widths[i]))
			if i < len(row)-1 {
				b.WriteString("  ")
			}
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func pad(s string, width int) string {
	if n := width - lipgloss.Width(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}

func section(title, body string) string {
	return sectionStyle.Render(titleStyle.Render(title)+"\n\n"+body) + "\n"
}

// Subscriptions renders the detected recurring charges.
func Subscriptions(subs []model.Subscription) string {
	if len(subs) == 0 {
		return section("Subscriptions", mutedStyle.Render("no recurring charges detected"))
	}

	rows := make([][]string, 0, len(subs))
	for _, s := range subs {
		status := string(s.Status)
		if s.Status == model.SubscriptionLapsed {
			status = warnStyle.Render(status)
		}
		rows = append(rows, []string{
			s.Merchant,
			string(s.Interval()),
			moneyStyle.Render("$" + s.AverageAmount.StringFixed(2)),
			"$" + s.MonthlyCost().StringFixed(2) + "/mo",
			string(s.Confidence),
			status,
			s.LastSeen.Format("2006-01-02"),
		})
	}

	body := table([]string{"MERCHANT", "CADENCE", "AVG", "MONTHLY", "CONFIDENCE", "STATUS", "LAST SEEN"}, rows)
	total := recurrence.EstimatedMonthlyCost(subs)
	body += "\n\n" + mutedStyle.Render("estimated recurring total: ") +
		moneyStyle.Render(fmt.Sprintf("$%s/mo ($%s/yr)",
			total.StringFixed(2), total.Mul(decimalTwelve).StringFixed(2)))
	return section("Subscriptions", body)
}

// Payoff renders a debt payoff plan summary with the first and last months.
func Payoff(plan *debtplan.PayoffPlan) string {
	months := plan.DebtFreeMonth()
	summary := fmt.Sprintf("strategy: %s   budget: $%s/mo   debt-free in %d months (%.1f years)\ntotal paid: %s   total interest: %s",
		plan.Strategy,
		plan.MonthlyBudget.StringFixed(2),
		months, float64(months)/12,
		moneyStyle.Render("$"+plan.TotalPaid.StringFixed(2)),
		alertStyle.Render("$"+plan.TotalInterest.StringFixed(2)))

	if len(plan.Months) == 0 {
		return section("Debt Payoff", summary)
	}

	first := plan.Months[0]
	names := make([]string, 0, len(first.Accounts))
	for name := range first.Accounts {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := make([][]string, 0, len(names))
	for _, name := range names {
		am := first.Accounts[name]
		rows = append(rows, []string{
			name,
			"$" + am.Payment.StringFixed(2),
			"$" + am.Interest.StringFixed(2),
			"$" + am.Remaining.StringFixed(2),
		})
	}

	body := summary + "\n\n" + headerStyle.Render("month 1") + "\n" +
		table([]string{"ACCOUNT", "PAYMENT", "INTEREST", "REMAINING"}, rows)
	return section("Debt Payoff", body)
}

// Wants renders the cooling-off queue with effective statuses at now.
func Wants(wants []model.Want, graceDays int, now time.Time) string {
	if len(wants) == 0 {
		return section("Wants", mutedStyle.Render("no wants logged"))
	}

	rows := make([][]string, 0, len(wants))
	for _, w := range wants {
		status := string(coolingoff.EffectiveStatus(w, graceDays, now))
		note := ""
		switch {
		case coolingoff.Actionable(w, graceDays, now):
			note = moneyStyle.Render("ready to confirm")
		case status == string(model.WantPending):
			note = mutedStyle.Render("eligible " + w.EligibleDate().Format("2006-01-02"))
		case status == string(model.WantExpired):
			status = warnStyle.Render(status)
		}
		rows = append(rows, []string{
			w.Description,
			"$" + w.Amount.StringFixed(2),
			w.RequestedDate.Format("2006-01-02"),
			status,
			note,
		})
	}

	body := table([]string{"WANT", "AMOUNT", "REQUESTED", "STATUS", ""}, rows)
	return section("Wants", body)
}

// Restock renders items running out within the horizon.
func Restock(items []model.RecurringPurchaseItem, now time.Time) string {
	if len(items) == 0 {
		return section("Restock", mutedStyle.Render("nothing running out soon"))
	}

	rows := make([][]string, 0, len(items))
	for _, item := range items {
		when := item.EstimatedDepletion().Format("2006-01-02")
		if item.IsExpired(now) {
			when = alertStyle.Render(when + " (out)")
		}
		rows = append(rows, []string{
			item.Name,
			fmt.Sprintf("every %.0f days", item.TypicalInterval),
			item.LastPurchase.Format("2006-01-02"),
			when,
		})
	}

	body := table([]string{"ITEM", "CADENCE", "LAST BOUGHT", "RUNS OUT"}, rows)
	return section("Restock", body)
}
