// Package stats computes derived figures over finance snapshots: totals,
// groupings and threshold alerts. Everything here is a pure function of its
// inputs; nothing is cached or mutated, so callers recompute on every read.
package stats

import (
	"fmt"
	"math"
	"sort"

	"fincontrol/internal/core"
)

type (
	// CategoryTotal pairs a category id with the summed expense amount.
	CategoryTotal struct {
		CategoryID string  `json:"categoryId"`
		Total      float64 `json:"total"`
	}

	// CardTotal pairs a card id with the summed credit expense amount.
	CardTotal struct {
		CardID string  `json:"cardId"`
		Total  float64 `json:"total"`
	}

	// DailyTotal pairs an ISO date with the summed expense amount.
	DailyTotal struct {
		Date  string  `json:"date"`
		Total float64 `json:"total"`
	}

	// MonthTotal summarizes one month for history views. Savings is income
	// minus expenses and may be negative.
	MonthTotal struct {
		Month    string  `json:"month"`
		Income   float64 `json:"income"`
		Expenses float64 `json:"expenses"`
		Savings  float64 `json:"savings"`
	}
)

// Severity classifies an alert.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityDanger  Severity = "danger"
)

// Alert is a tagged message surfaced to the caller for display.
type Alert struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// Card usage thresholds, as a fraction of the total limit.
const (
	cardDangerRatio  = 0.90
	cardWarningRatio = 0.80
	lowBalanceRatio  = 0.10
)

// TotalExpenses sums all expense amounts in the record.
func TotalExpenses(rec core.MonthlyRecord) float64 {
	var sum float64
	for _, e := range rec.Expenses {
		sum += e.Amount
	}
	return sum
}

// TotalIncome is salary plus accumulated extra income.
func TotalIncome(rec core.MonthlyRecord) float64 {
	return rec.Salary + rec.ExtraIncome
}

// AvailableBalance is income minus expenses; negative when overspent.
func AvailableBalance(rec core.MonthlyRecord) float64 {
	return TotalIncome(rec) - TotalExpenses(rec)
}

// CardUsage sums the month's expense amounts referencing the given card.
// This is derived from the expense list alone and may legitimately differ
// from the card's stored UsedLimit.
func CardUsage(rec core.MonthlyRecord, cardID string) float64 {
	var sum float64
	for _, e := range rec.Expenses {
		if e.CardID == cardID {
			sum += e.Amount
		}
	}
	return sum
}

// ExpensesByCategory groups the month's expenses by category id. Groups
// appear in first-seen order of the category ids in the expense list.
// Dangling category ids form their own group; resolving them is the
// caller's concern.
func ExpensesByCategory(rec core.MonthlyRecord) []CategoryTotal {
	totals := make(map[string]float64)
	var order []string
	for _, e := range rec.Expenses {
		if _, seen := totals[e.CategoryID]; !seen {
			order = append(order, e.CategoryID)
		}
		totals[e.CategoryID] += e.Amount
	}
	out := make([]CategoryTotal, 0, len(order))
	for _, id := range order {
		out = append(out, CategoryTotal{CategoryID: id, Total: totals[id]})
	}
	return out
}

// ExpensesByCard groups credit expenses with a card reference by card id,
// in first-seen order.
func ExpensesByCard(rec core.MonthlyRecord) []CardTotal {
	totals := make(map[string]float64)
	var order []string
	for _, e := range rec.Expenses {
		if e.PaymentMethod != core.Credit || e.CardID == "" {
			continue
		}
		if _, seen := totals[e.CardID]; !seen {
			order = append(order, e.CardID)
		}
		totals[e.CardID] += e.Amount
	}
	out := make([]CardTotal, 0, len(order))
	for _, id := range order {
		out = append(out, CardTotal{CardID: id, Total: totals[id]})
	}
	return out
}

// DailyExpenses groups the month's expenses by their own date field, sorted
// ascending by date string (lexicographic equals chronological for ISO
// dates).
func DailyExpenses(rec core.MonthlyRecord) []DailyTotal {
	totals := make(map[string]float64)
	for _, e := range rec.Expenses {
		totals[e.Date] += e.Amount
	}
	out := make([]DailyTotal, 0, len(totals))
	for date, total := range totals {
		out = append(out, DailyTotal{Date: date, Total: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// Alerts evaluates the alert policy: one entry per card at or above the
// warning/danger usage thresholds, in card list order, then a single
// low-balance warning when income is positive and the available balance
// falls below 10% of it. Cards with a zero total limit count as 0% used.
func Alerts(cards []core.CreditCard, rec core.MonthlyRecord) []Alert {
	var alerts []Alert

	for _, card := range cards {
		var ratio float64
		if card.TotalLimit > 0 {
			ratio = card.UsedLimit / card.TotalLimit
		}
		pct := int(math.Round(ratio * 100))
		switch {
		case ratio >= cardDangerRatio:
			alerts = append(alerts, Alert{
				Severity: SeverityDanger,
				Message:  fmt.Sprintf("%s: credit limit critical (%d%% used)", card.Name, pct),
			})
		case ratio >= cardWarningRatio:
			alerts = append(alerts, Alert{
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("%s: credit limit high (%d%% used)", card.Name, pct),
			})
		}
	}

	income := TotalIncome(rec)
	if income > 0 && AvailableBalance(rec) < income*lowBalanceRatio {
		alerts = append(alerts, Alert{
			Severity: SeverityWarning,
			Message:  "Available balance is below 10% of income",
		})
	}

	return alerts
}

// MonthlyTotals computes per-month income/expense/savings figures for the
// given month keys, in the given order. Months without a stored record
// yield zeros.
func MonthlyTotals(data *core.FinanceData, months []string) []MonthTotal {
	out := make([]MonthTotal, 0, len(months))
	for _, m := range months {
		var rec core.MonthlyRecord
		if data != nil {
			rec = data.MonthlyData[m]
		}
		income := TotalIncome(rec)
		expenses := TotalExpenses(rec)
		out = append(out, MonthTotal{
			Month:    m,
			Income:   income,
			Expenses: expenses,
			Savings:  income - expenses,
		})
	}
	return out
}

// GoalProgress returns the goal's completion as a fraction, capped at 1.
// A zero or negative target counts as fully funded only when something has
// been saved.
func GoalProgress(g core.SavingsGoal) float64 {
	if g.TargetAmount <= 0 {
		if g.CurrentAmount > 0 {
			return 1
		}
		return 0
	}
	p := g.CurrentAmount / g.TargetAmount
	if p > 1 {
		return 1
	}
	return p
}
