// Package budget implements the threshold engine: a stateless computation
// of an alert verdict from a category's monthly spend versus its budget.
// It owns no persisted state.
package budget

import (
	"fmt"
	"math"

	"ledger/internal/core"
)

const (
	VerdictOK       Verdict = "OK"
	VerdictWarning  Verdict = "WARNING"
	VerdictCritical Verdict = "CRITICAL"
)

type (
	// Verdict is the alert level for a category's monthly spend.
	// Exactly one verdict applies per evaluation.
	Verdict string

	// Alert is the inline payload attached to a mutating response when a
	// category's spend has crossed its budget threshold.
	Alert struct {
		Level      Verdict `json:"alert_level"`
		Message    string  `json:"message"`
		Category   string  `json:"category"`
		Spent      float64 `json:"spent"`
		Limit      float64 `json:"limit"`
		Remaining  float64 `json:"remaining"`
		Percentage float64 `json:"percentage"`
	}
)

// Percentage returns spent as a percentage of limit. A zero limit yields
// 0, never a division fault.
func Percentage(limit, spent core.Money) float64 {
	if limit.Cents == 0 {
		return 0
	}
	return spent.Float() / limit.Float() * 100
}

// Evaluate computes the verdict for one month's spend. The threshold
// boundary is inclusive: spend exactly at threshold*limit is a WARNING,
// spend exactly at the limit is CRITICAL.
func Evaluate(limit core.Money, threshold float64, spent core.Money) Verdict {
	pct := Percentage(limit, spent)
	switch {
	case pct >= 100:
		return VerdictCritical
	case pct >= threshold*100:
		return VerdictWarning
	default:
		return VerdictOK
	}
}

// Check evaluates spent against b and returns the alert to attach to the
// response, or nil when spending is below the warning threshold.
func Check(b core.Budget, spent core.Money) *Alert {
	verdict := Evaluate(b.MonthlyLimit, b.AlertThreshold, spent)
	if verdict == VerdictOK {
		return nil
	}

	pct := Percentage(b.MonthlyLimit, spent)
	remaining := b.MonthlyLimit.Cents - spent.Cents
	alert := &Alert{
		Level:      verdict,
		Category:   b.Category,
		Spent:      spent.Float(),
		Limit:      b.MonthlyLimit.Float(),
		Remaining:  float64(remaining) / 100,
		Percentage: round1(pct),
	}

	switch verdict {
	case VerdictCritical:
		alert.Message = fmt.Sprintf(
			"BUDGET EXCEEDED! You have exceeded your budget for '%s'. Spent: %s / %s (%.1f%%). Over budget by %s.",
			b.Category, spent, b.MonthlyLimit, pct, core.Money{Cents: -remaining})
	case VerdictWarning:
		alert.Message = fmt.Sprintf(
			"BUDGET WARNING! You have reached %.1f%% of your budget for '%s'. Spent: %s / %s. Remaining: %s.",
			pct, b.Category, spent, b.MonthlyLimit, core.Money{Cents: remaining})
	}

	return alert
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
