package amqp

import (
	"strings"
	"testing"

	"ledger/internal/budget"
)

func TestBudgetAlertMessageRoundtrip(t *testing.T) {
	orig := NewBudgetAlertMessage(budget.Alert{
		Level:      budget.VerdictWarning,
		Message:    "BUDGET WARNING! You have reached 85.0% of your budget for 'food'.",
		Category:   "food",
		Spent:      85,
		Limit:      100,
		Remaining:  15,
		Percentage: 85,
	})

	data, err := orig.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	got, err := BudgetAlertMessageFromJSON(data)
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	if got.Alert != orig.Alert {
		t.Errorf("alert = %+v, want %+v", got.Alert, orig.Alert)
	}
	if got.Timestamp.IsZero() {
		t.Error("timestamp lost in transit")
	}
}

func TestBudgetAlertMessageFieldNames(t *testing.T) {
	data, err := NewBudgetAlertMessage(budget.Alert{
		Level:    budget.VerdictCritical,
		Category: "transport",
	}).ToJSON()
	if err != nil {
		t.Fatal(err)
	}

	// Consumers key off these names; renames break them silently.
	for _, want := range []string{`"alert_level":"CRITICAL"`, `"category":"transport"`, `"timestamp"`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("payload %s missing %s", data, want)
		}
	}
}
