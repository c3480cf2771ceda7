package core

import (
	"testing"
)

func TestParseFrequency(t *testing.T) {
	for _, s := range []string{"daily", "weekly", "monthly", "yearly"} {
		f, err := ParseFrequency(s)
		if err != nil {
			t.Fatalf("ParseFrequency(%q): unexpected error %v", s, err)
		}
		if string(f) != s {
			t.Fatalf("ParseFrequency(%q) = %q", s, f)
		}
	}
	for _, s := range []string{"", "Daily", "biweekly", "once"} {
		if _, err := ParseFrequency(s); err == nil {
			t.Fatalf("ParseFrequency(%q): expected error", s)
		}
	}
}

func TestExpenseValidate(t *testing.T) {
	good := Expense{
		Date:     NewDate(2026, 1, 15),
		Amount:   Money{Cents: 100},
		Category: "food",
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Expense{
		{Amount: Money{Cents: 100}, Category: "food"},                    // zero date
		{Date: NewDate(2026, 1, 15), Category: "food"},                   // zero amount
		{Date: NewDate(2026, 1, 15), Amount: Money{Cents: -5}, Category: "food"},
		{Date: NewDate(2026, 1, 15), Amount: Money{Cents: 100}},          // empty category
		{Date: NewDate(2026, 1, 15), Amount: Money{Cents: 100}, Category: "  "},
	}
	for i, e := range bads {
		err := e.Validate()
		if err == nil {
			t.Fatalf("case %d: expected error", i)
		}
		if !IsValidation(err) {
			t.Fatalf("case %d: expected ValidationError, got %T", i, err)
		}
	}
}

func TestBudgetValidate(t *testing.T) {
	good := Budget{Category: "food", MonthlyLimit: Money{Cents: 10000}, AlertThreshold: 0.8}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Budget{Category: "food", MonthlyLimit: Money{Cents: 10000}, AlertThreshold: 1.0}).Validate(); err != nil {
		t.Fatalf("threshold 1.0 is inside (0,1]: %v", err)
	}

	bads := []Budget{
		{MonthlyLimit: Money{Cents: 100}, AlertThreshold: 0.8},
		{Category: "food", AlertThreshold: 0.8},
		{Category: "food", MonthlyLimit: Money{Cents: 100}, AlertThreshold: 0},
		{Category: "food", MonthlyLimit: Money{Cents: 100}, AlertThreshold: 1.01},
		{Category: "food", MonthlyLimit: Money{Cents: 100}, AlertThreshold: -0.5},
	}
	for i, b := range bads {
		if err := b.Validate(); err == nil {
			t.Fatalf("case %d: expected error", i)
		}
	}
}

func TestRecurringExpenseValidate(t *testing.T) {
	good := RecurringExpense{
		Amount:    Money{Cents: 999},
		Category:  "subscriptions",
		Frequency: Monthly,
		StartDate: NewDate(2026, 1, 15),
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	withEnd := good
	withEnd.EndDate = NewDate(2026, 12, 31)
	if err := withEnd.Validate(); err != nil {
		t.Fatalf("expected ok with end date, got %v", err)
	}

	endBeforeStart := good
	endBeforeStart.EndDate = NewDate(2025, 12, 31)
	if err := endBeforeStart.Validate(); err == nil {
		t.Fatalf("expected error for end date before start")
	}

	badFreq := good
	badFreq.Frequency = "fortnightly"
	if err := badFreq.Validate(); err == nil {
		t.Fatalf("expected error for bad frequency")
	}

	noStart := good
	noStart.StartDate = Date{}
	if err := noStart.Validate(); err == nil {
		t.Fatalf("expected error for missing start date")
	}
}

func TestInstanceNote(t *testing.T) {
	re := RecurringExpense{Frequency: Monthly, Note: "gym"}
	if got := re.InstanceNote(); got != "[Recurring monthly] gym" {
		t.Fatalf("got %q", got)
	}
	re.Note = ""
	if got := re.InstanceNote(); got != "Recurring monthly expense" {
		t.Fatalf("got %q", got)
	}
}
