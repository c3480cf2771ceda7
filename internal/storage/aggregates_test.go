package storage

import (
	"context"
	"testing"
)

func TestSummarize(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	addExpense(t, s, "2026-01-10", 1000, "food", "", "")
	addExpense(t, s, "2026-01-15", 2500, "food", "", "")
	addExpense(t, s, "2026-01-20", 5000, "transport", "", "")
	addExpense(t, s, "2026-02-05", 9999, "food", "", "") // outside range

	sum, err := s.Summarize(ctx, mustDate(t, "2026-01-01"), mustDate(t, "2026-01-31"), "")
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if len(sum.Categories) != 2 {
		t.Fatalf("got %d categories, want 2", len(sum.Categories))
	}
	// Ordered by total descending.
	if sum.Categories[0].Category != "transport" || sum.Categories[0].Total.Cents != 5000 {
		t.Fatalf("first row: %+v", sum.Categories[0])
	}
	if sum.Categories[1].Category != "food" || sum.Categories[1].Total.Cents != 3500 || sum.Categories[1].Count != 2 {
		t.Fatalf("second row: %+v", sum.Categories[1])
	}
	// Per-category totals sum to the grand total.
	var total int64
	for _, ct := range sum.Categories {
		total += ct.Total.Cents
	}
	if sum.GrandTotal.Cents != total {
		t.Fatalf("grand total %d != sum of categories %d", sum.GrandTotal.Cents, total)
	}

	sum, err = s.Summarize(ctx, mustDate(t, "2026-01-01"), mustDate(t, "2026-01-31"), "food")
	if err != nil {
		t.Fatal(err)
	}
	if len(sum.Categories) != 1 || sum.GrandTotal.Cents != 3500 {
		t.Fatalf("category filter: %+v", sum)
	}
}

func TestSummarizeEmptyRange(t *testing.T) {
	s := newTestStore(t)
	sum, err := s.Summarize(context.Background(), mustDate(t, "2026-01-01"), mustDate(t, "2026-01-31"), "")
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if len(sum.Categories) != 0 || sum.GrandTotal.Cents != 0 {
		t.Fatalf("empty ledger should summarize to nothing: %+v", sum)
	}
}

func TestTopExpenses(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	addExpense(t, s, "2026-01-10", 100, "food", "", "small")
	addExpense(t, s, "2026-01-11", 9000, "transport", "", "big")
	addExpense(t, s, "2026-01-12", 4000, "food", "", "medium")
	addExpense(t, s, "2026-01-13", 7000, "health", "", "large")

	top, err := s.TopExpenses(ctx, mustDate(t, "2026-01-01"), mustDate(t, "2026-01-31"), 2)
	if err != nil {
		t.Fatalf("TopExpenses: %v", err)
	}
	if len(top) != 2 {
		t.Fatalf("got %d, want 2", len(top))
	}
	if top[0].Amount.Cents != 9000 || top[1].Amount.Cents != 7000 {
		t.Fatalf("wrong order: %d, %d", top[0].Amount.Cents, top[1].Amount.Cents)
	}
}

func TestMonthlyTrendSparse(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	addExpense(t, s, "2026-01-10", 1000, "food", "", "")
	addExpense(t, s, "2026-01-20", 2000, "food", "", "")
	addExpense(t, s, "2026-03-05", 4000, "transport", "", "")
	addExpense(t, s, "2025-06-01", 9999, "food", "", "") // different year

	trend, err := s.MonthlyTrend(ctx, 2026, "")
	if err != nil {
		t.Fatalf("MonthlyTrend: %v", err)
	}
	// Sparse: only January and March appear.
	if len(trend) != 2 {
		t.Fatalf("got %d months, want 2: %+v", len(trend), trend)
	}
	jan, mar := trend[0], trend[1]
	if jan.Month != 1 || jan.Total.Cents != 3000 || jan.Count != 2 || jan.Average != 15.0 {
		t.Fatalf("january: %+v", jan)
	}
	if mar.Month != 3 || mar.Total.Cents != 4000 || mar.Count != 1 || mar.Average != 40.0 {
		t.Fatalf("march: %+v", mar)
	}

	trend, err = s.MonthlyTrend(ctx, 2026, "food")
	if err != nil {
		t.Fatal(err)
	}
	if len(trend) != 1 || trend[0].Month != 1 {
		t.Fatalf("category filter: %+v", trend)
	}
}

func TestCategoryBreakdown(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	addExpense(t, s, "2026-01-10", 1000, "food", "groceries", "")
	addExpense(t, s, "2026-01-11", 3000, "food", "restaurants", "")
	addExpense(t, s, "2026-01-12", 2000, "food", "restaurants", "")
	addExpense(t, s, "2026-01-13", 4000, "transport", "", "")

	breakdown, err := s.CategoryBreakdown(ctx, mustDate(t, "2026-01-01"), mustDate(t, "2026-01-31"))
	if err != nil {
		t.Fatalf("CategoryBreakdown: %v", err)
	}
	if len(breakdown) != 2 {
		t.Fatalf("got %d categories, want 2", len(breakdown))
	}

	food := breakdown[0]
	if food.Category != "food" {
		t.Fatalf("first category %q", food.Category)
	}
	if food.Total.Cents != 6000 || food.Count != 3 {
		t.Fatalf("food rollup: %+v", food)
	}
	if len(food.Subcategories) != 2 {
		t.Fatalf("food subcategories: %+v", food.Subcategories)
	}
	// Subcategories ordered by total descending.
	if food.Subcategories[0].Subcategory != "restaurants" || food.Subcategories[0].Total.Cents != 5000 {
		t.Fatalf("first subcategory: %+v", food.Subcategories[0])
	}
	if food.Subcategories[1].Subcategory != "groceries" || food.Subcategories[1].Average != 10.0 {
		t.Fatalf("second subcategory: %+v", food.Subcategories[1])
	}
	// Subcategory totals and counts sum to the category's.
	var subTotal, subCount int64
	for _, ss := range food.Subcategories {
		subTotal += ss.Total.Cents
		subCount += ss.Count
	}
	if subTotal != food.Total.Cents || subCount != food.Count {
		t.Fatalf("subcategory rollup mismatch: %d/%d vs %d/%d",
			subTotal, subCount, food.Total.Cents, food.Count)
	}

	transport := breakdown[1]
	if transport.Category != "transport" || len(transport.Subcategories) != 1 ||
		transport.Subcategories[0].Subcategory != "" {
		t.Fatalf("transport: %+v", transport)
	}
}

func TestListExpensesAsc(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	addExpense(t, s, "2026-01-20", 200, "food", "", "")
	addExpense(t, s, "2026-01-10", 100, "food", "", "")

	got, err := s.ListExpensesAsc(ctx, mustDate(t, "2026-01-01"), mustDate(t, "2026-01-31"))
	if err != nil {
		t.Fatalf("ListExpensesAsc: %v", err)
	}
	if len(got) != 2 || got[0].Date.String() != "2026-01-10" {
		t.Fatalf("export ordering wrong: %+v", got)
	}
}
