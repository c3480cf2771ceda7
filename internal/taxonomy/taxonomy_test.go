package taxonomy

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ledger/internal/core"
)

func testTaxonomy() *Taxonomy {
	return New(map[string][]string{
		"food":      {"groceries", "restaurants"},
		"transport": {"fuel", "transit"},
		"health":    {},
	})
}

func TestValidate(t *testing.T) {
	tax := testTaxonomy()

	cases := []struct {
		name        string
		category    string
		subcategory string
		ok          bool
	}{
		{"known category, known subcategory", "food", "groceries", true},
		{"known category, empty subcategory", "food", "", true},
		{"category with no subcategories", "health", "", true},
		{"unknown category", "toys", "", false},
		{"unknown subcategory", "food", "fuel", false},
		{"subcategory from another category", "transport", "groceries", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tax.Validate(tc.category, tc.subcategory)
			if tc.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tc.ok {
				if err == nil {
					t.Fatalf("expected error")
				}
				if !core.IsValidation(err) {
					t.Fatalf("expected ValidationError, got %T", err)
				}
			}
		})
	}
}

func TestValidateErrorEnumeratesAlternatives(t *testing.T) {
	tax := testTaxonomy()

	err := tax.Validate("toys", "")
	if err == nil {
		t.Fatalf("expected error")
	}
	msg := err.Error()
	for _, want := range []string{"toys", "food", "health", "transport"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("error %q does not mention %q", msg, want)
		}
	}

	err = tax.Validate("food", "fuel")
	if err == nil {
		t.Fatalf("expected error")
	}
	msg = err.Error()
	for _, want := range []string{"fuel", "groceries", "restaurants"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("error %q does not mention %q", msg, want)
		}
	}
}

func TestLoadJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "categories.json")
	content := `{"food": ["groceries"], "travel": []}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	tax := Load(path)
	if err := tax.Validate("food", "groceries"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := tax.Categories(); len(got) != 2 || got[0] != "food" || got[1] != "travel" {
		t.Fatalf("Categories() = %v", got)
	}
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "categories.yaml")
	content := "food:\n  - groceries\n  - restaurants\ntravel: []\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	tax := Load(path)
	if err := tax.Validate("food", "restaurants"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoadFailureDegradesToEmpty(t *testing.T) {
	tax := Load(filepath.Join(t.TempDir(), "missing.json"))
	if err := tax.Validate("food", ""); err == nil {
		t.Fatalf("empty taxonomy must reject every category")
	}
	if got := tax.Categories(); len(got) != 0 {
		t.Fatalf("expected no categories, got %v", got)
	}

	// Malformed file degrades the same way.
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	tax = Load(path)
	if err := tax.Validate("food", ""); err == nil {
		t.Fatalf("broken taxonomy must reject every category")
	}
}

func TestSubcategories(t *testing.T) {
	tax := testTaxonomy()
	subs, ok := tax.Subcategories("food")
	if !ok || len(subs) != 2 {
		t.Fatalf("Subcategories(food) = %v, %v", subs, ok)
	}
	if _, ok := tax.Subcategories("toys"); ok {
		t.Fatalf("expected ok=false for unknown category")
	}
}
