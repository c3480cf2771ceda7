package core

import "testing"

func TestParseMoney(t *testing.T) {
	cases := []struct {
		in    string
		cents int64
		ok    bool
	}{
		{"12.34", 1234, true},
		{"12,34", 1234, true},
		{"12", 1200, true},
		{"0.01", 1, true},
		{".50", 50, true},
		{"12.345", 1234, true}, // rounds down
		{"12.346", 1235, true}, // rounds up
		{"0", 0, false},
		{"0.00", 0, false},
		{"-5", 0, false},
		{"+5", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		m, err := ParseMoney(tc.in)
		if tc.ok && err != nil {
			t.Fatalf("ParseMoney(%q): unexpected error %v", tc.in, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("ParseMoney(%q): expected error", tc.in)
		}
		if tc.ok && m.Cents != tc.cents {
			t.Fatalf("ParseMoney(%q) = %d cents, want %d", tc.in, m.Cents, tc.cents)
		}
	}
}

func TestMoneyFromFloat(t *testing.T) {
	m, err := MoneyFromFloat(42.50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Cents != 4250 {
		t.Fatalf("got %d cents, want 4250", m.Cents)
	}
	// 19.99 is not exactly representable; rounding must still land on 1999.
	m, err = MoneyFromFloat(19.99)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Cents != 1999 {
		t.Fatalf("got %d cents, want 1999", m.Cents)
	}
	for _, bad := range []float64{0, -1, -0.001} {
		if _, err := MoneyFromFloat(bad); err == nil {
			t.Fatalf("MoneyFromFloat(%v): expected error", bad)
		}
	}
}

func TestMoneyString(t *testing.T) {
	if got := (Money{Cents: 1234}).String(); got != "12.34" {
		t.Fatalf("got %q, want %q", got, "12.34")
	}
	if got := (Money{Cents: 100}).Float(); got != 1.0 {
		t.Fatalf("got %v, want 1.0", got)
	}
}
