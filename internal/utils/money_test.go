package utils

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestRound2HalfUp(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"5616.005", "5616.01"},
		{"5616.004", "5616.00"},
		{"0.125", "0.13"},
		{"31200", "31200.00"},
		{"0", "0.00"},
	}
	for _, tc := range cases {
		in, err := decimal.NewFromString(tc.in)
		if err != nil {
			t.Fatalf("bad case %q: %v", tc.in, err)
		}
		if got := FormatAmount(Round2(in)); got != tc.want {
			t.Errorf("Round2(%s) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestDecimalOrZero(t *testing.T) {
	if !DecimalOrZero("").IsZero() {
		t.Error("empty string should parse to zero")
	}
	if !DecimalOrZero("not-a-number").IsZero() {
		t.Error("garbage should parse to zero")
	}
	if got := DecimalOrZero("12.50"); !got.Equal(decimal.RequireFromString("12.5")) {
		t.Errorf("got %s, want 12.5", got)
	}
}
