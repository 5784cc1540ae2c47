package util

import "testing"

func TestFormatCurrency(t *testing.T) {
	if got := FormatCurrency(1234.5); got != "$1,234.50" {
		t.Fatalf("unexpected %q", got)
	}
	if got := FormatCurrency(2_500_000); got != "$2.5M" {
		t.Fatalf("unexpected %q", got)
	}
}

func TestFormatCompact(t *testing.T) {
	cases := map[float64]string{
		950:           "950",
		1_500:         "1.5K",
		2_000_000:     "2M",
		3_250_000_000: "3.25B",
	}
	for v, want := range cases {
		if got := FormatCompact(v); got != want {
			t.Fatalf("FormatCompact(%v) = %q, want %q", v, got, want)
		}
	}
}

func TestFormatPrice(t *testing.T) {
	if got := FormatPrice(0); got != "$0" {
		t.Fatalf("unexpected %q", got)
	}
	if got := FormatPrice(0.00004512); got != "$0.00004512" {
		t.Fatalf("unexpected %q", got)
	}
	if got := FormatPrice(0.4512); got != "$0.4512" {
		t.Fatalf("unexpected %q", got)
	}
	if got := FormatPrice(12.3); got != "$12.30" {
		t.Fatalf("unexpected %q", got)
	}
}

func TestFormatPercent(t *testing.T) {
	if got := FormatPercent(12.34); got != "+12.3%" {
		t.Fatalf("unexpected %q", got)
	}
	if got := FormatPercent(-5); got != "-5.0%" {
		t.Fatalf("unexpected %q", got)
	}
}

func TestTruncateAddress(t *testing.T) {
	got := TruncateAddress("So11111111111111111111111111111111111111112")
	if got != "So1111...1112" {
		t.Fatalf("unexpected %q", got)
	}
	if got := TruncateAddress("short"); got != "short" {
		t.Fatalf("unexpected %q", got)
	}
}
