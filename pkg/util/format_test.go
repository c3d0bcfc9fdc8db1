package util

import "testing"

func TestFormatPriceCrypto(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{67412.37, "67,412"},
		{999.4, "999"},
		{1234567.9, "1,234,568"},
	}
	for _, c := range cases {
		if got := FormatPrice(c.in, true); got != c.want {
			t.Fatalf("FormatPrice(%v, crypto) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatPriceStandard(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{2391.8, "2,391.80"},
		{28.456, "28.46"},
		{5234.567, "5,234.57"},
		{-1234.5, "-1,234.50"},
	}
	for _, c := range cases {
		if got := FormatPrice(c.in, false); got != c.want {
			t.Fatalf("FormatPrice(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestRound2(t *testing.T) {
	if got := Round2(9.876); got != 9.88 {
		t.Fatalf("Round2(9.876) = %v", got)
	}
	if got := Round2(1.234); got != 1.23 {
		t.Fatalf("Round2(1.234) = %v", got)
	}
	if got := Round2(-9.876); got != -9.88 {
		t.Fatalf("Round2(-9.876) = %v", got)
	}
}
