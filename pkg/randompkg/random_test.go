package randompkg

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestMoneyAmountBetween(t *testing.T) {
	low, high := decimal.NewFromInt(10), decimal.NewFromInt(20)

	for i := 0; i < 200; i++ {
		got := MoneyAmountBetween(10, 20)

		if got.LessThan(low) || got.GreaterThan(high) {
			t.Fatalf("MoneyAmountBetween(10, 20)=%v, out of range", got)
		}

		if !got.Equal(got.Round(2)) {
			t.Fatalf("MoneyAmountBetween(10, 20)=%v, has more than two decimals", got)
		}
	}
}

func TestIntBetween(t *testing.T) {
	for i := 0; i < 200; i++ {
		if got := IntBetween(1, 3); got < 1 || got > 3 {
			t.Fatalf("IntBetween(1, 3)=%d, out of range", got)
		}
	}
}
