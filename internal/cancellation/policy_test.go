package cancellation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"islandrides-backend/internal/money"
)

var now = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func pickupIn(hours float64) time.Time {
	return now.Add(time.Duration(hours * float64(time.Hour)))
}

func TestFeePercentFor(t *testing.T) {
	tests := []struct {
		hours    float64
		expected int64
	}{
		{10, 30},
		{23, 30},
		{23.999, 30},
		{24, 10}, // boundary belongs to the middle tier
		{48, 10},
		{50, 10},
		{71.999, 10},
		{72, 0}, // boundary belongs to the free tier
		{100, 0},
		{-5, 30}, // pickup already passed
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, FeePercentFor(tt.hours), "hours=%v", tt.hours)
	}
}

func TestFeeIsMonotonicallyNonIncreasing(t *testing.T) {
	prev := int64(100)
	for h := 0.0; h <= 120; h += 0.5 {
		pct := FeePercentFor(h)
		assert.LessOrEqual(t, pct, prev, "fee percent rose at h=%v", h)
		prev = pct
	}
}

func TestEvaluate(t *testing.T) {
	total := money.FromFloat(300)

	t.Run("Within 24 hours", func(t *testing.T) {
		q := Evaluate(total, pickupIn(10), now)
		assert.Equal(t, int64(30), q.FeePercent)
		assert.Equal(t, money.Cents(9000), q.FeeCents) // 90.00
		assert.Equal(t, money.Cents(0), q.RefundCents)
		assert.True(t, q.RequiresPayment())
	})

	t.Run("Between 24 and 72 hours", func(t *testing.T) {
		q := Evaluate(total, pickupIn(50), now)
		assert.Equal(t, int64(10), q.FeePercent)
		assert.Equal(t, money.Cents(3000), q.FeeCents) // 30.00
		assert.True(t, q.RequiresPayment())
	})

	t.Run("More than 72 hours", func(t *testing.T) {
		q := Evaluate(total, pickupIn(100), now)
		assert.Equal(t, int64(0), q.FeePercent)
		assert.Equal(t, money.Cents(0), q.FeeCents)
		assert.False(t, q.RequiresPayment(), "free cancellation must skip the payment step")
	})

	t.Run("Fee rounds half-up", func(t *testing.T) {
		// 100.05 * 30% = 30.015 -> 30.02
		q := Evaluate(money.Cents(10005), pickupIn(10), now)
		assert.Equal(t, money.Cents(3002), q.FeeCents)
	})

	t.Run("Refund is always zero", func(t *testing.T) {
		for _, h := range []float64{5, 30, 200} {
			q := Evaluate(total, pickupIn(h), now)
			assert.Equal(t, money.Cents(0), q.RefundCents)
		}
	})
}
