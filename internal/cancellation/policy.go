// Package cancellation computes the monetary consequence of cancelling
// a confirmed reservation. The policy is non-refundable: the fee, when
// owed, is an additional charge, never a deduction from a refund.
package cancellation

import (
	"time"

	"islandrides-backend/internal/money"
)

// Fee tiers by hours remaining until pickup. Boundaries are inclusive
// on the lenient side: exactly 24h owes 10%, exactly 72h owes nothing.
const (
	lateThresholdHours  = 24
	earlyThresholdHours = 72

	lateFeePercent = 30
	midFeePercent  = 10
)

// Quote is an ephemeral fee computation shown to the user before any
// payment is attempted.
type Quote struct {
	HoursToPickup float64     `json:"hours_to_pickup"`
	FeePercent    int64       `json:"fee_percent"`
	FeeCents      money.Cents `json:"fee_cents"`
	RefundCents   money.Cents `json:"refund_cents"`
}

// RequiresPayment reports whether the cancel flow must capture a
// payment before the status change is committed.
func (q Quote) RequiresPayment() bool {
	return q.FeeCents > 0
}

// FeePercentFor returns the tier percentage for a given number of
// hours to pickup.
func FeePercentFor(hoursToPickup float64) int64 {
	switch {
	case hoursToPickup < lateThresholdHours:
		return lateFeePercent
	case hoursToPickup < earlyThresholdHours:
		return midFeePercent
	default:
		return 0
	}
}

// Evaluate computes the cancellation quote for a reservation total and
// pickup moment. Refund is always zero under the current policy.
func Evaluate(totalPrice money.Cents, pickupAt, now time.Time) Quote {
	hours := pickupAt.Sub(now).Hours()
	pct := FeePercentFor(hours)
	return Quote{
		HoursToPickup: hours,
		FeePercent:    pct,
		FeeCents:      totalPrice.Percent(pct),
		RefundCents:   0,
	}
}
