// Package pricing turns a (rate, date range, amenity set) tuple into a
// price breakdown. Computation is pure and deterministic; every screen
// routes through it instead of carrying its own formula.
package pricing

import (
	"fmt"
	"time"

	"islandrides-backend/internal/domain"
	"islandrides-backend/internal/errs"
	"islandrides-backend/internal/money"
)

const dateLayout = "2006-01-02"

// TaxRatePercent is the checkout tax, applied to the base price only.
const TaxRatePercent = 15

// Breakdown is the immutable result of a price computation. Amounts
// are exact cents; rounding only ever happened at percentage
// application.
type Breakdown struct {
	DurationDays int32       `json:"duration_days"`
	BaseCents    money.Cents `json:"base_cents"`
	AmenityCents money.Cents `json:"amenity_cents"`
	TaxCents     money.Cents `json:"tax_cents"`
	TotalCents   money.Cents `json:"total_cents"`
}

// DurationDays counts rental days between two yyyy-mm-dd dates using
// the standardized inclusive rule: floor(dropoff − pickup in days) + 1,
// minimum 1. A dropoff before the pickup is ErrInvalidRange.
func DurationDays(pickupDate, dropoffDate string) (int32, error) {
	pickup, err := time.Parse(dateLayout, pickupDate)
	if err != nil {
		return 0, fmt.Errorf("%w: bad pickup date %q", errs.ErrInvalidRange, pickupDate)
	}
	dropoff, err := time.Parse(dateLayout, dropoffDate)
	if err != nil {
		return 0, fmt.Errorf("%w: bad dropoff date %q", errs.ErrInvalidRange, dropoffDate)
	}

	days := int32(dropoff.Sub(pickup).Hours()/24) + 1
	if days < 1 {
		return 0, fmt.Errorf("%w: dropoff %s before pickup %s", errs.ErrInvalidRange, dropoffDate, pickupDate)
	}
	return days, nil
}

// AmenityCost sums the catalog prices of the selection. A selection
// containing "none" (or an empty one) costs nothing; an identifier
// outside the catalog is rejected.
func AmenityCost(amenityIDs []string) (money.Cents, error) {
	if domain.IsNoneSelection(amenityIDs) {
		return 0, nil
	}
	var total money.Cents
	for _, id := range amenityIDs {
		amenity, ok := domain.AmenityByID(id)
		if !ok {
			return 0, fmt.Errorf("unknown amenity %q", id)
		}
		total += amenity.PriceCents
	}
	return total, nil
}

// ComputeQuote computes the full breakdown for a rental. withTax
// selects the checkout variant, which adds 15% of the base price; the
// car-detail confirmation flow passes false and has no tax line.
func ComputeQuote(pricePerDay money.Cents, pickupDate, dropoffDate string, amenityIDs []string, withTax bool) (Breakdown, error) {
	if pricePerDay <= 0 {
		return Breakdown{}, fmt.Errorf("non-positive daily rate %s", pricePerDay)
	}

	days, err := DurationDays(pickupDate, dropoffDate)
	if err != nil {
		return Breakdown{}, err
	}

	amenityCents, err := AmenityCost(amenityIDs)
	if err != nil {
		return Breakdown{}, err
	}

	base := pricePerDay.Mul(int64(days))

	var tax money.Cents
	if withTax {
		tax = base.Percent(TaxRatePercent)
	}

	return Breakdown{
		DurationDays: days,
		BaseCents:    base,
		AmenityCents: amenityCents,
		TaxCents:     tax,
		TotalCents:   base + amenityCents + tax,
	}, nil
}
