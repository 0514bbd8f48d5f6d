// Package pricing computes booking line subtotals. It is deliberately pure:
// no storage, no clock, no side effects.
package pricing

import (
	"time"

	"lodge/shared/failure"
)

const (
	BreakfastWith    = "with"
	BreakfastWithout = "without"
)

const hoursPerDay = 24

// Quote is the priced result of one booking line.
type Quote struct {
	Nights        int
	PricePerNight float64
	Subtotal      float64
}

// Nights counts the calendar nights in the half-open [checkIn, checkOut)
// range. Comparing date components keeps a stay that spans a DST switch at
// its calendar length.
func Nights(checkIn, checkOut time.Time) int {
	in := time.Date(checkIn.Year(), checkIn.Month(), checkIn.Day(), 0, 0, 0, 0, time.UTC)
	out := time.Date(checkOut.Year(), checkOut.Month(), checkOut.Day(), 0, 0, 0, 0, time.UTC)

	return int(out.Sub(in).Hours() / hoursPerDay)
}

// ComputeLineSubtotal prices one room line. The nightly rate is selected by
// the breakfast option, nights follow the half-open [checkIn, checkOut)
// convention, and the subtotal is rate x quantity x nights. Validation runs
// dates first, then the breakfast option, then the quantity.
func ComputeLineSubtotal(priceWith, priceWithout float64, breakfastOption string, quantity int, checkIn, checkOut time.Time) (Quote, error) {
	nights := Nights(checkIn, checkOut)
	if nights <= 0 {
		return Quote{}, failure.OfKind(failure.KindInvalidDateRange, "check_out must be after check_in")
	}

	var pricePerNight float64

	switch breakfastOption {
	case BreakfastWith:
		pricePerNight = priceWith
	case BreakfastWithout:
		pricePerNight = priceWithout
	default:
		return Quote{}, failure.OfKind(failure.KindInvalidBreakfastOption, "unknown breakfast option: %s", breakfastOption)
	}

	if quantity <= 0 {
		return Quote{}, failure.OfKind(failure.KindInvalidQuantity, "quantity must be a positive integer, got %d", quantity)
	}

	return Quote{
		Nights:        nights,
		PricePerNight: pricePerNight,
		Subtotal:      pricePerNight * float64(quantity) * float64(nights),
	}, nil
}
