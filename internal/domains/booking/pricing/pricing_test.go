package pricing_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"lodge/internal/domains/booking/pricing"
	"lodge/shared/failure"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestComputeLineSubtotal(t *testing.T) {
	tests := []struct {
		name            string
		priceWith       float64
		priceWithout    float64
		breakfastOption string
		quantity        int
		checkIn         time.Time
		checkOut        time.Time
		want            pricing.Quote
		wantKind        failure.Kind
	}{
		{
			name:            "two nights with breakfast",
			priceWith:       600000,
			priceWithout:    500000,
			breakfastOption: pricing.BreakfastWith,
			quantity:        1,
			checkIn:         date(2026, 9, 1),
			checkOut:        date(2026, 9, 3),
			want: pricing.Quote{
				Nights:        2,
				PricePerNight: 600000,
				Subtotal:      1200000,
			},
		},
		{
			name:            "three nights without breakfast two rooms",
			priceWith:       600000,
			priceWithout:    500000,
			breakfastOption: pricing.BreakfastWithout,
			quantity:        2,
			checkIn:         date(2026, 9, 1),
			checkOut:        date(2026, 9, 4),
			want: pricing.Quote{
				Nights:        3,
				PricePerNight: 500000,
				Subtotal:      3000000,
			},
		},
		{
			name:            "single night",
			priceWith:       350000,
			priceWithout:    300000,
			breakfastOption: pricing.BreakfastWithout,
			quantity:        1,
			checkIn:         date(2026, 9, 1),
			checkOut:        date(2026, 9, 2),
			want: pricing.Quote{
				Nights:        1,
				PricePerNight: 300000,
				Subtotal:      300000,
			},
		},
		{
			name:            "same day stay is rejected",
			priceWith:       600000,
			priceWithout:    500000,
			breakfastOption: pricing.BreakfastWith,
			quantity:        1,
			checkIn:         date(2026, 9, 1),
			checkOut:        date(2026, 9, 1),
			wantKind:        failure.KindInvalidDateRange,
		},
		{
			name:            "inverted dates are rejected",
			priceWith:       600000,
			priceWithout:    500000,
			breakfastOption: pricing.BreakfastWith,
			quantity:        1,
			checkIn:         date(2026, 9, 5),
			checkOut:        date(2026, 9, 1),
			wantKind:        failure.KindInvalidDateRange,
		},
		{
			name:            "zero quantity is rejected",
			priceWith:       600000,
			priceWithout:    500000,
			breakfastOption: pricing.BreakfastWith,
			quantity:        0,
			checkIn:         date(2026, 9, 1),
			checkOut:        date(2026, 9, 3),
			wantKind:        failure.KindInvalidQuantity,
		},
		{
			name:            "negative quantity is rejected",
			priceWith:       600000,
			priceWithout:    500000,
			breakfastOption: pricing.BreakfastWithout,
			quantity:        -1,
			checkIn:         date(2026, 9, 1),
			checkOut:        date(2026, 9, 3),
			wantKind:        failure.KindInvalidQuantity,
		},
		{
			name:            "unknown breakfast option is rejected",
			priceWith:       600000,
			priceWithout:    500000,
			breakfastOption: "continental",
			quantity:        1,
			checkIn:         date(2026, 9, 1),
			checkOut:        date(2026, 9, 3),
			wantKind:        failure.KindInvalidBreakfastOption,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := pricing.ComputeLineSubtotal(tt.priceWith, tt.priceWithout, tt.breakfastOption, tt.quantity, tt.checkIn, tt.checkOut)

			if tt.wantKind != "" {
				assert.Error(t, err)
				assert.True(t, failure.IsKind(err, tt.wantKind))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComputeLineSubtotal_DateRangeCheckedFirst(t *testing.T) {
	// An invalid range must win over an invalid option so the caller gets the
	// most actionable message.
	_, err := pricing.ComputeLineSubtotal(600000, 500000, "continental", 0, date(2026, 9, 3), date(2026, 9, 1))

	assert.True(t, failure.IsKind(err, failure.KindInvalidDateRange))
}

func TestComputeLineSubtotal_OptionCheckedBeforeQuantity(t *testing.T) {
	_, err := pricing.ComputeLineSubtotal(600000, 500000, "continental", 0, date(2026, 9, 1), date(2026, 9, 3))

	assert.True(t, failure.IsKind(err, failure.KindInvalidBreakfastOption))
}

// A stay spanning a spring-forward day is an hour short in wall time but
// still two calendar nights.
func TestComputeLineSubtotal_SpringForwardKeepsCalendarNights(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}

	checkIn := time.Date(2026, 3, 7, 0, 0, 0, 0, loc)
	checkOut := time.Date(2026, 3, 9, 0, 0, 0, 0, loc)

	quote, err := pricing.ComputeLineSubtotal(100000, 80000, pricing.BreakfastWithout, 1, checkIn, checkOut)

	assert.NoError(t, err)
	assert.Equal(t, 2, quote.Nights)
	assert.Equal(t, float64(160000), quote.Subtotal)
}
