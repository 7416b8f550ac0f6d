package booking

import (
	"math"
	"time"
)

const (
	serviceFeeRate   = 0.15
	longStayDiscount = 0.10
)

// Breakdown itemizes the cost of a stay. All currency amounts are rounded to
// 2 decimal places at the output boundary.
type Breakdown struct {
	PricePerNight float64
	TotalNights   int
	Subtotal      float64
	ServiceFee    float64
	Discount      float64
	TotalAmount   float64
}

// ComputePricing is pure and deterministic: identical inputs always produce an
// identical breakdown. Each component is rounded independently from unrounded
// intermediates, never from already-rounded values.
func ComputePricing(pricePerNight float64, checkIn, checkOut time.Time, discountThresholdNights int) Breakdown {
	if discountThresholdNights <= 0 {
		discountThresholdNights = 7
	}

	d := checkOut.Sub(checkIn)
	nights := int(d / (24 * time.Hour))
	if d%(24*time.Hour) != 0 {
		nights++
	}

	subtotal := pricePerNight * float64(nights)
	serviceFee := subtotal * serviceFeeRate

	var discount float64
	if nights >= discountThresholdNights {
		discount = subtotal * longStayDiscount
	}

	total := subtotal + serviceFee - discount

	return Breakdown{
		PricePerNight: pricePerNight,
		TotalNights:   nights,
		Subtotal:      round2(subtotal),
		ServiceFee:    round2(serviceFee),
		Discount:      round2(discount),
		TotalAmount:   round2(total),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
