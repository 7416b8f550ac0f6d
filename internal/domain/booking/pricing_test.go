//go:build unit

package booking_test

import (
	"testing"
	"time"

	"stayhub/internal/domain/booking"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestComputePricing(t *testing.T) {
	t.Run("long stay earns the discount", func(t *testing.T) {
		got := booking.ComputePricing(100, date(2024, 1, 1), date(2024, 1, 8), 7)

		want := booking.Breakdown{
			PricePerNight: 100,
			TotalNights:   7,
			Subtotal:      700.00,
			ServiceFee:    105.00,
			Discount:      70.00,
			TotalAmount:   735.00,
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("breakdown mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("short stay pays no discount", func(t *testing.T) {
		got := booking.ComputePricing(100, date(2024, 1, 1), date(2024, 1, 3), 7)

		assert.Equal(t, 2, got.TotalNights)
		assert.Equal(t, 200.00, got.Subtotal)
		assert.Equal(t, 30.00, got.ServiceFee)
		assert.Equal(t, 0.00, got.Discount)
		assert.Equal(t, 230.00, got.TotalAmount)
	})

	t.Run("stay exactly at threshold gets the discount", func(t *testing.T) {
		got := booking.ComputePricing(50, date(2024, 3, 1), date(2024, 3, 4), 3)
		assert.Equal(t, 3, got.TotalNights)
		assert.Equal(t, 15.00, got.Discount)
	})

	t.Run("partial day rounds nights up", func(t *testing.T) {
		checkIn := time.Date(2024, 1, 1, 15, 0, 0, 0, time.UTC)
		checkOut := time.Date(2024, 1, 2, 11, 0, 0, 0, time.UTC)

		got := booking.ComputePricing(100, checkIn, checkOut, 7)
		assert.Equal(t, 1, got.TotalNights)
	})

	t.Run("components round independently to 2 decimals", func(t *testing.T) {
		// 3 nights at 33.33: subtotal 99.99, fee 14.9985 -> 15.00
		got := booking.ComputePricing(33.33, date(2024, 1, 1), date(2024, 1, 4), 7)

		assert.Equal(t, 99.99, got.Subtotal)
		assert.Equal(t, 15.00, got.ServiceFee)
		assert.Equal(t, 0.00, got.Discount)
		assert.Equal(t, 114.99, got.TotalAmount)
	})

	t.Run("zero threshold falls back to 7 nights", func(t *testing.T) {
		withDefault := booking.ComputePricing(100, date(2024, 1, 1), date(2024, 1, 8), 0)
		assert.Equal(t, 70.00, withDefault.Discount)

		short := booking.ComputePricing(100, date(2024, 1, 1), date(2024, 1, 7), 0)
		assert.Equal(t, 0.00, short.Discount)
	})

	t.Run("deterministic for identical inputs", func(t *testing.T) {
		a := booking.ComputePricing(123.45, date(2024, 6, 1), date(2024, 6, 10), 7)
		b := booking.ComputePricing(123.45, date(2024, 6, 1), date(2024, 6, 10), 7)
		assert.Equal(t, a, b)
	})
}
