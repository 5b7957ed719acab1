package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"frontdesk-backend/models"
)

func TestComputeLedgerBasic(t *testing.T) {
	totals := ComputeLedger(LedgerInput{
		Stays: []StayCharge{{Nights: 3, Rate: 3500}},
		Orders: []models.Order{
			{ID: 1, Amount: 1200},
			{ID: 2, Amount: 800},
		},
		Payments: []models.Payment{{ID: 1, Amount: 5000}},
	})

	assert.Equal(t, 10500.0, totals.Room)
	assert.Equal(t, 2000.0, totals.Orders)
	assert.Equal(t, 12500.0, totals.Subtotal)
	assert.Equal(t, 0.0, totals.Discount)
	assert.Equal(t, 12500.0, totals.Grand)
	assert.Equal(t, 5000.0, totals.Paid)
	assert.Equal(t, 7500.0, totals.Due)
}

func TestComputeLedgerDiscountClamp(t *testing.T) {
	// 50% of 10000 plus a flat 8000 exceeds the subtotal; the discount
	// clamps so the bill never goes negative.
	totals := ComputeLedger(LedgerInput{
		Stays:           []StayCharge{{Nights: 2, Rate: 5000}},
		DiscountPercent: 50,
		DiscountFlat:    8000,
	})

	assert.Equal(t, 10000.0, totals.Subtotal)
	assert.Equal(t, 10000.0, totals.Discount)
	assert.Equal(t, 0.0, totals.Grand)
	assert.Equal(t, 0.0, totals.Due)
}

func TestComputeLedgerNegativeDiscountIgnored(t *testing.T) {
	totals := ComputeLedger(LedgerInput{
		Stays:        []StayCharge{{Nights: 1, Rate: 3000}},
		DiscountFlat: -500,
	})
	assert.Equal(t, 0.0, totals.Discount)
	assert.Equal(t, 3000.0, totals.Grand)
}

func TestComputeLedgerTaxAfterDiscount(t *testing.T) {
	totals := ComputeLedger(LedgerInput{
		Stays:        []StayCharge{{Nights: 2, Rate: 5000}},
		DiscountFlat: 2000,
		TaxRate:      16,
	})

	// tax applies to the discounted base: (10000 - 2000) * 16%
	assert.Equal(t, 1280.0, totals.Tax)
	assert.Equal(t, 9280.0, totals.Grand)
}

func TestComputeLedgerSignedExtras(t *testing.T) {
	totals := ComputeLedger(LedgerInput{
		Stays: []StayCharge{{Nights: 1, Rate: 4000}},
		Extras: []models.CustomItem{
			{ID: 1, Description: "minibar", Amount: 600},
			{ID: 2, Description: "goodwill credit", Amount: -1000},
		},
	})
	assert.Equal(t, -400.0, totals.Extras)
	assert.Equal(t, 3600.0, totals.Subtotal)
}

func TestComputeLedgerOverpaymentGoesNegative(t *testing.T) {
	totals := ComputeLedger(LedgerInput{
		Stays:    []StayCharge{{Nights: 1, Rate: 5000}},
		Payments: []models.Payment{{ID: 1, Amount: 10000}},
	})
	assert.Equal(t, -5000.0, totals.Due)
}

func TestComputeLedgerIncludeSets(t *testing.T) {
	orders := []models.Order{
		{ID: 1, Amount: 1000},
		{ID: 2, Amount: 2000},
	}
	pays := []models.Payment{
		{ID: 7, Amount: 500},
		{ID: 8, Amount: 700},
	}

	totals := ComputeLedger(LedgerInput{
		Stays:    []StayCharge{{Nights: 1, Rate: 3000}},
		Orders:   orders,
		Payments: pays,
		Include: &IncludeSet{
			Orders:   map[uint]bool{2: true},
			Payments: map[uint]bool{7: true},
		},
	})

	assert.Equal(t, 2000.0, totals.Orders)
	assert.Equal(t, 500.0, totals.Paid)

	// nil sets include everything
	all := ComputeLedger(LedgerInput{
		Stays:    []StayCharge{{Nights: 1, Rate: 3000}},
		Orders:   orders,
		Payments: pays,
	})
	assert.Equal(t, 3000.0, all.Orders)
	assert.Equal(t, 1200.0, all.Paid)
}

func TestComputeLedgerHalfNightCharge(t *testing.T) {
	totals := ComputeLedger(LedgerInput{
		Stays: []StayCharge{{Nights: 0.5, Rate: 3000}},
	})
	assert.Equal(t, 1500.0, totals.Room)
}

func TestInvoiceTotalsWholeUnits(t *testing.T) {
	totals := Totals{Room: 1499.5, Grand: 1499.5, Due: 1499.49}
	inv := totals.Invoice()
	assert.Equal(t, int64(1500), inv.Room)
	assert.Equal(t, int64(1500), inv.Grand)
	assert.Equal(t, int64(1499), inv.Due)
}

func TestChargeFromSnapshot(t *testing.T) {
	ch := ChargeFromSnapshot(models.StaySnapshot{
		CheckIn:  "2025-03-10",
		CheckOut: "2025-03-13",
		Rate:     3500,
	})
	assert.Equal(t, 3.0, ch.Nights)
	assert.Equal(t, 3500.0, ch.Rate)

	sameDay := ChargeFromSnapshot(models.StaySnapshot{
		CheckIn:  "2025-03-10",
		CheckOut: "2025-03-10",
		Rate:     3500,
	})
	assert.Equal(t, 1.0, sameDay.Nights)
}
