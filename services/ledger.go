package services

import (
	"github.com/shopspring/decimal"

	"frontdesk-backend/models"
	"frontdesk-backend/utils"
)

// StayCharge is one room-charge line: nights already resolved through the
// date rules (same-day = 1, half-night floor 0.5).
type StayCharge struct {
	Nights float64 `json:"nights"`
	Rate   float64 `json:"rate"`
}

// ChargeFromSnapshot turns a stay snapshot (persisted or preview) into a
// room-charge line.
func ChargeFromSnapshot(st models.StaySnapshot) StayCharge {
	return StayCharge{Nights: utils.Nights(st.CheckIn, st.CheckOut), Rate: st.Rate}
}

// IncludeSet restricts which record ids participate in a staged ledger.
// A nil id set means "include everything" for that collection, so identity
// mode is simply a LedgerInput with no IncludeSet.
type IncludeSet struct {
	Orders   map[uint]bool
	Extras   map[uint]bool
	Payments map[uint]bool
}

func included(set map[uint]bool, id uint) bool {
	if set == nil {
		return true
	}
	return set[id]
}

// LedgerInput is everything the aggregator needs for one computation. The
// record slices must already be filtered to the guest id set in question.
type LedgerInput struct {
	Stays    []StayCharge
	Orders   []models.Order
	Extras   []models.CustomItem
	Payments []models.Payment

	DiscountFlat    float64
	DiscountPercent float64
	TaxRate         float64

	Include *IncludeSet
}

// Totals is the computed ledger view model. All values are rounded to two
// decimal places for on-screen display.
type Totals struct {
	Room     float64 `json:"room"`
	Orders   float64 `json:"orders"`
	Extras   float64 `json:"extras"`
	Subtotal float64 `json:"subtotal"`
	Discount float64 `json:"discount"`
	Tax      float64 `json:"tax"`
	Grand    float64 `json:"grand"`
	Paid     float64 `json:"paid"`
	Due      float64 `json:"due"`
}

// InvoiceTotals rounds every figure to whole currency units for print.
type InvoiceTotals struct {
	Room     int64 `json:"room"`
	Orders   int64 `json:"orders"`
	Extras   int64 `json:"extras"`
	Subtotal int64 `json:"subtotal"`
	Discount int64 `json:"discount"`
	Tax      int64 `json:"tax"`
	Grand    int64 `json:"grand"`
	Paid     int64 `json:"paid"`
	Due      int64 `json:"due"`
}

func round2(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}

// ComputeLedger runs the billing arithmetic:
//
//	subtotal = room + orders + extras
//	discount = clamp(flat + pct/100*subtotal, 0, subtotal)
//	tax      = (subtotal - discount) * taxRate/100
//	grand    = subtotal - discount + tax
//	due      = grand - paid
func ComputeLedger(in LedgerInput) Totals {
	room := decimal.Zero
	for _, st := range in.Stays {
		room = room.Add(decimal.NewFromFloat(st.Nights).Mul(decimal.NewFromFloat(st.Rate)))
	}

	var inc *IncludeSet
	if in.Include != nil {
		inc = in.Include
	} else {
		inc = &IncludeSet{}
	}

	orders := decimal.Zero
	for _, o := range in.Orders {
		if included(inc.Orders, o.ID) {
			orders = orders.Add(decimal.NewFromFloat(o.Amount))
		}
	}
	extras := decimal.Zero
	for _, x := range in.Extras {
		if included(inc.Extras, x.ID) {
			extras = extras.Add(decimal.NewFromFloat(x.Amount))
		}
	}
	paid := decimal.Zero
	for _, p := range in.Payments {
		if included(inc.Payments, p.ID) {
			paid = paid.Add(decimal.NewFromFloat(p.Amount))
		}
	}

	subtotal := room.Add(orders).Add(extras).Round(2)

	hundred := decimal.NewFromInt(100)
	discount := decimal.NewFromFloat(in.DiscountFlat).
		Add(decimal.NewFromFloat(in.DiscountPercent).Div(hundred).Mul(subtotal)).
		Round(2)
	if discount.GreaterThan(subtotal) {
		discount = subtotal
	}
	if discount.IsNegative() {
		discount = decimal.Zero
	}

	tax := subtotal.Sub(discount).Mul(decimal.NewFromFloat(in.TaxRate).Div(hundred)).Round(2)
	grand := subtotal.Sub(discount).Add(tax).Round(2)
	due := grand.Sub(paid.Round(2)).Round(2)

	return Totals{
		Room:     round2(room),
		Orders:   round2(orders),
		Extras:   round2(extras),
		Subtotal: round2(subtotal),
		Discount: round2(discount),
		Tax:      round2(tax),
		Grand:    round2(grand),
		Paid:     round2(paid),
		Due:      round2(due),
	}
}

// Invoice rounds the on-screen totals to whole currency units for the
// print/invoice renderer.
func (t Totals) Invoice() InvoiceTotals {
	r := func(f float64) int64 {
		return decimal.NewFromFloat(f).Round(0).IntPart()
	}
	return InvoiceTotals{
		Room:     r(t.Room),
		Orders:   r(t.Orders),
		Extras:   r(t.Extras),
		Subtotal: r(t.Subtotal),
		Discount: r(t.Discount),
		Tax:      r(t.Tax),
		Grand:    r(t.Grand),
		Paid:     r(t.Paid),
		Due:      r(t.Due),
	}
}
