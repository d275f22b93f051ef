package pricing

import (
	"github.com/shopspring/decimal"

	"restaurant-pricing/internal/models"
)

// buildBreakdown assembles the per-item rows and cart totals from the
// accumulator state. Fails closed: a negative final price is clamped
// to 0 and surfaced as a data-integrity warning, never charged.
func buildBreakdown(acc *Accumulator, lines []*line) *models.ComputeResult {
	result := &models.ComputeResult{
		Items: make([]models.ItemBreakdown, 0, len(lines)),
	}

	total := decimal.Zero
	for _, ln := range lines {
		if ln.unavailable {
			result.Items = append(result.Items, models.ItemBreakdown{
				ItemRef:           ln.ref,
				Quantity:          ln.quantity,
				Unavailable:       true,
				UnavailableReason: ln.unavailableReason,
			})
			continue
		}

		row := models.ItemBreakdown{
			ItemRef:      ln.ref,
			Quantity:     ln.quantity,
			OptionsTotal: round2(ln.optionsTotal()),
		}

		rec := acc.Record(ln.ref)
		if rec == nil {
			row.UnitPrice = round2(ln.effectiveUnit)
			row.Subtotal = round2(ln.effectiveSubtotal())
			row.OriginalPrice = round2(ln.effectiveSubtotal().Add(ln.optionsTotal()))
			row.DiscountAmount = decimal.Zero
			row.FinalPrice = row.OriginalPrice
			row.IsDailySpecial = ln.isDailySpecial
		} else {
			if rec.IsDailySpecial {
				row.UnitPrice = round2(ln.effectiveUnit)
			} else {
				row.UnitPrice = round2(ln.normalUnit)
			}
			row.Subtotal = round2(row.UnitPrice.Mul(ln.qty()))
			row.OriginalPrice = rec.OriginalPrice
			row.DiscountAmount = rec.DiscountAmount
			row.FinalPrice = rec.FinalPrice
			row.IsDailySpecial = rec.IsDailySpecial
			row.AppliedPromotion = rec.Applied

			if row.FinalPrice.IsNegative() {
				acc.Warnf("negative final price %s clamped to 0 for item %s", row.FinalPrice, ln.ref)
				row.FinalPrice = decimal.Zero
				row.DiscountAmount = row.OriginalPrice
			}
		}

		total = total.Add(row.FinalPrice)
		result.Items = append(result.Items, row)
	}

	result.CartTotal = round2(total)
	result.Warnings = acc.Warnings()
	return result
}
