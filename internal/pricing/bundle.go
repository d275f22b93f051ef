package pricing

import (
	"restaurant-pricing/internal/models"
)

// BundleSpecialStrategy prices a set of matching items as a combo.
// The difference between the items' normal subtotals and the bundle
// price for the cart's matrix cell is distributed proportionally to
// each item's subtotal, each share rounded to 2 decimals
// independently. The shares may not sum exactly to the bundle
// discount; the drift is a documented property of the distribution,
// not reconciled here. A bundle never increases a price and never
// touches a line priced by a daily special.
type BundleSpecialStrategy struct{}

// CanHandle reports whether the promotion type is bundle_special
func (BundleSpecialStrategy) CanHandle(t models.PromotionType) bool {
	return t == models.PromotionBundleSpecial
}

// Apply distributes the bundle discount across the matched lines
func (BundleSpecialStrategy) Apply(acc *Accumulator, promo *models.Promotion, lines []*line) {
	// Daily-special pricing short-circuits the bundle: lines already
	// carrying the substituted price are left out of the bundle set
	// and never receive a share.
	var priced []*line
	for _, ln := range lines {
		if rec := acc.Record(ln.ref); rec != nil && rec.IsDailySpecial {
			continue
		}
		priced = append(priced, ln)
	}
	if len(priced) == 0 {
		return
	}

	bundlePrice, ok := promo.BundlePrices.At(acc.cell)
	if !ok {
		// a misconfigured promotion must never block checkout
		acc.Warnf("promotion %d (%s) has no bundle price for %s; skipped", promo.ID, promo.Name, acc.cell)
		return
	}

	normalTotal := priced[0].normalSubtotal()
	for _, ln := range priced[1:] {
		normalTotal = normalTotal.Add(ln.normalSubtotal())
	}
	if !bundlePrice.LessThan(normalTotal) {
		return
	}

	totalDiscount := normalTotal.Sub(bundlePrice)
	for _, ln := range priced {
		share := round2(totalDiscount.Mul(ln.normalSubtotal()).Div(normalTotal))

		rec := acc.Record(ln.ref)
		if rec == nil {
			original := round2(ln.originalPrice())
			rec = &DiscountRecord{
				OriginalPrice: original,
				FinalPrice:    original,
			}
			acc.SetRecord(ln.ref, rec)
		}

		if rec.Applied != nil {
			// both a two-for-one and a bundle matched overlapping items;
			// the discounts stack but the first applied promotion stands
			acc.Warnf("promotion_overlap: bundle promotion %d stacks on %q for item %s", promo.ID, rec.Applied.Name, ln.ref)
		} else {
			rec.Applied = appliedFrom(promo)
		}

		rec.DiscountAmount = round2(rec.DiscountAmount.Add(share))
		rec.FinalPrice = round2(rec.FinalPrice.Sub(share))
	}
}
