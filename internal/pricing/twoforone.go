package pricing

import (
	"sort"

	"github.com/shopspring/decimal"

	"restaurant-pricing/internal/models"
)

// TwoForOneStrategy implements the cart-level two-for-one promotion.
// For every two matching units one is free; free units are drawn from
// the cheapest stock first, which maximizes the customer's discount.
// The free-unit discount always uses the normal (non-daily-special)
// unit price. Units that do not fit into the free-pair pool fall back
// to: the line's stashed daily-special pricing, else an eligible
// percentage discount, else full price.
type TwoForOneStrategy struct{}

// CanHandle reports whether the promotion type is two_for_one
func (TwoForOneStrategy) CanHandle(t models.PromotionType) bool {
	return t == models.PromotionTwoForOne
}

// Apply assigns units to the two-for-one pool and records per-line discounts
func (TwoForOneStrategy) Apply(acc *Accumulator, promo *models.Promotion, lines []*line) {
	// Lines already claimed by a higher-precedence promotion are out;
	// daily-special records carry no applied promotion and stay in.
	var candidates []*line
	totalQuantity := 0
	for _, ln := range lines {
		if rec := acc.Record(ln.ref); rec != nil && rec.Applied != nil {
			continue
		}
		candidates = append(candidates, ln)
		totalQuantity += ln.quantity
	}
	if totalQuantity < 2 {
		return
	}

	freeUnits := totalQuantity / 2
	unitsInPromo := freeUnits * 2

	sorted := make([]*line, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].normalUnit.LessThan(sorted[j].normalUnit)
	})

	assigned := 0
	freeLeft := freeUnits
	for _, ln := range sorted {
		poolUnits := unitsInPromo - assigned
		if poolUnits > ln.quantity {
			poolUnits = ln.quantity
		}
		if poolUnits <= 0 {
			// beyond the pool entirely; the line keeps whatever record
			// earlier strategies left
			continue
		}
		assigned += poolUnits

		freeHere := poolUnits
		if freeHere > freeLeft {
			freeHere = freeLeft
		}
		freeLeft -= freeHere

		leftover := ln.quantity - poolUnits

		// free units are discounted at the normal unit price, even when
		// the line also qualifies for a daily special
		discount := ln.normalUnit.Mul(decimal.NewFromInt(int64(freeHere)))
		applied := appliedFrom(promo)
		isSpecial := false

		prior := acc.Record(ln.ref)
		if leftover > 0 {
			leftoverQty := decimal.NewFromInt(int64(leftover))
			switch {
			case prior != nil && prior.Special != nil:
				// leftover units keep the stashed daily-special price
				discount = discount.Add(prior.Special.UnitDiscount.Mul(leftoverQty))
				applied.DisplayLabel = promo.DisplayLabel + " + " + models.DailySpecialLabel
				isSpecial = true
			default:
				if pct := acc.matcher.PercentageFor(ln, acc.catalog.Promotions(), acc.now); pct != nil {
					leftoverBase := ln.normalUnit.Mul(leftoverQty)
					discount = discount.Add(leftoverBase.Mul(pct.Value).Div(hundred))
					if freeHere == 0 {
						// no free units landed here; the percentage
						// promotion is what the customer actually got
						applied = appliedFrom(pct)
					}
				}
				// otherwise the leftover units stay at full price
			}
		}

		original := round2(ln.originalPrice())
		discountRounded := round2(discount)

		rec := &DiscountRecord{
			DiscountAmount: discountRounded,
			OriginalPrice:  original,
			FinalPrice:     round2(original.Sub(discountRounded)),
			IsDailySpecial: isSpecial,
			Applied:        applied,
		}
		if prior != nil {
			rec.Special = prior.Special
		}
		acc.SetRecord(ln.ref, rec)
	}
}
