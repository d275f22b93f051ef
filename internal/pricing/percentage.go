package pricing

import (
	"github.com/shopspring/decimal"

	"restaurant-pricing/internal/models"
)

var hundred = decimal.NewFromInt(100)

// PercentageDiscountStrategy discounts the base price of each matched
// line by the promotion's percentage. Options are never discounted.
// Daily-special lines are skipped: a Daily Special always wins over a
// percentage discount.
type PercentageDiscountStrategy struct{}

// CanHandle reports whether the promotion type is percentage_discount
func (PercentageDiscountStrategy) CanHandle(t models.PromotionType) bool {
	return t == models.PromotionPercentageDiscount
}

// Apply records the percentage discount for every unclaimed line
func (PercentageDiscountStrategy) Apply(acc *Accumulator, promo *models.Promotion, lines []*line) {
	for _, ln := range lines {
		if rec := acc.Record(ln.ref); rec != nil && (rec.IsDailySpecial || rec.Applied != nil) {
			continue
		}

		base := ln.normalSubtotal()
		discount := round2(base.Mul(promo.Value).Div(hundred))
		original := round2(ln.originalPrice())

		acc.SetRecord(ln.ref, &DiscountRecord{
			DiscountAmount: discount,
			OriginalPrice:  original,
			FinalPrice:     round2(original.Sub(discount)),
			Applied:        appliedFrom(promo),
		})
	}
}

// appliedFrom builds the applied-promotion descriptor for a record
func appliedFrom(promo *models.Promotion) *models.AppliedPromotion {
	return &models.AppliedPromotion{
		ID:           promo.ID,
		Name:         promo.Name,
		DisplayLabel: promo.DisplayLabel,
		Type:         promo.Type,
		Value:        promo.ValueLabel(),
	}
}
