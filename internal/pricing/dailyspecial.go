package pricing

import (
	"restaurant-pricing/internal/models"
)

// DailySpecialStrategy handles daily_special promotions. The price
// substitution itself happens at resolution time (the catalog flag is
// authoritative even when no promotion row exists); this strategy
// binds the matching promotion id into the line's sidecar so the
// combined two-for-one label can name it.
type DailySpecialStrategy struct{}

// CanHandle reports whether the promotion type is daily_special
func (DailySpecialStrategy) CanHandle(t models.PromotionType) bool {
	return t == models.PromotionDailySpecial
}

// Apply binds the promotion to already-seeded daily-special records
func (DailySpecialStrategy) Apply(acc *Accumulator, promo *models.Promotion, lines []*line) {
	for _, ln := range lines {
		if !ln.isDailySpecial {
			continue
		}
		rec := acc.Record(ln.ref)
		if rec == nil || rec.Special == nil {
			continue
		}
		if rec.Special.PromotionID == 0 {
			rec.Special.PromotionID = promo.ID
		}
	}
}

// seedDailySpecials creates the initial discount records for lines
// whose resolved price is a daily-special substitution. Seeding runs
// before any strategy so the precedence rule (Daily Special beats
// PercentageDiscount) holds even without a daily_special promotion
// row in the catalog.
func seedDailySpecials(acc *Accumulator, lines []*line) {
	for _, ln := range lines {
		if ln.unavailable || !ln.isDailySpecial {
			continue
		}

		unitDiscount := ln.normalUnit.Sub(ln.effectiveUnit)
		if unitDiscount.Sign() <= 0 {
			// the special is not cheaper than the normal price; nothing
			// to record
			continue
		}

		acc.SetRecord(ln.ref, &DiscountRecord{
			DiscountAmount: round2(unitDiscount.Mul(ln.qty())),
			OriginalPrice:  round2(ln.originalPrice()),
			FinalPrice:     round2(ln.effectiveSubtotal().Add(ln.optionsTotal())),
			IsDailySpecial: true,
			Special: &DailySpecialData{
				NormalUnit:   round2(ln.normalUnit),
				SpecialUnit:  round2(ln.effectiveUnit),
				UnitDiscount: round2(unitDiscount),
			},
		})
	}
}
