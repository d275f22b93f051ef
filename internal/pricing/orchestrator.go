package pricing

import (
	"restaurant-pricing/internal/models"
)

// Orchestrator owns promotion precedence. Strategies run in a fixed
// order because later ones consult the accumulator state left by
// earlier ones: TwoForOne reads the daily-special sidecar and claims
// its lines before PercentageDiscount can, PercentageDiscount skips
// special and already-claimed lines, and BundleSpecial runs cart-wide
// last without overriding anything already applied.
type Orchestrator struct {
	matcher    *Matcher
	strategies []Strategy
}

// NewOrchestrator creates the orchestrator with the fixed strategy order
func NewOrchestrator(matcher *Matcher) *Orchestrator {
	return &Orchestrator{
		matcher: matcher,
		strategies: []Strategy{
			DailySpecialStrategy{},
			TwoForOneStrategy{},
			PercentageDiscountStrategy{},
			BundleSpecialStrategy{},
		},
	}
}

// Run applies every eligible promotion to the lines in precedence order
func (o *Orchestrator) Run(acc *Accumulator, lines []*line) {
	seedDailySpecials(acc, lines)

	eligible := o.matcher.Eligible(acc.catalog.Promotions(), acc.now)

	for _, strat := range o.strategies {
		for _, promo := range eligible {
			if !strat.CanHandle(promo.Type) {
				continue
			}
			if !o.referencesValid(acc, promo) {
				continue
			}

			var matched []*line
			for _, ln := range lines {
				if ln.unavailable {
					continue
				}
				if o.matcher.Matches(promo, ln) {
					matched = append(matched, ln)
				}
			}
			if len(matched) == 0 {
				continue
			}

			strat.Apply(acc, promo, matched)
		}
	}
}

// referencesValid checks that the promotion's item entries point at
// catalog rows that still exist. A stale promotion is skipped with a
// warning; it must never block checkout.
func (o *Orchestrator) referencesValid(acc *Accumulator, promo *models.Promotion) bool {
	for _, item := range promo.Items {
		if item.ProductID != nil {
			if _, ok := acc.catalog.Product(*item.ProductID); !ok {
				acc.Warnf("promotion %d (%s) references missing product %d; skipped", promo.ID, promo.Name, *item.ProductID)
				return false
			}
		}
		if item.CategoryID != nil {
			if _, ok := acc.catalog.Category(*item.CategoryID); !ok {
				acc.Warnf("promotion %d (%s) references missing category %d; skipped", promo.ID, promo.Name, *item.CategoryID)
				return false
			}
		}
	}
	return true
}
