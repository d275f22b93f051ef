package pricing

import "restaurant-pricing/internal/models"

// Strategy computes the discount contribution of one promotion over
// the cart lines it matched. Strategies run in a fixed order and read
// the accumulator state left by earlier ones; none may overwrite an
// applied promotion already recorded for a line.
type Strategy interface {
	// CanHandle reports whether the strategy computes this promotion type
	CanHandle(t models.PromotionType) bool
	// Apply updates the accumulator with the promotion's discounts
	Apply(acc *Accumulator, promo *models.Promotion, lines []*line)
}
