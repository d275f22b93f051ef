package pricing

import (
	"sort"
	"time"

	"restaurant-pricing/internal/models"
)

// Matcher finds the promotions whose item configuration references a
// cart line and filters promotions by activity window.
type Matcher struct{}

// NewMatcher creates a promotion catalog matcher
func NewMatcher() *Matcher {
	return &Matcher{}
}

// Matches reports whether any of the promotion's item entries
// reference the line's variant, product, or category. Entries are
// OR'd; the first match wins.
func (m *Matcher) Matches(promo *models.Promotion, ln *line) bool {
	for _, item := range promo.Items {
		if item.VariantID != nil && ln.variant != nil && *item.VariantID == ln.variant.ID {
			return true
		}
		if item.ProductID != nil && *item.ProductID == ln.product.ID {
			return true
		}
		if item.CategoryID != nil && *item.CategoryID == ln.product.CategoryID {
			return true
		}
	}
	return false
}

// Eligible filters promotions by activity window at now and orders
// them most recently created first (highest id). With first-write-wins
// strategies this implements the documented same-type tie-break.
func (m *Matcher) Eligible(promotions []*models.Promotion, now time.Time) []*models.Promotion {
	eligible := make([]*models.Promotion, 0, len(promotions))
	for _, promo := range promotions {
		if promo.EligibleAt(now) {
			eligible = append(eligible, promo)
		}
	}
	sort.SliceStable(eligible, func(i, j int) bool {
		return eligible[i].ID > eligible[j].ID
	})
	return eligible
}

// Match returns the eligible promotions matching one line, ordered by
// highest id first.
func (m *Matcher) Match(ln *line, promotions []*models.Promotion, now time.Time) []*models.Promotion {
	var matched []*models.Promotion
	for _, promo := range m.Eligible(promotions, now) {
		if m.Matches(promo, ln) {
			matched = append(matched, promo)
		}
	}
	return matched
}

// PercentageFor looks up the percentage-discount promotion that would
// apply to the line right now, if any. Used by the two-for-one
// leftover-unit fallback. Ties go to the highest promotion id.
func (m *Matcher) PercentageFor(ln *line, promotions []*models.Promotion, now time.Time) *models.Promotion {
	for _, promo := range m.Match(ln, promotions, now) {
		if promo.Type == models.PromotionPercentageDiscount {
			return promo
		}
	}
	return nil
}
