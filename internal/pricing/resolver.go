package pricing

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"restaurant-pricing/internal/models"
)

// ErrPriceUnavailable means the product has no price configured for
// the requested zone and service type. The item is unavailable in that
// context; it is never silently priced at zero.
var ErrPriceUnavailable = errors.New("no price configured for zone and service type")

// ResolvedPrice is the outcome of base price resolution for one unit
type ResolvedPrice struct {
	// UnitPrice is the effective per-unit price, with the daily-special
	// substitution already applied when eligible
	UnitPrice decimal.Decimal
	// NormalUnitPrice is the per-unit price without the substitution
	NormalUnitPrice decimal.Decimal
	IsDailySpecial  bool
}

// ResolvePrice resolves the unit price for a product (or its variant,
// when present) in the given matrix cell. If the sellable unit is
// flagged as a daily special and now's ISO weekday is in its eligible
// set, the daily-special price for the same cell is substituted.
func ResolvePrice(product *models.Product, variant *models.Variant, cell models.PriceCell, now time.Time) (ResolvedPrice, error) {
	prices := product.Prices
	special := product.Special
	if variant != nil {
		prices = variant.Prices
		special = variant.Special
	}

	normal, ok := prices.At(cell)
	if !ok {
		return ResolvedPrice{}, fmt.Errorf("product %d cell %s: %w", product.ID, cell, ErrPriceUnavailable)
	}

	if special.EligibleOn(models.ISOWeekday(now)) {
		// A special flagged without a price for this cell is a catalog
		// gap; the normal price applies.
		if specialPrice, ok := special.Prices.At(cell); ok {
			return ResolvedPrice{
				UnitPrice:       specialPrice,
				NormalUnitPrice: normal,
				IsDailySpecial:  true,
			}, nil
		}
	}

	return ResolvedPrice{
		UnitPrice:       normal,
		NormalUnitPrice: normal,
		IsDailySpecial:  false,
	}, nil
}

// ResolveOptionsUnit sums the per-unit price modifiers of the selected
// options for the given cell. Options without a modifier for the cell
// contribute nothing. Option modifiers are never discounted.
func ResolveOptionsUnit(options []*models.Option, cell models.PriceCell) decimal.Decimal {
	total := decimal.Zero
	for _, option := range options {
		if modifier, ok := option.Modifiers.At(cell); ok {
			total = total.Add(modifier)
		}
	}
	return total
}
