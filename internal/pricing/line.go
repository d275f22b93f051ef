package pricing

import (
	"github.com/shopspring/decimal"

	"restaurant-pricing/internal/models"
)

// line is the internal working representation of one cart item with
// its resolved prices. Lines are built fresh for every computation.
type line struct {
	ref      string
	product  *models.Product
	variant  *models.Variant
	quantity int
	options  []*models.Option

	// resolved per-unit amounts for the request's matrix cell
	normalUnit     decimal.Decimal
	effectiveUnit  decimal.Decimal
	optionsUnit    decimal.Decimal
	isDailySpecial bool

	unavailable       bool
	unavailableReason string
}

func (l *line) qty() decimal.Decimal {
	return decimal.NewFromInt(int64(l.quantity))
}

// normalSubtotal is the base subtotal at the normal price, excluding options
func (l *line) normalSubtotal() decimal.Decimal {
	return l.normalUnit.Mul(l.qty())
}

// effectiveSubtotal is the base subtotal at the resolved price, excluding options
func (l *line) effectiveSubtotal() decimal.Decimal {
	return l.effectiveUnit.Mul(l.qty())
}

// optionsTotal is the options contribution for the whole line
func (l *line) optionsTotal() decimal.Decimal {
	return l.optionsUnit.Mul(l.qty())
}

// originalPrice is base plus options, pre-discount. The base component
// uses the normal price; a daily-special substitution is itself a
// discount against this amount.
func (l *line) originalPrice() decimal.Decimal {
	return l.normalSubtotal().Add(l.optionsTotal())
}

// variantID returns the variant id or 0 when the line has none
func (l *line) variantID() int {
	if l.variant == nil {
		return 0
	}
	return l.variant.ID
}
