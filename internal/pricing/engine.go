// Package pricing implements the promotion and pricing calculation
// engine: base price resolution over the zone x service-type matrix,
// promotion matching, the four discount strategies, and the final
// cart breakdown. The engine is purely computational; one invocation
// is a function of the cart snapshot, the catalog snapshot, and the
// injected clock.
package pricing

import (
	"errors"
	"time"

	"restaurant-pricing/internal/clock"
	"restaurant-pricing/internal/models"
)

// Engine computes per-item price breakdowns and cart totals
type Engine struct {
	clock        clock.Clock
	matcher      *Matcher
	orchestrator *Orchestrator
}

// NewEngine creates a pricing engine with the given time source
func NewEngine(clk clock.Clock) *Engine {
	matcher := NewMatcher()
	return &Engine{
		clock:        clk,
		matcher:      matcher,
		orchestrator: NewOrchestrator(matcher),
	}
}

// Compute prices the cart. Item-level problems (unknown product,
// missing price cell, misconfigured promotion) never abort the rest
// of the cart; they surface as unavailable items or warnings.
func (e *Engine) Compute(req *models.ComputeRequest, catalog Catalog) (*models.ComputeResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := e.clock.Now()
	if req.Now != nil {
		now = *req.Now
	}

	cell, err := models.CellFor(req.Zone, req.ServiceType)
	if err != nil {
		return nil, err
	}

	lines := buildLines(req, catalog, cell, now)
	acc := newAccumulator(req.Zone, req.ServiceType, cell, now, catalog, e.matcher)

	e.orchestrator.Run(acc, lines)

	return buildBreakdown(acc, lines), nil
}

// buildLines resolves each request item against the catalog
func buildLines(req *models.ComputeRequest, catalog Catalog, cell models.PriceCell, now time.Time) []*line {
	lines := make([]*line, 0, len(req.Items))

	for i, item := range req.Items {
		ln := &line{
			ref:      item.Ref(i),
			quantity: item.Quantity,
		}
		lines = append(lines, ln)

		product, ok := catalog.Product(item.ProductID)
		if !ok {
			ln.unavailable = true
			ln.unavailableReason = "unknown product"
			continue
		}
		ln.product = product

		if item.VariantID != nil {
			variant, ok := product.Variant(*item.VariantID)
			if !ok {
				ln.unavailable = true
				ln.unavailableReason = "unknown variant"
				continue
			}
			ln.variant = variant
		}

		for _, optionID := range item.SelectedOptionIDs {
			option, ok := catalog.Option(optionID)
			if !ok {
				ln.unavailable = true
				ln.unavailableReason = "unknown option"
				break
			}
			ln.options = append(ln.options, option)
		}
		if ln.unavailable {
			continue
		}

		resolved, err := ResolvePrice(product, ln.variant, cell, now)
		if err != nil {
			ln.unavailable = true
			if errors.Is(err, ErrPriceUnavailable) {
				ln.unavailableReason = "no price for this zone and service type"
			} else {
				ln.unavailableReason = err.Error()
			}
			continue
		}

		ln.normalUnit = resolved.NormalUnitPrice
		ln.effectiveUnit = resolved.UnitPrice
		ln.isDailySpecial = resolved.IsDailySpecial
		ln.optionsUnit = ResolveOptionsUnit(ln.options, cell)
	}

	return lines
}
