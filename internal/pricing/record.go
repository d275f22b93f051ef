package pricing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"restaurant-pricing/internal/models"
)

// DailySpecialData is the hand-off between the daily-special pricing
// and the two-for-one leftover-unit path on the same line.
type DailySpecialData struct {
	NormalUnit   decimal.Decimal
	SpecialUnit  decimal.Decimal
	UnitDiscount decimal.Decimal
	// PromotionID is the daily_special promotion bound to the line, or
	// 0 when the substitution came from the catalog flag alone.
	PromotionID int
}

// DiscountRecord holds the discount state for one cart line. Every
// money value is rounded to 2 decimal places when written here.
type DiscountRecord struct {
	DiscountAmount decimal.Decimal
	OriginalPrice  decimal.Decimal
	FinalPrice     decimal.Decimal
	IsDailySpecial bool
	Applied        *models.AppliedPromotion
	Special        *DailySpecialData
}

// Accumulator threads the discount state through the strategy
// pipeline. Strategies compose by reading what earlier strategies
// wrote; there is no implicit shared context.
type Accumulator struct {
	records map[string]*DiscountRecord

	zone        models.Zone
	serviceType models.ServiceType
	cell        models.PriceCell
	now         time.Time

	catalog Catalog
	matcher *Matcher

	warnings []string
}

func newAccumulator(zone models.Zone, serviceType models.ServiceType, cell models.PriceCell, now time.Time, catalog Catalog, matcher *Matcher) *Accumulator {
	return &Accumulator{
		records:     make(map[string]*DiscountRecord),
		zone:        zone,
		serviceType: serviceType,
		cell:        cell,
		now:         now,
		catalog:     catalog,
		matcher:     matcher,
	}
}

// Record returns the discount record for a line ref, or nil
func (a *Accumulator) Record(ref string) *DiscountRecord {
	return a.records[ref]
}

// SetRecord writes the discount record for a line ref
func (a *Accumulator) SetRecord(ref string, rec *DiscountRecord) {
	a.records[ref] = rec
}

// Warnf records a recoverable pricing anomaly surfaced to the caller
func (a *Accumulator) Warnf(format string, args ...interface{}) {
	a.warnings = append(a.warnings, fmt.Sprintf(format, args...))
}

// Warnings returns the anomalies accumulated during the computation
func (a *Accumulator) Warnings() []string {
	return a.warnings
}

// round2 rounds a money amount to 2 decimal places
func round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
