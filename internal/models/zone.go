package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Zone represents the pricing region
type Zone string

const (
	ZoneCapital  Zone = "capital"
	ZoneInterior Zone = "interior"
)

// ServiceType represents how the order is fulfilled
type ServiceType string

const (
	ServicePickup   ServiceType = "pickup"
	ServiceDelivery ServiceType = "delivery"
)

// PriceCell indexes the zone x service-type price matrix
type PriceCell int

const (
	CapitalPickup PriceCell = iota
	CapitalDelivery
	InteriorPickup
	InteriorDelivery
	priceCellCount
)

// String returns the cell name used in logs and error messages
func (c PriceCell) String() string {
	switch c {
	case CapitalPickup:
		return "capital_pickup"
	case CapitalDelivery:
		return "capital_delivery"
	case InteriorPickup:
		return "interior_pickup"
	case InteriorDelivery:
		return "interior_delivery"
	default:
		return fmt.Sprintf("price_cell(%d)", int(c))
	}
}

// CellFor maps a zone and service type to the matrix cell
func CellFor(zone Zone, serviceType ServiceType) (PriceCell, error) {
	switch zone {
	case ZoneCapital:
		switch serviceType {
		case ServicePickup:
			return CapitalPickup, nil
		case ServiceDelivery:
			return CapitalDelivery, nil
		}
	case ZoneInterior:
		switch serviceType {
		case ServicePickup:
			return InteriorPickup, nil
		case ServiceDelivery:
			return InteriorDelivery, nil
		}
	default:
		return 0, fmt.Errorf("unknown zone: %s", zone)
	}
	return 0, fmt.Errorf("unknown service type: %s", serviceType)
}

// PriceMatrix holds one price per zone x service-type cell.
// An unset cell means the price is not configured for that context.
type PriceMatrix [priceCellCount]decimal.NullDecimal

// At returns the price for a cell and whether it is configured
func (m PriceMatrix) At(cell PriceCell) (decimal.Decimal, bool) {
	if cell < 0 || cell >= priceCellCount {
		return decimal.Decimal{}, false
	}
	nd := m[cell]
	return nd.Decimal, nd.Valid
}

// Set configures the price for a cell
func (m *PriceMatrix) Set(cell PriceCell, price decimal.Decimal) {
	if cell < 0 || cell >= priceCellCount {
		return
	}
	m[cell] = decimal.NullDecimal{Decimal: price, Valid: true}
}

// WeekdaySet is a set of ISO weekdays (1=Monday .. 7=Sunday).
// An empty set means "every day" wherever it constrains eligibility.
type WeekdaySet []int

// Contains reports whether the ISO weekday is in the set
func (w WeekdaySet) Contains(isoWeekday int) bool {
	for _, d := range w {
		if d == isoWeekday {
			return true
		}
	}
	return false
}

// Empty reports whether the set has no entries
func (w WeekdaySet) Empty() bool {
	return len(w) == 0
}

// ISOWeekday returns the ISO 8601 weekday for t (1=Monday .. 7=Sunday)
func ISOWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}
