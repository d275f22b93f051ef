package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PromotionType identifies one of the four supported campaign kinds
type PromotionType string

const (
	PromotionPercentageDiscount PromotionType = "percentage_discount"
	PromotionTwoForOne          PromotionType = "two_for_one"
	PromotionDailySpecial       PromotionType = "daily_special"
	PromotionBundleSpecial      PromotionType = "bundle_special"
)

// DailySpecialLabel is the display label for daily-special pricing
const DailySpecialLabel = "Sub del Día"

// DayTime is a time of day with minute precision, for promotion
// time-of-day windows
type DayTime struct {
	Hour   int
	Minute int
}

// ParseDayTime parses a "15:04" formatted time of day
func ParseDayTime(s string) (DayTime, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return DayTime{}, fmt.Errorf("invalid time of day: %s", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return DayTime{}, fmt.Errorf("invalid hour in time of day: %s", s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return DayTime{}, fmt.Errorf("invalid minute in time of day: %s", s)
	}
	return DayTime{Hour: hour, Minute: minute}, nil
}

// Minutes returns the time of day as minutes since midnight
func (d DayTime) Minutes() int {
	return d.Hour*60 + d.Minute
}

// String formats the time of day as "15:04"
func (d DayTime) String() string {
	return fmt.Sprintf("%02d:%02d", d.Hour, d.Minute)
}

// PromotionItem links a promotion to a variant, a product, or a whole
// category. Any one reference is sufficient for a match.
type PromotionItem struct {
	ID          int  `json:"id" db:"id"`
	PromotionID int  `json:"promotion_id" db:"promotion_id"`
	ProductID   *int `json:"product_id,omitempty" db:"product_id"`
	VariantID   *int `json:"variant_id,omitempty" db:"variant_id"`
	CategoryID  *int `json:"category_id,omitempty" db:"category_id"`
}

// BundleItem describes one slot of a combo-priced promotion
type BundleItem struct {
	ID          int  `json:"id" db:"id"`
	PromotionID int  `json:"promotion_id" db:"promotion_id"`
	ProductID   int  `json:"product_id" db:"product_id"`
	VariantID   *int `json:"variant_id,omitempty" db:"variant_id"`
	Quantity    int  `json:"quantity" db:"quantity"`
}

// Promotion is a named, typed campaign with an activity window.
// Every window dimension is independently optional; absence means
// unconstrained on that dimension.
type Promotion struct {
	ID           int             `json:"id" db:"id"`
	Name         string          `json:"name" db:"name"`
	Type         PromotionType   `json:"type" db:"type"`
	Value        decimal.Decimal `json:"value" db:"value"`
	DisplayLabel string          `json:"display_label" db:"display_label"`
	IsActive     bool            `json:"is_active" db:"is_active"`
	ValidFrom    *time.Time      `json:"valid_from,omitempty" db:"valid_from"`
	ValidUntil   *time.Time      `json:"valid_until,omitempty" db:"valid_until"`
	TimeFrom     *DayTime        `json:"time_from,omitempty" db:"time_from"`
	TimeUntil    *DayTime        `json:"time_until,omitempty" db:"time_until"`
	Weekdays     WeekdaySet      `json:"weekdays,omitempty" db:"weekdays"`
	Items        []PromotionItem `json:"items,omitempty"`
	BundleItems  []BundleItem    `json:"bundle_items,omitempty"`
	BundlePrices PriceMatrix     `json:"bundle_prices"`
	CreatedAt    time.Time       `json:"created_at,omitempty" db:"created_at"`
}

// EligibleAt reports whether the promotion is active at the given time
func (p *Promotion) EligibleAt(now time.Time) bool {
	if !p.IsActive {
		return false
	}
	if !p.Weekdays.Empty() && !p.Weekdays.Contains(ISOWeekday(now)) {
		return false
	}

	today := dateOnly(now)
	if p.ValidFrom != nil && today.Before(dateOnly(*p.ValidFrom)) {
		return false
	}
	if p.ValidUntil != nil && today.After(dateOnly(*p.ValidUntil)) {
		return false
	}

	minutes := now.Hour()*60 + now.Minute()
	if p.TimeFrom != nil && minutes < p.TimeFrom.Minutes() {
		return false
	}
	if p.TimeUntil != nil && minutes > p.TimeUntil.Minutes() {
		return false
	}

	return true
}

// ValueLabel renders the promotion value for display, e.g. "20%"
func (p *Promotion) ValueLabel() string {
	switch p.Type {
	case PromotionPercentageDiscount:
		return p.Value.String() + "%"
	default:
		return p.Value.String()
	}
}

// dateOnly truncates a time to its calendar date in its location
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
