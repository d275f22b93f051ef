package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ComputeItem is one cart line in a price computation request
type ComputeItem struct {
	ID                string `json:"id,omitempty"`
	ProductID         int    `json:"product_id"`
	VariantID         *int   `json:"variant_id,omitempty"`
	Quantity          int    `json:"quantity"`
	SelectedOptionIDs []int  `json:"selected_option_ids,omitempty"`
}

// ComputeRequest is a full cart snapshot to price
type ComputeRequest struct {
	Items       []ComputeItem `json:"items"`
	Zone        Zone          `json:"zone"`
	ServiceType ServiceType   `json:"service_type"`
	Now         *time.Time    `json:"now,omitempty"`
}

// AppliedPromotion describes the single promotion recorded for an item
type AppliedPromotion struct {
	ID           int           `json:"id"`
	Name         string        `json:"name"`
	DisplayLabel string        `json:"display_label"`
	Type         PromotionType `json:"type"`
	Value        string        `json:"value"`
}

// ItemBreakdown is the priced result for one cart line
type ItemBreakdown struct {
	ItemRef           string            `json:"item_ref"`
	Quantity          int               `json:"quantity"`
	UnitPrice         decimal.Decimal   `json:"unit_price"`
	Subtotal          decimal.Decimal   `json:"subtotal"`
	OptionsTotal      decimal.Decimal   `json:"options_total"`
	OriginalPrice     decimal.Decimal   `json:"original_price"`
	DiscountAmount    decimal.Decimal   `json:"discount_amount"`
	FinalPrice        decimal.Decimal   `json:"final_price"`
	IsDailySpecial    bool              `json:"is_daily_special"`
	AppliedPromotion  *AppliedPromotion `json:"applied_promotion"`
	Unavailable       bool              `json:"unavailable,omitempty"`
	UnavailableReason string            `json:"unavailable_reason,omitempty"`
}

// ComputeResult is the priced cart. Unavailable items are excluded
// from the cart total.
type ComputeResult struct {
	Items     []ItemBreakdown `json:"items"`
	CartTotal decimal.Decimal `json:"cart_total"`
	Warnings  []string        `json:"warnings,omitempty"`
}

// Validate checks the compute request shape
func (r *ComputeRequest) Validate() error {
	switch r.Zone {
	case ZoneCapital, ZoneInterior:
	default:
		return fmt.Errorf("zone must be one of: capital, interior")
	}

	switch r.ServiceType {
	case ServicePickup, ServiceDelivery:
	default:
		return fmt.Errorf("service_type must be one of: pickup, delivery")
	}

	if len(r.Items) == 0 {
		return fmt.Errorf("items array cannot be empty")
	}
	if len(r.Items) > 50 {
		return fmt.Errorf("items array cannot contain more than 50 items")
	}

	for i, item := range r.Items {
		if err := validateComputeItem(item, i); err != nil {
			return err
		}
	}

	return nil
}

// validateComputeItem validates a single cart line
func validateComputeItem(item ComputeItem, index int) error {
	prefix := fmt.Sprintf("items[%d]", index)

	if item.ProductID <= 0 {
		return fmt.Errorf("%s.product_id is required", prefix)
	}
	if item.VariantID != nil && *item.VariantID <= 0 {
		return fmt.Errorf("%s.variant_id must be positive when present", prefix)
	}
	if item.Quantity < 1 || item.Quantity > 99 {
		return fmt.Errorf("%s.quantity must be between 1 and 99", prefix)
	}
	for _, optionID := range item.SelectedOptionIDs {
		if optionID <= 0 {
			return fmt.Errorf("%s.selected_option_ids must be positive", prefix)
		}
	}

	return nil
}

// Ref returns the stable identity for the line: the caller-supplied id
// when present, otherwise a deterministic ref from the line position.
func (i ComputeItem) Ref(index int) string {
	if i.ID != "" {
		return i.ID
	}
	return fmt.Sprintf("line-%d", index)
}
