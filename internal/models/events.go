package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// DriverEventType identifies a driver lifecycle event
type DriverEventType string

const (
	DriverEventAccepted  DriverEventType = "accepted"
	DriverEventDelivered DriverEventType = "delivered"
)

// DriverEventMessage is the external driver event stream payload.
// The order lifecycle itself lives outside this system; only the
// accepted/delivered events cross the boundary.
type DriverEventMessage struct {
	OrderNumber string          `json:"order_number"`
	DriverName  string          `json:"driver_name"`
	Event       DriverEventType `json:"event"`
	Timestamp   time.Time       `json:"timestamp"`
}

// Validate checks the driver event payload
func (m *DriverEventMessage) Validate() error {
	if m.OrderNumber == "" {
		return fmt.Errorf("order_number is required")
	}
	if m.DriverName == "" {
		return fmt.Errorf("driver_name is required")
	}
	switch m.Event {
	case DriverEventAccepted, DriverEventDelivered:
	default:
		return fmt.Errorf("event must be one of: accepted, delivered")
	}
	if m.Timestamp.IsZero() {
		return fmt.Errorf("timestamp is required")
	}
	return nil
}

// DeliveryEvent is a recorded driver event row
type DeliveryEvent struct {
	ID          int             `json:"id" db:"id"`
	OrderNumber string          `json:"order_number" db:"order_number"`
	DriverName  string          `json:"driver_name" db:"driver_name"`
	Event       DriverEventType `json:"event" db:"event"`
	OccurredAt  time.Time       `json:"occurred_at" db:"occurred_at"`
	RecordedAt  time.Time       `json:"recorded_at" db:"recorded_at"`
}

// RepricingMessage is published after each successful cart computation
// as an audit feed for the back-office
type RepricingMessage struct {
	RequestID   string          `json:"request_id"`
	Zone        Zone            `json:"zone"`
	ServiceType ServiceType     `json:"service_type"`
	CartTotal   decimal.Decimal `json:"cart_total"`
	ItemCount   int             `json:"item_count"`
	ComputedAt  time.Time       `json:"computed_at"`
}
