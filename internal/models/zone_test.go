package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestCellFor(t *testing.T) {
	tests := []struct {
		name        string
		zone        Zone
		serviceType ServiceType
		want        PriceCell
		wantErr     bool
	}{
		{"capital pickup", ZoneCapital, ServicePickup, CapitalPickup, false},
		{"capital delivery", ZoneCapital, ServiceDelivery, CapitalDelivery, false},
		{"interior pickup", ZoneInterior, ServicePickup, InteriorPickup, false},
		{"interior delivery", ZoneInterior, ServiceDelivery, InteriorDelivery, false},
		{"unknown zone", "suburbs", ServicePickup, 0, true},
		{"unknown service type", ZoneCapital, "dine_in", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CellFor(tt.zone, tt.serviceType)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CellFor() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("CellFor() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPriceMatrix(t *testing.T) {
	var m PriceMatrix

	if _, ok := m.At(CapitalPickup); ok {
		t.Error("At() on an empty matrix reported a configured price")
	}

	price := decimal.NewFromInt(35)
	m.Set(CapitalPickup, price)

	got, ok := m.At(CapitalPickup)
	if !ok {
		t.Fatal("At() = not configured after Set()")
	}
	if !got.Equal(price) {
		t.Errorf("At() = %s, want %s", got, price)
	}

	// the other cells stay unset
	if _, ok := m.At(InteriorDelivery); ok {
		t.Error("At() reported a price for a cell that was never set")
	}

	// out-of-range cells are never configured
	if _, ok := m.At(PriceCell(99)); ok {
		t.Error("At() reported a price for an out-of-range cell")
	}
}

func TestISOWeekday(t *testing.T) {
	tests := []struct {
		date time.Time
		want int
	}{
		{time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC), 1}, // Monday
		{time.Date(2025, 3, 11, 12, 0, 0, 0, time.UTC), 2}, // Tuesday
		{time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC), 6}, // Saturday
		{time.Date(2025, 3, 16, 12, 0, 0, 0, time.UTC), 7}, // Sunday
	}

	for _, tt := range tests {
		if got := ISOWeekday(tt.date); got != tt.want {
			t.Errorf("ISOWeekday(%s) = %d, want %d", tt.date.Format("2006-01-02"), got, tt.want)
		}
	}
}

func TestWeekdaySet(t *testing.T) {
	set := WeekdaySet{1, 3, 5}
	if !set.Contains(3) {
		t.Error("Contains(3) = false, want true")
	}
	if set.Contains(7) {
		t.Error("Contains(7) = true, want false")
	}
	if set.Empty() {
		t.Error("Empty() = true for a populated set")
	}
	if !(WeekdaySet{}).Empty() {
		t.Error("Empty() = false for an empty set")
	}
}
