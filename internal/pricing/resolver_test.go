package pricing

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"restaurant-pricing/internal/models"
)

// tuesday is a fixed reference time (ISO weekday 2)
var tuesday = time.Date(2025, 3, 11, 12, 0, 0, 0, time.UTC)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal literal %q: %v", s, err)
	}
	return d
}

func allCells(t *testing.T, price string) models.PriceMatrix {
	t.Helper()
	var m models.PriceMatrix
	p := dec(t, price)
	for _, cell := range []models.PriceCell{
		models.CapitalPickup, models.CapitalDelivery,
		models.InteriorPickup, models.InteriorDelivery,
	} {
		m.Set(cell, p)
	}
	return m
}

func TestResolvePrice_Normal(t *testing.T) {
	product := &models.Product{ID: 1, CategoryID: 1, Name: "Club Sandwich", Prices: allCells(t, "35")}

	resolved, err := ResolvePrice(product, nil, models.CapitalPickup, tuesday)
	if err != nil {
		t.Fatalf("ResolvePrice() error = %v", err)
	}
	if !resolved.UnitPrice.Equal(dec(t, "35")) {
		t.Errorf("UnitPrice = %s, want 35", resolved.UnitPrice)
	}
	if resolved.IsDailySpecial {
		t.Error("IsDailySpecial = true, want false")
	}
}

func TestResolvePrice_MissingCell(t *testing.T) {
	var prices models.PriceMatrix
	prices.Set(models.CapitalPickup, dec(t, "35"))
	product := &models.Product{ID: 1, CategoryID: 1, Name: "Club Sandwich", Prices: prices}

	_, err := ResolvePrice(product, nil, models.InteriorDelivery, tuesday)
	if !errors.Is(err, ErrPriceUnavailable) {
		t.Errorf("ResolvePrice() error = %v, want ErrPriceUnavailable", err)
	}
}

func TestResolvePrice_DailySpecial(t *testing.T) {
	product := &models.Product{
		ID:         1,
		CategoryID: 1,
		Name:       "Club Sandwich",
		Prices:     allCells(t, "35"),
		Special: &models.DailySpecial{
			Weekdays: models.WeekdaySet{2},
			Prices:   allCells(t, "22"),
		},
	}

	resolved, err := ResolvePrice(product, nil, models.CapitalPickup, tuesday)
	if err != nil {
		t.Fatalf("ResolvePrice() error = %v", err)
	}
	if !resolved.IsDailySpecial {
		t.Fatal("IsDailySpecial = false, want true")
	}
	if !resolved.UnitPrice.Equal(dec(t, "22")) {
		t.Errorf("UnitPrice = %s, want 22", resolved.UnitPrice)
	}
	if !resolved.NormalUnitPrice.Equal(dec(t, "35")) {
		t.Errorf("NormalUnitPrice = %s, want 35", resolved.NormalUnitPrice)
	}

	// same product on a Wednesday keeps the normal price
	wednesday := tuesday.AddDate(0, 0, 1)
	resolved, err = ResolvePrice(product, nil, models.CapitalPickup, wednesday)
	if err != nil {
		t.Fatalf("ResolvePrice() error = %v", err)
	}
	if resolved.IsDailySpecial {
		t.Error("IsDailySpecial = true on non-special weekday")
	}
	if !resolved.UnitPrice.Equal(dec(t, "35")) {
		t.Errorf("UnitPrice = %s, want 35", resolved.UnitPrice)
	}
}

func TestResolvePrice_SpecialWithoutCellPrice(t *testing.T) {
	var specialPrices models.PriceMatrix
	specialPrices.Set(models.CapitalPickup, dec(t, "22"))

	product := &models.Product{
		ID:         1,
		CategoryID: 1,
		Name:       "Club Sandwich",
		Prices:     allCells(t, "35"),
		Special: &models.DailySpecial{
			Weekdays: models.WeekdaySet{2},
			Prices:   specialPrices,
		},
	}

	resolved, err := ResolvePrice(product, nil, models.InteriorDelivery, tuesday)
	if err != nil {
		t.Fatalf("ResolvePrice() error = %v", err)
	}
	if resolved.IsDailySpecial {
		t.Error("IsDailySpecial = true, want false when the special has no price for the cell")
	}
	if !resolved.UnitPrice.Equal(dec(t, "35")) {
		t.Errorf("UnitPrice = %s, want 35", resolved.UnitPrice)
	}
}

func TestResolvePrice_VariantOverridesProduct(t *testing.T) {
	variant := &models.Variant{
		ID:        10,
		ProductID: 1,
		Name:      "Large",
		Prices:    allCells(t, "45"),
		Special: &models.DailySpecial{
			Weekdays: models.WeekdaySet{2},
			Prices:   allCells(t, "30"),
		},
	}
	product := &models.Product{ID: 1, CategoryID: 1, Name: "Club Sandwich", Prices: allCells(t, "35")}

	resolved, err := ResolvePrice(product, variant, models.CapitalPickup, tuesday)
	if err != nil {
		t.Fatalf("ResolvePrice() error = %v", err)
	}
	if !resolved.UnitPrice.Equal(dec(t, "30")) {
		t.Errorf("UnitPrice = %s, want variant special 30", resolved.UnitPrice)
	}
	if !resolved.NormalUnitPrice.Equal(dec(t, "45")) {
		t.Errorf("NormalUnitPrice = %s, want variant price 45", resolved.NormalUnitPrice)
	}
}

func TestResolveOptionsUnit(t *testing.T) {
	var partial models.PriceMatrix
	partial.Set(models.CapitalPickup, dec(t, "3"))

	options := []*models.Option{
		{ID: 1, ProductID: 1, Name: "Extra Cheese", Modifiers: allCells(t, "2.50")},
		{ID: 2, ProductID: 1, Name: "Bacon", Modifiers: partial},
	}

	got := ResolveOptionsUnit(options, models.CapitalPickup)
	if !got.Equal(dec(t, "5.50")) {
		t.Errorf("ResolveOptionsUnit(capital_pickup) = %s, want 5.50", got)
	}

	// the option without a modifier for the cell contributes nothing
	got = ResolveOptionsUnit(options, models.InteriorDelivery)
	if !got.Equal(dec(t, "2.50")) {
		t.Errorf("ResolveOptionsUnit(interior_delivery) = %s, want 2.50", got)
	}
}
