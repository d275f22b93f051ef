package pricing

import (
	"testing"
	"time"

	"restaurant-pricing/internal/models"
)

func intPtr(i int) *int { return &i }

func TestMatcher_Matches(t *testing.T) {
	product := &models.Product{ID: 5, CategoryID: 2, Name: "Italiano"}
	variant := &models.Variant{ID: 50, ProductID: 5, Name: "30cm"}

	tests := []struct {
		name  string
		items []models.PromotionItem
		ln    *line
		want  bool
	}{
		{
			name:  "by product id",
			items: []models.PromotionItem{{ProductID: intPtr(5)}},
			ln:    &line{product: product},
			want:  true,
		},
		{
			name:  "by category id",
			items: []models.PromotionItem{{CategoryID: intPtr(2)}},
			ln:    &line{product: product},
			want:  true,
		},
		{
			name:  "by variant id",
			items: []models.PromotionItem{{VariantID: intPtr(50)}},
			ln:    &line{product: product, variant: variant},
			want:  true,
		},
		{
			name:  "variant entry does not match a line without that variant",
			items: []models.PromotionItem{{VariantID: intPtr(50)}},
			ln:    &line{product: product},
			want:  false,
		},
		{
			name:  "no reference matches",
			items: []models.PromotionItem{{ProductID: intPtr(9)}, {CategoryID: intPtr(7)}},
			ln:    &line{product: product, variant: variant},
			want:  false,
		},
		{
			name: "any one entry suffices",
			items: []models.PromotionItem{
				{ProductID: intPtr(9)},
				{CategoryID: intPtr(2)},
			},
			ln:   &line{product: product},
			want: true,
		},
	}

	m := NewMatcher()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			promo := &models.Promotion{ID: 1, Items: tt.items}
			if got := m.Matches(promo, tt.ln); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMatcher_Eligible(t *testing.T) {
	monday := []int{1}
	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	until := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	promotions := []*models.Promotion{
		{ID: 1, Name: "Active", IsActive: true},
		{ID: 2, Name: "Inactive", IsActive: false},
		{ID: 3, Name: "WrongWeekday", IsActive: true, Weekdays: monday},
		{ID: 4, Name: "Expired", IsActive: true, ValidFrom: &from, ValidUntil: &until},
		{ID: 5, Name: "AlsoActive", IsActive: true},
	}

	m := NewMatcher()
	eligible := m.Eligible(promotions, tuesday)

	if len(eligible) != 2 {
		t.Fatalf("Eligible() returned %d promotions, want 2", len(eligible))
	}
	// highest id first
	if eligible[0].ID != 5 || eligible[1].ID != 1 {
		t.Errorf("Eligible() order = [%d, %d], want [5, 1]", eligible[0].ID, eligible[1].ID)
	}
}

func TestMatcher_PercentageFor(t *testing.T) {
	product := &models.Product{ID: 5, CategoryID: 2, Name: "Italiano"}
	ln := &line{product: product}

	promotions := []*models.Promotion{
		{
			ID: 1, Name: "Old 10%", Type: models.PromotionPercentageDiscount, IsActive: true,
			Items: []models.PromotionItem{{CategoryID: intPtr(2)}},
		},
		{
			ID: 2, Name: "Pairs", Type: models.PromotionTwoForOne, IsActive: true,
			Items: []models.PromotionItem{{CategoryID: intPtr(2)}},
		},
		{
			ID: 3, Name: "New 25%", Type: models.PromotionPercentageDiscount, IsActive: true,
			Items: []models.PromotionItem{{ProductID: intPtr(5)}},
		},
	}

	m := NewMatcher()
	got := m.PercentageFor(ln, promotions, tuesday)
	if got == nil {
		t.Fatal("PercentageFor() = nil, want a promotion")
	}
	if got.ID != 3 {
		t.Errorf("PercentageFor() id = %d, want the highest id 3", got.ID)
	}

	other := &line{product: &models.Product{ID: 99, CategoryID: 99}}
	if got := m.PercentageFor(other, promotions, tuesday); got != nil {
		t.Errorf("PercentageFor() = promotion %d for unmatched line, want nil", got.ID)
	}
}
