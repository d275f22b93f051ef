package models

import (
	"strings"
	"testing"
)

func TestComputeRequest_Validate(t *testing.T) {
	valid := func() *ComputeRequest {
		return &ComputeRequest{
			Items:       []ComputeItem{{ProductID: 1, Quantity: 1}},
			Zone:        ZoneCapital,
			ServiceType: ServicePickup,
		}
	}

	tests := []struct {
		name    string
		mutate  func(r *ComputeRequest)
		wantErr string
	}{
		{"valid", func(r *ComputeRequest) {}, ""},
		{"bad zone", func(r *ComputeRequest) { r.Zone = "suburbs" }, "zone"},
		{"bad service type", func(r *ComputeRequest) { r.ServiceType = "dine_in" }, "service_type"},
		{"empty items", func(r *ComputeRequest) { r.Items = nil }, "items"},
		{
			"too many items",
			func(r *ComputeRequest) {
				r.Items = make([]ComputeItem, 51)
				for i := range r.Items {
					r.Items[i] = ComputeItem{ProductID: 1, Quantity: 1}
				}
			},
			"more than 50",
		},
		{"missing product id", func(r *ComputeRequest) { r.Items[0].ProductID = 0 }, "product_id"},
		{"zero quantity", func(r *ComputeRequest) { r.Items[0].Quantity = 0 }, "quantity"},
		{"quantity too large", func(r *ComputeRequest) { r.Items[0].Quantity = 100 }, "quantity"},
		{
			"non-positive variant id",
			func(r *ComputeRequest) {
				zero := 0
				r.Items[0].VariantID = &zero
			},
			"variant_id",
		},
		{
			"non-positive option id",
			func(r *ComputeRequest) { r.Items[0].SelectedOptionIDs = []int{-1} },
			"selected_option_ids",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid()
			tt.mutate(req)

			err := req.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() error = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %q, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestComputeItem_Ref(t *testing.T) {
	withID := ComputeItem{ID: "cart-item-abc", ProductID: 1, Quantity: 1}
	if got := withID.Ref(3); got != "cart-item-abc" {
		t.Errorf("Ref() = %q, want the caller-supplied id", got)
	}

	anonymous := ComputeItem{ProductID: 1, Quantity: 1}
	if got := anonymous.Ref(3); got != "line-3" {
		t.Errorf("Ref() = %q, want \"line-3\"", got)
	}
}
