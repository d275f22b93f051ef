package pricing

import "testing"

func TestOrderNumberFromPath(t *testing.T) {
	tests := []struct {
		path   string
		want   string
		wantOK bool
	}{
		{"/orders/ORD-001/events", "ORD-001", true},
		{"/orders/42/events", "42", true},
		{"/orders//events", "", false},
		{"/orders/ORD-001", "", false},
		{"/orders/ORD-001/events/extra", "", false},
		{"/orders/a/b/events", "", false},
		{"/health", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, ok := orderNumberFromPath(tt.path)
			if ok != tt.wantOK {
				t.Fatalf("orderNumberFromPath(%q) ok = %v, want %v", tt.path, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("orderNumberFromPath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}
