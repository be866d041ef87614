package entities

import (
	"testing"
)

func TestOrder_Validation(t *testing.T) {
	validOrder, err := NewOrder("  PSO-1001 ", " C-77 ", "MODEL-A")
	if err != nil {
		t.Fatalf("Expected valid order creation to succeed: %v", err)
	}
	if validOrder.ProductionOrderID != "PSO-1001" {
		t.Errorf("Expected trimmed production order PSO-1001, got %q", validOrder.ProductionOrderID)
	}
	if validOrder.CustomerOrderID != "C-77" {
		t.Errorf("Expected trimmed customer order C-77, got %q", validOrder.CustomerOrderID)
	}
	if validOrder.Currency != USD {
		t.Errorf("Expected default currency USD, got %s", validOrder.Currency)
	}

	// Test validation failures
	testCases := []struct {
		name        string
		po          ProductionOrderID
		model       string
		expectError string
	}{
		{"empty production order", "", "MODEL-A", "production order id cannot be empty"},
		{"blank production order", "   ", "MODEL-A", "production order id cannot be empty"},
		{"empty model", "PSO-1", "", "product model cannot be empty"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewOrder(tc.po, "C1", tc.model)
			if err == nil {
				t.Fatalf("Expected error for %s, but got none", tc.name)
			}
			if err.Error() != tc.expectError {
				t.Errorf("Expected error '%s', got '%s'", tc.expectError, err.Error())
			}
		})
	}
}

func TestOrder_ValueKey(t *testing.T) {
	withCustomer := Order{CustomerOrderID: "C1", SourceRow: 4}
	if withCustomer.ValueKey() != "C1" {
		t.Errorf("Expected value key C1, got %s", withCustomer.ValueKey())
	}

	a := Order{SourceRow: 4}
	b := Order{SourceRow: 5}
	if a.ValueKey() == b.ValueKey() {
		t.Errorf("Expected distinct value keys for rows without customer order, both got %s", a.ValueKey())
	}
}

func TestShortageLine_Validation(t *testing.T) {
	qty := Some(mustDecimal(t, "10"))

	line, err := NewShortageLine(" PSO1 ", " M1 ", "Screw", qty)
	if err != nil {
		t.Fatalf("Expected valid shortage line creation to succeed: %v", err)
	}
	if line.OrderRef != "PSO1" || line.MaterialID != "M1" {
		t.Errorf("Expected trimmed keys PSO1/M1, got %q/%q", line.OrderRef, line.MaterialID)
	}

	testCases := []struct {
		name        string
		ref         ProductionOrderID
		matName     string
		qty         Optional[string]
		expectError string
	}{
		{"empty ref", "", "Screw", Some("1"), "order ref cannot be empty"},
		{"kitted marker", "PSO1", "已齐套", Some("1"), `material name "已齐套" marks a kitted order`},
		{"negative qty", "PSO1", "Screw", Some("-2"), "shortage quantity cannot be negative, got -2"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			raw, _ := tc.qty.Get()
			_, err := NewShortageLine(tc.ref, "M1", tc.matName, Some(mustDecimal(t, raw)))
			if err == nil {
				t.Fatalf("Expected error for %s, but got none", tc.name)
			}
			if err.Error() != tc.expectError {
				t.Errorf("Expected error '%s', got '%s'", tc.expectError, err.Error())
			}
		})
	}
}

func TestIsKittedMarker(t *testing.T) {
	tests := map[string]bool{
		"已齐套":      true,
		"已齊套":      true,
		"订单齐套":     true,
		"Screw M3": false,
		"":         false,
	}
	for name, want := range tests {
		if got := IsKittedMarker(name); got != want {
			t.Errorf("IsKittedMarker(%q) = %v, want %v", name, got, want)
		}
	}
}
