package services

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/yintu/pmc/pkg/domain/entities"
)

func TestCoverageValidator_ValidateCoverage(t *testing.T) {
	rates := entities.DefaultRates()
	price := entities.Some(decimal.NewFromInt(2))

	order, _ := entities.NewOrder("PSO1", "C1", "MODEL-A")
	orders := []*entities.Order{order}

	mk := func(ref, material string) *entities.ShortageLine {
		line, err := entities.NewShortageLine(entities.ProductionOrderID(ref), entities.MaterialID(material), "part", entities.Some(decimal.NewFromInt(1)))
		if err != nil {
			t.Fatalf("Failed to create shortage line: %v", err)
		}
		return line
	}
	lines := []*entities.ShortageLine{
		mk("PSO1", "M1"),
		mk("PSO1", "M2"),
		mk("PSO1", "M1"),
		mk("PSO9", "M3"),
		mk("PSO9", "M3"),
	}

	quote, _ := entities.NewSupplierQuote("M1", "Acme", "1", price, entities.RMB, rates)
	inv, _ := entities.NewInventoryRecord("M2", "part", price, entities.None[decimal.Decimal](), entities.RMB, rates)

	result := NewCoverageValidator().ValidateCoverage(orders, lines, []*entities.SupplierQuote{quote}, []*entities.InventoryRecord{inv})

	if len(result.OrphanRefs) != 1 || result.OrphanRefs[0] != "PSO9" {
		t.Errorf("Expected orphan ref PSO9, got %v", result.OrphanRefs)
	}
	if len(result.UnquotedMaterials) != 2 {
		t.Errorf("Expected 2 unquoted materials (M2, M3), got %v", result.UnquotedMaterials)
	}
	if len(result.UnpricedMaterials) != 1 || result.UnpricedMaterials[0] != "M3" {
		t.Errorf("Expected unpriced material M3, got %v", result.UnpricedMaterials)
	}
	if len(result.DuplicateLines) != 2 {
		t.Errorf("Expected 2 duplicate lines, got %d", len(result.DuplicateLines))
	}
	if len(result.Warnings) != 4 {
		t.Errorf("Expected 4 warnings, got %d: %v", len(result.Warnings), result.Warnings)
	}
}

func TestCoverageValidator_CleanInputs(t *testing.T) {
	order, _ := entities.NewOrder("PSO1", "C1", "MODEL-A")

	result := NewCoverageValidator().ValidateCoverage([]*entities.Order{order}, nil, nil, nil)

	if len(result.Warnings) != 0 {
		t.Errorf("Expected no warnings for an order without shortage, got %v", result.Warnings)
	}
}
