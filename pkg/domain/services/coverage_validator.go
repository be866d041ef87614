package services

import (
	"fmt"

	"github.com/yintu/pmc/pkg/domain/entities"
)

// CoverageValidator checks how well the shortage, supplier and inventory
// sources cover each other before reconciliation
type CoverageValidator struct{}

// NewCoverageValidator creates a new coverage validator
func NewCoverageValidator() *CoverageValidator {
	return &CoverageValidator{}
}

// CoverageResult contains the results of coverage validation
type CoverageResult struct {
	// OrphanRefs are shortage order refs that match no loaded order
	OrphanRefs []entities.ProductionOrderID
	// UnquotedMaterials are short materials without any supplier quote
	UnquotedMaterials []entities.MaterialID
	// UnpricedMaterials have neither a positive quote nor a positive inventory price
	UnpricedMaterials []entities.MaterialID
	// DuplicateLines repeat an earlier (order ref, material) pair
	DuplicateLines []entities.ShortageLine
	Warnings       []string
}

// ValidateCoverage cross-checks the loaded tables. Every finding is a warning:
// orphans and gaps are reported, never fatal.
func (v *CoverageValidator) ValidateCoverage(
	orders []*entities.Order,
	lines []*entities.ShortageLine,
	quotes []*entities.SupplierQuote,
	inventory []*entities.InventoryRecord,
) *CoverageResult {
	result := &CoverageResult{
		OrphanRefs:        make([]entities.ProductionOrderID, 0),
		UnquotedMaterials: make([]entities.MaterialID, 0),
		UnpricedMaterials: make([]entities.MaterialID, 0),
		DuplicateLines:    make([]entities.ShortageLine, 0),
		Warnings:          make([]string, 0),
	}

	known := make(map[entities.ProductionOrderID]bool, len(orders))
	for _, o := range orders {
		known[o.ProductionOrderID.Key()] = true
	}

	quoted := make(map[entities.MaterialID]bool)
	priced := make(map[entities.MaterialID]bool)
	for _, q := range quotes {
		quoted[q.MaterialID] = true
		if _, ok := q.PositivePrice(); ok {
			priced[q.MaterialID] = true
		}
	}
	for _, r := range inventory {
		if r.HasPrice() {
			priced[r.MaterialID] = true
		}
	}

	orphanSeen := make(map[entities.ProductionOrderID]bool)
	materialSeen := make(map[entities.MaterialID]bool)
	result.DuplicateLines = v.detectDuplicateLines(lines)

	for _, line := range lines {
		ref := line.OrderRef.Key()
		if !known[ref] && !orphanSeen[ref] {
			orphanSeen[ref] = true
			result.OrphanRefs = append(result.OrphanRefs, ref)
		}

		if line.MaterialID == "" || materialSeen[line.MaterialID] {
			continue
		}
		materialSeen[line.MaterialID] = true
		if !quoted[line.MaterialID] {
			result.UnquotedMaterials = append(result.UnquotedMaterials, line.MaterialID)
		}
		if !priced[line.MaterialID] {
			result.UnpricedMaterials = append(result.UnpricedMaterials, line.MaterialID)
		}
	}

	if len(result.OrphanRefs) > 0 {
		result.Warnings = append(result.Warnings, fmt.Sprintf("%d shortage order refs match no order: %v", len(result.OrphanRefs), preview(result.OrphanRefs)))
	}
	if len(result.UnquotedMaterials) > 0 {
		result.Warnings = append(result.Warnings, fmt.Sprintf("%d short materials have no supplier quote", len(result.UnquotedMaterials)))
	}
	if len(result.UnpricedMaterials) > 0 {
		result.Warnings = append(result.Warnings, fmt.Sprintf("%d short materials have no price and are costed at zero", len(result.UnpricedMaterials)))
	}
	if len(result.DuplicateLines) > 0 {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Found %d repeated shortage lines", len(result.DuplicateLines)))
	}

	return result
}

// detectDuplicateLines finds shortage lines repeating an earlier (order ref, material) pair
func (v *CoverageValidator) detectDuplicateLines(lines []*entities.ShortageLine) []entities.ShortageLine {
	type key struct {
		ref      entities.ProductionOrderID
		material entities.MaterialID
	}
	seen := make(map[key]bool)
	duplicates := make([]entities.ShortageLine, 0)

	for _, line := range lines {
		k := key{ref: line.OrderRef.Key(), material: line.MaterialID}
		if seen[k] {
			duplicates = append(duplicates, *line)
		} else {
			seen[k] = true
		}
	}

	return duplicates
}

const previewLimit = 5

func preview[T any](items []T) []T {
	if len(items) > previewLimit {
		return items[:previewLimit]
	}
	return items
}
