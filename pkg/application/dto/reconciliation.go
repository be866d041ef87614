package dto

import (
	"github.com/yintu/pmc/pkg/domain/entities"
)

// ScoredQuote is one candidate quote with its selection score breakdown
type ScoredQuote struct {
	Quote     entities.SupplierQuote
	Recency   int
	Price     int
	Stability int
	Total     int
	Primary   bool
}

// MaterialSelection is the supplier selection outcome for one material
type MaterialSelection struct {
	MaterialID entities.MaterialID
	Resolution entities.SupplierResolution
	Candidates []ScoredQuote
}

// ReconciliationResult contains the joined rows and the per-material selections
type ReconciliationResult struct {
	// Rows holds one row per order × shortage line, or the bare order, in order-source order
	Rows []entities.ReconciledRow
	// Selections is ordered by first appearance of the material in Rows
	Selections  []MaterialSelection
	Diagnostics []Diagnostic
}
