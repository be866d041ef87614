// Package report classifies reconciled rows by data completeness and builds
// the report sections from them.
package report

import (
	"slices"

	"github.com/yintu/pmc/pkg/domain/entities"
)

// Mark labels describing how a detail row was filled
const (
	MarkOriginal     = "original data"
	MarkNoShortage   = "no shortage"
	MarkQtyMissing   = "quantity missing"
	MarkNoSupplier   = "missing supplier"
	MarkPriceMissing = "price missing"
	MarkNoInvestment = "no investment needed"
)

func hasOrderValue(row entities.ReconciledRow) bool {
	v, ok := row.OrderValueRMB.Get()
	if !ok {
		v, ok = row.Order.OrderValue.Get()
	}
	return ok && v.IsPositive()
}

// Classify applies the completeness decision table, first match wins:
//
//	shortage, price, supplier and order value  complete
//	shortage, price and order value            partial
//	order value, no shortage                   complete
//	order, no shortage                         order-only
//	order                                      shortage-only-incomplete
//	otherwise                                  no-data
func Classify(row entities.ReconciledRow) entities.CompletenessTag {
	shortage := row.HasShortage()
	price := row.HasPrice()
	supplier := row.HasSupplier()
	value := hasOrderValue(row)
	order := row.Order.ProductionOrderID.Key() != ""

	switch {
	case shortage && price && supplier && value:
		return entities.Complete
	case shortage && price && value:
		return entities.Partial
	case value && !shortage:
		return entities.Complete
	case order && !shortage:
		return entities.OrderOnly
	case order:
		return entities.ShortageOnlyIncomplete
	default:
		return entities.NoData
	}
}

// ClassifyAll tags every row. No row is dropped here.
func ClassifyAll(rows []entities.ReconciledRow) []entities.ReconciledRow {
	out := make([]entities.ReconciledRow, len(rows))
	for i, row := range rows {
		row.Completeness = Classify(row)
		out[i] = row
	}
	return out
}

// DropNoData removes classified no-data rows and reports how many were removed
func DropNoData(rows []entities.ReconciledRow) ([]entities.ReconciledRow, int) {
	kept := slices.DeleteFunc(slices.Clone(rows), func(r entities.ReconciledRow) bool {
		return r.Completeness == entities.NoData
	})
	return kept, len(rows) - len(kept)
}

// Marks explains which fields of a row were missing from the sources
func Marks(row entities.ReconciledRow) []string {
	var marks []string
	if !row.HasShortage() {
		marks = append(marks, MarkNoShortage)
	} else {
		if line, _ := row.Shortage.Get(); !line.Qty().IsPositive() {
			marks = append(marks, MarkQtyMissing)
		}
		if !row.HasSupplier() {
			marks = append(marks, MarkNoSupplier)
		}
		if !row.HasPrice() {
			marks = append(marks, MarkPriceMissing)
		}
	}
	if row.ReturnRatio.Kind == entities.NoInvestmentNeeded {
		marks = append(marks, MarkNoInvestment)
	}
	if len(marks) == 0 {
		marks = append(marks, MarkOriginal)
	}
	return marks
}

// worstTag is the least complete of the tags, ranked by AllCompletenessTags
func worstTag(tags []entities.CompletenessTag) entities.CompletenessTag {
	worst, rank := entities.Complete, 0
	for _, t := range tags {
		if r := slices.Index(entities.AllCompletenessTags, t); r > rank {
			worst, rank = t, r
		}
	}
	return worst
}
