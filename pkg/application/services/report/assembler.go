package report

import (
	"cmp"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/yintu/pmc/pkg/application/dto"
	"github.com/yintu/pmc/pkg/application/services/metrics"
	"github.com/yintu/pmc/pkg/application/services/selection"
	"github.com/yintu/pmc/pkg/domain/entities"
	"github.com/yintu/pmc/pkg/domain/services"
)

// Assemble classifies the annotated rows, drops no-data rows and builds every
// report section from what remains.
func Assemble(result *dto.ReconciliationResult) *dto.Report {
	classified := ClassifyAll(result.Rows)
	kept, excluded := DropNoData(classified)

	summaries := metrics.Summarize(kept)
	tagsByOrder := make(map[entities.ProductionOrderID][]entities.CompletenessTag)
	for _, row := range kept {
		po := row.Order.ProductionOrderID.Key()
		tagsByOrder[po] = append(tagsByOrder[po], row.Completeness)
	}
	for i := range summaries {
		summaries[i].Completeness = worstTag(tagsByOrder[summaries[i].ProductionOrderID])
	}

	detail := make([]dto.DetailRow, len(kept))
	for i, row := range kept {
		detail[i] = dto.DetailRow{ReconciledRow: row, Marks: Marks(row)}
	}

	return &dto.Report{
		Detail:          detail,
		Orders:          summaries,
		Summary:         summarize(classified, kept, excluded, summaries, result.Selections),
		Suppliers:       supplierSummaries(kept),
		SupplierChoices: selection.Choices(result.Selections, materialNames(kept)),
		NoSupplier:      noSupplierMaterials(kept),
		Monthly:         monthlyPurchases(kept, summaries),
		Diagnostics:     result.Diagnostics,
	}
}

func summarize(classified, kept []entities.ReconciledRow, excluded int, summaries []entities.OrderSummary, selections []dto.MaterialSelection) dto.SummaryStats {
	stats := dto.SummaryStats{
		TotalOrders:            len(summaries),
		TotalRows:              len(kept),
		ExcludedRows:           excluded,
		TotalShortageAmountRMB: decimal.Zero,
		TotalOrderValueRMB:     decimal.Zero,
		AverageReturnRatio:     metrics.AverageRatio(summaries),
	}

	for _, s := range summaries {
		stats.TotalShortageAmountRMB = stats.TotalShortageAmountRMB.Add(s.TotalShortageAmountRMB)
		stats.TotalOrderValueRMB = stats.TotalOrderValueRMB.Add(s.OrderValueRMB.OrElse(decimal.Zero))
		switch s.ReturnRatio.Kind {
		case entities.NoInvestmentNeeded:
			stats.NoInvestmentOrders++
		case entities.InsufficientData:
			stats.InsufficientDataOrders++
		}
	}

	counts := make(map[entities.CompletenessTag]int)
	for _, row := range classified {
		counts[row.Completeness]++
	}
	for _, tag := range entities.AllCompletenessTags {
		stats.Completeness = append(stats.Completeness, dto.CompletenessCount{Tag: tag, Label: tag.String(), Rows: counts[tag]})
	}

	inReport := make(map[entities.MaterialID]bool)
	suppliers := make(map[string]bool)
	for _, row := range kept {
		if row.HasShortage() && row.MaterialID() != "" {
			inReport[row.MaterialID()] = true
		}
		if q, ok := row.Supplier.Primary.Get(); ok {
			suppliers[supplierKey(q)] = true
		}
	}
	for _, sel := range selections {
		if !inReport[sel.MaterialID] {
			continue
		}
		stats.Materials++
		if sel.Resolution.Status == entities.SupplierFound {
			stats.MaterialsWithSupplier++
		} else {
			stats.MaterialsNoSupplier++
		}
		if sel.Resolution.QuoteCount > 1 {
			stats.MultiQuoteMaterials++
		}
	}
	stats.SuppliersInvolved = len(suppliers)

	return stats
}

func supplierKey(q entities.SupplierQuote) string {
	if q.SupplierID != "" {
		return string(q.SupplierID)
	}
	return q.SupplierName
}

func materialNames(rows []entities.ReconciledRow) map[entities.MaterialID]string {
	names := make(map[entities.MaterialID]string)
	for _, row := range rows {
		if line, ok := row.Shortage.Get(); ok && names[line.MaterialID] == "" {
			names[line.MaterialID] = line.MaterialName
		}
	}
	return names
}

type supplierAgg struct {
	summary   dto.SupplierSummary
	orders    map[entities.ProductionOrderID]bool
	materials map[entities.MaterialID]bool
}

// supplierSummaries totals the shortage cost routed to each primary supplier
func supplierSummaries(rows []entities.ReconciledRow) []dto.SupplierSummary {
	var keys []string
	aggs := make(map[string]*supplierAgg)

	for _, row := range rows {
		q, ok := row.Supplier.Primary.Get()
		if !ok || !row.CountsShortage {
			continue
		}
		key := supplierKey(q)
		agg, ok := aggs[key]
		if !ok {
			agg = &supplierAgg{
				summary: dto.SupplierSummary{
					SupplierID:     q.SupplierID,
					SupplierName:   q.SupplierName,
					TotalAmountRMB: decimal.Zero,
				},
				orders:    make(map[entities.ProductionOrderID]bool),
				materials: make(map[entities.MaterialID]bool),
			}
			aggs[key] = agg
			keys = append(keys, key)
		}
		agg.orders[row.Order.ProductionOrderID.Key()] = true
		agg.materials[row.MaterialID()] = true
		agg.summary.ShortageLines++
		agg.summary.TotalAmountRMB = agg.summary.TotalAmountRMB.Add(row.ShortageAmountRMB)
	}

	out := make([]dto.SupplierSummary, 0, len(keys))
	for _, key := range keys {
		agg := aggs[key]
		s := agg.summary
		s.Orders = len(agg.orders)
		s.Materials = len(agg.materials)
		s.AverageLineAmount = s.TotalAmountRMB.Div(decimal.NewFromInt(int64(s.ShortageLines))).Round(2)
		out = append(out, s)
	}
	slices.SortStableFunc(out, func(a, b dto.SupplierSummary) int {
		return b.TotalAmountRMB.Cmp(a.TotalAmountRMB)
	})
	return out
}

// MaterialCategory groups a material by its code prefix
func MaterialCategory(id entities.MaterialID) string {
	code := string(id)
	hasAny := func(prefixes ...string) bool {
		return slices.ContainsFunc(prefixes, func(p string) bool { return strings.HasPrefix(code, p) })
	}
	switch {
	case hasAny("9-"):
		return "electronic"
	case hasAny("131-", "303-", "302-", "710-", "720-", "731-"):
		return "mechanical"
	case hasAny("8-", "7-"):
		return "packaging"
	case hasAny("1-", "2-"):
		return "raw material"
	default:
		return "other"
	}
}

type noSupplierAgg struct {
	item   dto.NoSupplierMaterial
	orders map[entities.ProductionOrderID]bool
}

// noSupplierMaterials lists short materials without any quote, most frequent first
func noSupplierMaterials(rows []entities.ReconciledRow) []dto.NoSupplierMaterial {
	var ids []entities.MaterialID
	aggs := make(map[entities.MaterialID]*noSupplierAgg)

	for _, row := range rows {
		line, ok := row.Shortage.Get()
		if !ok || row.Supplier.Status != entities.SupplierNotFound || !row.CountsShortage {
			continue
		}
		agg, ok := aggs[line.MaterialID]
		if !ok {
			agg = &noSupplierAgg{
				item: dto.NoSupplierMaterial{
					MaterialID:       line.MaterialID,
					MaterialName:     line.MaterialName,
					Category:         MaterialCategory(line.MaterialID),
					TotalShortageQty: decimal.Zero,
				},
				orders: make(map[entities.ProductionOrderID]bool),
			}
			if inv, ok := row.Inventory.Get(); ok {
				agg.item.InventoryPriceRMB = inv.PriceRMB
			}
			aggs[line.MaterialID] = agg
			ids = append(ids, line.MaterialID)
		}
		agg.item.Occurrences++
		agg.item.TotalShortageQty = agg.item.TotalShortageQty.Add(line.Qty())
		agg.orders[row.Order.ProductionOrderID.Key()] = true
	}

	out := make([]dto.NoSupplierMaterial, 0, len(ids))
	for _, id := range ids {
		item := aggs[id].item
		item.Orders = len(aggs[id].orders)
		out = append(out, item)
	}
	codes := services.NewCodeComparator()
	slices.SortStableFunc(out, func(a, b dto.NoSupplierMaterial) int {
		return cmp.Or(
			cmp.Compare(b.Occurrences, a.Occurrences),
			codes.CompareCodes(string(a.MaterialID), string(b.MaterialID)),
		)
	})
	return out
}

// monthlyPurchases lists, month by month, what each production order needs bought
func monthlyPurchases(rows []entities.ReconciledRow, summaries []entities.OrderSummary) []dto.MonthlyPurchase {
	materials := make(map[entities.ProductionOrderID][]string)
	suppliers := make(map[entities.ProductionOrderID][]string)
	for _, row := range rows {
		if !row.HasShortage() {
			continue
		}
		po := row.Order.ProductionOrderID.Key()
		if id := string(row.MaterialID()); id != "" && !slices.Contains(materials[po], id) {
			materials[po] = append(materials[po], id)
		}
		if !row.HasSupplier() {
			continue
		}
		if name := row.Supplier.SupplierName(); !slices.Contains(suppliers[po], name) {
			suppliers[po] = append(suppliers[po], name)
		}
	}

	out := make([]dto.MonthlyPurchase, 0, len(summaries))
	for _, s := range summaries {
		customers := make([]string, len(s.CustomerOrders))
		for i, c := range s.CustomerOrders {
			customers[i] = string(c)
		}
		out = append(out, dto.MonthlyPurchase{
			Month:                  s.Month,
			Site:                   s.Site,
			ProductionOrderID:      s.ProductionOrderID,
			ProductModel:           s.ProductModel,
			CustomerOrders:         strings.Join(customers, ", "),
			Materials:              strings.Join(materials[s.ProductionOrderID], ", "),
			Suppliers:              strings.Join(suppliers[s.ProductionOrderID], ", "),
			MaterialCount:          len(materials[s.ProductionOrderID]),
			TotalShortageAmountRMB: s.TotalShortageAmountRMB,
			OrderValueRMB:          s.OrderValueRMB,
			ReturnRatio:            s.ReturnRatio,
		})
	}
	slices.SortStableFunc(out, func(a, b dto.MonthlyPurchase) int {
		return cmp.Or(cmp.Compare(a.Month, b.Month), cmp.Compare(a.Site, b.Site))
	})
	return out
}
