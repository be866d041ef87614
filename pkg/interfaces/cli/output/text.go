package output

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"github.com/yintu/pmc/pkg/application/dto"
	"github.com/yintu/pmc/pkg/domain/entities"
)

// topN limits the tables printed in the text summary unless verbose
const topN = 10

// writeText prints the headline numbers and the largest orders and suppliers
func writeText(w io.Writer, rep *dto.Report, verbose bool) error {
	st := rep.Summary
	avg := "n/a"
	if v, ok := st.AverageReturnRatio.Get(); ok {
		avg = v.StringFixed(2)
	}

	fmt.Fprintf(w, "📊 PMC Shortage Reconciliation\n")
	fmt.Fprintf(w, "==============================\n\n")
	fmt.Fprintf(w, "Run: %s (%s)\n", rep.RunID, rep.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Orders: %d\n", st.TotalOrders)
	fmt.Fprintf(w, "Rows: %d (excluded %d)\n", st.TotalRows, st.ExcludedRows)
	fmt.Fprintf(w, "Shortage Amount: ¥%s\n", st.TotalShortageAmountRMB.StringFixed(2))
	fmt.Fprintf(w, "Order Value: ¥%s\n", st.TotalOrderValueRMB.StringFixed(2))
	fmt.Fprintf(w, "Average Return Ratio: %s\n", avg)
	fmt.Fprintf(w, "Materials: %d (with supplier %d, without %d, multi-quote %d)\n",
		st.Materials, st.MaterialsWithSupplier, st.MaterialsNoSupplier, st.MultiQuoteMaterials)
	fmt.Fprintf(w, "Suppliers Involved: %d\n\n", st.SuppliersInvolved)

	fmt.Fprintf(w, "Completeness:\n")
	for _, c := range st.Completeness {
		fmt.Fprintf(w, "  %-26s %6d\n", c.Label, c.Rows)
	}
	fmt.Fprintln(w)

	limit := topN
	if verbose {
		limit = len(rep.Orders)
	}

	if len(rep.Orders) > 0 {
		fmt.Fprintf(w, "📋 Orders:\n")
		fmt.Fprintf(w, "%-15s %-15s %-10s %-5s %14s %14s %-22s\n",
			"Prod Order", "Model", "Site", "Month", "Shortage RMB", "Value RMB", "Return Ratio")
		fmt.Fprintf(w, "%-15s %-15s %-10s %-5s %14s %14s %-22s\n",
			"---------------", "---------------", "----------", "-----", "--------------", "--------------", "----------------------")
		for i, o := range rep.Orders {
			if i >= limit {
				fmt.Fprintf(w, "... %d more\n", len(rep.Orders)-limit)
				break
			}
			fmt.Fprintf(w, "%-15s %-15s %-10s %-5s %14s %14s %-22s\n",
				o.ProductionOrderID,
				o.ProductModel,
				o.Site,
				o.Month,
				o.TotalShortageAmountRMB.StringFixed(2),
				optionalMoney(o.OrderValueRMB),
				o.ReturnRatio)
		}
		fmt.Fprintln(w)
	}

	if len(rep.Suppliers) > 0 {
		fmt.Fprintf(w, "🏭 Suppliers:\n")
		fmt.Fprintf(w, "%-12s %-24s %8s %10s %14s\n", "ID", "Name", "Orders", "Materials", "Amount RMB")
		fmt.Fprintf(w, "%-12s %-24s %8s %10s %14s\n", "------------", "------------------------", "--------", "----------", "--------------")
		for i, s := range rep.Suppliers {
			if i >= topN && !verbose {
				fmt.Fprintf(w, "... %d more\n", len(rep.Suppliers)-topN)
				break
			}
			fmt.Fprintf(w, "%-12s %-24s %8d %10d %14s\n",
				s.SupplierID, s.SupplierName, s.Orders, s.Materials, s.TotalAmountRMB.StringFixed(2))
		}
		fmt.Fprintln(w)
	}

	warnings := 0
	for _, d := range rep.Diagnostics {
		if d.Severity == dto.SeverityWarning {
			warnings++
		}
	}
	if warnings > 0 {
		fmt.Fprintf(w, "⚠️  Warnings (%d):\n", warnings)
		for _, d := range rep.Diagnostics {
			if d.Severity == dto.SeverityWarning {
				fmt.Fprintf(w, "  [%s] %s\n", d.Stage, d.Message)
			}
		}
		fmt.Fprintln(w)
	}

	return nil
}

func optionalMoney(v entities.Optional[decimal.Decimal]) string {
	d, ok := v.Get()
	if !ok {
		return "-"
	}
	return d.StringFixed(2)
}
