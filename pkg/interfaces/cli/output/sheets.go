package output

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/yintu/pmc/pkg/application/dto"
	"github.com/yintu/pmc/pkg/domain/entities"
)

// Sheet names, shared by the workbook, the CSV file names and the text summary
const (
	SheetDetail          = "detail"
	SheetSummary         = "summary"
	SheetOrders          = "orders"
	SheetSuppliers       = "suppliers"
	SheetSupplierChoices = "supplier_choices"
	SheetNoSupplier      = "no_supplier"
	SheetMonthly         = "monthly"
	SheetDiagnostics     = "diagnostics"
)

// Sheet is one tabular section of the report. Cells hold string, int, float64, bool or nil.
type Sheet struct {
	Name   string
	Header []string
	Rows   [][]any
}

// BuildSheets flattens a report into its tabular sections in workbook order
func BuildSheets(rep *dto.Report) []Sheet {
	return []Sheet{
		detailSheet(rep.Detail),
		summarySheet(rep),
		ordersSheet(rep.Orders),
		suppliersSheet(rep.Suppliers),
		choicesSheet(rep.SupplierChoices),
		noSupplierSheet(rep.NoSupplier),
		monthlySheet(rep.Monthly),
		diagnosticsSheet(rep.Diagnostics),
	}
}

func detailSheet(rows []dto.DetailRow) Sheet {
	s := Sheet{
		Name: SheetDetail,
		Header: []string{
			"production_order", "customer_order", "product_model", "site", "month", "destination",
			"order_value_rmb", "value_defaulted", "material_id", "material_name", "shortage_qty",
			"supplier", "supplier_id", "quote_count", "unit_price_rmb", "price_source",
			"shortage_amount_rmb", "return_ratio", "completeness", "marks",
		},
	}
	for _, r := range rows {
		var (
			materialName string
			shortageQty  any
			supplierID   string
		)
		if line, ok := r.Shortage.Get(); ok {
			materialName = line.MaterialName
			shortageQty = decimalCell(line.ShortageQty)
		}
		if q, ok := r.Supplier.Primary.Get(); ok {
			supplierID = string(q.SupplierID)
		}
		s.Rows = append(s.Rows, []any{
			string(r.Order.ProductionOrderID),
			string(r.Order.CustomerOrderID),
			r.Order.ProductModel,
			r.Order.Site.String(),
			r.Order.Month.String(),
			r.Order.Destination,
			decimalCell(r.OrderValueRMB),
			r.Order.ValueDefaulted,
			string(r.MaterialID()),
			materialName,
			shortageQty,
			r.Supplier.SupplierName(),
			supplierID,
			r.Supplier.QuoteCount,
			decimalCell(r.UnitPriceRMB),
			r.PriceSource.String(),
			money(r.ShortageAmountRMB),
			r.ReturnRatio.String(),
			r.Completeness.String(),
			strings.Join(r.Marks, "; "),
		})
	}
	return s
}

func summarySheet(rep *dto.Report) Sheet {
	st := rep.Summary
	s := Sheet{Name: SheetSummary, Header: []string{"metric", "value"}}
	add := func(metric string, value any) {
		s.Rows = append(s.Rows, []any{metric, value})
	}

	add("run_id", rep.RunID)
	add("generated_at", rep.GeneratedAt.Format(time.RFC3339))
	add("total_orders", st.TotalOrders)
	add("total_rows", st.TotalRows)
	add("excluded_rows", st.ExcludedRows)
	add("total_shortage_amount_rmb", money(st.TotalShortageAmountRMB))
	add("total_order_value_rmb", money(st.TotalOrderValueRMB))
	add("average_return_ratio", decimalCell(st.AverageReturnRatio))
	add("no_investment_orders", st.NoInvestmentOrders)
	add("insufficient_data_orders", st.InsufficientDataOrders)
	add("materials", st.Materials)
	add("materials_with_supplier", st.MaterialsWithSupplier)
	add("materials_no_supplier", st.MaterialsNoSupplier)
	add("multi_quote_materials", st.MultiQuoteMaterials)
	add("suppliers_involved", st.SuppliersInvolved)
	for _, c := range st.Completeness {
		add("rows_"+c.Label, c.Rows)
	}
	return s
}

func ordersSheet(orders []entities.OrderSummary) Sheet {
	s := Sheet{
		Name: SheetOrders,
		Header: []string{
			"production_order", "product_model", "site", "month", "destination", "customer_orders",
			"shortage_lines", "shortage_amount_rmb", "order_value_rmb", "return_ratio", "completeness",
		},
	}
	for _, o := range orders {
		customers := make([]string, len(o.CustomerOrders))
		for i, c := range o.CustomerOrders {
			customers[i] = string(c)
		}
		s.Rows = append(s.Rows, []any{
			string(o.ProductionOrderID),
			o.ProductModel,
			o.Site.String(),
			o.Month.String(),
			o.Destination,
			strings.Join(customers, ", "),
			o.ShortageLines,
			money(o.TotalShortageAmountRMB),
			decimalCell(o.OrderValueRMB),
			o.ReturnRatio.String(),
			o.Completeness.String(),
		})
	}
	return s
}

func suppliersSheet(suppliers []dto.SupplierSummary) Sheet {
	s := Sheet{
		Name: SheetSuppliers,
		Header: []string{
			"supplier_id", "supplier_name", "orders", "materials", "shortage_lines",
			"total_amount_rmb", "average_line_amount_rmb",
		},
	}
	for _, sup := range suppliers {
		s.Rows = append(s.Rows, []any{
			string(sup.SupplierID),
			sup.SupplierName,
			sup.Orders,
			sup.Materials,
			sup.ShortageLines,
			money(sup.TotalAmountRMB),
			money(sup.AverageLineAmount),
		})
	}
	return s
}

func choicesSheet(choices []dto.SupplierChoice) Sheet {
	s := Sheet{
		Name: SheetSupplierChoices,
		Header: []string{
			"material_id", "material_name", "supplier_id", "supplier_name", "unit_price", "currency",
			"price_rmb", "min_order_qty", "last_modified", "quote_count", "price_rank", "date_rank",
			"score", "primary",
		},
	}
	for _, c := range choices {
		var modified string
		if t, ok := c.LastModified.Get(); ok {
			modified = t.Format(time.DateOnly)
		}
		s.Rows = append(s.Rows, []any{
			string(c.MaterialID),
			c.MaterialName,
			string(c.SupplierID),
			c.SupplierName,
			decimalCell(c.UnitPrice),
			string(c.Currency),
			decimalCell(c.PriceRMB),
			decimalCell(c.MinOrderQty),
			modified,
			c.QuoteCount,
			c.PriceRank,
			c.DateRank,
			c.Score,
			c.Primary,
		})
	}
	return s
}

func noSupplierSheet(materials []dto.NoSupplierMaterial) Sheet {
	s := Sheet{
		Name: SheetNoSupplier,
		Header: []string{
			"material_id", "material_name", "category", "occurrences", "orders",
			"total_shortage_qty", "inventory_price_rmb",
		},
	}
	for _, m := range materials {
		s.Rows = append(s.Rows, []any{
			string(m.MaterialID),
			m.MaterialName,
			m.Category,
			m.Occurrences,
			m.Orders,
			m.TotalShortageQty.InexactFloat64(),
			decimalCell(m.InventoryPriceRMB),
		})
	}
	return s
}

func monthlySheet(monthly []dto.MonthlyPurchase) Sheet {
	s := Sheet{
		Name: SheetMonthly,
		Header: []string{
			"month", "site", "production_order", "product_model", "customer_orders", "materials",
			"suppliers", "material_count", "shortage_amount_rmb", "order_value_rmb", "return_ratio",
		},
	}
	for _, m := range monthly {
		s.Rows = append(s.Rows, []any{
			m.Month.String(),
			m.Site.String(),
			string(m.ProductionOrderID),
			m.ProductModel,
			m.CustomerOrders,
			m.Materials,
			m.Suppliers,
			m.MaterialCount,
			money(m.TotalShortageAmountRMB),
			decimalCell(m.OrderValueRMB),
			m.ReturnRatio.String(),
		})
	}
	return s
}

func diagnosticsSheet(diagnostics []dto.Diagnostic) Sheet {
	s := Sheet{Name: SheetDiagnostics, Header: []string{"severity", "stage", "source", "message"}}
	for _, d := range diagnostics {
		s.Rows = append(s.Rows, []any{d.Severity.String(), d.Stage, d.Source, d.Message})
	}
	return s
}

// money rounds to cents for display
func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

func decimalCell(v entities.Optional[decimal.Decimal]) any {
	d, ok := v.Get()
	if !ok {
		return nil
	}
	return d.Round(4).InexactFloat64()
}
