package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/yintu/pmc/pkg/domain/entities"
)

// Report is the assembled output of one run
type Report struct {
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`

	Detail          []DetailRow             `json:"detail"`
	Orders          []entities.OrderSummary `json:"orders"`
	Summary         SummaryStats            `json:"summary"`
	Suppliers       []SupplierSummary       `json:"suppliers"`
	SupplierChoices []SupplierChoice        `json:"supplier_choices"`
	NoSupplier      []NoSupplierMaterial    `json:"no_supplier"`
	Monthly         []MonthlyPurchase       `json:"monthly"`
	Diagnostics     []Diagnostic            `json:"diagnostics"`
}

// DetailRow is a classified reconciled row with the data-fill marks that explain it
type DetailRow struct {
	entities.ReconciledRow
	Marks []string `json:"marks"`
}

// CompletenessCount is one bucket of the completeness distribution
type CompletenessCount struct {
	Tag   entities.CompletenessTag `json:"-"`
	Label string                   `json:"tag"`
	Rows  int                      `json:"rows"`
}

// SummaryStats holds the headline numbers of the report
type SummaryStats struct {
	TotalOrders            int                                `json:"total_orders"`
	TotalRows              int                                `json:"total_rows"`
	ExcludedRows           int                                `json:"excluded_rows"`
	TotalShortageAmountRMB decimal.Decimal                    `json:"total_shortage_amount_rmb"`
	TotalOrderValueRMB     decimal.Decimal                    `json:"total_order_value_rmb"`
	AverageReturnRatio     entities.Optional[decimal.Decimal] `json:"average_return_ratio"`
	NoInvestmentOrders     int                                `json:"no_investment_orders"`
	InsufficientDataOrders int                                `json:"insufficient_data_orders"`
	Completeness           []CompletenessCount                `json:"completeness"`
	Materials              int                                `json:"materials"`
	MaterialsWithSupplier  int                                `json:"materials_with_supplier"`
	MaterialsNoSupplier    int                                `json:"materials_no_supplier"`
	MultiQuoteMaterials    int                                `json:"multi_quote_materials"`
	SuppliersInvolved      int                                `json:"suppliers_involved"`
}

// SupplierSummary aggregates the purchasing volume routed to one primary supplier
type SupplierSummary struct {
	SupplierID        entities.SupplierID `json:"supplier_id"`
	SupplierName      string              `json:"supplier_name"`
	Orders            int                 `json:"orders"`
	Materials         int                 `json:"materials"`
	ShortageLines     int                 `json:"shortage_lines"`
	TotalAmountRMB    decimal.Decimal     `json:"total_amount_rmb"`
	AverageLineAmount decimal.Decimal     `json:"average_line_amount_rmb"`
}

// SupplierChoice is one quote of a material that has several suppliers
type SupplierChoice struct {
	MaterialID   entities.MaterialID                `json:"material_id"`
	MaterialName string                             `json:"material_name"`
	SupplierID   entities.SupplierID                `json:"supplier_id"`
	SupplierName string                             `json:"supplier_name"`
	UnitPrice    entities.Optional[decimal.Decimal] `json:"unit_price"`
	Currency     entities.Currency                  `json:"currency"`
	PriceRMB     entities.Optional[decimal.Decimal] `json:"price_rmb"`
	MinOrderQty  entities.Optional[decimal.Decimal] `json:"min_order_qty"`
	LastModified entities.Optional[time.Time]       `json:"last_modified"`
	QuoteCount   int                                `json:"quote_count"`
	PriceRank    int                                `json:"price_rank"`
	DateRank     int                                `json:"date_rank"`
	Score        int                                `json:"score"`
	Primary      bool                               `json:"primary"`
}

// NoSupplierMaterial is a short material with no quote on the supplier list
type NoSupplierMaterial struct {
	MaterialID        entities.MaterialID                `json:"material_id"`
	MaterialName      string                             `json:"material_name"`
	Category          string                             `json:"category"`
	Occurrences       int                                `json:"occurrences"`
	Orders            int                                `json:"orders"`
	TotalShortageQty  decimal.Decimal                    `json:"total_shortage_qty"`
	InventoryPriceRMB entities.Optional[decimal.Decimal] `json:"inventory_price_rmb"`
}

// MonthlyPurchase summarises the purchasing needed for one production order in one month
type MonthlyPurchase struct {
	Month                  entities.Month                     `json:"month"`
	Site                   entities.Site                      `json:"site"`
	ProductionOrderID      entities.ProductionOrderID         `json:"production_order_id"`
	ProductModel           string                             `json:"product_model"`
	CustomerOrders         string                             `json:"customer_orders"`
	Materials              string                             `json:"materials"`
	Suppliers              string                             `json:"suppliers"`
	MaterialCount          int                                `json:"material_count"`
	TotalShortageAmountRMB decimal.Decimal                    `json:"total_shortage_amount_rmb"`
	OrderValueRMB          entities.Optional[decimal.Decimal] `json:"order_value_rmb"`
	ReturnRatio            entities.ReturnRatio               `json:"return_ratio"`
}
