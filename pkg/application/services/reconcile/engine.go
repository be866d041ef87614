// Package reconcile joins orders with their shortage lines and prices every
// short material through its primary supplier or the inventory list.
package reconcile

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/yintu/pmc/pkg/application/dto"
	"github.com/yintu/pmc/pkg/application/services/selection"
	"github.com/yintu/pmc/pkg/domain/entities"
	"github.com/yintu/pmc/pkg/domain/repositories"
)

// Engine runs the join, supplier selection, inventory lookup and amount steps
type Engine struct {
	orders    repositories.OrderRepository
	shortage  repositories.ShortageRepository
	inventory repositories.InventoryRepository
	selector  *selection.Selector
	logger    *slog.Logger
}

// NewEngine creates a reconciliation engine over loaded repositories
func NewEngine(
	orders repositories.OrderRepository,
	shortage repositories.ShortageRepository,
	inventory repositories.InventoryRepository,
	selector *selection.Selector,
	logger *slog.Logger,
) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		orders:    orders,
		shortage:  shortage,
		inventory: inventory,
		selector:  selector,
		logger:    logger,
	}
}

// Reconcile produces one row per order and shortage line. Orders without
// shortage survive as a single row with empty shortage fields.
func (e *Engine) Reconcile(ctx context.Context) (*dto.ReconciliationResult, error) {
	start := time.Now()

	orders, err := e.orders.GetOrders()
	if err != nil {
		return nil, fmt.Errorf("failed to get orders: %w", err)
	}

	// Step 1: orders ⟕ shortage
	rows, err := JoinShortage(orders, e.shortage)
	if err != nil {
		return nil, err
	}

	// Step 2: primary supplier per distinct material
	materials := DistinctMaterials(rows)
	selections, err := e.selector.SelectAll(ctx, materials)
	if err != nil {
		return nil, fmt.Errorf("supplier selection failed: %w", err)
	}
	rows = AttachSuppliers(rows, selections)

	// Step 3: inventory fallback prices
	rows = AttachInventory(rows, e.inventory)

	// Step 4: amounts
	rows = ComputeShortageAmounts(rows)

	e.logger.InfoContext(ctx, "reconciliation complete",
		slog.Int("orders", len(orders)),
		slog.Int("rows", len(rows)),
		slog.Int("materials", len(materials)),
		slog.Duration("elapsed", time.Since(start)))

	return &dto.ReconciliationResult{Rows: rows, Selections: selections}, nil
}

// JoinShortage left-joins orders to their shortage lines on the trimmed
// production order id. Output follows order order, then shortage line order.
func JoinShortage(orders []*entities.Order, shortage repositories.ShortageRepository) ([]entities.ReconciledRow, error) {
	rows := make([]entities.ReconciledRow, 0, len(orders))
	for _, order := range orders {
		lines, err := shortage.GetShortageLines(order.ProductionOrderID.Key())
		if err != nil {
			return nil, fmt.Errorf("failed to get shortage lines for %s: %w", order.ProductionOrderID, err)
		}
		if len(lines) == 0 {
			rows = append(rows, entities.ReconciledRow{Order: *order})
			continue
		}
		for _, line := range lines {
			rows = append(rows, entities.ReconciledRow{
				Order:    *order,
				Shortage: entities.Some(*line),
			})
		}
	}
	return rows, nil
}

// DistinctMaterials lists the shortage materials of rows in first-seen order
func DistinctMaterials(rows []entities.ReconciledRow) []entities.MaterialID {
	seen := make(map[entities.MaterialID]bool)
	var materials []entities.MaterialID
	for _, row := range rows {
		id := row.MaterialID()
		if !row.HasShortage() || id == "" || seen[id] {
			continue
		}
		seen[id] = true
		materials = append(materials, id)
	}
	return materials
}

// AttachSuppliers copies each material's resolution onto every row that needs it.
// Rows without shortage stay not applicable; short rows of unknown materials get no supplier.
func AttachSuppliers(rows []entities.ReconciledRow, selections []dto.MaterialSelection) []entities.ReconciledRow {
	byMaterial := make(map[entities.MaterialID]entities.SupplierResolution, len(selections))
	for _, s := range selections {
		byMaterial[s.MaterialID] = s.Resolution
	}

	out := make([]entities.ReconciledRow, len(rows))
	for i, row := range rows {
		if row.HasShortage() {
			if res, ok := byMaterial[row.MaterialID()]; ok {
				row.Supplier = res
			} else {
				row.Supplier = entities.SupplierResolution{Status: entities.SupplierNotFound}
			}
		}
		out[i] = row
	}
	return out
}

// AttachInventory looks up the inventory record of each short material
func AttachInventory(rows []entities.ReconciledRow, inventory repositories.InventoryRepository) []entities.ReconciledRow {
	out := make([]entities.ReconciledRow, len(rows))
	for i, row := range rows {
		if row.HasShortage() {
			if record, ok := inventory.FindInventoryRecord(row.MaterialID()); ok {
				row.Inventory = entities.Some(*record)
			}
		}
		out[i] = row
	}
	return out
}

// ComputeShortageAmounts resolves the unit price (primary supplier, else
// inventory, else zero) and multiplies it by the shortage quantity.
func ComputeShortageAmounts(rows []entities.ReconciledRow) []entities.ReconciledRow {
	out := make([]entities.ReconciledRow, len(rows))
	for i, row := range rows {
		row.ShortageAmountRMB = decimal.Zero
		row.UnitPriceRMB = entities.None[decimal.Decimal]()
		row.PriceSource = entities.PriceFromNone

		if line, ok := row.Shortage.Get(); ok {
			price, source := resolvePrice(row)
			row.PriceSource = source
			if source != entities.PriceFromNone {
				row.UnitPriceRMB = entities.Some(price)
			}
			row.ShortageAmountRMB = line.Qty().Mul(price)
		}
		out[i] = row
	}
	return out
}

func resolvePrice(row entities.ReconciledRow) (decimal.Decimal, entities.PriceSource) {
	if quote, ok := row.Supplier.Primary.Get(); ok {
		if price, ok := quote.PositivePrice(); ok {
			return price, entities.PriceFromSupplier
		}
	}
	if record, ok := row.Inventory.Get(); ok && record.HasPrice() {
		price, _ := record.PriceRMB.Get()
		return price, entities.PriceFromInventory
	}
	return decimal.Zero, entities.PriceFromNone
}
