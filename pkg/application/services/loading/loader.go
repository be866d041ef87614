// Package loading turns raw sheets into typed entities. Loaders coerce bad
// cells to null and never fail on an individual record; only an unusable
// order source stops the run.
package loading

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/yintu/pmc/pkg/application/dto"
	"github.com/yintu/pmc/pkg/domain/entities"
	"github.com/yintu/pmc/pkg/domain/table"
)

const stageLoad = "load"

// headerSearchRows bounds how far down an order sheet the header may sit
const headerSearchRows = 10

// SheetReader reads raw rows of one sheet. An empty sheet name means the first sheet.
type SheetReader interface {
	ReadRows(path, sheet string) ([][]string, error)
}

// OrderSource is one order workbook
type OrderSource struct {
	Path   string
	Site   entities.Site
	Sheets []MonthSheets
}

// MonthSheets lists the candidate sheet names for one month, first match wins
type MonthSheets struct {
	Month entities.Month
	Names []string
}

// SheetSource is a single-sheet workbook with candidate sheet names
type SheetSource struct {
	Name   string
	Path   string
	Sheets []string
}

// Options carries the currency settings applied while loading
type Options struct {
	Rates             entities.RateTable
	OrderCurrency     entities.Currency
	DefaultOrderValue decimal.Decimal
}

// Loader parses the four input sources
type Loader struct {
	reader SheetReader
	opts   Options
	logger *slog.Logger
}

// NewLoader creates a loader reading through reader
func NewLoader(reader SheetReader, opts Options, logger *slog.Logger) *Loader {
	if opts.Rates == nil {
		opts.Rates = entities.DefaultRates()
	}
	if opts.OrderCurrency == "" {
		opts.OrderCurrency = entities.USD
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{reader: reader, opts: opts, logger: logger}
}

// readSheet tries each candidate sheet and returns the rows of the first that exists.
// A missing file is reported immediately; a missing sheet moves on to the next candidate.
func (l *Loader) readSheet(path string, candidates []string) ([][]string, string, error) {
	if len(candidates) == 0 {
		candidates = []string{""}
	}
	var lastErr error
	for _, sheet := range candidates {
		rows, err := l.reader.ReadRows(path, sheet)
		if err == nil {
			return rows, sheet, nil
		}
		if errors.Is(err, entities.ErrSourceUnavailable) || errors.Is(err, entities.ErrUnsupportedFormat) {
			return nil, "", err
		}
		lastErr = err
	}
	return nil, "", lastErr
}

// LoadOrders reads every month sheet of every order source. An unreadable order
// file is fatal; a missing month sheet is a warning. The run also fails when no
// order survives filtering.
func (l *Loader) LoadOrders(ctx context.Context, sources []OrderSource) ([]*entities.Order, []dto.Diagnostic, error) {
	var (
		orders      []*entities.Order
		diagnostics []dto.Diagnostic
		sourceRow   int
	)

	for _, src := range sources {
		for _, month := range src.Sheets {
			if err := ctx.Err(); err != nil {
				return nil, diagnostics, err
			}

			rows, sheet, err := l.readSheet(src.Path, month.Names)
			if err != nil {
				if errors.Is(err, entities.ErrSourceUnavailable) || errors.Is(err, entities.ErrUnsupportedFormat) {
					return nil, diagnostics, fmt.Errorf("%w: %v", entities.ErrOrdersUnavailable, err)
				}
				diagnostics = append(diagnostics, dto.Warningf(stageLoad, src.Path,
					"%s sheet for %s not found: %v", src.Site, month.Month, err))
				continue
			}

			tbl := table.Normalize(table.FromRows(rows, findHeaderRow(rows, OrderColumns, ColProductionOrder)), OrderColumns)
			parsed, diags := l.parseOrders(tbl, src, month.Month, sheet, &sourceRow)
			orders = append(orders, parsed...)
			diagnostics = append(diagnostics, diags...)

			l.logger.InfoContext(ctx, "order sheet loaded",
				slog.String("file", src.Path),
				slog.String("sheet", sheet),
				slog.String("site", src.Site.String()),
				slog.String("month", month.Month.String()),
				slog.Int("rows", len(parsed)))
		}
	}

	if len(orders) == 0 {
		return nil, diagnostics, entities.ErrNoOrders
	}
	return orders, diagnostics, nil
}

func (l *Loader) parseOrders(tbl *table.Table, src OrderSource, month entities.Month, sheet string, sourceRow *int) ([]*entities.Order, []dto.Diagnostic) {
	var diagnostics []dto.Diagnostic
	label := fmt.Sprintf("%s[%s]", src.Path, sheet)

	hasValue := tbl.Has(ColOrderValue)
	if !hasValue {
		diagnostics = append(diagnostics, dto.Warningf(stageLoad, label,
			"order value column missing, using default %s %s per order", l.opts.DefaultOrderValue, l.opts.OrderCurrency))
		l.logger.Warn("order value column missing, default injected",
			slog.String("sheet", label),
			slog.String("default", l.opts.DefaultOrderValue.String()))
	}

	var (
		orders  []*entities.Order
		dropped int
	)
	for i := range tbl.Rows {
		order, err := entities.NewOrder(
			entities.ProductionOrderID(tbl.Value(i, ColProductionOrder)),
			entities.CustomerOrderID(tbl.Value(i, ColCustomerOrder)),
			tbl.Value(i, ColProductModel),
		)
		if err != nil {
			dropped++
			continue
		}

		order.Site = src.Site
		order.Month = month
		order.Quantity = ParseQuantity(tbl.Value(i, ColQuantity))
		order.Destination = tbl.Value(i, ColDestination)
		order.CustomerDueDate = ParseDate(tbl.Value(i, ColDueDate))
		order.BOMNo = tbl.Value(i, ColBOMNo)
		order.ItemNo = tbl.Value(i, ColItemNo)
		order.Currency = l.opts.OrderCurrency
		if raw := tbl.Value(i, ColOrderCurrency); raw != "" {
			order.Currency = entities.ParseCurrency(raw)
		}
		if hasValue {
			order.OrderValue = ParseDecimal(tbl.Value(i, ColOrderValue))
		} else {
			order.OrderValue = entities.Some(l.opts.DefaultOrderValue)
			order.ValueDefaulted = true
		}
		order.SourceRow = *sourceRow
		*sourceRow++

		orders = append(orders, order)
	}

	if dropped > 0 {
		diagnostics = append(diagnostics, dto.Infof(stageLoad, label,
			"%d rows without production order or product model dropped", dropped))
	}
	return orders, diagnostics
}

// LoadShortage reads the shortage export. A missing source yields no lines and a warning.
func (l *Loader) LoadShortage(ctx context.Context, src SheetSource) ([]*entities.ShortageLine, []dto.Diagnostic) {
	rows, sheet, err := l.readSheet(src.Path, src.Sheets)
	if err != nil {
		return nil, []dto.Diagnostic{l.degraded(ctx, src, err)}
	}
	if len(rows) < 2 {
		return nil, []dto.Diagnostic{dto.Warningf(stageLoad, src.Path, "shortage sheet %q has no data rows", sheet)}
	}

	// first row is a banner; the header sits below it
	tbl := table.FromRows(rows, 1)
	if len(tbl.Columns) >= MinShortageColumns {
		n := min(len(ShortageLayout), len(tbl.Columns))
		tbl = tbl.WithColumns(ShortageLayout[:n])
	} else {
		tbl = table.Normalize(tbl, ShortageColumns)
	}

	var (
		lines       []*entities.ShortageLine
		diagnostics []dto.Diagnostic
		noRef       int
		kitted      int
		badQty      int
	)
	for i := range tbl.Rows {
		ref := tbl.Value(i, ColOrderRef)
		name := tbl.Value(i, ColMaterialName)
		if ref == "" {
			noRef++
			continue
		}
		if entities.IsKittedMarker(name) {
			kitted++
			continue
		}

		qty := ParseDecimal(tbl.Value(i, ColShortageQty))
		if q, ok := qty.Get(); ok && q.IsNegative() {
			qty = entities.None[decimal.Decimal]()
			badQty++
		}

		line, err := entities.NewShortageLine(entities.ProductionOrderID(ref), entities.MaterialID(tbl.Value(i, ColMaterialID)), name, qty)
		if err != nil {
			noRef++
			continue
		}
		line.DemandQty = ParseDecimal(tbl.Value(i, ColDemandQty))
		line.PurchasedNotReturned = ParseDecimal(tbl.Value(i, ColPurchasedNotReturned))
		line.OnHandQty = ParseDecimal(tbl.Value(i, ColOnHand))
		line.CustomerModel = tbl.Value(i, ColCustomerModel)
		line.Department = tbl.Value(i, ColDepartment)
		line.RequestGroup = tbl.Value(i, ColRequestGroup)
		line.SourceRow = i

		lines = append(lines, line)
	}

	if noRef > 0 {
		diagnostics = append(diagnostics, dto.Infof(stageLoad, src.Path, "%d shortage rows without order ref dropped", noRef))
	}
	if kitted > 0 {
		diagnostics = append(diagnostics, dto.Infof(stageLoad, src.Path, "%d kitted marker rows dropped", kitted))
	}
	if badQty > 0 {
		diagnostics = append(diagnostics, dto.Warningf(stageLoad, src.Path, "%d negative shortage quantities treated as missing", badQty))
	}

	l.logger.InfoContext(ctx, "shortage loaded",
		slog.String("file", src.Path),
		slog.Int("lines", len(lines)),
		slog.Int("kitted_dropped", kitted))

	return lines, diagnostics
}

// LoadInventory reads the inventory price list, keeping one record per material:
// the first with a positive price, otherwise the first seen.
func (l *Loader) LoadInventory(ctx context.Context, src SheetSource) ([]*entities.InventoryRecord, []dto.Diagnostic) {
	rows, _, err := l.readSheet(src.Path, src.Sheets)
	if err != nil {
		return nil, []dto.Diagnostic{l.degraded(ctx, src, err)}
	}
	tbl := table.Normalize(table.FromRows(rows, 0), InventoryColumns)

	var (
		records     []*entities.InventoryRecord
		diagnostics []dto.Diagnostic
		duplicates  int
	)
	index := make(map[entities.MaterialID]int)
	unknown := make(map[entities.Currency]bool)
	for i := range tbl.Rows {
		currency := entities.ParseCurrency(tbl.Value(i, ColInvCurrency))
		record, err := entities.NewInventoryRecord(
			entities.MaterialID(tbl.Value(i, ColInvMaterialID)),
			tbl.Value(i, ColInvMaterialName),
			ParseDecimal(tbl.Value(i, ColLatestQuote)),
			ParseDecimal(tbl.Value(i, ColCost)),
			currency,
			l.opts.Rates,
		)
		if err != nil {
			continue
		}
		if _, known := l.opts.Rates.Rate(currency); !known {
			unknown[currency] = true
		}

		if idx, exists := index[record.MaterialID]; exists {
			duplicates++
			if !records[idx].HasPrice() && record.HasPrice() {
				records[idx] = record
			}
			continue
		}
		index[record.MaterialID] = len(records)
		records = append(records, record)
	}

	if duplicates > 0 {
		diagnostics = append(diagnostics, dto.Infof(stageLoad, src.Path, "%d duplicate inventory rows collapsed", duplicates))
	}
	diagnostics = append(diagnostics, unknownCurrencies(src.Path, unknown)...)

	l.logger.InfoContext(ctx, "inventory loaded",
		slog.String("file", src.Path),
		slog.Int("materials", len(records)),
		slog.Int("duplicates", duplicates))

	return records, diagnostics
}

// LoadSuppliers reads the supplier price list. Quotes keep their file order in Seq.
func (l *Loader) LoadSuppliers(ctx context.Context, src SheetSource) ([]*entities.SupplierQuote, []dto.Diagnostic) {
	rows, _, err := l.readSheet(src.Path, src.Sheets)
	if err != nil {
		return nil, []dto.Diagnostic{l.degraded(ctx, src, err)}
	}
	tbl := table.Normalize(table.FromRows(rows, 0), SupplierColumns)

	var (
		quotes      []*entities.SupplierQuote
		diagnostics []dto.Diagnostic
		badDates    int
	)
	unknown := make(map[entities.Currency]bool)
	for i := range tbl.Rows {
		currency := entities.ParseCurrency(tbl.Value(i, ColSupCurrency))
		quote, err := entities.NewSupplierQuote(
			entities.MaterialID(tbl.Value(i, ColSupMaterialID)),
			tbl.Value(i, ColSupplierName),
			entities.SupplierID(tbl.Value(i, ColSupplierID)),
			ParseDecimal(tbl.Value(i, ColSupPrice)),
			currency,
			l.opts.Rates,
		)
		if err != nil {
			continue
		}
		if _, known := l.opts.Rates.Rate(currency); !known {
			unknown[currency] = true
		}

		rawDate := tbl.Value(i, ColLastModified)
		quote.LastModified = ParseDate(rawDate)
		if rawDate != "" && !quote.LastModified.IsSome() {
			badDates++
		}
		quote.MinOrderQty = ParseDecimal(tbl.Value(i, ColMinOrderQty))
		quote.Seq = len(quotes) + 1

		quotes = append(quotes, quote)
	}

	if badDates > 0 {
		diagnostics = append(diagnostics, dto.Infof(stageLoad, src.Path, "%d unparseable modification dates treated as missing", badDates))
	}
	diagnostics = append(diagnostics, unknownCurrencies(src.Path, unknown)...)

	l.logger.InfoContext(ctx, "suppliers loaded",
		slog.String("file", src.Path),
		slog.Int("quotes", len(quotes)))

	return quotes, diagnostics
}

func (l *Loader) degraded(ctx context.Context, src SheetSource, err error) dto.Diagnostic {
	l.logger.WarnContext(ctx, "source unavailable, continuing without it",
		slog.String("source", src.Name),
		slog.String("file", src.Path),
		slog.String("error", err.Error()))
	return dto.Warningf(stageLoad, src.Path, "%s source unavailable, continuing with an empty table: %v", src.Name, err)
}

func unknownCurrencies(source string, unknown map[entities.Currency]bool) []dto.Diagnostic {
	var diagnostics []dto.Diagnostic
	for _, c := range slices.Sorted(maps.Keys(unknown)) {
		diagnostics = append(diagnostics, dto.Warningf(stageLoad, source, "unknown currency %q converted at 1.0", c))
	}
	return diagnostics
}

// findHeaderRow returns the first row among the top rows whose normalized form
// contains key, or 0 when none does
func findHeaderRow(rows [][]string, rules []table.ColumnRule, key string) int {
	limit := min(headerSearchRows, len(rows))
	for i := 0; i < limit; i++ {
		probe := table.Normalize(table.New(rows[i], nil), rules)
		if probe.Has(key) {
			return i
		}
	}
	return 0
}
