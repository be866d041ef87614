// Package orchestration wires the loaders, the reconciliation engine and the
// report assembler into a single run.
package orchestration

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/yintu/pmc/pkg/application/dto"
	"github.com/yintu/pmc/pkg/application/services/loading"
	"github.com/yintu/pmc/pkg/application/services/metrics"
	"github.com/yintu/pmc/pkg/application/services/reconcile"
	"github.com/yintu/pmc/pkg/application/services/report"
	"github.com/yintu/pmc/pkg/application/services/selection"
	"github.com/yintu/pmc/pkg/domain/entities"
	domainservices "github.com/yintu/pmc/pkg/domain/services"
	"github.com/yintu/pmc/pkg/infrastructure/repositories/memory"
)

// Stage names used for logging, diagnostics and timings
const (
	StageLoad      = "load"
	StageValidate  = "validate"
	StageReconcile = "reconcile"
	StageReport    = "report"
)

// Sources lists the input files of one run
type Sources struct {
	Orders    []loading.OrderSource
	Shortage  loading.SheetSource
	Inventory loading.SheetSource
	Suppliers loading.SheetSource
}

// Observer receives stage timings and the finished report
type Observer interface {
	ObserveStage(stage string, elapsed time.Duration)
	ObserveReport(report *dto.Report)
}

// Options configures a pipeline
type Options struct {
	Rates   entities.RateTable
	Weights selection.Weights
	Workers int
	// RunID tags the report; a random id is generated when empty
	RunID    string
	Observer Observer
	Now      func() time.Time
}

// Pipeline runs load, validate, reconcile, derive and assemble in order.
// Each stage hands a new table to the next; nothing is shared between runs.
type Pipeline struct {
	loader    *loading.Loader
	validator *domainservices.CoverageValidator
	opts      Options
	logger    *slog.Logger
}

// NewPipeline creates a pipeline reading through loader
func NewPipeline(loader *loading.Loader, opts Options, logger *slog.Logger) *Pipeline {
	if opts.Rates == nil {
		opts.Rates = entities.DefaultRates()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		loader:    loader,
		validator: domainservices.NewCoverageValidator(),
		opts:      opts,
		logger:    logger,
	}
}

type loaded struct {
	orders      []*entities.Order
	lines       []*entities.ShortageLine
	inventory   []*entities.InventoryRecord
	quotes      []*entities.SupplierQuote
	diagnostics []dto.Diagnostic
}

// Run produces the report. Only an unusable order source fails the run; every
// other problem is carried in the report diagnostics.
func (p *Pipeline) Run(ctx context.Context, sources Sources) (*dto.Report, error) {
	runID := p.opts.RunID
	if runID == "" {
		runID = uuid.NewString()
	}
	logger := p.logger.With(slog.String("run_id", runID))

	// Stage 1: load
	start := time.Now()
	in, err := p.load(ctx, sources)
	if err != nil {
		return nil, err
	}
	p.observeStage(StageLoad, start)
	logger.InfoContext(ctx, "inputs loaded",
		slog.Int("orders", len(in.orders)),
		slog.Int("shortage_lines", len(in.lines)),
		slog.Int("inventory_records", len(in.inventory)),
		slog.Int("quotes", len(in.quotes)))

	// Stage 2: coverage checks
	start = time.Now()
	coverage := p.validator.ValidateCoverage(in.orders, in.lines, in.quotes, in.inventory)
	for _, w := range coverage.Warnings {
		in.diagnostics = append(in.diagnostics, dto.Warningf(StageValidate, "", "%s", w))
		logger.WarnContext(ctx, "coverage", slog.String("finding", w))
	}
	p.observeStage(StageValidate, start)

	// Stage 3: reconcile
	start = time.Now()
	orderRepo := memory.NewOrderRepository(len(in.orders))
	shortageRepo := memory.NewShortageRepository(len(in.lines))
	inventoryRepo := memory.NewInventoryRepository(len(in.inventory))
	supplierRepo := memory.NewSupplierRepository(len(in.quotes))
	if err := orderRepo.LoadOrders(in.orders); err != nil {
		return nil, fmt.Errorf("failed to load orders into repository: %w", err)
	}
	if err := shortageRepo.LoadShortageLines(in.lines); err != nil {
		return nil, fmt.Errorf("failed to load shortage lines into repository: %w", err)
	}
	if err := inventoryRepo.LoadInventoryRecords(in.inventory); err != nil {
		return nil, fmt.Errorf("failed to load inventory into repository: %w", err)
	}
	if err := supplierRepo.LoadQuotes(in.quotes); err != nil {
		return nil, fmt.Errorf("failed to load quotes into repository: %w", err)
	}

	selector := selection.NewSelector(supplierRepo, p.opts.Weights, p.opts.Workers, logger)
	engine := reconcile.NewEngine(orderRepo, shortageRepo, inventoryRepo, selector, logger)
	result, err := engine.Reconcile(ctx)
	if err != nil {
		return nil, fmt.Errorf("reconciliation failed: %w", err)
	}
	result.Rows = metrics.Annotate(result.Rows, p.opts.Rates)
	result.Diagnostics = in.diagnostics
	p.observeStage(StageReconcile, start)

	// Stage 4: classify and assemble
	start = time.Now()
	rep := report.Assemble(result)
	rep.RunID = runID
	rep.GeneratedAt = p.opts.Now()
	p.observeStage(StageReport, start)

	if p.opts.Observer != nil {
		p.opts.Observer.ObserveReport(rep)
	}

	logger.InfoContext(ctx, "report assembled",
		slog.Int("orders", rep.Summary.TotalOrders),
		slog.Int("rows", rep.Summary.TotalRows),
		slog.Int("excluded_rows", rep.Summary.ExcludedRows),
		slog.String("shortage_rmb", rep.Summary.TotalShortageAmountRMB.StringFixed(2)),
		slog.Int("diagnostics", len(rep.Diagnostics)))

	return rep, nil
}

// load reads the order books first, since they decide whether the run can
// proceed, then the three lookup sources concurrently
func (p *Pipeline) load(ctx context.Context, sources Sources) (*loaded, error) {
	orders, orderDiags, err := p.loader.LoadOrders(ctx, sources.Orders)
	if err != nil {
		return nil, err
	}

	in := &loaded{orders: orders}
	var shortDiag, invDiag, supDiag []dto.Diagnostic

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		in.lines, shortDiag = p.loader.LoadShortage(gctx, sources.Shortage)
		return nil
	})
	g.Go(func() error {
		in.inventory, invDiag = p.loader.LoadInventory(gctx, sources.Inventory)
		return nil
	})
	g.Go(func() error {
		in.quotes, supDiag = p.loader.LoadSuppliers(gctx, sources.Suppliers)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	in.diagnostics = append(in.diagnostics, orderDiags...)
	in.diagnostics = append(in.diagnostics, shortDiag...)
	in.diagnostics = append(in.diagnostics, invDiag...)
	in.diagnostics = append(in.diagnostics, supDiag...)
	return in, nil
}

func (p *Pipeline) observeStage(stage string, start time.Time) {
	elapsed := time.Since(start)
	p.logger.Debug("stage complete", slog.String("stage", stage), slog.Duration("elapsed", elapsed))
	if p.opts.Observer != nil {
		p.opts.Observer.ObserveStage(stage, elapsed)
	}
}
