package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/yintu/pmc/pkg/application/services/loading"
	"github.com/yintu/pmc/pkg/application/services/orchestration"
	"github.com/yintu/pmc/pkg/application/services/selection"
	"github.com/yintu/pmc/pkg/domain/entities"
	"github.com/yintu/pmc/pkg/infrastructure/config"
	"github.com/yintu/pmc/pkg/infrastructure/events"
	"github.com/yintu/pmc/pkg/infrastructure/logging"
	"github.com/yintu/pmc/pkg/infrastructure/metrics"
	"github.com/yintu/pmc/pkg/infrastructure/repositories/sheets"
	"github.com/yintu/pmc/pkg/interfaces/cli/output"
)

// Config holds configuration for the reconcile command. Non-zero fields
// override the values read from the config file.
type Config struct {
	ConfigFile string
	OutputPath string
	Formats    string
	Workers    int
	Verbose    bool
	Help       bool
}

// ReconcileCommand runs one reconciliation and writes the report
type ReconcileCommand struct {
	config Config
	stdout io.Writer
	stderr io.Writer
}

// NewReconcileCommand creates a new reconcile command with the given configuration
func NewReconcileCommand(config Config) *ReconcileCommand {
	return &ReconcileCommand{
		config: config,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
}

// WithOutput redirects the command's console output
func (c *ReconcileCommand) WithOutput(stdout, stderr io.Writer) *ReconcileCommand {
	c.stdout = stdout
	c.stderr = stderr
	return c
}

// Execute runs the reconcile command
func (c *ReconcileCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		c.showHelp()
		return nil
	}

	cfg, err := config.Load(c.config.ConfigFile)
	if err != nil {
		return err
	}
	if err := c.applyOverrides(cfg); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	logger, closer, err := logging.New(cfg.Logging, c.stderr)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	defer closer.Close()

	runID := logging.NewRunID()
	ctx = logging.WithRunID(ctx, runID)

	rates, err := cfg.RateTable()
	if err != nil {
		return err
	}

	sources, err := BuildSources(cfg)
	if err != nil {
		return fmt.Errorf("failed to resolve input files: %w", err)
	}
	if c.config.Verbose {
		c.printHeader(sources, cfg)
	}

	loader := loading.NewLoader(sheets.NewReader(logger), loading.Options{
		Rates:             rates,
		OrderCurrency:     cfg.OrderCurrency(),
		DefaultOrderValue: cfg.DefaultOrderValue(),
	}, logger)

	runMetrics := metrics.NewRunMetrics()
	store := events.NewInMemoryEventStore()
	if err := store.Subscribe([]string{events.StageCompletedEvent, events.ReportAssembledEvent}, events.NewObserverHandler(runMetrics)); err != nil {
		return err
	}
	journal := events.NewJournal(store, runID, logger)

	pipeline := orchestration.NewPipeline(loader, orchestration.Options{
		Rates:    rates,
		Weights:  WeightsFromConfig(cfg.Selection.Weights),
		Workers:  cfg.Selection.Workers,
		RunID:    runID,
		Observer: journal,
	}, logger)

	startTime := time.Now()
	rep, err := pipeline.Run(ctx, sources)
	if err != nil {
		return fmt.Errorf("reconciliation failed: %w", err)
	}
	logger.InfoContext(ctx, "reconciliation complete", slog.Duration("elapsed", time.Since(startTime)))

	written, err := output.Generate(rep, output.Config{
		Path:    cfg.Output.Path,
		Formats: cfg.Output.Formats,
		Verbose: c.config.Verbose,
		Stdout:  c.stdout,
		Logger:  logger,
	})
	if err != nil {
		return fmt.Errorf("error generating output: %w", err)
	}

	if cfg.Output.MetricsTextfile != "" {
		if err := runMetrics.WriteTextfile(cfg.Output.MetricsTextfile); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
		written = append(written, cfg.Output.MetricsTextfile)
	}

	if c.config.Verbose {
		c.printTimeline(journal)
		fmt.Fprintf(c.stdout, "💾 Files written:\n")
		for _, p := range written {
			fmt.Fprintf(c.stdout, "  %s\n", p)
		}
		fmt.Fprintln(c.stdout, "🏁 Reconciliation complete!")
	}

	return nil
}

// applyOverrides copies set command line values over cfg and revalidates
func (c *ReconcileCommand) applyOverrides(cfg *config.Config) error {
	if c.config.OutputPath != "" {
		cfg.Output.Path = c.config.OutputPath
	}
	if c.config.Formats != "" {
		var formats []string
		for _, f := range strings.Split(c.config.Formats, ",") {
			if f = strings.TrimSpace(f); f != "" {
				formats = append(formats, strings.ToLower(f))
			}
		}
		cfg.Output.Formats = formats
	}
	if c.config.Workers > 0 {
		cfg.Selection.Workers = c.config.Workers
	}
	if c.config.Verbose {
		cfg.Logging.Level = "debug"
	}
	return cfg.Validate()
}

// BuildSources resolves the configured file names against the search paths
func BuildSources(cfg *config.Config) (orchestration.Sources, error) {
	var sources orchestration.Sources

	for _, src := range cfg.Inputs.Orders {
		site, err := entities.ParseSite(src.Site)
		if err != nil {
			return sources, err
		}
		order := loading.OrderSource{
			Path: cfg.ResolvePath(src.Path, src.Alternatives),
			Site: site,
		}
		for _, sheet := range src.Sheets {
			month, err := entities.ParseMonth(sheet.Month)
			if err != nil {
				return sources, err
			}
			order.Sheets = append(order.Sheets, loading.MonthSheets{Month: month, Names: sheet.Names})
		}
		sources.Orders = append(sources.Orders, order)
	}

	sources.Shortage = sheetSource(cfg, "shortage", cfg.Inputs.Shortage)
	sources.Inventory = sheetSource(cfg, "inventory", cfg.Inputs.Inventory)
	sources.Suppliers = sheetSource(cfg, "supplier", cfg.Inputs.Supplier)
	return sources, nil
}

func sheetSource(cfg *config.Config, name string, src config.SheetSourceConfig) loading.SheetSource {
	return loading.SheetSource{
		Name:   name,
		Path:   cfg.ResolvePath(src.Path, src.Alternatives),
		Sheets: src.Sheets,
	}
}

// WeightsFromConfig maps configured weights onto the scoring weights
func WeightsFromConfig(w config.WeightsConfig) selection.Weights {
	return selection.Weights{
		RecencyLatest:     w.RecencyLatest,
		RecencyWithinYear: w.RecencyWithinYear,
		RecencyOlder:      w.RecencyOlder,
		PriceLowest:       w.PriceLowest,
		PriceWithin10Pct:  w.PriceWithin10Pct,
		PriceWithin20Pct:  w.PriceWithin20Pct,
		PricePositive:     w.PricePositive,
		StabilityLowestID: w.StabilityLowestID,
	}
}

// printTimeline prints the run's journal
func (c *ReconcileCommand) printTimeline(journal *events.Journal) {
	entries, err := journal.Events()
	if err != nil {
		fmt.Fprintf(c.stderr, "⚠️  Run timeline unavailable: %v\n", err)
		return
	}
	fmt.Fprintf(c.stdout, "⏱️  Run timeline:\n")
	for _, e := range entries {
		switch data := e.Data().(type) {
		case events.StageCompleted:
			fmt.Fprintf(c.stdout, "  %-10s %v\n", data.Stage, data.Elapsed)
		case events.SourceDegraded:
			fmt.Fprintf(c.stdout, "  degraded   %s\n", data.Source)
		case events.ReportAssembled:
			fmt.Fprintf(c.stdout, "  report     %d orders, %d rows, %d diagnostics\n", data.Orders, data.Rows, data.Diagnostics)
		}
	}
	fmt.Fprintln(c.stdout)
}

// printHeader prints the resolved inputs
func (c *ReconcileCommand) printHeader(sources orchestration.Sources, cfg *config.Config) {
	fmt.Fprintf(c.stdout, "🚀 PMC Shortage Reconciliation\n")
	fmt.Fprintf(c.stdout, "Input files:\n")
	for _, o := range sources.Orders {
		fmt.Fprintf(c.stdout, "  Orders (%s): %s\n", o.Site, o.Path)
	}
	fmt.Fprintf(c.stdout, "  Shortage: %s\n", sources.Shortage.Path)
	fmt.Fprintf(c.stdout, "  Inventory: %s\n", sources.Inventory.Path)
	fmt.Fprintf(c.stdout, "  Suppliers: %s\n", sources.Suppliers.Path)
	fmt.Fprintf(c.stdout, "Output: %s (%s)\n\n", cfg.Output.Path, strings.Join(cfg.Output.Formats, ", "))
}

// showHelp displays the help message
func (c *ReconcileCommand) showHelp() {
	fmt.Fprintf(c.stdout, `PMC Shortage Reconciliation - order value vs. material shortage cost

USAGE:
    pmc [-config pmc.yaml] [-output report.xlsx] [-format xlsx,csv] [-verbose]
    pmc generate -dir <directory>          # Write a sample input set

OPTIONS:
    -config <file>      YAML or TOML configuration (defaults apply when omitted)
    -output <file>      Report path; other formats reuse its base name
    -format <list>      Comma separated: xlsx, csv, json, parquet, text (default: xlsx)
    -workers <n>        Supplier selection workers
    -verbose            Debug logging and a list of written files
    -help               Show this help message

INPUT FILES (resolved under inputs.search_paths):
    order-amt-89.xlsx     Domestic orders, one sheet per month (8月, 9月)
    order-amt-89-c.xlsx   Overseas orders (8月 -柬, 9月 -柬)
    mat_owe_pso.xlsx      Material shortage export, banner row then header
    inventory_list.xlsx   Inventory price list
    supplier.xlsx         Supplier price list

ENVIRONMENT:
    PMC_OUTPUT_PATH, PMC_OUTPUT_FORMATS, PMC_LOGGING_LEVEL, PMC_SELECTION_WORKERS, ...
    A .env file in the working directory is loaded first.

EXAMPLES:
    # Generate samples and reconcile them
    pmc generate -dir samples
    pmc -config pmc.example.yaml -format xlsx,text -verbose

    # Export everything for downstream analysis
    pmc -config pmc.yaml -format xlsx,csv,json,parquet -output out/report.xlsx
`)
}
