package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/yintu/pmc/pkg/interfaces/cli/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if len(os.Args) > 1 && os.Args[1] == "generate" {
		os.Exit(runGenerate(ctx, os.Args[2:]))
	}
	os.Exit(runReconcile(ctx))
}

func runReconcile(ctx context.Context) int {
	// Command line flags
	var (
		configFile = flag.String("config", "", "Path to YAML or TOML config file (optional)")
		outputPath = flag.String("output", "", "Report path, e.g. out/report.xlsx (overrides config)")
		format     = flag.String("format", "", "Output formats: xlsx, csv, json, parquet, text (comma separated)")
		workers    = flag.Int("workers", 0, "Supplier selection workers (overrides config)")
		verbose    = flag.Bool("verbose", false, "Enable verbose output")
		help       = flag.Bool("help", false, "Show help message")
	)

	flag.Parse()

	cmd := commands.NewReconcileCommand(commands.Config{
		ConfigFile: *configFile,
		OutputPath: *outputPath,
		Formats:    *format,
		Workers:    *workers,
		Verbose:    *verbose,
		Help:       *help,
	})

	if err := cmd.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func runGenerate(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	var (
		dir       = fs.String("dir", "", "Output directory for sample workbooks")
		orders    = fs.Int("orders", 8, "Production orders per site and month")
		materials = fs.Int("materials", 40, "Size of the material catalogue")
		seed      = fs.Int64("seed", 0, "Random seed for reproducible generation")
		verbose   = fs.Bool("verbose", false, "Enable verbose output")
		help      = fs.Bool("help", false, "Show help message")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cmd := commands.NewGenerateCommand(commands.GenerateConfig{
		OutputDir: *dir,
		Orders:    *orders,
		Materials: *materials,
		Seed:      *seed,
		Help:      *help,
		Verbose:   *verbose,
	})

	if err := cmd.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
