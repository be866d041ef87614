package commands

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/yintu/pmc/pkg/application/services/loading"
)

// GenerateConfig holds configuration for sample input generation
type GenerateConfig struct {
	OutputDir string // Output directory for generated workbooks
	Orders    int    // Production orders per site and month
	Materials int    // Size of the material catalogue
	Seed      int64  // Random seed for reproducible generation
	Help      bool   // Show help
	Verbose   bool   // Verbose output
}

// GenerateCommand writes a complete set of sample input workbooks
type GenerateCommand struct {
	config GenerateConfig
	rand   *rand.Rand
	stdout io.Writer
}

// NewGenerateCommand creates a new generate command
func NewGenerateCommand(config GenerateConfig) *GenerateCommand {
	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if config.Orders <= 0 {
		config.Orders = 8
	}
	if config.Materials <= 0 {
		config.Materials = 40
	}

	return &GenerateCommand{
		config: config,
		rand:   rand.New(rand.NewSource(seed)),
		stdout: os.Stdout,
	}
}

type sampleSheet struct {
	name string
	rows [][]any
}

type sampleMaterial struct {
	id   string
	name string
}

type sampleOrder struct {
	productionOrder string
	model           string
}

var materialPrefixes = []struct {
	prefix string
	names  []string
}{
	{"9-", []string{"Resistor 10K", "Capacitor 100uF", "MCU", "LED"}},
	{"131-", []string{"Screw M3", "Spring", "Bracket"}},
	{"303-", []string{"Shaft", "Bearing"}},
	{"7-", []string{"Carton", "Label", "Foam insert"}},
	{"1-", []string{"ABS resin", "Copper wire"}},
	{"2-", []string{"Steel sheet"}},
}

var sampleSuppliers = []struct {
	id   string
	name string
}{
	{"1001", "Shenzhen Huaxin Electronics"},
	{"1002", "Dongguan Precision Hardware"},
	{"1005", "Ningbo Packaging Co"},
	{"1010", "Guangzhou Materials"},
	{"2001", "Phnom Penh Trading"},
}

// Execute runs the generate command
func (cmd *GenerateCommand) Execute(ctx context.Context) error {
	if cmd.config.Help {
		cmd.printHelp()
		return nil
	}
	if cmd.config.OutputDir == "" {
		return fmt.Errorf("output directory required")
	}

	if cmd.config.Verbose {
		fmt.Fprintf(cmd.stdout, "🔧 Generating %d orders per sheet over %d materials\n", cmd.config.Orders, cmd.config.Materials)
		fmt.Fprintf(cmd.stdout, "📁 Output directory: %s\n", cmd.config.OutputDir)
	}

	if err := os.MkdirAll(cmd.config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	materials := cmd.generateMaterials()

	domestic, domesticSheets := cmd.generateOrders("D", "8月", "9月", false)
	overseas, overseasSheets := cmd.generateOrders("C", "8月 -柬", "9月 -柬", true)

	workbooks := []struct {
		file   string
		sheets []sampleSheet
	}{
		{"order-amt-89.xlsx", domesticSheets},
		{"order-amt-89-c.xlsx", overseasSheets},
		{"mat_owe_pso.xlsx", []sampleSheet{cmd.generateShortage(append(domestic, overseas...), materials)}},
		{"inventory_list.xlsx", []sampleSheet{cmd.generateInventory(materials)}},
		{"supplier.xlsx", []sampleSheet{cmd.generateSuppliers(materials)}},
	}

	for _, wb := range workbooks {
		if err := ctx.Err(); err != nil {
			return err
		}
		path := filepath.Join(cmd.config.OutputDir, wb.file)
		if err := writeWorkbook(path, wb.sheets); err != nil {
			return fmt.Errorf("failed to generate %s: %w", wb.file, err)
		}
		if cmd.config.Verbose {
			fmt.Fprintf(cmd.stdout, "📦 %s\n", path)
		}
	}

	if cmd.config.Verbose {
		fmt.Fprintln(cmd.stdout, "✅ Sample inputs generated")
	}
	return nil
}

func (cmd *GenerateCommand) generateMaterials() []sampleMaterial {
	materials := make([]sampleMaterial, cmd.config.Materials)
	for i := range materials {
		group := materialPrefixes[i%len(materialPrefixes)]
		materials[i] = sampleMaterial{
			id:   fmt.Sprintf("%s%05d", group.prefix, 100+i),
			name: group.names[cmd.rand.Intn(len(group.names))],
		}
	}
	return materials
}

// generateOrders builds two month sheets. The domestic book carries a title row
// and the traditional header spellings; the overseas book uses plain headers.
func (cmd *GenerateCommand) generateOrders(tag, augSheet, sepSheet string, overseas bool) ([]sampleOrder, []sampleSheet) {
	var orders []sampleOrder
	sheets := make([]sampleSheet, 0, 2)

	for m, sheetName := range []string{augSheet, sepSheet} {
		var rows [][]any
		if overseas {
			rows = append(rows, []any{"生产单号", "客户订单号", "产品型号", "数量", "目的地", "订单金额"})
		} else {
			rows = append(rows,
				[]any{fmt.Sprintf("%d月 生产计划", 8+m)},
				[]any{"生 產 單 号(  廠方 )", "生 產 單 号(客方 )", "型 號( 廠方/客方 )", "數 量  (Pcs)", "BOM NO.", "客期", "订单金额"},
			)
		}

		for i := 0; i < cmd.config.Orders; i++ {
			order := sampleOrder{
				productionOrder: fmt.Sprintf("PSO-%s%d%03d", tag, 8+m, i+1),
				model:           fmt.Sprintf("MODEL-%c%02d", 'A'+rune(cmd.rand.Intn(6)), cmd.rand.Intn(50)),
			}
			orders = append(orders, order)

			// some production orders are split across two customer orders
			customers := 1 + cmd.rand.Intn(2)
			for c := 0; c < customers; c++ {
				customer := fmt.Sprintf("CO%s%d%03d-%d", tag, 8+m, i+1, c+1)
				qty := 100 * (1 + cmd.rand.Intn(20))
				value := float64(qty) * (2 + cmd.rand.Float64()*18)
				if overseas {
					rows = append(rows, []any{order.productionOrder, customer, order.model, qty, "Cambodia", round2(value)})
				} else {
					due := time.Date(2025, time.Month(9+m), 1+cmd.rand.Intn(28), 0, 0, 0, 0, time.UTC)
					rows = append(rows, []any{order.productionOrder, customer, order.model, qty, "BOM-" + order.model, due.Format(time.DateOnly), round2(value)})
				}
			}
		}
		sheets = append(sheets, sampleSheet{name: sheetName, rows: rows})
	}
	return orders, sheets
}

// generateShortage leaves about a third of the orders fully kitted and adds a
// shortage line for an order that does not exist
func (cmd *GenerateCommand) generateShortage(orders []sampleOrder, materials []sampleMaterial) sampleSheet {
	header := make([]any, len(loading.ShortageLayout))
	for i, col := range loading.ShortageLayout {
		header[i] = col
	}
	rows := [][]any{{"欠料清单 (按生产单)"}, header}

	line := func(order sampleOrder, m sampleMaterial, qty int) []any {
		demand := qty + cmd.rand.Intn(200)
		return []any{
			order.productionOrder, "", "", order.model, "", "", "",
			m.id, m.name, "PMC", demand, qty, cmd.rand.Intn(qty + 1), demand - qty, "G1",
		}
	}

	for _, order := range orders {
		switch cmd.rand.Intn(3) {
		case 0:
			rows = append(rows, []any{order.productionOrder, "", "", order.model, "", "", "", "", "已齐套"})
		default:
			n := 1 + cmd.rand.Intn(4)
			for _, idx := range cmd.rand.Perm(len(materials))[:min(n, len(materials))] {
				rows = append(rows, line(order, materials[idx], 1+cmd.rand.Intn(500)))
			}
		}
	}
	rows = append(rows, line(sampleOrder{productionOrder: "PSO-X9999", model: "MODEL-Z00"}, materials[0], 10))

	return sampleSheet{name: "Sheet1", rows: rows}
}

func (cmd *GenerateCommand) generateInventory(materials []sampleMaterial) sampleSheet {
	rows := [][]any{{"物项编号", "物项名称", "最新报价", "成本单价", "货币"}}
	for _, m := range materials {
		if cmd.rand.Float64() < 0.4 {
			continue
		}
		currency := "RMB"
		if cmd.rand.Intn(5) == 0 {
			currency = "USD"
		}
		cost := round2(0.05 + cmd.rand.Float64()*30)
		var latest any
		if cmd.rand.Intn(2) == 0 {
			latest = round2(cost * 1.05)
		}
		rows = append(rows, []any{m.id, m.name, latest, cost, currency})
	}
	return sampleSheet{name: "Sheet1", rows: rows}
}

// generateSuppliers gives most materials one to three quotes; the rest have none
func (cmd *GenerateCommand) generateSuppliers(materials []sampleMaterial) sampleSheet {
	rows := [][]any{{"物项编号", "物项名称", "供应商名称", "供应商号", "单价", "币种", "起订数量", "修改日期"}}
	base := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	for _, m := range materials {
		if cmd.rand.Intn(5) == 0 {
			continue
		}
		price := 0.05 + cmd.rand.Float64()*30
		for _, idx := range cmd.rand.Perm(len(sampleSuppliers))[:1+cmd.rand.Intn(3)] {
			sup := sampleSuppliers[idx]
			modified := base.AddDate(0, 0, -cmd.rand.Intn(900))
			quote := round2(price * (0.85 + cmd.rand.Float64()*0.4))
			rows = append(rows, []any{m.id, m.name, sup.name, sup.id, quote, "RMB", 100 * (1 + cmd.rand.Intn(10)), modified.Format(time.DateOnly)})
		}
	}
	return sampleSheet{name: "Sheet1", rows: rows}
}

// writeWorkbook saves sheets into a new workbook, renaming the default first sheet
func writeWorkbook(path string, sheets []sampleSheet) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sheet.name); err != nil {
				return err
			}
		} else if _, err := f.NewSheet(sheet.name); err != nil {
			return err
		}
		for r, row := range sheet.rows {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(sheet.name, cell, &row); err != nil {
				return err
			}
		}
	}
	return f.SaveAs(path)
}

func round2(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}

func (cmd *GenerateCommand) printHelp() {
	fmt.Fprintln(cmd.stdout, `PMC Sample Input Generator

USAGE:
    pmc generate [OPTIONS]

OPTIONS:
    -dir <DIR>          Output directory for generated workbooks (required)
    -orders <N>         Production orders per site and month (default: 8)
    -materials <N>      Size of the material catalogue (default: 40)
    -seed <N>           Random seed for reproducible generation (optional)
    -verbose            Enable verbose output
    -help               Show this help message

EXAMPLES:
    # Generate a small sample set and reconcile it
    pmc generate -dir ./samples -seed 42
    PMC_INPUTS_SEARCH_PATHS=./samples pmc -format text`)
}
