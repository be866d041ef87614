// Package config loads run configuration from a YAML or TOML file, a .env file
// and PMC_* environment variables, in that order of increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/yintu/pmc/pkg/domain/entities"
)

// EnvPrefix is the prefix of environment overrides, e.g. PMC_OUTPUT_PATH
const EnvPrefix = "PMC"

// Config represents the complete run configuration
type Config struct {
	Inputs    InputsConfig    `yaml:"inputs" toml:"inputs" envconfig:"INPUTS"`
	Currency  CurrencyConfig  `yaml:"currency" toml:"currency" envconfig:"CURRENCY"`
	Selection SelectionConfig `yaml:"selection" toml:"selection" envconfig:"SELECTION"`
	Output    OutputConfig    `yaml:"output" toml:"output" envconfig:"OUTPUT"`
	Logging   LoggingConfig   `yaml:"logging" toml:"logging" envconfig:"LOGGING"`
}

// InputsConfig lists the source workbooks
type InputsConfig struct {
	// SearchPaths are tried in order for relative file names
	SearchPaths []string            `yaml:"search_paths" toml:"search_paths" envconfig:"SEARCH_PATHS"`
	Orders      []OrderSourceConfig `yaml:"orders" toml:"orders" ignored:"true" validate:"required,min=1,dive"`
	Shortage    SheetSourceConfig   `yaml:"shortage" toml:"shortage" envconfig:"SHORTAGE"`
	Inventory   SheetSourceConfig   `yaml:"inventory" toml:"inventory" envconfig:"INVENTORY"`
	Supplier    SheetSourceConfig   `yaml:"supplier" toml:"supplier" envconfig:"SUPPLIER"`
}

// OrderSourceConfig is one order workbook with one sheet per month
type OrderSourceConfig struct {
	Path         string              `yaml:"path" toml:"path" validate:"required"`
	Alternatives []string            `yaml:"alternatives" toml:"alternatives"`
	Site         string              `yaml:"site" toml:"site" validate:"required"`
	Sheets       []MonthSheetsConfig `yaml:"sheets" toml:"sheets" validate:"required,min=1,dive"`
}

// MonthSheetsConfig maps a month tag to the sheet names it may appear under
type MonthSheetsConfig struct {
	Month string   `yaml:"month" toml:"month" validate:"required"`
	Names []string `yaml:"names" toml:"names" validate:"required,min=1"`
}

// SheetSourceConfig is a single-sheet workbook. An empty sheet name selects the first sheet.
type SheetSourceConfig struct {
	Path         string   `yaml:"path" toml:"path" envconfig:"PATH"`
	Alternatives []string `yaml:"alternatives" toml:"alternatives" envconfig:"ALTERNATIVES"`
	Sheets       []string `yaml:"sheets" toml:"sheets" envconfig:"SHEETS"`
}

// CurrencyConfig holds the static conversion table
type CurrencyConfig struct {
	OrderCurrency     string            `yaml:"order_currency" toml:"order_currency" envconfig:"ORDER_CURRENCY" validate:"required"`
	DefaultOrderValue string            `yaml:"default_order_value" toml:"default_order_value" envconfig:"DEFAULT_ORDER_VALUE" validate:"required,numeric"`
	Rates             map[string]string `yaml:"rates" toml:"rates" envconfig:"RATES" validate:"required,min=1,dive,numeric"`
}

// SelectionConfig tunes primary supplier selection
type SelectionConfig struct {
	Workers int           `yaml:"workers" toml:"workers" envconfig:"WORKERS" validate:"min=1,max=64"`
	Weights WeightsConfig `yaml:"weights" toml:"weights" envconfig:"WEIGHTS"`
}

// WeightsConfig holds the scoring weights of supplier selection
type WeightsConfig struct {
	RecencyLatest     int `yaml:"recency_latest" toml:"recency_latest" envconfig:"RECENCY_LATEST" validate:"min=0"`
	RecencyWithinYear int `yaml:"recency_within_year" toml:"recency_within_year" envconfig:"RECENCY_WITHIN_YEAR" validate:"min=0"`
	RecencyOlder      int `yaml:"recency_older" toml:"recency_older" envconfig:"RECENCY_OLDER" validate:"min=0"`
	PriceLowest       int `yaml:"price_lowest" toml:"price_lowest" envconfig:"PRICE_LOWEST" validate:"min=0"`
	PriceWithin10Pct  int `yaml:"price_within_10pct" toml:"price_within_10pct" envconfig:"PRICE_WITHIN_10PCT" validate:"min=0"`
	PriceWithin20Pct  int `yaml:"price_within_20pct" toml:"price_within_20pct" envconfig:"PRICE_WITHIN_20PCT" validate:"min=0"`
	PricePositive     int `yaml:"price_positive" toml:"price_positive" envconfig:"PRICE_POSITIVE" validate:"min=0"`
	StabilityLowestID int `yaml:"stability_lowest_id" toml:"stability_lowest_id" envconfig:"STABILITY_LOWEST_ID" validate:"min=0"`
}

// OutputConfig controls the report artifacts
type OutputConfig struct {
	Path            string   `yaml:"path" toml:"path" envconfig:"PATH" validate:"required"`
	Formats         []string `yaml:"formats" toml:"formats" envconfig:"FORMATS" validate:"required,min=1,dive,oneof=xlsx csv json parquet text"`
	MetricsTextfile string   `yaml:"metrics_textfile" toml:"metrics_textfile" envconfig:"METRICS_TEXTFILE"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level      string `yaml:"level" toml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Format     string `yaml:"format" toml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
	Output     string `yaml:"output" toml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath   string `yaml:"file_path" toml:"file_path" envconfig:"FILE_PATH"`
	MaxSizeMB  int    `yaml:"max_size_mb" toml:"max_size_mb" envconfig:"MAX_SIZE_MB" validate:"min=1"`
	MaxBackups int    `yaml:"max_backups" toml:"max_backups" envconfig:"MAX_BACKUPS" validate:"min=0"`
	MaxAgeDays int    `yaml:"max_age_days" toml:"max_age_days" envconfig:"MAX_AGE_DAYS" validate:"min=0"`
}

// Default returns the configuration matching the PMC team's usual file set
func Default() Config {
	return Config{
		Inputs: InputsConfig{
			SearchPaths: []string{".", "data", "input"},
			Orders: []OrderSourceConfig{
				{
					Path:         "order-amt-89.xlsx",
					Alternatives: []string{"订单-国内-89.xlsx", "order_domestic_89.xlsx"},
					Site:         "domestic",
					Sheets: []MonthSheetsConfig{
						{Month: "Aug", Names: []string{"8月"}},
						{Month: "Sep", Names: []string{"9月"}},
					},
				},
				{
					Path:         "order-amt-89-c.xlsx",
					Alternatives: []string{"订单-柬埔寨-89.xlsx", "order_cambodia_89.xlsx"},
					Site:         "overseas",
					Sheets: []MonthSheetsConfig{
						{Month: "Aug", Names: []string{"8月 -柬", "8月-柬"}},
						{Month: "Sep", Names: []string{"9月 -柬", "9月-柬"}},
					},
				},
			},
			Shortage: SheetSourceConfig{
				Path:         "mat_owe_pso.xlsx",
				Alternatives: []string{"欠料清单.xlsx", "material_shortage.xlsx"},
				Sheets:       []string{"", "Sheet1", "欠料表"},
			},
			Inventory: SheetSourceConfig{
				Path:         "inventory_list.xlsx",
				Alternatives: []string{"库存清单.xlsx", "stock_list.xlsx"},
				Sheets:       []string{"", "Sheet1", "库存表"},
			},
			Supplier: SheetSourceConfig{
				Path:         "supplier.xlsx",
				Alternatives: []string{"供应商清单.xlsx", "supplier_list.xlsx"},
				Sheets:       []string{"", "Sheet1", "供应商表"},
			},
		},
		Currency: CurrencyConfig{
			OrderCurrency:     "USD",
			DefaultOrderValue: "1000",
			Rates: map[string]string{
				"RMB": "1.0",
				"USD": "7.20",
				"HKD": "0.93",
				"EUR": "7.85",
			},
		},
		Selection: SelectionConfig{
			Workers: 4,
			Weights: WeightsConfig{
				RecencyLatest:     40,
				RecencyWithinYear: 30,
				RecencyOlder:      20,
				PriceLowest:       35,
				PriceWithin10Pct:  25,
				PriceWithin20Pct:  15,
				PricePositive:     5,
				StabilityLowestID: 25,
			},
		},
		Output: OutputConfig{
			Path:    "pmc_report.xlsx",
			Formats: []string{"xlsx"},
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "text",
			Output:     "console",
			FilePath:   "logs/pmc.log",
			MaxSizeMB:  20,
			MaxBackups: 5,
			MaxAgeDays: 30,
		},
	}
}

// Load builds the configuration: defaults, then the optional file at path,
// then .env and PMC_* environment variables. The result is validated.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile decodes a YAML or TOML file over cfg
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, cfg)
	case ".toml":
		_, err := toml.Decode(string(data), cfg)
		return err
	default:
		return fmt.Errorf("%w: config %s", entities.ErrUnsupportedFormat, path)
	}
}

// Validate checks struct constraints and the values that need domain parsing
func (c *Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(c); err != nil {
		return err
	}

	for _, src := range c.Inputs.Orders {
		if _, err := entities.ParseSite(src.Site); err != nil {
			return fmt.Errorf("order source %s: %w", src.Path, err)
		}
		for _, sheet := range src.Sheets {
			if _, err := entities.ParseMonth(sheet.Month); err != nil {
				return fmt.Errorf("order source %s: %w", src.Path, err)
			}
		}
	}

	if _, err := c.RateTable(); err != nil {
		return err
	}

	if c.Logging.Output != "console" && c.Logging.FilePath == "" {
		return fmt.Errorf("logging.file_path is required when logging.output is %s", c.Logging.Output)
	}

	return nil
}

// RateTable converts the configured rates into an entities.RateTable
func (c *Config) RateTable() (entities.RateTable, error) {
	rates := make(entities.RateTable, len(c.Currency.Rates))
	for code, raw := range c.Currency.Rates {
		rate, err := decimal.NewFromString(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("invalid rate for %s: %w", code, err)
		}
		if !rate.IsPositive() {
			return nil, fmt.Errorf("rate for %s must be positive, got %s", code, rate)
		}
		rates[entities.ParseCurrency(code)] = rate
	}
	return rates, nil
}

// OrderCurrency returns the currency order values are quoted in
func (c *Config) OrderCurrency() entities.Currency {
	return entities.ParseCurrency(c.Currency.OrderCurrency)
}

// DefaultOrderValue returns the sentinel injected when an order sheet has no value column
func (c *Config) DefaultOrderValue() decimal.Decimal {
	v, err := decimal.NewFromString(c.Currency.DefaultOrderValue)
	if err != nil {
		return decimal.Zero
	}
	return v
}

// ResolvePath returns the first existing candidate among primary and alternatives,
// trying each relative name under every search path. It returns primary unchanged
// when nothing exists so that the caller reports the expected name.
func (c *Config) ResolvePath(primary string, alternatives []string) string {
	candidates := append([]string{primary}, alternatives...)
	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		if filepath.IsAbs(candidate) {
			if fileExists(candidate) {
				return candidate
			}
			continue
		}
		for _, dir := range c.searchPaths() {
			p := filepath.Join(dir, candidate)
			if fileExists(p) {
				return p
			}
		}
	}
	return primary
}

func (c *Config) searchPaths() []string {
	if len(c.Inputs.SearchPaths) == 0 {
		return []string{"."}
	}
	return c.Inputs.SearchPaths
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
