package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yintu/pmc/pkg/domain/entities"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	rates, err := cfg.RateTable()
	require.NoError(t, err)
	usd, known := rates.Rate(entities.USD)
	assert.True(t, known)
	assert.Equal(t, "7.2", usd.String())
	assert.Equal(t, entities.USD, cfg.OrderCurrency())
	assert.Equal(t, "1000", cfg.DefaultOrderValue().String())
}

func TestLoad_YAML(t *testing.T) {
	path := writeConfig(t, "pmc.yaml", `
inputs:
  orders:
    - path: orders.xlsx
      site: overseas
      sheets:
        - month: "9月"
          names: ["9月 -柬"]
currency:
  order_currency: HKD
  rates:
    JPY: "0.05"
output:
  path: out/report.xlsx
  formats: [xlsx, parquet]
selection:
  weights:
    stability_lowest_id: 0
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Len(t, cfg.Inputs.Orders, 1)
	assert.Equal(t, "orders.xlsx", cfg.Inputs.Orders[0].Path)
	assert.Equal(t, entities.HKD, cfg.OrderCurrency())
	assert.Equal(t, []string{"xlsx", "parquet"}, cfg.Output.Formats)
	assert.Equal(t, 0, cfg.Selection.Weights.StabilityLowestID)
	assert.Equal(t, 40, cfg.Selection.Weights.RecencyLatest, "unset weights keep defaults")

	rates, err := cfg.RateTable()
	require.NoError(t, err)
	_, known := rates.Rate("JPY")
	assert.True(t, known, "file rates merge with defaults")
	_, known = rates.Rate(entities.EUR)
	assert.True(t, known)
}

func TestLoad_TOML(t *testing.T) {
	path := writeConfig(t, "pmc.toml", `
[output]
path = "report.xlsx"
formats = ["json"]

[logging]
level = "debug"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"json"}, cfg.Output.Formats)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Len(t, cfg.Inputs.Orders, 2)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PMC_OUTPUT_PATH", "env-report.xlsx")
	t.Setenv("PMC_SELECTION_WORKERS", "8")
	t.Setenv("PMC_CURRENCY_ORDER_CURRENCY", "EUR")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "env-report.xlsx", cfg.Output.Path)
	assert.Equal(t, 8, cfg.Selection.Workers)
	assert.Equal(t, entities.EUR, cfg.OrderCurrency())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		file string
		body string
	}{
		{"bad format", "pmc.yaml", "output:\n  formats: [pdf]\n"},
		{"bad rate", "pmc.yaml", "currency:\n  rates:\n    USD: abc\n"},
		{"bad month", "pmc.yaml", "inputs:\n  orders:\n    - path: a.xlsx\n      site: domestic\n      sheets:\n        - month: Smarch\n          names: [x]\n"},
		{"bad site", "pmc.yaml", "inputs:\n  orders:\n    - path: a.xlsx\n      site: moon\n      sheets:\n        - month: Aug\n          names: [x]\n"},
		{"zero workers", "pmc.yaml", "selection:\n  workers: 0\n"},
		{"unsupported extension", "pmc.ini", "x=1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.file, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestResolvePath(t *testing.T) {
	dir := t.TempDir()
	dataDir := filepath.Join(dir, "data")
	require.NoError(t, os.MkdirAll(dataDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "库存清单.xlsx"), []byte("x"), 0644))

	cfg := Default()
	cfg.Inputs.SearchPaths = []string{dir, dataDir}

	got := cfg.ResolvePath("inventory_list.xlsx", []string{"库存清单.xlsx"})
	assert.Equal(t, filepath.Join(dataDir, "库存清单.xlsx"), got)

	missing := cfg.ResolvePath("nothing.xlsx", nil)
	assert.Equal(t, "nothing.xlsx", missing)
}
