// Package output writes an assembled report in the configured formats.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/yintu/pmc/pkg/application/dto"
)

// Supported formats
const (
	FormatXLSX    = "xlsx"
	FormatCSV     = "csv"
	FormatJSON    = "json"
	FormatParquet = "parquet"
	FormatText    = "text"
)

// Config holds configuration for output generation
type Config struct {
	// Path is the report path; other formats reuse its directory and base name
	Path    string
	Formats []string
	Verbose bool
	Stdout  io.Writer
	Logger  *slog.Logger
}

// Generate writes rep in every configured format and returns the files it created
func Generate(rep *dto.Report, config Config) ([]string, error) {
	if config.Stdout == nil {
		config.Stdout = os.Stdout
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	base := strings.TrimSuffix(config.Path, filepath.Ext(config.Path))
	if dir := filepath.Dir(base); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	sheets := BuildSheets(rep)

	var written []string
	for _, format := range config.Formats {
		var (
			paths []string
			err   error
		)
		switch strings.ToLower(strings.TrimSpace(format)) {
		case FormatXLSX:
			path := base + ".xlsx"
			err = writeXLSX(path, sheets)
			paths = []string{path}
		case FormatCSV:
			paths, err = writeCSVFiles(base, sheets)
		case FormatJSON:
			path := base + ".json"
			err = writeJSON(path, rep)
			paths = []string{path}
		case FormatParquet:
			path := base + "_detail.parquet"
			err = writeParquet(path, rep.Detail)
			paths = []string{path}
		case FormatText:
			err = writeText(config.Stdout, rep, config.Verbose)
		default:
			return written, fmt.Errorf("unsupported output format: %s", format)
		}
		if err != nil {
			return written, fmt.Errorf("failed to write %s output: %w", format, err)
		}

		for _, p := range paths {
			config.Logger.Info("report written", slog.String("format", format), slog.String("file", p))
		}
		written = append(written, paths...)
	}

	return written, nil
}

// writeJSON saves the whole report, including the reconciled rows
func writeJSON(path string, rep *dto.Report) error {
	jsonData, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	if err := os.WriteFile(path, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write JSON file: %w", err)
	}
	return nil
}
