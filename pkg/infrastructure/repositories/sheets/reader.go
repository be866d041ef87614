// Package sheets picks a row reader by input file extension.
package sheets

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/yintu/pmc/pkg/domain/entities"
	"github.com/yintu/pmc/pkg/infrastructure/repositories/csv"
	"github.com/yintu/pmc/pkg/infrastructure/repositories/xlsx"
)

// Reader reads .xlsx/.xlsm workbooks and .csv exports.
// Legacy .xls binaries are rejected; convert them first.
type Reader struct {
	xlsx *xlsx.Reader
	csv  *csv.Reader
}

// NewReader creates a dispatching reader
func NewReader(logger *slog.Logger) *Reader {
	return &Reader{xlsx: xlsx.NewReader(logger), csv: csv.NewReader(logger)}
}

// ReadRows reads sheet of the file at path
func (r *Reader) ReadRows(path, sheet string) ([][]string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx", ".xlsm":
		return r.xlsx.ReadRows(path, sheet)
	case ".csv":
		return r.csv.ReadRows(path, sheet)
	default:
		return nil, fmt.Errorf("%w: %s (%q)", entities.ErrUnsupportedFormat, path, ext)
	}
}

// SheetNames lists the sheets of the file at path
func (r *Reader) SheetNames(path string) ([]string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx", ".xlsm":
		return r.xlsx.SheetNames(path)
	case ".csv":
		return r.csv.SheetNames(path)
	default:
		return nil, fmt.Errorf("%w: %s (%q)", entities.ErrUnsupportedFormat, path, ext)
	}
}
