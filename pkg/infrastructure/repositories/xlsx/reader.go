// Package xlsx reads worksheets from Office Open XML workbooks.
package xlsx

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/yintu/pmc/pkg/domain/entities"
	"github.com/yintu/pmc/pkg/domain/table"
)

// Reader loads raw sheet rows with excelize
type Reader struct {
	logger *slog.Logger
}

// NewReader creates a workbook reader
func NewReader(logger *slog.Logger) *Reader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reader{logger: logger}
}

// ReadRows returns every row of sheet. An empty sheet name reads the first sheet.
// Numeric and date cells are returned unformatted so that the loaders see the stored value.
func (r *Reader) ReadRows(path, sheet string) ([][]string, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	name, err := resolveSheet(f, sheet)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q of %s: %w", name, path, err)
	}

	r.logger.Debug("sheet read",
		slog.String("file", path),
		slog.String("sheet", name),
		slog.Int("rows", len(rows)))

	return rows, nil
}

// SheetNames lists the sheets of the workbook in tab order
func (r *Reader) SheetNames(path string) ([]string, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return f.GetSheetList(), nil
}

func open(path string) (*excelize.File, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s does not exist", entities.ErrSourceUnavailable, path)
		}
		return nil, fmt.Errorf("%w: %v", entities.ErrSourceUnavailable, err)
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", entities.ErrSourceUnavailable, path, err)
	}
	return f, nil
}

// resolveSheet finds sheet by exact name first, then by whitespace- and width-insensitive match
func resolveSheet(f *excelize.File, sheet string) (string, error) {
	list := f.GetSheetList()
	if len(list) == 0 {
		return "", fmt.Errorf("%w: workbook has no sheets", entities.ErrSheetNotFound)
	}
	if sheet == "" {
		return list[0], nil
	}
	for _, name := range list {
		if name == sheet {
			return name, nil
		}
	}
	want := table.CanonicalHeader(sheet)
	for _, name := range list {
		if table.CanonicalHeader(name) == want {
			return name, nil
		}
	}
	return "", fmt.Errorf("%w: %q (have %v)", entities.ErrSheetNotFound, sheet, list)
}
