package csv

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/simplifiedchinese"

	"github.com/yintu/pmc/pkg/domain/entities"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Reader loads sheet rows from CSV exports. A CSV file holds a single sheet,
// so the sheet argument is ignored.
type Reader struct {
	logger *slog.Logger
}

// NewReader creates a CSV reader
func NewReader(logger *slog.Logger) *Reader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reader{logger: logger}
}

// ReadRows returns all records of the file. Files that are not valid UTF-8 are
// decoded as GB18030, which covers the GBK exports of the ERP.
func (r *Reader) ReadRows(path, sheet string) ([][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s does not exist", entities.ErrSourceUnavailable, path)
		}
		return nil, fmt.Errorf("%w: %v", entities.ErrSourceUnavailable, err)
	}

	data, encoding, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", entities.ErrSourceUnavailable, path, err)
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV %s: %w", path, err)
	}

	r.logger.Debug("csv read",
		slog.String("file", path),
		slog.String("encoding", encoding),
		slog.Int("rows", len(records)))

	return records, nil
}

// SheetNames returns the file's base name as its only sheet
func (r *Reader) SheetNames(path string) ([]string, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %v", entities.ErrSourceUnavailable, err)
	}
	return []string{strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))}, nil
}

func decode(data []byte) ([]byte, string, error) {
	if bytes.HasPrefix(data, utf8BOM) {
		return data[len(utf8BOM):], "utf-8-sig", nil
	}
	if utf8.Valid(data) {
		return data, "utf-8", nil
	}
	out, err := simplifiedchinese.GB18030.NewDecoder().Bytes(data)
	if err != nil {
		return nil, "", err
	}
	return out, "gb18030", nil
}
