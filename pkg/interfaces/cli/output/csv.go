package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// utf8BOM lets spreadsheet tools detect UTF-8 when opening the CSV files
const utf8BOM = "\ufeff"

// writeCSVFiles writes one <base>_<sheet>.csv per sheet
func writeCSVFiles(base string, sheets []Sheet) ([]string, error) {
	paths := make([]string, 0, len(sheets))
	for _, sheet := range sheets {
		path := fmt.Sprintf("%s_%s.csv", base, sheet.Name)
		if err := writeCSV(path, sheet); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeCSV(path string, sheet Sheet) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	if _, err := file.WriteString(utf8BOM); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	writer := csv.NewWriter(file)
	if err := writer.Write(sheet.Header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	record := make([]string, len(sheet.Header))
	for _, row := range sheet.Rows {
		record = record[:0]
		for _, cell := range row {
			record = append(record, formatCell(cell))
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return file.Close()
}

// formatCell renders a sheet cell as CSV text; missing values are empty
func formatCell(cell any) string {
	switch v := cell.(type) {
	case nil:
		return ""
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}
