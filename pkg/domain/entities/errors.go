package entities

import "errors"

var (
	// ErrOrdersUnavailable is returned when no order source could be read
	ErrOrdersUnavailable = errors.New("order source unavailable")
	// ErrNoOrders is returned when order sources were read but no row survived filtering
	ErrNoOrders = errors.New("no orders after filtering")
	// ErrSourceUnavailable marks a missing or unreadable input file
	ErrSourceUnavailable = errors.New("source unavailable")
	// ErrSheetNotFound marks a workbook that lacks the requested sheet
	ErrSheetNotFound = errors.New("sheet not found")
	// ErrUnsupportedFormat marks an input file with an unknown extension
	ErrUnsupportedFormat = errors.New("unsupported file format")
)
