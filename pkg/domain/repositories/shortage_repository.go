package repositories

import "github.com/yintu/pmc/pkg/domain/entities"

// ShortageRepository provides access to shortage lines grouped by production order
type ShortageRepository interface {
	// GetShortageLines returns the lines whose trimmed order ref equals ref, in source order.
	// An order without shortage yields an empty slice, not an error.
	GetShortageLines(ref entities.ProductionOrderID) ([]*entities.ShortageLine, error)
	GetAllShortageLines() ([]*entities.ShortageLine, error)
	LoadShortageLines(lines []*entities.ShortageLine) error
}
