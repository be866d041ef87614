package repositories

import "github.com/yintu/pmc/pkg/domain/entities"

// SupplierRepository provides access to supplier quotes keyed by material
type SupplierRepository interface {
	// GetQuotes returns every quote for the material in file order
	GetQuotes(materialID entities.MaterialID) ([]*entities.SupplierQuote, error)
	GetAllQuotes() ([]*entities.SupplierQuote, error)
	LoadQuotes(quotes []*entities.SupplierQuote) error
}
