package memory

import (
	"github.com/yintu/pmc/pkg/domain/entities"
	"github.com/yintu/pmc/pkg/domain/repositories"
)

// SupplierRepository provides in-memory quote storage grouped by material
type SupplierRepository struct {
	quotes     []entities.SupplierQuote
	byMaterial map[entities.MaterialID][]int
}

// NewSupplierRepository creates a new in-memory supplier repository
func NewSupplierRepository(expectedQuotes int) *SupplierRepository {
	return &SupplierRepository{
		quotes:     make([]entities.SupplierQuote, 0, expectedQuotes),
		byMaterial: make(map[entities.MaterialID][]int),
	}
}

// Verify interface compliance
var _ repositories.SupplierRepository = (*SupplierRepository)(nil)

// LoadQuotes loads quotes into the repository
func (r *SupplierRepository) LoadQuotes(quotes []*entities.SupplierQuote) error {
	for _, quote := range quotes {
		r.AddQuote(*quote)
	}
	return nil
}

// AddQuote appends a quote; Seq is assigned from load order when unset
func (r *SupplierRepository) AddQuote(quote entities.SupplierQuote) {
	if quote.Seq == 0 {
		quote.Seq = len(r.quotes) + 1
	}
	key := quote.MaterialID.Key()
	r.byMaterial[key] = append(r.byMaterial[key], len(r.quotes))
	r.quotes = append(r.quotes, quote)
}

// GetQuotes returns all quotes for a material in load order
func (r *SupplierRepository) GetQuotes(materialID entities.MaterialID) ([]*entities.SupplierQuote, error) {
	indexes := r.byMaterial[materialID.Key()]
	quotes := make([]*entities.SupplierQuote, 0, len(indexes))
	for _, idx := range indexes {
		quotes = append(quotes, &r.quotes[idx])
	}
	return quotes, nil
}

// GetAllQuotes returns all quotes
func (r *SupplierRepository) GetAllQuotes() ([]*entities.SupplierQuote, error) {
	quotes := make([]*entities.SupplierQuote, 0, len(r.quotes))
	for i := range r.quotes {
		quotes = append(quotes, &r.quotes[i])
	}
	return quotes, nil
}

// MaterialCount returns the number of distinct quoted materials
func (r *SupplierRepository) MaterialCount() int {
	return len(r.byMaterial)
}
