package memory

import (
	"github.com/yintu/pmc/pkg/domain/entities"
	"github.com/yintu/pmc/pkg/domain/repositories"
)

// InventoryRepository provides in-memory inventory price storage keyed by material.
// The first record loaded for a material wins; loaders deduplicate before loading.
type InventoryRepository struct {
	records    []entities.InventoryRecord
	byMaterial map[entities.MaterialID]int
}

// NewInventoryRepository creates a new in-memory inventory repository
func NewInventoryRepository(expectedRecords int) *InventoryRepository {
	return &InventoryRepository{
		records:    make([]entities.InventoryRecord, 0, expectedRecords),
		byMaterial: make(map[entities.MaterialID]int, expectedRecords),
	}
}

// Verify interface compliance
var _ repositories.InventoryRepository = (*InventoryRepository)(nil)

// LoadInventoryRecords loads inventory records into the repository
func (r *InventoryRepository) LoadInventoryRecords(records []*entities.InventoryRecord) error {
	for _, record := range records {
		r.AddInventoryRecord(*record)
	}
	return nil
}

// AddInventoryRecord adds a record unless the material is already present
func (r *InventoryRepository) AddInventoryRecord(record entities.InventoryRecord) {
	key := record.MaterialID.Key()
	if _, exists := r.byMaterial[key]; exists {
		return
	}
	r.byMaterial[key] = len(r.records)
	r.records = append(r.records, record)
}

// FindInventoryRecord returns the record for a material
func (r *InventoryRepository) FindInventoryRecord(materialID entities.MaterialID) (*entities.InventoryRecord, bool) {
	idx, exists := r.byMaterial[materialID.Key()]
	if !exists {
		return nil, false
	}
	return &r.records[idx], true
}

// GetAllInventoryRecords returns all records
func (r *InventoryRepository) GetAllInventoryRecords() ([]*entities.InventoryRecord, error) {
	records := make([]*entities.InventoryRecord, 0, len(r.records))
	for i := range r.records {
		records = append(records, &r.records[i])
	}
	return records, nil
}
