package repositories

import "github.com/yintu/pmc/pkg/domain/entities"

// InventoryRepository provides access to inventory prices keyed by material
type InventoryRepository interface {
	FindInventoryRecord(materialID entities.MaterialID) (*entities.InventoryRecord, bool)
	GetAllInventoryRecords() ([]*entities.InventoryRecord, error)
	LoadInventoryRecords(records []*entities.InventoryRecord) error
}
