package entities

import "strings"

// ProductionOrderID is the factory-side order number that drives material requirements
type ProductionOrderID string

// CustomerOrderID is the customer-facing order number. Several may map to one production order.
type CustomerOrderID string

// MaterialID identifies a purchasable material
type MaterialID string

// SupplierID is the supplier code printed on the price list
type SupplierID string

// Quantity represents a discrete piece count
type Quantity int64

// Key returns the join key for the production order: surrounding whitespace removed
func (id ProductionOrderID) Key() ProductionOrderID {
	return ProductionOrderID(strings.TrimSpace(string(id)))
}

// Key returns the lookup key for the material
func (id MaterialID) Key() MaterialID {
	return MaterialID(strings.TrimSpace(string(id)))
}

// IsEmpty reports whether the customer order number is blank
func (id CustomerOrderID) IsEmpty() bool {
	return strings.TrimSpace(string(id)) == ""
}
