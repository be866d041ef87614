package entities

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// InventoryRecord is one row of the inventory price list
type InventoryRecord struct {
	MaterialID   MaterialID
	MaterialName string
	LatestQuote  Optional[decimal.Decimal]
	Cost         Optional[decimal.Decimal]
	Currency     Currency
	// UnitPrice is the latest quote when present, else the cost price
	UnitPrice Optional[decimal.Decimal]
	PriceRMB  Optional[decimal.Decimal]
}

// NewInventoryRecord creates a validated InventoryRecord and resolves its RMB price
func NewInventoryRecord(materialID MaterialID, materialName string, latestQuote, cost Optional[decimal.Decimal], currency Currency, rates RateTable) (*InventoryRecord, error) {
	if strings.TrimSpace(string(materialID)) == "" {
		return nil, fmt.Errorf("material id cannot be empty")
	}
	if currency == "" {
		currency = RMB
	}

	record := &InventoryRecord{
		MaterialID:   materialID.Key(),
		MaterialName: strings.TrimSpace(materialName),
		LatestQuote:  latestQuote,
		Cost:         cost,
		Currency:     currency,
	}

	switch {
	case latestQuote.IsSome():
		record.UnitPrice = latestQuote
	case cost.IsSome():
		record.UnitPrice = cost
	}
	if price, ok := record.UnitPrice.Get(); ok {
		record.PriceRMB = Some(rates.ToRMB(price, currency))
	}

	return record, nil
}

// HasPrice reports whether the record carries a positive RMB price
func (r InventoryRecord) HasPrice() bool {
	p, ok := r.PriceRMB.Get()
	return ok && p.IsPositive()
}
