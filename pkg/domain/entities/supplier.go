package entities

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// NoSupplierFound is the label reported for materials that have no quote at all
const NoSupplierFound = "no supplier found"

// SupplierQuote is one supplier's price for one material
type SupplierQuote struct {
	MaterialID   MaterialID
	SupplierName string
	SupplierID   SupplierID
	UnitPrice    Optional[decimal.Decimal]
	Currency     Currency
	PriceRMB     Optional[decimal.Decimal]
	MinOrderQty  Optional[decimal.Decimal]
	LastModified Optional[time.Time]
	// Seq is the position of the quote in the supplier file; ties are broken on it
	Seq int
}

// NewSupplierQuote creates a validated SupplierQuote and resolves its RMB price
func NewSupplierQuote(materialID MaterialID, supplierName string, supplierID SupplierID, unitPrice Optional[decimal.Decimal], currency Currency, rates RateTable) (*SupplierQuote, error) {
	if strings.TrimSpace(string(materialID)) == "" {
		return nil, fmt.Errorf("material id cannot be empty")
	}
	if currency == "" {
		currency = RMB
	}

	quote := &SupplierQuote{
		MaterialID:   materialID.Key(),
		SupplierName: strings.TrimSpace(supplierName),
		SupplierID:   SupplierID(strings.TrimSpace(string(supplierID))),
		UnitPrice:    unitPrice,
		Currency:     currency,
	}
	if price, ok := unitPrice.Get(); ok {
		quote.PriceRMB = Some(rates.ToRMB(price, currency))
	}

	return quote, nil
}

// PositivePrice returns the RMB price when it is greater than zero
func (q SupplierQuote) PositivePrice() (decimal.Decimal, bool) {
	p, ok := q.PriceRMB.Get()
	if !ok || !p.IsPositive() {
		return decimal.Zero, false
	}
	return p, true
}

// SupplierStatus records how supplier selection resolved for a row
type SupplierStatus int

const (
	// SupplierNotApplicable is used for rows without a shortage line
	SupplierNotApplicable SupplierStatus = iota
	SupplierFound
	SupplierNotFound
)

// String method for SupplierStatus enum
func (s SupplierStatus) String() string {
	switch s {
	case SupplierNotApplicable:
		return "n/a"
	case SupplierFound:
		return "found"
	case SupplierNotFound:
		return NoSupplierFound
	default:
		return "Unknown"
	}
}

// SupplierResolution is the outcome of primary supplier selection for one material
type SupplierResolution struct {
	Status     SupplierStatus
	Primary    Optional[SupplierQuote]
	QuoteCount int
	Score      int
}

// SupplierName returns the primary supplier's name or the no-supplier label
func (r SupplierResolution) SupplierName() string {
	if q, ok := r.Primary.Get(); ok {
		return q.SupplierName
	}
	if r.Status == SupplierNotFound {
		return NoSupplierFound
	}
	return ""
}
