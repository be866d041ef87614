package entities

import (
	"github.com/shopspring/decimal"
)

// PriceSource records where a row's unit price came from
type PriceSource int

const (
	PriceFromNone PriceSource = iota
	PriceFromSupplier
	PriceFromInventory
)

// String method for PriceSource enum
func (p PriceSource) String() string {
	switch p {
	case PriceFromNone:
		return "none"
	case PriceFromSupplier:
		return "supplier"
	case PriceFromInventory:
		return "inventory"
	default:
		return "Unknown"
	}
}

// CompletenessTag classifies how much of the join chain resolved for a row
type CompletenessTag int

const (
	NoData CompletenessTag = iota
	Complete
	Partial
	OrderOnly
	ShortageOnlyIncomplete
)

// String method for CompletenessTag enum
func (c CompletenessTag) String() string {
	switch c {
	case Complete:
		return "complete"
	case Partial:
		return "partial"
	case OrderOnly:
		return "order-only"
	case ShortageOnlyIncomplete:
		return "shortage-only-incomplete"
	case NoData:
		return "no-data"
	default:
		return "Unknown"
	}
}

// AllCompletenessTags lists the tags in report order
var AllCompletenessTags = []CompletenessTag{Complete, Partial, OrderOnly, ShortageOnlyIncomplete, NoData}

// ReturnRatioKind discriminates the ReturnRatio variants
type ReturnRatioKind int

const (
	InsufficientData ReturnRatioKind = iota
	RatioValue
	NoInvestmentNeeded
)

// ReturnRatio is order value over shortage cost, or one of two sentinel states.
// The sentinels never convert to a number.
type ReturnRatio struct {
	Kind  ReturnRatioKind
	Value decimal.Decimal
}

// Ratio wraps a numeric return ratio
func Ratio(v decimal.Decimal) ReturnRatio {
	return ReturnRatio{Kind: RatioValue, Value: v}
}

// NoInvestment is the ratio of an order that needs no purchasing
func NoInvestment() ReturnRatio {
	return ReturnRatio{Kind: NoInvestmentNeeded}
}

// Insufficient is the ratio of an order without a usable order value
func Insufficient() ReturnRatio {
	return ReturnRatio{Kind: InsufficientData}
}

// Numeric returns the ratio when it is a number
func (r ReturnRatio) Numeric() (decimal.Decimal, bool) {
	if r.Kind != RatioValue {
		return decimal.Zero, false
	}
	return r.Value, true
}

// String renders the ratio for reports
func (r ReturnRatio) String() string {
	switch r.Kind {
	case RatioValue:
		return r.Value.StringFixed(2)
	case NoInvestmentNeeded:
		return "no investment needed"
	default:
		return "insufficient data"
	}
}

// MarshalText lets the ratio render as a plain string in JSON
func (r ReturnRatio) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// ReconciledRow is one (order × shortage line) pair, or the bare order when it has no shortage
type ReconciledRow struct {
	Order     Order
	Shortage  Optional[ShortageLine]
	Inventory Optional[InventoryRecord]
	Supplier  SupplierResolution

	UnitPriceRMB      Optional[decimal.Decimal]
	PriceSource       PriceSource
	ShortageAmountRMB decimal.Decimal
	// CountsShortage is true only on the first row of each shortage line; a line
	// repeats once per customer order sharing its production order.
	CountsShortage bool

	// OrderValueRMB is the value of this row's customer order.
	// CountsOrderValue is true only on the first row of each customer order under a production order.
	OrderValueRMB    Optional[decimal.Decimal]
	CountsOrderValue bool

	ReturnRatio  ReturnRatio
	Completeness CompletenessTag
}

// HasShortage reports whether the row carries a shortage line
func (r ReconciledRow) HasShortage() bool {
	return r.Shortage.IsSome()
}

// HasPrice reports whether a positive unit price was resolved
func (r ReconciledRow) HasPrice() bool {
	p, ok := r.UnitPriceRMB.Get()
	return ok && p.IsPositive()
}

// HasSupplier reports whether a primary supplier was selected
func (r ReconciledRow) HasSupplier() bool {
	return r.Supplier.Status == SupplierFound
}

// MaterialID returns the shortage material or empty when the row has no shortage
func (r ReconciledRow) MaterialID() MaterialID {
	if s, ok := r.Shortage.Get(); ok {
		return s.MaterialID
	}
	return ""
}

// OrderSummary aggregates the reconciled rows of one production order
type OrderSummary struct {
	ProductionOrderID      ProductionOrderID
	ProductModel           string
	Site                   Site
	Month                  Month
	Destination            string
	CustomerOrders         []CustomerOrderID
	ShortageLines          int
	TotalShortageAmountRMB decimal.Decimal
	OrderValueRMB          Optional[decimal.Decimal]
	ReturnRatio            ReturnRatio
	Completeness           CompletenessTag
}
