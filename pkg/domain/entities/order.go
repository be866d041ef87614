package entities

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Order is one row of a monthly order sheet.
// ProductionOrderID is unique per source row at load time but repeats after the shortage join.
type Order struct {
	ProductionOrderID ProductionOrderID
	CustomerOrderID   CustomerOrderID
	ProductModel      string
	Quantity          Optional[Quantity]
	Month             Month
	Site              Site
	OrderValue        Optional[decimal.Decimal]
	Currency          Currency
	Destination       string
	CustomerDueDate   Optional[time.Time]
	ItemNo            string
	BOMNo             string

	// ValueDefaulted is set when the sheet had no order value column and the default was injected
	ValueDefaulted bool
	// SourceRow is the row ordinal across all loaded order sheets
	SourceRow int
}

// NewOrder creates a validated Order
func NewOrder(productionOrderID ProductionOrderID, customerOrderID CustomerOrderID, productModel string) (*Order, error) {
	if strings.TrimSpace(string(productionOrderID)) == "" {
		return nil, fmt.Errorf("production order id cannot be empty")
	}
	if strings.TrimSpace(productModel) == "" {
		return nil, fmt.Errorf("product model cannot be empty")
	}

	return &Order{
		ProductionOrderID: productionOrderID.Key(),
		CustomerOrderID:   CustomerOrderID(strings.TrimSpace(string(customerOrderID))),
		ProductModel:      strings.TrimSpace(productModel),
		Currency:          USD,
	}, nil
}

// ValueKey identifies the customer order whose value this row carries.
// Rows without a customer order number stand for themselves.
func (o Order) ValueKey() string {
	if o.CustomerOrderID.IsEmpty() {
		return fmt.Sprintf("#row-%d", o.SourceRow)
	}
	return string(o.CustomerOrderID)
}
