// Package metrics derives per-order amounts and the return ratio from reconciled rows.
package metrics

import (
	"github.com/shopspring/decimal"

	"github.com/yintu/pmc/pkg/domain/entities"
)

type valueKey struct {
	po  entities.ProductionOrderID
	key string
}

type lineKey struct {
	po  entities.ProductionOrderID
	seq int
	row int
}

// OrderValueRMB converts an order's value into RMB at the order's currency
func OrderValueRMB(order entities.Order, rates entities.RateTable) entities.Optional[decimal.Decimal] {
	v, ok := order.OrderValue.Get()
	if !ok {
		return entities.None[decimal.Decimal]()
	}
	return entities.Some(rates.ToRMB(v, order.Currency))
}

// ReturnRatioFor applies the ratio rules in order: no value means insufficient
// data; a positive shortage gives value/shortage; a positive value without
// shortage needs no investment; anything else is insufficient data.
func ReturnRatioFor(value entities.Optional[decimal.Decimal], shortage decimal.Decimal) entities.ReturnRatio {
	v, ok := value.Get()
	switch {
	case !ok:
		return entities.Insufficient()
	case shortage.IsPositive():
		return entities.Ratio(v.Div(shortage))
	case v.IsPositive():
		return entities.NoInvestment()
	default:
		return entities.Insufficient()
	}
}

// Annotate returns a copy of rows carrying order values in RMB, the
// count-once flags and the return ratio of the row's production order.
func Annotate(rows []entities.ReconciledRow, rates entities.RateTable) []entities.ReconciledRow {
	out := make([]entities.ReconciledRow, len(rows))
	seenValue := make(map[valueKey]bool)
	seenLine := make(map[lineKey]bool)

	for i, row := range rows {
		po := row.Order.ProductionOrderID.Key()
		row.OrderValueRMB = OrderValueRMB(row.Order, rates)

		vk := valueKey{po: po, key: row.Order.ValueKey()}
		row.CountsOrderValue = !seenValue[vk]
		seenValue[vk] = true

		row.CountsShortage = false
		if line, ok := row.Shortage.Get(); ok {
			lk := lineKey{po: po, seq: line.Seq, row: line.SourceRow}
			row.CountsShortage = !seenLine[lk]
			seenLine[lk] = true
		}
		out[i] = row
	}

	summaries := Summarize(out)
	ratios := make(map[entities.ProductionOrderID]entities.ReturnRatio, len(summaries))
	for _, s := range summaries {
		ratios[s.ProductionOrderID] = s.ReturnRatio
	}
	for i := range out {
		out[i].ReturnRatio = ratios[out[i].Order.ProductionOrderID.Key()]
	}
	return out
}

// Summarize aggregates annotated rows into one summary per production order,
// in first-seen order. Order values are counted once per customer order and
// shortage amounts once per shortage line.
func Summarize(rows []entities.ReconciledRow) []entities.OrderSummary {
	var order []entities.ProductionOrderID
	summaries := make(map[entities.ProductionOrderID]*entities.OrderSummary)
	values := make(map[entities.ProductionOrderID]entities.Optional[decimal.Decimal])
	customers := make(map[valueKey]bool)

	for _, row := range rows {
		po := row.Order.ProductionOrderID.Key()
		s, ok := summaries[po]
		if !ok {
			s = &entities.OrderSummary{
				ProductionOrderID:      po,
				ProductModel:           row.Order.ProductModel,
				Site:                   row.Order.Site,
				Month:                  row.Order.Month,
				Destination:            row.Order.Destination,
				TotalShortageAmountRMB: decimal.Zero,
			}
			summaries[po] = s
			order = append(order, po)
		}

		if c := row.Order.CustomerOrderID; !c.IsEmpty() && !customers[valueKey{po: po, key: string(c)}] {
			customers[valueKey{po: po, key: string(c)}] = true
			s.CustomerOrders = append(s.CustomerOrders, c)
		}

		if row.CountsOrderValue {
			if v, ok := row.OrderValueRMB.Get(); ok {
				values[po] = entities.Some(values[po].OrElse(decimal.Zero).Add(v))
			}
		}

		if row.HasShortage() && row.CountsShortage {
			s.ShortageLines++
			s.TotalShortageAmountRMB = s.TotalShortageAmountRMB.Add(row.ShortageAmountRMB)
		}
	}

	out := make([]entities.OrderSummary, 0, len(order))
	for _, po := range order {
		s := summaries[po]
		s.OrderValueRMB = values[po]
		s.ReturnRatio = ReturnRatioFor(s.OrderValueRMB, s.TotalShortageAmountRMB)
		out = append(out, *s)
	}
	return out
}

// AverageRatio is the mean of the numeric ratios; sentinel ratios are left out
func AverageRatio(summaries []entities.OrderSummary) entities.Optional[decimal.Decimal] {
	sum := decimal.Zero
	var count int64
	for _, s := range summaries {
		if v, ok := s.ReturnRatio.Numeric(); ok {
			sum = sum.Add(v)
			count++
		}
	}
	if count == 0 {
		return entities.None[decimal.Decimal]()
	}
	return entities.Some(sum.Div(decimal.NewFromInt(count)))
}
