// Package selection picks one primary supplier per material from its quotes.
package selection

import (
	"math/big"
	"time"

	"github.com/shopspring/decimal"

	"github.com/yintu/pmc/pkg/application/dto"
	"github.com/yintu/pmc/pkg/domain/entities"
)

// Weights are the points awarded by each scoring rule
type Weights struct {
	// RecencyLatest goes to every quote carrying the most recent modification date
	RecencyLatest int
	// RecencyWithinYear goes to dated quotes at most a year older than the latest
	RecencyWithinYear int
	// RecencyOlder goes to the remaining dated quotes
	RecencyOlder int

	// PriceLowest goes to every quote at the lowest positive RMB price
	PriceLowest       int
	PriceWithin10Pct  int
	PriceWithin20Pct  int
	PricePositive     int
	StabilityLowestID int
}

// DefaultWeights returns the standard weights
func DefaultWeights() Weights {
	return Weights{
		RecencyLatest:     40,
		RecencyWithinYear: 30,
		RecencyOlder:      20,
		PriceLowest:       35,
		PriceWithin10Pct:  25,
		PriceWithin20Pct:  15,
		PricePositive:     5,
		StabilityLowestID: 25,
	}
}

const yearDays = 365

var (
	tenPercent    = decimal.RequireFromString("1.1")
	twentyPercent = decimal.RequireFromString("1.2")
)

// Score rates every quote of one material. The result is in quote order.
func Score(quotes []entities.SupplierQuote, w Weights) []dto.ScoredQuote {
	scored := make([]dto.ScoredQuote, len(quotes))
	for i, q := range quotes {
		scored[i].Quote = q
	}

	if latest, ok := latestDate(quotes); ok {
		for i, q := range quotes {
			scored[i].Recency = recencyPoints(q, latest, w)
		}
	}

	if lowest, ok := lowestPrice(quotes); ok {
		for i, q := range quotes {
			scored[i].Price = pricePoints(q, lowest, w)
		}
	}

	if lowest, ok := lowestSupplierNumber(quotes); ok {
		for i, q := range quotes {
			if n, ok := supplierNumber(q.SupplierID); ok && n.Cmp(lowest) == 0 {
				scored[i].Stability = w.StabilityLowestID
			}
		}
	}

	for i := range scored {
		scored[i].Total = scored[i].Recency + scored[i].Price + scored[i].Stability
	}
	return scored
}

func recencyPoints(q entities.SupplierQuote, latest time.Time, w Weights) int {
	date, ok := q.LastModified.Get()
	if !ok {
		return 0
	}
	points := 0
	if date.Equal(latest) {
		points += w.RecencyLatest
	}
	if daysBetween(date, latest) <= yearDays {
		points += w.RecencyWithinYear
	} else {
		points += w.RecencyOlder
	}
	return points
}

func pricePoints(q entities.SupplierQuote, lowest decimal.Decimal, w Weights) int {
	price, ok := q.PositivePrice()
	if !ok {
		return 0
	}
	points := 0
	if price.Equal(lowest) {
		points += w.PriceLowest
	}
	switch {
	case price.LessThanOrEqual(lowest.Mul(tenPercent)):
		points += w.PriceWithin10Pct
	case price.LessThanOrEqual(lowest.Mul(twentyPercent)):
		points += w.PriceWithin20Pct
	default:
		points += w.PricePositive
	}
	return points
}

// daysBetween counts whole days from earlier to later
func daysBetween(earlier, later time.Time) int {
	return int(later.Sub(earlier).Hours() / 24)
}

func latestDate(quotes []entities.SupplierQuote) (time.Time, bool) {
	var (
		latest time.Time
		found  bool
	)
	for _, q := range quotes {
		if d, ok := q.LastModified.Get(); ok && (!found || d.After(latest)) {
			latest, found = d, true
		}
	}
	return latest, found
}

func lowestPrice(quotes []entities.SupplierQuote) (decimal.Decimal, bool) {
	var (
		lowest decimal.Decimal
		found  bool
	)
	for _, q := range quotes {
		if p, ok := q.PositivePrice(); ok && (!found || p.LessThan(lowest)) {
			lowest, found = p, true
		}
	}
	return lowest, found
}

// supplierNumber reads a supplier code as a number; codes such as "S-12" have none
func supplierNumber(id entities.SupplierID) (*big.Float, bool) {
	n, ok := new(big.Float).SetString(string(id))
	return n, ok
}

func lowestSupplierNumber(quotes []entities.SupplierQuote) (*big.Float, bool) {
	var lowest *big.Float
	for _, q := range quotes {
		if n, ok := supplierNumber(q.SupplierID); ok && (lowest == nil || n.Cmp(lowest) < 0) {
			lowest = n
		}
	}
	return lowest, lowest != nil
}

// SelectPrimary resolves the primary supplier of one material. No quotes is
// a reportable state; a single quote is primary without scoring; otherwise the
// highest total wins and the first quote in file order wins a tie.
func SelectPrimary(materialID entities.MaterialID, quotes []entities.SupplierQuote, w Weights) dto.MaterialSelection {
	selection := dto.MaterialSelection{MaterialID: materialID}

	switch len(quotes) {
	case 0:
		selection.Resolution = entities.SupplierResolution{Status: entities.SupplierNotFound}
		return selection
	case 1:
		selection.Candidates = []dto.ScoredQuote{{Quote: quotes[0], Primary: true}}
		selection.Resolution = entities.SupplierResolution{
			Status:     entities.SupplierFound,
			Primary:    entities.Some(quotes[0]),
			QuoteCount: 1,
		}
		return selection
	}

	scored := Score(quotes, w)
	best := 0
	for i := 1; i < len(scored); i++ {
		if scored[i].Total > scored[best].Total {
			best = i
		}
	}
	scored[best].Primary = true

	selection.Candidates = scored
	selection.Resolution = entities.SupplierResolution{
		Status:     entities.SupplierFound,
		Primary:    entities.Some(quotes[best]),
		QuoteCount: len(quotes),
		Score:      scored[best].Total,
	}
	return selection
}
