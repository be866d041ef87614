package selection

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/yintu/pmc/pkg/application/dto"
	"github.com/yintu/pmc/pkg/domain/entities"
	"github.com/yintu/pmc/pkg/domain/repositories"
)

// Selector resolves primary suppliers for many materials
type Selector struct {
	quotes  repositories.SupplierRepository
	weights Weights
	workers int
	logger  *slog.Logger
}

// NewSelector creates a selector. workers <= 0 uses one worker per CPU.
func NewSelector(quotes repositories.SupplierRepository, weights Weights, workers int, logger *slog.Logger) *Selector {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Selector{quotes: quotes, weights: weights, workers: workers, logger: logger}
}

// SelectAll resolves every material. Each material is scored independently, so
// the work fans out; results are returned in the order of materials.
func (s *Selector) SelectAll(ctx context.Context, materials []entities.MaterialID) ([]dto.MaterialSelection, error) {
	results := make([]dto.MaterialSelection, len(materials))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for i, materialID := range materials {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			quotes, err := s.quotes.GetQuotes(materialID)
			if err != nil {
				return fmt.Errorf("failed to get quotes for material %s: %w", materialID, err)
			}
			results[i] = SelectPrimary(materialID, inFileOrder(quotes), s.weights)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	found := 0
	for _, r := range results {
		if r.Resolution.Status == entities.SupplierFound {
			found++
		}
	}
	s.logger.InfoContext(ctx, "primary suppliers selected",
		slog.Int("materials", len(materials)),
		slog.Int("with_supplier", found),
		slog.Int("workers", s.workers))

	return results, nil
}

func inFileOrder(quotes []*entities.SupplierQuote) []entities.SupplierQuote {
	out := make([]entities.SupplierQuote, len(quotes))
	for i, q := range quotes {
		out[i] = *q
	}
	slices.SortStableFunc(out, func(a, b entities.SupplierQuote) int {
		return a.Seq - b.Seq
	})
	return out
}

// Choices lists every quote of the materials that have more than one, with
// price and date ranks, for side by side comparison. names supplies material names.
func Choices(selections []dto.MaterialSelection, names map[entities.MaterialID]string) []dto.SupplierChoice {
	var choices []dto.SupplierChoice
	for _, sel := range selections {
		if len(sel.Candidates) < 2 {
			continue
		}
		for i, c := range sel.Candidates {
			q := c.Quote
			choices = append(choices, dto.SupplierChoice{
				MaterialID:   sel.MaterialID,
				MaterialName: names[sel.MaterialID],
				SupplierID:   q.SupplierID,
				SupplierName: q.SupplierName,
				UnitPrice:    q.UnitPrice,
				Currency:     q.Currency,
				PriceRMB:     q.PriceRMB,
				MinOrderQty:  q.MinOrderQty,
				LastModified: q.LastModified,
				QuoteCount:   len(sel.Candidates),
				PriceRank:    priceRank(sel.Candidates, i),
				DateRank:     dateRank(sel.Candidates, i),
				Score:        c.Total,
				Primary:      c.Primary,
			})
		}
	}
	return choices
}

// priceRank is 1 for the cheapest quote; quotes without a price rank last
func priceRank(candidates []dto.ScoredQuote, idx int) int {
	price, ok := candidates[idx].Quote.PriceRMB.Get()
	if !ok {
		return len(candidates)
	}
	rank := 1
	for j, c := range candidates {
		if p, ok := c.Quote.PriceRMB.Get(); ok && j != idx && p.LessThan(price) {
			rank++
		}
	}
	return rank
}

// dateRank is 1 for the most recently modified quote; undated quotes rank last
func dateRank(candidates []dto.ScoredQuote, idx int) int {
	date, ok := candidates[idx].Quote.LastModified.Get()
	if !ok {
		return len(candidates)
	}
	rank := 1
	for j, c := range candidates {
		if d, ok := c.Quote.LastModified.Get(); ok && j != idx && d.After(date) {
			rank++
		}
	}
	return rank
}
