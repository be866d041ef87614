package memory

import (
	"github.com/yintu/pmc/pkg/domain/entities"
	"github.com/yintu/pmc/pkg/domain/repositories"
)

// ShortageRepository stores shortage lines with an index by order ref
type ShortageRepository struct {
	lines   []entities.ShortageLine
	byOrder map[entities.ProductionOrderID][]int
}

// NewShortageRepository creates a new in-memory shortage repository
func NewShortageRepository(expectedLines int) *ShortageRepository {
	return &ShortageRepository{
		lines:   make([]entities.ShortageLine, 0, expectedLines),
		byOrder: make(map[entities.ProductionOrderID][]int),
	}
}

// Verify interface compliance
var _ repositories.ShortageRepository = (*ShortageRepository)(nil)

// LoadShortageLines loads shortage lines into the repository
func (r *ShortageRepository) LoadShortageLines(lines []*entities.ShortageLine) error {
	for _, line := range lines {
		r.AddShortageLine(*line)
	}
	return nil
}

// AddShortageLine adds a line and indexes it under its trimmed order ref.
// Seq is assigned from load order when unset.
func (r *ShortageRepository) AddShortageLine(line entities.ShortageLine) {
	if line.Seq == 0 {
		line.Seq = len(r.lines) + 1
	}
	key := line.OrderRef.Key()
	r.byOrder[key] = append(r.byOrder[key], len(r.lines))
	r.lines = append(r.lines, line)
}

// GetShortageLines returns the lines for a production order in source order
func (r *ShortageRepository) GetShortageLines(ref entities.ProductionOrderID) ([]*entities.ShortageLine, error) {
	indexes := r.byOrder[ref.Key()]
	lines := make([]*entities.ShortageLine, 0, len(indexes))
	for _, idx := range indexes {
		lines = append(lines, &r.lines[idx])
	}
	return lines, nil
}

// GetAllShortageLines returns every line in source order
func (r *ShortageRepository) GetAllShortageLines() ([]*entities.ShortageLine, error) {
	lines := make([]*entities.ShortageLine, 0, len(r.lines))
	for i := range r.lines {
		lines = append(lines, &r.lines[i])
	}
	return lines, nil
}

// OrderRefs returns the distinct order refs in first-seen order
func (r *ShortageRepository) OrderRefs() []entities.ProductionOrderID {
	seen := make(map[entities.ProductionOrderID]bool, len(r.byOrder))
	var refs []entities.ProductionOrderID
	for _, line := range r.lines {
		key := line.OrderRef.Key()
		if !seen[key] {
			seen[key] = true
			refs = append(refs, key)
		}
	}
	return refs
}
