package entities

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// KittedMarkers are the material-name values that flag a fully kitted order rather than a shortage
var KittedMarkers = []string{"已齐套", "已齊套", "齐套", "齊套"}

// IsKittedMarker reports whether a material name is one of the kitted sentinels
func IsKittedMarker(materialName string) bool {
	for _, marker := range KittedMarkers {
		if strings.Contains(materialName, marker) {
			return true
		}
	}
	return false
}

// ShortageLine is one short material for one production order
type ShortageLine struct {
	OrderRef             ProductionOrderID
	MaterialID           MaterialID
	MaterialName         string
	ShortageQty          Optional[decimal.Decimal]
	DemandQty            Optional[decimal.Decimal]
	PurchasedNotReturned Optional[decimal.Decimal]
	OnHandQty            Optional[decimal.Decimal]
	CustomerModel        string
	Department           string
	RequestGroup         string
	SourceRow            int
	// Seq is the line's position in its repository; it identifies the line
	// when the same line joins several rows of one production order
	Seq int
}

// NewShortageLine creates a validated ShortageLine
func NewShortageLine(orderRef ProductionOrderID, materialID MaterialID, materialName string, shortageQty Optional[decimal.Decimal]) (*ShortageLine, error) {
	if strings.TrimSpace(string(orderRef)) == "" {
		return nil, fmt.Errorf("order ref cannot be empty")
	}
	if IsKittedMarker(materialName) {
		return nil, fmt.Errorf("material name %q marks a kitted order", materialName)
	}
	if qty, ok := shortageQty.Get(); ok && qty.IsNegative() {
		return nil, fmt.Errorf("shortage quantity cannot be negative, got %s", qty)
	}

	return &ShortageLine{
		OrderRef:     orderRef.Key(),
		MaterialID:   materialID.Key(),
		MaterialName: strings.TrimSpace(materialName),
		ShortageQty:  shortageQty,
	}, nil
}

// Qty returns the shortage quantity with null treated as zero
func (s ShortageLine) Qty() decimal.Decimal {
	return s.ShortageQty.OrElse(decimal.Zero)
}
