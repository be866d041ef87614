package loading

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/yintu/pmc/pkg/domain/entities"
)

var numberNoise = strings.NewReplacer(",", "", "，", "", "¥", "", "￥", "", "$", "", " ", "", "\u00a0", "")

var nullTokens = map[string]bool{"": true, "nan": true, "none": true, "null": true, "-": true, "n/a": true, "#n/a": true}

// ParseDecimal parses a numeric cell. Anything unparseable is None, never an error.
func ParseDecimal(raw string) entities.Optional[decimal.Decimal] {
	s := numberNoise.Replace(strings.TrimSpace(raw))
	if nullTokens[strings.ToLower(s)] {
		return entities.None[decimal.Decimal]()
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return entities.None[decimal.Decimal]()
	}
	return entities.Some(d)
}

// ParseQuantity parses a piece count, truncating fractions
func ParseQuantity(raw string) entities.Optional[entities.Quantity] {
	d, ok := ParseDecimal(raw).Get()
	if !ok {
		return entities.None[entities.Quantity]()
	}
	return entities.Some(entities.Quantity(d.IntPart()))
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-1-2",
	"2006/01/02",
	"2006/1/2",
	"2006/1/2 15:04:05",
	"2006.01.02",
	"01-02-06",
	"2006年1月2日",
	time.RFC3339,
}

// ParseDate parses a date cell leniently: the common text layouts and Excel
// serial day numbers are accepted; everything else is None.
func ParseDate(raw string) entities.Optional[time.Time] {
	s := strings.TrimSpace(raw)
	if nullTokens[strings.ToLower(s)] {
		return entities.None[time.Time]()
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return entities.Some(t)
		}
	}
	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial >= 1 && serial < 2958466 {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return entities.Some(t)
		}
	}
	return entities.None[time.Time]()
}
