package entities

import (
	"fmt"
	"strconv"
	"strings"
)

// Month tags which monthly order sheet a row came from
type Month int

const (
	UnknownMonth Month = iota
	Jan
	Feb
	Mar
	Apr
	May
	Jun
	Jul
	Aug
	Sep
	Oct
	Nov
	Dec
)

var monthNames = [...]string{"", "Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// String method for Month enum
func (m Month) String() string {
	if m < Jan || m > Dec {
		return "Unknown"
	}
	return monthNames[m]
}

// ParseMonth accepts "Aug", "August", "8", "08" and "8月"
func ParseMonth(raw string) (Month, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimSuffix(s, "月")
	if n, err := strconv.Atoi(s); err == nil {
		if n < 1 || n > 12 {
			return UnknownMonth, fmt.Errorf("month out of range: %d", n)
		}
		return Month(n), nil
	}
	if len(s) >= 3 {
		prefix := strings.ToLower(s[:3])
		for i := Jan; i <= Dec; i++ {
			if strings.ToLower(monthNames[i]) == prefix {
				return i, nil
			}
		}
	}
	return UnknownMonth, fmt.Errorf("unrecognised month: %q", raw)
}

// Site identifies which factory an order file belongs to
type Site int

const (
	Domestic Site = iota
	Overseas
)

// String method for Site enum
func (s Site) String() string {
	switch s {
	case Domestic:
		return "Domestic"
	case Overseas:
		return "Overseas"
	default:
		return "Unknown"
	}
}

// ParseSite accepts the English names and the labels used on the order files
func ParseSite(raw string) (Site, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "domestic", "国内", "國內", "":
		return Domestic, nil
	case "overseas", "海外", "柬埔寨", "cambodia":
		return Overseas, nil
	default:
		return Domestic, fmt.Errorf("unrecognised site: %q", raw)
	}
}
