package entities

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Currency is an ISO-like currency tag as written on the price lists
type Currency string

const (
	RMB Currency = "RMB"
	USD Currency = "USD"
	HKD Currency = "HKD"
	EUR Currency = "EUR"
)

var currencyAliases = map[string]Currency{
	"RMB": RMB,
	"CNY": RMB,
	"人民币": RMB,
	"人民幣": RMB,
	"USD": USD,
	"US$": USD,
	"美元":  USD,
	"美金":  USD,
	"HKD": HKD,
	"HK$": HKD,
	"港币":  HKD,
	"港幣":  HKD,
	"EUR": EUR,
	"欧元":  EUR,
	"歐元":  EUR,
}

// ParseCurrency maps a raw currency cell onto a Currency.
// Blank cells are RMB; unrecognised values are kept upper-cased so they show up in the report.
func ParseCurrency(raw string) Currency {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if s == "" || s == "NAN" {
		return RMB
	}
	if c, ok := currencyAliases[s]; ok {
		return c
	}
	return Currency(s)
}

// RateTable converts an amount in a given currency to RMB
type RateTable map[Currency]decimal.Decimal

// DefaultRates returns the fixed conversion table used by the PMC team
func DefaultRates() RateTable {
	return RateTable{
		RMB: decimal.NewFromInt(1),
		USD: decimal.RequireFromString("7.20"),
		HKD: decimal.RequireFromString("0.93"),
		EUR: decimal.RequireFromString("7.85"),
	}
}

// Rate returns the RMB rate for c. Unknown currencies convert at 1.0 and report known=false.
func (t RateTable) Rate(c Currency) (rate decimal.Decimal, known bool) {
	if r, ok := t[c]; ok {
		return r, true
	}
	return decimal.NewFromInt(1), false
}

// ToRMB converts amount from c into RMB
func (t RateTable) ToRMB(amount decimal.Decimal, c Currency) decimal.Decimal {
	rate, _ := t.Rate(c)
	return amount.Mul(rate)
}
