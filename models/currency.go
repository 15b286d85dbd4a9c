package models

import "sort"

// CurrencyDirectory maps a currency code to its display name.
type CurrencyDirectory map[string]string

// Codes returns the directory codes in ascending order.
func (d CurrencyDirectory) Codes() []string {
	codes := make([]string, 0, len(d))
	for code := range d {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// RateTable is a rate snapshot: how many units of each currency equal one unit
// of the reference currency.
type RateTable struct {
	Date      string             `json:"date"`
	Reference string             `json:"reference"`
	Rates     map[string]float64 `json:"rates"`
}

func (t RateTable) Rate(code string) (float64, bool) {
	rate, ok := t.Rates[code]
	return rate, ok
}

type Currency struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type WealthEntry struct {
	CurrencyCode string  `json:"currency_code"`
	Currency     string  `json:"currency"`
	Amount       float64 `json:"amount"`
	Millionaire  bool    `json:"millionaire"`
}
