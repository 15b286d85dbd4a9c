package wealth

import (
	"math"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"millionaire_level/models"
)

// MillionaireThreshold is the amount above which an entry counts as a million.
const MillionaireThreshold = 1_000_000

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrDivisionByZero = errors.New("division by zero")
)

// NormalizeCode приводит код валюты к виду, в котором он хранится в справочнике.
func NormalizeCode(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}

func validateAmount(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		return errors.Wrapf(ErrInvalidInput, "amount must be a non-negative number, got %v", amount)
	}
	return nil
}

// checkFinite rejects results that overflowed float64.
func checkFinite(amount float64, code string) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return errors.Wrapf(ErrInvalidInput, "amount in %q is out of range", code)
	}
	return nil
}

func usableRate(rate float64) bool {
	return rate > 0 && !math.IsInf(rate, 0)
}

func sourceRate(source string, rates models.RateTable) (float64, error) {
	code := NormalizeCode(source)
	if code == "" {
		return 0, errors.Wrap(ErrInvalidInput, "currency is required")
	}
	rate, ok := rates.Rate(code)
	if !ok {
		return 0, errors.Wrapf(ErrInvalidInput, "no exchange rate for %q", code)
	}
	if rate == 0 {
		return 0, errors.Wrapf(ErrDivisionByZero, "exchange rate for %q is zero", code)
	}
	if !usableRate(rate) {
		return 0, errors.Wrapf(ErrInvalidInput, "exchange rate for %q is %v", code, rate)
	}
	return rate, nil
}

// ToReference expresses wealth held in source in units of the reference currency.
func ToReference(wealth float64, source string, rates models.RateTable) (float64, error) {
	if err := validateAmount(wealth); err != nil {
		return 0, err
	}
	rate, err := sourceRate(source, rates)
	if err != nil {
		return 0, err
	}
	inReference := wealth / rate
	if err := checkFinite(inReference, "reference"); err != nil {
		return 0, err
	}
	return inReference, nil
}

// Convert converts amount between two currencies of the same rate snapshot.
func Convert(amount float64, from, to string, rates models.RateTable) (float64, error) {
	inReference, err := ToReference(amount, from, rates)
	if err != nil {
		return 0, err
	}
	if NormalizeCode(from) == NormalizeCode(to) {
		return amount, nil
	}
	rate, err := sourceRate(to, rates)
	if err != nil {
		return 0, err
	}
	converted := inReference * rate
	if err := checkFinite(converted, NormalizeCode(to)); err != nil {
		return 0, err
	}
	return converted, nil
}

// Normalize returns wealth expressed in every directory currency that has a
// usable rate and a non-empty name, sorted by amount descending. Directory codes
// are visited in ascending order, so ties keep code order.
func Normalize(wealth float64, source string, rates models.RateTable, dir models.CurrencyDirectory) ([]models.WealthEntry, error) {
	if err := validateAmount(wealth); err != nil {
		return nil, err
	}
	if len(rates.Rates) == 0 || len(dir) == 0 {
		return []models.WealthEntry{}, nil
	}

	inReference, err := ToReference(wealth, source, rates)
	if err != nil {
		return nil, err
	}
	source = NormalizeCode(source)

	entries := make([]models.WealthEntry, 0, len(dir))
	for _, code := range dir.Codes() {
		name := dir[code]
		if name == "" {
			continue
		}
		rate, ok := rates.Rate(code)
		if !ok || !usableRate(rate) {
			continue
		}

		amount := inReference * rate
		if code == source {
			amount = wealth
		}
		if err := checkFinite(amount, code); err != nil {
			return nil, err
		}
		entries = append(entries, models.WealthEntry{
			CurrencyCode: code,
			Currency:     name,
			Amount:       amount,
			Millionaire:  amount > MillionaireThreshold,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Amount > entries[j].Amount
	})
	return entries, nil
}

// Closest picks the n entries below the threshold that are nearest to it and
// returns them in ascending order of amount.
func Closest(entries []models.WealthEntry, n int) []models.WealthEntry {
	below := make([]models.WealthEntry, 0, len(entries))
	for _, e := range entries {
		if e.Amount < MillionaireThreshold {
			below = append(below, e)
		}
	}
	sort.SliceStable(below, func(i, j int) bool {
		return below[i].Amount > below[j].Amount
	})
	if n < 0 {
		n = 0
	}
	if len(below) > n {
		below = below[:n]
	}

	closest := make([]models.WealthEntry, len(below))
	for i, e := range below {
		closest[len(below)-1-i] = e
	}
	return closest
}

func Ratio(entries []models.WealthEntry) models.MillionaireRatio {
	ratio := models.MillionaireRatio{Total: len(entries)}
	for _, e := range entries {
		if e.Millionaire {
			ratio.Millionaire++
		} else {
			ratio.NotMillionaire++
		}
	}
	return ratio
}

// Indicators builds the benchmark widgets for codes. A code without a usable
// rate comes back with Available set to false.
func Indicators(inReference float64, rates models.RateTable, codes []string) ([]models.Indicator, error) {
	indicators := make([]models.Indicator, 0, len(codes))
	for _, code := range codes {
		code = NormalizeCode(code)
		indicator := models.Indicator{
			Code:  code,
			Title: strings.ToUpper(code),
		}
		if rate, ok := rates.Rate(code); ok && usableRate(rate) {
			indicator.Value = inReference * rate
			if err := checkFinite(indicator.Value, code); err != nil {
				return nil, err
			}
			indicator.Delta = indicator.Value - MillionaireThreshold
			indicator.Available = true
		}
		indicators = append(indicators, indicator)
	}
	return indicators, nil
}
