package models

// WealthRequest carries the dashboard inputs. Nil or empty fields fall back to
// the configured defaults.
type WealthRequest struct {
	Wealth   *float64 `form:"wealth" json:"wealth"`
	Currency string   `form:"currency" json:"currency"`
	Date     string   `form:"date" json:"date"`
}

type MillionaireRatio struct {
	Millionaire    int `json:"millionaire"`
	NotMillionaire int `json:"not_millionaire"`
	Total          int `json:"total"`
}

// Indicator is a benchmark widget: the wealth in one currency and its distance
// to the millionaire threshold.
type Indicator struct {
	Code      string  `json:"code"`
	Title     string  `json:"title"`
	Value     float64 `json:"value"`
	Delta     float64 `json:"delta"`
	Available bool    `json:"available"`
}

type Dashboard struct {
	Wealth            float64          `json:"wealth"`
	Currency          string           `json:"currency"`
	CurrencyName      string           `json:"currency_name"`
	Reference         string           `json:"reference"`
	Date              string           `json:"date"`
	WealthInReference float64          `json:"wealth_in_reference"`
	Entries           []WealthEntry    `json:"entries"`
	Closest           []WealthEntry    `json:"closest"`
	Ratio             MillionaireRatio `json:"ratio"`
	Indicators        []Indicator      `json:"indicators"`
}
