package currencyapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"millionaire_level/models"
	"millionaire_level/pkg/metrics"
)

const (
	DefaultBaseURL   = "https://cdn.jsdelivr.net/gh/fawazahmed0/currency-api"
	DefaultVersion   = "1"
	DefaultReference = "eur"
	LatestDate       = "latest"

	dateLayout = "2006-01-02"
)

var (
	ErrNetwork     = errors.New("currency api request failed")
	ErrDecode      = errors.New("currency api returned malformed data")
	ErrInvalidDate = errors.New("date must be \"latest\" or YYYY-MM-DD")
)

type Config struct {
	BaseURL    string
	Version    string
	Reference  string
	Timeout    time.Duration
	RetryCount int
	RetryWait  time.Duration
}

// Client fetches the currency directory and rate snapshots from the
// fawazahmed0 currency API.
type Client struct {
	http *resty.Client
	cfg  Config
}

func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Version == "" {
		cfg.Version = DefaultVersion
	}
	if cfg.Reference == "" {
		cfg.Reference = DefaultReference
	}
	cfg.Reference = strings.ToLower(cfg.Reference)
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.RetryWait <= 0 {
		cfg.RetryWait = 500 * time.Millisecond
	}

	client := resty.New().
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.RetryCount).
		SetRetryWaitTime(cfg.RetryWait).
		SetHeader("Accept", "application/json").
		AddRetryCondition(retryable)

	return &Client{http: client, cfg: cfg}
}

// retryable retries transport failures, 429 and 5xx. A body that arrived but
// did not parse will not get better on the next attempt.
func retryable(r *resty.Response, err error) bool {
	if err != nil {
		return r == nil || r.RawResponse == nil
	}
	return r.StatusCode() == http.StatusTooManyRequests || r.StatusCode() >= 500
}

// ValidateDate accepts "latest" or a calendar date; empty means latest.
func ValidateDate(date string) (string, error) {
	date = strings.TrimSpace(date)
	if date == "" || date == LatestDate {
		return LatestDate, nil
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return "", errors.Wrapf(ErrInvalidDate, "got %q", date)
	}
	return date, nil
}

func (c *Client) currenciesURL(date string) string {
	return fmt.Sprintf("%s@%s/%s/currencies.json", c.cfg.BaseURL, c.cfg.Version, date)
}

func (c *Client) ratesURL(date string) string {
	return fmt.Sprintf("%s@%s/%s/currencies/%s.json", c.cfg.BaseURL, c.cfg.Version, date, c.cfg.Reference)
}

func (c *Client) get(ctx context.Context, endpoint, url string, result interface{}) (*resty.Response, error) {
	logrus.WithField("url", url).Debug("currency api request")

	start := time.Now()
	resp, err := c.http.R().
		SetContext(ctx).
		ForceContentType("application/json").
		SetResult(result).
		Get(url)
	if err != nil {
		if resp != nil && resp.RawResponse != nil {
			// ответ получен, но тело не разобралось
			metrics.ObserveUpstream(endpoint, resp.StatusCode(), time.Since(start))
			return nil, errors.Wrapf(ErrDecode, "GET %s: %v", url, err)
		}
		metrics.ObserveUpstream(endpoint, 0, time.Since(start))
		return nil, errors.Wrapf(ErrNetwork, "GET %s: %v", url, err)
	}
	metrics.ObserveUpstream(endpoint, resp.StatusCode(), time.Since(start))

	if resp.IsError() {
		return nil, errors.Wrapf(ErrNetwork, "GET %s: status %d", url, resp.StatusCode())
	}
	return resp, nil
}

// FetchCurrencies returns the {code: name} directory for date.
func (c *Client) FetchCurrencies(ctx context.Context, date string) (models.CurrencyDirectory, error) {
	date, err := ValidateDate(date)
	if err != nil {
		return nil, err
	}

	resp, err := c.get(ctx, "currencies", c.currenciesURL(date), models.CurrencyDirectory{})
	if err != nil {
		return nil, err
	}

	dir, ok := resp.Result().(*models.CurrencyDirectory)
	if !ok || dir == nil || *dir == nil {
		return nil, errors.Wrap(ErrDecode, "currency directory is empty")
	}
	return *dir, nil
}

// FetchRates returns the rate snapshot of the reference currency for date.
func (c *Client) FetchRates(ctx context.Context, date string) (models.RateTable, error) {
	date, err := ValidateDate(date)
	if err != nil {
		return models.RateTable{}, err
	}

	resp, err := c.get(ctx, "rates", c.ratesURL(date), map[string]json.RawMessage{})
	if err != nil {
		return models.RateTable{}, err
	}

	raw, ok := resp.Result().(*map[string]json.RawMessage)
	if !ok || raw == nil {
		return models.RateTable{}, errors.Wrap(ErrDecode, "rate snapshot is empty")
	}
	return decodeRates(*raw, c.cfg.Reference)
}

func decodeRates(raw map[string]json.RawMessage, reference string) (models.RateTable, error) {
	table := models.RateTable{Reference: reference}

	if d, ok := raw["date"]; ok {
		if err := json.Unmarshal(d, &table.Date); err != nil {
			return models.RateTable{}, errors.Wrapf(ErrDecode, "date: %v", err)
		}
	}

	body, ok := raw[reference]
	if !ok {
		return models.RateTable{}, errors.Wrapf(ErrDecode, "no %q rates in snapshot", reference)
	}
	if err := json.Unmarshal(body, &table.Rates); err != nil {
		return models.RateTable{}, errors.Wrapf(ErrDecode, "%s rates: %v", reference, err)
	}
	if table.Rates == nil {
		table.Rates = map[string]float64{}
	}
	// курс базовой валюты к самой себе всегда 1
	if _, ok := table.Rates[reference]; !ok {
		table.Rates[reference] = 1
	}
	return table, nil
}
