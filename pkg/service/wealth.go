package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"millionaire_level/internal/wealth"
	"millionaire_level/models"
	"millionaire_level/pkg/currencyapi"
	"millionaire_level/pkg/metrics"
	"millionaire_level/pkg/repository"
	"millionaire_level/pkg/utils"
)

// Options are the dashboard defaults.
type Options struct {
	DefaultWealth   float64
	DefaultCurrency string
	DefaultDate     string
	ClosestCount    int
	Benchmarks      []string
}

func (o Options) withDefaults() Options {
	if o.DefaultCurrency == "" {
		o.DefaultCurrency = currencyapi.DefaultReference
	}
	o.DefaultCurrency = wealth.NormalizeCode(o.DefaultCurrency)
	if o.DefaultDate == "" {
		o.DefaultDate = currencyapi.LatestDate
	}
	if o.ClosestCount <= 0 {
		o.ClosestCount = 5
	}
	if o.Benchmarks == nil {
		o.Benchmarks = []string{"eur", "usd", "jpy", "aud", "eth"}
	}
	return o
}

type WealthService struct {
	repos repository.Currency
	opts  Options
}

func NewWealthService(repos repository.Currency, opts Options) *WealthService {
	return &WealthService{
		repos: repos,
		opts:  opts.withDefaults(),
	}
}

func (s *WealthService) Defaults() Options {
	return s.opts
}

func (s *WealthService) snapshot(ctx context.Context, date string) (models.CurrencyDirectory, models.RateTable, error) {
	if strings.TrimSpace(date) == "" {
		date = s.opts.DefaultDate
	}
	dir, err := s.repos.Currencies(ctx, date)
	if err != nil {
		return nil, models.RateTable{}, errors.Wrap(err, "load currencies")
	}
	rates, err := s.repos.Rates(ctx, date)
	if err != nil {
		return nil, models.RateTable{}, errors.Wrap(err, "load rates")
	}
	return dir, rates, nil
}

func (s *WealthService) Dashboard(ctx context.Context, req models.WealthRequest) (dashboard models.Dashboard, err error) {
	defer func() { metrics.DashboardComputed(err) }()

	amount := s.opts.DefaultWealth
	if req.Wealth != nil {
		amount = *req.Wealth
	}
	currency := wealth.NormalizeCode(req.Currency)
	if currency == "" {
		currency = s.opts.DefaultCurrency
	}

	dir, rates, err := s.snapshot(ctx, req.Date)
	if err != nil {
		return models.Dashboard{}, err
	}

	entries, err := wealth.Normalize(amount, currency, rates, dir)
	if err != nil {
		return models.Dashboard{}, err
	}

	var inReference float64
	if len(rates.Rates) > 0 && len(dir) > 0 {
		if inReference, err = wealth.ToReference(amount, currency, rates); err != nil {
			return models.Dashboard{}, err
		}
	}

	indicators, err := wealth.Indicators(inReference, rates, s.opts.Benchmarks)
	if err != nil {
		return models.Dashboard{}, err
	}

	dashboard = models.Dashboard{
		Wealth:            amount,
		Currency:          currency,
		CurrencyName:      dir[currency],
		Reference:         rates.Reference,
		Date:              rates.Date,
		WealthInReference: inReference,
		Entries:           entries,
		Closest:           wealth.Closest(entries, s.opts.ClosestCount),
		Ratio:             wealth.Ratio(entries),
		Indicators:        indicators,
	}

	logrus.WithFields(logrus.Fields{
		"currency":    currency,
		"currencies":  dashboard.Ratio.Total,
		"millionaire": dashboard.Ratio.Millionaire,
	}).Debug("dashboard computed")
	return dashboard, nil
}

// Convert converts a single amount between two currencies of one snapshot.
func (s *WealthService) Convert(ctx context.Context, req models.ConvertRequest) (models.ConvertResponse, error) {
	var response models.ConvertResponse

	from := wealth.NormalizeCode(req.From)
	to := wealth.NormalizeCode(req.To)
	if from == "" || to == "" {
		return response, errors.Wrap(wealth.ErrInvalidInput, "from and to are required")
	}

	_, rates, err := s.snapshot(ctx, req.Date)
	if err != nil {
		return response, err
	}

	converted, err := wealth.Convert(req.Amount, from, to, rates)
	if err != nil {
		return response, err
	}

	response = models.ConvertResponse{
		ConvertedAmount: converted,
		Currency:        strings.ToUpper(to),
		Date:            rates.Date,
		Message: fmt.Sprintf("%s %s = %s %s",
			utils.FormatAmount(req.Amount), strings.ToUpper(from),
			utils.FormatAmount(converted), strings.ToUpper(to)),
	}
	return response, nil
}

// Currencies lists the currencies that can be selected: named and priced.
func (s *WealthService) Currencies(ctx context.Context, date string) ([]models.Currency, error) {
	dir, rates, err := s.snapshot(ctx, date)
	if err != nil {
		return nil, err
	}

	currencies := make([]models.Currency, 0, len(dir))
	for _, code := range dir.Codes() {
		if dir[code] == "" {
			continue
		}
		if _, ok := rates.Rate(code); !ok {
			continue
		}
		currencies = append(currencies, models.Currency{Code: code, Name: dir[code]})
	}
	return currencies, nil
}
