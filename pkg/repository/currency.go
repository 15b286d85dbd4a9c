package repository

import (
	"context"

	"github.com/sirupsen/logrus"

	"millionaire_level/models"
	"millionaire_level/pkg/cache"
	"millionaire_level/pkg/currencyapi"
)

// Fetcher is the upstream part of the currency API client.
type Fetcher interface {
	FetchCurrencies(ctx context.Context, date string) (models.CurrencyDirectory, error)
	FetchRates(ctx context.Context, date string) (models.RateTable, error)
}

// CurrencyAPI reads snapshots through the cache and falls back to the API.
type CurrencyAPI struct {
	api       Fetcher
	snapshots *cache.SnapshotCache
}

func NewCurrencyAPI(api Fetcher, snapshots *cache.SnapshotCache) *CurrencyAPI {
	return &CurrencyAPI{
		api:       api,
		snapshots: snapshots,
	}
}

func (r *CurrencyAPI) Currencies(ctx context.Context, date string) (models.CurrencyDirectory, error) {
	date, err := currencyapi.ValidateDate(date)
	if err != nil {
		return nil, err
	}
	if dir, ok := r.snapshots.GetDirectory(date); ok {
		return dir, nil
	}

	dir, err := r.api.FetchCurrencies(ctx, date)
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{"date": date, "currencies": len(dir)}).Info("currency directory loaded")

	r.snapshots.SetDirectory(date, dir)
	return dir, nil
}

func (r *CurrencyAPI) Rates(ctx context.Context, date string) (models.RateTable, error) {
	date, err := currencyapi.ValidateDate(date)
	if err != nil {
		return models.RateTable{}, err
	}
	if table, ok := r.snapshots.GetRates(date); ok {
		return table, nil
	}

	table, err := r.api.FetchRates(ctx, date)
	if err != nil {
		return models.RateTable{}, err
	}
	logrus.WithFields(logrus.Fields{
		"date":      date,
		"snapshot":  table.Date,
		"reference": table.Reference,
		"rates":     len(table.Rates),
	}).Info("rate snapshot loaded")

	r.snapshots.SetRates(date, table)
	return table, nil
}
