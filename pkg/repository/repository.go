package repository

import (
	"context"

	"millionaire_level/models"
	"millionaire_level/pkg/cache"
	"millionaire_level/pkg/currencyapi"
)

type Currency interface {
	Currencies(ctx context.Context, date string) (models.CurrencyDirectory, error)
	Rates(ctx context.Context, date string) (models.RateTable, error)
}

type Repository struct {
	Currency
}

func NewRepository(client *currencyapi.Client, snapshots *cache.SnapshotCache) *Repository {
	return &Repository{
		Currency: NewCurrencyAPI(client, snapshots),
	}
}
