package repository

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"millionaire_level/models"
	"millionaire_level/pkg/cache"
	"millionaire_level/pkg/currencyapi"
)

type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) FetchCurrencies(ctx context.Context, date string) (models.CurrencyDirectory, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(models.CurrencyDirectory), args.Error(1)
}

func (m *MockFetcher) FetchRates(ctx context.Context, date string) (models.RateTable, error) {
	args := m.Called(ctx, date)
	return args.Get(0).(models.RateTable), args.Error(1)
}

func TestCurrencyAPI_CurrenciesAreCached(t *testing.T) {
	ctx := context.Background()
	fetcher := new(MockFetcher)
	fetcher.On("FetchCurrencies", ctx, "latest").
		Return(models.CurrencyDirectory{"eur": "Euro"}, nil).Once()

	repo := NewCurrencyAPI(fetcher, cache.NewSnapshotCache(time.Minute))

	for i := 0; i < 3; i++ {
		dir, err := repo.Currencies(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, "Euro", dir["eur"])
	}
	fetcher.AssertExpectations(t)
}

func TestCurrencyAPI_RatesPerDate(t *testing.T) {
	ctx := context.Background()
	fetcher := new(MockFetcher)
	fetcher.On("FetchRates", ctx, "latest").
		Return(models.RateTable{Date: "2024-03-01", Rates: map[string]float64{"eur": 1}}, nil).Once()
	fetcher.On("FetchRates", ctx, "2023-01-02").
		Return(models.RateTable{Date: "2023-01-02", Rates: map[string]float64{"eur": 1}}, nil).Once()

	repo := NewCurrencyAPI(fetcher, cache.NewSnapshotCache(time.Minute))

	latest, err := repo.Rates(ctx, "latest")
	require.NoError(t, err)
	old, err := repo.Rates(ctx, "2023-01-02")
	require.NoError(t, err)
	again, err := repo.Rates(ctx, "latest")
	require.NoError(t, err)

	assert.Equal(t, "2024-03-01", latest.Date)
	assert.Equal(t, "2023-01-02", old.Date)
	assert.Equal(t, latest, again)
	fetcher.AssertExpectations(t)
}

func TestCurrencyAPI_ErrorsAreNotCached(t *testing.T) {
	ctx := context.Background()
	fetcher := new(MockFetcher)
	fetcher.On("FetchRates", ctx, "latest").
		Return(models.RateTable{}, errors.Wrap(currencyapi.ErrNetwork, "boom")).Once()
	fetcher.On("FetchRates", ctx, "latest").
		Return(models.RateTable{Date: "2024-03-01"}, nil).Once()

	repo := NewCurrencyAPI(fetcher, cache.NewSnapshotCache(time.Minute))

	_, err := repo.Rates(ctx, "latest")
	assert.True(t, errors.Is(err, currencyapi.ErrNetwork))

	table, err := repo.Rates(ctx, "latest")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", table.Date)
	fetcher.AssertExpectations(t)
}

func TestCurrencyAPI_InvalidDate(t *testing.T) {
	fetcher := new(MockFetcher)
	repo := NewCurrencyAPI(fetcher, cache.NewSnapshotCache(time.Minute))

	_, err := repo.Currencies(context.Background(), "01/02/2024")
	assert.True(t, errors.Is(err, currencyapi.ErrInvalidDate))
	fetcher.AssertNotCalled(t, "FetchCurrencies", mock.Anything, mock.Anything)
}
