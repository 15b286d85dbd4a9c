package service

import (
	"context"

	"millionaire_level/models"
	"millionaire_level/pkg/repository"
)

type Wealth interface {
	Dashboard(ctx context.Context, req models.WealthRequest) (models.Dashboard, error)
	Convert(ctx context.Context, req models.ConvertRequest) (models.ConvertResponse, error)
	Currencies(ctx context.Context, date string) ([]models.Currency, error)
	Defaults() Options
}

type Service struct {
	Wealth
}

func NewService(repos *repository.Repository, opts Options) *Service {
	return &Service{
		Wealth: NewWealthService(repos.Currency, opts),
	}
}
