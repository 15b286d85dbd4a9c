package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/ulule/limiter/v3"

	millionaire "millionaire_level"
	"millionaire_level/pkg/cache"
	"millionaire_level/pkg/config"
	"millionaire_level/pkg/currencyapi"
	"millionaire_level/pkg/handler"
	"millionaire_level/pkg/middleware"
	"millionaire_level/pkg/repository"
	"millionaire_level/pkg/service"
)

func main() {
	logrus.SetFormatter(new(logrus.JSONFormatter))
	logrus.Infoln("Запуск сервера")
	if err := godotenv.Load(); err != nil {
		logrus.Infof("Файл .env не загружен: %s", err)
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Ошибка при инициализации конфига: %s", err.Error())
	}
	if level, err := logrus.ParseLevel(cfg.Log.Level); err == nil {
		logrus.SetLevel(level)
	} else {
		logrus.Warnf("unknown log level %q, keeping %s", cfg.Log.Level, logrus.GetLevel())
	}
	logrus.Infoln("Конфиг инициализирован")

	client := currencyapi.NewClient(currencyapi.Config{
		BaseURL:    cfg.API.BaseURL,
		Version:    cfg.API.Version,
		Reference:  cfg.Rates.Reference,
		Timeout:    cfg.API.Timeout,
		RetryCount: cfg.API.RetryCount,
	})
	snapshots := cache.NewSnapshotCache(cfg.Rates.CacheTTL)

	repos := repository.NewRepository(client, snapshots)
	services := service.NewService(repos, service.Options{
		DefaultWealth:   cfg.Dashboard.DefaultWealth,
		DefaultCurrency: cfg.Dashboard.DefaultCurrency,
		DefaultDate:     cfg.Rates.Date,
		ClosestCount:    cfg.Dashboard.ClosestCount,
		Benchmarks:      cfg.Dashboard.Benchmarks,
	})

	var rateLimiter *limiter.Limiter
	if cfg.Limiter.Rate != "" {
		if rateLimiter, err = middleware.NewLimiter(cfg.Limiter.Rate); err != nil {
			logrus.Fatalf("Ошибка в настройке limiter.rate: %s", err.Error())
		}
	}

	handlers := handler.NewHandler(services, handler.Config{
		AllowOrigins: cfg.HTTP.AllowOrigins,
		Limiter:      rateLimiter,
		WealthStep:   cfg.Dashboard.WealthStep,
	})

	srv := millionaire.NewServer(cfg.HTTP.Port, handlers.InitRoute(), cfg.HTTP.ReadTimeout, cfg.HTTP.WriteTimeout)
	go func() {
		if err := srv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("Ошибка при запуске сервера: %s", err)
		}
	}()
	logrus.WithField("port", cfg.HTTP.Port).Info("Сервер запущен")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Остановка сервера")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.Errorf("Ошибка при остановке сервера: %s", err.Error())
	}
}
